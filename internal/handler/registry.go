package handler

import (
	"fmt"
	"strings"
	"sync"

	"jobfire/internal/errs"
)

// Func is the signature every executable unit of work implements.
type Func func(args []any, kwargs map[string]any) (any, error)

// Registry maps task paths ("<namespace>.<identifier>") to callables. It is
// built at startup; resolution fails closed instead of attempting any
// reflective loading.
type Registry struct {
	handlers map[string]Func
	mutex    sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		handlers: make(map[string]Func),
	}
}

// Register adds a handler under its task path.
func (r *Registry) Register(taskPath string, fn Func) error {
	if fn == nil {
		return fmt.Errorf("handler for '%s' is nil", taskPath)
	}
	if err := validateTaskPath(taskPath); err != nil {
		return err
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.handlers[taskPath]; exists {
		return fmt.Errorf("handler '%s' already registered", taskPath)
	}
	r.handlers[taskPath] = fn
	return nil
}

// Resolve looks a task path up, failing closed with TargetNotFoundError.
func (r *Registry) Resolve(taskPath string) (Func, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	fn, exists := r.handlers[taskPath]
	if !exists {
		return nil, &errs.TargetNotFoundError{TaskPath: taskPath}
	}
	return fn, nil
}

func (r *Registry) Exists(taskPath string) bool {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	_, exists := r.handlers[taskPath]
	return exists
}

func (r *Registry) List() []string {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	return names
}

func validateTaskPath(taskPath string) error {
	namespace, identifier, ok := strings.Cut(taskPath, ".")
	if !ok || namespace == "" || identifier == "" {
		return fmt.Errorf("task path '%s' must have the form <namespace>.<identifier>", taskPath)
	}
	return nil
}
