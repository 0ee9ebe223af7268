package db

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"

	_ "github.com/lib/pq"

	"jobfire/internal/constants"
	"jobfire/internal/lock"
)

const (
	baseDir = "./migrations"
	schema  = "jobfire_schema"
)

// Init connects to the database and runs schema initialization and migration
// scripts. An advisory lock keeps concurrent instances from racing the
// migration logic.
func Init(postgresURL string, distributedLock lock.DistributedLockManager) error {
	db, err := sql.Open("postgres", postgresURL)
	if err != nil {
		return err
	}
	defer db.Close()

	migrationLock := constants.MigrationLock
	if err = distributedLock.Acquire(migrationLock); err != nil {
		return err
	}
	defer distributedLock.Release(migrationLock)

	if err = db.Ping(); err != nil {
		return err
	}

	if _, err = db.Exec(fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s", schema)); err != nil {
		return err
	}

	scripts, err := readSQLScripts()
	if err != nil {
		return err
	}
	for _, script := range scripts {
		if _, err := db.Exec(script); err != nil {
			log.Println("migration failed:", err)
			return err
		}
	}

	return nil
}

func readSQLScripts() ([]string, error) {
	entries, err := os.ReadDir(baseDir)
	if err != nil {
		return nil, err
	}

	var scripts []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		path := filepath.Join(baseDir, entry.Name())
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}

		scripts = append(scripts, string(content))
	}

	return scripts, nil
}
