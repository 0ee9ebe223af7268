package parser

import (
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		expr  string
		valid bool
	}{
		{"every minute", "* * * * *", true},
		{"daily at two", "0 2 * * *", true},
		{"step values", "*/15 14 * * *", true},
		{"ranges and lists", "1,3-4 0 * * 1-5", true},
		{"too few fields", "* * * *", false},
		{"too many fields", "* * * * * *", false},
		{"descriptor rejected", "@daily", false},
		{"garbage", "not a cron", false},
		{"out of bounds minute", "61 * * * *", false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Parse(test.expr)
			if test.valid && err != nil {
				t.Errorf("unexpected error: %v", err)
			} else if !test.valid && err == nil {
				t.Errorf("expected error but got none")
			}
		})
	}
}

func TestNextRun(t *testing.T) {
	tests := []struct {
		name    string
		expr    string
		from    time.Time
		expects time.Time
	}{
		{
			name:    "next 15-min mark in same hour",
			expr:    "*/15 14 * * *",
			from:    time.Date(2025, 6, 21, 14, 0, 0, 0, time.UTC),
			expects: time.Date(2025, 6, 21, 14, 15, 0, 0, time.UTC),
		},
		{
			name:    "next new year midnight",
			expr:    "0 0 1 1 *",
			from:    time.Date(2025, 12, 31, 23, 59, 0, 0, time.UTC),
			expects: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "next monday morning",
			expr:    "0 9 * * 1",
			from:    time.Date(2025, 6, 20, 8, 59, 0, 0, time.UTC),
			expects: time.Date(2025, 6, 23, 9, 0, 0, 0, time.UTC),
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			next, err := NextRun(test.expr, test.from)
			if err != nil {
				t.Fatalf("NextRun(%q) returned error: %v", test.expr, err)
			}
			if !next.Equal(test.expects) {
				t.Errorf("NextRun(%q, %v) = %v; want %v", test.expr, test.from, next, test.expects)
			}
		})
	}
}

func TestNextRun_InvalidExpression(t *testing.T) {
	if _, err := NextRun("invalid expression", time.Now()); err == nil {
		t.Error("expected error for invalid expression")
	}
}

func TestFields(t *testing.T) {
	minute, hour, dom, month, dow, err := Fields("30 8 1 */3 1-5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if minute != "30" || hour != "8" || dom != "1" || month != "*/3" || dow != "1-5" {
		t.Errorf("Fields() = %q %q %q %q %q", minute, hour, dom, month, dow)
	}

	if _, _, _, _, _, err := Fields("bad"); err == nil {
		t.Error("expected error for malformed expression")
	}
}

func TestValidate(t *testing.T) {
	if err := Validate("0 0 * * 0"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := Validate("0 0 * *"); err == nil {
		t.Error("expected error for 4-field expression")
	}
}
