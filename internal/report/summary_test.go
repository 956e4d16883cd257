package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/halyph/subtest/internal/output"
)

func TestPrintSummary_Clean(t *testing.T) {
	var stdout bytes.Buffer
	w := output.NewWithWriters(&stdout, &stdout, false)

	res := &TestResults{Cases: 2, Subcases: 4, Asserts: 6}
	PrintSummary(w, res, "")

	out := stdout.String()
	if !strings.Contains(out, "All 6 asserts passed.") {
		t.Errorf("PrintSummary() missing success line, got %q", out)
	}
	if strings.Contains(out, "  Failures:\n") {
		t.Error("PrintSummary() should not print a Failures section when there are none")
	}
}

func TestPrintSummary_WithFailures(t *testing.T) {
	var stdout bytes.Buffer
	w := output.NewWithWriters(&stdout, &stdout, false)

	res := &TestResults{Cases: 1, Subcases: 1, Asserts: 2}
	res.AddFailure("s1 - main_test.go:5 - CHECK(1 == 2)", "1 == 2", 1)
	PrintSummary(w, res, "0.1.0")

	out := stdout.String()
	if !strings.Contains(out, "1 failure(s) and 0 exception(s)") {
		t.Errorf("PrintSummary() missing failure summary line, got %q", out)
	}
	if !strings.Contains(out, "CHECK(1 == 2)") {
		t.Errorf("PrintSummary() missing failure header, got %q", out)
	}
	if !strings.Contains(out, "subtest 0.1.0") {
		t.Errorf("PrintSummary() missing version in header, got %q", out)
	}
}
