// Package report aggregates a test run into a TestResults value and
// renders it: a human summary, and text/YAML sinks for external
// consumption. It is the engine's Report Aggregator plus the concrete
// renderings the root package's entry points build on.
package report

// FailureRecord is one distinct failure or exception, as collected once
// a case's last pass has run: header names the case/subcase/section path, source
// location, and expression text; body carries the expanded chain value,
// elementwise mismatch, size mismatch, or exception message.
type FailureRecord struct {
	Header    string `yaml:"header"`
	Body      string `yaml:"body"`
	FailCount uint64 `yaml:"fail_count"`
	Exception bool   `yaml:"exception"`
}

// TestResults accumulates across every pass of every registered case. It
// is the only machine-readable output of the engine.
type TestResults struct {
	Cases      uint64          `yaml:"cases"`
	Subcases   uint64          `yaml:"subcases"`
	Asserts    uint64          `yaml:"asserts"`
	Failures   uint64          `yaml:"failures"`
	Exceptions uint64          `yaml:"exceptions"`
	Records    []FailureRecord `yaml:"records"`
}

// ExitCode implements the exit status convention: zero failures and
// exceptions means success.
func (r *TestResults) ExitCode() int {
	if r.Failures+r.Exceptions == 0 {
		return 0
	}
	return 1
}

// AddFailure records a distinct assertion failure.
func (r *TestResults) AddFailure(header, body string, failCount uint64) {
	r.Failures++
	r.Records = append(r.Records, FailureRecord{Header: header, Body: body, FailCount: failCount})
}

// AddException records a distinct exception.
func (r *TestResults) AddException(header, body string, failCount uint64) {
	r.Exceptions++
	r.Records = append(r.Records, FailureRecord{Header: header, Body: body, FailCount: failCount, Exception: true})
}
