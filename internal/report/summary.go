package report

import (
	"fmt"

	"github.com/halyph/subtest/internal/output"
)

// PrintSummary renders a human summary of a completed run: case/subcase/
// assertion counts, then each distinct failure or exception with its
// repetition count. Adapted from the teacher tool's go-test-json summary
// printer, generalized from parsed "go test -json" counts to this
// engine's own TestResults. version, if non-empty, is appended to the
// header (e.g. the engine's own subtest.Version).
func PrintSummary(w *output.Writer, res *TestResults, version string) {
	header := "Test Summary"
	if version != "" {
		header = fmt.Sprintf("%s (subtest %s)", header, version)
	}
	w.SummaryHeader(header)

	w.SummaryItem("Cases", fmt.Sprintf("%d", res.Cases))
	w.SummaryItem("Subcases", fmt.Sprintf("%d", res.Subcases))
	w.SummaryItem("Asserts", fmt.Sprintf("%d", res.Asserts))
	if res.Failures > 0 {
		w.SummaryFailed("Failures", fmt.Sprintf("%d", res.Failures))
	} else {
		w.SummaryPassed("Failures", "0")
	}
	if res.Exceptions > 0 {
		w.SummaryFailed("Exceptions", fmt.Sprintf("%d", res.Exceptions))
	} else {
		w.SummaryPassed("Exceptions", "0")
	}

	if len(res.Records) > 0 {
		w.Println("")
		w.SummarySectionLabel("Failures:")
		for _, rec := range res.Records {
			label := rec.Header
			if rec.FailCount > 1 {
				label = fmt.Sprintf("%s (failed %d times)", label, rec.FailCount)
			}
			w.SummaryFailed("  "+label, rec.Body)
		}
	}

	w.Println("")

	if res.Failures+res.Exceptions == 0 {
		w.FinalSuccess("All %d asserts passed.", res.Asserts)
	} else {
		w.FinalFailure("%d failure(s) and %d exception(s) across %d asserts.", res.Failures, res.Exceptions, res.Asserts)
	}
}
