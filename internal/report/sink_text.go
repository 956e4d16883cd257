package report

import (
	"fmt"
	"io"
)

// WriteText renders the failure-record text described by the engine's
// report model: one block per distinct failure/exception, its header,
// its body, and a repetition count when it fired more than once.
func WriteText(w io.Writer, res *TestResults) error {
	if _, err := fmt.Fprintf(w, "cases=%d subcases=%d asserts=%d failures=%d exceptions=%d\n",
		res.Cases, res.Subcases, res.Asserts, res.Failures, res.Exceptions); err != nil {
		return err
	}

	for _, rec := range res.Records {
		kind := "FAILED"
		if rec.Exception {
			kind = "EXCEPTION"
		}
		if _, err := fmt.Fprintf(w, "\n%s: %s\n", kind, rec.Header); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "  %s\n", rec.Body); err != nil {
			return err
		}
		if rec.FailCount > 1 {
			if _, err := fmt.Fprintf(w, "  (failed %d times)\n", rec.FailCount); err != nil {
				return err
			}
		}
	}

	return nil
}
