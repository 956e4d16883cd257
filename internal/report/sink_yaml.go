package report

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// WriteYAML marshals TestResults with its yaml struct tags, for machine
// consumption by external log collectors, the same way the teacher tool's
// compose file types marshal with yaml.v3.
func WriteYAML(w io.Writer, res *TestResults) error {
	data, err := yaml.Marshal(res)
	if err != nil {
		return fmt.Errorf("failed to marshal test results: %w", err)
	}
	_, err = w.Write(data)
	return err
}
