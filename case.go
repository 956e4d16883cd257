package subtest

import (
	"fmt"
	"io"

	"github.com/halyph/subtest/internal/compare"
	"github.com/halyph/subtest/internal/config"
	ierrors "github.com/halyph/subtest/internal/errors"
	"github.com/halyph/subtest/internal/output"
	"github.com/halyph/subtest/internal/report"
)

// TestResults is the aggregated outcome of a RunTests/RunTestsTo call. It
// is a type alias for report.TestResults so that report's sinks (text,
// YAML) and the summary printer can operate on it without internal/report
// importing this package back.
type TestResults = report.TestResults

type registeredCase struct {
	name string
	body func(t *T)
}

var registry []registeredCase

// Case registers a named top-level test. Registration order is execution
// order; Case is meant to be called from a package-level var or an init
// function, mirroring the way the original's static registry is built.
func Case(name string, body func(t *T)) {
	registry = append(registry, registeredCase{name: name, body: body})
}

// RunTests executes every registered Case, prints a human-readable
// summary to stdout/stderr, and returns the aggregated results.
func RunTests() *TestResults {
	return runTests(output.New())
}

// RunTestsTo is RunTests, additionally writing a machine-readable report
// to dst. format selects the sink: "yaml" for internal/report's YAML
// encoding, anything else for its plain-text encoding.
func RunTestsTo(dst io.Writer, format string) (*TestResults, error) {
	res := runTests(output.New())
	if format == "yaml" {
		return res, report.WriteYAML(dst, res)
	}
	return res, report.WriteText(dst, res)
}

// RunIsolated runs a single Case body without registering it and without
// touching subtest.config.json, returning its own aggregated results.
// Useful for exercising one Case's traversal in isolation, e.g. in the
// engine's own tests.
func RunIsolated(name string, body func(t *T)) *TestResults {
	res := &report.TestResults{}
	res.Cases = 1
	opts := compare.Options{
		Mode:         compare.ModeRelative,
		Precision:    config.DefaultPrecision64,
		NaNEqualsNaN: config.DefaultNaNEqualsNaN,
	}
	runCase(name, body, opts, config.DefaultPrecision32, res)
	return res
}

func runTests(w *output.Writer) *TestResults {
	cfg, warnings, err := config.LoadFromDir(".")
	if err != nil {
		cfg = config.Default()
		w.Warning("subtest.config.json: %s (using defaults)", err)
	}
	for _, warning := range warnings {
		w.Warning("subtest.config.json: %s", warning)
	}
	if cfg.Quiet {
		w.SetQuiet(true)
	}
	if cfg.Color != nil {
		w.SetColor(*cfg.Color)
	}

	res := &report.TestResults{}
	opts := compare.Options{
		Mode:         compare.Mode(cfg.ToleranceMode),
		Precision:    cfg.Precision64,
		NaNEqualsNaN: cfg.NaNEqualsNaN == nil || *cfg.NaNEqualsNaN,
	}

	for _, rc := range registry {
		res.Cases++
		runCase(rc.name, rc.body, opts, cfg.Precision32, res)
	}

	report.PrintSummary(w, res, Version)
	return res
}

// runCase drives a Case through as many passes as its subcase tree needs:
// each pass re-executes body from the top, entering exactly one
// previously-unvisited subcase per level (see Subcase), until the root
// node reports no further children to explore. A pass cut short by a
// panic is followed by another pass, so siblings after the panicking
// subcase still get visited (see advanceCursor). The one top-level
// recover lives here — a panic escaping a pass aborts only that pass and
// is recorded against the root subcase's exception slot, never against
// whatever subcase happened to be active when it was thrown.
func runCase(name string, body func(t *T), opts compare.Options, precision32 float64, res *report.TestResults) {
	root := newSubcaseNode(name, opts.Precision)

	for {
		root.ChildCount = 0
		root.AssertCount = 0

		t := &T{
			caseName:      name,
			stack:         []*SubcaseNode{root},
			toleranceMode: opts.Mode,
			nanEqualsNaN:  opts.NaNEqualsNaN,
			precision32:   precision32,
			rootPrecision: opts.Precision,
			results:       res,
		}

		panicked := runPass(t, body, root, name)
		if !advanceCursor(enteredPath(root), panicked) {
			break
		}
	}

	res.Subcases++ // the Case itself is the root subcase
	collectResults(root, res)
}

// enteredPath walks from root following each level's (untouched-this-pass)
// child cursor down to the leaf subcase the pass just entered. Since no
// level's ChildIndex changes during a pass, it still points at whichever
// child position was selected for entry when this pass started.
func enteredPath(root *SubcaseNode) []*SubcaseNode {
	path := []*SubcaseNode{root}
	node := root
	for node.ChildIndex < node.ChildCount {
		node = node.children[node.ChildIndex]
		path = append(path, node)
	}
	return path
}

// advanceCursor implements increase_subcase_index: bump the deepest
// entered node's cursor, and whenever that leaves it pointing past its
// last discovered child, pop to the parent and bump its cursor too,
// until a cursor still has an unvisited child or the root itself is
// exhausted. When the pass panicked, every node above the deepest one
// was cut short and may have children after the entered one that were
// never reached, so the walk stops at the first such node and another
// pass is run to look for them. It reports whether another pass is needed.
func advanceCursor(path []*SubcaseNode, panicked bool) bool {
	for i := len(path) - 1; i >= 0; i-- {
		node := path[i]
		node.ChildIndex++
		if !node.exhausted() {
			return true
		}
		if panicked && i < len(path)-1 {
			return true
		}
	}
	return false
}

func runPass(t *T, body func(t *T), root *SubcaseNode, name string) (panicked bool) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if ee, ok := ierrors.AsEngineError(r); ok {
			panic(ee)
		}
		panicked = true
		if root.exception == nil {
			root.exception = &assertData{}
		}
		root.exception.failCount++
		if root.exception.failCount == 1 {
			root.exception.header = fmt.Sprintf("%s - %s", name, TypeName(r))
			root.exception.body = exceptionBody(r)
		}
	}()
	body(t)
	return false
}

// collectResults walks the finished subcase tree exactly once, after
// every pass has run, and folds its accumulated failures and exceptions
// into res. Doing this once at the end (rather than per pass) avoids
// double-counting nodes that were merely revisited, not re-entered.
func collectResults(node *SubcaseNode, res *report.TestResults) {
	if node.exception != nil {
		res.AddException(node.exception.header, node.exception.body, node.exception.failCount)
	}
	for _, data := range node.fails {
		res.AddFailure(data.header, data.body, data.failCount)
	}
	for _, child := range node.children {
		res.Subcases++
		collectResults(child, res)
	}
}
