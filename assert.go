package subtest

import (
	"fmt"
	"math"
	"reflect"
	"runtime"
	"strings"

	"github.com/halyph/subtest/internal/compare"
	ierrors "github.com/halyph/subtest/internal/errors"
	"github.com/halyph/subtest/internal/report"
)

// T drives one pass of one Case: it holds the path of currently-entered
// SubcaseNodes and exposes the Subcase/Repeat/Check family to the test
// body. A *T is only valid for the duration of a single pass.
type T struct {
	caseName string
	stack    []*SubcaseNode

	toleranceMode compare.Mode
	nanEqualsNaN  bool

	// precision32 is the fallback tolerance for a check whose operands are
	// both float32 and whose subcase precision is still at its inherited
	// default (rootPrecision) — i.e. nothing has called SetPrecision.
	precision32   float64
	rootPrecision float64

	results *report.TestResults
}

func (t *T) top() *SubcaseNode {
	return t.stack[len(t.stack)-1]
}

// Subcase opens a scoped subcase named name. body runs at most once per
// pass — exactly when the parent's traversal cursor points at this
// child's position — and the stack entry is always popped via defer, so
// a panic propagating out of body still leaves the stack consistent for
// the top-level exception handler in runCase.
func (t *T) Subcase(name string, body func(t *T)) {
	parent := t.top()

	var child *SubcaseNode
	if int(parent.ChildCount) == len(parent.children) {
		child = newSubcaseNode(name, parent.Precision)
		parent.children = append(parent.children, child)
	} else {
		child = parent.children[parent.ChildCount]
	}

	shallEnter := parent.ChildIndex == parent.ChildCount
	if !shallEnter {
		parent.ChildCount++
		return
	}

	// Registered before body runs, so a panic unwinding out of body still
	// bumps the parent's count — mirroring the C++ original's Subcase
	// destructor, which increments child_count during stack unwinding.
	defer func() { parent.ChildCount++ }()

	child.Name = name
	child.Section = ""
	child.Precision = parent.Precision
	child.ChildCount = 0
	child.AssertCount = 0

	t.stack = append(t.stack, child)
	defer func() {
		t.stack = t.stack[:len(t.stack)-1]
	}()
	body(t)
}

// Repeat runs body count times within a single pass, a Subcase whose
// child iterations each get a fresh assertion ordinal space and a
// section label equal to their iteration index, so that repeated
// failures at the same source line remain distinct per iteration.
func (t *T) Repeat(count int, name string, body func(t *T)) {
	t.Subcase(name, func(t *T) {
		node := t.top()
		for i := 0; i < count; i++ {
			node.AssertCount = 0
			node.Section = fmt.Sprintf("%d", i)
			body(t)
		}
	})
}

// Precision returns the tolerance currently active for the entered
// subcase (or the Case root if no subcase is open).
func (t *T) Precision() float64 {
	return t.top().Precision
}

// SetPrecision overrides the tolerance for the current subcase. The
// override does not escape to the parent once this subcase exits.
func (t *T) SetPrecision(p float64) {
	t.top().Precision = p
}

// Section returns the free-form label appended to the current subcase's
// display path (set automatically by Repeat, or manually via SetSection).
func (t *T) Section() string {
	return t.top().Section
}

// SetSection overrides the current subcase's display-path label.
func (t *T) SetSection(s string) {
	t.top().Section = s
}

func (t *T) path() string {
	var b strings.Builder
	b.WriteString(t.caseName)
	for _, n := range t.stack[1:] {
		b.WriteString("/")
		b.WriteString(n.Name)
		if n.Section != "" {
			b.WriteString(":")
			b.WriteString(n.Section)
		}
	}
	return b.String()
}

// header names the first caller outside this file and outside the Go
// runtime, i.e. the assertion's own line in the test body.
func (t *T) header(expr string) string {
	_, self, _, _ := runtime.Caller(0)
	for skip := 1; ; skip++ {
		pc, file, line, ok := runtime.Caller(skip)
		if !ok {
			return fmt.Sprintf("%s - %s", t.path(), expr)
		}
		if fn := runtime.FuncForPC(pc); file == self || (fn != nil && strings.HasPrefix(fn.Name(), "runtime.")) {
			continue
		}
		return fmt.Sprintf("%s - %s:%d - %s", t.path(), file, line, expr)
	}
}

// reportFailure records ordinal's failure at the active subcase; returns
// true iff this is the first failure at ordinal this (sub)iteration, in
// which case body is captured verbatim. Later calls only bump the count.
func (t *T) reportFailure(node *SubcaseNode, ordinal uint64, expr, body string) bool {
	key := failKey(node.Section, ordinal)
	data, ok := node.fails[key]
	if !ok {
		data = &assertData{}
		node.fails[key] = data
	}
	data.failCount++
	first := data.failCount == 1
	if first {
		data.header = t.header(expr)
		data.body = body
	}
	return first
}

// Check asserts that chain is true, capturing the rendered expansion on
// first failure at this assertion site.
func (t *T) Check(expr string, c Chain) bool {
	node := t.top()
	node.AssertCount++
	t.results.Asserts++

	if c.Truth() {
		return true
	}
	t.reportFailure(node, node.AssertCount, expr, Render(c))
	return false
}

// CheckApprox is Check using approximate numeric comparison, with the
// difference noted in the failure body.
func (t *T) CheckApprox(expr string, c Chain) bool {
	node := t.top()
	node.AssertCount++
	t.results.Asserts++

	a, b, op := c.approxOperands()
	opts := t.approxOptionsFor(node, a, b)
	if c.ApproxTruth(opts) {
		return true
	}
	af, _ := toFloat64(a)
	bf, _ := toFloat64(b)
	body := fmt.Sprintf("%s (difference %g not within precision %g)", Render(Value(a).chain(op, b)), math.Abs(af-bf), opts.Precision)
	t.reportFailure(node, node.AssertCount, expr, body)
	return false
}

func (t *T) approxOptions(node *SubcaseNode) compare.Options {
	mode := t.toleranceMode
	if mode == "" {
		mode = compare.ModeRelative
	}
	return compare.Options{
		Mode:         mode,
		Precision:    node.Precision,
		NaNEqualsNaN: t.nanEqualsNaN,
	}
}

// approxOptionsFor is approxOptions, but swaps in the engine's 32-bit
// precision default when both operands are float32 and the active
// subcase is still at its inherited (un-overridden) precision.
func (t *T) approxOptionsFor(node *SubcaseNode, a, b any) compare.Options {
	opts := t.approxOptions(node)
	if node.Precision == t.rootPrecision && isFloat32(a) && isFloat32(b) {
		opts.Precision = t.precision32
	}
	return opts
}

func isFloat32(v any) bool {
	return reflect.ValueOf(v).Kind() == reflect.Float32
}

// CheckEach performs elementwise comparison between two sequences, or
// between a scalar and a sequence (the scalar is replayed at every
// index). At least one side must be iterable.
func (t *T) CheckEach(expr string, c Chain) bool {
	return t.checkEach(expr, c, false, compare.Options{})
}

// CheckEachApprox is CheckEach with approximate elementwise comparison.
func (t *T) CheckEachApprox(expr string, c Chain) bool {
	node := t.top()
	return t.checkEach(expr, c, true, t.approxOptions(node))
}

func (t *T) checkEach(expr string, c Chain, approx bool, opts compare.Options) bool {
	if len(c.links) != 1 {
		ierrors.Programmer("CheckEach requires a chain of exactly two operands, got %d", len(c.links)+1)
	}
	op := c.links[0].op
	if approx && op != EQ && op != NE {
		ierrors.Programmer("CheckEachApprox is only defined for EQ/NE, got %v", op)
	}
	a, b := c.head, c.links[0].val

	aVals, aIter := iterableValues(a)
	bVals, bIter := iterableValues(b)
	if !aIter && !bIter {
		ierrors.Programmer("CheckEach requires at least one operand to be iterable, got %T and %T", a, b)
	}

	node := t.top()
	node.AssertCount++
	t.results.Asserts++

	var length int
	sizeMismatch := false
	switch {
	case aIter && bIter:
		length = min(len(aVals), len(bVals))
		sizeMismatch = len(aVals) != len(bVals)
	case aIter:
		length = len(aVals)
	default:
		length = len(bVals)
	}

	var lines []string
	if sizeMismatch {
		lines = append(lines, fmt.Sprintf("size mismatch: %d vs %d", len(aVals), len(bVals)))
	}

	for i := 0; i < length; i++ {
		ai := elementAt(aVals, aIter, a, i)
		bi := elementAt(bVals, bIter, b, i)

		var ok bool
		if approx {
			ok = Value(ai).chain(op, bi).ApproxTruth(opts)
		} else {
			ok = Apply(op, ai, bi)
		}
		if !ok {
			lines = append(lines, fmt.Sprintf("at index %d: %s %s %s", i, renderOperand(ai), op, renderOperand(bi)))
		}
	}

	if len(lines) == 0 {
		return true
	}
	t.reportFailure(node, node.AssertCount, expr, strings.Join(lines, "\n"))
	return false
}

func elementAt(vals []any, iter bool, scalar any, i int) any {
	if iter {
		return vals[i]
	}
	return scalar
}

func iterableValues(v any) ([]any, bool) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// CheckNoPanic asserts that thunk does not panic. Unlike the exception
// guard in runCase, this recovers at assertion granularity: a panic here
// is a recorded failure, not an aborted pass.
func (t *T) CheckNoPanic(expr string, thunk func()) (ok bool) {
	node := t.top()
	node.AssertCount++
	t.results.Asserts++
	ordinal := node.AssertCount

	defer func() {
		if r := recover(); r != nil {
			if ee, isEngine := ierrors.AsEngineError(r); isEngine {
				panic(ee)
			}
			t.reportFailure(node, ordinal, expr, exceptionBody(r))
			ok = false
		}
	}()

	thunk()
	return true
}

func exceptionBody(recovered any) string {
	if err, ok := recovered.(error); ok {
		return fmt.Sprintf("%s: %s", TypeName(err), err.Error())
	}
	return fmt.Sprintf("%s: %v", TypeName(recovered), recovered)
}
