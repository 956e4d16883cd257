package subtest

import (
	"github.com/halyph/subtest/internal/compare"
	ierrors "github.com/halyph/subtest/internal/errors"
)

type chainLink struct {
	op  Op
	val any
}

// Chain is the captured, left-associative form of a (possibly chained)
// relational expression: a head operand followed by zero or more (Op,
// operand) continuations. Go has no operator overloading, so a Chain is
// built by seeding it with Value and then calling EQ/NE/LT/LE/GE/GT, each
// of which returns a new, one-longer Chain — the idiomatic-Go analogue of
// the C++ design where each relational operator returns a new, more
// specific result type. A Chain is immutable; building a longer one never
// mutates an existing value.
type Chain struct {
	head  any
	links []chainLink
}

// Value seeds a new Chain with its leftmost operand.
func Value(v any) Chain {
	return Chain{head: v}
}

func (c Chain) chain(op Op, v any) Chain {
	links := make([]chainLink, len(c.links), len(c.links)+1)
	copy(links, c.links)
	links = append(links, chainLink{op: op, val: v})
	return Chain{head: c.head, links: links}
}

func (c Chain) EQ(v any) Chain { return c.chain(EQ, v) }
func (c Chain) NE(v any) Chain { return c.chain(NE, v) }
func (c Chain) LT(v any) Chain { return c.chain(LT, v) }
func (c Chain) LE(v any) Chain { return c.chain(LE, v) }
func (c Chain) GE(v any) Chain { return c.chain(GE, v) }
func (c Chain) GT(v any) Chain { return c.chain(GT, v) }

// Values returns every captured operand, head first.
func (c Chain) Values() []any {
	vals := make([]any, 0, len(c.links)+1)
	vals = append(vals, c.head)
	for _, l := range c.links {
		vals = append(vals, l.val)
	}
	return vals
}

// Ops returns the operators joining consecutive operands.
func (c Chain) Ops() []Op {
	ops := make([]Op, len(c.links))
	for i, l := range c.links {
		ops[i] = l.op
	}
	return ops
}

// Truth ANDs the pairwise Apply result across every adjacent operand pair:
// a chain `a op0 b op1 c` is true iff `a op0 b` and `b op1 c`.
func (c Chain) Truth() bool {
	prev := c.head
	for _, l := range c.links {
		if !Apply(l.op, prev, l.val) {
			return false
		}
		prev = l.val
	}
	return true
}

// approxOperands reduces a two-operand EQ/NE chain to its operands and
// operator, or panics with a programmer error if the chain isn't shaped
// for approximate comparison.
func (c Chain) approxOperands() (any, any, Op) {
	if len(c.links) != 1 {
		ierrors.Programmer("approximate comparison requires a chain of exactly two operands, got %d", len(c.links)+1)
	}
	link := c.links[0]
	if link.op != EQ && link.op != NE {
		ierrors.Programmer("approximate comparison is only defined for EQ/NE, got %v", link.op)
	}
	return c.head, link.val, link.op
}

// ApproxTruth evaluates the chain using approximate numeric comparison.
// Only defined for a chain of exactly two numeric operands joined by EQ
// or NE; anything else is a programmer error (the source's open question
// on chains longer than two, resolved as an engine error).
func (c Chain) ApproxTruth(opts compare.Options) bool {
	a, b, op := c.approxOperands()
	af, aok := toFloat64(a)
	bf, bok := toFloat64(b)
	if !aok || !bok {
		ierrors.Programmer("approximate comparison requires numeric operands, got %T and %T", a, b)
	}
	eq := compare.ApproxEqual(af, bf, opts)
	if op == NE {
		return !eq
	}
	return eq
}
