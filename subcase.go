package subtest

import "fmt"

// assertData is the per-assertion-site state inside one subcase: the
// first failure captured verbatim, plus a repetition count.
type assertData struct {
	header    string
	body      string
	failCount uint64
}

// SubcaseNode holds per-node bookkeeping for one position in the subcase
// tree. A node is created the first time a pass reaches its position,
// whether or not that pass enters it, and stays in its parent's children
// for the rest of the case's run.
type SubcaseNode struct {
	Name        string
	Section     string
	ChildCount  uint64
	ChildIndex  uint64
	AssertCount uint64
	Precision   float64

	children  []*SubcaseNode
	fails     map[string]*assertData
	exception *assertData
}

func newSubcaseNode(name string, precision float64) *SubcaseNode {
	return &SubcaseNode{
		Name:      name,
		Precision: precision,
		fails:     make(map[string]*assertData),
	}
}

// failKey disambiguates repeated visits to the same assertion ordinal
// across distinct Repeat iterations, which share a SubcaseNode but set a
// fresh Section per iteration.
func failKey(section string, ordinal uint64) string {
	return fmt.Sprintf("%s#%d", section, ordinal)
}

// exhausted reports whether every discovered child of this node has been
// fully traversed.
func (n *SubcaseNode) exhausted() bool {
	return n.ChildIndex >= n.ChildCount
}
