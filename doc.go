// Package subtest is a subcase-tree test-execution engine: it discovers
// registered test cases, traverses a dynamically-discovered tree of nested
// subcases by re-executing each case body once per leaf, captures assertion
// expressions as operand/operator chains, and aggregates failures with
// first-failure-verbatim-plus-count de-duplication.
//
// A case is registered with Case and its body exercises Subcase, Repeat,
// and the Check family on the *T passed in. RunTests drives every
// registered Case to completion and returns the accumulated TestResults.
package subtest

// Version is the engine's own version. RunTests and RunTestsTo include it
// in the printed summary header.
const Version = "0.1.0"
