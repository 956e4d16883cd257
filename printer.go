package subtest

import (
	"fmt"
	"reflect"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NoLower keeps internal capitalization intact (e.g. "someError" becomes
// "SomeError", not "Someerror") — type names are rarely all one case.
var titleCaser = cases.Title(language.English, cases.NoLower)

// Render converts a Chain into its expanded textual form, e.g. "1 < 3 < 2".
func Render(c Chain) string {
	var b strings.Builder
	b.WriteString(renderOperand(c.head))
	for _, l := range c.links {
		b.WriteString(" ")
		b.WriteString(l.op.String())
		b.WriteString(" ")
		b.WriteString(renderOperand(l.val))
	}
	return b.String()
}

// renderOperand converts a single captured operand to text. Stringers and
// errors render via their own method; ordinary values render with %v;
// kinds fmt has no meaningful textual form for (funcs, channels, unsafe
// pointers) fall back to a bracketed type-name placeholder.
func renderOperand(v any) string {
	if v == nil {
		return "nil"
	}
	if s, ok := v.(fmt.Stringer); ok {
		return s.String()
	}
	if err, ok := v.(error); ok {
		return err.Error()
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Func, reflect.Chan, reflect.UnsafePointer, reflect.Invalid:
		return fallbackPlaceholder(v)
	}
	return fmt.Sprintf("%v", v)
}

func fallbackPlaceholder(v any) string {
	return "{" + TypeName(v) + "}"
}

// TypeName returns an English-locale, title-cased rendering of v's dynamic
// type (via %T), used both for the operand fallback placeholder and for
// naming a recovered exception's type in a failure report, so that
// reflection-derived type names never look case-inconsistent against the
// rest of a rendered report.
func TypeName(v any) string {
	return titleCaser.String(fmt.Sprintf("%T", v))
}
