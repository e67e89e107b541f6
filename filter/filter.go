// Package filter compiles expr-lang expressions and evaluates them
// against register records, for selecting records from search and
// lookup results.
//
// Record fields are exposed to the expression via the field() helper
// (register field names contain spaces, so they cannot be bare
// identifiers):
//
//	field("Status") == "Authorised"
//	contains(field("Name"), "insurance")
package filter

import (
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/s0up4200/fsregister/fsregister"
)

// Filter is a compiled record predicate.
type Filter struct {
	expression string
	program    *vm.Program
}

// Compile compiles an expression into a record filter. The expression
// must produce a boolean.
func Compile(expression string) (*Filter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{Expression: expression, Reason: "empty expression"}
	}

	program, err := expr.Compile(expression,
		expr.Env(helperEnv(fsregister.Record{})),
		expr.AllowUndefinedVariables(),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	return &Filter{expression: expression, program: program}, nil
}

// Expression returns the source expression the filter was compiled from.
func (f *Filter) Expression() string {
	return f.expression
}

// Match evaluates the filter against a single record. Records the
// expression cannot be evaluated against are treated as non-matching.
func (f *Filter) Match(record fsregister.Record) bool {
	result, err := expr.Run(f.program, helperEnv(record))
	if err != nil {
		return false
	}
	// AsBool() at compile time guarantees the assertion.
	return result.(bool)
}

// Apply returns the records matching the filter, preserving order.
func (f *Filter) Apply(records []fsregister.Record) []fsregister.Record {
	var matched []fsregister.Record
	for _, record := range records {
		if f.Match(record) {
			matched = append(matched, record)
		}
	}
	return matched
}

// helperEnv builds the evaluation environment for one record.
func helperEnv(record fsregister.Record) map[string]any {
	return map[string]any{
		"field": func(name string) string {
			return record.String(name)
		},
		"has": func(name string) bool {
			_, ok := record[name]
			return ok
		},
		"contains": func(s, substr string) bool {
			return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
		},
	}
}
