package types

import (
	"fmt"

	"github.com/felix-lang/felixcore/internal/tree"
)

// TypeError is any of the checker's failure variants. Grounded on
// original_source/type-checker/src/checker.rs's TypeError enum, reworked
// as a closed set of concrete Go error types sharing one marker method —
// the idiomatic substitute for Rust's enum-of-payloads when each variant's
// payload shape differs.
type TypeError interface {
	error
	typeError()
}

// BrokenNodeError reports inference reaching a BROKEN node: a required
// sub-term the parser could not recover.
type BrokenNodeError struct{ Node *tree.Red }

func (e *BrokenNodeError) Error() string { return "cannot infer a type for a broken sub-term" }
func (*BrokenNodeError) typeError()      {}

// UnknownVarError reports a variable with no binding in the context.
type UnknownVarError struct{ Name string }

func (e *UnknownVarError) Error() string { return fmt.Sprintf("unknown variable %q", e.Name) }
func (*UnknownVarError) typeError()      {}

// NoInferRuleError reports an expression shape no registered rule claims.
type NoInferRuleError struct{ Node *tree.Red }

func (e *NoInferRuleError) Error() string { return "no inference rule applies to this expression" }
func (*NoInferRuleError) typeError()      {}

// ExpectedArrowError reports decompose_arrow applied to a non-arrow type.
type ExpectedArrowError struct{ Found Type }

func (e *ExpectedArrowError) Error() string {
	return fmt.Sprintf("expected an arrow type, found %s", e.Found)
}
func (*ExpectedArrowError) typeError() {}

// TypeMismatchError reports two types failing the equal check.
type TypeMismatchError struct{ Found, Expected Type }

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("type mismatch: found %s, expected %s", e.Found, e.Expected)
}
func (*TypeMismatchError) typeError() {}
