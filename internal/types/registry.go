package types

import "github.com/felix-lang/felixcore/internal/tree"

// RuleFunc attempts to infer a type for node. The third return reports
// whether the rule's pattern matched at all: false means "not my shape,
// try the next rule" (the Go equivalent of Rust's Option<Result<T>> None
// case); true with a non-nil error means the shape matched but inference
// failed.
type RuleFunc func(c *Checker, ctx *Context, node *tree.Red) (typ Type, matched bool, err TypeError)

// Rule pairs a stable name with its inference function, the way
// internal/lint.Rule pairs an ID with a Run method — but here dispatch is
// first-match-wins over a single Expr, not "run every rule."
type Rule struct {
	Name  string
	Infer RuleFunc
}

// Registry is an ordered rule set. Rules are tried in registration order;
// the first one whose pattern matches decides the result.
type Registry struct {
	name  string
	rules []Rule
}

// NewRegistry builds an empty, named registry (the name mirrors the
// teacher's TypeSystem.name, used only for diagnostics/debug dumps).
func NewRegistry(name string) *Registry {
	return &Registry{name: name}
}

// Name returns the registry's label.
func (r *Registry) Name() string { return r.name }

// Add appends a rule to the registry.
func (r *Registry) Add(name string, fn RuleFunc) {
	r.rules = append(r.rules, Rule{Name: name, Infer: fn})
}

// Rules returns the registered rules in dispatch order.
func (r *Registry) Rules() []Rule { return r.rules }
