package types

// Context is a persistent, singly-linked typing environment — extending it
// never mutates the original, so a context captured by one branch of
// inference is unaffected by another branch extending it further. The nil
// *Context is the empty environment.
//
// Grounded on original_source/type-checker/src/checker.rs's
// Context(Rc<ContextData>) persistent list, reworked as a plain Go linked
// list since felixcore has no concurrent sharing across OS threads to
// justify the Rc.
type Context struct {
	name string
	typ  Type
	next *Context
}

// Extend returns a new context binding name to typ, linked in front of c.
func (c *Context) Extend(name string, typ Type) *Context {
	return &Context{name: name, typ: typ, next: c}
}

// Lookup searches c (innermost binding first) for name.
func (c *Context) Lookup(name string) (Type, bool) {
	for n := c; n != nil; n = n.next {
		if n.name == name {
			return n.typ, true
		}
	}
	return Type{}, false
}
