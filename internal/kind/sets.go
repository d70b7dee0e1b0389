package kind

import "strings"

// TokenKindSet is a 64-bit bit-set over TokenKind.
type TokenKindSet uint64

// NewTokenSet builds a set from the given kinds.
func NewTokenSet(kinds ...TokenKind) TokenKindSet {
	var s TokenKindSet
	for _, k := range kinds {
		s = s.Add(k)
	}
	return s
}

// Add returns s with k added.
func (s TokenKindSet) Add(k TokenKind) TokenKindSet {
	return s | (1 << uint(k))
}

// Contains reports whether k is a member of s.
func (s TokenKindSet) Contains(k TokenKind) bool {
	return s&(1<<uint(k)) != 0
}

// Union returns the union of s and other.
func (s TokenKindSet) Union(other TokenKindSet) TokenKindSet {
	return s | other
}

// Intersect returns the intersection of s and other.
func (s TokenKindSet) Intersect(other TokenKindSet) TokenKindSet {
	return s & other
}

// Complement returns the complement of s within universe.
func (s TokenKindSet) Complement(universe TokenKindSet) TokenKindSet {
	return universe &^ s
}

// IsEmpty reports whether s has no members.
func (s TokenKindSet) IsEmpty() bool {
	return s == 0
}

// ToSlice returns the members of s in ascending kind order.
func (s TokenKindSet) ToSlice() []TokenKind {
	var out []TokenKind
	for i := TokenKind(0); i < tokenKindCount; i++ {
		if s.Contains(i) {
			out = append(out, i)
		}
	}
	return out
}

func (s TokenKindSet) String() string {
	kinds := s.ToSlice()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	return "{" + strings.Join(names, ", ") + "}"
}

// NodeKindSet is a 64-bit bit-set over NodeKind.
type NodeKindSet uint64

// NewNodeSet builds a set from the given kinds.
func NewNodeSet(kinds ...NodeKind) NodeKindSet {
	var s NodeKindSet
	for _, k := range kinds {
		s = s.Add(k)
	}
	return s
}

// Add returns s with k added.
func (s NodeKindSet) Add(k NodeKind) NodeKindSet {
	return s | (1 << uint(k))
}

// Contains reports whether k is a member of s.
func (s NodeKindSet) Contains(k NodeKind) bool {
	return s&(1<<uint(k)) != 0
}

// Union returns the union of s and other.
func (s NodeKindSet) Union(other NodeKindSet) NodeKindSet {
	return s | other
}

// Intersect returns the intersection of s and other.
func (s NodeKindSet) Intersect(other NodeKindSet) NodeKindSet {
	return s & other
}

// Complement returns the complement of s within universe.
func (s NodeKindSet) Complement(universe NodeKindSet) NodeKindSet {
	return universe &^ s
}

// IsEmpty reports whether s has no members.
func (s NodeKindSet) IsEmpty() bool {
	return s == 0
}
