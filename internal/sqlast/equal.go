package sqlast

import "github.com/google/go-cmp/cmp"

// Equal reports whether two expressions are structurally identical.
// Pointer identity is irrelevant; two separately built trees with the same
// shape and values are equal.
func Equal(a, b Expr) bool {
	return cmp.Equal(a, b)
}
