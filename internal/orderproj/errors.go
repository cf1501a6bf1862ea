package orderproj

import (
	"fmt"
	"strings"
)

// AmbiguousMatchError is returned when more than one selection matches a
// single ORDER BY expression.
type AmbiguousMatchError struct {
	Query      string
	Expr       string
	Candidates []string
}

func (e *AmbiguousMatchError) Error() string {
	return fmt.Sprintf("found more than one selection in %s that matched the expression %s: [%s]",
		e.Query, e.Expr, strings.Join(e.Candidates, ", "))
}
