package repository

import (
	"fmt"
	"strings"
)

// whereClause accumulates AND-ed conditions with positional arguments.
// Every "?" in a condition is replaced by the placeholder of its argument,
// so one argument can be shared by several columns.
type whereClause struct {
	conds []string
	args  []any
}

func (w *whereClause) add(cond string, arg any) {
	w.args = append(w.args, arg)
	w.conds = append(w.conds, strings.ReplaceAll(cond, "?", fmt.Sprintf("$%d", len(w.args))))
}

func (w *whereClause) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// paginate appends LIMIT and OFFSET placeholders after the filter arguments.
func (w *whereClause) paginate(limit, offset int) (string, []any) {
	n := len(w.args)
	args := append(append(make([]any, 0, n+2), w.args...), limit, offset)
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", n+1, n+2), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern returns an ILIKE pattern matching value as a literal substring.
func containsPattern(value string) string {
	return "%" + likeEscaper.Replace(value) + "%"
}
