package repository

import (
	"strings"

	"github.com/stylemate/marketplace-api/internal/model"
)

// where accumulates AND-ed conditions and their positional args.
type where struct {
	conds []string
	args  []any
}

func (w *where) add(cond string, args ...any) {
	w.conds = append(w.conds, cond)
	w.args = append(w.args, args...)
}

func (w *where) eq(col string, v string) {
	if v != "" {
		w.add(col+" = ?", v)
	}
}

// likeEscaper makes user input match literally inside a LIKE pattern.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func (w *where) like(cols []string, term string) {
	term = strings.TrimSpace(term)
	if term == "" {
		return
	}
	pat := "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
	parts := make([]string, len(cols))
	args := make([]any, len(cols))
	for i, c := range cols {
		parts[i] = "LOWER(" + c + ") LIKE ? ESCAPE '!'"
		args[i] = pat
	}
	w.add("("+strings.Join(parts, " OR ")+")", args...)
}

func (w *where) sql() string {
	if len(w.conds) == 0 {
		return "1=1"
	}
	return strings.Join(w.conds, " AND ")
}

// orderBy renders ORDER BY from a sort expression restricted to the columns map
// (API field -> column). Unknown fields are dropped; an empty result falls
// back to def. id is always appended as a tiebreaker.
func orderBy(sort []model.SortField, columns map[string]string, def string) string {
	var parts []string
	for _, s := range sort {
		col, ok := columns[s.Field]
		if !ok {
			continue
		}
		dir := "ASC"
		if s.Desc {
			dir = "DESC"
		}
		parts = append(parts, col+" "+dir)
	}
	if len(parts) == 0 {
		parts = append(parts, def)
	}
	return strings.Join(append(parts, "id DESC"), ", ")
}

// placeholders returns "?, ?, ?" for n args.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func stringArgs(ids []string) []any {
	out := make([]any, len(ids))
	for i, id := range ids {
		out[i] = id
	}
	return out
}
