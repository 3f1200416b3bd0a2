package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stylemate/marketplace-api/internal/model"
)

func TestWhere_LikeEscapesWildcards(t *testing.T) {
	t.Parallel()

	var w where
	w.like([]string{"name", "color"}, " 100%_Silk! ")
	assert.Equal(t, "(LOWER(name) LIKE ? ESCAPE '!' OR LOWER(color) LIKE ? ESCAPE '!')", w.sql())
	assert.Equal(t, []any{"%100!%!_silk!!%", "%100!%!_silk!!%"}, w.args)

	var only where
	only.like([]string{"email"}, "%")
	assert.Equal(t, []any{"%!%%"}, only.args)

	var empty where
	empty.like([]string{"name"}, "   ")
	assert.Equal(t, "1=1", empty.sql())
	assert.Empty(t, empty.args)
}

func TestOrderBy(t *testing.T) {
	t.Parallel()

	cols := map[string]string{"price": "price", "createdAt": "created_at"}
	assert.Equal(t, "price ASC, id DESC", orderBy(model.ParseSort("price:asc,bogus:desc"), cols, "created_at DESC"))
	assert.Equal(t, "created_at DESC, id DESC", orderBy(nil, cols, "created_at DESC"))
}
