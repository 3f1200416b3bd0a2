package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewListQuery_Clamps(t *testing.T) {
	t.Parallel()

	q := NewListQuery(0, 500, DefaultPageLimit, MaxPageLimit, nil)
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, MaxPageLimit, q.Limit)

	q = NewListQuery(3, 0, DefaultPageLimit, MaxPageLimit, nil)
	assert.Equal(t, DefaultPageLimit, q.Limit)
	assert.Equal(t, 20, q.Offset())

	q = NewListQuery(200000000000000000, 50, DefaultPageLimit, MaxPageLimit, nil)
	assert.Equal(t, MaxPage, q.Page)
	assert.Positive(t, q.Offset())
	assert.Equal(t, (MaxPage-1)*MaxPageLimit, q.Offset())
}

func TestNewPaged_PageBeyondLast(t *testing.T) {
	t.Parallel()

	q := NewListQuery(9, 10, DefaultPageLimit, MaxPageLimit, nil)
	p := NewPaged([]Cloth{}, 21, q)
	assert.Equal(t, 9, p.Page)
	assert.Equal(t, 21, p.Total)

	raw, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"total":21,"page":9,"limit":10,"totalPages":3,"data":[]}`, string(raw))
}

func TestNewPaged(t *testing.T) {
	t.Parallel()

	q := NewListQuery(5, 10, DefaultPageLimit, MaxPageLimit, nil)
	p := NewPaged[Cloth](nil, 21, q)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, 21, p.Total)
	require.NotNil(t, p.Data)
	assert.Empty(t, p.Data)

	p = NewPaged[Cloth](nil, 0, q)
	assert.Equal(t, 0, p.TotalPages)
}

func TestParseSort(t *testing.T) {
	t.Parallel()

	got := ParseSort("createdAt:desc, price:asc,,name")
	assert.Equal(t, []SortField{
		{Field: "createdAt", Desc: true},
		{Field: "price", Desc: false},
		{Field: "name", Desc: true},
	}, got)
	assert.Nil(t, ParseSort(""))
}

func TestRole_IsValid(t *testing.T) {
	t.Parallel()

	for _, r := range Roles {
		assert.True(t, r.IsValid(), r)
	}
	assert.False(t, Role("customer").IsValid())
	assert.False(t, Role("").IsValid())
}
