package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortByDueDate(t *testing.T) {
	rows := []Fields{
		fields(4, nil, nil, nil),
		fields(3, at(22, 0), nil, nil),
		fields(1, nil, nil, nil),
		fields(5, at(21, 0), nil, nil),
		fields(2, at(22, 0), nil, nil),
	}

	SortByDueDate.Sort(rows)

	var ids []int64
	for _, r := range rows {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []int64{5, 2, 3, 1, 4}, ids)
}

func TestPredicate_And(t *testing.T) {
	done := false
	base := Undone("")
	merged := base.Predicate.And(Predicate{Category: str("Work"), OpenOnly: true})

	assert.Equal(t, &done, merged.IsDone)
	assert.Equal(t, "Work", *merged.Category)
	assert.True(t, merged.OpenOnly)
}
