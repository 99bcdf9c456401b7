package sqlite

import (
	"strings"

	"deadlines/internal/query"
)

// buildWhere translates a predicate into a WHERE clause over tasks t joined
// with categories c. NULL comparisons are spelled out so the result matches
// query.Predicate.Matches row for row.
func buildWhere(p query.Predicate) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	if p.DoneWithinOrOpen != nil {
		conditions = append(conditions, "(t.done_date IS NULL OR (t.done_date >= ? AND t.done_date < ?))")
		args = append(args, FormatTimeForDB(p.DoneWithinOrOpen.Start), FormatTimeForDB(p.DoneWithinOrOpen.End))
	}
	if p.DoneBefore != nil {
		conditions = append(conditions, "(t.done_date IS NOT NULL AND t.done_date < ?)")
		args = append(args, FormatTimeForDB(*p.DoneBefore))
	}
	if p.DueBefore != nil {
		conditions = append(conditions, "(t.due_date IS NOT NULL AND t.due_date < ?)")
		args = append(args, FormatTimeForDB(*p.DueBefore))
	}
	if p.DueAtOrBefore != nil {
		conditions = append(conditions, "(t.due_date IS NOT NULL AND t.due_date <= ?)")
		args = append(args, FormatTimeForDB(*p.DueAtOrBefore))
	}
	if p.OpenOnly {
		conditions = append(conditions, "t.done_date IS NULL")
	}
	if p.IsDone != nil {
		conditions = append(conditions, "t.is_done = ?")
		args = append(args, boolToInt(*p.IsDone))
	}
	if p.Category != nil {
		conditions = append(conditions, "c.name = ?")
		args = append(args, *p.Category)
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

// buildOrderBy translates a sort order. Unknown orders fall back to id.
func buildOrderBy(s query.SortOrder) string {
	switch s {
	case query.SortByDueDate:
		return " ORDER BY t.due_date IS NULL, t.due_date ASC, t.id ASC"
	default:
		return " ORDER BY t.id ASC"
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
