package store

import (
	"fmt"
	"strings"

	"github.com/dmiranda/spendclass/internal/transaction"
)

// buildFilterClause renders the optional filters as a conjunctive SQL
// suffix with positional args starting at $startIdx. An empty filter set
// yields an empty clause, leaving the base query unchanged. The function is
// pure: it never touches shared query state.
//
// Semantics:
//   - counterpart name: case-insensitive substring match
//   - category: case-insensitive full-label match
//   - start/end: inclusive bounds; an inverted range selects nothing
func buildFilterClause(filter transaction.Filter, startIdx int) (string, []any) {
	var clause strings.Builder

	var args []any

	argIdx := startIdx

	if filter.CounterpartName != nil {
		fmt.Fprintf(&clause, " AND counterpart_name ILIKE '%%' || $%d || '%%'", argIdx)

		args = append(args, *filter.CounterpartName)
		argIdx++
	}

	if filter.Category != nil {
		fmt.Fprintf(&clause, " AND LOWER(category) = LOWER($%d)", argIdx)

		args = append(args, filter.Category.String())
		argIdx++
	}

	if filter.StartDate != nil {
		fmt.Fprintf(&clause, " AND transaction_time_utc >= $%d", argIdx)

		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil {
		fmt.Fprintf(&clause, " AND transaction_time_utc <= $%d", argIdx)

		args = append(args, *filter.EndDate)
	}

	return clause.String(), args
}
