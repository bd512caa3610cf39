package postgres

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jwalitptl/dravail-api/internal/model"
)

// listingWhere builds the visibility and search clause shared by the doctor and
// hospital browse queries.
func listingWhere(filter *model.ListingFilter) (string, []interface{}) {
	var (
		conds []string
		args  []interface{}
	)
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if !filter.IncludeAll {
		if filter.ViewerID != uuid.Nil {
			conds = append(conds, fmt.Sprintf("(is_verified = true OR owner_id = %s)", arg(filter.ViewerID)))
		} else {
			conds = append(conds, "is_verified = true")
		}
	}
	if term := strings.TrimSpace(filter.SearchTerm); term != "" {
		conds = append(conds, fmt.Sprintf("name ILIKE %s", arg("%"+term+"%")))
	}
	if filter.Status != "" {
		conds = append(conds, fmt.Sprintf("status = %s", arg(filter.Status)))
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// pageClause appends LIMIT and OFFSET placeholders after the filter args.
func pageClause(filter *model.ListingFilter, args []interface{}) (string, []interface{}) {
	n := len(args)
	args = append(args, filter.PageSize, filter.Offset())
	return fmt.Sprintf(" ORDER BY name ASC, id ASC LIMIT $%d OFFSET $%d", n+1, n+2), args
}
