package echoapi

import (
	"sort"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/trezcool/masomo/core"
)

var orderingParam = "ordering"

type Ordering struct {
	Orderings []core.Ordering
}

func (ord *Ordering) Bind(ctx echo.Context) {
	if val := ctx.QueryParam(orderingParam); val != "" {
		ord.Orderings = core.ParseOrderings(val)
	}
}

// compareFunc returns a negative number when a sorts before b, a positive one when after, 0 when equal.
type compareFunc[T any] func(a, b T) int

// sortBy sorts items by each ordering in turn. Orderings on unknown fields are rejected.
func sortBy[T any](items []T, orderings []core.Ordering, fields map[string]compareFunc[T]) error {
	compares := make([]compareFunc[T], 0, len(orderings))
	for _, ord := range orderings {
		cmp, ok := fields[ord.Field]
		if !ok {
			return core.NewValidationError(nil, core.FieldError{
				Field: orderingParam,
				Error: "cannot order by " + ord.Field + " (choose from " + strings.Join(fieldNames(fields), ", ") + ")",
			})
		}
		if !ord.Ascending {
			asc := cmp
			cmp = func(a, b T) int { return -asc(a, b) }
		}
		compares = append(compares, cmp)
	}

	sort.SliceStable(items, func(i, j int) bool {
		for _, cmp := range compares {
			if c := cmp(items[i], items[j]); c != 0 {
				return c < 0
			}
		}
		return false
	})
	return nil
}

func fieldNames[T any](fields map[string]compareFunc[T]) []string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
