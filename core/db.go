package core

import "strings"

// Ordering is a single sort key, eg. "-name" => {Field: "name", Ascending: false}.
type Ordering struct {
	Field     string
	Ascending bool
}

func (ord Ordering) String() string {
	direction := "DESC"
	if ord.Ascending {
		direction = "ASC"
	}
	return ord.Field + " " + direction
}

// ParseOrderings parses a comma separated list of fields, each optionally prefixed with "-" for descending order.
func ParseOrderings(val string) []Ordering {
	var orderings []Ordering
	for _, field := range strings.Split(val, ",") {
		field = strings.TrimSpace(field)
		descending := strings.HasPrefix(field, "-")
		if descending {
			field = field[1:] // drop "-"
		}
		if field == "" {
			continue
		}
		orderings = append(orderings, Ordering{Field: strings.ToLower(field), Ascending: !descending})
	}
	return orderings
}
