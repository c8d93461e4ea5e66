package postgres

import (
	"strings"

	"prepstock/internal/core/apperror"
)

// parseOrderBy maps "-field" style order keys to a SQL ORDER BY clause.
// The field must be one of cols; anything else is rejected so user input
// never reaches the query text. Empty input sorts by name.
func parseOrderBy(orderBy string, cols []string) (string, error) {
	if orderBy == "" {
		return "name ASC", nil
	}

	direction := "ASC"
	field := orderBy
	if strings.HasPrefix(orderBy, "-") {
		direction = "DESC"
		field = strings.TrimPrefix(orderBy, "-")
	} else if strings.HasPrefix(orderBy, "+") {
		field = strings.TrimPrefix(orderBy, "+")
	}

	field = strings.TrimSpace(field)
	for _, col := range cols {
		if field == col {
			return field + " " + direction, nil
		}
	}
	return "", apperror.NewValidation("invalid orderBy").
		WithDetail("orderBy", orderBy)
}
