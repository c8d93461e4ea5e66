package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prepstock/internal/core/apperror"
)

func TestParseOrderBy(t *testing.T) {
	cols := []string{"id", "name", "created_at", "stock"}

	tests := []struct {
		name    string
		orderBy string
		want    string
		wantErr bool
	}{
		{"empty defaults to name", "", "name ASC", false},
		{"plain column", "stock", "stock ASC", false},
		{"descending", "-created_at", "created_at DESC", false},
		{"explicit ascending", "+name", "name ASC", false},
		{"unknown column", "pass_hash", "", true},
		{"subquery injection", "(SELECT pass_hash FROM users LIMIT 1)", "", true},
		{"trailing expression", "name; DROP TABLE users", "", true},
		{"bare dash", "-", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseOrderBy(tt.orderBy, cols)
			if tt.wantErr {
				require.Error(t, err)
				appErr, ok := apperror.AsAppError(err)
				require.True(t, ok)
				assert.Equal(t, apperror.CodeValidation, appErr.Code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
