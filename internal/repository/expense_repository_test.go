package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderClause(t *testing.T) {
	tests := []struct {
		ordering string
		expected string
	}{
		{"date", "date ASC"},
		{"-date", "date DESC"},
		{"amount", "amount ASC"},
		{"-amount", "amount DESC"},
		// Empty and unknown fields fall back to insertion order.
		{"", ""},
		{"description", ""},
		{"-", ""},
		{"--amount", ""},
		{"user_id", ""},
	}

	for _, tt := range tests {
		t.Run("ordering="+tt.ordering, func(t *testing.T) {
			assert.Equal(t, tt.expected, orderClause(tt.ordering))
		})
	}
}
