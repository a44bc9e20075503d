package dates_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/etims-api/pkg/dates"
)

func TestValidate_Operators(t *testing.T) {
	tests := []struct {
		name     string
		provided string
		op       dates.Operator
		ref      string
		want     bool
	}{
		{"equal same day", "2025-03-10", dates.OpEqual, "2025-03-10", true},
		{"equal different day", "2025-03-10", dates.OpEqual, "2025-03-11", false},
		{"less_than earlier", "2025-03-09", dates.OpLessThan, "2025-03-10", true},
		{"less_than same day", "2025-03-10", dates.OpLessThan, "2025-03-10", false},
		{"greater_than later", "2025-03-11", dates.OpGreaterThan, "2025-03-10", true},
		{"equal_less same day", "2025-03-10", dates.OpEqualLess, "2025-03-10", true},
		{"equal_less later", "2025-03-11", dates.OpEqualLess, "2025-03-10", false},
		{"equal_greater same day", "2025-03-10", dates.OpEqualGreater, "2025-03-10", true},
		{"equal_greater earlier", "2025-03-09", dates.OpEqualGreater, "2025-03-10", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := dates.Validate(tt.provided, tt.op, tt.ref)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidate_Today(t *testing.T) {
	yesterday := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	ok, err := dates.Validate(yesterday, dates.OpLessThan, dates.RefToday)
	require.NoError(t, err)
	assert.True(t, ok, "yesterday is before today")
}

func TestValidate_Errors(t *testing.T) {
	_, err := dates.Validate("not-a-date", dates.OpEqual, "2025-03-10")
	assert.Error(t, err)

	_, err = dates.Validate("2025-03-10", dates.OpEqual, "also-not-a-date")
	assert.Error(t, err)

	_, err = dates.Validate("2025-03-10", dates.Operator("between"), "2025-03-10")
	assert.Error(t, err, "unknown operator must be rejected")
}
