// Package dates implements the date comparison checks used by form screens
// (invoice date vs today, date ranges on filters).
package dates

import (
	"fmt"
	"time"
)

// Operator is a comparison between a provided date and a reference date.
type Operator string

const (
	OpEqual        Operator = "equal"
	OpLessThan     Operator = "less_than"
	OpGreaterThan  Operator = "greater_than"
	OpEqualLess    Operator = "equal_less"
	OpEqualGreater Operator = "equal_greater"
)

// RefToday compares against today's date (midnight, local time).
const RefToday = "today"

// layouts accepted for incoming dates.
var layouts = []string{"2006-01-02", time.RFC3339, "02/01/2006"}

// Validate checks dateProvided against ref using op. ref may be the literal
// "today" or any accepted date layout.
func Validate(dateProvided string, op Operator, ref string) (bool, error) {
	provided, err := parseDate(dateProvided)
	if err != nil {
		return false, fmt.Errorf("dates: invalid date_provided %q: %w", dateProvided, err)
	}

	var compare time.Time
	if ref == RefToday {
		now := time.Now()
		compare = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	} else {
		compare, err = parseDate(ref)
		if err != nil {
			return false, fmt.Errorf("dates: invalid reference date %q: %w", ref, err)
		}
	}

	switch op {
	case OpEqual:
		return provided.Equal(compare), nil
	case OpLessThan:
		return provided.Before(compare), nil
	case OpGreaterThan:
		return provided.After(compare), nil
	case OpEqualLess:
		return !provided.After(compare), nil
	case OpEqualGreater:
		return !provided.Before(compare), nil
	default:
		return false, fmt.Errorf("dates: unknown operator %q", op)
	}
}

func parseDate(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range layouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
