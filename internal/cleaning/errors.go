package cleaning

import (
	"errors"
	"fmt"

	"github.com/go-gota/gota/series"
)

// ErrEmptyDataset is returned when a detector is given a data frame without rows.
var ErrEmptyDataset = errors.New("dataset has no rows")

// ErrInvalidOptions wraps option validation failures.
var ErrInvalidOptions = errors.New("invalid options")

// MissingColumnError occurs when the requested feature is not a column of the data frame.
type MissingColumnError struct{ Name string }

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("column %q not found", e.Name)
}

// NonNumericColumnError occurs when a detector is pointed at a column that is not Int or Float.
type NonNumericColumnError struct {
	Name string
	Type series.Type
}

func (e *NonNumericColumnError) Error() string {
	return fmt.Sprintf("column %q is %s, want int or float", e.Name, e.Type)
}
