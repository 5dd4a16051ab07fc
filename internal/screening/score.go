package screening

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput is matched by every answer-set validation failure
var ErrInvalidInput = errors.New("invalid input")

// InvalidInputError reports an answer set that cannot be scored
type InvalidInputError struct {
	Instrument string
	Want       int
	Got        int

	// Overflow is set when the count was right but the sum does not fit in an int.
	Overflow bool
}

func (e *InvalidInputError) Error() string {
	if e.Overflow {
		return fmt.Sprintf("%s: answer total overflows", e.Instrument)
	}
	return fmt.Sprintf("%s: %d answers are required, got %d", e.Instrument, e.Want, e.Got)
}

func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// Result is the outcome of scoring one answer set
type Result struct {
	Score    int      `json:"score"`
	Severity Severity `json:"severity"`
}

// Score validates the answer count, sums the answers and classifies the
// total. Individual items are not range-checked, but a total outside the
// int range is rejected rather than wrapped.
func (in Instrument) Score(answers []int) (Result, error) {
	if len(answers) == 0 || len(answers) != in.items {
		return Result{}, &InvalidInputError{Instrument: in.name, Want: in.items, Got: len(answers)}
	}

	total := 0
	for _, a := range answers {
		if (a > 0 && total > math.MaxInt-a) || (a < 0 && total < math.MinInt-a) {
			return Result{}, &InvalidInputError{Instrument: in.name, Want: in.items, Got: len(answers), Overflow: true}
		}
		total += a
	}

	return Result{Score: total, Severity: in.Classify(total)}, nil
}

// Score is the parameterized form of Instrument.Score
func Score(in Instrument, answers []int) (Result, error) {
	return in.Score(answers)
}
