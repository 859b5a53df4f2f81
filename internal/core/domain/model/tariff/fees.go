package tariff

import (
	"errors"
	"fmt"

	"amigos/internal/core/domain/model/kernel"
	"amigos/internal/pkg/errs"
	"amigos/internal/pkg/guard"
)

// MaxFeeLines caps how many named fee lines an additional-fees
// configuration may carry.
const MaxFeeLines = 5

// ErrAdditionalFeesAreNotConstructed is returned when using an improperly
// initialized AdditionalFees configuration.
var ErrAdditionalFeesAreNotConstructed = errors.New("AdditionalFees must be created via NewAdditionalFees constructor")

// FeeLine is one named deduction. An empty AppliesTo set means the line
// applies to every margin category.
type FeeLine struct {
	Name      string
	Amount    float64
	AppliesTo []MarginCategory
}

func (l FeeLine) appliesTo(category MarginCategory) bool {
	if len(l.AppliesTo) == 0 {
		return true
	}
	for _, c := range l.AppliesTo {
		if c == category {
			return true
		}
	}
	return false
}

// AdditionalFees is the configured set of named deductions applied in the
// balance calculation, up to MaxFeeLines of them.
type AdditionalFees struct {
	lines []FeeLine

	guard guard.ConstructorGuard
}

// NewAdditionalFees creates an additional-fees configuration. An empty set
// is valid and deducts nothing.
func NewAdditionalFees(lines []FeeLine) (*AdditionalFees, error) {
	f := &AdditionalFees{
		guard: guard.NewConstructorGuard(),
	}

	if len(lines) > MaxFeeLines {
		return nil, errs.NewValueIsOutOfRangeError("lines", len(lines), 0, MaxFeeLines)
	}
	for _, line := range lines {
		if line.Name == "" {
			return nil, errs.NewValueIsRequiredError("line name")
		}
		if line.Amount < 0 {
			return nil, errs.NewValueIsInvalidErrorWithCause("line amount",
				fmt.Errorf("%q is negative", line.Name))
		}
		for _, category := range line.AppliesTo {
			if err := category.Validate(); err != nil {
				return nil, err
			}
		}
	}

	f.lines = append([]FeeLine(nil), lines...)
	return f, nil
}

// Validate ensures the AdditionalFees were created via NewAdditionalFees.
func (f *AdditionalFees) Validate() error {
	return f.guard.Validate(ErrAdditionalFeesAreNotConstructed)
}

// Lines returns the configured fee lines. The slice is a copy.
func (f *AdditionalFees) Lines() []FeeLine {
	out := make([]FeeLine, len(f.lines))
	copy(out, f.lines)
	return out
}

// TotalFor sums the fee lines applicable to the given category, rounded
// to 3 decimals.
func (f *AdditionalFees) TotalFor(category MarginCategory) float64 {
	var total float64
	for _, line := range f.lines {
		if line.appliesTo(category) {
			total += line.Amount
		}
	}
	return kernel.Round3(total)
}

// Bonus is the flat, optionally disabled bonus credited to the platform
// balance of every settled order.
type Bonus struct {
	Amount  float64
	Enabled bool
}

// Value returns the amount when the bonus is enabled, 0 otherwise.
func (b Bonus) Value() float64 {
	if !b.Enabled {
		return 0
	}
	return b.Amount
}
