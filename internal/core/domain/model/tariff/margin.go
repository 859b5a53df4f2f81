package tariff

import (
	"errors"
	"fmt"

	"amigos/internal/core/domain/model/order"
	"amigos/internal/pkg/errs"
	"amigos/internal/pkg/guard"
)

// MarginCategory selects which margin configuration applies to an order.
type MarginCategory int

const (
	// CategoryUnknown is the zero value and is never valid.
	CategoryUnknown MarginCategory = iota
	// CategoryC1 applies to single and duo orders (A1, A2).
	CategoryC1
	// CategoryC2 applies to trio orders (A3).
	CategoryC2
	// CategoryC3 applies to urgent orders (A4).
	CategoryC3
)

// ErrMarginConfigIsNotConstructed is returned when using an improperly
// initialized MarginConfig.
var ErrMarginConfigIsNotConstructed = errors.New("MarginConfig must be created via NewMarginConfig constructor")

func getCategoryStrings() map[MarginCategory]string {
	return map[MarginCategory]string{
		CategoryUnknown: "unknown",
		CategoryC1:      "C1",
		CategoryC2:      "C2",
		CategoryC3:      "C3",
	}
}

// CategoryFromString parses a wire name back into a MarginCategory.
func CategoryFromString(s string) (MarginCategory, error) {
	for category, str := range getCategoryStrings() {
		if str == s && category != CategoryUnknown {
			return category, nil
		}
	}
	return CategoryUnknown, errs.NewValueIsInvalidErrorWithCause("marginCategory",
		fmt.Errorf("%q is not a valid margin category", s))
}

// Validate checks that the category is one of the defined values.
func (c MarginCategory) Validate() error {
	switch c {
	case CategoryC1, CategoryC2, CategoryC3:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("marginCategory",
			fmt.Errorf("%d is not a valid margin category", int(c)))
	}
}

// String returns the wire representation of the category.
func (c MarginCategory) String() string {
	if str, ok := getCategoryStrings()[c]; ok {
		return str
	}
	return fmt.Sprintf("MarginCategory(%d)", int(c))
}

// CategoryFor maps an order classification to its margin category.
// This is the single mapping table; nothing else in the module decides
// which margin configuration an order type falls under.
func CategoryFor(orderType order.Type) (MarginCategory, error) {
	switch orderType {
	case order.TypeA1, order.TypeA2:
		return CategoryC1, nil
	case order.TypeA3:
		return CategoryC2, nil
	case order.TypeA4:
		return CategoryC3, nil
	default:
		return CategoryUnknown, errs.NewValueIsInvalidErrorWithCause("orderType",
			fmt.Errorf("%s has no margin category", orderType))
	}
}

// MarginConfig is the per-category margin configuration: the platform
// margin deducted in the balance calculation and the [minimum, maximum]
// bounds driving the first fee step.
type MarginConfig struct {
	category MarginCategory
	margin   float64
	minimum  float64
	maximum  float64

	guard guard.ConstructorGuard
}

// NewMarginConfig creates a margin configuration for one category.
// minimum must not exceed maximum.
func NewMarginConfig(category MarginCategory, margin, minimum, maximum float64) (*MarginConfig, error) {
	m := &MarginConfig{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		category.Validate(),
		m.setMargin(margin),
		m.setBounds(minimum, maximum),
	); err != nil {
		return nil, err
	}

	m.category = category
	return m, nil
}

// Validate ensures the MarginConfig was created via NewMarginConfig.
func (m *MarginConfig) Validate() error {
	return m.guard.Validate(ErrMarginConfigIsNotConstructed)
}

// Category returns the margin category this configuration applies to.
func (m *MarginConfig) Category() MarginCategory {
	return m.category
}

// Margin returns the platform margin deducted from the order balance.
func (m *MarginConfig) Margin() float64 {
	return m.margin
}

// Minimum returns the lower margin bound.
func (m *MarginConfig) Minimum() float64 {
	return m.minimum
}

// Maximum returns the upper margin bound.
func (m *MarginConfig) Maximum() float64 {
	return m.maximum
}

func (m *MarginConfig) setMargin(margin float64) error {
	if margin < 0 {
		return errs.NewValueIsInvalidErrorWithCause("margin",
			fmt.Errorf("%f is negative", margin))
	}
	m.margin = margin
	return nil
}

func (m *MarginConfig) setBounds(minimum, maximum float64) error {
	if minimum < 0 {
		return errs.NewValueIsInvalidErrorWithCause("minimum",
			fmt.Errorf("%f is negative", minimum))
	}
	if maximum < minimum {
		return errs.NewValueIsInvalidErrorWithCause("maximum",
			fmt.Errorf("%f is less than minimum %f", maximum, minimum))
	}
	m.minimum = minimum
	m.maximum = maximum
	return nil
}
