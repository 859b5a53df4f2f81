package order

import (
	"errors"
	"fmt"

	"amigos/internal/pkg/errs"
	"amigos/internal/pkg/guard"
)

// ErrItemIsNotConstructed is returned when using an Item that was not created
// via NewItem.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is a single order line: a product with its unit platform cost (P1),
// unit client price (P2) and quantity. Items are immutable once created.
type Item struct { //nolint:recvcheck //using for validation
	label     string
	unitCost  float64
	unitPrice float64
	quantity  int

	guard guard.ConstructorGuard
}

// NewItem creates an order line.
//
// Parameters:
//   - label: product description (must be non-empty)
//   - unitCost: what the platform owes the provider per unit, P1 (>= 0)
//   - unitPrice: what the client pays per unit, P2 (>= 0)
//   - quantity: number of units (> 0)
func NewItem(label string, unitCost float64, unitPrice float64, quantity int) (Item, error) {
	item := Item{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setLabel(label),
		item.setUnitCost(unitCost),
		item.setUnitPrice(unitPrice),
		item.setQuantity(quantity),
	); err != nil {
		return Item{}, err
	}

	return item, nil
}

// Validate checks that the Item was created through its constructor.
func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

// Label returns the product description.
func (i Item) Label() string {
	return i.label
}

// UnitCost returns the per-unit platform cost (P1).
func (i Item) UnitCost() float64 {
	return i.unitCost
}

// UnitPrice returns the per-unit client price (P2).
func (i Item) UnitPrice() float64 {
	return i.unitPrice
}

// Quantity returns the number of units.
func (i Item) Quantity() int {
	return i.quantity
}

// CostTotal returns unitCost multiplied by quantity.
func (i Item) CostTotal() float64 {
	return i.unitCost * float64(i.quantity)
}

// PriceTotal returns unitPrice multiplied by quantity.
func (i Item) PriceTotal() float64 {
	return i.unitPrice * float64(i.quantity)
}

func (i *Item) setLabel(label string) error {
	if label == "" {
		return errs.NewValueIsRequiredError("label")
	}
	i.label = label
	return nil
}

func (i *Item) setUnitCost(unitCost float64) error {
	if unitCost < 0 {
		return errs.NewValueIsInvalidErrorWithCause("unitCost",
			fmt.Errorf("%f is negative", unitCost))
	}
	i.unitCost = unitCost
	return nil
}

func (i *Item) setUnitPrice(unitPrice float64) error {
	if unitPrice < 0 {
		return errs.NewValueIsInvalidErrorWithCause("unitPrice",
			fmt.Errorf("%f is negative", unitPrice))
	}
	i.unitPrice = unitPrice
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	i.quantity = quantity
	return nil
}
