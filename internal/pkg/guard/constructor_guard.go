// Package guard implements the constructor-guard pattern used by domain
// value objects and commands. Embedding a ConstructorGuard in a struct makes
// zero-value instances detectable, so objects that bypassed their constructor
// fail validation instead of carrying unvalidated state.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific
// validation error was provided for an unconstructed object.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as having been created through its
// designated constructor. The zero value reports the object as not
// constructed.
//
// Example:
//
//	type Tariff struct {
//	    amount float64
//	    guard  guard.ConstructorGuard
//	}
//
//	func NewTariff(amount float64) (Tariff, error) {
//	    if amount < 0 {
//	        return Tariff{}, errors.New("amount cannot be negative")
//	    }
//	    return Tariff{amount: amount, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (t Tariff) Validate() error {
//	    return t.guard.Validate(ErrTariffNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard marking the owning object as properly
// constructed. Call it inside the object's constructor only.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil if the owning object was created through its
// constructor. Otherwise it returns validationError, or
// ErrDefaultConstructorGuard when validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
