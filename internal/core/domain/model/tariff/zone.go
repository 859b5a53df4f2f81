package tariff

import (
	"errors"
	"fmt"

	"amigos/internal/core/domain/model/order"
	"amigos/internal/pkg/errs"
	"amigos/internal/pkg/guard"
)

// ErrZoneIsNotConstructed is returned when using an improperly initialized Zone.
var ErrZoneIsNotConstructed = errors.New("Zone must be created via NewZone constructor")

// Zone is a pricing zone: a distance band with a base price, a promo tariff
// and a per-order-type minimum guarantee table. Zones of a city are
// non-overlapping and ordered by band.
type Zone struct {
	number      int
	minKm       float64
	maxKm       float64
	price       float64
	promoTariff float64
	guarantees  map[order.Type]float64

	guard guard.ConstructorGuard
}

// NewZone creates a pricing zone covering the distance band [minKm, maxKm).
// guarantees maps each supported order type to its minimum courier guarantee.
func NewZone(
	number int,
	minKm float64,
	maxKm float64,
	price float64,
	promoTariff float64,
	guarantees map[order.Type]float64,
) (*Zone, error) {
	z := &Zone{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		z.setNumber(number),
		z.setBand(minKm, maxKm),
		z.setPrice(price),
		z.setPromoTariff(promoTariff),
		z.setGuarantees(guarantees),
	); err != nil {
		return nil, err
	}

	return z, nil
}

// Validate ensures the Zone was created via NewZone.
func (z *Zone) Validate() error {
	return z.guard.Validate(ErrZoneIsNotConstructed)
}

// Number returns the zone's number.
func (z *Zone) Number() int {
	return z.number
}

// MinKm returns the inclusive lower bound of the distance band.
func (z *Zone) MinKm() float64 {
	return z.minKm
}

// MaxKm returns the exclusive upper bound of the distance band.
func (z *Zone) MaxKm() float64 {
	return z.maxKm
}

// Price returns the zone's base delivery price.
func (z *Zone) Price() float64 {
	return z.price
}

// PromoTariff returns the zone's promotional tariff, the T input of the
// fee calculation.
func (z *Zone) PromoTariff() float64 {
	return z.promoTariff
}

// Contains reports whether a distance in km falls inside the zone's band.
func (z *Zone) Contains(distanceKm float64) bool {
	return distanceKm >= z.minKm && distanceKm < z.maxKm
}

// MinimumGuarantee returns the courier guarantee for the given order type.
// Returns an object-not-found error when the zone has no guarantee for it.
func (z *Zone) MinimumGuarantee(orderType order.Type) (float64, error) {
	guarantee, ok := z.guarantees[orderType]
	if !ok {
		return 0, errs.NewObjectNotFoundError("minimumGuarantee",
			fmt.Sprintf("zone %d, type %s", z.number, orderType))
	}
	return guarantee, nil
}

// Guarantees returns a copy of the full guarantee table.
func (z *Zone) Guarantees() map[order.Type]float64 {
	out := make(map[order.Type]float64, len(z.guarantees))
	for orderType, guarantee := range z.guarantees {
		out[orderType] = guarantee
	}
	return out
}

func (z *Zone) setNumber(number int) error {
	if number <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("number",
			fmt.Errorf("%d is not greater than 0", number))
	}
	z.number = number
	return nil
}

func (z *Zone) setBand(minKm, maxKm float64) error {
	if minKm < 0 {
		return errs.NewValueIsInvalidErrorWithCause("minKm",
			fmt.Errorf("%f is negative", minKm))
	}
	if maxKm <= minKm {
		return errs.NewValueIsInvalidErrorWithCause("maxKm",
			fmt.Errorf("%f is not greater than %f", maxKm, minKm))
	}
	z.minKm = minKm
	z.maxKm = maxKm
	return nil
}

func (z *Zone) setPrice(price float64) error {
	if price < 0 {
		return errs.NewValueIsInvalidErrorWithCause("price",
			fmt.Errorf("%f is negative", price))
	}
	z.price = price
	return nil
}

func (z *Zone) setPromoTariff(promoTariff float64) error {
	if promoTariff < 0 {
		return errs.NewValueIsInvalidErrorWithCause("promoTariff",
			fmt.Errorf("%f is negative", promoTariff))
	}
	z.promoTariff = promoTariff
	return nil
}

func (z *Zone) setGuarantees(guarantees map[order.Type]float64) error {
	if len(guarantees) == 0 {
		return errs.NewValueIsRequiredError("guarantees")
	}
	for orderType, guarantee := range guarantees {
		if err := orderType.Validate(); err != nil {
			return err
		}
		if guarantee < 0 {
			return errs.NewValueIsInvalidErrorWithCause("guarantees",
				fmt.Errorf("guarantee for %s is negative", orderType))
		}
	}

	z.guarantees = make(map[order.Type]float64, len(guarantees))
	for orderType, guarantee := range guarantees {
		z.guarantees[orderType] = guarantee
	}
	return nil
}
