package tariff

import (
	"errors"
	"fmt"

	"amigos/internal/pkg/errs"
	"amigos/internal/pkg/guard"
)

// ErrCityIsNotConstructed is returned when using an improperly initialized City.
var ErrCityIsNotConstructed = errors.New("City must be created via NewCity constructor")

// City carries the city-level pricing multiplier and the set of zone
// numbers active in that city. The multiplier scales every courier
// guarantee computed for orders delivered there.
type City struct {
	name        string
	multiplier  float64
	zoneNumbers map[int]struct{}

	guard guard.ConstructorGuard
}

// NewCity creates a city with its pricing multiplier and active zones.
func NewCity(name string, multiplier float64, zoneNumbers []int) (*City, error) {
	c := &City{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setName(name),
		c.setMultiplier(multiplier),
		c.setZoneNumbers(zoneNumbers),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// Validate ensures the City was created via NewCity.
func (c *City) Validate() error {
	return c.guard.Validate(ErrCityIsNotConstructed)
}

// Name returns the city name.
func (c *City) Name() string {
	return c.name
}

// Multiplier returns the city's pricing multiplier.
func (c *City) Multiplier() float64 {
	return c.multiplier
}

// HasZone reports whether the zone number is active in this city.
func (c *City) HasZone(number int) bool {
	_, ok := c.zoneNumbers[number]
	return ok
}

// ZoneNumbers returns the active zone numbers, unordered.
func (c *City) ZoneNumbers() []int {
	out := make([]int, 0, len(c.zoneNumbers))
	for number := range c.zoneNumbers {
		out = append(out, number)
	}
	return out
}

func (c *City) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	c.name = name
	return nil
}

func (c *City) setMultiplier(multiplier float64) error {
	if multiplier <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("multiplier",
			fmt.Errorf("%f is not greater than 0", multiplier))
	}
	c.multiplier = multiplier
	return nil
}

func (c *City) setZoneNumbers(zoneNumbers []int) error {
	if len(zoneNumbers) == 0 {
		return errs.NewValueIsRequiredError("zoneNumbers")
	}

	c.zoneNumbers = make(map[int]struct{}, len(zoneNumbers))
	for _, number := range zoneNumbers {
		if number <= 0 {
			return errs.NewValueIsInvalidErrorWithCause("zoneNumbers",
				fmt.Errorf("%d is not greater than 0", number))
		}
		c.zoneNumbers[number] = struct{}{}
	}
	return nil
}
