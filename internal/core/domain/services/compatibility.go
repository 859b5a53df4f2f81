package services

import (
	"amigos/internal/core/domain/model/order"
)

const (
	// DefaultMaxProviderDistanceKm is the default cap on the distance between
	// two orders' pickup points for them to share a run.
	DefaultMaxProviderDistanceKm = 6.0
	// DefaultMaxClientDistanceKm is the default cap on the distance between
	// two orders' delivery points for them to share a run.
	DefaultMaxClientDistanceKm = 3.0
)

// CompatibilityRules holds the distance thresholds under which two orders
// may share a run. The grouping planner and the acceptance policy both use
// the same rules value, so the automated and the courier-composed paths can
// never disagree on what "close enough" means.
type CompatibilityRules struct {
	MaxProviderDistanceKm float64
	MaxClientDistanceKm   float64
}

// NewCompatibilityRules creates rules with the default thresholds.
func NewCompatibilityRules() CompatibilityRules {
	return CompatibilityRules{
		MaxProviderDistanceKm: DefaultMaxProviderDistanceKm,
		MaxClientDistanceKm:   DefaultMaxClientDistanceKm,
	}
}

// Compatible reports whether two orders are close enough to share a run:
// pickups within MaxProviderDistanceKm and delivery points within
// MaxClientDistanceKm. Commutative, since the underlying distance is
// symmetric.
func (r CompatibilityRules) Compatible(a, b *order.Order) bool {
	// A distance error means an improperly constructed point; such an
	// order never shares a run.
	providerKm, err := a.Pickup().DistanceKm(b.Pickup())
	if err != nil || providerKm > r.MaxProviderDistanceKm {
		return false
	}

	clientKm, err := a.Dropoff().DistanceKm(b.Dropoff())
	return err == nil && clientKm <= r.MaxClientDistanceKm
}

// AllCompatible reports whether every pair in the given orders is
// compatible. Triples are checked over all three pairs explicitly, never
// inferred transitively.
func (r CompatibilityRules) AllCompatible(orders []*order.Order) bool {
	for i := 0; i < len(orders); i++ {
		for j := i + 1; j < len(orders); j++ {
			if !r.Compatible(orders[i], orders[j]) {
				return false
			}
		}
	}
	return true
}
