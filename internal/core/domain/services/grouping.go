package services

import (
	"time"

	"amigos/internal/core/domain/model/kernel"
	"amigos/internal/core/domain/model/order"
)

// GroupPlan describes one group the planner decided to form: its members,
// the shared classification (A2 for duos, A3 for trios) and the group solde,
// the sum of every member's simple solde.
type GroupPlan struct {
	Members   []*order.Order
	GroupType order.Type
	Solde     float64
}

// MemberIDs returns the ids of the plan's members.
func (p GroupPlan) MemberIDs() []kernel.UUID {
	ids := make([]kernel.UUID, len(p.Members))
	for i, member := range p.Members {
		ids[i] = member.ID()
	}
	return ids
}

// PeersOf returns the ids of every member except the given one.
func (p GroupPlan) PeersOf(member *order.Order) []kernel.UUID {
	peers := make([]kernel.UUID, 0, len(p.Members)-1)
	for _, other := range p.Members {
		if !other.IsEqual(member) {
			peers = append(peers, other.ID())
		}
	}
	return peers
}

// GroupPlanner is a domain service that partitions grouping candidates into
// duo and trio runs.
//
// The matching is greedy and first-fit: the planner scans triples first
// (i<j<k over the candidate order, oldest first), marks matched members as
// consumed, then scans the remainder pairwise for duos. This is an accepted
// heuristic, not a global matching optimum; candidate volume is capped
// upstream, which keeps the cubic scan cheap.
type GroupPlanner struct {
	rules CompatibilityRules
}

// NewGroupPlanner creates a planner using the given compatibility rules.
func NewGroupPlanner(rules CompatibilityRules) GroupPlanner {
	return GroupPlanner{rules: rules}
}

// Rules returns the planner's compatibility rules.
func (g GroupPlanner) Rules() CompatibilityRules {
	return g.rules
}

// Plan partitions the candidates into group plans. Candidates that fail
// eligibility at the given instant are skipped; orders left unmatched are
// simply not part of any plan. An empty result is not an error.
//
// The candidates slice is expected ordered oldest-created-first; the
// planner preserves that order in its scan.
func (g GroupPlanner) Plan(candidates []*order.Order, now time.Time) []GroupPlan {
	eligible := make([]*order.Order, 0, len(candidates))
	for _, candidate := range candidates {
		if err := candidate.CanJoinGroup(now); err != nil {
			continue
		}
		eligible = append(eligible, candidate)
	}

	consumed := make([]bool, len(eligible))
	var plans []GroupPlan

	// Triples first.
	for i := 0; i < len(eligible); i++ {
		if consumed[i] {
			continue
		}
		for j := i + 1; j < len(eligible) && !consumed[i]; j++ {
			if consumed[j] {
				continue
			}
			for k := j + 1; k < len(eligible); k++ {
				if consumed[k] {
					continue
				}
				members := []*order.Order{eligible[i], eligible[j], eligible[k]}
				if !g.rules.AllCompatible(members) {
					continue
				}

				consumed[i], consumed[j], consumed[k] = true, true, true
				plans = append(plans, newGroupPlan(members, order.TypeA3))
				break
			}
		}
	}

	// Then duos over the remainder.
	for i := 0; i < len(eligible); i++ {
		if consumed[i] {
			continue
		}
		for j := i + 1; j < len(eligible); j++ {
			if consumed[j] {
				continue
			}
			if !g.rules.Compatible(eligible[i], eligible[j]) {
				continue
			}

			consumed[i], consumed[j] = true, true
			plans = append(plans, newGroupPlan([]*order.Order{eligible[i], eligible[j]}, order.TypeA2))
			break
		}
	}

	return plans
}

func newGroupPlan(members []*order.Order, groupType order.Type) GroupPlan {
	var solde float64
	for _, member := range members {
		solde += member.SoldeSimple()
	}

	return GroupPlan{
		Members:   members,
		GroupType: groupType,
		Solde:     kernel.Round3(solde),
	}
}
