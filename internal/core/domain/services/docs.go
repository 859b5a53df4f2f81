// Package services contains the stateless domain services of the order
// lifecycle: grouping (compatibility rules and the greedy duo/trio
// planner), remuneration (montant course, payment modes, pricing
// breakdowns), the seven-step fee reconciliation, platform balances,
// the cancellation policy and the courier acceptance policy.
//
// Services hold no repository references; use case handlers load the
// aggregates and configuration, call the services, and persist the
// results.
package services
