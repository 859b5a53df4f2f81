// Package tariff contains the pricing configuration aggregates: zones
// with their distance bands and minimum-guarantee tables, cities with
// their multipliers, per-category margin configurations, additional fee
// lines, the flat bonus, and the Mode_1..Mode_4 pricing regimes with
// their multiplier triples.
//
// CategoryFor is the single mapping from order classifications to margin
// categories (A1/A2 to C1, A3 to C2, A4 to C3).
package tariff
