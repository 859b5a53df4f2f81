// Package order contains the Order aggregate and its value objects.
//
// Order is the aggregate root of the delivery lifecycle. It owns the
// status state machine (pending through delivered, or cancelled), the
// line items with their partner and client price totals, the grouping
// state for multi-stop runs, and the cancellation outcome.
//
// Key concepts:
//   - Status: the lifecycle state machine with explicit transitions
//   - Type: the pricing classification A1 (single), A2 (duo), A3 (trio),
//     A4 (urgent)
//   - Item: an immutable order line with partner cost and client price
//   - CancellationType: how a cancelled order ended (client, partner,
//     or admin initiated)
//   - ProviderPaymentMode: how the provider settles with the platform
//
// Orders are created through NewOrder and rehydrated from persistence
// through RestoreOrder. Invalid state transitions and grouping
// violations are rejected by the aggregate itself.
package order
