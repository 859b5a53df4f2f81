// Package courier contains the Courier aggregate.
//
// A courier carries up to MaxActiveOrders orders at once; acceptance
// checks the limit and the suspension state before any assignment is
// persisted. The aggregate also accumulates the platform's per-day debt
// to the courier: delivery guarantees for completed runs and
// compensations for cancelled ones, settled by the payout process.
package courier
