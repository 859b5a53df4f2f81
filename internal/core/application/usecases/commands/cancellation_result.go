package commands

import "amigos/internal/core/domain/model/order"

// CancellationResult reports the outcome of a cancellation attempt.
// A rejected attempt (grace window elapsed, order already terminal) comes
// back with Success false and a caller-facing message instead of an error:
// rejection is a business answer, not a failure.
type CancellationResult struct {
	Success bool
	Message string
	Type    order.CancellationType
	Solde   float64
}

func rejectedCancellation(ctype order.CancellationType, message string) CancellationResult {
	return CancellationResult{
		Success: false,
		Message: message,
		Type:    ctype,
	}
}
