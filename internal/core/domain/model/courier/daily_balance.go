package courier

import "time"

// DailyBalance accumulates what the platform owes a courier for one calendar
// day. SoldeAmigos collects the delivery guarantees of completed runs;
// SoldeAnnulation collects the compensations of cancelled runs. Paid marks
// the day as settled by the payout process.
type DailyBalance struct {
	Day             time.Time
	SoldeAmigos     float64
	SoldeAnnulation float64
	Paid            bool
}

// Total returns the full amount owed for the day.
func (b DailyBalance) Total() float64 {
	return b.SoldeAmigos + b.SoldeAnnulation
}

// balanceDay normalizes an instant to its UTC calendar day, the key under
// which daily balances are accumulated.
func balanceDay(at time.Time) time.Time {
	utc := at.UTC()
	return time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC)
}
