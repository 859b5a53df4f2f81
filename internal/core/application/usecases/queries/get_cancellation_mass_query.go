package queries

import (
	"errors"
	"time"

	"amigos/internal/core/domain/model/kernel"
	"amigos/internal/pkg/errs"
	"amigos/internal/pkg/guard"
)

var ErrGetCancellationMassQueryIsNotConstructed = errors.New(
	"GetCancellationMassQuery must be created via NewGetCancellationMassQuery constructor",
)

// GetCancellationMassQuery aggregates the cancellation compensation owed to
// each courier over one calendar day, from the append-only record store.
// Days are bounded in UTC, matching how courier daily balances are keyed.
type GetCancellationMassQuery struct { //nolint:recvcheck //using for validation
	day time.Time

	guard guard.ConstructorGuard
}

// NewGetCancellationMassQuery creates a query for the given day. Any
// instant inside the day works; it is normalized to the UTC day bounds.
func NewGetCancellationMassQuery(day time.Time) (GetCancellationMassQuery, error) {
	query := GetCancellationMassQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setDay(day); err != nil {
		return GetCancellationMassQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCancellationMassQuery) Validate() error {
	return q.guard.Validate(ErrGetCancellationMassQueryIsNotConstructed)
}

// DayStart returns the UTC start of the queried day.
func (q GetCancellationMassQuery) DayStart() time.Time {
	return q.day
}

// DayEnd returns the UTC start of the following day.
func (q GetCancellationMassQuery) DayEnd() time.Time {
	return q.day.AddDate(0, 0, 1)
}

func (q *GetCancellationMassQuery) setDay(day time.Time) error {
	if day.IsZero() {
		return errs.NewValueIsRequiredError("day")
	}

	utc := day.UTC()
	q.day = time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC)
	return nil
}

// GetCancellationMassQueryResponse is one courier's cancellation totals for
// the queried day.
type GetCancellationMassQueryResponse struct {
	CourierID  kernel.UUID
	TotalSolde float64
	Records    int
}
