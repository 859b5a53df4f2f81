package queries

import (
	"context"

	"amigos/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetCancellationMassQueryHandler sums cancellation compensation per
// courier over one day. Records without a courier (orders cancelled before
// any assignment) carry no compensation obligation and are excluded.
type GetCancellationMassQueryHandler struct {
	db *gorm.DB
}

// NewGetCancellationMassQueryHandler creates a handler for daily
// cancellation aggregation. Requires a GORM database connection.
func NewGetCancellationMassQueryHandler(db *gorm.DB) GetCancellationMassQueryHandler {
	return GetCancellationMassQueryHandler{db: db}
}

// Handle executes the aggregation, largest total first.
func (h GetCancellationMassQueryHandler) Handle(
	ctx context.Context,
	query GetCancellationMassQuery,
) ([]GetCancellationMassQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	totals := make([]GetCancellationMassQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			courier_id,
			COALESCE(SUM(solde), 0),
			COUNT(*)
		FROM cancellation_records
		WHERE courier_id IS NOT NULL
		  AND occurred_at >= ?
		  AND occurred_at < ?
		GROUP BY courier_id
		ORDER BY COALESCE(SUM(solde), 0) DESC
	`, query.DayStart(), query.DayEnd()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var response GetCancellationMassQueryResponse
		var id uuid.UUID

		err = rows.Scan(
			&id,
			&response.TotalSolde,
			&response.Records,
		)
		if err != nil {
			return nil, err
		}

		courierID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		response.CourierID = courierID
		totals = append(totals, response)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return totals, nil
}
