// Package orderrepo persists order aggregates with GORM. Orders map to an
// "orders" row plus one "order_items" row per line; group membership and the
// cancellation outcome are flattened into the order row.
package orderrepo

import (
	"strings"
	"time"

	"amigos/internal/core/domain/model/kernel"
	"amigos/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Statuses, types and payment modes are stored under their wire names so the
// read-side SQL stays legible.
type OrderDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ClientID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	Provider1ID uuid.UUID  `gorm:"type:uuid;not null"`
	Provider2ID *uuid.UUID `gorm:"type:uuid"`
	Items       []ItemDTO  `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`

	ZoneNumber  int     `gorm:"not null"`
	City        string  `gorm:"type:varchar(255);not null"`
	PickupLat   float64 `gorm:"not null"`
	PickupLng   float64 `gorm:"not null"`
	DropoffLat  float64 `gorm:"not null"`
	DropoffLng  float64 `gorm:"not null"`
	PaymentMode string  `gorm:"type:varchar(16);not null"`

	Status    string     `gorm:"type:varchar(16);not null;index"`
	OrderType string     `gorm:"type:varchar(4);not null"`
	CourierID *uuid.UUID `gorm:"type:uuid;index"`

	Urgent       bool `gorm:"not null"`
	Express      bool `gorm:"not null"`
	Priority     bool `gorm:"not null"`
	CanBeGrouped bool `gorm:"not null"`

	IsGrouped  bool    `gorm:"not null"`
	GroupPeers string  `gorm:"type:text;not null"`
	GroupSolde float64 `gorm:"not null"`

	P1Total       float64 `gorm:"not null"`
	P2Total       float64 `gorm:"not null"`
	DeliveryFee   float64 `gorm:"not null"`
	AppFee        float64 `gorm:"not null"`
	PlatformSolde float64 `gorm:"not null"`
	FinalAmount   float64 `gorm:"not null"`

	CancellationType   string     `gorm:"type:varchar(16);not null"`
	CancellationSolde  float64    `gorm:"not null"`
	CancellationReason string     `gorm:"type:text;not null"`
	CancelledBy        *uuid.UUID `gorm:"type:uuid"`
	CancelledAt        *time.Time

	ProcessingDelay time.Duration `gorm:"type:bigint;not null"`
	ScheduledFor    *time.Time    `gorm:"index"`
	ProtectionEnd   *time.Time

	CreatedAt time.Time `gorm:"not null;index"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO represents one persisted order line.
type ItemDTO struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Label     string    `gorm:"type:varchar(255);not null"`
	UnitCost  float64   `gorm:"not null"`
	UnitPrice float64   `gorm:"not null"`
	Quantity  int       `gorm:"not null"`
}

// TableName specifies the database table name for order line entities.
func (ItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order domain aggregate to its database
// representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	orderID := aggregate.ID().Bytes()

	providerIDs := aggregate.ProviderIDs()
	provider1 := providerIDs[0].Bytes()
	var provider2 *uuid.UUID
	if len(providerIDs) > 1 {
		raw := providerIDs[1].Bytes()
		provider2 = &raw
	}

	items := make([]ItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, ItemDTO{
			OrderID:   orderID,
			Label:     item.Label(),
			UnitCost:  item.UnitCost(),
			UnitPrice: item.UnitPrice(),
			Quantity:  item.Quantity(),
		})
	}

	var courierID *uuid.UUID
	if id := aggregate.Courier(); id != nil {
		raw := id.Bytes()
		courierID = &raw
	}

	cancellation := aggregate.Cancellation()
	var cancelledBy *uuid.UUID
	if cancellation.CancelledBy != nil {
		raw := cancellation.CancelledBy.Bytes()
		cancelledBy = &raw
	}

	flags := aggregate.OrderFlags()
	totals := aggregate.OrderTotals()
	schedule := aggregate.ProcessingSchedule()

	return OrderDTO{
		ID:          orderID,
		ClientID:    aggregate.ClientID().Bytes(),
		Provider1ID: provider1,
		Provider2ID: provider2,
		Items:       items,

		ZoneNumber:  aggregate.ZoneNumber(),
		City:        aggregate.City(),
		PickupLat:   aggregate.Pickup().Lat(),
		PickupLng:   aggregate.Pickup().Lng(),
		DropoffLat:  aggregate.Dropoff().Lat(),
		DropoffLng:  aggregate.Dropoff().Lng(),
		PaymentMode: aggregate.PaymentMode().String(),

		Status:    aggregate.Status().String(),
		OrderType: aggregate.OrderType().String(),
		CourierID: courierID,

		Urgent:       flags.Urgent,
		Express:      flags.Express,
		Priority:     flags.Priority,
		CanBeGrouped: flags.CanBeGrouped,

		IsGrouped:  aggregate.IsGrouped(),
		GroupPeers: joinUUIDs(aggregate.GroupPeers()),
		GroupSolde: aggregate.GroupSolde(),

		P1Total:       totals.P1Total,
		P2Total:       totals.P2Total,
		DeliveryFee:   totals.DeliveryFee,
		AppFee:        totals.AppFee,
		PlatformSolde: totals.PlatformSolde,
		FinalAmount:   totals.FinalAmount,

		CancellationType:   cancellation.Type.String(),
		CancellationSolde:  cancellation.Solde,
		CancellationReason: cancellation.Reason,
		CancelledBy:        cancelledBy,
		CancelledAt:        cancellation.CancelledAt,

		ProcessingDelay: schedule.ProcessingDelay,
		ScheduledFor:    schedule.ScheduledFor,
		ProtectionEnd:   schedule.ProtectionEnd,

		CreatedAt: aggregate.CreatedAt(),
	}
}

// toDomain converts a database DTO to an order domain aggregate using
// RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	clientID, err := kernel.UUIDFromBytes(dto.ClientID[:])
	if err != nil {
		return nil, err
	}

	providerIDs := make([]kernel.UUID, 0, order.MaxProviders)
	provider1, err := kernel.UUIDFromBytes(dto.Provider1ID[:])
	if err != nil {
		return nil, err
	}
	providerIDs = append(providerIDs, provider1)
	if dto.Provider2ID != nil {
		provider2, providerErr := kernel.UUIDFromBytes((*dto.Provider2ID)[:])
		if providerErr != nil {
			return nil, providerErr
		}
		providerIDs = append(providerIDs, provider2)
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := order.NewItem(itemDTO.Label, itemDTO.UnitCost, itemDTO.UnitPrice, itemDTO.Quantity)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	pickup, err := kernel.NewGeoPoint(dto.PickupLat, dto.PickupLng)
	if err != nil {
		return nil, err
	}
	dropoff, err := kernel.NewGeoPoint(dto.DropoffLat, dto.DropoffLng)
	if err != nil {
		return nil, err
	}

	paymentMode, err := order.PaymentModeFromString(dto.PaymentMode)
	if err != nil {
		return nil, err
	}
	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}
	orderType, err := order.TypeFromString(dto.OrderType)
	if err != nil {
		return nil, err
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		cID, courierErr := kernel.UUIDFromBytes((*dto.CourierID)[:])
		if courierErr != nil {
			return nil, courierErr
		}
		courierID = &cID
	}

	groupPeers, err := splitUUIDs(dto.GroupPeers)
	if err != nil {
		return nil, err
	}

	cancellation := order.CancellationInfo{}
	if dto.CancellationType != "" {
		ctype, ctypeErr := order.CancellationTypeFromString(dto.CancellationType)
		if ctypeErr != nil {
			return nil, ctypeErr
		}
		cancellation.Type = ctype
		cancellation.Solde = dto.CancellationSolde
		cancellation.Reason = dto.CancellationReason
		cancellation.CancelledAt = dto.CancelledAt
		if dto.CancelledBy != nil {
			by, byErr := kernel.UUIDFromBytes((*dto.CancelledBy)[:])
			if byErr != nil {
				return nil, byErr
			}
			cancellation.CancelledBy = &by
		}
	}

	return order.RestoreOrder(order.RestoreOrderParams{
		ID:          id,
		ClientID:    clientID,
		ProviderIDs: providerIDs,
		Items:       items,
		ZoneNumber:  dto.ZoneNumber,
		City:        dto.City,
		Pickup:      pickup,
		Dropoff:     dropoff,
		PaymentMode: paymentMode,

		Status:    status,
		OrderType: orderType,
		Flags: order.Flags{
			Urgent:       dto.Urgent,
			Express:      dto.Express,
			Priority:     dto.Priority,
			CanBeGrouped: dto.CanBeGrouped,
		},
		CourierID: courierID,

		IsGrouped:  dto.IsGrouped,
		GroupPeers: groupPeers,
		GroupSolde: dto.GroupSolde,

		DeliveryFee:   dto.DeliveryFee,
		AppFee:        dto.AppFee,
		PlatformSolde: dto.PlatformSolde,
		FinalAmount:   dto.FinalAmount,

		Cancellation: cancellation,
		Schedule: order.Schedule{
			ProcessingDelay: dto.ProcessingDelay,
			ScheduledFor:    dto.ScheduledFor,
			ProtectionEnd:   dto.ProtectionEnd,
		},
		CreatedAt: dto.CreatedAt,
	})
}

// joinUUIDs flattens group peer ids into a comma-separated column. The peer
// set is tiny (at most two ids), so a child table would be overkill.
func joinUUIDs(ids []kernel.UUID) string {
	if len(ids) == 0 {
		return ""
	}
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, id.String())
	}
	return strings.Join(parts, ",")
}

func splitUUIDs(joined string) ([]kernel.UUID, error) {
	if joined == "" {
		return nil, nil
	}
	parts := strings.Split(joined, ",")
	ids := make([]kernel.UUID, 0, len(parts))
	for _, part := range parts {
		id, err := kernel.UUIDFromString(part)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
