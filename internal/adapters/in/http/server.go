// Package http exposes the application over a REST surface. Handlers
// stay thin: parse, delegate to a command/query handler, translate the
// outcome. Business rejections (a missed cancellation window, a courier
// over capacity) come back as 200 responses with Success false, while
// transport and lookup failures map onto HTTP status codes.
package http

import (
	"errors"
	"net/http"
	"time"

	"amigos/internal/core/application/usecases/commands"
	"amigos/internal/core/application/usecases/queries"
	"amigos/internal/core/domain/model/kernel"
	"amigos/internal/core/domain/model/tariff"
	"amigos/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Handlers bundles the command and query handlers the server dispatches to.
type Handlers struct {
	AcceptOrder      commands.AcceptOrderCommandHandler
	GroupOrders      commands.GroupOrdersCommandHandler
	CancelByClient   commands.CancelOrderByClientCommandHandler
	CancelByMerchant commands.CancelOrderByMerchantCommandHandler
	CancelByAdmin    commands.CancelOrderByAdminCommandHandler

	Remuneration     queries.CalculateRemunerationQueryHandler
	Fees             queries.CalculateFeesQueryHandler
	Couriers         queries.GetCouriersQueryHandler
	ActiveOrders     queries.GetActiveOrdersQueryHandler
	CancellationMass queries.GetCancellationMassQueryHandler
}

// GroupingDefaults are applied when a grouping trigger omits its tuning.
type GroupingDefaults struct {
	Lookback time.Duration
	Limit    int
}

// Server wires the REST routes to the application use cases.
type Server struct {
	handlers Handlers
	grouping GroupingDefaults
}

// NewServer creates a new HTTP server.
func NewServer(handlers Handlers, grouping GroupingDefaults) *Server {
	return &Server{
		handlers: handlers,
		grouping: grouping,
	}
}

// RegisterRoutes mounts the API routes on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders/group", s.TriggerGrouping)
	api.POST("/orders/:id/accept", s.AcceptOrder)
	api.POST("/orders/:id/cancel/client", s.CancelByClient)
	api.POST("/orders/:id/cancel/merchant", s.CancelByMerchant)
	api.POST("/orders/:id/cancel/admin", s.CancelByAdmin)

	api.GET("/orders/active", s.GetActiveOrders)
	api.GET("/orders/:id/remuneration", s.GetRemuneration)
	api.GET("/orders/:id/fees", s.GetFees)
	api.GET("/couriers", s.GetCouriers)
	api.GET("/cancellations/mass", s.GetCancellationMass)
}

type errorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// writeError maps application errors onto HTTP statuses.
func writeError(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrConcurrencyConflict):
		status = http.StatusConflict
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		status = http.StatusBadRequest
	}

	return ctx.JSON(status, errorBody{Code: status, Message: err.Error()})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, errorBody{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func orderIDParam(ctx echo.Context) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param("id"))
}

type triggerGroupingRequest struct {
	LookbackMinutes int `json:"lookback_minutes"`
	Limit           int `json:"limit"`
}

type triggerGroupingResponse struct {
	Attempted int            `json:"attempted"`
	Grouped   int            `json:"grouped"`
	Groups    []groupSummary `json:"groups"`
}

type groupSummary struct {
	OrderIDs  []string `json:"order_ids"`
	GroupType string   `json:"group_type"`
	Solde     float64  `json:"solde"`
}

// TriggerGrouping handles POST /api/v1/orders/group - runs one grouping
// pass over recent ungrouped orders. The body may override the lookback
// and the candidate cap; both fall back to the configured defaults.
func (s *Server) TriggerGrouping(ctx echo.Context) error {
	var req triggerGroupingRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	lookback := s.grouping.Lookback
	if req.LookbackMinutes > 0 {
		lookback = time.Duration(req.LookbackMinutes) * time.Minute
	}
	limit := s.grouping.Limit
	if req.Limit > 0 {
		limit = req.Limit
	}

	command, err := commands.NewGroupOrdersCommand(lookback, limit)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.handlers.GroupOrders.Handle(ctx.Request().Context(), command)
	if err != nil {
		return writeError(ctx, err)
	}

	response := triggerGroupingResponse{
		Attempted: result.Attempted,
		Grouped:   result.Grouped,
		Groups:    make([]groupSummary, len(result.Groups)),
	}
	for i, group := range result.Groups {
		ids := make([]string, len(group.OrderIDs))
		for j, id := range group.OrderIDs {
			ids[j] = id.String()
		}
		response.Groups[i] = groupSummary{
			OrderIDs:  ids,
			GroupType: group.GroupType.String(),
			Solde:     group.Solde,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

type acceptOrderRequest struct {
	CourierID string `json:"courier_id"`
}

// AcceptOrder handles POST /api/v1/orders/:id/accept - assigns the order
// (and its group peers, if grouped) to a courier.
func (s *Server) AcceptOrder(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req acceptOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	courierID, err := kernel.UUIDFromString(req.CourierID)
	if err != nil {
		return badRequest(ctx, "Invalid courier id")
	}

	command, err := commands.NewAcceptOrderCommand(orderID, courierID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.handlers.AcceptOrder.Handle(ctx.Request().Context(), command); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type cancelOrderRequest struct {
	RequesterID string `json:"requester_id"`
	Reason      string `json:"reason"`
}

type cancelOrderResponse struct {
	Success bool    `json:"success"`
	Message string  `json:"message,omitempty"`
	Type    string  `json:"type,omitempty"`
	Solde   float64 `json:"solde"`
}

func cancellationResponse(ctx echo.Context, result commands.CancellationResult) error {
	return ctx.JSON(http.StatusOK, cancelOrderResponse{
		Success: result.Success,
		Message: result.Message,
		Type:    result.Type.String(),
		Solde:   result.Solde,
	})
}

// CancelByClient handles POST /api/v1/orders/:id/cancel/client - a client
// cancelling their own order inside the grace window.
func (s *Server) CancelByClient(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req cancelOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	clientID, err := kernel.UUIDFromString(req.RequesterID)
	if err != nil {
		return badRequest(ctx, "Invalid requester id")
	}

	command, err := commands.NewCancelOrderByClientCommand(orderID, clientID, req.Reason)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.handlers.CancelByClient.Handle(ctx.Request().Context(), command)
	if err != nil {
		return writeError(ctx, err)
	}

	return cancellationResponse(ctx, result)
}

// CancelByMerchant handles POST /api/v1/orders/:id/cancel/merchant - a
// provider pulling out of an accepted order, with courier compensation.
func (s *Server) CancelByMerchant(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req cancelOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	merchantID, err := kernel.UUIDFromString(req.RequesterID)
	if err != nil {
		return badRequest(ctx, "Invalid requester id")
	}

	command, err := commands.NewCancelOrderByMerchantCommand(orderID, merchantID, req.Reason)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.handlers.CancelByMerchant.Handle(ctx.Request().Context(), command)
	if err != nil {
		return writeError(ctx, err)
	}

	return cancellationResponse(ctx, result)
}

// CancelByAdmin handles POST /api/v1/orders/:id/cancel/admin - an operator
// killing an order on the client's behalf, blocking the client.
func (s *Server) CancelByAdmin(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req cancelOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	adminID, err := kernel.UUIDFromString(req.RequesterID)
	if err != nil {
		return badRequest(ctx, "Invalid requester id")
	}

	command, err := commands.NewCancelOrderByAdminCommand(orderID, adminID, req.Reason)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.handlers.CancelByAdmin.Handle(ctx.Request().Context(), command)
	if err != nil {
		return writeError(ctx, err)
	}

	return cancellationResponse(ctx, result)
}

type remunerationResponse struct {
	OrderID               string  `json:"order_id"`
	Mode                  string  `json:"mode"`
	MontantCourse         float64 `json:"montant_course"`
	DelivererRemuneration float64 `json:"deliverer_remuneration"`
	PartnerPayout         float64 `json:"partner_payout"`
	ClientAmount          float64 `json:"client_amount"`
	PlatformRevenue       float64 `json:"platform_revenue"`
}

// GetRemuneration handles GET /api/v1/orders/:id/remuneration - prices the
// order. The optional mode query parameter forces a pricing regime;
// omitting it derives the regime from the order's attributes.
func (s *Server) GetRemuneration(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	mode, err := tariff.ModeFromString(ctx.QueryParam("mode"))
	if err != nil {
		return badRequest(ctx, "Invalid payment mode")
	}

	query, err := queries.NewCalculateRemunerationQuery(orderID, mode)
	if err != nil {
		return writeError(ctx, err)
	}

	breakdown, err := s.handlers.Remuneration.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, remunerationResponse{
		OrderID:               breakdown.OrderID.String(),
		Mode:                  breakdown.Mode,
		MontantCourse:         breakdown.MontantCourse,
		DelivererRemuneration: breakdown.DelivererRemuneration,
		PartnerPayout:         breakdown.PartnerPayout,
		ClientAmount:          breakdown.ClientAmount,
		PlatformRevenue:       breakdown.PlatformRevenue,
	})
}

type feesResponse struct {
	OrderID       string  `json:"order_id"`
	Margin        float64 `json:"margin"`
	Frais1        float64 `json:"frais_1"`
	Frais2        float64 `json:"frais_2"`
	Frais3        float64 `json:"frais_3"`
	Frais4        float64 `json:"frais_4"`
	MargeNet      float64 `json:"marge_net"`
	DeliveryFee   float64 `json:"delivery_fee"`
	AppFee        float64 `json:"app_fee"`
	PlatformSolde float64 `json:"platform_solde"`
	FinalAmount   float64 `json:"final_amount"`
	Baseline      bool    `json:"baseline"`
}

// GetFees handles GET /api/v1/orders/:id/fees - the full fee breakdown.
func (s *Server) GetFees(ctx echo.Context) error {
	orderID, err := orderIDParam(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	query, err := queries.NewCalculateFeesQuery(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	breakdown, err := s.handlers.Fees.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, feesResponse{
		OrderID:       breakdown.OrderID.String(),
		Margin:        breakdown.Margin,
		Frais1:        breakdown.Frais1,
		Frais2:        breakdown.Frais2,
		Frais3:        breakdown.Frais3,
		Frais4:        breakdown.Frais4,
		MargeNet:      breakdown.MargeNet,
		DeliveryFee:   breakdown.DeliveryFee,
		AppFee:        breakdown.AppFee,
		PlatformSolde: breakdown.PlatformSolde,
		FinalAmount:   breakdown.FinalAmount,
		Baseline:      breakdown.Baseline,
	})
}

type courierResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Status       string `json:"status"`
	ActiveOrders int    `json:"active_orders"`
}

// GetCouriers handles GET /api/v1/couriers - lists all couriers.
func (s *Server) GetCouriers(ctx echo.Context) error {
	couriers, err := s.handlers.Couriers.Handle(ctx.Request().Context(), queries.NewGetCouriersQuery())
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]courierResponse, len(couriers))
	for i, courier := range couriers {
		response[i] = courierResponse{
			ID:           courier.ID.String(),
			Name:         courier.Name,
			Status:       courier.Status,
			ActiveOrders: courier.ActiveOrders,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

type activeOrderResponse struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	OrderType string    `json:"order_type"`
	City      string    `json:"city"`
	CourierID *string   `json:"courier_id,omitempty"`
	IsGrouped bool      `json:"is_grouped"`
	P2Total   float64   `json:"p2_total"`
	CreatedAt time.Time `json:"created_at"`
}

// GetActiveOrders handles GET /api/v1/orders/active - lists orders still
// in flight.
func (s *Server) GetActiveOrders(ctx echo.Context) error {
	orders, err := s.handlers.ActiveOrders.Handle(ctx.Request().Context(), queries.NewGetActiveOrdersQuery())
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]activeOrderResponse, len(orders))
	for i, row := range orders {
		item := activeOrderResponse{
			ID:        row.ID.String(),
			Status:    row.Status,
			OrderType: row.OrderType,
			City:      row.City,
			IsGrouped: row.IsGrouped,
			P2Total:   row.P2Total,
			CreatedAt: row.CreatedAt,
		}
		if row.CourierID != nil {
			id := row.CourierID.String()
			item.CourierID = &id
		}
		response[i] = item
	}

	return ctx.JSON(http.StatusOK, response)
}

type cancellationMassResponse struct {
	CourierID  string  `json:"courier_id"`
	TotalSolde float64 `json:"total_solde"`
	Records    int     `json:"records"`
}

// GetCancellationMass handles GET /api/v1/cancellations/mass - sums
// cancellation soldes per courier for one day. The day query parameter is
// a date in YYYY-MM-DD form; it defaults to today.
func (s *Server) GetCancellationMass(ctx echo.Context) error {
	day := time.Now().UTC()
	if raw := ctx.QueryParam("day"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return badRequest(ctx, "Invalid day, expected YYYY-MM-DD")
		}
		day = parsed
	}

	query, err := queries.NewGetCancellationMassQuery(day)
	if err != nil {
		return writeError(ctx, err)
	}

	rows, err := s.handlers.CancellationMass.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]cancellationMassResponse, len(rows))
	for i, row := range rows {
		response[i] = cancellationMassResponse{
			CourierID:  row.CourierID.String(),
			TotalSolde: row.TotalSolde,
			Records:    row.Records,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}
