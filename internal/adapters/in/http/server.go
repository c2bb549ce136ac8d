// Package http is the inbound HTTP adapter. Handlers parse and validate
// requests, dispatch to application use cases, and translate domain errors
// into status codes. No business rules live here.
package http

import (
	"errors"
	"net/http"

	"shopfloor/internal/core/application/usecases/commands"
	"shopfloor/internal/core/application/usecases/queries"
	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createOrderHandler            commands.CreateOrderCommandHandler
	startLocationHandler          commands.StartLocationCommandHandler
	pauseLocationHandler          commands.PauseLocationCommandHandler
	finishLocationHandler         commands.FinishLocationCommandHandler
	updateQuantityHandler         commands.UpdateLocationQuantityCommandHandler
	reorderQueueHandler           commands.ReorderQueueCommandHandler
	setQueuePositionHandler       commands.SetQueuePositionCommandHandler
	markRushHandler               commands.MarkRushCommandHandler
	shipOrderHandler              commands.ShipOrderCommandHandler
	requestHelpHandler            commands.RequestHelpCommandHandler
	assignMachineHandler          commands.AssignMachineCommandHandler
	updateAssignmentQtyHandler    commands.UpdateAssignmentQuantityCommandHandler
	getLocationQueueHandler       queries.GetLocationQueueQueryHandler
	getEligibilityHandler         queries.GetEligibilityQueryHandler
	getUpcomingOrdersQueryHandler queries.GetUpcomingOrdersQueryHandler
}

// NewServer creates an HTTP server with the required command and query
// handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	startLocationHandler commands.StartLocationCommandHandler,
	pauseLocationHandler commands.PauseLocationCommandHandler,
	finishLocationHandler commands.FinishLocationCommandHandler,
	updateQuantityHandler commands.UpdateLocationQuantityCommandHandler,
	reorderQueueHandler commands.ReorderQueueCommandHandler,
	setQueuePositionHandler commands.SetQueuePositionCommandHandler,
	markRushHandler commands.MarkRushCommandHandler,
	shipOrderHandler commands.ShipOrderCommandHandler,
	requestHelpHandler commands.RequestHelpCommandHandler,
	assignMachineHandler commands.AssignMachineCommandHandler,
	updateAssignmentQtyHandler commands.UpdateAssignmentQuantityCommandHandler,
	getLocationQueueHandler queries.GetLocationQueueQueryHandler,
	getEligibilityHandler queries.GetEligibilityQueryHandler,
	getUpcomingOrdersQueryHandler queries.GetUpcomingOrdersQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:            createOrderHandler,
		startLocationHandler:          startLocationHandler,
		pauseLocationHandler:          pauseLocationHandler,
		finishLocationHandler:         finishLocationHandler,
		updateQuantityHandler:         updateQuantityHandler,
		reorderQueueHandler:           reorderQueueHandler,
		setQueuePositionHandler:       setQueuePositionHandler,
		markRushHandler:               markRushHandler,
		shipOrderHandler:              shipOrderHandler,
		requestHelpHandler:            requestHelpHandler,
		assignMachineHandler:          assignMachineHandler,
		updateAssignmentQtyHandler:    updateAssignmentQtyHandler,
		getLocationQueueHandler:       getLocationQueueHandler,
		getEligibilityHandler:         getEligibilityHandler,
		getUpcomingOrdersQueryHandler: getUpcomingOrdersQueryHandler,
	}
}

// RegisterRoutes mounts every API route on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.POST("/orders/:orderID/locations/:locationID/start", s.StartLocation)
	api.POST("/orders/:orderID/locations/:locationID/pause", s.PauseLocation)
	api.POST("/orders/:orderID/locations/:locationID/finish", s.FinishLocation)
	api.POST("/orders/:orderID/locations/:locationID/quantity", s.UpdateLocationQuantity)
	api.POST("/orders/:orderID/ship", s.ShipOrder)
	api.POST("/orders/:orderID/queue-position", s.SetQueuePosition)
	api.POST("/orders/:orderID/rush", s.MarkRush)
	api.POST("/orders/:orderID/locations/:locationID/help", s.RequestHelp)
	api.GET("/orders/:orderID/locations/:locationID/eligibility", s.GetEligibility)

	api.POST("/locations/:locationID/queue/reorder", s.ReorderQueue)
	api.GET("/locations/:locationID/queue", s.GetLocationQueue)
	api.GET("/locations/:locationID/upcoming", s.GetUpcomingOrders)

	api.POST("/machine-assignments", s.AssignMachine)
	api.PUT("/machine-assignments", s.UpdateAssignmentQuantity)
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var request NewOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	locationIDs := make([]kernel.UUID, 0, len(request.LocationIDs))
	for _, raw := range request.LocationIDs {
		id, err := kernel.UUIDFromString(raw)
		if err != nil {
			return badRequest(ctx, "invalid location id: "+raw)
		}
		locationIDs = append(locationIDs, id)
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID, request.Number, request.TotalQuantity, request.DueDate, locationIDs)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, OrderCreatedResponse{ID: orderID.String()})
}

// StartLocation handles the start endpoint. Gating denials surface as 409
// with the blocking reason.
func (s *Server) StartLocation(ctx echo.Context) error {
	orderID, locationID, err := orderLocationParams(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewStartLocationCommand(orderID, locationID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.startLocationHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// PauseLocation handles the pause endpoint.
func (s *Server) PauseLocation(ctx echo.Context) error {
	orderID, locationID, err := orderLocationParams(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewPauseLocationCommand(orderID, locationID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.pauseLocationHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// FinishLocation handles the finish endpoint.
func (s *Server) FinishLocation(ctx echo.Context) error {
	orderID, locationID, err := orderLocationParams(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var request FinishLocationRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewFinishLocationCommand(orderID, locationID, request.CompletedQuantity)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.finishLocationHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdateLocationQuantity handles the quantity endpoint. Out-of-range values
// are rejected with 422, never clamped.
func (s *Server) UpdateLocationQuantity(ctx echo.Context) error {
	orderID, locationID, err := orderLocationParams(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var request UpdateQuantityRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewUpdateLocationQuantityCommand(orderID, locationID, request.CompletedQuantity)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.updateQuantityHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ReorderQueue handles POST /api/v1/locations/:locationID/queue/reorder.
func (s *Server) ReorderQueue(ctx echo.Context) error {
	locationID, err := kernel.UUIDFromString(ctx.Param("locationID"))
	if err != nil {
		return badRequest(ctx, "invalid location id")
	}

	var request ReorderQueueRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	orderID, err := kernel.UUIDFromString(request.OrderID)
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	cmd, err := commands.NewReorderQueueCommand(locationID, orderID, request.NewPosition)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.reorderQueueHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ShipOrder handles POST /api/v1/orders/:orderID/ship.
func (s *Server) ShipOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	var request ShipOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewShipOrderCommand(orderID, request.ShippedQuantity)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.shipOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SetQueuePosition handles POST /api/v1/orders/:orderID/queue-position,
// admitting the order into the global queue.
func (s *Server) SetQueuePosition(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	var request QueuePositionRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewSetQueuePositionCommand(orderID, request.Position)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.setQueuePositionHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// MarkRush handles POST /api/v1/orders/:orderID/rush.
func (s *Server) MarkRush(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	var request RushRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewMarkRushCommand(orderID, request.Rush)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.markRushHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RequestHelp handles the help endpoint.
func (s *Server) RequestHelp(ctx echo.Context) error {
	orderID, locationID, err := orderLocationParams(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	var request HelpRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewRequestHelpCommand(orderID, locationID, request.UserID, request.Message)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.requestHelpHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusAccepted)
}

// AssignMachine handles POST /api/v1/machine-assignments.
func (s *Server) AssignMachine(ctx echo.Context) error {
	cmd, err := s.bindAssignment(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.assignMachineHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdateAssignmentQuantity handles PUT /api/v1/machine-assignments.
func (s *Server) UpdateAssignmentQuantity(ctx echo.Context) error {
	var request AssignmentRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	orderID, locationID, machineID, err := assignmentIDs(request)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewUpdateAssignmentQuantityCommand(orderID, locationID, machineID, request.Quantity)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.updateAssignmentQtyHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetLocationQueue handles GET /api/v1/locations/:locationID/queue.
func (s *Server) GetLocationQueue(ctx echo.Context) error {
	locationID, err := kernel.UUIDFromString(ctx.Param("locationID"))
	if err != nil {
		return badRequest(ctx, "invalid location id")
	}

	query, err := queries.NewGetLocationQueueQuery(locationID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	board, err := s.getLocationQueueHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	rows := make([]QueueRow, 0, len(board))
	for _, row := range board {
		rows = append(rows, QueueRow{
			OrderID:  row.OrderID.String(),
			Number:   row.Number,
			Rush:     row.Rush,
			Position: row.Position,
		})
	}

	return ctx.JSON(http.StatusOK, rows)
}

// GetUpcomingOrders handles GET /api/v1/locations/:locationID/upcoming.
func (s *Server) GetUpcomingOrders(ctx echo.Context) error {
	locationID, err := kernel.UUIDFromString(ctx.Param("locationID"))
	if err != nil {
		return badRequest(ctx, "invalid location id")
	}

	query, err := queries.NewGetUpcomingOrdersQuery(locationID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	upcoming, err := s.getUpcomingOrdersQueryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	rows := make([]UpcomingRow, 0, len(upcoming))
	for _, row := range upcoming {
		rows = append(rows, UpcomingRow{
			OrderID:  row.OrderID.String(),
			Number:   row.Number,
			Eligible: row.Eligible,
			Reason:   row.Reason,
		})
	}

	return ctx.JSON(http.StatusOK, rows)
}

// GetEligibility handles the eligibility endpoint.
func (s *Server) GetEligibility(ctx echo.Context) error {
	orderID, locationID, err := orderLocationParams(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	query, err := queries.NewGetEligibilityQuery(orderID, locationID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	verdict, err := s.getEligibilityHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, EligibilityResponse{
		Eligible: verdict.Eligible,
		Reason:   verdict.Reason,
	})
}

func (s *Server) bindAssignment(ctx echo.Context) (commands.AssignMachineCommand, error) {
	var request AssignmentRequest
	if err := ctx.Bind(&request); err != nil {
		return commands.AssignMachineCommand{}, errors.New("invalid request body")
	}

	orderID, locationID, machineID, err := assignmentIDs(request)
	if err != nil {
		return commands.AssignMachineCommand{}, err
	}

	return commands.NewAssignMachineCommand(orderID, locationID, machineID, request.Quantity)
}

func orderLocationParams(ctx echo.Context) (kernel.UUID, kernel.UUID, error) {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, errors.New("invalid order id")
	}
	locationID, err := kernel.UUIDFromString(ctx.Param("locationID"))
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, errors.New("invalid location id")
	}
	return orderID, locationID, nil
}

func assignmentIDs(request AssignmentRequest) (kernel.UUID, kernel.UUID, kernel.UUID, error) {
	orderID, err := kernel.UUIDFromString(request.OrderID)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, kernel.UUID{}, errors.New("invalid order id")
	}
	locationID, err := kernel.UUIDFromString(request.LocationID)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, kernel.UUID{}, errors.New("invalid location id")
	}
	machineID, err := kernel.UUIDFromString(request.MachineID)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, kernel.UUID{}, errors.New("invalid machine id")
	}
	return orderID, locationID, machineID, nil
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// domainError maps application errors onto status codes: validation 400,
// missing objects 404, state and concurrency conflicts 409, quantity range
// violations 422.
func domainError(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrQuantityOutOfRange):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrInvalidTransition),
		errors.Is(err, errs.ErrBlocked),
		errors.Is(err, errs.ErrConcurrencyConflict):
		status = http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrVersionIsInvalid):
		status = http.StatusBadRequest
	}

	return ctx.JSON(status, Error{
		Code:    status,
		Message: err.Error(),
	})
}
