package queries

import (
	"context"

	"shopfloor/internal/core/domain/model/order"
	"shopfloor/internal/core/domain/services"
	"shopfloor/internal/core/ports"
)

// GetUpcomingOrdersQueryHandler classifies the not-yet-started orders of a
// location into upcoming and blocked using the shared eligibility service.
type GetUpcomingOrdersQueryHandler struct {
	orderRepo    ports.OrderRepository
	locationRepo ports.LocationRepository
	checker      services.EligibilityChecker
}

// NewGetUpcomingOrdersQueryHandler creates a handler for the
// upcoming/blocked view.
func NewGetUpcomingOrdersQueryHandler(
	orderRepo ports.OrderRepository, locationRepo ports.LocationRepository,
) GetUpcomingOrdersQueryHandler {
	return GetUpcomingOrdersQueryHandler{
		orderRepo:    orderRepo,
		locationRepo: locationRepo,
		checker:      services.NewEligibilityChecker(),
	}
}

// Handle executes the query. Only orders that selected the location and
// have not started there are returned.
func (h GetUpcomingOrdersQueryHandler) Handle(
	ctx context.Context, query GetUpcomingOrdersQuery,
) ([]GetUpcomingOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	unfinished, err := h.orderRepo.GetAllUnfinished(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]GetUpcomingOrdersQueryResponse, 0)
	for _, ord := range unfinished {
		if ord.StatusAt(query.LocationID()) != order.NotStarted {
			continue
		}

		selected, locErr := h.locationRepo.GetByIDs(ctx, ord.SelectedLocationIDs())
		if locErr != nil {
			return nil, locErr
		}

		for _, loc := range selected {
			if !loc.ID().IsEqual(query.LocationID()) {
				continue
			}
			result, checkErr := h.checker.Check(ord, loc, selected)
			if checkErr != nil {
				return nil, checkErr
			}
			responses = append(responses, GetUpcomingOrdersQueryResponse{
				OrderID:  ord.ID(),
				Number:   ord.Number(),
				Eligible: result.Eligible,
				Reason:   result.Reason,
			})
		}
	}

	return responses, nil
}
