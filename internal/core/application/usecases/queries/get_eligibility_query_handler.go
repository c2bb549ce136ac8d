package queries

import (
	"context"

	"shopfloor/internal/core/domain/services"
	"shopfloor/internal/core/ports"
	"shopfloor/internal/pkg/errs"
)

// GetEligibilityQueryHandler evaluates the gating rules for one
// (order, location) pair.
//
// Unlike the raw-SQL board reads, this query loads the full aggregate:
// the verdict comes from the same domain service the command side uses,
// so the UI can never disagree with what start would actually do.
type GetEligibilityQueryHandler struct {
	orderRepo    ports.OrderRepository
	locationRepo ports.LocationRepository
	checker      services.EligibilityChecker
}

// NewGetEligibilityQueryHandler creates a handler for eligibility queries.
func NewGetEligibilityQueryHandler(
	orderRepo ports.OrderRepository, locationRepo ports.LocationRepository,
) GetEligibilityQueryHandler {
	return GetEligibilityQueryHandler{
		orderRepo:    orderRepo,
		locationRepo: locationRepo,
		checker:      services.NewEligibilityChecker(),
	}
}

// Handle executes the query.
func (h GetEligibilityQueryHandler) Handle(
	ctx context.Context, query GetEligibilityQuery,
) (GetEligibilityQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetEligibilityQueryResponse{}, err
	}

	ord, err := h.orderRepo.Get(ctx, query.OrderID())
	if err != nil {
		return GetEligibilityQueryResponse{}, err
	}

	selected, err := h.locationRepo.GetByIDs(ctx, ord.SelectedLocationIDs())
	if err != nil {
		return GetEligibilityQueryResponse{}, err
	}

	var target *GetEligibilityQueryResponse
	for _, loc := range selected {
		if !loc.ID().IsEqual(query.LocationID()) {
			continue
		}
		result, checkErr := h.checker.Check(ord, loc, selected)
		if checkErr != nil {
			return GetEligibilityQueryResponse{}, checkErr
		}
		target = &GetEligibilityQueryResponse{Eligible: result.Eligible, Reason: result.Reason}
	}
	if target == nil {
		return GetEligibilityQueryResponse{}, errs.NewObjectNotFoundError(
			"locationId", query.LocationID().String())
	}

	return *target, nil
}
