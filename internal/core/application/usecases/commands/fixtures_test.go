package commands_test

import (
	"testing"
	"time"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/model/location"
	"shopfloor/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newTestLocation(t *testing.T, name string, usedOrder int, isPrimary bool) *location.Location {
	t.Helper()
	loc, err := location.NewLocation(
		kernel.NewUUID(), name, usedOrder, isPrimary, false, decimal.NewFromInt(1), false)
	require.NoError(t, err)
	return loc
}

func newTestOrder(t *testing.T, number string, totalQuantity int, locs ...*location.Location) *order.Order {
	t.Helper()
	ids := make([]kernel.UUID, 0, len(locs))
	for _, loc := range locs {
		ids = append(ids, loc.ID())
	}
	o, err := order.NewOrder(kernel.NewUUID(), number, totalQuantity, time.Now().Add(72*time.Hour), ids, time.Now())
	require.NoError(t, err)
	return o
}
