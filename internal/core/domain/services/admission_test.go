package services_test

import (
	"testing"
	"time"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/model/location"
	"shopfloor/internal/core/domain/model/order"
	"shopfloor/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdmissionService_Admit(t *testing.T) {
	service := services.NewAdmissionService()

	t.Run("admits eligible entry location at queue tail", func(t *testing.T) {
		locA := makeLocation(t, "Cutting", 1, true, false)
		locB := makeLocation(t, "Sewing", 2, false, false)
		selected := []*location.Location{locA, locB}

		o := makeOrder(t, locA, locB)
		require.NoError(t, o.SetQueuePosition(1))

		admitted, err := service.Admit(o, selected, map[kernel.UUID]int{locA.ID(): 4})

		require.NoError(t, err)
		require.Equal(t, []kernel.UUID{locA.ID()}, admitted)
		assert.Equal(t, order.InQueue, o.StatusAt(locA.ID()))
		p, _ := o.ProgressAt(locA.ID())
		assert.Equal(t, 5, *p.QueuePosition())
		assert.Equal(t, order.NotStarted, o.StatusAt(locB.ID()), "downstream waits for upstream to start")
	})

	t.Run("nothing admitted before global queue admission", func(t *testing.T) {
		locA := makeLocation(t, "Cutting", 1, true, false)
		selected := []*location.Location{locA}
		o := makeOrder(t, locA)

		admitted, err := service.Admit(o, selected, nil)

		require.NoError(t, err)
		assert.Empty(t, admitted)
		assert.Equal(t, order.NotStarted, o.StatusAt(locA.ID()))
	})

	t.Run("cascades through tiers in one call", func(t *testing.T) {
		// A non-primary entry stage needs no global queue admission, and
		// its enqueue is enough to unblock the next tier, so both rows
		// admit in a single fixpoint pass.
		locA := makeLocation(t, "Embroidery", 1, false, false)
		locB := makeLocation(t, "Sewing", 2, false, false)
		selected := []*location.Location{locA, locB}
		o := makeOrder(t, locA, locB)

		admitted, err := service.Admit(o, selected, nil)

		require.NoError(t, err)
		require.Equal(t, []kernel.UUID{locA.ID(), locB.ID()}, admitted)
		assert.Equal(t, order.InQueue, o.StatusAt(locA.ID()))
		assert.Equal(t, order.InQueue, o.StatusAt(locB.ID()))
	})

	t.Run("skip-auto-queue locations are never auto-admitted", func(t *testing.T) {
		locA := makeLocation(t, "Manual Station", 1, false, true)
		selected := []*location.Location{locA}
		o := makeOrder(t, locA)

		admitted, err := service.Admit(o, selected, nil)

		require.NoError(t, err)
		assert.Empty(t, admitted)
		assert.Equal(t, order.NotStarted, o.StatusAt(locA.ID()))
	})

	t.Run("already queued rows are untouched", func(t *testing.T) {
		locA := makeLocation(t, "Embroidery", 1, false, false)
		selected := []*location.Location{locA}
		o := makeOrder(t, locA)
		require.NoError(t, o.EnqueueAt(locA, 2))

		admitted, err := service.Admit(o, selected, map[kernel.UUID]int{locA.ID(): 2})

		require.NoError(t, err)
		assert.Empty(t, admitted)
		p, _ := o.ProgressAt(locA.ID())
		assert.Equal(t, 2, *p.QueuePosition())
	})

	t.Run("started upstream unblocks downstream", func(t *testing.T) {
		locA := makeLocation(t, "Cutting", 1, true, false)
		locB := makeLocation(t, "Sewing", 2, false, false)
		selected := []*location.Location{locA, locB}
		o := makeOrder(t, locA, locB)
		require.NoError(t, o.SetQueuePosition(1))
		require.NoError(t, o.StartAt(locA, time.Now()))

		admitted, err := service.Admit(o, selected, nil)

		require.NoError(t, err)
		require.Equal(t, []kernel.UUID{locB.ID()}, admitted)
		assert.Equal(t, order.InQueue, o.StatusAt(locB.ID()))
	})
}
