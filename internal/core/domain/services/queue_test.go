package services_test

import (
	"testing"
	"time"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/services"
	"shopfloor/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func timePtr(v time.Time) *time.Time { return &v }

func TestQueueManager_Sort(t *testing.T) {
	manager := services.NewQueueManager()
	base := time.Now()

	rush1 := services.QueueEntry{
		OrderID: kernel.NewUUID(), OrderNumber: "R1",
		Rush: true, RushSetAt: timePtr(base), CreatedAt: base.Add(-time.Hour),
	}
	rush2 := services.QueueEntry{
		OrderID: kernel.NewUUID(), OrderNumber: "R2",
		Rush: true, RushSetAt: timePtr(base.Add(time.Minute)), CreatedAt: base.Add(-2 * time.Hour),
	}
	nonRush := services.QueueEntry{
		OrderID: kernel.NewUUID(), OrderNumber: "N1",
		QueuePosition: intPtr(1), CreatedAt: base.Add(-3 * time.Hour),
	}

	t.Run("rush first by rush timestamp", func(t *testing.T) {
		sorted := manager.Sort([]services.QueueEntry{nonRush, rush2, rush1})

		require.Len(t, sorted, 3)
		assert.Equal(t, "R1", sorted[0].OrderNumber)
		assert.Equal(t, "R2", sorted[1].OrderNumber)
		assert.Equal(t, "N1", sorted[2].OrderNumber)
	})

	t.Run("positions ascending, unpositioned last", func(t *testing.T) {
		positioned2 := services.QueueEntry{
			OrderID: kernel.NewUUID(), OrderNumber: "N2",
			QueuePosition: intPtr(2), CreatedAt: base,
		}
		unpositioned := services.QueueEntry{
			OrderID: kernel.NewUUID(), OrderNumber: "N3", CreatedAt: base.Add(-time.Hour),
		}

		sorted := manager.Sort([]services.QueueEntry{unpositioned, positioned2, nonRush})

		assert.Equal(t, "N1", sorted[0].OrderNumber)
		assert.Equal(t, "N2", sorted[1].OrderNumber)
		assert.Equal(t, "N3", sorted[2].OrderNumber)
	})

	t.Run("created-at tiebreak", func(t *testing.T) {
		older := services.QueueEntry{OrderID: kernel.NewUUID(), OrderNumber: "N4", CreatedAt: base.Add(-time.Hour)}
		newer := services.QueueEntry{OrderID: kernel.NewUUID(), OrderNumber: "N5", CreatedAt: base}

		sorted := manager.Sort([]services.QueueEntry{newer, older})

		assert.Equal(t, "N4", sorted[0].OrderNumber)
		assert.Equal(t, "N5", sorted[1].OrderNumber)
	})

	t.Run("input is not mutated", func(t *testing.T) {
		entries := []services.QueueEntry{nonRush, rush1}
		_ = manager.Sort(entries)
		assert.Equal(t, "N1", entries[0].OrderNumber)
	})
}

func TestQueueManager_Reorder(t *testing.T) {
	manager := services.NewQueueManager()
	base := time.Now()

	n1 := services.QueueEntry{OrderID: kernel.NewUUID(), OrderNumber: "N1", QueuePosition: intPtr(1), CreatedAt: base}
	n2 := services.QueueEntry{OrderID: kernel.NewUUID(), OrderNumber: "N2", QueuePosition: intPtr(2), CreatedAt: base}
	n3 := services.QueueEntry{OrderID: kernel.NewUUID(), OrderNumber: "N3", QueuePosition: intPtr(3), CreatedAt: base}
	rush := services.QueueEntry{OrderID: kernel.NewUUID(), OrderNumber: "R1", Rush: true, RushSetAt: timePtr(base), CreatedAt: base}
	entries := []services.QueueEntry{n1, n2, n3, rush}

	t.Run("moves target and renumbers contiguously", func(t *testing.T) {
		placements, err := manager.Reorder(entries, n3.OrderID, 1)

		require.NoError(t, err)
		require.Len(t, placements, 3, "rush rows are excluded from renumbering")
		assert.Equal(t, services.Placement{OrderID: n3.OrderID, Position: 1}, placements[0])
		assert.Equal(t, services.Placement{OrderID: n1.OrderID, Position: 2}, placements[1])
		assert.Equal(t, services.Placement{OrderID: n2.OrderID, Position: 3}, placements[2])
	})

	t.Run("position past the end clamps to last", func(t *testing.T) {
		placements, err := manager.Reorder(entries, n1.OrderID, 99)

		require.NoError(t, err)
		assert.Equal(t, services.Placement{OrderID: n1.OrderID, Position: 3}, placements[2])
	})

	t.Run("rush target rejected", func(t *testing.T) {
		_, err := manager.Reorder(entries, rush.OrderID, 1)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("unknown order", func(t *testing.T) {
		_, err := manager.Reorder(entries, kernel.NewUUID(), 1)
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("non-positive position rejected", func(t *testing.T) {
		_, err := manager.Reorder(entries, n1.OrderID, 0)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("gaps are closed even without a move", func(t *testing.T) {
		gapped := []services.QueueEntry{
			{OrderID: n1.OrderID, OrderNumber: "N1", QueuePosition: intPtr(2), CreatedAt: base},
			{OrderID: n2.OrderID, OrderNumber: "N2", QueuePosition: intPtr(7), CreatedAt: base},
		}

		placements, err := manager.Reorder(gapped, n2.OrderID, 2)

		require.NoError(t, err)
		assert.Equal(t, services.Placement{OrderID: n1.OrderID, Position: 1}, placements[0])
		assert.Equal(t, services.Placement{OrderID: n2.OrderID, Position: 2}, placements[1])
	})
}
