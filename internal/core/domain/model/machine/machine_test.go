package machine_test

import (
	"testing"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/model/machine"
	"shopfloor/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMachine(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		id := kernel.NewUUID()
		locID := kernel.NewUUID()

		m, err := machine.NewMachine(id, locID, "CUT-01")

		require.NoError(t, err)
		require.NoError(t, m.Validate())
		assert.True(t, m.ID().IsEqual(id))
		assert.True(t, m.LocationID().IsEqual(locID))
		assert.Equal(t, "CUT-01", m.Code())
	})

	t.Run("empty code rejected", func(t *testing.T) {
		_, err := machine.NewMachine(kernel.NewUUID(), kernel.NewUUID(), "")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero location rejected", func(t *testing.T) {
		_, err := machine.NewMachine(kernel.NewUUID(), kernel.UUID{}, "CUT-01")
		require.Error(t, err)
	})
}

func TestNewAssignment(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		a, err := machine.NewAssignment(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), 30)

		require.NoError(t, err)
		require.NoError(t, a.Validate())
		assert.Equal(t, 30, a.Quantity())
	})

	t.Run("zero quantity allowed", func(t *testing.T) {
		_, err := machine.NewAssignment(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), 0)
		require.NoError(t, err)
	})

	t.Run("negative quantity rejected", func(t *testing.T) {
		_, err := machine.NewAssignment(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), -1)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestAssignment_SetQuantity(t *testing.T) {
	a, err := machine.NewAssignment(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), 10)
	require.NoError(t, err)

	require.NoError(t, a.SetQuantity(25))
	assert.Equal(t, 25, a.Quantity())

	require.Error(t, a.SetQuantity(-5))
	assert.Equal(t, 25, a.Quantity())
}
