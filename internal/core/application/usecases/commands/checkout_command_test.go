package commands_test

import (
	"testing"
	"time"

	"roadside/internal/core/application/usecases/commands"
	"roadside/internal/core/domain/model/kernel"
	"roadside/internal/core/domain/model/order"
	"roadside/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCheckoutCommand_ValidInput(t *testing.T) {
	// Arrange
	centerID := kernel.NewUUID()
	scheduled := time.Date(2026, 3, 1, 10, 0, 0, 0, time.FixedZone("BDT", 6*3600))

	// Act
	cmd, err := commands.NewCheckoutCommand(" customer-1 ", centerID.String(), "23.7925", "90.4078", "Online", &scheduled)

	// Assert
	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	require.NoError(t, cmd.OrderID().Validate())
	assert.Equal(t, "customer-1", cmd.CustomerRef())
	require.NotNil(t, cmd.CenterID())
	assert.Equal(t, centerID, *cmd.CenterID())
	require.NotNil(t, cmd.Pickup())
	assert.InDelta(t, 23.7925, cmd.Pickup().Lat(), 1e-9)
	assert.InDelta(t, 90.4078, cmd.Pickup().Lng(), 1e-9)
	require.NoError(t, cmd.PickupError())
	assert.Equal(t, order.Online, cmd.PaymentMethod())
	require.NotNil(t, cmd.ScheduledTime())
	assert.Equal(t, time.UTC, cmd.ScheduledTime().Location())
	assert.True(t, scheduled.Equal(*cmd.ScheduledTime()))
}

func TestNewCheckoutCommand_LenientFields(t *testing.T) {
	testCases := []struct {
		name          string
		centerID      string
		lat, lng      string
		wantCenter    bool
		wantPickup    bool
		wantPickupErr error
	}{
		{name: "nothing given", wantPickupErr: errs.ErrValueIsRequired},
		{name: "malformed center", centerID: "abc", lat: "1", lng: "2", wantPickup: true},
		{name: "non numeric latitude", centerID: kernel.NewUUID().String(), lat: "north", lng: "90", wantCenter: true,
			wantPickupErr: errs.ErrValueIsInvalid},
		{name: "latitude out of range", centerID: kernel.NewUUID().String(), lat: "91", lng: "90", wantCenter: true,
			wantPickupErr: errs.ErrValueIsOutOfRange},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			cmd, err := commands.NewCheckoutCommand("customer-1", tc.centerID, tc.lat, tc.lng, "", nil)

			// Assert
			require.NoError(t, err)
			assert.Equal(t, tc.wantCenter, cmd.CenterID() != nil)
			assert.Equal(t, tc.wantPickup, cmd.Pickup() != nil)
			if tc.wantPickupErr != nil {
				require.ErrorIs(t, cmd.PickupError(), tc.wantPickupErr)
			}
			assert.Equal(t, order.Cash, cmd.PaymentMethod())
		})
	}
}

func TestNewCheckoutCommand_StrictFields(t *testing.T) {
	// Act
	_, err := commands.NewCheckoutCommand("  ", "", "", "", "crypto", nil)

	// Assert
	require.ErrorIs(t, err, commands.ErrCustomerRefIsRequired)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestNewCheckoutCommand_GeneratesUniqueOrderIDs(t *testing.T) {
	cmd1, err := commands.NewCheckoutCommand("customer-1", "", "", "", "cash", nil)
	require.NoError(t, err)
	cmd2, err := commands.NewCheckoutCommand("customer-1", "", "", "", "cash", nil)
	require.NoError(t, err)

	assert.False(t, cmd1.OrderID().IsEqual(cmd2.OrderID()))
}

func TestCheckoutCommand_ZeroValueIsNotConstructed(t *testing.T) {
	var cmd commands.CheckoutCommand

	require.ErrorIs(t, cmd.Validate(), commands.ErrCheckoutCommandIsNotConstructed)
}
