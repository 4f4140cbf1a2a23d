package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewAllotVendorCommand_DropsNameOnNegativeDecision(t *testing.T) {
	name := "Acme"

	cmd, err := commands.NewAllotVendorCommand(order.Orders, "O1", false, &name)

	require.NoError(t, err)
	assert.False(t, cmd.Decision())
	assert.Nil(t, cmd.VendorName())
	assert.ErrorIs(t, commands.AllotVendorCommand{}.Validate(), commands.ErrAllotVendorCommandIsNotConstructed)
}

func TestAllotVendorCommandHandler_Handle(t *testing.T) {
	name := "Vendor 2"
	blank := "  "

	tests := []struct {
		name       string
		decision   bool
		vendorName *string
		wantErr    error
		wantName   *string
	}{
		{"allot to vendor", true, &name, nil, &name},
		{"request without vendor", true, nil, nil, nil},
		{"decline", false, &name, nil, nil},
		{"blank vendor", true, &blank, errs.ErrValueIsRequired, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			stored := newPendingOrder("O1")
			cmd, err := commands.NewAllotVendorCommand(order.Orders, "O1", tt.decision, tt.vendorName)
			require.NoError(t, err)

			repo := new(MockOrderRepository)
			uow := new(MockOrderUoW)
			locker := new(MockLocker)
			expectLock(locker, "orders/O1")
			uow.On("Begin", ctx).Return(nil).Once()
			uow.On("OrderRepository").Return(repo).Once()
			repo.On("Get", ctx, order.Orders, kernel.MustOrderID("O1")).Return(stored, nil).Once()
			if tt.wantErr == nil {
				repo.On("Update", ctx, stored).Return(nil).Once()
				uow.On("Commit", ctx).Return(nil).Once()
			}
			uow.On("Rollback", ctx).Return(nil).Once()
			factory := new(MockOrderUoWFactory)
			factory.On("Create").Return(uow).Once()

			h := commands.NewAllotVendorCommandHandler(factory, locker)
			updated, err := h.Handle(ctx, cmd)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, stored.VendorAllotment())
				repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			v := updated.VendorAllotment()
			require.NotNil(t, v)
			assert.Equal(t, tt.decision, v.Decision())
			assert.Equal(t, tt.wantName, v.VendorName())
			assert.Equal(t, order.Pending, updated.Status())
			assert.Equal(t, order.DeliveryOrderPlaced, updated.DeliveryStatus())
			uow.AssertExpectations(t)
			repo.AssertExpectations(t)
		})
	}
}
