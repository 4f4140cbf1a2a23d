package commands

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"
)

// FileReturnCommandHandler copies an order into the Returns collection.
//
// Errors:
//   - errs.ObjectNotFoundError when no such order exists
//   - errs.ObjectAlreadyExistsError when a return is already open for it
type FileReturnCommandHandler struct {
	uowFactory OrderUoWFactory
	locker     OrderLocker
	filer      services.ReturnFiler
}

func NewFileReturnCommandHandler(uowFactory OrderUoWFactory, locker OrderLocker) FileReturnCommandHandler {
	return FileReturnCommandHandler{
		uowFactory: uowFactory,
		locker:     locker,
		filer:      services.NewReturnFiler(),
	}
}

// Handle stores the new return request and returns it.
func (h FileReturnCommandHandler) Handle(ctx context.Context, cmd FileReturnCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	unlock := h.locker.Lock(order.LockKey(order.Returns, cmd.OrderID()))
	defer unlock()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	source, err := repo.Get(ctx, order.Orders, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	existing, err := repo.Get(ctx, order.Returns, cmd.OrderID())
	if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	ret, err := h.filer.File(source, existing, cmd.Reason(), time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err = repo.Add(ctx, ret); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return ret, nil
}
