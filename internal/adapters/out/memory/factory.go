package memory

import "fulfillment/internal/core/ports"

// UnitOfWorkFactory hands out units of work over one Store.
type UnitOfWorkFactory struct {
	store *Store
}

func NewUnitOfWorkFactory(store *Store) UnitOfWorkFactory {
	return UnitOfWorkFactory{store: store}
}

func (f UnitOfWorkFactory) Create() ports.UnitOfWork {
	return f.store.Create()
}
