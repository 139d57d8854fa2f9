package repository

import (
	"context"
	"reflect"
)

// UnitOfWork defines the contract for transactional work and type-safe repository access.
//
// Do runs the given function in one atomic commit. Repositories obtained from the
// UnitOfWork passed to fn share that commit; if fn returns an error nothing is written.
// Example usage:
//
//	err := uow.Do(ctx, func(tx UnitOfWork) error {
//		repo, err := tx.CategoryRepository()
//		...
//	})
type UnitOfWork interface {
	// Do executes the given function within a transaction boundary.
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	// GetRepository returns a repository of the requested type, bound to the current transaction/session.
	// Example:
	//   repoAny, err := uow.GetRepository(reflect.TypeOf((*ClientRepository)(nil)).Elem())
	//   repo := repoAny.(ClientRepository)
	GetRepository(repoType reflect.Type) (any, error)

	// Type-safe repository access methods (convenience methods)
	CategoryRepository() (CategoryRepository, error)
	TransactionRepository() (TransactionRepository, error)
	ClientRepository() (ClientRepository, error)
	ClientHistoryRepository() (ClientHistoryRepository, error)
}
