package repository

import (
	"context"
	"fmt"
	"reflect"

	"github.com/amirasaad/opsledger/pkg/repository"
	"gorm.io/gorm"
)

// UoW provides transaction boundary and repository access in one abstraction.
// Repositories handed out inside Do share the transaction, so everything written
// there commits or rolls back together.
type UoW struct {
	db           *gorm.DB
	tx           *gorm.DB
	repoRegistry map[reflect.Type]func(*gorm.DB) any
}

// NewUoW creates a new UoW for the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{
		db: db,
		repoRegistry: map[reflect.Type]func(*gorm.DB) any{
			reflect.TypeOf((*repository.CategoryRepository)(nil)).Elem():    func(db *gorm.DB) any { return NewCategoryRepository(db) },
			reflect.TypeOf((*repository.TransactionRepository)(nil)).Elem(): func(db *gorm.DB) any { return NewTransactionRepository(db) },
			reflect.TypeOf((*repository.ClientRepository)(nil)).Elem():      func(db *gorm.DB) any { return NewClientRepository(db) },
			reflect.TypeOf((*repository.ClientHistoryRepository)(nil)).Elem(): func(db *gorm.DB) any {
				return NewClientHistoryRepository(db)
			},
		},
	}
}

// Do runs the given function in a transaction boundary, providing a UoW with repository access.
// Calling Do on a UoW that is already inside a transaction opens a savepoint.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	base := u.db
	if u.tx != nil {
		base = u.tx
	}
	err := base.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UoW{db: u.db, tx: tx, repoRegistry: u.repoRegistry})
	})
	return MapGormErrorToDomain(err)
}

// GetRepository returns the repository registered for repoType, bound to the current
// transaction or, outside Do, to the plain connection.
func (u *UoW) GetRepository(repoType reflect.Type) (any, error) {
	constructor, ok := u.repoRegistry[repoType]
	if !ok {
		return nil, fmt.Errorf("unsupported repository type: %v", repoType)
	}
	return constructor(u.session()), nil
}

func (u *UoW) session() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UoW) CategoryRepository() (repository.CategoryRepository, error) {
	repo, err := u.GetRepository(reflect.TypeOf((*repository.CategoryRepository)(nil)).Elem())
	if err != nil {
		return nil, err
	}
	return repo.(repository.CategoryRepository), nil
}

func (u *UoW) TransactionRepository() (repository.TransactionRepository, error) {
	repo, err := u.GetRepository(reflect.TypeOf((*repository.TransactionRepository)(nil)).Elem())
	if err != nil {
		return nil, err
	}
	return repo.(repository.TransactionRepository), nil
}

func (u *UoW) ClientRepository() (repository.ClientRepository, error) {
	repo, err := u.GetRepository(reflect.TypeOf((*repository.ClientRepository)(nil)).Elem())
	if err != nil {
		return nil, err
	}
	return repo.(repository.ClientRepository), nil
}

func (u *UoW) ClientHistoryRepository() (repository.ClientHistoryRepository, error) {
	repo, err := u.GetRepository(reflect.TypeOf((*repository.ClientHistoryRepository)(nil)).Elem())
	if err != nil {
		return nil, err
	}
	return repo.(repository.ClientHistoryRepository), nil
}

var _ repository.UnitOfWork = (*UoW)(nil)
