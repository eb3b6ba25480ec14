package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/you/agrigo/pkg/apperr"
)

// storeErr classifies a gorm error. notFound is the message used when the row
// is missing; it is ignored for other failures. Coded failures carry a message
// fit for clients, with op kept on the wrapped error for logs.
func storeErr(op, notFound string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.NotFoundf("%s", notFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperr.StoreCode("Duplicate value", "duplicate_key", fmt.Errorf("%s: %w", op, err))
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return apperr.StoreCode("Referenced record does not exist", "foreign_key_violation", fmt.Errorf("%s: %w", op, err))
	}
	return apperr.Store(op, err)
}

// MigrateAll creates the tables in dependency order.
func MigrateAll(db *gorm.DB) error {
	for _, m := range []func() error{
		NewUserRepo(db).Migrate,
		NewResourceRepo(db).Migrate,
		NewBookingRepo(db).Migrate,
	} {
		if err := m(); err != nil {
			return err
		}
	}
	return nil
}
