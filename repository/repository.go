// Package repository is the only path to the database. Rows are validated
// on the way in and on the way out; multi-row writes run in one transaction.
package repository

import (
	"errors"

	"food-ordering-api/apperrors"
	"food-ordering-api/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Repository struct {
	db  *gorm.DB
	log *zap.Logger
}

func New(db *gorm.DB, log *zap.Logger) *Repository {
	return &Repository{db: db, log: log}
}

// fail logs err with op and turns it into an application error. Duplicate
// keys become conflicts; everything else is a server error.
func (r *Repository) fail(op string, err error, conflictMsg string) error {
	if err == nil {
		return nil
	}
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		return err
	}
	if conflictMsg != "" && errors.Is(err, gorm.ErrDuplicatedKey) {
		r.log.Info("unique constraint rejected write", zap.String("op", op), zap.Error(err))
		return apperrors.Conflict(conflictMsg, err)
	}
	r.log.Error("database operation failed", zap.String("op", op), zap.Error(err))
	return apperrors.Server(err)
}

// checkRow validates a row read back from storage. A row that does not match
// its schema is a defect, not user error.
func (r *Repository) checkRow(table string, row any) error {
	if err := models.Validate(row); err != nil {
		r.log.Error("row failed schema validation", zap.String("table", table), zap.Error(err))
		return apperrors.Server(err)
	}
	return nil
}

func notFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
