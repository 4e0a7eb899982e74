package service

import (
	"context"
	"errors"

	"negocioapp/internal/apperror"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// runTx executes fn inside a GORM transaction. Repositories used inside fn
// must be bound to tx with WithTx.
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	return db.WithContext(ctx).Transaction(fn)
}

// storeErr converts a gorm error into an apperror kind. Errors that already
// carry a kind pass through.
func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if apperror.KindOf(err) != apperror.KindUnknown {
		return err
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperror.NotFound("registro no encontrado")
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperror.Conflict("ya existe un registro con esos datos")
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return apperror.Validation("referencia a un registro inexistente")
	}
	log.Error().Err(err).Str("op", op).Msg("store error")
	return apperror.Store(op, err)
}

// noEncontrado maps gorm.ErrRecordNotFound to a NotFound with the given text.
func noEncontrado(op string, err error, format string, args ...any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.NotFound(format, args...)
	}
	return storeErr(op, err)
}

// duplicado maps gorm.ErrDuplicatedKey to a Conflict with the given text.
func duplicado(op string, err error, format string, args ...any) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperror.Conflict(format, args...)
	}
	return storeErr(op, err)
}
