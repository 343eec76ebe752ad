package repositories

import (
	"errors"

	"gorm.io/gorm"

	domainerrors "complianceconnect.backend/internal/domain/errors"
)

// translate maps driver errors onto domain errors. The DB must be opened
// with TranslateError so unique violations surface as ErrDuplicatedKey.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domainerrors.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domainerrors.ErrAlreadyExists
	default:
		return err
	}
}
