package usecases

import (
	"errors"
	"fmt"

	domainerrors "complianceconnect.backend/internal/domain/errors"
)

// notFound keeps domain 404s readable and wraps anything else as a storage failure.
func notFound(err error, what string) error {
	if errors.Is(err, domainerrors.ErrNotFound) {
		return domainerrors.NotFound(what + " not found")
	}
	return fmt.Errorf("load %s: %w", what, err)
}
