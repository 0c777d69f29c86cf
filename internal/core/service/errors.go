package service

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/storefront/commerce-api/internal/core/domain"
)

var knownKinds = []error{
	domain.ErrUnauthenticated,
	domain.ErrForbidden,
	domain.ErrNotFound,
	domain.ErrConflict,
	domain.ErrInvalidInput,
	domain.ErrNotAllowed,
	domain.ErrInternal,
	domain.ErrInvalidRole,
	domain.ErrInvalidCredentials,
}

// surface returns err unchanged when it already belongs to the domain taxonomy.
// Anything else is logged and replaced by an Internal error carrying msg.
func surface(log zerolog.Logger, err error, msg string) error {
	for _, kind := range knownKinds {
		if errors.Is(err, kind) {
			return err
		}
	}
	log.Error().Err(err).Msg(msg)
	return domain.Internal(msg, err)
}
