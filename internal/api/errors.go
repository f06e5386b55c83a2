package api

import (
	"errors"
	"net/http"

	"github.com/pduartel/accounts-api/internal/service"
)

// MapServiceError resolves a service error to the HTTP status code and
// caller-safe message to respond with. The service already normalizes every
// fault to a kinded error carrying its status; anything else (which should
// not happen) degrades to a generic 500.
func MapServiceError(err error) (int, string) {
	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		if svcErr.Kind == service.KindInternal {
			// Internal messages may quote collaborator errors; never expose them.
			return svcErr.Status, "An unexpected error occurred"
		}
		return svcErr.Status, svcErr.Message
	}

	return http.StatusInternalServerError, "An unexpected error occurred"
}
