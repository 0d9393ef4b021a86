package v1

import (
	"net/http"

	"prosalon-backend/internal/domain"
	"prosalon-backend/pkg/logger"
	"prosalon-backend/pkg/utils"
)

// writeDomainError maps the domain error taxonomy onto HTTP statuses:
// validation 400, not found 404, conflict (already retried once) 409,
// anything else 500 with the detail kept out of the response body.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case domain.IsValidation(err):
		utils.WriteError(w, http.StatusBadRequest, err.Error())
	case domain.IsNotFound(err):
		utils.WriteError(w, http.StatusNotFound, err.Error())
	case domain.IsConflict(err):
		utils.WriteError(w, http.StatusConflict, err.Error())
	default:
		logger.WithContext(r.Context()).Error().Err(err).Msg("request failed")
		utils.WriteError(w, http.StatusInternalServerError, "internal server error")
	}
}

// audienceFor picks the pricing audience from the (optionally) authenticated
// user on the request context. Anonymous requests see retail pricing.
func audienceFor(r *http.Request) domain.Audience {
	if user, ok := r.Context().Value(domain.UserContextKey).(*domain.User); ok && user != nil {
		return domain.AudienceForRole(user.Role)
	}
	return domain.AudienceRetail
}
