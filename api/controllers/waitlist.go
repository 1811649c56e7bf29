package controllers

import (
	"net/http"

	"github.com/luxuryconcept/storefront-backend/api/responses"
	"github.com/luxuryconcept/storefront-backend/api/validators"
	"github.com/luxuryconcept/storefront-backend/internal/waitlist"
	pkgerrors "github.com/luxuryconcept/storefront-backend/pkg/errors"
	"github.com/luxuryconcept/storefront-backend/pkg/logger"
)

type joinWaitlistRequest struct {
	Email string `json:"email" validate:"required"`
}

// JoinWaitlist records an email signup.
func JoinWaitlist(svc waitlist.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "waitlist service unavailable"))
			return
		}
		var payload joinWaitlistRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Join(r.Context(), payload.Email); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]bool{"success": true})
	}
}
