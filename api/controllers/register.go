package controllers

import (
	"net/http"

	"github.com/lucasrivera/shopstead-backend/api/responses"
	"github.com/lucasrivera/shopstead-backend/api/validators"
	"github.com/lucasrivera/shopstead-backend/internal/auth"
	pkgerrors "github.com/lucasrivera/shopstead-backend/pkg/errors"
	"github.com/lucasrivera/shopstead-backend/pkg/logger"
)

// Register onboards a new user and hands back their first token pair.
func Register(svc auth.RegisterService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "register service unavailable"))
			return
		}

		var body auth.RegisterRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Register(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}
