package http

import (
	"net/http"

	"github.com/MKhiriev/admin-panel/internal/app"
	"github.com/MKhiriev/admin-panel/internal/logger"
	"github.com/MKhiriev/admin-panel/internal/utils"
	"github.com/rs/zerolog"
)

// auth resolves the bearer token to an identity and stores it in the request
// context. Requests without a usable token never reach the handler.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		rawToken, err := utils.ParseBearerToken(r.Header.Get("Authorization"))
		if err != nil {
			log.Debug().Str("func", "*Handler.auth").Err(err).Msg("rejected request")
			utils.WriteMessage(w, app.MsgMissingToken, http.StatusUnauthorized)
			return
		}

		identity, err := h.services.AuthService.Identify(r.Context(), rawToken)
		if err != nil {
			log.Debug().Str("func", "*Handler.auth").Err(err).Msg("token rejected")
			writeServiceError(w, err)
			return
		}

		l := log.GetChildLogger()
		l.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("username", identity.User.Username)
		})

		ctx := utils.WithIdentity(l.WithContext(r.Context()), identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
