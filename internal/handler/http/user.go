package http

import (
	"net/http"

	"github.com/MKhiriev/admin-panel/internal/app"
	"github.com/MKhiriev/admin-panel/internal/logger"
	"github.com/MKhiriev/admin-panel/internal/utils"
	"github.com/MKhiriev/admin-panel/models"
)

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.LoginRequest
	if err := utils.DecodeJSON(r.Body, &req); err != nil {
		log.Debug().Str("func", "*Handler.login").Err(err).Msg("bad request body")
		utils.WriteMessage(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	user, err := h.services.AuthService.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	tokens, err := h.services.AuthService.IssueTokens(ctx, user)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.WriteJSON(w, models.LoginResponse{
		AccessToken:  tokens.Access.String(),
		RefreshToken: tokens.Refresh.String(),
		UserRole:     user.Role.String(),
	}, http.StatusOK)
}

func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req models.RefreshRequest
	if err := utils.DecodeJSON(r.Body, &req); err != nil {
		log.Debug().Str("func", "*Handler.refresh").Err(err).Msg("bad request body")
		utils.WriteMessage(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	tokens, err := h.services.AuthService.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.WriteJSON(w, models.LoginResponse{
		AccessToken: tokens.Access.String(),
		UserRole:    tokens.Access.Claims.Role.String(),
	}, http.StatusOK)
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	identity, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		log.Error().Str("func", "*Handler.register").Err(ErrNoIdentity).Send()
		utils.WriteMessage(w, app.MsgInternalServerError, http.StatusInternalServerError)
		return
	}

	var req models.RegisterRequest
	if err := utils.DecodeJSON(r.Body, &req); err != nil {
		log.Debug().Str("func", "*Handler.register").Err(err).Msg("bad request body")
		utils.WriteMessage(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	userID, err := h.services.AuthService.Register(r.Context(), identity.Claims, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	utils.WriteJSON(w, models.RegisterResponse{Msg: app.MsgUserCreated, UserID: userID}, http.StatusCreated)
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	identity, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		log.Error().Str("func", "*Handler.changePassword").Err(ErrNoIdentity).Send()
		utils.WriteMessage(w, app.MsgInternalServerError, http.StatusInternalServerError)
		return
	}

	var req models.ChangePasswordRequest
	if err := utils.DecodeJSON(r.Body, &req); err != nil {
		log.Debug().Str("func", "*Handler.changePassword").Err(err).Msg("bad request body")
		utils.WriteMessage(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	if err := h.services.AuthService.ChangePassword(r.Context(), identity.Claims, req.OldPassword, req.NewPassword); err != nil {
		writeServiceError(w, err)
		return
	}

	utils.WriteMessage(w, app.MsgPasswordChanged, http.StatusOK)
}

// profile serves the user record that auth already loaded for this request.
func (h *Handler) profile(w http.ResponseWriter, r *http.Request) {
	identity, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		logger.FromRequest(r).Error().Str("func", "*Handler.profile").Err(ErrNoIdentity).Send()
		utils.WriteMessage(w, app.MsgInternalServerError, http.StatusInternalServerError)
		return
	}

	user := identity.User
	utils.WriteJSON(w, models.ProfileResponse{
		Username:  user.Username,
		Email:     user.Email,
		Role:      user.Role.String(),
		LastLogin: user.LastLoginAt,
	}, http.StatusOK)
}
