package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/admin-panel/internal/logger"
	"github.com/MKhiriev/admin-panel/internal/utils"
	"github.com/MKhiriev/admin-panel/models"
	"github.com/go-resty/resty/v2"
)

type httpAPIAdapter struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPAPIAdapter constructs the resty implementation of [APIAdapter].
// address may omit the scheme, in which case http is assumed.
func NewHTTPAPIAdapter(address string, timeout time.Duration, logger *logger.Logger) (APIAdapter, error) {
	baseURL, err := normalizeBaseURL(address)
	if err != nil {
		return nil, fmt.Errorf("invalid server address: %w", err)
	}

	return &httpAPIAdapter{
		client: utils.NewHTTPClient(baseURL, timeout),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpAPIAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpAPIAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpAPIAdapter) Login(ctx context.Context, username, password string) (models.LoginResponse, error) {
	var result models.LoginResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(models.LoginRequest{Username: username, Password: password}).
		SetResult(&result).
		Post("/user/login")
	if err != nil {
		return models.LoginResponse{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.LoginResponse{}, err
	}

	h.SetToken(result.AccessToken)
	h.logger.Debug().Str("func", "*httpAPIAdapter.Login").Str("username", username).Msg("logged in")
	return result, nil
}

func (h *httpAPIAdapter) Refresh(ctx context.Context, refreshToken string) (models.LoginResponse, error) {
	var result models.LoginResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(models.RefreshRequest{RefreshToken: refreshToken}).
		SetResult(&result).
		Post("/user/refresh")
	if err != nil {
		return models.LoginResponse{}, fmt.Errorf("refresh request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.LoginResponse{}, err
	}

	h.SetToken(result.AccessToken)
	return result, nil
}

func (h *httpAPIAdapter) Register(ctx context.Context, req models.RegisterRequest) (models.RegisterResponse, error) {
	var result models.RegisterResponse

	r, err := h.authedRequest(ctx)
	if err != nil {
		return models.RegisterResponse{}, err
	}

	resp, err := r.SetBody(req).SetResult(&result).Post("/user/register")
	if err != nil {
		return models.RegisterResponse{}, fmt.Errorf("register request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.RegisterResponse{}, err
	}

	return result, nil
}

func (h *httpAPIAdapter) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	r, err := h.authedRequest(ctx)
	if err != nil {
		return err
	}

	resp, err := r.
		SetBody(models.ChangePasswordRequest{OldPassword: oldPassword, NewPassword: newPassword}).
		Post("/user/change-password")
	if err != nil {
		return fmt.Errorf("change password request: %w", err)
	}

	return mapHTTPError(resp)
}

func (h *httpAPIAdapter) Profile(ctx context.Context) (models.ProfileResponse, error) {
	var result models.ProfileResponse

	r, err := h.authedRequest(ctx)
	if err != nil {
		return models.ProfileResponse{}, err
	}

	resp, err := r.SetResult(&result).Get("/user/profile")
	if err != nil {
		return models.ProfileResponse{}, fmt.Errorf("profile request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.ProfileResponse{}, err
	}

	return result, nil
}

func (h *httpAPIAdapter) Health(ctx context.Context) (models.HealthResponse, error) {
	var result models.HealthResponse

	resp, err := h.client.R().SetContext(ctx).SetResult(&result).Get("/health")
	if err != nil {
		return models.HealthResponse{}, fmt.Errorf("health request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.HealthResponse{}, err
	}

	return result, nil
}

// authedRequest fails fast with ErrNotLoggedIn when no token is stored.
func (h *httpAPIAdapter) authedRequest(ctx context.Context) (*resty.Request, error) {
	token := h.Token()
	if token == "" {
		return nil, ErrNotLoggedIn
	}
	return h.client.R().SetContext(ctx).SetAuthToken(token), nil
}
