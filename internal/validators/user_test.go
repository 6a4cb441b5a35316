package validators

import (
	"context"
	"strings"
	"testing"

	"github.com/MKhiriev/admin-panel/models"
	"github.com/stretchr/testify/assert"
)

func validRegisterRequest() models.RegisterRequest {
	return models.RegisterRequest{
		Username: "alice",
		Email:    "a@x",
		Password: "Alice#2024",
		Role:     "admin_tecnico",
	}
}

func TestUserValidator_Validate(t *testing.T) {
	v := NewUserValidator(models.UsernamePolicy{MinLength: 3, MaxLength: 50})
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(r *models.RegisterRequest)
		wantErr error
	}{
		{name: "valid", mutate: func(*models.RegisterRequest) {}},
		{name: "username too short", mutate: func(r *models.RegisterRequest) { r.Username = "ab" }, wantErr: ErrInvalidUsername},
		{name: "username min length", mutate: func(r *models.RegisterRequest) { r.Username = "abc" }},
		{name: "username max length", mutate: func(r *models.RegisterRequest) { r.Username = strings.Repeat("u", 50) }},
		{name: "username too long", mutate: func(r *models.RegisterRequest) { r.Username = strings.Repeat("u", 51) }, wantErr: ErrInvalidUsername},
		{name: "empty email", mutate: func(r *models.RegisterRequest) { r.Email = "" }, wantErr: ErrInvalidEmail},
		{name: "email without at", mutate: func(r *models.RegisterRequest) { r.Email = "alice" }, wantErr: ErrInvalidEmail},
		{name: "email with display name", mutate: func(r *models.RegisterRequest) { r.Email = "Alice <a@x>" }, wantErr: ErrInvalidEmail},
		{name: "email too long", mutate: func(r *models.RegisterRequest) { r.Email = strings.Repeat("a", 115) + "@x.io" + "o" }, wantErr: ErrInvalidEmail},
		{name: "unknown role", mutate: func(r *models.RegisterRequest) { r.Role = "root" }, wantErr: ErrInvalidRole},
		{name: "missing role", mutate: func(r *models.RegisterRequest) { r.Role = "" }, wantErr: ErrInvalidRole},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRegisterRequest()
			tt.mutate(&req)

			err := v.Validate(ctx, req)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUserValidator_FieldScoping(t *testing.T) {
	v := NewUserValidator(models.UsernamePolicy{MinLength: 3, MaxLength: 50})
	ctx := context.Background()

	req := validRegisterRequest()
	req.Role = "root"

	assert.NoError(t, v.Validate(ctx, &req, FieldUsername, FieldEmail))
	assert.ErrorIs(t, v.Validate(ctx, &req, FieldRole), ErrInvalidRole)
	assert.ErrorIs(t, v.Validate(ctx, &req, "password"), ErrUnknownField)
}

func TestUserValidator_UnsupportedType(t *testing.T) {
	v := NewUserValidator(models.UsernamePolicy{MinLength: 3, MaxLength: 50})
	assert.ErrorIs(t, v.Validate(context.Background(), "alice"), ErrUnsupportedType)
}
