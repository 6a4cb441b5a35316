package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/admin-panel/internal/app"
	"github.com/MKhiriev/admin-panel/internal/service"
	"github.com/stretchr/testify/assert"
)

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{service.ErrInvalidCredentials, http.StatusUnauthorized},
		{service.ErrLocked, http.StatusUnauthorized},
		{service.ErrExpired, http.StatusUnauthorized},
		{service.ErrBadSignature, http.StatusUnauthorized},
		{service.ErrMalformed, http.StatusUnauthorized},
		{service.ErrUnknownSubject, http.StatusUnauthorized},
		{service.ErrWeakPassword, http.StatusBadRequest},
		{service.ErrDuplicate, http.StatusBadRequest},
		{service.ErrInvalidInput, http.StatusBadRequest},
		{service.ErrForbidden, http.StatusForbidden},
		{service.ErrStoreUnavailable, http.StatusServiceUnavailable},
		{service.ErrInternal, http.StatusInternalServerError},
		{fmt.Errorf("wrapped: %w", service.ErrForbidden), http.StatusForbidden},
		{errors.New("not a service error"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, statusFromError(tt.err))
		})
	}
}

func TestErrorKindMap_CoversEveryKind(t *testing.T) {
	kinds := []service.ErrorKind{
		service.KindInvalidCredentials, service.KindLocked, service.KindWeakPassword,
		service.KindDuplicate, service.KindForbidden, service.KindExpired,
		service.KindBadSignature, service.KindMalformed, service.KindUnknownSubject,
		service.KindStoreUnavailable, service.KindInvalidInput, service.KindInternal,
	}

	assert.Len(t, errorKindMap, len(kinds))
	for _, kind := range kinds {
		assert.Contains(t, errorKindMap, kind)
	}
}

func TestWriteServiceError_UnknownError(t *testing.T) {
	rr := httptest.NewRecorder()
	writeServiceError(rr, errors.New("boom"))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"msg":"`+app.MsgInternalServerError+`"}`, rr.Body.String())
}

func TestRetryAfterSeconds(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{15 * time.Minute, "900"},
		{90 * time.Second, "90"},
		{89*time.Second + time.Millisecond, "90"},
		{200 * time.Millisecond, "1"},
		{0, "1"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, retryAfterSeconds(tt.in.Seconds()), tt.in.String())
	}
}
