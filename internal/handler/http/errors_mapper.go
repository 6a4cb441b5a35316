package http

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/MKhiriev/admin-panel/internal/app"
	"github.com/MKhiriev/admin-panel/internal/service"
	"github.com/MKhiriev/admin-panel/internal/utils"
	"github.com/MKhiriev/admin-panel/models"
)

type errorResponse struct {
	status int
	msg    string
}

var errorKindMap = map[service.ErrorKind]errorResponse{
	service.KindInvalidCredentials: {http.StatusUnauthorized, app.MsgInvalidLoginPassword},
	service.KindLocked:             {http.StatusUnauthorized, app.MsgAccountLocked},
	service.KindExpired:            {http.StatusUnauthorized, app.MsgTokenIsExpired},
	service.KindBadSignature:       {http.StatusUnauthorized, app.MsgTokenIsInvalid},
	service.KindMalformed:          {http.StatusUnauthorized, app.MsgTokenIsInvalid},
	service.KindUnknownSubject:     {http.StatusUnauthorized, app.MsgUserNotFound},
	service.KindWeakPassword:       {http.StatusBadRequest, app.MsgWeakPassword},
	service.KindDuplicate:          {http.StatusBadRequest, app.MsgLoginAlreadyExists},
	service.KindInvalidInput:       {http.StatusBadRequest, ""},
	service.KindForbidden:          {http.StatusForbidden, app.MsgAccessDenied},
	service.KindStoreUnavailable:   {http.StatusServiceUnavailable, app.MsgServiceUnavailable},
	service.KindInternal:           {http.StatusInternalServerError, app.MsgInternalServerError},
}

func statusFromError(err error) int {
	if resp, ok := errorKindMap[service.KindOf(err)]; ok {
		return resp.status
	}
	return http.StatusInternalServerError
}

// writeServiceError renders err as a MessageResponse with the status of its
// kind. Password violations and the lockout hint travel with the response.
func writeServiceError(w http.ResponseWriter, err error) {
	kind := service.KindOf(err)
	resp, ok := errorKindMap[kind]
	if !ok {
		resp = errorKindMap[service.KindInternal]
	}

	body := models.MessageResponse{Msg: resp.msg}

	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		switch kind {
		case service.KindWeakPassword:
			for _, v := range svcErr.Violations {
				body.Violations = append(body.Violations, string(v))
			}
		case service.KindInvalidInput:
			body.Msg = svcErr.Detail
		case service.KindLocked:
			w.Header().Set("Retry-After", retryAfterSeconds(svcErr.RetryAfter.Seconds()))
		}
	}
	if body.Msg == "" {
		body.Msg = string(kind)
	}

	utils.WriteJSON(w, body, resp.status)
}

// retryAfterSeconds rounds up to whole seconds, never below one.
func retryAfterSeconds(seconds float64) string {
	s := int64(math.Ceil(seconds))
	if s < 1 {
		s = 1
	}
	return strconv.FormatInt(s, 10)
}
