package adapter

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/admin-panel/models"
	"github.com/go-resty/resty/v2"
)

var statusErrorMap = map[int]error{
	http.StatusBadRequest:          ErrBadRequest,
	http.StatusUnauthorized:        ErrUnauthorized,
	http.StatusForbidden:           ErrForbidden,
	http.StatusNotFound:            ErrNotFound,
	http.StatusServiceUnavailable:  ErrUnavailable,
	http.StatusInternalServerError: ErrInternalServerError,
}

func mapHTTPError(resp *resty.Response) error {
	status := resp.StatusCode()
	if status >= http.StatusOK && status < http.StatusMultipleChoices {
		return nil
	}

	apiErr := &APIError{Kind: ErrUnexpectedStatus, Status: status}
	if kind, ok := statusErrorMap[status]; ok {
		apiErr.Kind = kind
	}

	var body models.MessageResponse
	if err := json.Unmarshal(resp.Body(), &body); err == nil {
		apiErr.Msg = body.Msg
		apiErr.Violations = body.Violations
	} else {
		apiErr.Msg = strings.TrimSpace(string(resp.Body()))
	}
	if apiErr.Msg == "" {
		apiErr.Msg = http.StatusText(status)
	}

	if seconds, err := strconv.Atoi(resp.Header().Get("Retry-After")); err == nil {
		apiErr.RetryAfter = time.Duration(seconds) * time.Second
	}

	return apiErr
}
