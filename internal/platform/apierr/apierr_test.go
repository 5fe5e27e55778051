package apierr

import (
	"context"
	"errors"
	"net/http"
	"testing"

	apperrors "github.com/yungbote/neurobridge-recommender/internal/pkg/errors"
)

func TestFromError(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", apperrors.Invalid("limit", "must be positive"), http.StatusBadRequest, "invalid_argument"},
		{"upstream", apperrors.Upstream("get_user_profile", errors.New("conn reset")), http.StatusBadGateway, "upstream_failure"},
		{"upstream timeout", apperrors.Upstream("get_all_courses", context.DeadlineExceeded), http.StatusGatewayTimeout, "upstream_timeout"},
		{"canceled", context.Canceled, StatusClientClosedRequest, "request_canceled"},
		{"explicit", New(http.StatusTeapot, "teapot", nil), http.StatusTeapot, "teapot"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := FromError(tc.err)
			if got.Status != tc.status || got.Code != tc.code {
				t.Fatalf("got %d/%s, want %d/%s", got.Status, got.Code, tc.status, tc.code)
			}
		})
	}
	if FromError(nil) != nil {
		t.Fatalf("nil error should map to nil")
	}
}
