package httpkit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"framecraft/internal/pkg/errors"
)

func TestWriteSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteSuccess(rec, http.StatusOK, json.RawMessage(`{"id":"abc","status":"queued"}`))

	if rec.Code != http.StatusOK {
		t.Errorf("status: %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type: %q", ct)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"status":"success","data":{"id":"abc","status":"queued"}}` {
		t.Errorf("body: %s", got)
	}
}

func TestWriteError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name: "validation details",
			err: errors.Validation("invalid submission",
				errors.FieldError{Field: "search", Message: `"search" is required`}),
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"status":"error","message":"invalid submission","data":{"code":"VALIDATION_ERROR","details":[{"field":"search","message":"\"search\" is required"}]}}`,
		},
		{
			name:       "not found",
			err:        errors.NotFound("No image found for 'zzqx', please try a different keyword."),
			wantStatus: http.StatusNotFound,
			wantBody:   `{"status":"error","message":"No image found for 'zzqx', please try a different keyword.","data":{"code":"NOT_FOUND"}}`,
		},
		{
			name: "remote with provider response",
			err: errors.Remote("shotstack", 400, "Bad Request", nil).
				WithField("response", json.RawMessage(`{"error":"bad"}`)),
			wantStatus: http.StatusBadGateway,
			wantBody:   `{"status":"error","message":"Bad Request","data":{"code":"REMOTE_ERROR","provider":"shotstack","status":400,"response":{"error":"bad"}}}`,
		},
		{
			name:       "foreign error hides internals",
			err:        http.ErrHandlerTimeout,
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"status":"error","message":"internal server error","data":{"code":"INTERNAL_ERROR"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteError(rec, tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("status: got %d, want %d", rec.Code, tt.wantStatus)
			}
			if got := strings.TrimSpace(rec.Body.String()); got != tt.wantBody {
				t.Errorf("body:\n got %s\nwant %s", got, tt.wantBody)
			}
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	var v struct {
		Search string `json:"search"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"search":"forest"}`))
	if err := DecodeJSON(req, &v); err != nil || v.Search != "forest" {
		t.Errorf("decode: %v %+v", err, v)
	}

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"search":"forest","extra":1}`))
	if err := DecodeJSON(req, &v); err == nil {
		t.Error("expected unknown field to be rejected")
	}

	big := `{"search":"` + strings.Repeat("a", maxBodyBytes) + `"}`
	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(big))
	if err := DecodeJSON(req, &v); err == nil {
		t.Error("expected oversized body to be rejected")
	}
}
