package httpkit

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCORS(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name        string
		origins     []string
		method      string
		origin      string
		wantStatus  int
		wantAllowed string
	}{
		{"allowed origin", []string{"http://localhost:3000"}, http.MethodGet, "http://localhost:3000", http.StatusOK, "http://localhost:3000"},
		{"case insensitive", []string{"http://LOCALHOST:3000"}, http.MethodGet, "http://localhost:3000", http.StatusOK, "http://localhost:3000"},
		{"wildcard", []string{"*"}, http.MethodGet, "https://any.example", http.StatusOK, "https://any.example"},
		{"other origin", []string{"http://localhost:3000"}, http.MethodGet, "https://evil.example", http.StatusOK, ""},
		{"no origin", []string{"*"}, http.MethodGet, "", http.StatusOK, ""},
		{"preflight", []string{"http://localhost:3000"}, http.MethodOptions, "http://localhost:3000", http.StatusNoContent, "http://localhost:3000"},
		{"preflight from other origin", []string{"http://localhost:3000"}, http.MethodOptions, "https://evil.example", http.StatusNoContent, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := CORS(CORSOptions{AllowedOrigins: tt.origins})(ok)

			req := httptest.NewRequest(tt.method, "/shotstack", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status: got %d, want %d", rec.Code, tt.wantStatus)
			}
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantAllowed {
				t.Errorf("allow origin: got %q, want %q", got, tt.wantAllowed)
			}
			if tt.wantAllowed != "" && rec.Header().Get("Access-Control-Allow-Methods") != "GET, POST, OPTIONS" {
				t.Errorf("allow methods: %q", rec.Header().Get("Access-Control-Allow-Methods"))
			}
		})
	}
}

func TestNormalizeList(t *testing.T) {
	got := NormalizeList([]string{" a ", "", "  ", "b"})
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("got %v", got)
	}
}
