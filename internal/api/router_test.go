package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/packagetracker/tracker/internal/api/handler"
	"github.com/packagetracker/tracker/internal/core/domain"
	"github.com/packagetracker/tracker/internal/core/ports"
)

const testSecret = "router-secret"

type notFoundTracking struct{}

func (notFoundTracking) Track(context.Context, string) (*ports.TrackingView, error) {
	return nil, domain.ErrTrackingNotFound
}

func (notFoundTracking) Refresh(context.Context, string) error { return nil }

func newTestRouter() http.Handler {
	return NewRouter(Dependencies{
		Log:       zerolog.Nop(),
		JWTSecret: testSecret,
		Tracking:  notFoundTracking{},
		Checks: map[string]handler.Check{
			"store": func(context.Context) error { return nil },
		},
		Metrics: prometheus.NewRegistry(),
	})
}

func bearer(t *testing.T, role string) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "u1",
		"email": "alice@example.com",
		"role":  role,
		"exp":   time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return "Bearer " + signed
}

func TestRouter_Routes(t *testing.T) {
	r := newTestRouter()

	cases := []struct {
		name   string
		method string
		path   string
		auth   string
		want   int
	}{
		{"liveness", http.MethodGet, "/health", "", http.StatusOK},
		{"readiness", http.MethodGet, "/health/ready", "", http.StatusOK},
		{"metrics", http.MethodGet, "/metrics", "", http.StatusOK},
		{"tracking requires token", http.MethodGet, "/v1/tracking/TN1", "", http.StatusUnauthorized},
		{"tracking not found", http.MethodGet, "/v1/tracking/TN1", "user", http.StatusNotFound},
		{"refresh is admin only", http.MethodPost, "/v1/saved-packages/refresh", "user", http.StatusForbidden},
		{"unknown route", http.MethodGet, "/v2/nothing", "", http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			if tc.auth != "" {
				req.Header.Set("Authorization", bearer(t, tc.auth))
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			if rec.Code != tc.want {
				t.Fatalf("%s %s: expected %d, got %d (%s)", tc.method, tc.path, tc.want, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestRouter_RegistersRoutes(t *testing.T) {
	e := NewRouter(Dependencies{Log: zerolog.Nop(), JWTSecret: testSecret, Metrics: prometheus.NewRegistry()})

	registered := make(map[string]bool)
	for _, rt := range e.Routes() {
		registered[rt.Method+" "+rt.Path] = true
	}
	for _, want := range []string{
		"POST /auth/register",
		"POST /auth/login",
		"GET /v1/profile",
		"PATCH /v1/profile",
		"POST /v1/profile/password",
		"GET /v1/tracking/:tracking_number",
		"GET /v1/saved-packages",
		"POST /v1/saved-packages",
		"GET /v1/saved-packages/analytics",
		"GET /v1/saved-packages/due-soon",
		"GET /v1/saved-packages/stream",
		"POST /v1/saved-packages/refresh",
		"GET /v1/saved-packages/:tracking_number",
		"PATCH /v1/saved-packages/:tracking_number",
		"DELETE /v1/saved-packages/:tracking_number",
		"GET /swagger/*",
	} {
		if !registered[want] {
			t.Errorf("route %q not registered", want)
		}
	}
}
