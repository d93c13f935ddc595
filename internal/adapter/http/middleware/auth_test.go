package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/iho/goinvest/internal/domain"
	"github.com/iho/goinvest/internal/infrastructure/auth"
	"github.com/iho/goinvest/internal/infrastructure/metrics"
)

func TestAuthMiddleware(t *testing.T) {
	manager := auth.NewJWTManager("secret", time.Minute)
	token, err := manager.Generate(&domain.User{ID: "alice", Role: domain.RoleInvestor})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{name: "valid token", header: "Bearer " + token, want: http.StatusOK},
		{name: "missing header", header: "", want: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic " + token, want: http.StatusUnauthorized},
		{name: "garbage token", header: "Bearer nope", want: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := metrics.NewWithRegisterer(prometheus.NewRegistry())

			var seen *domain.User
			h := AuthMiddleware(manager, m)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen, _ = domain.UserFromContext(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/ledgers/alice", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			if rr.Code != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, rr.Code)
			}
			if tt.want == http.StatusOK && (seen == nil || seen.ID != "alice") {
				t.Fatalf("expected alice in context, got %+v", seen)
			}
			if tt.want != http.StatusOK && testutil.ToFloat64(m.AuthAttempts.WithLabelValues("failure")) != 1 {
				t.Fatalf("expected failure to be counted")
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name string
		user *domain.User
		want int
	}{
		{name: "admin", user: &domain.User{ID: "root", Role: domain.RoleAdmin}, want: http.StatusOK},
		{name: "investor", user: &domain.User{ID: "alice", Role: domain.RoleInvestor}, want: http.StatusForbidden},
		{name: "auth disabled", want: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := RequireRole(domain.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

			req := httptest.NewRequest(http.MethodPost, "/scheduler/tick", nil)
			if tt.user != nil {
				req = req.WithContext(domain.ContextWithUser(req.Context(), tt.user))
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			if rr.Code != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, rr.Code)
			}
		})
	}
}
