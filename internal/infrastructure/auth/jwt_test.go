package auth_test

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/iho/goinvest/internal/domain"
	"github.com/iho/goinvest/internal/infrastructure/auth"
)

func TestJWTManagerGenerateAndVerify(t *testing.T) {
	t.Parallel()

	manager := auth.NewJWTManager("super-secret", time.Minute)

	user := &domain.User{
		ID:    "alice",
		Email: "alice@example.com",
		Role:  domain.RoleInvestor,
	}

	token, err := manager.Generate(user)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	claims, err := manager.Verify(token)
	if err != nil {
		t.Fatalf("expected token to verify, got %v", err)
	}

	if got := claims.User(); *got != *user {
		t.Fatalf("expected claims to match user, got %+v", got)
	}
	if claims.Subject != "alice" || claims.Issuer != "goinvest" {
		t.Fatalf("unexpected registered claims %+v", claims.RegisteredClaims)
	}
}

func TestJWTManagerGenerateRejectsUnknownRole(t *testing.T) {
	t.Parallel()

	manager := auth.NewJWTManager("secret", time.Minute)
	_, err := manager.Generate(&domain.User{ID: "alice", Role: "operator"})
	if !errors.Is(err, domain.ErrInsufficientRole) {
		t.Fatalf("expected ErrInsufficientRole, got %v", err)
	}
}

func TestJWTManagerVerifyErrors(t *testing.T) {
	t.Parallel()

	manager := auth.NewJWTManager("secret", time.Minute)

	sign := func(t *testing.T, key string, method jwt.SigningMethod, claims auth.Claims) string {
		t.Helper()
		var signKey interface{} = []byte(key)
		if method == jwt.SigningMethodNone {
			signKey = jwt.UnsafeAllowNoneSignatureType
		}
		token, err := jwt.NewWithClaims(method, claims).SignedString(signKey)
		if err != nil {
			t.Fatalf("sign token: %v", err)
		}
		return token
	}

	valid := jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}

	tests := []struct {
		name    string
		token   func(t *testing.T) string
		wantErr error
	}{
		{
			name: "expired",
			token: func(t *testing.T) string {
				return sign(t, "secret", jwt.SigningMethodHS256, auth.Claims{
					UserID: "bob",
					Role:   domain.RoleViewer,
					RegisteredClaims: jwt.RegisteredClaims{
						ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
						IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Minute)),
					},
				})
			},
			wantErr: domain.ErrExpiredToken,
		},
		{
			name: "wrong secret",
			token: func(t *testing.T) string {
				return sign(t, "other", jwt.SigningMethodHS256, auth.Claims{UserID: "bob", Role: domain.RoleViewer, RegisteredClaims: valid})
			},
			wantErr: domain.ErrInvalidToken,
		},
		{
			name: "none algorithm",
			token: func(t *testing.T) string {
				return sign(t, "", jwt.SigningMethodNone, auth.Claims{UserID: "bob", Role: domain.RoleAdmin, RegisteredClaims: valid})
			},
			wantErr: domain.ErrInvalidToken,
		},
		{
			name: "unknown role",
			token: func(t *testing.T) string {
				return sign(t, "secret", jwt.SigningMethodHS256, auth.Claims{UserID: "bob", Role: "operator", RegisteredClaims: valid})
			},
			wantErr: domain.ErrInvalidToken,
		},
		{
			name:    "garbage",
			token:   func(*testing.T) string { return "not-a-token" },
			wantErr: domain.ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := manager.Verify(tt.token(t))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}
