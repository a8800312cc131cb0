package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

func sign(t *testing.T, method jwt.SigningMethod, key any, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(method, claims).SignedString(key)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func run(t *testing.T, header string) (*httptest.ResponseRecorder, echo.Context, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Auth("secret")(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, c, called
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	token := sign(t, jwt.SigningMethodHS256, []byte("secret"), jwt.MapClaims{
		"sub":   "acc-1",
		"email": "ana@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	rec, c, called := run(t, "Bearer "+token)

	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if c.Get("account_id") != "acc-1" {
		t.Fatalf("account_id not set: %v", c.Get("account_id"))
	}
	if c.Get("email") != "ana@example.com" {
		t.Fatalf("email not set: %v", c.Get("email"))
	}
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	wrongSecret := sign(t, jwt.SigningMethodHS256, []byte("other"), jwt.MapClaims{"sub": "acc-1"})
	expired := sign(t, jwt.SigningMethodHS256, []byte("secret"), jwt.MapClaims{
		"sub": "acc-1",
		"exp": time.Now().Add(-time.Minute).Unix(),
	})
	noSubject := sign(t, jwt.SigningMethodHS256, []byte("secret"), jwt.MapClaims{"email": "ana@example.com"})
	wrongAlg := sign(t, jwt.SigningMethodHS512, []byte("secret"), jwt.MapClaims{"sub": "acc-1"})

	cases := map[string]string{
		"missing header":  "",
		"bad scheme":      "Token abc",
		"garbage token":   "Bearer not-a-token",
		"wrong secret":    "Bearer " + wrongSecret,
		"expired":         "Bearer " + expired,
		"no subject":      "Bearer " + noSubject,
		"wrong algorithm": "Bearer " + wrongAlg,
	}

	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			rec, _, called := run(t, header)
			if called {
				t.Fatalf("should not reach next")
			}
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
		})
	}
}
