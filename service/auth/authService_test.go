package authsvc

import (
	"errors"
	"testing"

	"carrental/util/hash"
	jwtutil "carrental/util/jwt"

	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) Service {
	t.Helper()

	h, err := hash.HashPassword("supersecret")
	require.NoError(t, err)
	return New("Admin@CarRental.Local", h)
}

func TestLogin_Success(t *testing.T) {
	svc := newTestService(t)

	token, err := svc.Login("admin@carrental.local", "supersecret", "test-secret")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := jwtutil.ParseAuth("Bearer "+token, "test-secret")
	require.NoError(t, err)
	require.Equal(t, "admin", claims["role"])
	require.Equal(t, "admin@carrental.local", claims["sub"])
}

func TestLogin_EmailCaseInsensitive(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Login("  ADMIN@carrental.LOCAL ", "supersecret", "test-secret")
	require.NoError(t, err)
}

func TestLogin_Rejections(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Login("someone@else.com", "supersecret", "test-secret")
	if !errors.Is(err, ErrInvalidCreds) {
		t.Fatalf("err = %v, want ErrInvalidCreds", err)
	}

	_, err = svc.Login("admin@carrental.local", "wrong", "test-secret")
	if !errors.Is(err, ErrInvalidCreds) {
		t.Fatalf("err = %v, want ErrInvalidCreds", err)
	}
}

func TestLogin_TokenRejectsWrongSecret(t *testing.T) {
	svc := newTestService(t)

	token, err := svc.Login("admin@carrental.local", "supersecret", "test-secret")
	require.NoError(t, err)

	if _, err := jwtutil.ParseAuth("Bearer "+token, "other-secret"); err == nil {
		t.Fatal("expected parse failure with the wrong secret")
	}
}
