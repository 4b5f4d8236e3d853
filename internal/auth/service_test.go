package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/gudangkain/gudangkain/internal/shared"
	"github.com/gudangkain/gudangkain/internal/sheetdb"
)

func newAuthFixture(t *testing.T) (*Service, sheetdb.Store) {
	t.Helper()
	store := sheetdb.NewMemStore()
	return NewService(NewRepository(store)), store
}

func seedUser(t *testing.T, store sheetdb.Store, username, password string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, store.AppendRow(context.Background(), sheetdb.TableUsers, []string{username, string(hash)}))
}

func TestAuthenticate(t *testing.T) {
	svc, store := newAuthFixture(t)
	seedUser(t, store, "admin", "rahasia123")

	user, err := svc.Authenticate(context.Background(), "admin", "rahasia123")
	require.NoError(t, err)
	require.Equal(t, "admin", user.Username)
}

func TestAuthenticateWrongPassword(t *testing.T) {
	svc, store := newAuthFixture(t)
	seedUser(t, store, "admin", "rahasia123")

	_, err := svc.Authenticate(context.Background(), "admin", "salah")
	require.ErrorIs(t, err, shared.ErrInvalidCredentials)
}

func TestAuthenticateUnknownUser(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.Authenticate(context.Background(), "ghost", "whatever")
	require.ErrorIs(t, err, shared.ErrInvalidCredentials)
}
