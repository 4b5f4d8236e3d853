package shared

import "errors"

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials indicates login failure.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthenticated occurs when a guarded route is hit without a session.
	ErrUnauthenticated = errors.New("authentication required")
)

// UserSafeMessage returns a message that can be shown to end users without
// leaking backend details.
func UserSafeMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return "Data tidak ditemukan"
	case errors.Is(err, ErrInvalidCredentials):
		return "Username atau password salah"
	default:
		return "Terjadi kesalahan, silakan coba lagi"
	}
}
