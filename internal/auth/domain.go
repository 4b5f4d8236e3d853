package auth

// User is one credential record from the users table.
type User struct {
	Username     string
	PasswordHash string
}
