package auth

import (
	"context"

	"github.com/gudangkain/gudangkain/internal/shared"
	"github.com/gudangkain/gudangkain/internal/sheetdb"
)

// Repository reads credentials from the users table.
type Repository struct {
	store sheetdb.Store
}

// NewRepository constructs Repository.
func NewRepository(store sheetdb.Store) *Repository {
	return &Repository{store: store}
}

// FindByUsername returns the credential record for one username.
func (r *Repository) FindByUsername(ctx context.Context, username string) (*User, error) {
	rows, err := r.store.ListRows(ctx, sheetdb.TableUsers)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		if row["username"] == username {
			return &User{Username: row["username"], PasswordHash: row["password_hash"]}, nil
		}
	}
	return nil, shared.ErrNotFound
}
