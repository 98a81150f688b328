package sqlite

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/worklane/internal/devauth/domain"
)

type usersRepo struct {
	db *sql.DB
}

const userColumns = `id, username, email, password_hash, created_at`

func scanUser(row *sql.Row) (domain.User, error) {
	var (
		u       domain.User
		created string
	)
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &created); err != nil {
		return domain.User{}, err
	}
	u.CreatedAt = parseTimestamp(created)
	return u, nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) (domain.User, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO users (username, email, password_hash)
		VALUES (?, ?, ?)
		RETURNING `+userColumns,
		u.Username, u.Email, u.PasswordHash,
	)

	out, err := scanUser(row)
	if err != nil {
		return domain.User{}, mapConstraint(err)
	}
	return out, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id int64) (domain.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id))
	return u, mapNotFound(err)
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = ?`, username))
	return u, mapNotFound(err)
}

func (r *usersRepo) UsernameTaken(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE username = ?)`, username)
}

func (r *usersRepo) EmailTaken(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = ? COLLATE NOCASE)`, email)
}

func (r *usersRepo) exists(ctx context.Context, query string, arg any) (bool, error) {
	var found bool
	if err := r.db.QueryRowContext(ctx, query, arg).Scan(&found); err != nil {
		return false, err
	}
	return found, nil
}
