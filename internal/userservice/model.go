package userservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/sushihentaime/multiblog/internal/common"
)

var (
	ErrDuplicateUsername = errors.New("duplicate username")
	ErrDuplicateEmail    = errors.New("duplicate email")
)

func NewUserModel(conn common.DBTX) *UserModel {
	return &UserModel{conn: conn}
}

// WithConn returns a copy of the model that runs its statements on conn.
func (m *UserModel) WithConn(conn common.DBTX) *UserModel {
	return &UserModel{conn: conn}
}

// uniqueViolation reports whether err is a unique constraint error on constraint.
func uniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505" && pqErr.Constraint == constraint
	}

	return false
}

func (m *UserModel) Insert(ctx context.Context, u *User) (*User, error) {
	query := `
		INSERT INTO users (id, username, email, password)
		VALUES ($1, $2, $3, $4)`

	_, err := m.conn.ExecContext(ctx, query, u.ID, u.Username, u.Email, u.Password.hash)
	if err != nil {
		switch {
		case uniqueViolation(err, "users_username_key"):
			return nil, ErrDuplicateUsername
		case uniqueViolation(err, "users_email_key"):
			return nil, ErrDuplicateEmail
		default:
			return nil, err
		}
	}

	return m.FindOne(ctx, UserFilter{ID: &u.ID})
}

func (m *UserModel) Find(ctx context.Context, filter UserFilter) ([]User, error) {
	where, args, err := common.BuildClause(filter.fields(), userFindFields, common.QueryOptions{})
	if err != nil {
		return nil, err
	}

	query := `
		SELECT id, username, email, password, created_at
		FROM users
		WHERE ` + where + `
		ORDER BY created_at`

	rows, err := m.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("could not query users: %w", err)
	}
	defer rows.Close()

	users := []User{}
	for rows.Next() {
		var u User
		err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.Password.hash, &u.CreatedAt)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

func (m *UserModel) FindOne(ctx context.Context, filter UserFilter) (*User, error) {
	users, err := m.Find(ctx, filter)
	if err != nil {
		return nil, err
	}

	if len(users) == 0 {
		return nil, common.ErrRecordNotFound
	}

	return &users[0], nil
}

func (m *UserModel) Delete(ctx context.Context, id string) (bool, error) {
	res, err := m.conn.ExecContext(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return false, err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return rows > 0, nil
}
