package userservice

import (
	"time"

	"github.com/sushihentaime/multiblog/internal/common"
)

type UserService struct {
	m *UserModel
}

type UserModel struct {
	conn common.DBTX
}

// User is the acting identity. Blogs reference it by ID only.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Password  Password  `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

type Password struct {
	Plain string `json:"-"`
	hash  []byte `json:"-"`
}

// UserFilter selects users by any combination of set fields.
type UserFilter struct {
	ID       *string
	Username *string
	Email    *string
}

func (f UserFilter) fields() common.Fields {
	return common.Fields{}.
		With("id", f.ID).
		With("username", f.Username).
		With("email", f.Email)
}

var userFindFields = []string{"id", "username", "email"}
