package userservice

import (
	"context"
	"errors"

	"github.com/sushihentaime/multiblog/internal/common"
)

var (
	ErrAuthenticationFailure = errors.New("invalid authentication credentials")
)

func NewUserService(db common.DBTX) *UserService {
	return &UserService{m: NewUserModel(db)}
}

// CreateUser registers a new account with a bcrypt hashed password.
func (s *UserService) CreateUser(ctx context.Context, username, email, password string) (*User, error) {
	v := common.NewValidator()
	validateUsername(v, username)
	validateEmail(v, email)
	validatePassword(v, password)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	u := User{
		ID:       common.NewID(),
		Username: username,
		Email:    email,
	}

	if err := u.Password.set(password); err != nil {
		return nil, err
	}

	return s.m.Insert(ctx, &u)
}

// GetUser returns the user with the given id or common.ErrRecordNotFound.
func (s *UserService) GetUser(ctx context.Context, id string) (*User, error) {
	return s.m.FindOne(ctx, UserFilter{ID: &id})
}

func (s *UserService) UserExists(ctx context.Context, id string) (bool, error) {
	_, err := s.GetUser(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrRecordNotFound):
			return false, nil
		default:
			return false, err
		}
	}

	return true, nil
}

// Authenticate checks a username and password pair. Unknown users and wrong
// passwords both return ErrAuthenticationFailure.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*User, error) {
	v := common.NewValidator()
	validateUsername(v, username)
	v.Check(password != "", "password", "must be provided")
	if !v.Valid() {
		return nil, ErrAuthenticationFailure
	}

	user, err := s.m.FindOne(ctx, UserFilter{Username: &username})
	if err != nil {
		switch {
		case errors.Is(err, common.ErrRecordNotFound):
			return nil, ErrAuthenticationFailure
		default:
			return nil, err
		}
	}

	ok, err := user.Password.compare(password)
	if err != nil {
		return nil, err
	}

	if !ok {
		return nil, ErrAuthenticationFailure
	}

	return user, nil
}
