package userservice

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/blogist/blogapi/internal/common"
)

var (
	ErrAuthenticationFailure = errors.New("invalid username or password")
)

const userCacheTTL = 5 * time.Minute

func NewUserService(db *sql.DB, tokens *TokenMaker, cache *common.Cache, publisher *common.EventPublisher) *UserService {
	return &UserService{
		m:         NewUserModel(db),
		t:         tokens,
		c:         cache,
		publisher: publisher,
	}
}

// CreateUser registers a user with an empty blog set and publishes a user.created event.
func (s *UserService) CreateUser(ctx context.Context, username, name, password string) (*User, error) {
	v := common.NewValidator()
	validateUsername(v, username)
	validateName(v, name)
	validatePassword(v, password)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	_, err := s.m.getByUsername(ctx, username)
	switch {
	case err == nil:
		return nil, ErrDuplicateUsername
	case !errors.Is(err, common.ErrRecordNotFound):
		return nil, err
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	u := User{
		Username: username,
		Name:     name,
		Password: hash,
	}

	// the unique constraint still catches a concurrent registration
	err = s.m.insert(ctx, &u)
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(ctx, common.UserCreatedKey, common.UserExchange, UserEvent{ID: u.ID, Username: u.Username})

	return &u, nil
}

// LoginUser checks the credentials and returns a signed access token.
func (s *UserService) LoginUser(ctx context.Context, username, password string) (*LoginResponse, error) {
	v := common.NewValidator()
	v.Check(username != "", "username", "must be provided")
	v.Check(password != "", "password", "must be provided")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	user, err := s.m.getByUsername(ctx, username)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrRecordNotFound):
			_, _ = unknownUserPassword().matches(password)
			return nil, ErrAuthenticationFailure
		default:
			return nil, err
		}
	}

	ok, err := user.Password.matches(password)
	if err != nil {
		return nil, err
	}

	if !ok {
		return nil, ErrAuthenticationFailure
	}

	token, err := s.t.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{Token: token, Username: user.Username, Name: user.Name}, nil
}

// GetUserByToken resolves the user behind an access token. Lookups are
// cached by user id; blog sets are not expanded.
func (s *UserService) GetUserByToken(ctx context.Context, token string) (*User, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}

	id, err := s.t.Verify(token)
	if err != nil {
		return nil, err
	}

	key := common.CacheKeyUserByID(id)
	if s.c != nil {
		if u, ok := common.Lookup[User](s.c, key); ok {
			return &u, nil
		}
	}

	user, err := s.m.getByID(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrRecordNotFound):
			return nil, ErrInvalidToken
		default:
			return nil, err
		}
	}

	if s.c != nil {
		s.c.Set(key, *user, userCacheTTL)
	}

	return user, nil
}

// GetUsers returns every user with their blogs expanded.
func (s *UserService) GetUsers(ctx context.Context) ([]User, error) {
	users, err := s.m.getAll(ctx)
	if err != nil {
		return nil, err
	}

	err = s.m.populateBlogs(ctx, users)
	if err != nil {
		return nil, err
	}

	return users, nil
}

// GetUserByID returns one user with their blogs expanded.
func (s *UserService) GetUserByID(ctx context.Context, id int) (*User, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	user, err := s.m.getByID(ctx, id)
	if err != nil {
		return nil, err
	}

	users := []User{*user}
	err = s.m.populateBlogs(ctx, users)
	if err != nil {
		return nil, err
	}

	return &users[0], nil
}

func (u *User) IsAnonymous() bool {
	return u == &AnonymousUser
}
