package userservice

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blogist/blogapi/internal/common"
)

func setupTestEnvironment(t *testing.T) (*UserService, *sql.DB, func() error) {
	db := common.TestDB(t)
	cache := common.NewCache(5*time.Minute, 10*time.Minute)

	cleanup := func() error {
		_, err := db.Exec("DELETE FROM blogs")
		if err != nil {
			return err
		}

		_, err = db.Exec("DELETE FROM users")
		if err != nil {
			return err
		}

		return nil
	}

	return NewUserService(db, NewTokenMaker("test-secret", time.Hour), cache, nil), db, cleanup
}

func TestCreateUser(t *testing.T) {
	s, db, cleanup := setupTestEnvironment(t)

	testCases := []struct {
		name        string
		username    string
		password    string
		setup       func(s *UserService) error
		expectedErr error
	}{
		{
			name:     "valid user",
			username: "root",
			password: "sekret",
		},
		{
			name:     "duplicate username",
			username: "root",
			password: "sekret",
			setup: func(s *UserService) error {
				_, err := s.CreateUser(context.Background(), "root", "superuser", "sekret")
				return err
			},
			expectedErr: ErrDuplicateUsername,
		},
		{
			name:     "username differing in case",
			username: "Root",
			password: "sekret",
			setup: func(s *UserService) error {
				_, err := s.CreateUser(context.Background(), "root", "superuser", "sekret")
				return err
			},
		},
		{
			name:        "empty payload",
			expectedErr: common.ValidationError{Errors: map[string]string{"username": "must be provided", "password": "must be provided"}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.setup != nil {
				require.NoError(t, tc.setup(s))
			}

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			u, err := s.CreateUser(ctx, tc.username, "superuser", tc.password)
			assert.Equal(t, tc.expectedErr, err)

			if err == nil {
				assert.NotZero(t, u.ID)
				assert.Equal(t, tc.username, u.Username)
				assert.Empty(t, u.Blogs)

				var hash []byte
				err = db.QueryRow("SELECT password FROM users WHERE id = $1", u.ID).Scan(&hash)
				require.NoError(t, err)
				assert.NotEqual(t, []byte(tc.password), hash)

				// the returned user carries the stored hash and nothing else
				assert.Equal(t, Password{hash: hash}, u.Password)
				ok, err := u.Password.matches(tc.password)
				require.NoError(t, err)
				assert.True(t, ok)
			}

			t.Cleanup(func() {
				assert.NoError(t, cleanup())
			})
		})
	}
}

func TestCreateUser_UniqueConstraint(t *testing.T) {
	s, _, cleanup := setupTestEnvironment(t)
	t.Cleanup(func() { assert.NoError(t, cleanup()) })

	hash, err := hashPassword("sekret")
	require.NoError(t, err)

	u := User{Username: "root", Name: "superuser", Password: hash}
	require.NoError(t, s.m.insert(context.Background(), &u))

	dup := User{Username: "root", Name: "other", Password: hash}
	assert.Equal(t, ErrDuplicateUsername, s.m.insert(context.Background(), &dup))
}

func TestLoginUser(t *testing.T) {
	s, _, cleanup := setupTestEnvironment(t)
	t.Cleanup(func() { assert.NoError(t, cleanup()) })

	created, err := s.CreateUser(context.Background(), "root", "superuser", "sekret")
	require.NoError(t, err)

	testCases := []struct {
		name        string
		username    string
		password    string
		expectedErr error
	}{
		{name: "valid credentials", username: "root", password: "sekret"},
		{name: "wrong password", username: "root", password: "wrong", expectedErr: ErrAuthenticationFailure},
		{name: "unknown user", username: "nobody", password: "sekret", expectedErr: ErrAuthenticationFailure},
		{
			name:        "empty payload",
			expectedErr: common.ValidationError{Errors: map[string]string{"username": "must be provided", "password": "must be provided"}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := s.LoginUser(context.Background(), tc.username, tc.password)
			assert.Equal(t, tc.expectedErr, err)

			if err == nil {
				assert.Equal(t, "root", res.Username)
				assert.Equal(t, "superuser", res.Name)

				u, err := s.GetUserByToken(context.Background(), res.Token)
				require.NoError(t, err)
				assert.Equal(t, created.ID, u.ID)
			}
		})
	}
}

func TestGetUserByToken(t *testing.T) {
	s, db, cleanup := setupTestEnvironment(t)
	t.Cleanup(func() { assert.NoError(t, cleanup()) })

	u, err := s.CreateUser(context.Background(), "root", "superuser", "sekret")
	require.NoError(t, err)

	token, err := s.t.Issue(u.ID)
	require.NoError(t, err)

	got, err := s.GetUserByToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "root", got.Username)

	// served from the cache once loaded
	_, err = db.Exec("UPDATE users SET name = 'renamed' WHERE id = $1", u.ID)
	require.NoError(t, err)
	got, err = s.GetUserByToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "superuser", got.Name)

	unknown, err := s.t.Issue(u.ID + 1000)
	require.NoError(t, err)
	_, err = s.GetUserByToken(context.Background(), unknown)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = s.GetUserByToken(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGetUsers(t *testing.T) {
	s, db, cleanup := setupTestEnvironment(t)
	t.Cleanup(func() { assert.NoError(t, cleanup()) })

	root, err := s.CreateUser(context.Background(), "root", "superuser", "sekret")
	require.NoError(t, err)
	_, err = s.CreateUser(context.Background(), "mluukkai", "Matti Luukkainen", "salainen")
	require.NoError(t, err)

	for _, title := range []string{"First", "Second"} {
		var id int
		err := db.QueryRow("INSERT INTO blogs (title, author, url, likes, user_id) VALUES ($1, 'John Doe', 'http://localhost:3003', 1, $2) RETURNING id", title, root.ID).Scan(&id)
		require.NoError(t, err)
		_, err = db.Exec("UPDATE users SET blogs = array_append(blogs, $1) WHERE id = $2", id, root.ID)
		require.NoError(t, err)
	}

	users, err := s.GetUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)

	assert.Equal(t, "root", users[0].Username)
	require.Len(t, users[0].Blogs, 2)
	assert.Equal(t, "First", users[0].Blogs[0].Title)
	assert.Equal(t, "Second", users[0].Blogs[1].Title)

	assert.Equal(t, "mluukkai", users[1].Username)
	assert.NotNil(t, users[1].Blogs)
	assert.Empty(t, users[1].Blogs)

	one, err := s.GetUserByID(context.Background(), root.ID)
	require.NoError(t, err)
	assert.Len(t, one.Blogs, 2)

	_, err = s.GetUserByID(context.Background(), root.ID+1000)
	assert.Equal(t, common.ErrRecordNotFound, err)
}
