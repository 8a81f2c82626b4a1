package userservice

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/blogist/blogapi/internal/common"
)

var (
	ErrDuplicateUsername = errors.New("username must be unique")
)

func NewUserModel(db *sql.DB) *UserModel {
	return &UserModel{db: db}
}

// UniqueViolation is a helper function to check if the error is a unique constraint error.
func UniqueViolation(err error, name string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code == "23505" && pqErr.Constraint == name {
			return true
		}
	}

	return false
}

func (m *UserModel) insert(ctx context.Context, u *User) error {
	query := `
		INSERT INTO users (username, name, password)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at, version`

	args := []any{
		u.Username,
		u.Name,
		u.Password.hash,
	}

	err := m.db.QueryRowContext(ctx, query, args...).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt, &u.Version)
	if err != nil {
		switch {
		case UniqueViolation(err, "users_username_key"):
			return ErrDuplicateUsername
		default:
			return err
		}
	}

	u.BlogIDs = []int64{}
	u.Blogs = []BlogSummary{}
	return nil
}

func (m *UserModel) getByUsername(ctx context.Context, username string) (*User, error) {
	query := `
		SELECT id, username, name, password, blogs, version
		FROM users
		WHERE username = $1`

	var u User

	err := m.db.QueryRowContext(ctx, query, username).Scan(&u.ID, &u.Username, &u.Name, &u.Password.hash, pq.Array(&u.BlogIDs), &u.Version)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, common.ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &u, nil
}

func (m *UserModel) getByID(ctx context.Context, id int) (*User, error) {
	query := `
		SELECT id, username, name, blogs, created_at, updated_at, version
		FROM users
		WHERE id = $1`

	var u User

	err := m.db.QueryRowContext(ctx, query, id).Scan(&u.ID, &u.Username, &u.Name, pq.Array(&u.BlogIDs), &u.CreatedAt, &u.UpdatedAt, &u.Version)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, common.ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &u, nil
}

func (m *UserModel) getAll(ctx context.Context) ([]User, error) {
	query := `
		SELECT id, username, name, blogs, created_at, updated_at, version
		FROM users
		ORDER BY id`

	rows, err := m.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []User{}
	for rows.Next() {
		var u User
		err := rows.Scan(&u.ID, &u.Username, &u.Name, pq.Array(&u.BlogIDs), &u.CreatedAt, &u.UpdatedAt, &u.Version)
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

// populateBlogs expands the blog id set of every user with one query,
// keeping each user's ids in the order they were appended.
func (m *UserModel) populateBlogs(ctx context.Context, users []User) error {
	var ids []int64
	for _, u := range users {
		ids = append(ids, u.BlogIDs...)
	}

	summaries := make(map[int64]BlogSummary, len(ids))
	if len(ids) > 0 {
		query := `
			SELECT id, title, author, url, likes
			FROM blogs
			WHERE id = ANY($1)`

		rows, err := m.db.QueryContext(ctx, query, pq.Array(ids))
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var b BlogSummary
			err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.URL, &b.Likes)
			if err != nil {
				return err
			}
			summaries[int64(b.ID)] = b
		}

		if err := rows.Err(); err != nil {
			return err
		}
	}

	for i := range users {
		users[i].Blogs = []BlogSummary{}
		for _, id := range users[i].BlogIDs {
			if b, ok := summaries[id]; ok {
				users[i].Blogs = append(users[i].Blogs, b)
			}
		}
	}

	return nil
}
