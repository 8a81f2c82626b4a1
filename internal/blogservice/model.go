package blogservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/blogist/blogapi/internal/common"
)

var (
	ErrUserForeignKey = errors.New("user_id does not exist")
)

func newBlogModel(db *sql.DB) *BlogModel {
	return &BlogModel{db: db}
}

// ForeignKeyError is a helper function to check if the error is a foreign key constraint error.
func ForeignKeyError(err error, name string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code == "23503" && pqErr.Constraint == name {
			return true
		}
	}

	return false
}

const selectBlogWithOwner = `
		SELECT b.id, b.title, b.author, b.url, b.likes, b.created_at, b.updated_at, b.version, u.id, u.username, u.name
		FROM blogs b
		LEFT JOIN users u ON b.user_id = u.id`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBlog(row rowScanner) (*Blog, error) {
	var (
		blog     Blog
		ownerID  sql.NullInt64
		username sql.NullString
		name     sql.NullString
	)

	err := row.Scan(&blog.ID, &blog.Title, &blog.Author, &blog.URL, &blog.Likes, &blog.CreatedAt, &blog.UpdatedAt, &blog.Version, &ownerID, &username, &name)
	if err != nil {
		return nil, err
	}

	if ownerID.Valid {
		blog.User = &Owner{ID: int(ownerID.Int64), Username: username.String, Name: name.String}
	}

	return &blog, nil
}

// insert stores the blog and appends its id to the owner's blog set in one transaction.
func (m *BlogModel) insert(ctx context.Context, blog *Blog, userID int) error {
	return common.WithTx(ctx, m.db, func(tx *sql.Tx) error {
		query := `
			INSERT INTO blogs (title, author, url, likes, user_id)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, created_at, updated_at, version`

		err := tx.QueryRowContext(ctx, query, blog.Title, blog.Author, blog.URL, blog.Likes, userID).
			Scan(&blog.ID, &blog.CreatedAt, &blog.UpdatedAt, &blog.Version)
		if err != nil {
			switch {
			case ForeignKeyError(err, "blogs_user_id_fkey"):
				return ErrUserForeignKey
			default:
				return err
			}
		}

		owner := Owner{ID: userID}
		query = `
			UPDATE users
			SET blogs = array_append(blogs, $1), version = version + 1, updated_at = NOW()
			WHERE id = $2
			RETURNING username, name`

		err = tx.QueryRowContext(ctx, query, blog.ID, userID).Scan(&owner.Username, &owner.Name)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				return ErrUserForeignKey
			default:
				return fmt.Errorf("could not append blog to owner: %w", err)
			}
		}

		blog.User = &owner
		return nil
	})
}

// getBlogById is a method to get a blog by its ID joining the users table to get the owner.
func (m *BlogModel) getBlogById(ctx context.Context, id int) (*Blog, error) {
	query := selectBlogWithOwner + `
		WHERE b.id = $1`

	blog, err := scanBlog(m.db.QueryRowContext(ctx, query, id))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, common.ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return blog, nil
}

// updateBlog overwrites the provided fields; COALESCE keeps the stored value for nil ones.
func (m *BlogModel) updateBlog(ctx context.Context, id int, req *UpdateBlogRequest) error {
	query := `
		UPDATE blogs
		SET title = COALESCE($1, title), author = COALESCE($2, author), url = COALESCE($3, url), likes = COALESCE($4, likes),
			version = version + 1, updated_at = NOW()
		WHERE id = $5`

	res, err := m.db.ExecContext(ctx, query, req.Title, req.Author, req.URL, req.Likes, id)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return common.ErrRecordNotFound
	}

	return nil
}

// deleteBlog removes the blog and drops its id from the owner's blog set in one transaction.
func (m *BlogModel) deleteBlog(ctx context.Context, blogId int) error {
	return common.WithTx(ctx, m.db, func(tx *sql.Tx) error {
		query := `
			DELETE FROM blogs
			WHERE id = $1
			RETURNING user_id`

		var userID sql.NullInt64
		err := tx.QueryRowContext(ctx, query, blogId).Scan(&userID)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				return common.ErrRecordNotFound
			default:
				return err
			}
		}

		if !userID.Valid {
			return nil
		}

		query = `
			UPDATE users
			SET blogs = array_remove(blogs, $1), version = version + 1, updated_at = NOW()
			WHERE id = $2`

		_, err = tx.ExecContext(ctx, query, blogId, userID.Int64)
		return err
	})
}

// getBlogs returns blogs in insertion order. A nil limit returns every row.
func (m *BlogModel) getBlogs(ctx context.Context, limit *int, offset int) ([]Blog, error) {
	query := selectBlogWithOwner + `
		ORDER BY b.id
		LIMIT $1 OFFSET $2`

	rows, err := m.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	blogs := []Blog{}
	for rows.Next() {
		blog, err := scanBlog(rows)
		if err != nil {
			return nil, err
		}
		blogs = append(blogs, *blog)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return blogs, nil
}
