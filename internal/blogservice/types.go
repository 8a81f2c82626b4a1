package blogservice

import (
	"database/sql"
	"time"

	"github.com/blogist/blogapi/internal/common"
)

type Blog struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
	Likes  int    `json:"likes"`
	// User is nil for blogs stored before ownership was tracked.
	User      *Owner    `json:"user,omitempty"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
	Version   int       `json:"-"`
}

// Owner is the public projection of the user who created a blog.
type Owner struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

type BlogModel struct {
	db *sql.DB
}

type BlogService struct {
	m         *BlogModel
	publisher *common.EventPublisher
}

type CreateBlogRequest struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
	Likes  *int   `json:"likes"`
}

// UpdateBlogRequest fields left nil keep their stored value.
type UpdateBlogRequest struct {
	Title  *string `json:"title"`
	Author *string `json:"author"`
	URL    *string `json:"url"`
	Likes  *int    `json:"likes"`
}

// BlogEvent is the payload published on the blog exchange.
type BlogEvent struct {
	ID     int  `json:"id"`
	UserID *int `json:"user_id,omitempty"`
}
