package userservice

import (
	"database/sql"
	"time"

	"github.com/blogist/blogapi/internal/common"
)

var (
	AnonymousUser = User{}
)

type UserService struct {
	m         *UserModel
	t         *TokenMaker
	c         *common.Cache
	publisher *common.EventPublisher
}

type UserModel struct {
	db *sql.DB
}

type User struct {
	ID        int           `json:"id"`
	Username  string        `json:"username"`
	Name      string        `json:"name"`
	Password  Password      `json:"-"`
	Blogs     []BlogSummary `json:"blogs"`
	BlogIDs   []int64       `json:"-"`
	CreatedAt time.Time     `json:"-"`
	UpdatedAt time.Time     `json:"-"`
	Version   int           `json:"-"`
}

// BlogSummary is the projection of an owned blog embedded in a user.
type BlogSummary struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
	Likes  int    `json:"likes"`
}

type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

// UserEvent is the payload published on the user exchange.
type UserEvent struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}
