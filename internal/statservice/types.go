package statservice

import (
	"context"
	"log/slog"
	"time"

	"github.com/blogist/blogapi/internal/blogservice"
	"github.com/blogist/blogapi/internal/common"
)

type Favorite struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Likes  int    `json:"likes"`
}

type AuthorBlogs struct {
	Author string `json:"author"`
	Blogs  int    `json:"blogs"`
}

type AuthorLikes struct {
	Author string `json:"author"`
	Likes  int    `json:"likes"`
}

type AuthorGroup struct {
	Author string
	Blogs  []blogservice.Blog
}

type Summary struct {
	TotalLikes   int          `json:"total_likes"`
	FavoriteBlog *Favorite    `json:"favorite_blog"`
	MostBlogs    *AuthorBlogs `json:"most_blogs"`
	MostLikes    *AuthorLikes `json:"most_likes"`
}

// BlogLister loads the collection the summary is computed over.
type BlogLister interface {
	ListAll(ctx context.Context) ([]blogservice.Blog, error)
}

type StatLogger interface {
	Error(msg string, args ...any)
	Info(msg string, args ...any)
}

type StatService struct {
	blogs  BlogLister
	mb     common.MessageConsumer
	c      *common.Cache
	ttl    time.Duration
	logger StatLogger
	ctx    context.Context
	cancel context.CancelFunc
}

var _ StatLogger = (*slog.Logger)(nil)
