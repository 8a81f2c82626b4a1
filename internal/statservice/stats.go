package statservice

import (
	"errors"

	"github.com/blogist/blogapi/internal/blogservice"
)

// ErrNoBlogs is returned by the aggregations that need at least one blog.
var ErrNoBlogs = errors.New("no blogs to aggregate")

// TotalLikes sums the likes of all blogs. An empty slice yields 0.
func TotalLikes(blogs []blogservice.Blog) int {
	total := 0
	for _, b := range blogs {
		total += b.Likes
	}
	return total
}

// FavoriteBlog returns the most liked blog. The fold only replaces the
// current best on a strictly greater like count, so the earliest blog wins ties.
func FavoriteBlog(blogs []blogservice.Blog) (Favorite, error) {
	if len(blogs) == 0 {
		return Favorite{}, ErrNoBlogs
	}

	best := blogs[0]
	for _, b := range blogs[1:] {
		if b.Likes > best.Likes {
			best = b
		}
	}

	return Favorite{Title: best.Title, Author: best.Author, Likes: best.Likes}, nil
}

// GroupByAuthor partitions blogs by exact author match. Groups are ordered by
// the first appearance of their author and keep the input order inside.
func GroupByAuthor(blogs []blogservice.Blog) []AuthorGroup {
	index := make(map[string]int)
	var groups []AuthorGroup

	for _, b := range blogs {
		i, ok := index[b.Author]
		if !ok {
			i = len(groups)
			index[b.Author] = i
			groups = append(groups, AuthorGroup{Author: b.Author})
		}
		groups[i].Blogs = append(groups[i].Blogs, b)
	}

	return groups
}

// MostBlogs returns the author with the most blogs, compared by count.
// The first group to reach the maximum wins ties.
func MostBlogs(blogs []blogservice.Blog) (AuthorBlogs, error) {
	groups := GroupByAuthor(blogs)
	if len(groups) == 0 {
		return AuthorBlogs{}, ErrNoBlogs
	}

	best := AuthorBlogs{Author: groups[0].Author, Blogs: len(groups[0].Blogs)}
	for _, g := range groups[1:] {
		if len(g.Blogs) > best.Blogs {
			best = AuthorBlogs{Author: g.Author, Blogs: len(g.Blogs)}
		}
	}

	return best, nil
}

// MostLikes returns the author whose blogs have the most likes in total.
// The first group to reach the maximum wins ties.
func MostLikes(blogs []blogservice.Blog) (AuthorLikes, error) {
	groups := GroupByAuthor(blogs)
	if len(groups) == 0 {
		return AuthorLikes{}, ErrNoBlogs
	}

	best := AuthorLikes{Author: groups[0].Author, Likes: TotalLikes(groups[0].Blogs)}
	for _, g := range groups[1:] {
		if likes := TotalLikes(g.Blogs); likes > best.Likes {
			best = AuthorLikes{Author: g.Author, Likes: likes}
		}
	}

	return best, nil
}

// Summarize computes every aggregation. The "most" fields stay nil for an
// empty slice.
func Summarize(blogs []blogservice.Blog) Summary {
	s := Summary{TotalLikes: TotalLikes(blogs)}
	if len(blogs) == 0 {
		return s
	}

	fav, _ := FavoriteBlog(blogs)
	mb, _ := MostBlogs(blogs)
	ml, _ := MostLikes(blogs)

	s.FavoriteBlog = &fav
	s.MostBlogs = &mb
	s.MostLikes = &ml

	return s
}
