package blogservice

import (
	"context"
	"database/sql"

	"github.com/blogist/blogapi/internal/common"
)

func NewBlogService(db *sql.DB, publisher *common.EventPublisher) *BlogService {
	return &BlogService{m: newBlogModel(db), publisher: publisher}
}

// CreateBlog creates a new blog owned by the requester. Likes default to zero.
func (s *BlogService) CreateBlog(ctx context.Context, req *CreateBlogRequest, requesterID int) (*Blog, error) {
	sanitizeCreateBlog(req)

	v := common.NewValidator()
	validateCreateBlog(v, req)
	validateInt(v, requesterID, "user_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	blog := &Blog{
		Title:  req.Title,
		Author: req.Author,
		URL:    req.URL,
	}
	if req.Likes != nil {
		blog.Likes = *req.Likes
	}

	err := s.m.insert(ctx, blog, requesterID)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, common.BlogCreatedKey, blog)

	return blog, nil
}

// GetBlogByID returns a blog post by its ID.
func (s *BlogService) GetBlogByID(ctx context.Context, id int) (*Blog, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getBlogById(ctx, id)
}

// UpdateBlog replaces the provided fields of a blog and returns the stored result.
// Any caller may update any blog.
func (s *BlogService) UpdateBlog(ctx context.Context, id int, req *UpdateBlogRequest) (*Blog, error) {
	sanitizeUpdateBlog(req)

	v := common.NewValidator()
	validateInt(v, id, "id")
	validateUpdateBlog(v, req)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	err := s.m.updateBlog(ctx, id, req)
	if err != nil {
		return nil, err
	}

	blog, err := s.m.getBlogById(ctx, id)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, common.BlogUpdatedKey, blog)

	return blog, nil
}

// DeleteBlog deletes a blog post. Only the user who created the blog post can delete it.
func (s *BlogService) DeleteBlog(ctx context.Context, id, requesterID int) error {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return v.ValidationError()
	}

	blog, err := s.m.getBlogById(ctx, id)
	if err != nil {
		return err
	}

	if !CanMutate(requesterID, blog) {
		return ErrForbidden
	}

	err = s.m.deleteBlog(ctx, id)
	if err != nil {
		return err
	}

	s.publish(ctx, common.BlogDeletedKey, blog)

	return nil
}

// GetBlogs returns blog posts in insertion order. A nil limit returns all of them.
func (s *BlogService) GetBlogs(ctx context.Context, limit, offset *int) ([]Blog, error) {
	v := common.NewValidator()
	if limit != nil {
		v.Check(*limit > 0, "limit", "must be greater than zero")
	}
	if offset != nil {
		v.Check(*offset >= 0, "offset", "must not be negative")
	}
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	var o int
	if offset != nil {
		o = *offset
	}

	return s.m.getBlogs(ctx, limit, o)
}

// ListAll returns every blog post.
func (s *BlogService) ListAll(ctx context.Context) ([]Blog, error) {
	return s.m.getBlogs(ctx, nil, 0)
}

func (s *BlogService) publish(ctx context.Context, key common.BindingKey, blog *Blog) {
	event := BlogEvent{ID: blog.ID}
	if blog.User != nil {
		event.UserID = &blog.User.ID
	}

	s.publisher.Publish(ctx, key, common.BlogExchange, event)
}
