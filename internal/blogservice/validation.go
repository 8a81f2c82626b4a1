package blogservice

import (
	"math"

	"github.com/blogist/blogapi/internal/common"
)

func validateTitle(v *common.Validator, title string) {
	v.Check(title != "", "title", "must be provided")
	v.Check(v.CheckStringLength(title, 0, 200), "title", "must not be more than 200 characters long")
}

func validateAuthor(v *common.Validator, author string) {
	v.Check(v.CheckStringLength(author, 0, 100), "author", "must not be more than 100 characters long")
}

// validateURL only requires presence; bare hosts such as "example.com/post"
// are stored as given.
func validateURL(v *common.Validator, url string) {
	v.Check(url != "", "url", "must be provided")
	v.Check(v.CheckStringLength(url, 0, 2048), "url", "must not be more than 2048 characters long")
}

func validateLikes(v *common.Validator, likes int) {
	v.Check(likes >= 0, "likes", "must not be negative")
	// likes is an INTEGER column
	v.Check(likes <= math.MaxInt32, "likes", "must not exceed 2147483647")
}

func validateInt(v *common.Validator, num int, name string) {
	v.Check(num > 0, name, "must be greater than zero")
}

func validateCreateBlog(v *common.Validator, req *CreateBlogRequest) {
	validateTitle(v, req.Title)
	validateAuthor(v, req.Author)
	validateURL(v, req.URL)
	if req.Likes != nil {
		validateLikes(v, *req.Likes)
	}
}

func validateUpdateBlog(v *common.Validator, req *UpdateBlogRequest) {
	if req.Title != nil {
		validateTitle(v, *req.Title)
	}
	if req.Author != nil {
		validateAuthor(v, *req.Author)
	}
	if req.URL != nil {
		validateURL(v, *req.URL)
	}
	if req.Likes != nil {
		validateLikes(v, *req.Likes)
	}
}
