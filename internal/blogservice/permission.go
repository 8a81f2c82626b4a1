package blogservice

import "errors"

// ErrForbidden is returned when a user tries to mutate a blog they do not own.
var ErrForbidden = errors.New("Forbidden for this user")

// CanMutate reports whether the requester owns the blog. Blogs without an
// owner cannot be mutated by anyone.
func CanMutate(requesterID int, blog *Blog) bool {
	if blog == nil || blog.User == nil {
		return false
	}

	return blog.User.ID == requesterID
}
