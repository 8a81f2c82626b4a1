package blogservice

import (
	"regexp"
	"strings"
)

var scriptTagPattern = regexp.MustCompile(`(?is)<\s*script[^>]*>(.*?)<\s*/\s*script\s*>`)

// sanitizeText drops script elements and surrounding whitespace from user supplied text.
func sanitizeText(s string) string {
	return strings.TrimSpace(scriptTagPattern.ReplaceAllString(s, ""))
}

func sanitizeCreateBlog(req *CreateBlogRequest) {
	req.Title = sanitizeText(req.Title)
	req.Author = sanitizeText(req.Author)
	req.URL = strings.TrimSpace(req.URL)
}

func sanitizeUpdateBlog(req *UpdateBlogRequest) {
	if req.Title != nil {
		s := sanitizeText(*req.Title)
		req.Title = &s
	}
	if req.Author != nil {
		s := sanitizeText(*req.Author)
		req.Author = &s
	}
	if req.URL != nil {
		s := strings.TrimSpace(*req.URL)
		req.URL = &s
	}
}
