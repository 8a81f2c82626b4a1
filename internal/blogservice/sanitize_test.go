package blogservice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeText(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "no script tag",
			input: "Go To Statement Considered Harmful",
			want:  "Go To Statement Considered Harmful",
		},
		{
			name:  "script tag",
			input: "<script>alert('Hello, World!');</script>",
			want:  "",
		},
		{
			name:  "script tag inside title",
			input: "  React patterns <SCRIPT SRC=\"evil.js\"></SCRIPT> ",
			want:  "React patterns",
		},
		{
			name:  "multiline script",
			input: "Canonical <script>\nalert(1)\n</script>string reduction",
			want:  "Canonical string reduction",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, sanitizeText(tc.input))
		})
	}
}

func TestSanitizeUpdateBlog(t *testing.T) {
	title := " <script>x</script>First class tests "
	url := " http://blog.cleancoder.com "
	req := &UpdateBlogRequest{Title: &title, URL: &url}

	sanitizeUpdateBlog(req)

	assert.Equal(t, "First class tests", *req.Title)
	assert.Equal(t, "http://blog.cleancoder.com", *req.URL)
	assert.Nil(t, req.Author)
	assert.Nil(t, req.Likes)
}
