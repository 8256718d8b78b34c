package postservice

import "github.com/sushihentaime/multiblog/internal/common"

const (
	maxPostLength    = 20000
	maxCommentLength = 2000
)

func validateContent(v *common.Validator, content string, max int) {
	v.Check(content != "", "content", "must be provided")
	v.Check(len(content) <= max, "content", "is too long")
}

func validateAtBlog(v *common.Validator, atBlog string) {
	v.Check(atBlog != "", "at_blog", "must be provided")
	v.Check(v.CheckStringLength(atBlog, 1, 100), "at_blog", "must be between 1 and 100 characters long")
}
