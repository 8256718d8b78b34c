package pageservice

import (
	"regexp"

	"github.com/sushihentaime/multiblog/internal/common"
)

// Page titles appear in URLs.
var TitleRX = regexp.MustCompile("^[a-z0-9][a-z0-9-]*$")

func validatePageTitle(v *common.Validator, title string) {
	v.Check(title != "", "title", "must be provided")
	v.Check(v.CheckStringLength(title, 1, 64), "title", "must be between 1 and 64 characters long")
	v.Check(TitleRX.MatchString(title), "title", "must only contain lowercase letters, numbers and dashes")
}

func validateContent(v *common.Validator, content string) {
	v.Check(content != "", "content", "must be provided")
}
