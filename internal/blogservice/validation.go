package blogservice

import (
	"regexp"
	"strings"

	"github.com/sushihentaime/multiblog/internal/common"
)

var (
	TitleRX = regexp.MustCompile("^[a-zA-Z0-9 ]+$")
)

const maxStylesheetLength = 64 * 1024

func validateTitle(v *common.Validator, title string) {
	v.Check(title != "", "title", "must be provided")
	v.Check(v.CheckStringLength(title, 3, 100), "title", "must be between 3 and 100 characters long")
	v.Check(TitleRX.MatchString(title), "title", "must only contain letters, numbers, and spaces")
}

// The stylesheet ends up inside a <style> element.
func validateStylesheet(v *common.Validator, stylesheet string) {
	v.Check(len(stylesheet) <= maxStylesheetLength, "stylesheet", "must not be larger than 64KB")
	v.Check(!strings.Contains(stylesheet, "<"), "stylesheet", "must not contain markup")
}
