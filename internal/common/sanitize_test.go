package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeMarkdown(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "no script tag",
			input: "# Welcome\nHello, World!",
			want:  "# Welcome\nHello, World!",
		},
		{
			name:  "script tag",
			input: "<script>alert('Hello, World!');</script>",
			want:  "",
		},
		{
			name:  "multiline script",
			input: "before<script>\nalert(1)\n</script>after",
			want:  "beforeafter",
		},
		{
			name: "multiple script tags",
			input: `Here is some text.
<script>alert('Hello, world!');</script>
More text.
<SCRIPT SRC="evil.js"></SCRIPT>`,
			want: "Here is some text.\n\nMore text.\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SanitizeMarkdown(tc.input))
		})
	}
}
