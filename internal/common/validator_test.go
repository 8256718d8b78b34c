package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateID(t *testing.T) {
	testCases := []struct {
		name     string
		id       string
		expected map[string]string
	}{
		{
			name:     "valid id",
			id:       NewID(),
			expected: map[string]string{},
		},
		{
			name:     "empty id",
			id:       "",
			expected: map[string]string{"blog_id": "must be provided"},
		},
		{
			name:     "malformed id",
			id:       "not-an-id",
			expected: map[string]string{"blog_id": "must be a valid id"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v := NewValidator()
			ValidateID(v, tc.id, "blog_id")
			assert.Equal(t, tc.expected, v.Errors)
		})
	}
}

func TestCheckStringLength(t *testing.T) {
	v := NewValidator()
	assert.True(t, v.CheckStringLength("abc", 3, 5))
	assert.True(t, v.CheckStringLength("ééé", 3, 3))
	assert.False(t, v.CheckStringLength("ab", 3, 5))
}
