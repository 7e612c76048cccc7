package utils_test

import (
	"testing"

	"github.com/pintwise/pintwise/pkg/utils"
	"github.com/stretchr/testify/assert"
)

func TestCompressAllWhitespace(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "single space", input: "beer garden", want: "beer garden"},
		{name: "multiple spaces", input: "beer    garden", want: "beer garden"},
		{name: "newlines and spaces", input: "view from\n\n  the terrace  \n\n", want: "view from the terrace"},
		{name: "tabs", input: "snug\t\t bar", want: "snug bar"},
		{name: "control characters", input: "front\x00 bar\x07", want: "front bar"},
		{name: "empty string", input: "", want: ""},
		{name: "only whitespace", input: "   \n\t   ", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, utils.CompressAllWhitespace(tt.input))
		})
	}
}

func TestCompressWhitespacePreserveNewlines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "single line", input: "Great   pint", want: "Great pint"},
		{name: "keeps line breaks", input: "Great pint\nFriendly staff", want: "Great pint\nFriendly staff"},
		{name: "windows line endings", input: "Great pint\r\nFriendly staff\rQuiet", want: "Great pint\nFriendly staff\nQuiet"},
		{name: "collapses blank runs", input: "Great pint\n\n\n\n\nFriendly staff", want: "Great pint\n\nFriendly staff"},
		{name: "trims surrounding blank lines", input: "\n\n  Great pint  \n\n", want: "Great pint"},
		{name: "whitespace only lines count as blank", input: "a\n   \n\t\nb", want: "a\n\nb"},
		{name: "empty string", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, utils.CompressWhitespacePreserveNewlines(tt.input))
		})
	}
}
