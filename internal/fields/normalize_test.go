package fields

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "collapses spaces and tabs", in: "John  \t Doe", want: "John Doe"},
		{name: "keeps line structure", in: "John Doe\n\n\nLahore,  Pakistan", want: "John Doe\nLahore, Pakistan"},
		{name: "trims line edges", in: "  John Doe  \n   BSc CS ", want: "John Doe\nBSc CS"},
		{name: "drops whitespace-only lines", in: "a\n   \nb", want: "a\nb"},
		{name: "crlf input", in: "a\r\nb\r\n\r\nc", want: "a\nb\nc"},
		{name: "single line stays single", in: "plain text", want: "plain text"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"plain single line",
		"  a \t b \r\n\r\n c \n\n\n d  ",
		"Jane A Doe\njane@x.com   (555) 111-2222\n\nBSc Computer Science\nUniversity of X",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}
