package filesystem

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolvePath(t *testing.T) {
	tests := []struct {
		name string
		uri  string
		want string
	}{
		{
			name: "file:// URI is converted to local path",
			uri:  "file:///Users/test/papers/paper.pdf",
			want: "/Users/test/papers/paper.pdf",
		},
		{
			name: "file:// URI with spaces",
			uri:  "file:///Users/test/my papers/paper.pdf",
			want: "/Users/test/my papers/paper.pdf",
		},
		{
			name: "bare path passes through unchanged",
			uri:  "/Users/test/papers/paper.pdf",
			want: "/Users/test/papers/paper.pdf",
		},
		{
			name: "relative path passes through unchanged",
			uri:  "papers/paper.pdf",
			want: "papers/paper.pdf",
		},
		{
			name: "empty string",
			uri:  "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolvePath(tt.uri))
		})
	}
}
