package httpmetrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: "/"},
		{in: "/authentication/register", want: "/authentication/register"},
		{in: "/authentication/data/42", want: "/authentication/data/{param}"},
		{
			in:   "/authentication/validate/1b4e28ba-2fa1-11d2-883f-0016d3cca427",
			want: "/authentication/validate/{param}",
		},
		{
			in:   "/authentication/data/1b4e28ba-2fa1-11d2-883f-0016d3cca427/0b1e28ba-2fa1-11d2-883f-0016d3cca427",
			want: "/authentication/data/{param}/{param}",
		},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizePath(tt.in), tt.in)
	}
}
