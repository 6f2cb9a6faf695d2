package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Ann@X.com", "ann@x.com"},
		{"  ann@x.com  ", "ann@x.com"},
		{"\tANN@X.COM\n", "ann@x.com"},
		{"ann@x.com", "ann@x.com"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeEmail(tt.in))
	}
}
