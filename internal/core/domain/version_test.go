package domain_test

import (
	"testing"

	"github.com/SParksLz/rez/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestVersion_Components(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		major int
		minor int
	}{
		{name: "plain", raw: "1.43.0", major: 1, minor: 43},
		{name: "single component", raw: "7", major: 7, minor: 0},
		{name: "suffixed component", raw: "1.2-beta.0", major: 1, minor: 2},
		{name: "non numeric", raw: "trunk", major: 0, minor: 0},
		{name: "empty", raw: "", major: 0, minor: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := domain.ParseVersion(tt.raw)
			assert.Equal(t, tt.raw, v.String())
			assert.Equal(t, tt.major, v.Major())
			assert.Equal(t, tt.minor, v.Minor())
		})
	}
}

func TestVersion_Compare(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want int
	}{
		{name: "equal", a: "1.2.3", b: "1.2.3", want: 0},
		{name: "numeric ordering", a: "1.9", b: "1.10", want: -1},
		{name: "shorter sorts first", a: "1.2", b: "1.2.1", want: -1},
		{name: "major wins", a: "2.0", b: "1.99.99", want: 1},
		{name: "lexical fallback", a: "1.alpha", b: "1.beta", want: -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := domain.ParseVersion(tt.a)
			b := domain.ParseVersion(tt.b)
			assert.Equal(t, tt.want, a.Compare(b))
			assert.Equal(t, -tt.want, b.Compare(a))
		})
	}
}
