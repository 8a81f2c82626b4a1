package userservice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	p, err := hashPassword("sekret")
	require.NoError(t, err)

	assert.NotContains(t, string(p.hash), "sekret")

	cost, err := bcrypt.Cost(p.hash)
	require.NoError(t, err)
	assert.Equal(t, passwordCost, cost)

	tests := []struct {
		name  string
		plain string
		want  bool
	}{
		{name: "same secret", plain: "sekret", want: true},
		{name: "case differs", plain: "Sekret", want: false},
		{name: "empty", plain: "", want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ok, err := p.matches(tc.plain)
			require.NoError(t, err)
			assert.Equal(t, tc.want, ok)
		})
	}
}

func TestHashPasswordSalted(t *testing.T) {
	a, err := hashPassword("sekret")
	require.NoError(t, err)
	b, err := hashPassword("sekret")
	require.NoError(t, err)

	assert.NotEqual(t, a.hash, b.hash)
}

func TestPasswordMatchesCorruptHash(t *testing.T) {
	p := Password{hash: []byte("not a bcrypt hash")}

	ok, err := p.matches("sekret")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestUnknownUserPassword(t *testing.T) {
	ok, err := unknownUserPassword().matches("sekret")
	require.NoError(t, err)
	assert.False(t, ok)
}
