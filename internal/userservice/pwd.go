package userservice

import (
	"errors"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

const passwordCost = 12

// Password is a stored bcrypt credential. The plain secret is hashed on the
// way in and never kept.
type Password struct {
	hash []byte
}

func hashPassword(plain string) (Password, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), passwordCost)
	if err != nil {
		return Password{}, err
	}

	return Password{hash: hash}, nil
}

// matches reports whether plain is the secret behind the hash. A mismatch is
// not an error; a corrupt hash is.
func (p Password) matches(plain string) (bool, error) {
	err := bcrypt.CompareHashAndPassword(p.hash, []byte(plain))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, err
	}
}

// unknownUserPassword is compared against on logins for usernames that do
// not exist, so both failures cost one bcrypt comparison.
var unknownUserPassword = sync.OnceValue(func() Password {
	p, err := hashPassword("unknown user placeholder")
	if err != nil {
		panic(err)
	}
	return p
})
