package userservice

import (
	"regexp"

	"github.com/blogist/blogapi/internal/common"
)

var (
	UsernameRX = regexp.MustCompile(`^[a-zA-Z0-9._\-]+$`)
)

func validateUsername(v *common.Validator, username string) {
	v.Check(username != "", "username", "must be provided")
	v.Check(v.CheckStringLength(username, 3, 25), "username", "must be between 3 and 25 characters long")
	v.Check(UsernameRX.MatchString(username), "username", "must only contain letters, numbers, dots, dashes and underscores")
}

func validateName(v *common.Validator, name string) {
	v.Check(v.CheckStringLength(name, 0, 100), "name", "must not be more than 100 characters long")
}

// bcrypt ignores anything past 72 bytes
func validatePassword(v *common.Validator, password string) {
	v.Check(password != "", "password", "must be provided")
	v.Check(len(password) >= 3 && len(password) <= 72, "password", "must be between 3 and 72 characters long")
}

func validateInt(v *common.Validator, num int, name string) {
	v.Check(num > 0, name, "must be greater than zero")
}
