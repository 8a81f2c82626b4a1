package userservice

import (
	"strings"
	"testing"

	"github.com/blogist/blogapi/internal/common"
)

func TestValidateUsername(t *testing.T) {
	testCases := []struct {
		username string
		valid    bool
	}{
		{username: "", valid: false},
		{username: "a", valid: false},
		{username: "ab", valid: false},
		{username: "abc", valid: true},
		{username: "root", valid: true},
		{username: "mluukkai", valid: true},
		{username: "valid123", valid: true},
		{username: "first.last", valid: true},
		{username: "first_last-2", valid: true},
		{username: "invalid!", valid: false},
		{username: "invalid username", valid: false},
		{username: "abcdefghijklmnopqrstuvwxyz", valid: false},
	}

	for _, tc := range testCases {
		t.Run(tc.username, func(t *testing.T) {
			v := common.NewValidator()
			validateUsername(v, tc.username)
			if v.Valid() != tc.valid {
				t.Errorf("expected %v, got %v", tc.valid, v.Valid())
				for _, e := range v.Errors {
					t.Log(e)
				}
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	testCases := []struct {
		password string
		valid    bool
	}{
		{password: "", valid: false},
		{password: "a", valid: false},
		{password: "ab", valid: false},
		{password: "abc", valid: true},
		{password: "sekret", valid: true},
		{password: "salainen", valid: true},
		{password: strings.Repeat("a", 72), valid: true},
		{password: strings.Repeat("a", 73), valid: false},
	}

	for _, tc := range testCases {
		t.Run(tc.password, func(t *testing.T) {
			v := common.NewValidator()
			validatePassword(v, tc.password)
			if v.Valid() != tc.valid {
				t.Errorf("expected %v, got %v", tc.valid, v.Valid())
				for _, e := range v.Errors {
					t.Log(e)
				}
			}
		})
	}
}

func TestValidateName(t *testing.T) {
	v := common.NewValidator()
	validateName(v, "superuser")
	validateName(v, "")
	if !v.Valid() {
		t.Errorf("expected valid names, got %v", v.Errors)
	}

	validateName(v, strings.Repeat("n", 101))
	if v.Valid() {
		t.Error("expected an error for a long name")
	}
}
