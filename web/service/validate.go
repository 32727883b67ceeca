// Package service implements the application logic behind the API
// controllers: validation, authorization-relevant lookups and all store
// access.
package service

import (
	"net/mail"
	"regexp"
	"time"

	"reviewhub/web/entity"

	"gorm.io/gorm"
)

const (
	usernameMaxLength = 150
	emailMaxLength    = 254
	nameMaxLength     = 256
	slugMaxLength     = 50
	bioMaxLength      = 70
	commentMaxLength  = 255

	defaultPageSize = 10
	maxPageSize     = 100
)

var (
	usernameRe = regexp.MustCompile(`^[\w.@+-]+$`)
	slugRe     = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
)

// checkUsername validates format, length and the reserved literal "me",
// appending messages to fields.
func checkUsername(fields map[string][]string, username string) {
	switch {
	case username == "":
		fields["username"] = append(fields["username"], "this field is required")
	case len(username) > usernameMaxLength:
		fields["username"] = append(fields["username"], "ensure this field has no more than 150 characters")
	case username == "me":
		fields["username"] = append(fields["username"], "username \"me\" is reserved")
	case !usernameRe.MatchString(username):
		fields["username"] = append(fields["username"], "only letters, digits and @/./+/-/_ are allowed")
	}
}

func checkEmail(fields map[string][]string, email string) {
	switch {
	case email == "":
		fields["email"] = append(fields["email"], "this field is required")
	case len(email) > emailMaxLength:
		fields["email"] = append(fields["email"], "ensure this field has no more than 254 characters")
	default:
		if _, err := mail.ParseAddress(email); err != nil {
			fields["email"] = append(fields["email"], "enter a valid email address")
		}
	}
}

func checkSlug(fields map[string][]string, slug string) {
	switch {
	case slug == "":
		fields["slug"] = append(fields["slug"], "this field is required")
	case len(slug) > slugMaxLength:
		fields["slug"] = append(fields["slug"], "ensure this field has no more than 50 characters")
	case !slugRe.MatchString(slug):
		fields["slug"] = append(fields["slug"], "only letters, digits, hyphen and underscore are allowed")
	}
}

func checkName(fields map[string][]string, name string) {
	switch {
	case name == "":
		fields["name"] = append(fields["name"], "this field is required")
	case len(name) > nameMaxLength:
		fields["name"] = append(fields["name"], "ensure this field has no more than 256 characters")
	}
}

func checkYear(fields map[string][]string, year int) {
	if year < 0 || year > time.Now().Year() {
		fields["year"] = append(fields["year"], "year must be between 0 and the current year")
	}
}

func fieldErrors(fields map[string][]string) *entity.ApiError {
	if len(fields) == 0 {
		return nil
	}
	return entity.ValidationFields(fields)
}

// paginate clamps page/pageSize to sane bounds and applies them as a
// gorm scope. Ordering is the caller's responsibility.
func paginate(page, pageSize int) func(db *gorm.DB) *gorm.DB {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset((page - 1) * pageSize).Limit(pageSize)
	}
}
