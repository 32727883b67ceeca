package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorConstructors(t *testing.T) {
	unauthorized := Unauthorized("")
	assert.Equal(t, 401, unauthorized.Status)
	assert.Equal(t, "authentication credentials were not provided", unauthorized.Detail)
	assert.Equal(t, "bad token", Unauthorized("bad token").Detail)

	forbidden := Forbidden("")
	assert.Equal(t, 403, forbidden.Status)
	assert.Equal(t, "you do not have permission to perform this action", forbidden.Detail)

	notFound := NotFound("title")
	assert.Equal(t, 404, notFound.Status)
	assert.Equal(t, "title not found", notFound.Detail)

	validation := Validation("slug", "already exists")
	assert.Equal(t, 400, validation.Status)
	assert.Equal(t, []string{"already exists"}, validation.Fields["slug"])
}
