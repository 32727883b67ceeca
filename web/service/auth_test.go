package service

import (
	"errors"
	"strings"
	"testing"

	"reviewhub/database/model"
	"reviewhub/web/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordSender struct {
	to   []string
	body []string
}

func (s *recordSender) Send(to, _, body string) error {
	s.to = append(s.to, to)
	s.body = append(s.body, body)
	return nil
}

type failSender struct{}

func (failSender) Send(string, string, string) error {
	return errors.New("smtp: connection refused")
}

func apiErr(t *testing.T, err error) *entity.ApiError {
	t.Helper()
	var apiError *entity.ApiError
	require.ErrorAs(t, err, &apiError)
	return apiError
}

func TestSignupIssuesCode(t *testing.T) {
	setupTestDB(t)
	mail := &recordSender{}
	svc := NewAuthService(mail)

	user, err := svc.Signup("alice", "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, model.RoleUser, user.Role)

	require.Len(t, mail.to, 1)
	assert.Equal(t, "alice@example.com", mail.to[0])
	assert.True(t, strings.Contains(mail.body[0], NewCodeService().Issue(user)))
}

func TestSignupIdempotentForSamePair(t *testing.T) {
	setupTestDB(t)
	mail := &recordSender{}
	svc := NewAuthService(mail)

	first, err := svc.Signup("alice", "alice@example.com")
	require.NoError(t, err)
	second, err := svc.Signup("alice", "alice@example.com")
	require.NoError(t, err)

	assert.Equal(t, first.Id, second.Id)
	assert.Len(t, mail.to, 2)
}

func TestSignupConflictingPairRejected(t *testing.T) {
	setupTestDB(t)
	svc := NewAuthService(&recordSender{})

	_, err := svc.Signup("bob", "bob@example.com")
	require.NoError(t, err)

	_, err = svc.Signup("bob", "other@example.com")
	assert.Contains(t, apiErr(t, err).Fields, "username")

	_, err = svc.Signup("carol", "bob@example.com")
	assert.Contains(t, apiErr(t, err).Fields, "email")
}

func TestSignupReservedUsername(t *testing.T) {
	setupTestDB(t)
	svc := NewAuthService(&recordSender{})

	_, err := svc.Signup("me", "me@example.com")
	assert.Contains(t, apiErr(t, err).Fields, "username")
}

func TestSignupInvalidInput(t *testing.T) {
	setupTestDB(t)
	svc := NewAuthService(&recordSender{})

	_, err := svc.Signup("no spaces allowed", "x@example.com")
	assert.Contains(t, apiErr(t, err).Fields, "username")

	_, err = svc.Signup("dave", "not-an-email")
	assert.Contains(t, apiErr(t, err).Fields, "email")

	_, err = svc.Signup("", "")
	fields := apiErr(t, err).Fields
	assert.Contains(t, fields, "username")
	assert.Contains(t, fields, "email")
}

func TestSignupMailFailurePropagates(t *testing.T) {
	setupTestDB(t)
	svc := NewAuthService(failSender{})

	_, err := svc.Signup("eve", "eve@example.com")
	require.Error(t, err)
	var apiError *entity.ApiError
	assert.False(t, errors.As(err, &apiError), "delivery failure is not a client error")
}

func TestTokenExchange(t *testing.T) {
	setupTestDB(t)
	svc := NewAuthService(&recordSender{})

	user, err := svc.Signup("alice", "alice@example.com")
	require.NoError(t, err)

	code := NewCodeService().Issue(user)
	token, err := svc.Token("alice", code)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subject, err := NewTokenService().Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", subject)
}

func TestTokenWrongCode(t *testing.T) {
	setupTestDB(t)
	svc := NewAuthService(&recordSender{})

	_, err := svc.Signup("alice", "alice@example.com")
	require.NoError(t, err)

	token, err := svc.Token("alice", "deadbeef")
	assert.Empty(t, token)
	apiError := apiErr(t, err)
	assert.Equal(t, 400, apiError.Status)
	assert.Contains(t, apiError.Fields, "confirmation_code")
}

func TestTokenUnknownUser(t *testing.T) {
	setupTestDB(t)
	svc := NewAuthService(&recordSender{})

	_, err := svc.Token("ghost", "whatever")
	assert.Equal(t, 404, apiErr(t, err).Status)
}

func TestConfirmationCodeDeterministic(t *testing.T) {
	codes := NewCodeService()
	user := &model.User{Id: 7, Username: "alice", Email: "alice@example.com"}

	code := codes.Issue(user)
	assert.Equal(t, code, codes.Issue(user))
	assert.Len(t, code, confirmationCodeLength)
	assert.True(t, codes.Verify(user, code))
	assert.False(t, codes.Verify(user, "wrong"))

	other := &model.User{Id: 8, Username: "bob", Email: "bob@example.com"}
	assert.NotEqual(t, code, codes.Issue(other))
}
