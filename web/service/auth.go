package service

import (
	"fmt"

	"reviewhub/database"
	"reviewhub/database/model"
	"reviewhub/logger"
	"reviewhub/web/entity"

	"gorm.io/gorm"
)

// AuthService implements the two-phase signup / token-exchange flow.
type AuthService struct {
	db     *gorm.DB
	codes  *CodeService
	tokens *TokenService
	mail   Sender
}

func NewAuthService(mail Sender) *AuthService {
	return &AuthService{
		db:     database.GetDB(),
		codes:  NewCodeService(),
		tokens: NewTokenService(),
		mail:   mail,
	}
}

// Signup registers (or re-registers) a user and mails a confirmation
// code. A repeat call with the identical (username, email) pair is
// idempotent and re-issues the code; a call conflicting on only one of
// the two fields fails with a field-keyed validation error.
func (s *AuthService) Signup(username, email string) (*model.User, error) {
	fields := map[string][]string{}
	checkUsername(fields, username)
	checkEmail(fields, email)
	if err := fieldErrors(fields); err != nil {
		return nil, err
	}

	var user model.User
	err := s.db.Where("username = ? AND email = ?", username, email).First(&user).Error
	if database.IsNotFound(err) {
		if err := s.checkConflicts(username, email); err != nil {
			return nil, err
		}
		user = model.User{Username: username, Email: email, Role: model.RoleUser}
		if err := s.db.Create(&user).Error; err != nil {
			if database.IsDuplicate(err) {
				// Lost a race on the unique indexes.
				return nil, entity.Validation("username", "user with this username or email already exists")
			}
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	code := s.codes.Issue(&user)
	body := fmt.Sprintf("Confirmation code: %s", code)
	if err := s.mail.Send(user.Email, "Your registration code", body); err != nil {
		return nil, fmt.Errorf("send confirmation code to %s: %w", user.Email, err)
	}
	logger.Infof("confirmation code issued for %s", user.Username)
	return &user, nil
}

// checkConflicts rejects a signup whose username or email is already
// taken by a different pair.
func (s *AuthService) checkConflicts(username, email string) error {
	fields := map[string][]string{}

	var count int64
	if err := s.db.Model(&model.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		fields["username"] = append(fields["username"], "user with this username already exists")
	}

	if err := s.db.Model(&model.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		fields["email"] = append(fields["email"], "user with this email already exists")
	}

	if err := fieldErrors(fields); err != nil {
		return err
	}
	return nil
}

// Token exchanges a (username, confirmation code) pair for an access
// token. Unknown username is 404; a wrong code is a validation error and
// issues nothing.
func (s *AuthService) Token(username, code string) (string, error) {
	fields := map[string][]string{}
	if username == "" {
		fields["username"] = append(fields["username"], "this field is required")
	}
	if code == "" {
		fields["confirmation_code"] = append(fields["confirmation_code"], "this field is required")
	}
	if err := fieldErrors(fields); err != nil {
		return "", err
	}

	var user model.User
	err := s.db.Where("username = ?", username).First(&user).Error
	if database.IsNotFound(err) {
		return "", entity.NotFound("user")
	} else if err != nil {
		return "", err
	}

	if !s.codes.Verify(&user, code) {
		return "", entity.Validation("confirmation_code", "invalid confirmation code")
	}
	return s.tokens.Issue(&user)
}
