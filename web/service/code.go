package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"reviewhub/config"
	"reviewhub/database/model"
)

const confirmationCodeLength = 40

// CodeService derives confirmation codes from user state and the server
// secret. Codes are deterministic, so re-issuing is idempotent and
// verification needs no storage; rotating the secret invalidates every
// outstanding code.
type CodeService struct {
	secret []byte
}

func NewCodeService() *CodeService {
	return &CodeService{secret: []byte(config.GetSecretKey())}
}

// Issue returns the confirmation code for the user.
func (s *CodeService) Issue(user *model.User) string {
	mac := hmac.New(sha256.New, s.secret)
	fmt.Fprintf(mac, "%d:%s:%s", user.Id, user.Username, user.Email)
	return hex.EncodeToString(mac.Sum(nil))[:confirmationCodeLength]
}

// Verify checks code against the user in constant time.
func (s *CodeService) Verify(user *model.User, code string) bool {
	return hmac.Equal([]byte(s.Issue(user)), []byte(code))
}
