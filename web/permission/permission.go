// Package permission holds the authorization rules of the API as pure
// predicates over (HTTP method, authenticated user, target object), kept
// apart from the transport layer so they can be tested in isolation.
package permission

import (
	"net/http"

	"reviewhub/database/model"
)

// Target is an object with an owning author, used by object-level rules.
type Target interface {
	OwnerID() int
}

// Rule decides whether user (nil when anonymous) may perform method on
// target (nil for collection-level checks).
type Rule func(method string, user *model.User, target Target) bool

// AnyOf combines rules with logical OR: access is granted as soon as one
// rule allows it.
func AnyOf(rules ...Rule) Rule {
	return func(method string, user *model.User, target Target) bool {
		for _, rule := range rules {
			if rule(method, user, target) {
				return true
			}
		}
		return false
	}
}

// IsSafeMethod reports whether method cannot mutate state.
func IsSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

// ReadOnly permits safe methods only.
func ReadOnly(method string, _ *model.User, _ Target) bool {
	return IsSafeMethod(method)
}

// AdminOrReadOnly permits safe methods for everyone and unsafe methods
// for the admin tier.
func AdminOrReadOnly(method string, user *model.User, _ Target) bool {
	if IsSafeMethod(method) {
		return true
	}
	return user != nil && user.IsAdmin()
}

// AdminModerAuthorOrReadOnly permits safe methods for everyone; unsafe
// methods require the target's author, a moderator or the admin tier.
func AdminModerAuthorOrReadOnly(method string, user *model.User, target Target) bool {
	if IsSafeMethod(method) {
		return true
	}
	if user == nil {
		return false
	}
	if user.Role.Tier() >= model.RoleModerator.Tier() || user.IsSuperuser {
		return true
	}
	return target != nil && target.OwnerID() == user.Id
}

// AdminSuperOnly permits the admin tier only, reads included.
func AdminSuperOnly(_ string, user *model.User, _ Target) bool {
	return user != nil && user.IsAdmin()
}
