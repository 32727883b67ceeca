// Package model defines the persisted entities of the review catalog.
package model

// Role is the authorization tier of a user.
type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// Tier returns the ordinal rank of the role: user < moderator < admin.
// Unknown roles rank below user.
func (r Role) Tier() int {
	switch r {
	case RoleUser:
		return 1
	case RoleModerator:
		return 2
	case RoleAdmin:
		return 3
	default:
		return 0
	}
}

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleModerator || r == RoleAdmin
}

type User struct {
	Id          int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Username    string `json:"username" gorm:"size:150;uniqueIndex;not null"`
	Email       string `json:"email" gorm:"size:254;uniqueIndex;not null"`
	FirstName   string `json:"first_name" gorm:"size:150"`
	LastName    string `json:"last_name" gorm:"size:150"`
	Bio         string `json:"bio" gorm:"size:70"`
	Role        Role   `json:"role" gorm:"size:10;not null;default:user"`
	IsSuperuser bool   `json:"-" gorm:"not null;default:false"`
}

// IsAdmin reports whether the user holds the admin tier. Superusers are
// treated as admins everywhere.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.IsSuperuser
}

func (u *User) IsModerator() bool {
	return u.Role == RoleModerator
}
