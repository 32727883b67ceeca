package service

import (
	"reviewhub/database"
	"reviewhub/database/model"
	"reviewhub/web/entity"

	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService() *UserService {
	return &UserService{db: database.GetDB()}
}

// UserDTO is the wire shape of a user: the numeric id stays internal,
// users are addressed by username.
type UserDTO struct {
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Bio       string     `json:"bio"`
	Role      model.Role `json:"role"`
}

func toUserDTO(u *model.User) UserDTO {
	return UserDTO{
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Bio:       u.Bio,
		Role:      u.Role,
	}
}

// UserInput carries a full or partial user payload; nil means the field
// was absent from the request.
type UserInput struct {
	Username  *string `json:"username"`
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Bio       *string `json:"bio"`
	Role      *string `json:"role"`
}

// GetByUsername loads a user for the auth middleware; errors are raw
// store errors, not API errors.
func (s *UserService) GetByUsername(username string) (*model.User, error) {
	var user model.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) List(search string, page, pageSize int) (*entity.Page, error) {
	q := s.db.Model(&model.User{})
	if search != "" {
		q = q.Where("username LIKE ?", "%"+search+"%")
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return nil, err
	}

	var users []model.User
	if err := q.Order("username ASC").Scopes(paginate(page, pageSize)).Find(&users).Error; err != nil {
		return nil, err
	}

	results := make([]UserDTO, 0, len(users))
	for i := range users {
		results = append(results, toUserDTO(&users[i]))
	}
	return &entity.Page{Count: count, Results: results}, nil
}

func (s *UserService) Create(in UserInput) (UserDTO, error) {
	fields := map[string][]string{}
	username, email := deref(in.Username), deref(in.Email)
	checkUsername(fields, username)
	checkEmail(fields, email)

	role := model.RoleUser
	if in.Role != nil {
		role = model.Role(*in.Role)
		if !role.Valid() {
			fields["role"] = append(fields["role"], "role must be one of: user, moderator, admin")
		}
	}
	if in.Bio != nil && len(*in.Bio) > bioMaxLength {
		fields["bio"] = append(fields["bio"], "ensure this field has no more than 70 characters")
	}
	if err := fieldErrors(fields); err != nil {
		return UserDTO{}, err
	}

	user := model.User{
		Username:  username,
		Email:     email,
		FirstName: deref(in.FirstName),
		LastName:  deref(in.LastName),
		Bio:       deref(in.Bio),
		Role:      role,
	}
	if err := s.db.Create(&user).Error; err != nil {
		if database.IsDuplicate(err) {
			return UserDTO{}, entity.Validation("username", "user with this username or email already exists")
		}
		return UserDTO{}, err
	}
	return toUserDTO(&user), nil
}

func (s *UserService) Get(username string) (UserDTO, error) {
	user, err := s.GetByUsername(username)
	if database.IsNotFound(err) {
		return UserDTO{}, entity.NotFound("user")
	} else if err != nil {
		return UserDTO{}, err
	}
	return toUserDTO(user), nil
}

// Update applies a partial payload to the user addressed by username.
func (s *UserService) Update(username string, in UserInput) (UserDTO, error) {
	user, err := s.GetByUsername(username)
	if database.IsNotFound(err) {
		return UserDTO{}, entity.NotFound("user")
	} else if err != nil {
		return UserDTO{}, err
	}
	return s.apply(user, in, true)
}

// UpdateProfile is the self-service path. Any role in the payload is
// silently discarded: the caller's stored role is re-asserted.
func (s *UserService) UpdateProfile(user *model.User, in UserInput) (UserDTO, error) {
	return s.apply(user, in, false)
}

func (s *UserService) apply(user *model.User, in UserInput, allowRole bool) (UserDTO, error) {
	fields := map[string][]string{}
	if in.Username != nil {
		checkUsername(fields, *in.Username)
	}
	if in.Email != nil {
		checkEmail(fields, *in.Email)
	}
	if in.Bio != nil && len(*in.Bio) > bioMaxLength {
		fields["bio"] = append(fields["bio"], "ensure this field has no more than 70 characters")
	}

	role := user.Role
	if in.Role != nil && allowRole {
		role = model.Role(*in.Role)
		if !role.Valid() {
			fields["role"] = append(fields["role"], "role must be one of: user, moderator, admin")
		}
	}
	if err := fieldErrors(fields); err != nil {
		return UserDTO{}, err
	}

	if in.Username != nil {
		user.Username = *in.Username
	}
	if in.Email != nil {
		user.Email = *in.Email
	}
	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}
	if in.Bio != nil {
		user.Bio = *in.Bio
	}
	user.Role = role

	if err := s.db.Save(user).Error; err != nil {
		if database.IsDuplicate(err) {
			return UserDTO{}, entity.Validation("username", "user with this username or email already exists")
		}
		return UserDTO{}, err
	}
	return toUserDTO(user), nil
}

// Delete removes the user; their reviews and comments go with them
// through the store-level cascades.
func (s *UserService) Delete(username string) error {
	user, err := s.GetByUsername(username)
	if database.IsNotFound(err) {
		return entity.NotFound("user")
	} else if err != nil {
		return err
	}
	return s.db.Delete(user).Error
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
