package models

import "gorm.io/gorm"

// User represents an account. The stored password is always a bcrypt hash
// and is never serialized.
type User struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Fullname   string `json:"fullname" gorm:"uniqueIndex;type:varchar(100)"`
	Email      string `json:"email" gorm:"uniqueIndex;type:varchar(255)"`
	Password   string `json:"-" gorm:"type:varchar(255)"`
	Role       string `json:"role" gorm:"type:varchar(16)"`
	gorm.Model `json:"-"`
}

// SignupInput is the validation schema for user registration.
type SignupInput struct {
	Fullname string `json:"fullname" validate:"required,min=3,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=user admin"`
}

// LoginInput is the validation schema for login.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// TokenPair holds the credentials issued on a successful login.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// UserPage is the paginated result of a user listing.
type UserPage struct {
	Data []User   `json:"data"`
	Meta PageMeta `json:"meta"`
}
