package entity

import (
	"time"

	"github.com/google/uuid"
)

// UserType is the role of a user account
type UserType string

const (
	UserTypeUser  UserType = "USER"
	UserTypeAdmin UserType = "ADMIN"
)

// UserStatus represents whether the account is usable
type UserStatus string

const (
	UserStatusActive  UserStatus = "ACTIVE"
	UserStatusDeleted UserStatus = "DELETED"
)

// User represents a pet owner or a clinic administrator
type User struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name      string     `gorm:"type:varchar(100);not null" json:"name"`
	Surname   string     `gorm:"type:varchar(100);not null;index" json:"surname"`
	Phone     string     `gorm:"type:varchar(20)" json:"phone,omitempty"`
	Email     string     `gorm:"type:varchar(255);uniqueIndex:uq_users_email;not null" json:"email"`
	Password  string     `gorm:"type:text;not null" json:"-"`
	UserType  UserType   `gorm:"type:varchar(10);not null;default:'USER'" json:"user_type"`
	Status    UserStatus `gorm:"type:varchar(10);not null;default:'ACTIVE';index" json:"status"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}

func (u *User) IsAdmin() bool {
	return u.UserType == UserTypeAdmin
}
