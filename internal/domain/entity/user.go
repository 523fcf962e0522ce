package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User roles within a tenant
const (
	RoleOwner = "owner"
	RoleStaff = "staff"
)

// User represents a staff member or owner of a tenant
type User struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	TenantID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Email     string         `gorm:"size:255;unique;not null" json:"email"`
	Password  string         `gorm:"size:255" json:"-"`
	Role      string         `gorm:"size:50;default:'staff'" json:"role"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new user
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}

// IsOwner reports whether the user owns their tenant
func (u *User) IsOwner() bool {
	return u.Role == RoleOwner
}
