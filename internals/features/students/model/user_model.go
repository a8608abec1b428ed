// internals/features/students/model/user_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	UserID       uuid.UUID `json:"user_id" gorm:"column:user_id;type:uuid;primaryKey;default:gen_random_uuid()"`
	UserName     string    `json:"user_name" gorm:"column:user_name;type:varchar(120);not null"`
	UserEmail    string    `json:"user_email" gorm:"column:user_email;type:varchar(160);not null;uniqueIndex"`
	UserPassword string    `json:"-" gorm:"column:user_password;type:text;not null"`
	UserRole     string    `json:"user_role" gorm:"column:user_role;type:varchar(20);not null;default:STUDENT"`

	UserCreatedAt time.Time `json:"user_created_at" gorm:"column:user_created_at;type:timestamptz;not null;default:now()"`
	UserUpdatedAt time.Time `json:"user_updated_at" gorm:"column:user_updated_at;type:timestamptz;not null;default:now()"`
}

func (User) TableName() string { return "users" }

func (u *User) BeforeUpdate(tx *gorm.DB) error {
	u.UserUpdatedAt = time.Now().UTC()
	return nil
}
