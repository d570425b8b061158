package models

import "gorm.io/gorm"

// User represents a registered shopper.
type User struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name       string `json:"name" gorm:"type:varchar(100)" validate:"required,min=1,max=100"`
	Email      string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password   string `gorm:"type:varchar(255)" validate:"required,min=6"` // No json tag for security
	Address    string `json:"address,omitempty" gorm:"type:varchar(255)"`
	City       string `json:"city,omitempty" gorm:"type:varchar(100)"`
	Country    string `json:"country,omitempty" gorm:"type:varchar(100)"`
	Phone      string `json:"phone,omitempty" gorm:"type:varchar(50)"`
	gorm.Model // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
