package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

type Company struct {
	ID        snowflake.ID      `gorm:"primaryKey" json:"id"`
	TenantID  snowflake.ID      `gorm:"not null;uniqueIndex" json:"-"`
	Name      string            `gorm:"not null;default:''" json:"name"`
	Address   string            `gorm:"not null;default:''" json:"address"`
	Phone     string            `gorm:"not null;default:''" json:"phone"`
	Email     string            `gorm:"not null;default:''" json:"email"`
	Currency  string            `gorm:"not null;default:''" json:"currency"`
	Metadata  datatypes.JSONMap `json:"metadata"`
	CreatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Company) TableName() string { return "companies" }
