package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type AccountType string

const (
	TypeCustomer AccountType = "customer"
	TypeSupplier AccountType = "supplier"
)

type AccountStatus string

const (
	StatusActive   AccountStatus = "active"
	StatusInactive AccountStatus = "inactive"
)

type Account struct {
	ID        snowflake.ID  `gorm:"primaryKey" json:"id"`
	TenantID  snowflake.ID  `gorm:"not null;index" json:"-"`
	Name      string        `gorm:"not null" json:"name"`
	Email     *string       `json:"email"`
	Phone     *string       `json:"phone"`
	Status    AccountStatus `gorm:"not null;default:active" json:"status"`
	Type      AccountType   `gorm:"not null" json:"type"`
	CreatedAt time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Account) TableName() string { return "accounts" }

func ValidType(t AccountType) bool {
	return t == TypeCustomer || t == TypeSupplier
}

func ValidStatus(s AccountStatus) bool {
	return s == StatusActive || s == StatusInactive
}
