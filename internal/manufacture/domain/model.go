package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Batch struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	TenantID  snowflake.ID `gorm:"not null;index" json:"-"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`

	Raw      []RawLine      `gorm:"foreignKey:ProductionBatchID" json:"raw"`
	Finished []FinishedLine `gorm:"foreignKey:ProductionBatchID" json:"finished"`
}

func (Batch) TableName() string { return "production_batches" }

type RawLine struct {
	ID                snowflake.ID `gorm:"primaryKey" json:"id"`
	ProductionBatchID snowflake.ID `gorm:"not null;index" json:"-"`
	ProductID         snowflake.ID `gorm:"not null" json:"product_id"`
	Quantity          float64      `gorm:"not null" json:"quantity"`
}

func (RawLine) TableName() string { return "production_raw" }

type FinishedLine struct {
	ID                snowflake.ID `gorm:"primaryKey" json:"id"`
	ProductionBatchID snowflake.ID `gorm:"not null;index" json:"-"`
	ProductID         snowflake.ID `gorm:"not null" json:"product_id"`
	Quantity          float64      `gorm:"not null" json:"quantity"`
}

func (FinishedLine) TableName() string { return "production_finished" }
