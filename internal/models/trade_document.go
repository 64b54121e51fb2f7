package models

import (
	"time"

	"gorm.io/datatypes"
)

// TradeDocument is one persisted trade. The store treats documents as opaque
// field maps, so the full map lives in Fields; a few columns are extracted
// for indexing and ad-hoc SQL.
type TradeDocument struct {
	ID string `gorm:"primaryKey;type:varchar(32)"`

	Date       string  `gorm:"type:varchar(10);index"`
	Side       string  `gorm:"type:varchar(8);index"`
	Strategy   string  `gorm:"type:varchar(100);index"`
	ProfitLoss float64 `gorm:"column:profit_loss"`

	Fields datatypes.JSON

	CreatedAt time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (TradeDocument) TableName() string {
	return "trade_documents"
}
