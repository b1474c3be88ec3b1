package model

import "time"

// SequenceModel mirrors the 'sequences' table backing the atomic-counter order
// numbering strategy. One row per named sequence; SequenceValue only ever moves
// forward, through a single-statement increment.
type SequenceModel struct {
	Name          string `gorm:"type:varchar(64);primaryKey"`
	SequenceValue int64  `gorm:"not null;default:0"`
	UpdatedAt     time.Time
}

// TableName explicitly sets the table name for GORM.
func (SequenceModel) TableName() string {
	return "sequences"
}
