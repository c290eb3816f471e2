package counter

import "time"

type SequenceCounter struct {
	Scope       string `gorm:"type:varchar(40);primaryKey"`
	CounterType string `gorm:"type:varchar(40);primaryKey"`
	LastValue   int64  `gorm:"not null;default:0"`
	UpdatedAt   time.Time
}

func (SequenceCounter) TableName() string { return "sequence_counters" }
