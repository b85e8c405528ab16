package models

import "time"

// KVEntry backs the SQL key-value store used for layouts and reservations.
type KVEntry struct {
	Key       string    `gorm:"column:kv_key;primaryKey;type:varchar(255)"`
	Value     string    `gorm:"column:kv_value;type:text;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

func (KVEntry) TableName() string {
	return "kv_entries"
}
