package models

import "time"

// Blob is one named, serialized collection in the sqlite store.
type Blob struct {
	Name      string `gorm:"primaryKey"`
	Data      []byte `gorm:"not null"`
	UpdatedAt time.Time
}
