package models

import (
	"time"

	"github.com/google/uuid"
)

// Analysis is one entry of the server-owned, append-only analysis
// history. Entries are only ever created, listed, or deleted.
type Analysis struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	SessionID      string    `gorm:"type:text;index;not null" json:"session_id"`
	Filename       string    `gorm:"type:text" json:"filename"`
	JobDescription string    `gorm:"type:text" json:"job_description"`
	ResultJSON     string    `gorm:"type:jsonb" json:"result"`
	CreatedAt      time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
}

func (Analysis) TableName() string {
	return "analyses"
}
