package models

import "time"

// AuditLog is one append-only row per booking or catalogue change.
type AuditLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Actor  string `gorm:"size:50;index" json:"actor"`
	Action string `gorm:"size:50;not null;index:idx_audit_action_created,priority:1" json:"action"`

	Entity   string `gorm:"size:50;index" json:"entity"`
	EntityID *uint  `json:"entity_id,omitempty"`
	Metadata string `gorm:"type:text" json:"metadata,omitempty"`

	CreatedAt time.Time `gorm:"index:idx_audit_action_created,priority:2" json:"created_at"`
}
