package models

import "gorm.io/datatypes"

type TicketModel struct {
	ID           uint   `gorm:"primaryKey"`
	TicketID     string `gorm:"uniqueIndex;size:100;not null"`
	Summary      string `gorm:"size:500"`
	Status       string `gorm:"size:50;index"`
	Assignee     string `gorm:"size:100"`
	Priority     string `gorm:"size:20;index"`
	Components   datatypes.JSON
	FixVersions  datatypes.JSON
	Created      string `gorm:"size:50"` // opaque date string from the tracker, never reparsed
	Updated      string `gorm:"size:50"`
	LastSyncedAt int64  `gorm:"not null"`
	CreatedAt    int64  `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt    int64  `gorm:"autoUpdateTime:milli;not null"`

	// Note: No foreign key constraints or associations.
	// Release references are managed by application business logic.
}

func (TicketModel) TableName() string {
	return "tickets"
}
