package models

import "gorm.io/datatypes"

type ReleaseModel struct {
	ID                  uint   `gorm:"primaryKey"`
	Version             string `gorm:"uniqueIndex;size:100;not null"`
	Status              string `gorm:"size:50;not null;index"`
	TicketKeys          datatypes.JSON
	Commits             datatypes.JSON
	Notes               string `gorm:"type:text"`
	AdditionalPoints    datatypes.JSON
	ComponentDeliveries datatypes.JSON
	ReleasedBy          string `gorm:"size:100"`
	BuildURL            string `gorm:"size:500"`
	ServiceID           string `gorm:"size:100;index"`
	Customers           datatypes.JSON
	CreatedAt           int64  `gorm:"autoCreateTime:milli;not null;index"`
	UpdatedAt           int64  `gorm:"autoUpdateTime:milli;not null"`

	// Note: ticket references live in TicketKeys as an ordered JSON array of
	// external ticket identifiers. No foreign key constraints; removing a
	// release must never cascade into the shared tickets table.
}

func (ReleaseModel) TableName() string {
	return "releases"
}
