package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Status is the lifecycle state of a CRA. The intended flow is
// draft -> submitted -> approved|rejected, with an explicit escape hatch
// back to draft. Transitions are not enforced by the store.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusSubmitted Status = "submitted"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusSubmitted, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// CRA is the aggregate root for one activity report: a reporting date, a
// client and the owned set of activities. TotalHours is derived from the
// activities on every write and is never accepted from callers.
type CRA struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Date       time.Time `gorm:"type:date;not null;index" json:"date"`
	Client     string    `gorm:"size:100;not null" json:"client"`
	TotalHours float64   `gorm:"not null;default:0" json:"total_hours"`
	Status     Status    `gorm:"size:20;not null;default:'draft';index" json:"status"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;not null;default:CURRENT_TIMESTAMP" json:"updated_at"`

	// CRA <-> Activity
	Activities []Activity `gorm:"foreignKey:CRAID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"activities"`
}

func (CRA) TableName() string { return "cras" }

func (c *CRA) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// SumHours returns the sum of the owned activities' hours.
func (c *CRA) SumHours() float64 {
	var total float64
	for _, a := range c.Activities {
		total += a.Hours
	}
	return total
}

// Activity is a single report line item. It belongs to exactly one CRA for
// its whole lifetime and is only ever written as part of a full aggregate
// write (create, replace, delete).
type Activity struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CRAID       uuid.UUID `gorm:"type:uuid;not null;index" json:"cra_id"`
	Description string    `gorm:"size:500;not null" json:"description"`
	Hours       float64   `gorm:"not null" json:"hours"`
	Category    string    `gorm:"size:100;not null" json:"category"`

	CreatedAt time.Time `gorm:"autoCreateTime;not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Activity) TableName() string { return "activities" }

func (a *Activity) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
