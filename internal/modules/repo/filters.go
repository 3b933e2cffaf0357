package repo

import (
	"strings"
	"time"

	"github.com/activitae/cra-api/internal/modules/model"
	"gorm.io/gorm"
)

// Filters is the typed predicate consumed by List and Count. Zero-valued
// fields are omitted from the query entirely; set fields are combined with
// AND. Every comparison is parameterized, caller values never reach the
// query text.
type Filters struct {
	// Status filters on exact status match.
	Status model.Status
	// Client filters on case-insensitive substring match.
	Client string
	// StartDate and EndDate are inclusive bounds on the reporting date.
	StartDate time.Time
	EndDate   time.Time
}

func (f Filters) apply(q *gorm.DB) *gorm.DB {
	if f.Status != "" {
		q = q.Where("cras.status = ?", f.Status)
	}
	if f.Client != "" {
		q = q.Where("LOWER(cras.client) LIKE ?", "%"+strings.ToLower(f.Client)+"%")
	}
	if !f.StartDate.IsZero() {
		q = q.Where("cras.date >= ?", f.StartDate)
	}
	if !f.EndDate.IsZero() {
		q = q.Where("cras.date <= ?", f.EndDate)
	}
	return q
}
