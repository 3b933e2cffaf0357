package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/activitae/cra-api/internal/modules/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrCRANotFound = errors.New("cra not found")

// UpdateFields is the partial-update input for a CRA. Nil pointer fields
// keep their prior values. A nil Activities slice keeps the existing
// activity set; a non-nil slice replaces it wholesale (delete-all then
// insert-all, no element-wise merge).
type UpdateFields struct {
	Date       *time.Time
	Client     *string
	Status     *model.Status
	Activities []model.Activity
}

// CRARepo is the aggregate store for CRAs. It is the sole reader and writer
// of the cras/activities tables. Every multi-row write runs inside a single
// transaction: a failure anywhere rolls the whole unit back, so readers can
// never observe a partially written aggregate.
type CRARepo interface {
	List(ctx context.Context, f Filters, limit, offset int) ([]model.CRA, error)
	Count(ctx context.Context, f Filters) (int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.CRA, error)
	Create(ctx context.Context, c *model.CRA) error
	Update(ctx context.Context, id uuid.UUID, in UpdateFields) (*model.CRA, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	CountByStatus(ctx context.Context) (map[model.Status]int64, error)
	SumTotalHours(ctx context.Context) (float64, error)
}

type craRepo struct{ db *gorm.DB }

func NewCRARepo(db *gorm.DB) CRARepo {
	return &craRepo{db: db}
}

func preloadActivities(q *gorm.DB) *gorm.DB {
	return q.Preload("Activities", func(db *gorm.DB) *gorm.DB {
		return db.Order("activities.created_at ASC")
	})
}

func (r *craRepo) List(ctx context.Context, f Filters, limit, offset int) ([]model.CRA, error) {
	var items []model.CRA
	q := f.apply(r.db.WithContext(ctx).Model(&model.CRA{}))
	err := preloadActivities(q).
		Order("cras.date DESC, cras.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&items).Error
	return items, err
}

func (r *craRepo) Count(ctx context.Context, f Filters) (int64, error) {
	var n int64
	err := f.apply(r.db.WithContext(ctx).Model(&model.CRA{})).Count(&n).Error
	return n, err
}

func (r *craRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.CRA, error) {
	var c model.CRA
	err := preloadActivities(r.db.WithContext(ctx)).
		Where("id = ?", id).
		First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCRANotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts the parent row and every activity row in one transaction.
// Activity identifiers are always assigned here; TotalHours is recomputed
// from the activity set before the write.
func (r *craRepo) Create(ctx context.Context, c *model.CRA) error {
	c.TotalHours = c.SumHours()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Activities").Create(c).Error; err != nil {
			return fmt.Errorf("insert cra: %w", err)
		}

		base := time.Now()
		for i := range c.Activities {
			a := &c.Activities[i]
			a.ID = uuid.New()
			a.CRAID = c.ID
			// Spread timestamps so input order survives the created_at
			// ordering applied on every read.
			a.CreatedAt = base.Add(time.Duration(i) * time.Microsecond)
			if err := tx.Create(a).Error; err != nil {
				return fmt.Errorf("insert activity %d: %w", i, err)
			}
		}
		return nil
	})
}

// Update applies a partial update to one CRA. When in.Activities is non-nil
// the whole activity set is replaced: existing rows deleted, new rows
// inserted, total recomputed. The scalar update, the replacement and the
// updated_at refresh commit together or not at all. The refreshed aggregate
// is re-read after commit.
func (r *craRepo) Update(ctx context.Context, id uuid.UUID, in UpdateFields) (*model.CRA, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.CRA
		if err := tx.Where("id = ?", id).First(&existing).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCRANotFound
			}
			return err
		}

		updates := map[string]interface{}{"updated_at": time.Now()}
		if in.Date != nil {
			updates["date"] = *in.Date
		}
		if in.Client != nil {
			updates["client"] = *in.Client
		}
		if in.Status != nil {
			updates["status"] = *in.Status
		}

		if in.Activities != nil {
			if err := tx.Where("cra_id = ?", id).Delete(&model.Activity{}).Error; err != nil {
				return fmt.Errorf("delete activities: %w", err)
			}

			var total float64
			base := time.Now()
			for i := range in.Activities {
				a := &in.Activities[i]
				// Caller-supplied ids are kept; fresh rows get new ones.
				// Either way the record is fully replaced, never patched.
				if a.ID == uuid.Nil {
					a.ID = uuid.New()
				}
				a.CRAID = id
				a.CreatedAt = base.Add(time.Duration(i) * time.Microsecond)
				if err := tx.Create(a).Error; err != nil {
					return fmt.Errorf("insert activity %d: %w", i, err)
				}
				total += a.Hours
			}
			updates["total_hours"] = total
		}

		if err := tx.Model(&model.CRA{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return fmt.Errorf("update cra: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id)
}

// Delete removes the activities then the parent row as one unit. The bool
// reports whether a parent row existed; a second delete of the same id
// returns false without error.
func (r *craRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	var deleted bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cra_id = ?", id).Delete(&model.Activity{}).Error; err != nil {
			return fmt.Errorf("delete activities: %w", err)
		}
		res := tx.Where("id = ?", id).Delete(&model.CRA{})
		if res.Error != nil {
			return fmt.Errorf("delete cra: %w", res.Error)
		}
		deleted = res.RowsAffected > 0
		return nil
	})
	return deleted, err
}

func (r *craRepo) CountByStatus(ctx context.Context) (map[model.Status]int64, error) {
	var rows []struct {
		Status model.Status
		N      int64
	}
	err := r.db.WithContext(ctx).Model(&model.CRA{}).
		Select("status, COUNT(*) AS n").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[model.Status]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.N
	}
	return out, nil
}

func (r *craRepo) SumTotalHours(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Model(&model.CRA{}).
		Select("COALESCE(SUM(total_hours), 0)").
		Scan(&total).Error
	return total, err
}
