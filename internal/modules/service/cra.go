package service

import (
	"context"
	"fmt"
	"time"

	"github.com/activitae/cra-api/internal/config"
	"github.com/activitae/cra-api/internal/modules/model"
	"github.com/activitae/cra-api/internal/modules/repo"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultLimit = 50
	maxLimit     = 200
)

// EventPublisher is the slice of the MQ publisher the service needs.
// A nil publisher disables eventing.
type EventPublisher interface {
	PublishJSON(ctx context.Context, exchange, routingKey string, body any) error
}

type CRAService interface {
	List(ctx context.Context, in ListCRAsInput) (*ListCRAsOutput, error)
	Get(ctx context.Context, id uuid.UUID) (*model.CRA, error)
	Create(ctx context.Context, in CreateCRAInput) (*model.CRA, error)
	Update(ctx context.Context, id uuid.UUID, in UpdateCRAInput) (*model.CRA, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type craService struct {
	r         repo.CRARepo
	stats     StatsService
	publisher EventPublisher
	cfg       *config.Config
	log       *zap.Logger
}

func NewCRAService(r repo.CRARepo, stats StatsService, publisher EventPublisher, cfg *config.Config, log *zap.Logger) CRAService {
	return &craService{
		r:         r,
		stats:     stats,
		publisher: publisher,
		cfg:       cfg,
		log:       log,
	}
}

// ActivityInput is one activity line as supplied by a caller. ID is only
// honored on update, where the store may reuse it for the replacement row.
type ActivityInput struct {
	ID          *uuid.UUID
	Description string
	Hours       float64
	Category    string
}

type CreateCRAInput struct {
	Date       time.Time
	Client     string
	Status     model.Status // empty defaults to draft
	Activities []ActivityInput
}

// UpdateCRAInput carries a partial update: nil fields keep prior values.
// A non-nil Activities slice replaces the whole activity set.
type UpdateCRAInput struct {
	Date       *time.Time
	Client     *string
	Status     *model.Status
	Activities []ActivityInput
}

type ListCRAsInput struct {
	Filters repo.Filters
	Limit   int
	Offset  int
}

type ListCRAsOutput struct {
	Items      []model.CRA
	Total      int64
	Limit      int
	Offset     int
	HasMore    bool
}

// CRASubmittedEvent is published when an update moves a CRA to submitted.
// Downstream consumers (report export) pick it up from the exchange.
type CRASubmittedEvent struct {
	CRAID      uuid.UUID `json:"cra_id"`
	Client     string    `json:"client"`
	Date       time.Time `json:"date"`
	TotalHours float64   `json:"total_hours"`
}

func (s *craService) List(ctx context.Context, in ListCRAsInput) (*ListCRAsOutput, error) {
	limit := in.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	offset := in.Offset
	if offset < 0 {
		offset = 0
	}

	items, err := s.r.List(ctx, in.Filters, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list cras: %w", err)
	}
	total, err := s.r.Count(ctx, in.Filters)
	if err != nil {
		return nil, fmt.Errorf("count cras: %w", err)
	}

	return &ListCRAsOutput{
		Items:   items,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: int64(offset+len(items)) < total,
	}, nil
}

func (s *craService) Get(ctx context.Context, id uuid.UUID) (*model.CRA, error) {
	return s.r.GetByID(ctx, id)
}

func (s *craService) Create(ctx context.Context, in CreateCRAInput) (*model.CRA, error) {
	if err := validateClient(in.Client); err != nil {
		return nil, err
	}
	if in.Date.After(time.Now()) {
		return nil, invalidf("date must not be in the future")
	}
	status := in.Status
	if status == "" {
		status = model.StatusDraft
	}
	if !status.Valid() {
		return nil, invalidf("invalid status %q", status)
	}
	if err := validateActivities(in.Activities); err != nil {
		return nil, err
	}

	cra := &model.CRA{
		Date:       in.Date,
		Client:     in.Client,
		Status:     status,
		Activities: make([]model.Activity, len(in.Activities)),
	}
	for i, a := range in.Activities {
		cra.Activities[i] = model.Activity{
			Description: a.Description,
			Hours:       a.Hours,
			Category:    a.Category,
		}
	}

	if err := s.r.Create(ctx, cra); err != nil {
		return nil, fmt.Errorf("create cra: %w", err)
	}
	s.stats.Invalidate(ctx)

	return cra, nil
}

func (s *craService) Update(ctx context.Context, id uuid.UUID, in UpdateCRAInput) (*model.CRA, error) {
	if in.Client != nil {
		if err := validateClient(*in.Client); err != nil {
			return nil, err
		}
	}
	if in.Status != nil && !in.Status.Valid() {
		return nil, invalidf("invalid status %q", *in.Status)
	}
	// An explicitly supplied empty set would leave the CRA without
	// activities, which create forbids; reject it here too. Omitting the
	// field keeps the existing set.
	if in.Activities != nil {
		if err := validateActivities(in.Activities); err != nil {
			return nil, err
		}
	}

	fields := repo.UpdateFields{
		Date:   in.Date,
		Client: in.Client,
		Status: in.Status,
	}
	if in.Activities != nil {
		fields.Activities = make([]model.Activity, len(in.Activities))
		for i, a := range in.Activities {
			act := model.Activity{
				Description: a.Description,
				Hours:       a.Hours,
				Category:    a.Category,
			}
			if a.ID != nil {
				act.ID = *a.ID
			}
			fields.Activities[i] = act
		}
	}

	cra, err := s.r.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	s.stats.Invalidate(ctx)

	if in.Status != nil && *in.Status == model.StatusSubmitted {
		s.publishSubmitted(ctx, cra)
	}

	return cra, nil
}

func (s *craService) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.r.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete cra: %w", err)
	}
	if !deleted {
		return repo.ErrCRANotFound
	}
	s.stats.Invalidate(ctx)
	return nil
}

// publishSubmitted emits the submission event best-effort: a publish
// failure is logged and the request still succeeds.
func (s *craService) publishSubmitted(ctx context.Context, cra *model.CRA) {
	if s.publisher == nil {
		return
	}
	event := CRASubmittedEvent{
		CRAID:      cra.ID,
		Client:     cra.Client,
		Date:       cra.Date,
		TotalHours: cra.TotalHours,
	}
	if err := s.publisher.PublishJSON(ctx, s.cfg.RabbitMQ.Exchange, s.cfg.RabbitMQ.RoutingKey, event); err != nil {
		s.log.Error("failed to publish cra submitted event",
			zap.Error(err), zap.String("cra_id", cra.ID.String()))
	}
}
