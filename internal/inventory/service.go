package inventory

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"relief-coordination-api/internal/apperr"
	"relief-coordination-api/internal/lock"
	"relief-coordination-api/internal/models"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Repository persists one InventoryRecord per registration number.
// Get returns an error wrapping apperr.ErrNotFound when no record exists.
type Repository interface {
	Get(ctx context.Context, registrationNumber string) (*models.InventoryRecord, error)
	Replace(ctx context.Context, record *models.InventoryRecord) error
	SetMonitoring(ctx context.Context, registrationNumber string, monitoring bool, at time.Time) (*models.InventoryRecord, error)
	ListByScore(ctx context.Context, limit int64) ([]models.InventoryRecord, error)
}

// Directory answers whether an organization is known.
type Directory interface {
	Exists(ctx context.Context, registrationNumber string) (bool, error)
}

// Broadcaster fans a message out to realtime subscribers.
type Broadcaster interface {
	Broadcast(message []byte)
}

// StatusChangeEvent is published whenever a submission moves an organization
// into a different status.
type StatusChangeEvent struct {
	Type               string                 `json:"type"`
	RegistrationNumber string                 `json:"registrationNumber"`
	Previous           models.InventoryStatus `json:"previous,omitempty"`
	Current            models.InventoryStatus `json:"current"`
	TotalScore         float64                `json:"totalScore"`
	Escalated          bool                   `json:"escalated"`
}

const EventStatusChanged = "inventory.status"

type Service struct {
	repo      Repository
	directory Directory
	locker    lock.Locker
	notifier  Broadcaster
	validate  *validator.Validate
	log       *zap.Logger
	now       func() time.Time
}

func NewService(repo Repository, directory Directory, locker lock.Locker, notifier Broadcaster, log *zap.Logger) *Service {
	return &Service{
		repo:      repo,
		directory: directory,
		locker:    locker,
		notifier:  notifier,
		validate:  newValidator(),
		log:       log,
		now:       time.Now,
	}
}

// Submit validates the request, replaces the organization's items with the
// submitted set and recomputes score and status. Nothing is written unless
// the whole request is valid. The status event is published once the
// per-organization lock has been released.
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (*models.InventoryRecord, error) {
	req.RegistrationNumber = strings.TrimSpace(req.RegistrationNumber)
	if err := validateRequest(s.validate, req); err != nil {
		return nil, err
	}

	exists, err := s.directory.Exists(ctx, req.RegistrationNumber)
	if err != nil {
		return nil, apperr.Persistence("lookup organization", err)
	}
	if !exists {
		return nil, apperr.NotFound("organization %q", req.RegistrationNumber)
	}

	record, previous, err := s.replaceItems(ctx, req)
	if err != nil {
		return nil, err
	}

	s.log.Info("inventory submitted",
		zap.String("registrationNumber", record.RegistrationNumber),
		zap.Int("items", len(record.Items)),
		zap.Float64("totalScore", record.TotalScore),
		zap.String("status", string(record.InventoryStatus)),
	)

	if previous != record.InventoryStatus {
		s.publishStatusChange(previous, record)
	}
	return record, nil
}

// replaceItems runs the read-modify-write under the organization's lock and
// returns the stored record with the status it had before.
func (s *Service) replaceItems(ctx context.Context, req SubmitRequest) (*models.InventoryRecord, models.InventoryStatus, error) {
	unlock, err := s.locker.Lock(ctx, "inventory:"+req.RegistrationNumber)
	if err != nil {
		return nil, "", apperr.Persistence("lock inventory", err)
	}
	defer unlock()

	now := s.now().UTC()
	record, err := s.repo.Get(ctx, req.RegistrationNumber)
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		record = &models.InventoryRecord{
			RegistrationNumber: req.RegistrationNumber,
			CreatedAt:          now,
		}
	case err != nil:
		return nil, "", apperr.Persistence("load inventory", err)
	}
	previous := record.InventoryStatus

	items := make([]models.InventoryItem, 0, len(req.Items))
	for _, in := range req.Items {
		items = append(items, models.InventoryItem{
			ItemName:  in.ItemName,
			Category:  in.Category,
			Quantity:  *in.Quantity,
			Unit:      in.Unit,
			Condition: in.Condition,
			Priority:  ResolvePriority(in.ItemName),
		})
	}

	record.Items = items
	record.TotalScore = TotalScore(items)
	record.InventoryStatus = Classify(record.TotalScore)
	record.LastUpdated = now

	if err := s.repo.Replace(ctx, record); err != nil {
		return nil, "", apperr.Persistence("replace inventory", err)
	}
	return record, previous, nil
}

func (s *Service) publishStatusChange(previous models.InventoryStatus, record *models.InventoryRecord) {
	if s.notifier == nil {
		return
	}
	event := StatusChangeEvent{
		Type:               EventStatusChanged,
		RegistrationNumber: record.RegistrationNumber,
		Previous:           previous,
		Current:            record.InventoryStatus,
		TotalScore:         record.TotalScore,
		Escalated:          previous != "" && statusRank(record.InventoryStatus) < statusRank(previous),
	}
	msg, err := json.Marshal(event)
	if err != nil {
		s.log.Error("failed to encode status event", zap.Error(err))
		return
	}
	s.notifier.Broadcast(msg)
}

func (s *Service) Get(ctx context.Context, registrationNumber string) (*models.InventoryRecord, error) {
	registrationNumber = strings.TrimSpace(registrationNumber)
	record, err := s.repo.Get(ctx, registrationNumber)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.NotFound("inventory for %q", registrationNumber)
		}
		return nil, apperr.Persistence("load inventory", err)
	}
	return record, nil
}

// SetMonitoring toggles the stock-monitoring flag without touching items,
// score or status.
func (s *Service) SetMonitoring(ctx context.Context, registrationNumber string, monitoring bool) (*models.InventoryRecord, error) {
	registrationNumber = strings.TrimSpace(registrationNumber)
	if registrationNumber == "" {
		return nil, apperr.Invalid("registrationNumber", "is required")
	}

	unlock, err := s.locker.Lock(ctx, "inventory:"+registrationNumber)
	if err != nil {
		return nil, apperr.Persistence("lock inventory", err)
	}
	defer unlock()

	record, err := s.repo.SetMonitoring(ctx, registrationNumber, monitoring, s.now().UTC())
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.NotFound("inventory for %q", registrationNumber)
		}
		return nil, apperr.Persistence("update monitoring flag", err)
	}
	return record, nil
}

const (
	defaultRankLimit = 50
	maxRankLimit     = 500
)

// Rank lists records neediest first (lowest score first).
func (s *Service) Rank(ctx context.Context, limit int) ([]models.InventoryRecord, error) {
	if limit <= 0 {
		limit = defaultRankLimit
	}
	if limit > maxRankLimit {
		limit = maxRankLimit
	}
	records, err := s.repo.ListByScore(ctx, int64(limit))
	if err != nil {
		return nil, apperr.Persistence("rank inventories", err)
	}
	if records == nil {
		records = []models.InventoryRecord{}
	}
	return records, nil
}
