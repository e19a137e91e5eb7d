// Package alert publishes disaster alerts to the cities they concern.
package alert

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"relief-coordination-api/internal/apperr"
	"relief-coordination-api/internal/models"
	"relief-coordination-api/internal/validation"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository interface {
	Insert(ctx context.Context, a *models.Alert) error
	ListByCity(ctx context.Context, city string, limit int64) ([]models.Alert, error)
}

// CityBroadcaster delivers a message to subscribers of one city.
type CityBroadcaster interface {
	BroadcastCity(city string, message []byte)
}

type CreateRequest struct {
	City         string `json:"city" validate:"required"`
	DisasterType string `json:"disasterType" validate:"required"`
	Severity     string `json:"severity" validate:"required,oneof=LOW MEDIUM HIGH CRITICAL"`
	Message      string `json:"message" validate:"required,max=2000"`
}

// Event is the realtime payload pushed for a new alert.
type Event struct {
	Type  string       `json:"type"`
	Alert models.Alert `json:"alert"`
}

const (
	EventAlertCreated = "alert.created"
	listLimit         = 100
)

type Service struct {
	repo     Repository
	hub      CityBroadcaster
	validate *validator.Validate
	log      *zap.Logger
	now      func() time.Time
}

func NewService(repo Repository, hub CityBroadcaster, log *zap.Logger) *Service {
	return &Service{repo: repo, hub: hub, validate: validation.New(), log: log, now: time.Now}
}

func normalizeCity(city string) string {
	return strings.ToLower(strings.TrimSpace(city))
}

// Create stores the alert, then pushes it to the city's subscribers.
func (s *Service) Create(ctx context.Context, req CreateRequest, createdBy string) (*models.Alert, error) {
	req.Severity = strings.ToUpper(strings.TrimSpace(req.Severity))
	if err := validation.Struct(s.validate, req, "", nil); err != nil {
		return nil, err
	}

	a := &models.Alert{
		AlertID:      fmt.Sprintf("ALERT-%s", uuid.New().String()[:8]),
		City:         normalizeCity(req.City),
		DisasterType: req.DisasterType,
		Severity:     req.Severity,
		Message:      req.Message,
		CreatedBy:    createdBy,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.repo.Insert(ctx, a); err != nil {
		return nil, apperr.Persistence("insert alert", err)
	}

	msg, err := json.Marshal(Event{Type: EventAlertCreated, Alert: *a})
	if err != nil {
		s.log.Error("failed to encode alert event", zap.Error(err))
		return a, nil
	}
	s.hub.BroadcastCity(a.City, msg)
	s.log.Info("alert published", zap.String("alertID", a.AlertID), zap.String("city", a.City), zap.String("severity", a.Severity))
	return a, nil
}

func (s *Service) List(ctx context.Context, city string) ([]models.Alert, error) {
	alerts, err := s.repo.ListByCity(ctx, normalizeCity(city), listLimit)
	if err != nil {
		return nil, apperr.Persistence("list alerts", err)
	}
	if alerts == nil {
		alerts = []models.Alert{}
	}
	return alerts, nil
}
