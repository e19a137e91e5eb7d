// Package organization is the directory of hospitals and NGOs, keyed by their
// registration number, together with their approval workflow.
package organization

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"relief-coordination-api/internal/apperr"
	"relief-coordination-api/internal/auth"
	"relief-coordination-api/internal/models"
	"relief-coordination-api/internal/validation"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, org *models.Organization) error
	Delete(ctx context.Context, registrationNumber string) error
	Get(ctx context.Context, registrationNumber string) (*models.Organization, error)
	Count(ctx context.Context, registrationNumber string) (int64, error)
	List(ctx context.Context, status string) ([]models.Organization, error)
	UpdateStatus(ctx context.Context, registrationNumber, status, reviewer string, at time.Time) (*models.Organization, error)
	SetCertificate(ctx context.Context, registrationNumber string, cert models.MediaPointer, at time.Time) (*models.Organization, error)
}

// Accounts manages the login account created alongside an organization.
type Accounts interface {
	CreateAccount(ctx context.Context, user *models.User) error
	SetAccountStatus(ctx context.Context, registrationNumber, status string) error
}

// FileStore uploads a document and returns its public URL.
type FileStore interface {
	UploadFile(ctx context.Context, file io.Reader, objectKey, contentType string) (string, error)
}

type RegisterRequest struct {
	RegistrationNumber string `json:"registrationNumber" validate:"required,max=64"`
	Name               string `json:"name" validate:"required,max=200"`
	Type               string `json:"type" validate:"required,oneof=HOSPITAL NGO"`
	City               string `json:"city" validate:"required"`
	Email              string `json:"email" validate:"required,email"`
	Password           string `json:"password" validate:"required,min=8"`
}

var allowedCertificateTypes = map[string]string{
	"application/pdf": ".pdf",
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
}

type Service struct {
	repo     Repository
	accounts Accounts
	files    FileStore
	validate *validator.Validate
	log      *zap.Logger
	now      func() time.Time
}

func NewService(repo Repository, accounts Accounts, files FileStore, log *zap.Logger) *Service {
	return &Service{
		repo:     repo,
		accounts: accounts,
		files:    files,
		validate: validation.New(),
		log:      log,
		now:      time.Now,
	}
}

// Register creates a PENDING organization and its (pending) login account.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*models.Organization, error) {
	req.RegistrationNumber = strings.TrimSpace(req.RegistrationNumber)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := validation.Struct(s.validate, req, "", nil); err != nil {
		return nil, err
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now().UTC()
	org := &models.Organization{
		RegistrationNumber: req.RegistrationNumber,
		Name:               req.Name,
		Type:               req.Type,
		City:               req.City,
		Email:              req.Email,
		Status:             models.OrgStatusPending,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := s.repo.Create(ctx, org); err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			return nil, err
		}
		return nil, apperr.Persistence("create organization", err)
	}

	account := &models.User{
		Email:              req.Email,
		Name:               req.Name,
		Password:           hashed,
		Role:               models.RoleOrganization,
		RegistrationNumber: req.RegistrationNumber,
		Status:             models.UserStatusPending,
	}
	if err := s.accounts.CreateAccount(ctx, account); err != nil {
		// keep directory and accounts consistent
		if delErr := s.repo.Delete(ctx, org.RegistrationNumber); delErr != nil {
			s.log.Error("failed to roll back organization", zap.String("registrationNumber", org.RegistrationNumber), zap.Error(delErr))
		}
		if errors.Is(err, apperr.ErrConflict) {
			return nil, err
		}
		return nil, apperr.Persistence("create account", err)
	}

	s.log.Info("organization registered", zap.String("registrationNumber", org.RegistrationNumber), zap.String("type", org.Type))
	return org, nil
}

// Exists reports whether registrationNumber belongs to a known organization.
func (s *Service) Exists(ctx context.Context, registrationNumber string) (bool, error) {
	n, err := s.repo.Count(ctx, registrationNumber)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Service) Get(ctx context.Context, registrationNumber string) (*models.Organization, error) {
	org, err := s.repo.Get(ctx, registrationNumber)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, err
		}
		return nil, apperr.Persistence("load organization", err)
	}
	return org, nil
}

func (s *Service) List(ctx context.Context, status string) ([]models.Organization, error) {
	switch status {
	case "", models.OrgStatusPending, models.OrgStatusApproved, models.OrgStatusRejected:
	default:
		return nil, apperr.Invalid("status", "must be one of PENDING, APPROVED, REJECTED")
	}
	orgs, err := s.repo.List(ctx, status)
	if err != nil {
		return nil, apperr.Persistence("list organizations", err)
	}
	if orgs == nil {
		orgs = []models.Organization{}
	}
	return orgs, nil
}

func (s *Service) Approve(ctx context.Context, registrationNumber, reviewer string) (*models.Organization, error) {
	return s.review(ctx, registrationNumber, reviewer, models.OrgStatusApproved, models.UserStatusActive)
}

func (s *Service) Reject(ctx context.Context, registrationNumber, reviewer string) (*models.Organization, error) {
	return s.review(ctx, registrationNumber, reviewer, models.OrgStatusRejected, models.UserStatusDisabled)
}

func (s *Service) review(ctx context.Context, registrationNumber, reviewer, orgStatus, accountStatus string) (*models.Organization, error) {
	org, err := s.repo.UpdateStatus(ctx, registrationNumber, orgStatus, reviewer, s.now().UTC())
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, err
		}
		return nil, apperr.Persistence("update organization status", err)
	}
	if err := s.accounts.SetAccountStatus(ctx, registrationNumber, accountStatus); err != nil {
		return nil, apperr.Persistence("update account status", err)
	}
	s.log.Info("organization reviewed",
		zap.String("registrationNumber", registrationNumber),
		zap.String("status", orgStatus),
		zap.String("reviewer", reviewer),
	)
	return org, nil
}

// UploadCertificate stores a registration certificate and links it to the
// organization.
func (s *Service) UploadCertificate(ctx context.Context, registrationNumber string, file io.Reader, fileName, contentType string) (*models.Organization, error) {
	ext, ok := allowedCertificateTypes[contentType]
	if !ok {
		return nil, apperr.Invalid("certificate", "must be a PDF, JPEG or PNG file")
	}
	if _, err := s.Get(ctx, registrationNumber); err != nil {
		return nil, err
	}

	key := path.Join("certificates", registrationNumber, uuid.NewString()+ext)
	url, err := s.files.UploadFile(ctx, file, key, contentType)
	if err != nil {
		return nil, apperr.Persistence("upload certificate", err)
	}

	now := s.now().UTC()
	cert := models.MediaPointer{Key: key, URL: url, FileName: fileName, FileType: contentType, UploadedAt: now}
	org, err := s.repo.SetCertificate(ctx, registrationNumber, cert, now)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, err
		}
		return nil, apperr.Persistence("save certificate", err)
	}
	return org, nil
}
