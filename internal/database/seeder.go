package database

import (
	"context"
	"errors"

	"relief-coordination-api/config"
	"relief-coordination-api/internal/apperr"
	"relief-coordination-api/internal/auth"
	"relief-coordination-api/internal/models"

	"go.uber.org/zap"
)

// AccountStore is the part of the user repository the seeder needs.
type AccountStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	CreateAccount(ctx context.Context, user *models.User) error
}

// SeedSuperAdmin creates the superadmin account on first boot.
func SeedSuperAdmin(ctx context.Context, users AccountStore, cfg config.SeedConfig, log *zap.Logger) error {
	_, err := users.FindByEmail(ctx, cfg.SuperAdminEmail)
	if err == nil {
		log.Info("super admin already exists, seeding skipped", zap.String("email", cfg.SuperAdminEmail))
		return nil
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		return err
	}
	if cfg.SuperAdminPassword == "" {
		return errors.New("seed.superAdminPassword must be set to create the super admin")
	}

	hashedPassword, err := auth.HashPassword(cfg.SuperAdminPassword)
	if err != nil {
		return err
	}

	superAdmin := &models.User{
		Email:    cfg.SuperAdminEmail,
		Name:     "Super Admin",
		Password: hashedPassword,
		Role:     models.RoleSuperAdmin,
		Status:   models.UserStatusActive,
	}
	if err := users.CreateAccount(ctx, superAdmin); err != nil {
		// Another instance won the race.
		if errors.Is(err, apperr.ErrConflict) {
			return nil
		}
		return err
	}

	log.Info("super admin seeded", zap.String("email", superAdmin.Email))
	return nil
}
