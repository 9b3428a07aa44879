package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/ekoca/studenthub/internal/app/models"
	"github.com/ekoca/studenthub/internal/app/repositories"
	"github.com/ekoca/studenthub/internal/pkg/apperrors"
	"github.com/ekoca/studenthub/internal/pkg/auth"
)

// CreateDefaultData seeds an admin account with a few sample records. It is
// idempotent: nothing happens when the admin user already exists.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := repositories.NewUserRepository(dbPool)
	studentRepo := repositories.NewStudentRepository(dbPool)

	exists, err := userRepo.UsernameExists(ctx, "admin")
	if err != nil {
		return err
	}
	if exists {
		lgr.Debug().Msg("Admin user already exists, skipping seed")
		return nil
	}

	hashedPassword, err := auth.HashPassword("password")
	if err != nil {
		return err
	}

	adminID, err := userRepo.CreateUser(ctx, &models.User{
		Username: "admin",
		Password: hashedPassword,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrUsernameExists) {
			return nil
		}
		return err
	}
	lgr.Info().Int64("userId", adminID).Msg("Seeded admin user")

	samples := []models.StudentInput{
		{Name: "Elif Kaya", Email: "elif.kaya@example.com", Status: models.StatusActive, IsScholarship: true, AttendancePercentage: 95, AssignmentScore: 92},
		{Name: "Mert Demir", Email: "mert.demir@example.com", Status: models.StatusActive, IsScholarship: false, AttendancePercentage: 78, AssignmentScore: 84},
		{Name: "Zeynep Arslan", Email: "zeynep.arslan@example.com", Status: models.StatusGraduated, IsScholarship: true, AttendancePercentage: 99, AssignmentScore: 97},
		{Name: "Can Yilmaz", Email: "can.yilmaz@example.com", Status: models.StatusInactive, IsScholarship: false, AttendancePercentage: 42, AssignmentScore: 55},
	}

	store := studentRepo.ForOwner(adminID)
	var finalErr error
	for _, input := range samples {
		if _, err := store.Create(ctx, input); err != nil {
			lgr.Error().Err(err).Str("name", input.Name).Msg("Error seeding sample student")
			finalErr = errors.Join(finalErr, err)
		}
	}

	if finalErr == nil {
		lgr.Info().Int("count", len(samples)).Msg("Seeded sample students")
	}
	return finalErr
}
