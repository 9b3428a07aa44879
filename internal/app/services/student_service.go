package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ekoca/studenthub/internal/app/models"
	"github.com/ekoca/studenthub/internal/app/models/dto"
	"github.com/ekoca/studenthub/internal/app/repositories"
	"github.com/ekoca/studenthub/internal/pkg/apperrors"
	"github.com/ekoca/studenthub/internal/pkg/helpers"
	"github.com/ekoca/studenthub/internal/pkg/validation"
)

// studentStoreProvider hands out owner-scoped student stores. Satisfied by
// *repositories.StudentRepository.
type studentStoreProvider interface {
	ForOwner(ownerID int64) repositories.StudentStore
}

// StudentService handles student record operations on behalf of the
// authenticated owner
type StudentService struct {
	students studentStoreProvider
	logger   zerolog.Logger
}

// NewStudentService creates a new StudentService
func NewStudentService(students studentStoreProvider, logger zerolog.Logger) *StudentService {
	return &StudentService{
		students: students,
		logger:   logger,
	}
}

// validateInput checks value constraints that gin's binding tags cannot
// express.
func (s *StudentService) validateInput(input models.StudentInput) error {
	if !validation.IsValidEmail(input.Email) {
		return apperrors.NewCustomError(apperrors.ErrValidationFailed, "invalid email format").
			WithDetails(map[string]interface{}{"email": "must be a valid email address"})
	}
	if !models.IsValidStudentStatus(string(input.Status)) {
		return apperrors.NewCustomError(apperrors.ErrValidationFailed, "invalid student status").
			WithDetails(map[string]interface{}{"status": fmt.Sprintf("must be one of %v", models.ValidStudentStatuses)})
	}
	if !validation.IsValidPercentage(input.AttendancePercentage) {
		return apperrors.NewCustomError(apperrors.ErrValidationFailed, "invalid attendance percentage").
			WithDetails(map[string]interface{}{"attendancePercentage": "must be between 0 and 100"})
	}
	if !validation.IsValidPercentage(input.AssignmentScore) {
		return apperrors.NewCustomError(apperrors.ErrValidationFailed, "invalid assignment score").
			WithDetails(map[string]interface{}{"assignmentScore": "must be between 0 and 100"})
	}
	return nil
}

// CreateStudent creates a student record owned by ownerID
func (s *StudentService) CreateStudent(ctx context.Context, ownerID int64, input models.StudentInput) (*models.Student, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	student, err := s.students.ForOwner(ownerID).Create(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to create student: %w", err)
	}

	s.logger.Info().Int64("studentId", student.ID).Int64("ownerId", ownerID).Msg("Student record created")
	return student, nil
}

// GetStudent fetches a single record owned by ownerID
func (s *StudentService) GetStudent(ctx context.Context, ownerID, studentID int64) (*models.Student, error) {
	return s.students.ForOwner(ownerID).GetByID(ctx, studentID)
}

// UpdateStudent replaces the caller-settable fields of a record owned by
// ownerID and returns the updated row
func (s *StudentService) UpdateStudent(ctx context.Context, ownerID, studentID int64, input models.StudentInput) (*models.Student, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	student, err := s.students.ForOwner(ownerID).Update(ctx, studentID, input)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("studentId", student.ID).Int64("ownerId", ownerID).Msg("Student record updated")
	return student, nil
}

// DeleteStudent removes a record owned by ownerID and returns the deleted row
func (s *StudentService) DeleteStudent(ctx context.Context, ownerID, studentID int64) (*models.Student, error) {
	student, err := s.students.ForOwner(ownerID).Delete(ctx, studentID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("studentId", student.ID).Int64("ownerId", ownerID).Msg("Student record deleted")
	return student, nil
}

// ListStudents returns a filtered, sorted page of the owner's records along
// with pagination metadata computed from the unpaginated match count
func (s *StudentService) ListStudents(ctx context.Context, ownerID int64, filter models.StudentFilter) (*dto.StudentListResponse, error) {
	filter.Page, filter.Limit = helpers.NormalizePageLimit(filter.Page, filter.Limit)

	students, total, err := s.students.ForOwner(ownerID).List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}

	return &dto.StudentListResponse{
		Students:   students,
		Pagination: helpers.NewPagination(total, filter.Page, filter.Limit),
	}, nil
}

// GetStatistics aggregates the owner's records
func (s *StudentService) GetStatistics(ctx context.Context, ownerID int64) (*models.StudentStatistics, error) {
	stats, err := s.students.ForOwner(ownerID).Statistics(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute statistics: %w", err)
	}
	return stats, nil
}
