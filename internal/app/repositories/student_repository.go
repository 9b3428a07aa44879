package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ekoca/studenthub/internal/app/models"
	"github.com/ekoca/studenthub/internal/pkg/apperrors"
	"github.com/ekoca/studenthub/internal/pkg/grading"
	"github.com/ekoca/studenthub/internal/pkg/helpers"
)

// studentColumns is the full column list of the students table, in scan order.
var studentColumns = []string{
	"id", "user_id", "name", "email", "status", "is_scholarship",
	"attendance_percentage", "assignment_score", "grade_point_average",
	"created_at", "updated_at",
}

// sortableColumns is the allow-list for the listing sort. Keys are the API
// field names, values the database columns. Anything outside this set falls
// back to created_at without erroring.
var sortableColumns = map[string]string{
	"name":                 "name",
	"email":                "email",
	"status":               "status",
	"gradePointAverage":    "grade_point_average",
	"createdAt":            "created_at",
	"attendancePercentage": "attendance_percentage",
	"assignmentScore":      "assignment_score",
}

const defaultSortColumn = "created_at"

// StudentStore is the owner-scoped persistence contract for student records.
// Every method operates only on rows belonging to the owner the store was
// built for; a record owned by someone else looks exactly like a missing one.
type StudentStore interface {
	Create(ctx context.Context, input models.StudentInput) (*models.Student, error)
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	Update(ctx context.Context, id int64, input models.StudentInput) (*models.Student, error)
	Delete(ctx context.Context, id int64) (*models.Student, error)
	List(ctx context.Context, filter models.StudentFilter) ([]models.Student, int64, error)
	Statistics(ctx context.Context) (*models.StudentStatistics, error)
}

// StudentRepository handles database operations for student records
type StudentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// ForOwner returns a view of the students table restricted to a single
// owner. All reads and writes issued through the returned store carry the
// owner condition structurally, so cross-owner access is not expressible.
func (r *StudentRepository) ForOwner(ownerID int64) StudentStore {
	return &ownerStudents{repo: r, ownerID: ownerID}
}

// ownerStudents is the scoped store returned by ForOwner. It closes over the
// owner id and forwards to the repository's query builders.
type ownerStudents struct {
	repo    *StudentRepository
	ownerID int64
}

func scanStudent(row pgx.Row) (*models.Student, error) {
	var s models.Student
	err := row.Scan(
		&s.ID, &s.UserID, &s.Name, &s.Email, &s.Status, &s.IsScholarship,
		&s.AttendancePercentage, &s.AssignmentScore, &s.GradePointAverage,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserts a new student record. The grade point average is derived
// from the attendance/score pair at insert time; id and timestamps are
// assigned by the database.
func (o *ownerStudents) Create(ctx context.Context, input models.StudentInput) (*models.Student, error) {
	gpa := grading.GradePointAverage(input.AttendancePercentage, input.AssignmentScore)

	query := o.repo.sb.Insert("students").
		Columns("user_id", "name", "email", "status", "is_scholarship",
			"attendance_percentage", "assignment_score", "grade_point_average").
		Values(o.ownerID, input.Name, input.Email, input.Status, input.IsScholarship,
			input.AttendancePercentage, input.AssignmentScore, gpa).
		Suffix("RETURNING " + strings.Join(studentColumns, ", "))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build create student query: %w", err)
	}

	student, err := scanStudent(o.repo.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, fmt.Errorf("failed to create student: %w", err)
	}
	return student, nil
}

// GetByID retrieves a student owned by this store's owner
func (o *ownerStudents) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	query := o.repo.sb.Select(studentColumns...).
		From("students").
		Where(squirrel.Eq{"id": id, "user_id": o.ownerID})

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	student, err := scanStudent(o.repo.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to get student: %w", err)
	}
	return student, nil
}

// Update rewrites the caller-settable fields of an owned record, recomputes
// the grade point average from the new attendance/score pair and refreshes
// updated_at. A record that does not exist or belongs to another owner
// yields the not-found sentinel.
func (o *ownerStudents) Update(ctx context.Context, id int64, input models.StudentInput) (*models.Student, error) {
	gpa := grading.GradePointAverage(input.AttendancePercentage, input.AssignmentScore)

	query := o.repo.sb.Update("students").
		Set("name", input.Name).
		Set("email", input.Email).
		Set("status", input.Status).
		Set("is_scholarship", input.IsScholarship).
		Set("attendance_percentage", input.AttendancePercentage).
		Set("assignment_score", input.AssignmentScore).
		Set("grade_point_average", gpa).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "user_id": o.ownerID}).
		Suffix("RETURNING " + strings.Join(studentColumns, ", "))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update student query: %w", err)
	}

	student, err := scanStudent(o.repo.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to update student: %w", err)
	}
	return student, nil
}

// Delete removes an owned record and returns it
func (o *ownerStudents) Delete(ctx context.Context, id int64) (*models.Student, error) {
	query := o.repo.sb.Delete("students").
		Where(squirrel.Eq{"id": id, "user_id": o.ownerID}).
		Suffix("RETURNING " + strings.Join(studentColumns, ", "))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build delete student query: %w", err)
	}

	student, err := scanStudent(o.repo.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to delete student: %w", err)
	}
	return student, nil
}

// List retrieves a page of students matching the filter, plus the total
// count of the full filtered set. All filters combine with AND semantics.
func (o *ownerStudents) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, int64, error) {
	where := o.repo.listConditions(o.ownerID, filter)

	// Count the full filtered set before applying pagination
	countSql, countArgs, err := o.repo.sb.Select("COUNT(*)").
		From("students").
		Where(where).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count students query: %w", err)
	}

	var total int64
	if err := o.repo.db.QueryRow(ctx, countSql, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count students: %w", err)
	}

	if total == 0 {
		return []models.Student{}, 0, nil
	}

	querySql, queryArgs, err := o.repo.buildListQuery(o.ownerID, filter).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list students query: %w", err)
	}

	rows, err := o.repo.db.Query(ctx, querySql, queryArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query students: %w", err)
	}
	defer rows.Close()

	var students []models.Student
	for rows.Next() {
		var s models.Student
		err := rows.Scan(
			&s.ID, &s.UserID, &s.Name, &s.Email, &s.Status, &s.IsScholarship,
			&s.AttendancePercentage, &s.AssignmentScore, &s.GradePointAverage,
			&s.CreatedAt, &s.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan student row: %w", err)
		}
		students = append(students, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read student rows: %w", err)
	}

	return students, total, nil
}

// Statistics aggregates this owner's records. The average is rounded to two
// decimal places; with no records every count is zero and the average
// coalesces to zero rather than NULL.
func (o *ownerStudents) Statistics(ctx context.Context) (*models.StudentStatistics, error) {
	query := `
		SELECT
			COUNT(*) AS total_students,
			COUNT(*) FILTER (WHERE status = 'active') AS active_students,
			COUNT(*) FILTER (WHERE is_scholarship = true) AS scholarship_students,
			COALESCE(ROUND(AVG(grade_point_average)::numeric, 2), 0)::float8 AS average_gpa
		FROM students
		WHERE user_id = $1
	`

	var stats models.StudentStatistics
	err := o.repo.db.QueryRow(ctx, query, o.ownerID).Scan(
		&stats.TotalStudents,
		&stats.ActiveStudents,
		&stats.ScholarshipStudents,
		&stats.AverageGPA,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compute student statistics: %w", err)
	}
	return &stats, nil
}

// listConditions translates the typed filter into the shared WHERE clause.
// The owner condition is always present.
func (r *StudentRepository) listConditions(ownerID int64, filter models.StudentFilter) squirrel.And {
	where := squirrel.And{squirrel.Eq{"user_id": ownerID}}

	if filter.Status != "" {
		where = append(where, squirrel.Eq{"status": filter.Status})
	}
	if filter.IsScholarship != nil {
		where = append(where, squirrel.Eq{"is_scholarship": *filter.IsScholarship})
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + search + "%"
		where = append(where, squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"email": pattern},
		})
	}

	return where
}

// buildListQuery assembles the full page query: filters, sorting against the
// allow-list and pagination.
func (r *StudentRepository) buildListQuery(ownerID int64, filter models.StudentFilter) squirrel.SelectBuilder {
	page, limit := helpers.NormalizePageLimit(filter.Page, filter.Limit)

	return r.sb.Select(studentColumns...).
		From("students").
		Where(r.listConditions(ownerID, filter)).
		OrderBy(sortClause(filter.SortBy, filter.SortOrder)).
		Limit(uint64(limit)).
		Offset(helpers.CalculateOffset(page, limit))
}

// sortClause resolves the requested sort against the allow-list. An
// unrecognized column silently falls back to created_at; anything other
// than asc orders descending.
func sortClause(sortBy, sortOrder string) string {
	column, ok := sortableColumns[sortBy]
	if !ok {
		// Also accept the raw database column names
		for _, dbColumn := range sortableColumns {
			if sortBy == dbColumn {
				column = dbColumn
				ok = true
				break
			}
		}
	}
	if !ok {
		column = defaultSortColumn
	}

	order := "DESC"
	if strings.EqualFold(sortOrder, "asc") {
		order = "ASC"
	}

	return fmt.Sprintf("%s %s", column, order)
}
