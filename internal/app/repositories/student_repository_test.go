package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekoca/studenthub/internal/app/models"
)

func newTestStudentRepository() *StudentRepository {
	return NewStudentRepository(nil)
}

func TestSortClause(t *testing.T) {
	tests := []struct {
		name      string
		sortBy    string
		sortOrder string
		want      string
	}{
		{"default sort", "", "", "created_at DESC"},
		{"api field name", "gradePointAverage", "asc", "grade_point_average ASC"},
		{"database column name", "grade_point_average", "ASC", "grade_point_average ASC"},
		{"unknown column falls back", "password", "asc", "created_at ASC"},
		{"injection attempt falls back", "name; DROP TABLE students", "desc", "created_at DESC"},
		{"bogus order defaults to desc", "name", "sideways", "name DESC"},
		{"order is case-insensitive", "name", "AsC", "name ASC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sortClause(tt.sortBy, tt.sortOrder))
		})
	}
}

func TestBuildListQueryDefaults(t *testing.T) {
	repo := newTestStudentRepository()

	sql, args, err := repo.buildListQuery(7, models.StudentFilter{Page: 1, Limit: 10}).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "FROM students")
	assert.Contains(t, sql, "user_id = $1")
	assert.Contains(t, sql, "ORDER BY created_at DESC")
	assert.Contains(t, sql, "LIMIT 10 OFFSET 0")
	assert.Equal(t, []interface{}{int64(7)}, args)
}

func TestBuildListQueryAllFilters(t *testing.T) {
	repo := newTestStudentRepository()
	scholarship := true

	filter := models.StudentFilter{
		Page:          2,
		Limit:         10,
		Status:        models.StatusActive,
		IsScholarship: &scholarship,
		Search:        "ali",
		SortBy:        "name",
		SortOrder:     "asc",
	}

	sql, args, err := repo.buildListQuery(7, filter).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "user_id = $1")
	assert.Contains(t, sql, "status = $2")
	assert.Contains(t, sql, "is_scholarship = $3")
	assert.Contains(t, sql, "name ILIKE $4 OR email ILIKE $5")
	assert.Contains(t, sql, "ORDER BY name ASC")
	assert.Contains(t, sql, "LIMIT 10 OFFSET 10")
	assert.Equal(t, []interface{}{
		int64(7), models.StatusActive, true, "%ali%", "%ali%",
	}, args)
}

func TestBuildListQueryTrimsSearch(t *testing.T) {
	repo := newTestStudentRepository()

	sql, args, err := repo.buildListQuery(1, models.StudentFilter{Search: "  ali  "}).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "ILIKE")
	assert.Contains(t, args, "%ali%")
}

func TestBuildListQueryBlankSearchIgnored(t *testing.T) {
	repo := newTestStudentRepository()

	sql, args, err := repo.buildListQuery(1, models.StudentFilter{Search: "   "}).ToSql()
	require.NoError(t, err)

	assert.NotContains(t, sql, "ILIKE")
	assert.Equal(t, []interface{}{int64(1)}, args)
}

func TestListConditionsAlwaysScopedToOwner(t *testing.T) {
	repo := newTestStudentRepository()

	where := repo.listConditions(99, models.StudentFilter{})
	sql, args, err := where.ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "user_id = ?")
	assert.Equal(t, []interface{}{int64(99)}, args)
}
