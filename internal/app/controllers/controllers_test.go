package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/ekoca/studenthub/internal/app/models"
	"github.com/ekoca/studenthub/internal/app/repositories"
	"github.com/ekoca/studenthub/internal/app/services"
	"github.com/ekoca/studenthub/internal/middleware"
	"github.com/ekoca/studenthub/internal/pkg/apperrors"
	"github.com/ekoca/studenthub/internal/pkg/auth"
	"github.com/ekoca/studenthub/internal/pkg/grading"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// In-memory backends for wiring real services under httptest.

type fakeUsers struct {
	nextID int64
	byName map[string]*models.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byName: make(map[string]*models.User)}
}

func (f *fakeUsers) CreateUser(_ context.Context, user *models.User) (int64, error) {
	if _, ok := f.byName[user.Username]; ok {
		return 0, apperrors.ErrUsernameExists
	}
	f.nextID++
	stored := *user
	stored.ID = f.nextID
	f.byName[user.Username] = &stored
	return stored.ID, nil
}

func (f *fakeUsers) GetByUsername(_ context.Context, username string) (*models.User, error) {
	user, ok := f.byName[username]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUsers) GetByID(_ context.Context, id int64) (*models.User, error) {
	for _, user := range f.byName {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUsers) UsernameExists(_ context.Context, username string) (bool, error) {
	_, ok := f.byName[username]
	return ok, nil
}

type fakeTokens struct {
	byValue map[string]struct {
		userID  int64
		expiry  time.Time
		revoked bool
	}
}

func newFakeTokens() *fakeTokens {
	return &fakeTokens{byValue: make(map[string]struct {
		userID  int64
		expiry  time.Time
		revoked bool
	})}
}

func (f *fakeTokens) CreateToken(_ context.Context, token string, userID int64, expiryDate time.Time) error {
	f.byValue[token] = struct {
		userID  int64
		expiry  time.Time
		revoked bool
	}{userID, expiryDate, false}
	return nil
}

func (f *fakeTokens) GetTokenByValue(_ context.Context, token string) (int64, time.Time, error) {
	stored, ok := f.byValue[token]
	if !ok {
		return 0, time.Time{}, apperrors.ErrTokenNotFound
	}
	if stored.revoked {
		return 0, time.Time{}, apperrors.ErrTokenRevoked
	}
	if stored.expiry.Before(time.Now()) {
		return 0, time.Time{}, apperrors.ErrTokenExpired
	}
	return stored.userID, stored.expiry, nil
}

func (f *fakeTokens) RevokeToken(_ context.Context, token string) error {
	stored, ok := f.byValue[token]
	if !ok {
		return apperrors.ErrTokenNotFound
	}
	stored.revoked = true
	f.byValue[token] = stored
	return nil
}

type fakeStudents struct {
	nextID  int64
	records map[int64]models.Student
}

func newFakeStudents() *fakeStudents {
	return &fakeStudents{records: make(map[int64]models.Student)}
}

func (f *fakeStudents) ForOwner(ownerID int64) repositories.StudentStore {
	return &fakeOwnerStore{backend: f, ownerID: ownerID}
}

type fakeOwnerStore struct {
	backend *fakeStudents
	ownerID int64
}

func (s *fakeOwnerStore) Create(_ context.Context, input models.StudentInput) (*models.Student, error) {
	s.backend.nextID++
	student := models.Student{
		ID:                   s.backend.nextID,
		UserID:               s.ownerID,
		Name:                 input.Name,
		Email:                input.Email,
		Status:               input.Status,
		IsScholarship:        input.IsScholarship,
		AttendancePercentage: input.AttendancePercentage,
		AssignmentScore:      input.AssignmentScore,
		GradePointAverage:    grading.GradePointAverage(input.AttendancePercentage, input.AssignmentScore),
	}
	s.backend.records[student.ID] = student
	return &student, nil
}

func (s *fakeOwnerStore) GetByID(_ context.Context, id int64) (*models.Student, error) {
	student, ok := s.backend.records[id]
	if !ok || student.UserID != s.ownerID {
		return nil, apperrors.ErrStudentNotFound
	}
	return &student, nil
}

func (s *fakeOwnerStore) Update(ctx context.Context, id int64, input models.StudentInput) (*models.Student, error) {
	student, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	student.Name = input.Name
	student.Email = input.Email
	student.Status = input.Status
	student.IsScholarship = input.IsScholarship
	student.AttendancePercentage = input.AttendancePercentage
	student.AssignmentScore = input.AssignmentScore
	student.GradePointAverage = grading.GradePointAverage(input.AttendancePercentage, input.AssignmentScore)
	s.backend.records[id] = *student
	return student, nil
}

func (s *fakeOwnerStore) Delete(ctx context.Context, id int64) (*models.Student, error) {
	student, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	delete(s.backend.records, id)
	return student, nil
}

func (s *fakeOwnerStore) List(_ context.Context, filter models.StudentFilter) ([]models.Student, int64, error) {
	var matched []models.Student
	for id := int64(1); id <= s.backend.nextID; id++ {
		student, ok := s.backend.records[id]
		if !ok || student.UserID != s.ownerID {
			continue
		}
		if filter.Status != "" && student.Status != filter.Status {
			continue
		}
		if filter.IsScholarship != nil && student.IsScholarship != *filter.IsScholarship {
			continue
		}
		if search := strings.TrimSpace(filter.Search); search != "" {
			needle := strings.ToLower(search)
			if !strings.Contains(strings.ToLower(student.Name), needle) &&
				!strings.Contains(strings.ToLower(student.Email), needle) {
				continue
			}
		}
		matched = append(matched, student)
	}

	total := int64(len(matched))
	start := (filter.Page - 1) * filter.Limit
	if start >= len(matched) {
		return []models.Student{}, total, nil
	}
	end := start + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (s *fakeOwnerStore) Statistics(ctx context.Context) (*models.StudentStatistics, error) {
	all, total, err := s.List(ctx, models.StudentFilter{Page: 1, Limit: 1 << 30})
	if err != nil {
		return nil, err
	}
	stats := &models.StudentStatistics{TotalStudents: total}
	var gpaSum float64
	for _, student := range all {
		if student.Status == models.StatusActive {
			stats.ActiveStudents++
		}
		if student.IsScholarship {
			stats.ScholarshipStudents++
		}
		gpaSum += student.GradePointAverage
	}
	if total > 0 {
		stats.AverageGPA = gpaSum / float64(total)
	}
	return stats, nil
}

// newTestRouter wires the full HTTP stack over the in-memory backends.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "controller-test-secret",
		AccessTokenExp:  15 * time.Minute,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "studenthub-test",
	})

	authService := services.NewAuthService(newFakeUsers(), newFakeTokens(), jwtService, zerolog.Nop())
	studentService := services.NewStudentService(newFakeStudents(), zerolog.Nop())

	authController := NewAuthController(authService, zerolog.Nop())
	studentController := NewStudentController(studentService, zerolog.Nop())
	authMiddleware := middleware.NewAuthMiddleware(jwtService)

	router := gin.New()

	v1 := router.Group("/api/v1")
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/signup", authController.Signup)
		authGroup.POST("/login", authController.Login)
		authGroup.POST("/refresh", authController.RefreshToken)
	}
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/auth/verify", authController.Verify)
		students := authenticated.Group("/students")
		{
			students.GET("", studentController.ListStudents)
			students.POST("", studentController.CreateStudent)
			students.GET("/statistics", studentController.GetStatistics)
			students.GET("/:id", studentController.GetStudent)
			students.PUT("/:id", studentController.UpdateStudent)
			students.DELETE("/:id", studentController.DeleteStudent)
		}
	}

	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body
}

// signupAndToken registers a user and returns its access token.
func signupAndToken(t *testing.T, router *gin.Engine, username string) string {
	t.Helper()

	recorder := doJSON(t, router, http.MethodPost, "/api/v1/auth/signup", "", gin.H{
		"username": username,
		"password": "secret1",
	})
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	body := decodeBody(t, recorder)
	data := body["data"].(map[string]interface{})
	tokenData := data["token"].(map[string]interface{})
	return tokenData["accessToken"].(string)
}
