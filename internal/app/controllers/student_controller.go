package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ekoca/studenthub/internal/app/models/dto"
	"github.com/ekoca/studenthub/internal/app/services"
	"github.com/ekoca/studenthub/internal/middleware"
)

// StudentController handles student record operations. All handlers operate
// on the authenticated user's own records only.
type StudentController struct {
	studentService *services.StudentService
	logger         zerolog.Logger
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService *services.StudentService, logger zerolog.Logger) *StudentController {
	return &StudentController{
		studentService: studentService,
		logger:         logger,
	}
}

// ownerID fetches the authenticated owner from the request context, writing
// the error response itself when the middleware did not run.
func (c *StudentController) ownerID(ctx *gin.Context) (int64, bool) {
	userID, ok := middleware.GetUserID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return userID, true
}

// studentID parses the :id path parameter.
func (c *StudentController) studentID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid student ID").
			WithField("id").
			WithDetails("Student ID must be a positive integer")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// CreateStudent creates a new student record for the authenticated user
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	ownerID, ok := c.ownerID(ctx)
	if !ok {
		return
	}

	var req dto.StudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	student, err := c.studentService.CreateStudent(ctx.Request.Context(), ownerID, req.ToInput())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(student, "Student created successfully"))
}

// GetStudent returns a single student record
func (c *StudentController) GetStudent(ctx *gin.Context) {
	ownerID, ok := c.ownerID(ctx)
	if !ok {
		return
	}
	id, ok := c.studentID(ctx)
	if !ok {
		return
	}

	student, err := c.studentService.GetStudent(ctx.Request.Context(), ownerID, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(student, ""))
}

// UpdateStudent replaces the caller-settable fields of a student record
func (c *StudentController) UpdateStudent(ctx *gin.Context) {
	ownerID, ok := c.ownerID(ctx)
	if !ok {
		return
	}
	id, ok := c.studentID(ctx)
	if !ok {
		return
	}

	var req dto.StudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	student, err := c.studentService.UpdateStudent(ctx.Request.Context(), ownerID, id, req.ToInput())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(student, "Student updated successfully"))
}

// DeleteStudent removes a student record and returns the deleted row
func (c *StudentController) DeleteStudent(ctx *gin.Context) {
	ownerID, ok := c.ownerID(ctx)
	if !ok {
		return
	}
	id, ok := c.studentID(ctx)
	if !ok {
		return
	}

	student, err := c.studentService.DeleteStudent(ctx.Request.Context(), ownerID, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(student, "Student deleted successfully"))
}

// ListStudents returns a filtered, sorted, paginated page of the
// authenticated user's student records
func (c *StudentController) ListStudents(ctx *gin.Context) {
	ownerID, ok := c.ownerID(ctx)
	if !ok {
		return
	}

	var query dto.ListStudentsQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid query parameters").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	resp, err := c.studentService.ListStudents(ctx.Request.Context(), ownerID, query.ToFilter())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp, ""))
}

// GetStatistics returns aggregate statistics over the authenticated user's
// student records
func (c *StudentController) GetStatistics(ctx *gin.Context) {
	ownerID, ok := c.ownerID(ctx)
	if !ok {
		return
	}

	stats, err := c.studentService.GetStatistics(ctx.Request.Context(), ownerID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(stats, ""))
}
