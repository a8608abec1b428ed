// internals/features/students/controller/student_admin_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	studentDTO "msec_erp_backend/internals/features/students/dto"
	studentModel "msec_erp_backend/internals/features/students/model"
	helper "msec_erp_backend/internals/helpers"
)

var validate = validator.New()

type StudentAdminController struct {
	DB *gorm.DB
}

func NewStudentAdminController(db *gorm.DB) *StudentAdminController {
	return &StudentAdminController{DB: db}
}

/* =========================================================
   GET /api/a/dashboard
   Aggregate counters for the admin landing page
   ========================================================= */
func (h *StudentAdminController) Dashboard(c *fiber.Ctx) error {
	db := h.DB.WithContext(c.UserContext())

	var total int64
	if err := db.Model(&studentModel.StudentProfile{}).Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load dashboard")
	}

	var byBatch []studentDTO.BatchCount
	if err := db.Model(&studentModel.StudentProfile{}).
		Select("student_profile_batch AS batch, COUNT(*) AS count").
		Group("student_profile_batch").
		Order("student_profile_batch DESC").
		Scan(&byBatch).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load dashboard")
	}

	var shortage int64
	if err := db.Model(&studentModel.Attendance{}).
		Where("attendance_percent < ?", 75.0).
		Distinct("attendance_student_id").
		Count(&shortage).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load dashboard")
	}

	var atRisk int64
	if err := db.Model(&studentModel.AcademicYear{}).
		Where("academic_year_gpa < ?", 5.0).
		Distinct("academic_year_student_id").
		Count(&atRisk).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load dashboard")
	}

	return helper.Success(c, "Dashboard stats", studentDTO.DashboardStatsResponse{
		TotalStudents:           total,
		StudentsByBatch:         byBatch,
		AttendanceShortageCount: shortage,
		PerformanceRiskCount:    atRisk,
	})
}

/* =========================================================
   GET /api/a/students?page=&per_page=&batch=&department=&search=&sort_by=&sort_order=
   ========================================================= */

// sortable columns, whitelisted
var studentSortColumns = map[string]string{
	"rollNumber": "student_profile_roll_number",
	"department": "student_profile_department",
	"batch":      "student_profile_batch",
	"createdAt":  "student_profile_created_at",
}

func (h *StudentAdminController) ListStudents(c *fiber.Ctx) error {
	var req studentDTO.StudentListQuery
	if err := c.QueryParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid query parameters")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	db := h.DB.WithContext(c.UserContext())
	paging := helper.ResolvePaging(c, 20, 100)

	q := db.Model(&studentModel.StudentProfile{})

	if batch := strings.TrimSpace(req.Batch); batch != "" {
		q = q.Where("student_profile_batch = ?", batch)
	}
	if dept := strings.TrimSpace(req.Department); dept != "" {
		q = q.Where("student_profile_department = ?", dept)
	}
	if search := strings.TrimSpace(req.Search); search != "" {
		like := "%" + search + "%"
		q = q.Joins("JOIN users ON users.user_id = student_profiles.student_profile_user_id").
			Where("student_profile_roll_number ILIKE ? OR users.user_name ILIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to list students")
	}

	orderCol := studentSortColumns["rollNumber"]
	if col, ok := studentSortColumns[req.SortBy]; ok {
		orderCol = col
	}
	direction := "ASC"
	if strings.EqualFold(req.SortOrder, "desc") {
		direction = "DESC"
	}

	var students []studentModel.StudentProfile
	if err := q.
		Preload("User").
		Preload("AcademicYears").
		Preload("Attendances").
		Order(orderCol + " " + direction).
		Limit(paging.Limit).
		Offset(paging.Offset).
		Find(&students).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to list students")
	}

	items := make([]studentDTO.StudentListItem, 0, len(students))
	for _, s := range students {
		items = append(items, studentDTO.FromStudentList(s))
	}

	return helper.Success(c, "Students", fiber.Map{
		"students":   items,
		"pagination": helper.BuildPagination(paging, total, len(items)),
	})
}

/* =========================================================
   GET /api/a/students/:id
   ========================================================= */
func (h *StudentAdminController) GetStudent(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid student ID")
	}

	student, err := loadFullStudent(h.DB.WithContext(c.UserContext()), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Student not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load student")
	}

	return helper.Success(c, "Student detail", fiber.Map{"student": student})
}

/* =========================================================
   GET /api/a/batches | /api/a/departments
   ========================================================= */
func (h *StudentAdminController) Batches(c *fiber.Ctx) error {
	var batches []string
	if err := h.DB.WithContext(c.UserContext()).
		Model(&studentModel.StudentProfile{}).
		Distinct().
		Order("student_profile_batch DESC").
		Pluck("student_profile_batch", &batches).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load batches")
	}
	return helper.Success(c, "Batches", fiber.Map{"batches": batches})
}

func (h *StudentAdminController) Departments(c *fiber.Ctx) error {
	var departments []string
	if err := h.DB.WithContext(c.UserContext()).
		Model(&studentModel.StudentProfile{}).
		Distinct().
		Order("student_profile_department ASC").
		Pluck("student_profile_department", &departments).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load departments")
	}
	return helper.Success(c, "Departments", fiber.Map{"departments": departments})
}

// loadFullStudent fetches a profile with every relation the analytics and
// report layers need.
func loadFullStudent(db *gorm.DB, id uuid.UUID) (*studentModel.StudentProfile, error) {
	var student studentModel.StudentProfile
	err := db.
		Preload("User").
		Preload("AcademicYears", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("academic_year_year ASC")
		}).
		Preload("AcademicYears.SubjectMarks", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("subject_mark_subject_name ASC")
		}).
		Preload("Attendances", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("attendance_subject_name ASC")
		}).
		Preload("Activities").
		First(&student, "student_profile_id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}
