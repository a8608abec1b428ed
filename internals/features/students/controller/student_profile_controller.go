// internals/features/students/controller/student_profile_controller.go
package controller

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"msec_erp_backend/internals/constants"
	analyticsService "msec_erp_backend/internals/features/analytics/service"
	studentDTO "msec_erp_backend/internals/features/students/dto"
	studentModel "msec_erp_backend/internals/features/students/model"
	helper "msec_erp_backend/internals/helpers"
)

type StudentProfileController struct {
	DB *gorm.DB
}

func NewStudentProfileController(db *gorm.DB) *StudentProfileController {
	return &StudentProfileController{DB: db}
}

/* =========================================================
   GET /api/u/profile
   Students see their own data; admins pass ?student_id=
   ========================================================= */
func (h *StudentProfileController) Profile(c *fiber.Ctx) error {
	student, err := h.resolveStudent(c)
	if err != nil {
		return err
	}
	return helper.Success(c, "Student profile", studentDTO.FromStudentProfile(student))
}

/* =========================================================
   GET /api/u/attendance
   ========================================================= */
func (h *StudentProfileController) Attendance(c *fiber.Ctx) error {
	student, err := h.resolveStudent(c)
	if err != nil {
		return err
	}

	overall := 0.0
	if len(student.Attendances) > 0 {
		sum := 0.0
		for _, a := range student.Attendances {
			sum += a.AttendancePercent
		}
		overall = helper.Round2(sum / float64(len(student.Attendances)))
	}

	shortage := []string{}
	for _, a := range student.Attendances {
		if a.AttendancePercent < 75 {
			shortage = append(shortage, a.AttendanceSubjectName)
		}
	}

	return helper.Success(c, "Attendance", fiber.Map{
		"overall":          overall,
		"subjects":         student.Attendances,
		"shortageWarning":  len(shortage) > 0,
		"shortageSubjects": shortage,
	})
}

/* =========================================================
   GET /api/u/activities
   ========================================================= */
func (h *StudentProfileController) Activities(c *fiber.Ctx) error {
	student, err := h.resolveStudent(c)
	if err != nil {
		return err
	}

	if student.Activities == nil {
		// the client expects the seven lists, empty
		empty := []string{}
		return helper.Success(c, "Activities", fiber.Map{"activities": fiber.Map{
			"internships":     empty,
			"scholarships":    empty,
			"ecube":           empty,
			"extracurricular": empty,
			"sports":          empty,
			"certifications":  empty,
			"hackathons":      empty,
		}})
	}
	return helper.Success(c, "Activities", fiber.Map{"activities": student.Activities})
}

/* =========================================================
   GET /api/u/performance-trend
   ========================================================= */
func (h *StudentProfileController) PerformanceTrend(c *fiber.Ctx) error {
	student, err := h.resolveStudent(c)
	if err != nil {
		return err
	}

	analysis := analyticsService.AnalyzePerformanceTrend(student.AcademicYears)
	return helper.Success(c, "Performance trend", fiber.Map{
		"trend":          analysis.Trend,
		"trendDirection": analysis.TrendDirection,
	})
}

/* =========================================================
   GET /api/u/attendance-trend
   ========================================================= */
func (h *StudentProfileController) AttendanceTrend(c *fiber.Ctx) error {
	student, err := h.resolveStudent(c)
	if err != nil {
		return err
	}

	type point struct {
		Name       string  `json:"name"`
		Percentage float64 `json:"percentage"`
	}
	points := make([]point, 0, len(student.Attendances))
	for _, a := range student.Attendances {
		points = append(points, point{Name: a.AttendanceSubjectName, Percentage: a.AttendancePercent})
	}
	return helper.Success(c, "Attendance trend", fiber.Map{"subjects": points})
}

/* =========================================================
   GET /api/u/insights
   ========================================================= */
func (h *StudentProfileController) Insights(c *fiber.Ctx) error {
	student, err := h.resolveStudent(c)
	if err != nil {
		return err
	}
	return helper.Success(c, "Student insights", analyticsService.GenerateStudentInsights(student))
}

/* =========================================================
   student resolution: STUDENT tokens map through their own
   profile, ADMIN tokens pass ?student_id=
   ========================================================= */

func (h *StudentProfileController) resolveStudent(c *fiber.Ctx) (*studentModel.StudentProfile, error) {
	return ResolveStudent(c, h.DB)
}

// ResolveStudent maps the request to a fully loaded profile. Shared with
// the report endpoint.
func ResolveStudent(c *fiber.Ctx, rawDB *gorm.DB) (*studentModel.StudentProfile, error) {
	db := rawDB.WithContext(c.UserContext())

	var studentID uuid.UUID
	role, _ := c.Locals("role").(string)

	if role == constants.RoleStudent {
		userIDStr, _ := c.Locals("user_id").(string)
		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid user token")
		}
		var profile studentModel.StudentProfile
		if err := db.First(&profile, "student_profile_user_id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fiber.NewError(fiber.StatusNotFound, "Student profile not found")
			}
			return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to resolve student")
		}
		studentID = profile.StudentProfileID
	} else {
		raw := strings.TrimSpace(c.Query("student_id"))
		if raw == "" {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Student ID required")
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Invalid student ID %q", raw))
		}
		studentID = id
	}

	student, err := loadFullStudent(db, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Student profile not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load student")
	}
	return student, nil
}
