// internals/features/reports/controller/report_controller.go
package controller

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	reportService "msec_erp_backend/internals/features/reports/service"
	studentController "msec_erp_backend/internals/features/students/controller"
	helper "msec_erp_backend/internals/helpers"
)

type ReportController struct {
	DB *gorm.DB
}

func NewReportController(db *gorm.DB) *ReportController {
	return &ReportController{DB: db}
}

/* =========================================================
   GET /api/u/report
   Assembled report document; the PDF renderer downstream
   turns this into the downloadable file.
   ========================================================= */
func (h *ReportController) StudentReport(c *fiber.Ctx) error {
	student, err := studentController.ResolveStudent(c, h.DB)
	if err != nil {
		return err
	}

	doc := reportService.AssembleReportModel(student)

	// filename hint for the renderer
	c.Set("X-Report-Filename", fmt.Sprintf("%s_report.pdf", student.StudentProfileRollNumber))
	return helper.Success(c, "Student report", doc)
}
