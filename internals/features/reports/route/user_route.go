// internals/features/reports/route/user_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	reportController "msec_erp_backend/internals/features/reports/controller"
)

// ReportRoutes mounts the report document endpoint on the portal-user group.
func ReportRoutes(user fiber.Router, db *gorm.DB) {
	ctrl := reportController.NewReportController(db)

	user.Get("/report", ctrl.StudentReport)
}
