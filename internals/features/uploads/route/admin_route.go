// internals/features/uploads/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	uploadController "msec_erp_backend/internals/features/uploads/controller"
	middlewares "msec_erp_backend/internals/middlewares"
)

// UploadAdminRoutes mounts the spreadsheet ingestion endpoints. Each call is
// one atomic batch, so the group gets its own tighter rate limit.
func UploadAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctrl := uploadController.NewUploadController(db)

	upload := admin.Group("/upload", middlewares.UploadRateLimiter())
	upload.Post("/academics", ctrl.UploadAcademics)
	upload.Post("/attendance", ctrl.UploadAttendance)
	upload.Post("/activities", ctrl.UploadActivities)
}
