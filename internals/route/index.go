// internals/route/index.go
package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	reportRoute "msec_erp_backend/internals/features/reports/route"
	studentRoute "msec_erp_backend/internals/features/students/route"
	uploadRoute "msec_erp_backend/internals/features/uploads/route"
	auth "msec_erp_backend/internals/middlewares/auth"
)

/* =========================================================
   Route map
   /api/a  -> admin console (dashboard, roster, uploads)
   /api/u  -> portal user (student self-service + report)
   ========================================================= */

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	api := app.Group("/api")

	admin := api.Group("/a",
		auth.AuthMiddleware(),
		auth.AdminOnly("admin console"),
	)
	studentRoute.StudentAdminRoutes(admin, db)
	uploadRoute.UploadAdminRoutes(admin, db)

	user := api.Group("/u",
		auth.AuthMiddleware(),
		auth.AdminOrStudent(),
	)
	studentRoute.StudentRoutes(user, db)
	reportRoute.ReportRoutes(user, db)

	log.Println("[INFO] Routes registered: /api/a (admin), /api/u (portal)")
}
