// internals/features/students/route/student_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	studentController "msec_erp_backend/internals/features/students/controller"
)

// StudentRoutes mounts the self-service endpoints on the portal-user group.
func StudentRoutes(user fiber.Router, db *gorm.DB) {
	ctrl := studentController.NewStudentProfileController(db)

	user.Get("/profile", ctrl.Profile)
	user.Get("/attendance", ctrl.Attendance)
	user.Get("/activities", ctrl.Activities)
	user.Get("/performance-trend", ctrl.PerformanceTrend)
	user.Get("/attendance-trend", ctrl.AttendanceTrend)
	user.Get("/insights", ctrl.Insights)
}
