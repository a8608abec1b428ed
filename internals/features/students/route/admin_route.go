// internals/features/students/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	studentController "msec_erp_backend/internals/features/students/controller"
)

// StudentAdminRoutes mounts the roster/dashboard endpoints on the admin group.
func StudentAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctrl := studentController.NewStudentAdminController(db)

	admin.Get("/dashboard", ctrl.Dashboard)
	admin.Get("/students", ctrl.ListStudents)
	admin.Get("/students/:id", ctrl.GetStudent)
	admin.Get("/batches", ctrl.Batches)
	admin.Get("/departments", ctrl.Departments)
}
