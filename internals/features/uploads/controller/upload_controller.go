// internals/features/uploads/controller/upload_controller.go
package controller

import (
	"errors"
	"io"
	"log"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	uploadDTO "msec_erp_backend/internals/features/uploads/dto"
	"msec_erp_backend/internals/features/uploads/parser"
	uploadService "msec_erp_backend/internals/features/uploads/service"
	helper "msec_erp_backend/internals/helpers"
)

const maxUploadBytes = 10 * 1024 * 1024 // 10MB, same cap the web client enforces

// columns each upload variant cannot work without; checked against the
// normalized header before any row is reconciled
var (
	academicsColumns  = []string{parser.KeyRollNumber, parser.KeyYear}
	attendanceColumns = []string{parser.KeyRollNumber, parser.KeySubjectName, parser.KeyAttendancePercent}
	activitiesColumns = []string{parser.KeyRollNumber}
)

type UploadController struct {
	DB *gorm.DB
}

func NewUploadController(db *gorm.DB) *UploadController {
	return &UploadController{DB: db}
}

/* =========================================================
   POST /api/a/upload/academics
   multipart field "file": xlsx/xls/csv
   ========================================================= */
func (h *UploadController) UploadAcademics(c *fiber.Ctx) error {
	rows, err := h.readSpreadsheet(c, academicsColumns)
	if err != nil {
		return err
	}

	rec := uploadService.NewReconciler(uploadService.NewGormStore(h.DB))
	res, err := rec.ReconcileAcademics(c.UserContext(), rows)
	if err != nil {
		return mapReconcileError(err)
	}

	return helper.Success(c, "Academic data processed", uploadDTO.FromResult(res))
}

/* =========================================================
   POST /api/a/upload/attendance
   ========================================================= */
func (h *UploadController) UploadAttendance(c *fiber.Ctx) error {
	rows, err := h.readSpreadsheet(c, attendanceColumns)
	if err != nil {
		return err
	}

	rec := uploadService.NewReconciler(uploadService.NewGormStore(h.DB))
	res, err := rec.ReconcileAttendance(c.UserContext(), rows)
	if err != nil {
		return mapReconcileError(err)
	}

	return helper.Success(c, "Attendance data processed", uploadDTO.FromResult(res))
}

/* =========================================================
   POST /api/a/upload/activities
   ========================================================= */
func (h *UploadController) UploadActivities(c *fiber.Ctx) error {
	rows, err := h.readSpreadsheet(c, activitiesColumns)
	if err != nil {
		return err
	}

	rec := uploadService.NewReconciler(uploadService.NewGormStore(h.DB))
	res, err := rec.ReconcileActivities(c.UserContext(), rows)
	if err != nil {
		return mapReconcileError(err)
	}

	return helper.Success(c, "Activities data processed", uploadDTO.FromResult(res))
}

/* =========================================================
   shared plumbing
   ========================================================= */

func (h *UploadController) readSpreadsheet(c *fiber.Ctx, required []string) ([]parser.Row, error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "No file uploaded")
	}
	if fileHeader.Size > maxUploadBytes {
		return nil, fiber.NewError(fiber.StatusRequestEntityTooLarge, "File exceeds the 10MB limit")
	}
	if !allowedSpreadsheet(fileHeader) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Only Excel files (.xlsx, .xls) and CSV files are allowed")
	}

	f, err := fileHeader.Open()
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Unable to read uploaded file")
	}
	defer f.Close()

	buf, err := io.ReadAll(f)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Unable to read uploaded file")
	}

	rows, err := parser.ParseTabular(buf)
	if err != nil {
		var pe *parser.ParseError
		if errors.As(err, &pe) {
			return nil, fiber.NewError(fiber.StatusBadRequest, pe.Error())
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to parse file")
	}

	if missing := parser.RequiredColumns(rows, required); len(missing) > 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest,
			"Missing required columns: "+strings.Join(missing, ", "))
	}
	return rows, nil
}

func allowedSpreadsheet(fh *multipart.FileHeader) bool {
	switch fh.Header.Get("Content-Type") {
	case "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		"application/vnd.ms-excel",
		"text/csv":
		return true
	}
	switch strings.ToLower(filepath.Ext(fh.Filename)) {
	case ".xlsx", ".xls", ".csv":
		return true
	}
	return false
}

// mapReconcileError turns domain errors into client responses. Everything
// batch-fatal has already been rolled back by the time we get here.
func mapReconcileError(err error) error {
	var unknown *uploadService.UnknownStudentError
	if errors.As(err, &unknown) {
		return fiber.NewError(fiber.StatusBadRequest, unknown.Error())
	}
	var invalid *uploadService.ValidationError
	if errors.As(err, &invalid) {
		return fiber.NewError(fiber.StatusBadRequest, invalid.Error())
	}
	log.Printf("[ERROR] upload reconcile: %v", err)
	return fiber.NewError(fiber.StatusInternalServerError, "Failed to process upload")
}
