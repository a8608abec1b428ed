// internals/features/uploads/service/reconciler.go
package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	"gorm.io/datatypes"

	"msec_erp_backend/internals/features/uploads/parser"
	helper "msec_erp_backend/internals/helpers"
)

// Result summarizes one upload batch. Warnings are only populated by the
// activities variant (malformed JSON sub-fields are tolerated per-field).
type Result struct {
	Updated  int      `json:"updated"`
	Warnings []string `json:"warnings,omitempty"`
}

// Reconciler applies parsed upload rows against the roster. Each Reconcile*
// call is one atomic batch: rows are processed strictly in file order inside
// a single transaction, and any unknown roll number or out-of-domain value
// rolls the whole batch back.
type Reconciler struct {
	store Store
}

func NewReconciler(store Store) *Reconciler {
	return &Reconciler{store: store}
}

/* =========================================================
   Academics: year (1..4) + gpa, optional per-subject marks
   ========================================================= */

func (r *Reconciler) ReconcileAcademics(ctx context.Context, rows []parser.Row) (*Result, error) {
	res := &Result{}
	err := r.store.RunInTransaction(ctx, func(tx Store) error {
		for _, row := range rows {
			roll := cell(row, parser.KeyRollNumber)
			if roll == "" {
				continue
			}

			student, err := tx.FindStudentByRollNumber(ctx, roll)
			if err != nil {
				return err
			}
			if student == nil {
				return &UnknownStudentError{RollNumber: roll}
			}

			year, err := strconv.Atoi(cell(row, parser.KeyYear))
			if err != nil {
				return &ValidationError{RollNumber: roll, Field: "year", Message: "must be an integer"}
			}
			if year < 1 || year > 4 {
				return &ValidationError{RollNumber: roll, Field: "year", Message: fmt.Sprintf("%d is outside 1-4", year)}
			}

			gpa := helper.FloatOrNil(row[parser.KeyGpa])
			academicYearID, err := tx.UpsertAcademicYear(ctx, student.StudentProfileID, year, gpa)
			if err != nil {
				return err
			}

			if subject := cell(row, parser.KeySubjectName); subject != "" {
				fields := SubjectMarkFields{
					Marks:     helper.FloatOrNil(row[parser.KeyMarks]),
					UnitTest1: helper.FloatOrNil(row[parser.KeyUnitTest1]),
					UnitTest2: helper.FloatOrNil(row[parser.KeyUnitTest2]),
					UnitTest3: helper.FloatOrNil(row[parser.KeyUnitTest3]),
					IatScore:  helper.FloatOrNil(row[parser.KeyIatScore]),
				}
				if err := tx.UpsertSubjectMark(ctx, academicYearID, subject, fields); err != nil {
					return err
				}
			}

			res.Updated++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

/* =========================================================
   Attendance: required subject + percent in [0,100]
   ========================================================= */

func (r *Reconciler) ReconcileAttendance(ctx context.Context, rows []parser.Row) (*Result, error) {
	res := &Result{}
	err := r.store.RunInTransaction(ctx, func(tx Store) error {
		for _, row := range rows {
			roll := cell(row, parser.KeyRollNumber)
			if roll == "" {
				continue
			}

			student, err := tx.FindStudentByRollNumber(ctx, roll)
			if err != nil {
				return err
			}
			if student == nil {
				return &UnknownStudentError{RollNumber: roll}
			}

			subject := cell(row, parser.KeySubjectName)
			if subject == "" {
				return &ValidationError{RollNumber: roll, Field: "subjectName", Message: "is required"}
			}

			percent, err := strconv.ParseFloat(cell(row, parser.KeyAttendancePercent), 64)
			if err != nil {
				return &ValidationError{RollNumber: roll, Field: "attendancePercent", Message: "must be a number"}
			}
			if percent < 0 || percent > 100 {
				return &ValidationError{RollNumber: roll, Field: "attendancePercent", Message: fmt.Sprintf("%.2f is outside 0-100", percent)}
			}

			fields := AttendanceFields{
				AttendancePercent: percent,
				TotalClasses:      helper.IntOrNil(row[parser.KeyTotalClasses]),
				AttendedClasses:   helper.IntOrNil(row[parser.KeyAttendedClasses]),
			}
			if err := tx.UpsertAttendance(ctx, student.StudentProfileID, subject, fields); err != nil {
				return err
			}

			res.Updated++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

/* =========================================================
   Activities: 7 JSON list fields, malformed JSON is a
   per-field warning, not a batch failure
   ========================================================= */

var activityFields = []string{
	"internships",
	"certifications",
	"hackathons",
	"scholarships",
	"sports",
	"extracurricular",
	"ecube",
}

func (r *Reconciler) ReconcileActivities(ctx context.Context, rows []parser.Row) (*Result, error) {
	res := &Result{}
	err := r.store.RunInTransaction(ctx, func(tx Store) error {
		for _, row := range rows {
			roll := cell(row, parser.KeyRollNumber)
			if roll == "" {
				continue
			}

			student, err := tx.FindStudentByRollNumber(ctx, roll)
			if err != nil {
				return err
			}
			if student == nil {
				// identity errors stay batch-fatal even here
				return &UnknownStudentError{RollNumber: roll}
			}

			var patch ActivitiesPatch
			for _, field := range activityFields {
				raw := cell(row, field)
				if raw == "" {
					continue
				}
				var probe interface{}
				if err := sonic.Unmarshal([]byte(raw), &probe); err != nil {
					res.Warnings = append(res.Warnings,
						fmt.Sprintf("%s: invalid JSON in %s, field skipped", roll, field))
					continue
				}
				setActivityField(&patch, field, datatypes.JSON(raw))
			}

			if err := tx.UpsertActivities(ctx, student.StudentProfileID, patch); err != nil {
				return err
			}

			res.Updated++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func setActivityField(patch *ActivitiesPatch, field string, v datatypes.JSON) {
	switch field {
	case "internships":
		patch.Internships = v
	case "certifications":
		patch.Certifications = v
	case "hackathons":
		patch.Hackathons = v
	case "scholarships":
		patch.Scholarships = v
	case "sports":
		patch.Sports = v
	case "extracurricular":
		patch.Extracurricular = v
	case "ecube":
		patch.Ecube = v
	}
}

// cell reads a trimmed value from the row; "" covers both a blank cell and
// a missing column.
func cell(row parser.Row, key string) string {
	if v, ok := row[key]; ok && v != nil {
		return strings.TrimSpace(*v)
	}
	return ""
}
