// internals/features/uploads/service/store.go
package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	studentModel "msec_erp_backend/internals/features/students/model"
)

/* =========================================================
   Persistence contract consumed by the reconcilers.
   ========================================================= */

type SubjectMarkFields struct {
	Marks     *float64
	UnitTest1 *float64
	UnitTest2 *float64
	UnitTest3 *float64
	IatScore  *float64
}

type AttendanceFields struct {
	AttendancePercent float64
	TotalClasses      *int
	AttendedClasses   *int
}

// ActivitiesPatch carries only the list fields that parsed; nil means
// "leave untouched on update, null on create".
type ActivitiesPatch struct {
	Internships     datatypes.JSON
	Certifications  datatypes.JSON
	Hackathons      datatypes.JSON
	Scholarships    datatypes.JSON
	Sports          datatypes.JSON
	Extracurricular datatypes.JSON
	Ecube           datatypes.JSON
}

// Store is the opaque persistence collaborator. All reconciler writes for
// one upload batch happen inside exactly one RunInTransaction call; the
// tx-scoped Store handed to fn must be used for every operation in it.
type Store interface {
	FindStudentByRollNumber(ctx context.Context, roll string) (*studentModel.StudentProfile, error)
	UpsertAcademicYear(ctx context.Context, studentID uuid.UUID, year int, gpa *float64) (uuid.UUID, error)
	UpsertSubjectMark(ctx context.Context, academicYearID uuid.UUID, subjectName string, fields SubjectMarkFields) error
	UpsertAttendance(ctx context.Context, studentID uuid.UUID, subjectName string, fields AttendanceFields) error
	UpsertActivities(ctx context.Context, studentID uuid.UUID, patch ActivitiesPatch) error
	RunInTransaction(ctx context.Context, fn func(tx Store) error) error
}

/* =========================================================
   GORM implementation
   ========================================================= */

type gormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) RunInTransaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}

func (s *gormStore) FindStudentByRollNumber(ctx context.Context, roll string) (*studentModel.StudentProfile, error) {
	var student studentModel.StudentProfile
	err := s.db.WithContext(ctx).
		First(&student, "student_profile_roll_number = ?", roll).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &student, nil
}

// UpsertAcademicYear is a read-then-write rather than ON CONFLICT because
// the caller needs the row id back to attach subject marks. The batch runs
// in one transaction, so there is no race against itself.
func (s *gormStore) UpsertAcademicYear(ctx context.Context, studentID uuid.UUID, year int, gpa *float64) (uuid.UUID, error) {
	db := s.db.WithContext(ctx)

	var ay studentModel.AcademicYear
	err := db.First(&ay,
		"academic_year_student_id = ? AND academic_year_year = ?", studentID, year).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		ay = studentModel.AcademicYear{
			AcademicYearStudentID: studentID,
			AcademicYearYear:      year,
			AcademicYearGpa:       gpa,
		}
		if err := db.Create(&ay).Error; err != nil {
			return uuid.Nil, err
		}
		return ay.AcademicYearID, nil
	}
	if err != nil {
		return uuid.Nil, err
	}

	// gpa always overwritten, including back to null
	if err := db.Model(&ay).
		Update("academic_year_gpa", gpa).Error; err != nil {
		return uuid.Nil, err
	}
	return ay.AcademicYearID, nil
}

func (s *gormStore) UpsertSubjectMark(ctx context.Context, academicYearID uuid.UUID, subjectName string, fields SubjectMarkFields) error {
	m := studentModel.SubjectMark{
		SubjectMarkAcademicYearID: academicYearID,
		SubjectMarkSubjectName:    subjectName,
		SubjectMarkMarks:          fields.Marks,
		SubjectMarkUnitTest1:      fields.UnitTest1,
		SubjectMarkUnitTest2:      fields.UnitTest2,
		SubjectMarkUnitTest3:      fields.UnitTest3,
		SubjectMarkIatScore:       fields.IatScore,
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "subject_mark_academic_year_id"},
			{Name: "subject_mark_subject_name"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"subject_mark_marks",
			"subject_mark_unit_test1",
			"subject_mark_unit_test2",
			"subject_mark_unit_test3",
			"subject_mark_iat_score",
			"subject_mark_updated_at",
		}),
	}).Create(&m).Error
}

func (s *gormStore) UpsertAttendance(ctx context.Context, studentID uuid.UUID, subjectName string, fields AttendanceFields) error {
	m := studentModel.Attendance{
		AttendanceStudentID:       studentID,
		AttendanceSubjectName:     subjectName,
		AttendancePercent:         fields.AttendancePercent,
		AttendanceTotalClasses:    fields.TotalClasses,
		AttendanceAttendedClasses: fields.AttendedClasses,
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "attendance_student_id"},
			{Name: "attendance_subject_name"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"attendance_percent",
			"attendance_total_classes",
			"attendance_attended_classes",
			"attendance_updated_at",
		}),
	}).Create(&m).Error
}

func (s *gormStore) UpsertActivities(ctx context.Context, studentID uuid.UUID, patch ActivitiesPatch) error {
	db := s.db.WithContext(ctx)

	var existing studentModel.Activities
	err := db.First(&existing, "activities_student_id = ?", studentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		m := studentModel.Activities{
			ActivitiesStudentID:       studentID,
			ActivitiesInternships:     patch.Internships,
			ActivitiesCertifications:  patch.Certifications,
			ActivitiesHackathons:      patch.Hackathons,
			ActivitiesScholarships:    patch.Scholarships,
			ActivitiesSports:          patch.Sports,
			ActivitiesExtracurricular: patch.Extracurricular,
			ActivitiesEcube:           patch.Ecube,
		}
		return db.Create(&m).Error
	}
	if err != nil {
		return err
	}

	updates := map[string]interface{}{}
	if patch.Internships != nil {
		updates["activities_internships"] = patch.Internships
	}
	if patch.Certifications != nil {
		updates["activities_certifications"] = patch.Certifications
	}
	if patch.Hackathons != nil {
		updates["activities_hackathons"] = patch.Hackathons
	}
	if patch.Scholarships != nil {
		updates["activities_scholarships"] = patch.Scholarships
	}
	if patch.Sports != nil {
		updates["activities_sports"] = patch.Sports
	}
	if patch.Extracurricular != nil {
		updates["activities_extracurricular"] = patch.Extracurricular
	}
	if patch.Ecube != nil {
		updates["activities_ecube"] = patch.Ecube
	}
	if len(updates) == 0 {
		return nil
	}
	return db.Model(&existing).Updates(updates).Error
}
