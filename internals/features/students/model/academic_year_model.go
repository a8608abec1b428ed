// internals/features/students/model/academic_year_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================
   Model: academic_years
   ========================= */

// AcademicYear holds one program year (1..4) of a student, unique per
// (student, year). The range is enforced at upload validation, the DB
// constraint is the backstop.
type AcademicYear struct {
	AcademicYearID        uuid.UUID `json:"academic_year_id" gorm:"column:academic_year_id;type:uuid;primaryKey;default:gen_random_uuid()"`
	AcademicYearStudentID uuid.UUID `json:"academic_year_student_id" gorm:"column:academic_year_student_id;type:uuid;not null;uniqueIndex:uq_academic_years_student_year;constraint:OnDelete:CASCADE"`

	AcademicYearYear int      `json:"academic_year_year" gorm:"column:academic_year_year;not null;uniqueIndex:uq_academic_years_student_year;check:academic_year_year BETWEEN 1 AND 4"`
	AcademicYearGpa  *float64 `json:"academic_year_gpa,omitempty" gorm:"column:academic_year_gpa;type:numeric(4,2)"`

	AcademicYearCreatedAt time.Time `json:"academic_year_created_at" gorm:"column:academic_year_created_at;type:timestamptz;not null;default:now()"`
	AcademicYearUpdatedAt time.Time `json:"academic_year_updated_at" gorm:"column:academic_year_updated_at;type:timestamptz;not null;default:now()"`

	SubjectMarks []SubjectMark `json:"subject_marks,omitempty" gorm:"foreignKey:SubjectMarkAcademicYearID;references:AcademicYearID"`
}

func (AcademicYear) TableName() string { return "academic_years" }

func (a *AcademicYear) BeforeUpdate(tx *gorm.DB) error {
	a.AcademicYearUpdatedAt = time.Now().UTC()
	return nil
}

/* =========================
   Model: subject_marks
   ========================= */

// SubjectMark is unique per (academic year, subject); re-uploads overwrite.
type SubjectMark struct {
	SubjectMarkID             uuid.UUID `json:"subject_mark_id" gorm:"column:subject_mark_id;type:uuid;primaryKey;default:gen_random_uuid()"`
	SubjectMarkAcademicYearID uuid.UUID `json:"subject_mark_academic_year_id" gorm:"column:subject_mark_academic_year_id;type:uuid;not null;uniqueIndex:uq_subject_marks_year_subject;constraint:OnDelete:CASCADE"`

	SubjectMarkSubjectName string   `json:"subject_mark_subject_name" gorm:"column:subject_mark_subject_name;type:varchar(120);not null;uniqueIndex:uq_subject_marks_year_subject"`
	SubjectMarkMarks       *float64 `json:"subject_mark_marks,omitempty" gorm:"column:subject_mark_marks;type:numeric(6,2)"`
	SubjectMarkUnitTest1   *float64 `json:"subject_mark_unit_test1,omitempty" gorm:"column:subject_mark_unit_test1;type:numeric(6,2)"`
	SubjectMarkUnitTest2   *float64 `json:"subject_mark_unit_test2,omitempty" gorm:"column:subject_mark_unit_test2;type:numeric(6,2)"`
	SubjectMarkUnitTest3   *float64 `json:"subject_mark_unit_test3,omitempty" gorm:"column:subject_mark_unit_test3;type:numeric(6,2)"`
	SubjectMarkIatScore    *float64 `json:"subject_mark_iat_score,omitempty" gorm:"column:subject_mark_iat_score;type:numeric(6,2)"`

	SubjectMarkCreatedAt time.Time `json:"subject_mark_created_at" gorm:"column:subject_mark_created_at;type:timestamptz;not null;default:now()"`
	SubjectMarkUpdatedAt time.Time `json:"subject_mark_updated_at" gorm:"column:subject_mark_updated_at;type:timestamptz;not null;default:now()"`
}

func (SubjectMark) TableName() string { return "subject_marks" }

func (m *SubjectMark) BeforeUpdate(tx *gorm.DB) error {
	m.SubjectMarkUpdatedAt = time.Now().UTC()
	return nil
}
