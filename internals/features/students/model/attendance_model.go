// internals/features/students/model/attendance_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================
   Model: attendances
   ========================= */

// Attendance is unique per (student, subject); re-uploads overwrite.
type Attendance struct {
	AttendanceID        uuid.UUID `json:"attendance_id" gorm:"column:attendance_id;type:uuid;primaryKey;default:gen_random_uuid()"`
	AttendanceStudentID uuid.UUID `json:"attendance_student_id" gorm:"column:attendance_student_id;type:uuid;not null;uniqueIndex:uq_attendances_student_subject;constraint:OnDelete:CASCADE"`

	AttendanceSubjectName string  `json:"attendance_subject_name" gorm:"column:attendance_subject_name;type:varchar(120);not null;uniqueIndex:uq_attendances_student_subject"`
	AttendancePercent     float64 `json:"attendance_percent" gorm:"column:attendance_percent;type:numeric(5,2);not null;check:attendance_percent BETWEEN 0 AND 100"`
	AttendanceTotalClasses    *int `json:"attendance_total_classes,omitempty" gorm:"column:attendance_total_classes"`
	AttendanceAttendedClasses *int `json:"attendance_attended_classes,omitempty" gorm:"column:attendance_attended_classes"`

	AttendanceCreatedAt time.Time `json:"attendance_created_at" gorm:"column:attendance_created_at;type:timestamptz;not null;default:now()"`
	AttendanceUpdatedAt time.Time `json:"attendance_updated_at" gorm:"column:attendance_updated_at;type:timestamptz;not null;default:now()"`
}

func (Attendance) TableName() string { return "attendances" }

func (a *Attendance) BeforeUpdate(tx *gorm.DB) error {
	a.AttendanceUpdatedAt = time.Now().UTC()
	return nil
}
