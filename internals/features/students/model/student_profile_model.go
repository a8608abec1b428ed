// internals/features/students/model/student_profile_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================
   Model: student_profiles
   ========================= */

// StudentProfile is the roster identity. The roll number is the immutable
// business key every spreadsheet upload reconciles against; profiles are
// created by roster provisioning only, never by uploads.
type StudentProfile struct {
	StudentProfileID     uuid.UUID `json:"student_profile_id" gorm:"column:student_profile_id;type:uuid;primaryKey;default:gen_random_uuid()"`
	StudentProfileUserID uuid.UUID `json:"student_profile_user_id" gorm:"column:student_profile_user_id;type:uuid;not null;uniqueIndex;constraint:OnDelete:CASCADE"`

	StudentProfileRollNumber string  `json:"student_profile_roll_number" gorm:"column:student_profile_roll_number;type:varchar(40);not null;uniqueIndex"`
	StudentProfileDepartment string  `json:"student_profile_department" gorm:"column:student_profile_department;type:varchar(40);not null"`
	StudentProfileBatch      string  `json:"student_profile_batch" gorm:"column:student_profile_batch;type:varchar(20);not null"`
	StudentProfileBloodGroup *string `json:"student_profile_blood_group,omitempty" gorm:"column:student_profile_blood_group;type:varchar(5)"`
	StudentProfileContact    *string `json:"student_profile_contact,omitempty" gorm:"column:student_profile_contact;type:varchar(20)"`

	StudentProfileCreatedAt time.Time `json:"student_profile_created_at" gorm:"column:student_profile_created_at;type:timestamptz;not null;default:now()"`
	StudentProfileUpdatedAt time.Time `json:"student_profile_updated_at" gorm:"column:student_profile_updated_at;type:timestamptz;not null;default:now()"`

	User          *User          `json:"user,omitempty" gorm:"foreignKey:StudentProfileUserID;references:UserID"`
	AcademicYears []AcademicYear `json:"academic_years,omitempty" gorm:"foreignKey:AcademicYearStudentID;references:StudentProfileID"`
	Attendances   []Attendance   `json:"attendances,omitempty" gorm:"foreignKey:AttendanceStudentID;references:StudentProfileID"`
	Activities    *Activities    `json:"activities,omitempty" gorm:"foreignKey:ActivitiesStudentID;references:StudentProfileID"`
}

func (StudentProfile) TableName() string { return "student_profiles" }

func (s *StudentProfile) BeforeUpdate(tx *gorm.DB) error {
	s.StudentProfileUpdatedAt = time.Now().UTC()
	return nil
}
