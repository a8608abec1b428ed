// internals/features/students/model/activities_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/* =========================
   Model: activities
   ========================= */

// Activities holds at most one row per student. The seven list fields are
// free-form JSON arrays: items are either plain strings or objects with no
// fixed schema ("company", "event", "role", ...), so they stay jsonb and are
// interpreted only at render time.
type Activities struct {
	ActivitiesID        uuid.UUID `json:"activities_id" gorm:"column:activities_id;type:uuid;primaryKey;default:gen_random_uuid()"`
	ActivitiesStudentID uuid.UUID `json:"activities_student_id" gorm:"column:activities_student_id;type:uuid;not null;uniqueIndex;constraint:OnDelete:CASCADE"`

	ActivitiesInternships     datatypes.JSON `json:"activities_internships,omitempty" gorm:"column:activities_internships;type:jsonb"`
	ActivitiesCertifications  datatypes.JSON `json:"activities_certifications,omitempty" gorm:"column:activities_certifications;type:jsonb"`
	ActivitiesHackathons      datatypes.JSON `json:"activities_hackathons,omitempty" gorm:"column:activities_hackathons;type:jsonb"`
	ActivitiesScholarships    datatypes.JSON `json:"activities_scholarships,omitempty" gorm:"column:activities_scholarships;type:jsonb"`
	ActivitiesSports          datatypes.JSON `json:"activities_sports,omitempty" gorm:"column:activities_sports;type:jsonb"`
	ActivitiesExtracurricular datatypes.JSON `json:"activities_extracurricular,omitempty" gorm:"column:activities_extracurricular;type:jsonb"`
	ActivitiesEcube           datatypes.JSON `json:"activities_ecube,omitempty" gorm:"column:activities_ecube;type:jsonb"`

	ActivitiesCreatedAt time.Time `json:"activities_created_at" gorm:"column:activities_created_at;type:timestamptz;not null;default:now()"`
	ActivitiesUpdatedAt time.Time `json:"activities_updated_at" gorm:"column:activities_updated_at;type:timestamptz;not null;default:now()"`
}

func (Activities) TableName() string { return "activities" }

func (a *Activities) BeforeUpdate(tx *gorm.DB) error {
	a.ActivitiesUpdatedAt = time.Now().UTC()
	return nil
}

// ActivityCategory pairs a display name with its raw jsonb list.
type ActivityCategory struct {
	Key   string
	Name  string
	Items datatypes.JSON
}

// Categories returns the seven lists in report order.
func (a *Activities) Categories() []ActivityCategory {
	if a == nil {
		return nil
	}
	return []ActivityCategory{
		{Key: "internships", Name: "Internships", Items: a.ActivitiesInternships},
		{Key: "certifications", Name: "Certifications", Items: a.ActivitiesCertifications},
		{Key: "hackathons", Name: "Hackathons", Items: a.ActivitiesHackathons},
		{Key: "scholarships", Name: "Scholarships", Items: a.ActivitiesScholarships},
		{Key: "sports", Name: "Sports", Items: a.ActivitiesSports},
		{Key: "extracurricular", Name: "Extra-curricular", Items: a.ActivitiesExtracurricular},
		{Key: "ecube", Name: "E-Cube", Items: a.ActivitiesEcube},
	}
}
