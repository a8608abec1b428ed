// internals/features/students/dto/student_dto.go
package dto

import (
	"github.com/google/uuid"

	studentModel "msec_erp_backend/internals/features/students/model"
	helper "msec_erp_backend/internals/helpers"
)

/* =========================================================
   1) ADMIN LIST / DASHBOARD
   ========================================================= */

// StudentListQuery carries the roster list filters. Parsed from the query
// string and validated before any SQL is built; sort fields are whitelisted
// here so the controller never interpolates raw input.
type StudentListQuery struct {
	Batch      string `query:"batch" validate:"omitempty,max=20"`
	Department string `query:"department" validate:"omitempty,max=40"`
	Search     string `query:"search" validate:"omitempty,max=120"`
	SortBy     string `query:"sort_by" validate:"omitempty,oneof=rollNumber department batch createdAt"`
	SortOrder  string `query:"sort_order" validate:"omitempty,oneof=asc desc ASC DESC"`
}

type BatchCount struct {
	Batch string `json:"batch"`
	Count int64  `json:"count"`
}

type DashboardStatsResponse struct {
	TotalStudents           int64        `json:"totalStudents"`
	StudentsByBatch         []BatchCount `json:"studentsByBatch"`
	AttendanceShortageCount int64        `json:"attendanceShortageCount"`
	PerformanceRiskCount    int64        `json:"performanceRiskCount"`
}

type StudentListItem struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	RollNumber        string    `json:"rollNumber"`
	Department        string    `json:"department"`
	Batch             string    `json:"batch"`
	Gpa               *float64  `json:"gpa"`
	AttendancePercent *float64  `json:"attendancePercent"`
	RiskStatus        string    `json:"riskStatus"`
}

// FromStudentList derives the list row, including the coarse risk flag the
// admin table sorts by.
func FromStudentList(s studentModel.StudentProfile) StudentListItem {
	item := StudentListItem{
		ID:         s.StudentProfileID,
		RollNumber: s.StudentProfileRollNumber,
		Department: s.StudentProfileDepartment,
		Batch:      s.StudentProfileBatch,
	}
	if s.User != nil {
		item.Name = s.User.UserName
		item.Email = s.User.UserEmail
	}

	if len(s.Attendances) > 0 {
		sum := 0.0
		for _, a := range s.Attendances {
			sum += a.AttendancePercent
		}
		avg := helper.Round2(sum / float64(len(s.Attendances)))
		item.AttendancePercent = &avg
	}

	item.Gpa = latestGpa(s.AcademicYears)
	item.RiskStatus = riskStatus(item.AttendancePercent, item.Gpa)
	return item
}

func latestGpa(years []studentModel.AcademicYear) *float64 {
	var latest *studentModel.AcademicYear
	for i := range years {
		if latest == nil || years[i].AcademicYearYear > latest.AcademicYearYear {
			latest = &years[i]
		}
	}
	if latest == nil {
		return nil
	}
	return latest.AcademicYearGpa
}

func riskStatus(avgAttendance, gpa *float64) string {
	attRisk := avgAttendance != nil && *avgAttendance < 75
	perfRisk := gpa != nil && *gpa < 5.0
	switch {
	case attRisk && perfRisk:
		return "High Risk"
	case perfRisk:
		return "Performance Risk"
	case attRisk:
		return "Attendance Risk"
	default:
		return "Normal"
	}
}

/* =========================================================
   2) STUDENT SELF PROFILE
   ========================================================= */

type ProfileBlock struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	RollNumber string    `json:"rollNumber"`
	Department string    `json:"department"`
	Batch      string    `json:"batch"`
	BloodGroup *string   `json:"bloodGroup"`
	Contact    *string   `json:"contact"`
}

type SubjectMarksBlock struct {
	SubjectName string   `json:"subjectName"`
	Marks       *float64 `json:"marks"`
	UnitTest1   *float64 `json:"unitTest1"`
	UnitTest2   *float64 `json:"unitTest2"`
	UnitTest3   *float64 `json:"unitTest3"`
	IatScore    *float64 `json:"iatScore"`
}

type AcademicYearBlock struct {
	Year     int                 `json:"year"`
	Gpa      *float64            `json:"gpa"`
	Subjects []SubjectMarksBlock `json:"subjects"`
}

type AttendanceSubjectBlock struct {
	SubjectName       string  `json:"subjectName"`
	AttendancePercent float64 `json:"attendancePercent"`
	TotalClasses      *int    `json:"totalClasses"`
	AttendedClasses   *int    `json:"attendedClasses"`
}

type AttendanceSummaryBlock struct {
	Overall  *float64                 `json:"overall"`
	Subjects []AttendanceSubjectBlock `json:"subjects"`
}

type StudentProfileResponse struct {
	Profile    ProfileBlock            `json:"profile"`
	Academics  []AcademicYearBlock     `json:"academics"`
	Attendance AttendanceSummaryBlock  `json:"attendance"`
	Activities *studentModel.Activities `json:"activities"`
}

func FromStudentProfile(s *studentModel.StudentProfile) StudentProfileResponse {
	resp := StudentProfileResponse{
		Profile: ProfileBlock{
			ID:         s.StudentProfileID,
			RollNumber: s.StudentProfileRollNumber,
			Department: s.StudentProfileDepartment,
			Batch:      s.StudentProfileBatch,
			BloodGroup: s.StudentProfileBloodGroup,
			Contact:    s.StudentProfileContact,
		},
		Academics:  make([]AcademicYearBlock, 0, len(s.AcademicYears)),
		Activities: s.Activities,
	}
	if s.User != nil {
		resp.Profile.Name = s.User.UserName
		resp.Profile.Email = s.User.UserEmail
	}

	for _, y := range s.AcademicYears {
		yb := AcademicYearBlock{
			Year:     y.AcademicYearYear,
			Gpa:      y.AcademicYearGpa,
			Subjects: make([]SubjectMarksBlock, 0, len(y.SubjectMarks)),
		}
		for _, m := range y.SubjectMarks {
			yb.Subjects = append(yb.Subjects, SubjectMarksBlock{
				SubjectName: m.SubjectMarkSubjectName,
				Marks:       m.SubjectMarkMarks,
				UnitTest1:   m.SubjectMarkUnitTest1,
				UnitTest2:   m.SubjectMarkUnitTest2,
				UnitTest3:   m.SubjectMarkUnitTest3,
				IatScore:    m.SubjectMarkIatScore,
			})
		}
		resp.Academics = append(resp.Academics, yb)
	}

	resp.Attendance.Subjects = make([]AttendanceSubjectBlock, 0, len(s.Attendances))
	if len(s.Attendances) > 0 {
		sum := 0.0
		for _, a := range s.Attendances {
			sum += a.AttendancePercent
			resp.Attendance.Subjects = append(resp.Attendance.Subjects, AttendanceSubjectBlock{
				SubjectName:       a.AttendanceSubjectName,
				AttendancePercent: a.AttendancePercent,
				TotalClasses:      a.AttendanceTotalClasses,
				AttendedClasses:   a.AttendanceAttendedClasses,
			})
		}
		overall := helper.Round2(sum / float64(len(s.Attendances)))
		resp.Attendance.Overall = &overall
	}

	return resp
}
