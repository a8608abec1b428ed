// internals/features/students/dto/student_dto_test.go
package dto

import (
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"

	studentModel "msec_erp_backend/internals/features/students/model"
)

func fp(v float64) *float64 { return &v }

func TestStudentListQueryValidation(t *testing.T) {
	validate := validator.New()

	cases := []struct {
		name  string
		query StudentListQuery
		ok    bool
	}{
		{"empty query", StudentListQuery{}, true},
		{"full valid query", StudentListQuery{
			Batch: "2022-2026", Department: "CSE", Search: "priya",
			SortBy: "rollNumber", SortOrder: "desc",
		}, true},
		{"uppercase sort order", StudentListQuery{SortOrder: "DESC"}, true},
		{"unknown sort column", StudentListQuery{SortBy: "user_password"}, false},
		{"garbage sort order", StudentListQuery{SortOrder: "sideways"}, false},
		{"oversized search", StudentListQuery{Search: strings.Repeat("x", 121)}, false},
		{"oversized batch", StudentListQuery{Batch: strings.Repeat("9", 21)}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validate.Struct(&tc.query)
			if tc.ok && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
			if !tc.ok && err == nil {
				t.Error("expected validation error, got none")
			}
		})
	}
}

func TestFromStudentListRiskStatus(t *testing.T) {
	cases := []struct {
		name    string
		student studentModel.StudentProfile
		want    string
	}{
		{
			name: "healthy",
			student: studentModel.StudentProfile{
				AcademicYears: []studentModel.AcademicYear{{AcademicYearYear: 1, AcademicYearGpa: fp(8.0)}},
				Attendances:   []studentModel.Attendance{{AttendancePercent: 90}},
			},
			want: "Normal",
		},
		{
			name: "attendance only",
			student: studentModel.StudentProfile{
				AcademicYears: []studentModel.AcademicYear{{AcademicYearYear: 1, AcademicYearGpa: fp(7.0)}},
				Attendances:   []studentModel.Attendance{{AttendancePercent: 70}},
			},
			want: "Attendance Risk",
		},
		{
			name: "performance only",
			student: studentModel.StudentProfile{
				AcademicYears: []studentModel.AcademicYear{{AcademicYearYear: 1, AcademicYearGpa: fp(4.5)}},
				Attendances:   []studentModel.Attendance{{AttendancePercent: 90}},
			},
			want: "Performance Risk",
		},
		{
			name: "both",
			student: studentModel.StudentProfile{
				AcademicYears: []studentModel.AcademicYear{{AcademicYearYear: 1, AcademicYearGpa: fp(4.5)}},
				Attendances:   []studentModel.Attendance{{AttendancePercent: 70}},
			},
			want: "High Risk",
		},
		{
			name:    "no data",
			student: studentModel.StudentProfile{},
			want:    "Normal",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FromStudentList(tc.student); got.RiskStatus != tc.want {
				t.Errorf("riskStatus = %q, want %q", got.RiskStatus, tc.want)
			}
		})
	}
}

func TestFromStudentListLatestGpaByYear(t *testing.T) {
	// year 3 is latest even when stored out of order
	s := studentModel.StudentProfile{
		AcademicYears: []studentModel.AcademicYear{
			{AcademicYearYear: 3, AcademicYearGpa: fp(6.1)},
			{AcademicYearYear: 1, AcademicYearGpa: fp(9.0)},
			{AcademicYearYear: 2, AcademicYearGpa: fp(8.0)},
		},
	}
	got := FromStudentList(s)
	if got.Gpa == nil || *got.Gpa != 6.1 {
		t.Errorf("gpa = %v, want latest year's 6.1", got.Gpa)
	}
}
