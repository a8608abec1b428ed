// internals/features/reports/service/report_assembler_test.go
package service

import (
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	studentModel "msec_erp_backend/internals/features/students/model"
)

func fp(v float64) *float64 { return &v }
func sp(s string) *string   { return &s }

func demoStudent() *studentModel.StudentProfile {
	return &studentModel.StudentProfile{
		StudentProfileID:         uuid.New(),
		StudentProfileRollNumber: "2022CSE042",
		StudentProfileDepartment: "CSE",
		StudentProfileBatch:      "2022-2026",
		StudentProfileBloodGroup: sp("O+"),
		User: &studentModel.User{
			UserName:  "Priya Krishnan",
			UserEmail: "2022CSE042@student.msec.edu.in",
		},
		AcademicYears: []studentModel.AcademicYear{
			{
				AcademicYearYear: 1,
				AcademicYearGpa:  fp(8.2),
				SubjectMarks: []studentModel.SubjectMark{
					{SubjectMarkSubjectName: "Physics", SubjectMarkMarks: fp(85)},
					{SubjectMarkSubjectName: "Chemistry", SubjectMarkMarks: fp(62)},
					{SubjectMarkSubjectName: "Programming in C", SubjectMarkMarks: fp(45)},
				},
			},
			{AcademicYearYear: 2, AcademicYearGpa: fp(8.6)},
		},
		Attendances: []studentModel.Attendance{
			{AttendanceSubjectName: "Data Structures", AttendancePercent: 91},
			{AttendanceSubjectName: "Digital Electronics", AttendancePercent: 72},
		},
		Activities: &studentModel.Activities{
			ActivitiesInternships:    datatypes.JSON(`[{"company":"Zoho","role":"Intern"}]`),
			ActivitiesCertifications: datatypes.JSON(`["AWS Cloud Practitioner"]`),
			ActivitiesSports:         datatypes.JSON(`[]`),
		},
	}
}

func TestAssembleReportModelHeaderAndPersonalInfo(t *testing.T) {
	doc := AssembleReportModel(demoStudent())

	if doc.Title != "MSEC Academic ERP" {
		t.Errorf("title = %q", doc.Title)
	}
	if doc.Subtitle != "Comprehensive Student Performance Report" {
		t.Errorf("subtitle = %q", doc.Subtitle)
	}

	wantInfo := []LabelValue{
		{"Name", "Priya Krishnan"},
		{"Roll Number", "2022CSE042"},
		{"Department", "CSE"},
		{"Batch", "2022-2026"},
		{"Email", "2022CSE042@student.msec.edu.in"},
		{"Blood Group", "O+"},
		{"Contact", "N/A"},
	}
	if len(doc.PersonalInfo) != len(wantInfo) {
		t.Fatalf("personalInfo = %v", doc.PersonalInfo)
	}
	for i, w := range wantInfo {
		if doc.PersonalInfo[i] != w {
			t.Errorf("personalInfo[%d] = %v, want %v", i, doc.PersonalInfo[i], w)
		}
	}
}

func TestAssembleReportModelPerformanceAndRisk(t *testing.T) {
	doc := AssembleReportModel(demoStudent())

	if doc.Performance.AverageGpa == nil || *doc.Performance.AverageGpa != 8.4 {
		t.Errorf("averageGpa = %v", doc.Performance.AverageGpa)
	}
	if doc.Performance.GpaBand != BandGood {
		t.Errorf("gpaBand = %q", doc.Performance.GpaBand)
	}
	if doc.Performance.Overall == nil || *doc.Performance.Overall != 81.5 {
		t.Errorf("overall = %v", doc.Performance.Overall)
	}
	if doc.Performance.AttendanceBand != BandGood {
		t.Errorf("attendanceBand = %q", doc.Performance.AttendanceBand)
	}

	// healthy student scores 0, so no risk section at all
	if doc.Risk != nil {
		t.Errorf("risk = %+v, want omitted", doc.Risk)
	}
}

func TestAssembleReportModelRiskIncludedWhenScored(t *testing.T) {
	student := demoStudent()
	student.AcademicYears = []studentModel.AcademicYear{
		{AcademicYearYear: 1, AcademicYearGpa: fp(4.2)},
	}
	doc := AssembleReportModel(student)

	if doc.Risk == nil {
		t.Fatal("risk section missing for at-risk student")
	}
	if doc.Risk.Score != 30 || doc.Risk.Level != "medium" {
		t.Errorf("risk = %+v", doc.Risk)
	}
}

func TestAssembleReportModelYearAndAttendanceBlocks(t *testing.T) {
	doc := AssembleReportModel(demoStudent())

	if len(doc.AcademicYears) != 2 {
		t.Fatalf("yearBlocks = %d", len(doc.AcademicYears))
	}
	subjects := doc.AcademicYears[0].Subjects
	if len(subjects) != 3 {
		t.Fatalf("subjects = %d", len(subjects))
	}
	wantBands := []string{BandGood, BandWarn, BandDanger}
	for i, want := range wantBands {
		if subjects[i].Band != want {
			t.Errorf("subjects[%d].Band = %q, want %q", i, subjects[i].Band, want)
		}
	}
	if len(doc.AcademicYears[1].Subjects) != 0 {
		t.Errorf("year 2 should have no subject lines")
	}

	if doc.Attendance == nil {
		t.Fatal("attendance block missing")
	}
	if doc.Attendance.Overall != 81.5 || doc.Attendance.Band != BandGood {
		t.Errorf("attendance = %+v", doc.Attendance)
	}
	if doc.Attendance.Subjects[1].Band != BandWarn {
		t.Errorf("72%% subject band = %q", doc.Attendance.Subjects[1].Band)
	}
}

func TestAssembleReportModelActivities(t *testing.T) {
	doc := AssembleReportModel(demoStudent())

	// only non-empty categories survive, in fixed category order
	if len(doc.Activities) != 2 {
		t.Fatalf("activities = %+v", doc.Activities)
	}
	if doc.Activities[0].Name != "Internships" || doc.Activities[1].Name != "Certifications" {
		t.Errorf("section order = %s, %s", doc.Activities[0].Name, doc.Activities[1].Name)
	}
	// object items render via the preferred field (company here)
	if got := doc.Activities[0].Items[0]; got != "Zoho" {
		t.Errorf("internship item = %q", got)
	}
	if got := doc.Activities[1].Items[0]; got != "AWS Cloud Practitioner" {
		t.Errorf("certification item = %q", got)
	}
}

func TestRenderActivityItemFieldPreference(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"name wins over company", `[{"name":"SIH Finalist","company":"Zoho"}]`, "SIH Finalist"},
		{"title before description", `[{"title":"Gold Medal","description":"Zonal meet"}]`, "Gold Medal"},
		{"event as last resort", `[{"event":"CodeFest"}]`, "CodeFest"},
		{"plain string passes through", `["NPTEL Java"]`, "NPTEL Java"},
		{"unknown object falls back to raw JSON", `[{"foo":"bar"}]`, `{"foo":"bar"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			items := renderActivityItems([]byte(tc.raw))
			if len(items) != 1 || items[0] != tc.want {
				t.Errorf("items = %v, want [%q]", items, tc.want)
			}
		})
	}
}

func TestAssembleReportModelSparseStudent(t *testing.T) {
	student := &studentModel.StudentProfile{
		StudentProfileRollNumber: "2024IT001",
		StudentProfileDepartment: "IT",
		StudentProfileBatch:      "2024-2028",
	}
	doc := AssembleReportModel(student)

	if len(doc.AcademicYears) != 0 {
		t.Errorf("yearBlocks = %v", doc.AcademicYears)
	}
	if doc.Attendance != nil {
		t.Errorf("attendance block present with no records")
	}
	if len(doc.Activities) != 0 {
		t.Errorf("activities = %v", doc.Activities)
	}
	wantRecs := []string{
		"No academic data available",
		"No attendance data available",
	}
	if len(doc.Recommendations) != 2 || doc.Recommendations[0] != wantRecs[0] || doc.Recommendations[1] != wantRecs[1] {
		t.Errorf("recommendations = %v", doc.Recommendations)
	}
}
