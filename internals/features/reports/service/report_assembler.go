// internals/features/reports/service/report_assembler.go
package service

import (
	"time"

	"github.com/bytedance/sonic"

	analytics "msec_erp_backend/internals/features/analytics/service"
	studentModel "msec_erp_backend/internals/features/students/model"
	helper "msec_erp_backend/internals/helpers"
)

/* =========================================================
   Document model consumed by the external PDF renderer.
   Block order is fixed; the renderer draws what it gets.
   ========================================================= */

const (
	BandGood   = "good"
	BandWarn   = "warning"
	BandDanger = "danger"
)

type LabelValue struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type PerformanceSummaryBlock struct {
	AverageGpa     *float64 `json:"averageGpa"`
	GpaBand        string   `json:"gpaBand,omitempty"`
	TrendDirection string   `json:"trendDirection"`
	RecentChange   *float64 `json:"recentChange"`
	Overall        *float64 `json:"overallAttendance"`
	Status         string   `json:"attendanceStatus,omitempty"`
	AttendanceBand string   `json:"attendanceBand,omitempty"`
}

type RiskBlock struct {
	Score   int      `json:"score"`
	Level   string   `json:"level"`
	Factors []string `json:"factors"`
}

type SubjectLine struct {
	SubjectName string   `json:"subjectName"`
	Marks       *float64 `json:"marks"`
	Band        string   `json:"band,omitempty"`
}

type YearBlock struct {
	Year     int           `json:"year"`
	Gpa      *float64      `json:"gpa"`
	Subjects []SubjectLine `json:"subjects"`
}

type AttendanceLine struct {
	SubjectName string  `json:"subjectName"`
	Percent     float64 `json:"percent"`
	Band        string  `json:"band"`
}

type AttendanceBlock struct {
	Overall  float64          `json:"overall"`
	Band     string           `json:"band"`
	Subjects []AttendanceLine `json:"subjects"`
}

type ActivitySection struct {
	Name  string   `json:"name"`
	Items []string `json:"items"`
}

type ReportDocument struct {
	Title           string                  `json:"title"`
	Subtitle        string                  `json:"subtitle"`
	GeneratedAt     time.Time               `json:"generatedAt"`
	PersonalInfo    []LabelValue            `json:"personalInfo"`
	Performance     PerformanceSummaryBlock `json:"performance"`
	Risk            *RiskBlock              `json:"risk,omitempty"`
	AcademicYears   []YearBlock             `json:"academicYears"`
	Attendance      *AttendanceBlock        `json:"attendance,omitempty"`
	Activities      []ActivitySection       `json:"activities"`
	Recommendations []string                `json:"recommendations"`
}

/* =========================================================
   Assembly
   ========================================================= */

// AssembleReportModel builds the ordered report document for one student.
// It expects a fully loaded profile (user, academic years with subject
// marks, attendances, activities).
func AssembleReportModel(student *studentModel.StudentProfile) ReportDocument {
	perf := analytics.AnalyzePerformanceTrend(student.AcademicYears)
	att := analytics.AnalyzeAttendance(student.Attendances)
	risk := analytics.CalculateRiskScore(student)

	doc := ReportDocument{
		Title:       "MSEC Academic ERP",
		Subtitle:    "Comprehensive Student Performance Report",
		GeneratedAt: time.Now(),
	}

	doc.PersonalInfo = personalInfo(student)
	doc.Performance = performanceSummary(student, perf, att)

	// risk section only when something actually scored
	if risk.Score > 0 {
		doc.Risk = &RiskBlock{Score: risk.Score, Level: risk.Level, Factors: risk.Factors}
	}

	doc.AcademicYears = yearBlocks(student.AcademicYears)

	if len(student.Attendances) > 0 {
		doc.Attendance = attendanceBlock(student.Attendances)
	}

	doc.Activities = activitySections(student.Activities)
	doc.Recommendations = []string{perf.Recommendation, att.Recommendation}

	return doc
}

func personalInfo(student *studentModel.StudentProfile) []LabelValue {
	name, email := "", ""
	if student.User != nil {
		name = student.User.UserName
		email = student.User.UserEmail
	}
	return []LabelValue{
		{Label: "Name", Value: name},
		{Label: "Roll Number", Value: student.StudentProfileRollNumber},
		{Label: "Department", Value: student.StudentProfileDepartment},
		{Label: "Batch", Value: student.StudentProfileBatch},
		{Label: "Email", Value: email},
		{Label: "Blood Group", Value: orNA(student.StudentProfileBloodGroup)},
		{Label: "Contact", Value: orNA(student.StudentProfileContact)},
	}
}

func performanceSummary(student *studentModel.StudentProfile, perf analytics.PerformanceAnalysis, att analytics.AttendanceAnalysis) PerformanceSummaryBlock {
	block := PerformanceSummaryBlock{
		AverageGpa:     perf.AverageGpa,
		TrendDirection: perf.TrendDirection,
		RecentChange:   perf.Improvement,
	}
	if perf.AverageGpa != nil {
		block.GpaBand = gpaBand(*perf.AverageGpa)
	}
	if len(student.Attendances) > 0 {
		overall := att.Overall
		block.Overall = &overall
		block.Status = att.Status
		block.AttendanceBand = attendanceBand(overall)
	}
	return block
}

func yearBlocks(years []studentModel.AcademicYear) []YearBlock {
	blocks := make([]YearBlock, 0, len(years))
	for _, y := range years {
		yb := YearBlock{
			Year:     y.AcademicYearYear,
			Gpa:      y.AcademicYearGpa,
			Subjects: make([]SubjectLine, 0, len(y.SubjectMarks)),
		}
		for _, m := range y.SubjectMarks {
			line := SubjectLine{SubjectName: m.SubjectMarkSubjectName, Marks: m.SubjectMarkMarks}
			if m.SubjectMarkMarks != nil {
				line.Band = marksBand(*m.SubjectMarkMarks)
			}
			yb.Subjects = append(yb.Subjects, line)
		}
		blocks = append(blocks, yb)
	}
	return blocks
}

func attendanceBlock(attendances []studentModel.Attendance) *AttendanceBlock {
	sum := 0.0
	lines := make([]AttendanceLine, 0, len(attendances))
	for _, a := range attendances {
		sum += a.AttendancePercent
		lines = append(lines, AttendanceLine{
			SubjectName: a.AttendanceSubjectName,
			Percent:     a.AttendancePercent,
			Band:        attendanceBand(a.AttendancePercent),
		})
	}
	overall := helper.Round2(sum / float64(len(attendances)))
	return &AttendanceBlock{
		Overall:  overall,
		Band:     attendanceBand(overall),
		Subjects: lines,
	}
}

// activitySections keeps only non-empty categories, rendering each item to
// display text.
func activitySections(activities *studentModel.Activities) []ActivitySection {
	sections := []ActivitySection{}
	for _, cat := range activities.Categories() {
		items := renderActivityItems(cat.Items)
		if len(items) == 0 {
			continue
		}
		sections = append(sections, ActivitySection{Name: cat.Name, Items: items})
	}
	return sections
}

// renderActivityItems decodes a jsonb list: string items pass through,
// object items use the first present of name/title/description/company/
// event, anything else falls back to its raw JSON.
func renderActivityItems(raw []byte) []string {
	if len(raw) == 0 {
		return nil
	}
	var items []interface{}
	if err := sonic.Unmarshal(raw, &items); err != nil {
		return nil
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case string:
			out = append(out, v)
		case map[string]interface{}:
			out = append(out, renderStructuredItem(v))
		default:
			out = append(out, rawJSON(item))
		}
	}
	return out
}

var itemFieldPreference = []string{"name", "title", "description", "company", "event"}

func renderStructuredItem(obj map[string]interface{}) string {
	for _, field := range itemFieldPreference {
		if s, ok := obj[field].(string); ok && s != "" {
			return s
		}
	}
	return rawJSON(obj)
}

func rawJSON(v interface{}) string {
	b, err := sonic.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

func orNA(s *string) string {
	if s == nil || *s == "" {
		return "N/A"
	}
	return *s
}

/* =========================================================
   Color banding (same thresholds the analytics statuses use)
   ========================================================= */

func attendanceBand(percent float64) string {
	switch {
	case percent < 60:
		return BandDanger
	case percent < 75:
		return BandWarn
	default:
		return BandGood
	}
}

func gpaBand(gpa float64) string {
	switch {
	case gpa >= 8:
		return BandGood
	case gpa >= 6:
		return BandWarn
	default:
		return BandDanger
	}
}

func marksBand(marks float64) string {
	switch {
	case marks >= 80:
		return BandGood
	case marks >= 60:
		return BandWarn
	default:
		return BandDanger
	}
}
