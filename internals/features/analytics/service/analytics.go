// internals/features/analytics/service/analytics.go
package service

import (
	"fmt"
	"sort"

	"github.com/bytedance/sonic"

	studentModel "msec_erp_backend/internals/features/students/model"
	helper "msec_erp_backend/internals/helpers"
)

/* =========================================================
   Result types (computed on demand, never persisted)
   ========================================================= */

type TrendPoint struct {
	Year string  `json:"year"`
	Gpa  float64 `json:"gpa"`
}

type PerformanceAnalysis struct {
	Trend          []TrendPoint `json:"trend"`
	TrendDirection string       `json:"trendDirection"`
	AverageGpa     *float64     `json:"averageGpa"`
	Improvement    *float64     `json:"improvement"`
	Recommendation string       `json:"recommendation"`
}

type AttendanceAnalysis struct {
	Overall          float64  `json:"overall"`
	Status           string   `json:"status"`
	ShortageCount    int      `json:"shortageCount"`
	CriticalSubjects []string `json:"criticalSubjects"`
	WarningSubjects  []string `json:"warningSubjects"`
	Recommendation   string   `json:"recommendation"`
}

type RiskAssessment struct {
	Score   int      `json:"score"`
	Level   string   `json:"level"`
	Factors []string `json:"factors"`
}

type StudentInsights struct {
	Performance         PerformanceAnalysis `json:"performance"`
	Attendance          AttendanceAnalysis  `json:"attendance"`
	Risk                RiskAssessment      `json:"risk"`
	Strengths           []string            `json:"strengths"`
	AreasForImprovement []string            `json:"areasForImprovement"`
	OverallStatus       string              `json:"overallStatus"`
}

const (
	TrendImproving = "improving"
	TrendDeclining = "declining"
	TrendStable    = "stable"

	StatusCritical  = "critical"
	StatusWarning   = "warning"
	StatusGood      = "good"
	StatusExcellent = "excellent"

	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"
)

/* =========================================================
   Performance trend
   ========================================================= */

// AnalyzePerformanceTrend derives GPA trend direction over the academic
// years. Direction flips only past a ±0.5 delta between the last two years
// carrying a GPA; smaller movements stay "stable".
func AnalyzePerformanceTrend(academicYears []studentModel.AcademicYear) PerformanceAnalysis {
	if len(academicYears) == 0 {
		return PerformanceAnalysis{
			Trend:          []TrendPoint{},
			TrendDirection: TrendStable,
			Recommendation: "No academic data available",
		}
	}

	sorted := make([]studentModel.AcademicYear, len(academicYears))
	copy(sorted, academicYears)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].AcademicYearYear < sorted[j].AcademicYearYear
	})

	trend := make([]TrendPoint, 0, len(sorted))
	var valid []studentModel.AcademicYear
	for _, y := range sorted {
		gpa := 0.0
		if y.AcademicYearGpa != nil {
			gpa = *y.AcademicYearGpa
			valid = append(valid, y)
		}
		trend = append(trend, TrendPoint{Year: fmt.Sprintf("Year %d", y.AcademicYearYear), Gpa: gpa})
	}

	if len(valid) < 2 {
		res := PerformanceAnalysis{
			Trend:          trend,
			TrendDirection: TrendStable,
			Recommendation: "More data needed for trend analysis",
		}
		if len(valid) == 1 {
			res.AverageGpa = valid[0].AcademicYearGpa
		}
		return res
	}

	latest := *valid[len(valid)-1].AcademicYearGpa
	previous := *valid[len(valid)-2].AcademicYearGpa

	sum := 0.0
	for _, y := range valid {
		sum += *y.AcademicYearGpa
	}
	average := helper.Round2(sum / float64(len(valid)))
	improvement := helper.Round2(latest - previous)

	direction := TrendStable
	if latest-previous > 0.5 {
		direction = TrendImproving
	} else if latest-previous < -0.5 {
		direction = TrendDeclining
	}

	var recommendation string
	switch {
	case direction == TrendImproving:
		recommendation = "Excellent progress! Continue with your current study methods."
	case direction == TrendDeclining:
		recommendation = "Consider seeking academic support and reviewing study strategies."
	case latest < 5.0:
		recommendation = "Focus on improving performance. Consider tutoring or study groups."
	case latest >= 8.0:
		recommendation = "Outstanding performance! Maintain your excellence."
	default:
		recommendation = "Good performance. Keep up the consistent work."
	}

	return PerformanceAnalysis{
		Trend:          trend,
		TrendDirection: direction,
		AverageGpa:     &average,
		Improvement:    &improvement,
		Recommendation: recommendation,
	}
}

/* =========================================================
   Attendance
   ========================================================= */

// AnalyzeAttendance summarizes per-subject attendance. Subjects below 60%
// are critical, [60,75) is the regulatory shortage band.
func AnalyzeAttendance(attendances []studentModel.Attendance) AttendanceAnalysis {
	if len(attendances) == 0 {
		return AttendanceAnalysis{
			Overall:          0,
			Status:           StatusCritical,
			CriticalSubjects: []string{},
			WarningSubjects:  []string{},
			Recommendation:   "No attendance data available",
		}
	}

	sum := 0.0
	critical := []string{}
	warning := []string{}
	for _, a := range attendances {
		sum += a.AttendancePercent
		if a.AttendancePercent < 60 {
			critical = append(critical, a.AttendanceSubjectName)
		} else if a.AttendancePercent < 75 {
			warning = append(warning, a.AttendanceSubjectName)
		}
	}
	overall := helper.Round2(sum / float64(len(attendances)))

	var status, recommendation string
	switch {
	case overall < 60:
		status = StatusCritical
		recommendation = "URGENT: Your attendance is critically low. Risk of academic action. Attend all remaining classes."
	case overall < 75:
		status = StatusWarning
		recommendation = "WARNING: You are below 75% attendance. Improve immediately to avoid restrictions."
	case overall < 85:
		status = StatusGood
		recommendation = "Attendance is satisfactory. Maintain consistency."
	default:
		status = StatusExcellent
		recommendation = "Excellent attendance record! Keep it up."
	}

	return AttendanceAnalysis{
		Overall:          overall,
		Status:           status,
		ShortageCount:    len(critical) + len(warning),
		CriticalSubjects: critical,
		WarningSubjects:  warning,
		Recommendation:   recommendation,
	}
}

/* =========================================================
   Risk score
   ========================================================= */

// CalculateRiskScore composes a 0-100 score from three capped factors:
// latest GPA (max 40), average attendance (max 40), GPA decline (max 20).
func CalculateRiskScore(student *studentModel.StudentProfile) RiskAssessment {
	score := 0
	factors := []string{}

	years := make([]studentModel.AcademicYear, len(student.AcademicYears))
	copy(years, student.AcademicYears)
	sort.Slice(years, func(i, j int) bool {
		return years[i].AcademicYearYear < years[j].AcademicYearYear
	})

	// GPA factor
	if len(years) > 0 {
		if latest := years[len(years)-1].AcademicYearGpa; latest != nil {
			switch {
			case *latest < 4.0:
				score += 40
				factors = append(factors, "Very low GPA")
			case *latest < 5.0:
				score += 30
				factors = append(factors, "Low GPA")
			case *latest < 6.0:
				score += 15
				factors = append(factors, "Below average GPA")
			}
		}
	}

	// Attendance factor
	if len(student.Attendances) > 0 {
		sum := 0.0
		for _, a := range student.Attendances {
			sum += a.AttendancePercent
		}
		avg := sum / float64(len(student.Attendances))
		switch {
		case avg < 60:
			score += 40
			factors = append(factors, "Critical attendance shortage")
		case avg < 75:
			score += 25
			factors = append(factors, "Attendance below required 75%")
		case avg < 80:
			score += 10
			factors = append(factors, "Low attendance")
		}
	}

	// Decline factor
	var valid []float64
	for _, y := range years {
		if y.AcademicYearGpa != nil {
			valid = append(valid, *y.AcademicYearGpa)
		}
	}
	if len(valid) >= 2 {
		decline := valid[len(valid)-2] - valid[len(valid)-1]
		if decline > 1.0 {
			score += 20
			factors = append(factors, "GPA declining rapidly")
		} else if decline > 0.5 {
			score += 10
			factors = append(factors, "GPA declining")
		}
	}

	level := RiskLow
	if score >= 60 {
		level = RiskHigh
	} else if score >= 30 {
		level = RiskMedium
	}

	return RiskAssessment{Score: score, Level: level, Factors: factors}
}

/* =========================================================
   Aggregated insights
   ========================================================= */

// GenerateStudentInsights runs all three analyses and derives the
// qualitative strengths / improvement lists used by the dashboards.
func GenerateStudentInsights(student *studentModel.StudentProfile) StudentInsights {
	performance := AnalyzePerformanceTrend(student.AcademicYears)
	attendance := AnalyzeAttendance(student.Attendances)
	risk := CalculateRiskScore(student)

	strengths := []string{}
	improvements := []string{}

	if performance.AverageGpa != nil && *performance.AverageGpa >= 8.0 {
		strengths = append(strengths, "Excellent academic performance")
	}
	if attendance.Overall >= 90 {
		strengths = append(strengths, "Outstanding attendance record")
	}
	if performance.TrendDirection == TrendImproving {
		strengths = append(strengths, "Consistent academic improvement")
	}
	if student.Activities != nil {
		if jsonListLen(student.Activities.ActivitiesCertifications) > 0 {
			strengths = append(strengths, "Pursuing additional certifications")
		}
		if jsonListLen(student.Activities.ActivitiesInternships) > 0 {
			strengths = append(strengths, "Gaining industry experience")
		}
	}

	if performance.AverageGpa != nil && *performance.AverageGpa < 6.0 {
		improvements = append(improvements, "Academic performance needs attention")
	}
	if attendance.Overall < 75 {
		improvements = append(improvements, "Attendance below minimum requirement")
	}
	if performance.TrendDirection == TrendDeclining {
		improvements = append(improvements, "Address declining academic trend")
	}
	if n := len(attendance.CriticalSubjects); n > 0 {
		improvements = append(improvements, fmt.Sprintf("Critical attendance in %d subject(s)", n))
	}

	overallStatus := "on_track"
	switch risk.Level {
	case RiskHigh:
		overallStatus = "needs_intervention"
	case RiskMedium:
		overallStatus = "monitoring_required"
	}

	return StudentInsights{
		Performance:         performance,
		Attendance:          attendance,
		Risk:                risk,
		Strengths:           strengths,
		AreasForImprovement: improvements,
		OverallStatus:       overallStatus,
	}
}

func jsonListLen(raw []byte) int {
	if len(raw) == 0 {
		return 0
	}
	var items []interface{}
	if err := sonic.Unmarshal(raw, &items); err != nil {
		return 0
	}
	return len(items)
}
