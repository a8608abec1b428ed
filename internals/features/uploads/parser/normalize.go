// internals/features/uploads/parser/normalize.go
package parser

import "strings"

// canonical field keys produced by header normalization
const (
	KeyRollNumber        = "rollNumber"
	KeySubjectName       = "subjectName"
	KeyYear              = "year"
	KeyGpa               = "gpa"
	KeyMarks             = "marks"
	KeyUnitTest1         = "unitTest1"
	KeyUnitTest2         = "unitTest2"
	KeyUnitTest3         = "unitTest3"
	KeyIatScore          = "iatScore"
	KeyAttendancePercent = "attendancePercent"
	KeyTotalClasses      = "totalClasses"
	KeyAttendedClasses   = "attendedClasses"
)

// headerSynonyms maps stripped header text to canonical keys. Admin
// spreadsheets come from several departments with their own header habits.
var headerSynonyms = map[string]string{
	"rollno":            KeyRollNumber,
	"rollnumber":        KeyRollNumber,
	"roll":              KeyRollNumber,
	"studentroll":       KeyRollNumber,
	"subjectname":       KeySubjectName,
	"subject":           KeySubjectName,
	"attendancepercent": KeyAttendancePercent,
	"attendance":        KeyAttendancePercent,
	"totalclasses":      KeyTotalClasses,
	"total":             KeyTotalClasses,
	"attendedclasses":   KeyAttendedClasses,
	"attended":          KeyAttendedClasses,
	"unittest1":         KeyUnitTest1,
	"ut1":               KeyUnitTest1,
	"unittest2":         KeyUnitTest2,
	"ut2":               KeyUnitTest2,
	"unittest3":         KeyUnitTest3,
	"ut3":               KeyUnitTest3,
	"iatscore":          KeyIatScore,
	"iat":               KeyIatScore,
}

// NormalizeHeader turns arbitrary header text into a canonical field key:
// lowercase, strip everything non-alphanumeric, then look up the synonym
// table. Unknown headers pass through stripped; downstream just ignores keys
// it does not read.
func NormalizeHeader(raw string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(raw) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	stripped := b.String()
	if canonical, ok := headerSynonyms[stripped]; ok {
		return canonical
	}
	return stripped
}
