// internals/features/uploads/parser/normalize_test.go
package parser

import "testing"

func TestNormalizeHeader(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Roll No", KeyRollNumber},
		{"ROLL_NUMBER", KeyRollNumber},
		{"roll", KeyRollNumber},
		{"Student Roll", KeyRollNumber},
		{"Subject Name", KeySubjectName},
		{"SUBJECT", KeySubjectName},
		{"Attendance %", KeyAttendancePercent},
		{"attendance-percent", KeyAttendancePercent},
		{"Total Classes", KeyTotalClasses},
		{"Total", KeyTotalClasses},
		{"Attended", KeyAttendedClasses},
		{"UT-1", KeyUnitTest1},
		{"Unit Test 2", KeyUnitTest2},
		{"ut3", KeyUnitTest3},
		{"IAT", KeyIatScore},
		{"IAT Score", KeyIatScore},
		// unknown headers pass through stripped
		{"GPA", "gpa"},
		{"Year", "year"},
		{"Blood Group!!", "bloodgroup"},
		{"  ", ""},
	}
	for _, tc := range cases {
		if got := NormalizeHeader(tc.in); got != tc.want {
			t.Errorf("NormalizeHeader(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeHeaderIdempotent(t *testing.T) {
	inputs := []string{"Roll No", "Subject Name", "UT-1", "IAT Score", "gpa", "weird header"}
	for _, in := range inputs {
		once := NormalizeHeader(in)
		if twice := NormalizeHeader(once); twice != once {
			t.Errorf("NormalizeHeader not idempotent for %q: %q -> %q", in, once, twice)
		}
	}
}
