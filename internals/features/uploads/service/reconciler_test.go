// internals/features/uploads/service/reconciler_test.go
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"

	studentModel "msec_erp_backend/internals/features/students/model"
	"msec_erp_backend/internals/features/uploads/parser"
)

/* =========================================================
   In-memory Store with snapshot/commit transaction semantics
   ========================================================= */

type yearRecord struct {
	id  uuid.UUID
	gpa *float64
}

type memStore struct {
	students    map[string]*studentModel.StudentProfile
	years       map[string]yearRecord        // studentID|year
	marks       map[string]SubjectMarkFields // yearID|subject
	attendances map[string]AttendanceFields  // studentID|subject
	activities  map[uuid.UUID]ActivitiesPatch
}

func newMemStore(rolls ...string) *memStore {
	s := &memStore{
		students:    map[string]*studentModel.StudentProfile{},
		years:       map[string]yearRecord{},
		marks:       map[string]SubjectMarkFields{},
		attendances: map[string]AttendanceFields{},
		activities:  map[uuid.UUID]ActivitiesPatch{},
	}
	for _, roll := range rolls {
		s.students[roll] = &studentModel.StudentProfile{
			StudentProfileID:         uuid.New(),
			StudentProfileRollNumber: roll,
		}
	}
	return s
}

func (s *memStore) snapshot() *memStore {
	cp := &memStore{
		students:    s.students,
		years:       map[string]yearRecord{},
		marks:       map[string]SubjectMarkFields{},
		attendances: map[string]AttendanceFields{},
		activities:  map[uuid.UUID]ActivitiesPatch{},
	}
	for k, v := range s.years {
		cp.years[k] = v
	}
	for k, v := range s.marks {
		cp.marks[k] = v
	}
	for k, v := range s.attendances {
		cp.attendances[k] = v
	}
	for k, v := range s.activities {
		cp.activities[k] = v
	}
	return cp
}

func (s *memStore) RunInTransaction(ctx context.Context, fn func(tx Store) error) error {
	tx := s.snapshot()
	if err := fn(tx); err != nil {
		return err
	}
	s.years = tx.years
	s.marks = tx.marks
	s.attendances = tx.attendances
	s.activities = tx.activities
	return nil
}

func (s *memStore) FindStudentByRollNumber(ctx context.Context, roll string) (*studentModel.StudentProfile, error) {
	return s.students[roll], nil
}

func (s *memStore) UpsertAcademicYear(ctx context.Context, studentID uuid.UUID, year int, gpa *float64) (uuid.UUID, error) {
	key := fmt.Sprintf("%s|%d", studentID, year)
	rec, ok := s.years[key]
	if !ok {
		rec = yearRecord{id: uuid.New()}
	}
	rec.gpa = gpa
	s.years[key] = rec
	return rec.id, nil
}

func (s *memStore) UpsertSubjectMark(ctx context.Context, academicYearID uuid.UUID, subjectName string, fields SubjectMarkFields) error {
	s.marks[fmt.Sprintf("%s|%s", academicYearID, subjectName)] = fields
	return nil
}

func (s *memStore) UpsertAttendance(ctx context.Context, studentID uuid.UUID, subjectName string, fields AttendanceFields) error {
	s.attendances[fmt.Sprintf("%s|%s", studentID, subjectName)] = fields
	return nil
}

func (s *memStore) UpsertActivities(ctx context.Context, studentID uuid.UUID, patch ActivitiesPatch) error {
	existing, ok := s.activities[studentID]
	if !ok {
		s.activities[studentID] = patch
		return nil
	}
	if patch.Internships != nil {
		existing.Internships = patch.Internships
	}
	if patch.Certifications != nil {
		existing.Certifications = patch.Certifications
	}
	if patch.Hackathons != nil {
		existing.Hackathons = patch.Hackathons
	}
	if patch.Scholarships != nil {
		existing.Scholarships = patch.Scholarships
	}
	if patch.Sports != nil {
		existing.Sports = patch.Sports
	}
	if patch.Extracurricular != nil {
		existing.Extracurricular = patch.Extracurricular
	}
	if patch.Ecube != nil {
		existing.Ecube = patch.Ecube
	}
	s.activities[studentID] = existing
	return nil
}

func row(pairs ...string) parser.Row {
	r := parser.Row{}
	for i := 0; i+1 < len(pairs); i += 2 {
		v := pairs[i+1]
		if v == "" {
			r[pairs[i]] = nil
			continue
		}
		r[pairs[i]] = &v
	}
	return r
}

/* =========================================================
   Academics
   ========================================================= */

func TestReconcileAcademicsHappyPath(t *testing.T) {
	store := newMemStore("2022CSE001")
	rec := NewReconciler(store)

	rows := []parser.Row{
		row(parser.KeyRollNumber, "2022CSE001", parser.KeyYear, "2",
			parser.KeyGpa, "8.25", parser.KeySubjectName, "Data Structures",
			parser.KeyMarks, "88", parser.KeyUnitTest1, "44"),
	}
	res, err := rec.ReconcileAcademics(context.Background(), rows)
	if err != nil {
		t.Fatalf("ReconcileAcademics: %v", err)
	}
	if res.Updated != 1 || len(res.Warnings) != 0 {
		t.Fatalf("result = %+v", res)
	}

	studentID := store.students["2022CSE001"].StudentProfileID
	yr, ok := store.years[fmt.Sprintf("%s|2", studentID)]
	if !ok || yr.gpa == nil || *yr.gpa != 8.25 {
		t.Fatalf("year record = %+v", yr)
	}
	mark, ok := store.marks[fmt.Sprintf("%s|Data Structures", yr.id)]
	if !ok || mark.Marks == nil || *mark.Marks != 88 || mark.UnitTest1 == nil || *mark.UnitTest1 != 44 {
		t.Fatalf("mark record = %+v", mark)
	}
	if mark.UnitTest2 != nil {
		t.Errorf("missing unitTest2 should persist as nil, got %v", *mark.UnitTest2)
	}
}

func TestReconcileAcademicsUnknownRollRollsBackBatch(t *testing.T) {
	store := newMemStore("2022CSE001", "2022CSE002")
	rec := NewReconciler(store)

	rows := []parser.Row{
		row(parser.KeyRollNumber, "2022CSE001", parser.KeyYear, "1", parser.KeyGpa, "7.0"),
		row(parser.KeyRollNumber, "2022CSE002", parser.KeyYear, "1", parser.KeyGpa, "6.5"),
		row(parser.KeyRollNumber, "GHOST999", parser.KeyYear, "1", parser.KeyGpa, "9.0"),
	}
	_, err := rec.ReconcileAcademics(context.Background(), rows)

	var use *UnknownStudentError
	if !errors.As(err, &use) || use.RollNumber != "GHOST999" {
		t.Fatalf("err = %v, want UnknownStudentError for GHOST999", err)
	}
	if len(store.years) != 0 {
		t.Fatalf("rows persisted despite batch failure: %d year records", len(store.years))
	}
}

func TestReconcileAcademicsYearValidation(t *testing.T) {
	for _, bad := range []string{"5", "0", "abc", ""} {
		store := newMemStore("2022CSE001")
		rec := NewReconciler(store)

		rows := []parser.Row{
			row(parser.KeyRollNumber, "2022CSE001", parser.KeyYear, bad, parser.KeyGpa, "8.0"),
		}
		_, err := rec.ReconcileAcademics(context.Background(), rows)

		var ve *ValidationError
		if !errors.As(err, &ve) || ve.Field != "year" {
			t.Fatalf("year=%q: err = %v, want year ValidationError", bad, err)
		}
		if len(store.years) != 0 {
			t.Fatalf("year=%q: batch not rolled back", bad)
		}
	}
}

func TestReconcileAcademicsUpsertOverwrites(t *testing.T) {
	store := newMemStore("2022CSE001")
	rec := NewReconciler(store)
	ctx := context.Background()

	first := []parser.Row{row(parser.KeyRollNumber, "2022CSE001", parser.KeyYear, "3", parser.KeyGpa, "6.0")}
	if _, err := rec.ReconcileAcademics(ctx, first); err != nil {
		t.Fatal(err)
	}
	second := []parser.Row{row(parser.KeyRollNumber, "2022CSE001", parser.KeyYear, "3", parser.KeyGpa, "7.5")}
	if _, err := rec.ReconcileAcademics(ctx, second); err != nil {
		t.Fatal(err)
	}

	if len(store.years) != 1 {
		t.Fatalf("re-upload created a duplicate: %d records", len(store.years))
	}
	studentID := store.students["2022CSE001"].StudentProfileID
	yr := store.years[fmt.Sprintf("%s|3", studentID)]
	if yr.gpa == nil || *yr.gpa != 7.5 {
		t.Fatalf("gpa not overwritten: %+v", yr)
	}
}

func TestReconcileAcademicsSubjectMarkOverwrite(t *testing.T) {
	store := newMemStore("2022CSE001")
	rec := NewReconciler(store)
	ctx := context.Background()

	first := []parser.Row{
		row(parser.KeyRollNumber, "2022CSE001", parser.KeyYear, "2",
			parser.KeyGpa, "7.0", parser.KeySubjectName, "Operating Systems",
			parser.KeyMarks, "61", parser.KeyUnitTest1, "28"),
	}
	if _, err := rec.ReconcileAcademics(ctx, first); err != nil {
		t.Fatal(err)
	}
	second := []parser.Row{
		row(parser.KeyRollNumber, "2022CSE001", parser.KeyYear, "2",
			parser.KeyGpa, "7.0", parser.KeySubjectName, "Operating Systems",
			parser.KeyMarks, "79", parser.KeyUnitTest1, "41"),
	}
	if _, err := rec.ReconcileAcademics(ctx, second); err != nil {
		t.Fatal(err)
	}

	if len(store.marks) != 1 {
		t.Fatalf("re-upload created a duplicate mark: %d records", len(store.marks))
	}
	studentID := store.students["2022CSE001"].StudentProfileID
	yr := store.years[fmt.Sprintf("%s|2", studentID)]
	mark := store.marks[fmt.Sprintf("%s|Operating Systems", yr.id)]
	if mark.Marks == nil || *mark.Marks != 79 {
		t.Errorf("marks not overwritten: %+v", mark)
	}
	if mark.UnitTest1 == nil || *mark.UnitTest1 != 41 {
		t.Errorf("unitTest1 not overwritten: %+v", mark)
	}
}

func TestReconcileAcademicsSkipsBlankRoll(t *testing.T) {
	store := newMemStore("2022CSE001")
	rec := NewReconciler(store)

	rows := []parser.Row{
		row(parser.KeyRollNumber, "", parser.KeyYear, "1"),
		row(parser.KeyRollNumber, "2022CSE001", parser.KeyYear, "1", parser.KeyGpa, "8.0"),
	}
	res, err := rec.ReconcileAcademics(context.Background(), rows)
	if err != nil {
		t.Fatal(err)
	}
	if res.Updated != 1 {
		t.Fatalf("updated = %d, want 1 (blank roll skipped)", res.Updated)
	}
}

/* =========================================================
   Attendance
   ========================================================= */

func TestReconcileAttendance(t *testing.T) {
	store := newMemStore("2022ECE010")
	rec := NewReconciler(store)

	rows := []parser.Row{
		row(parser.KeyRollNumber, "2022ECE010",
			parser.KeySubjectName, "Computer Networks",
			parser.KeyAttendancePercent, "55",
			parser.KeyTotalClasses, "40",
			parser.KeyAttendedClasses, "22"),
	}
	res, err := rec.ReconcileAttendance(context.Background(), rows)
	if err != nil {
		t.Fatal(err)
	}
	if res.Updated != 1 {
		t.Fatalf("updated = %d", res.Updated)
	}

	studentID := store.students["2022ECE010"].StudentProfileID
	att := store.attendances[fmt.Sprintf("%s|Computer Networks", studentID)]
	if att.AttendancePercent != 55 {
		t.Errorf("percent = %v", att.AttendancePercent)
	}
	if att.TotalClasses == nil || *att.TotalClasses != 40 {
		t.Errorf("totalClasses = %v", att.TotalClasses)
	}
	if att.AttendedClasses == nil || *att.AttendedClasses != 22 {
		t.Errorf("attendedClasses = %v", att.AttendedClasses)
	}
}

func TestReconcileAttendanceUpsertOverwrites(t *testing.T) {
	store := newMemStore("2022ECE010")
	rec := NewReconciler(store)
	ctx := context.Background()

	first := []parser.Row{
		row(parser.KeyRollNumber, "2022ECE010", parser.KeySubjectName, "Operating Systems",
			parser.KeyAttendancePercent, "68", parser.KeyTotalClasses, "40",
			parser.KeyAttendedClasses, "27"),
	}
	if _, err := rec.ReconcileAttendance(ctx, first); err != nil {
		t.Fatal(err)
	}
	second := []parser.Row{
		row(parser.KeyRollNumber, "2022ECE010", parser.KeySubjectName, "Operating Systems",
			parser.KeyAttendancePercent, "81", parser.KeyTotalClasses, "48",
			parser.KeyAttendedClasses, "39"),
	}
	if _, err := rec.ReconcileAttendance(ctx, second); err != nil {
		t.Fatal(err)
	}

	if len(store.attendances) != 1 {
		t.Fatalf("re-upload created a duplicate record: %d", len(store.attendances))
	}
	studentID := store.students["2022ECE010"].StudentProfileID
	att := store.attendances[fmt.Sprintf("%s|Operating Systems", studentID)]
	if att.AttendancePercent != 81 {
		t.Errorf("percent not overwritten: %v", att.AttendancePercent)
	}
	if att.TotalClasses == nil || *att.TotalClasses != 48 {
		t.Errorf("totalClasses not overwritten: %v", att.TotalClasses)
	}
	if att.AttendedClasses == nil || *att.AttendedClasses != 39 {
		t.Errorf("attendedClasses not overwritten: %v", att.AttendedClasses)
	}
}

func TestReconcileAttendanceValidation(t *testing.T) {
	cases := []struct {
		name    string
		subject string
		percent string
		field   string
	}{
		{"missing subject", "", "80", "subjectName"},
		{"non-numeric percent", "Physics", "eighty", "attendancePercent"},
		{"percent above 100", "Physics", "100.01", "attendancePercent"},
		{"negative percent", "Physics", "-1", "attendancePercent"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := newMemStore("2022ECE010")
			rec := NewReconciler(store)

			rows := []parser.Row{
				row(parser.KeyRollNumber, "2022ECE010",
					parser.KeySubjectName, tc.subject,
					parser.KeyAttendancePercent, tc.percent),
			}
			_, err := rec.ReconcileAttendance(context.Background(), rows)

			var ve *ValidationError
			if !errors.As(err, &ve) || ve.Field != tc.field {
				t.Fatalf("err = %v, want %s ValidationError", err, tc.field)
			}
			if len(store.attendances) != 0 {
				t.Fatal("batch not rolled back")
			}
		})
	}
}

func TestReconcileAttendanceBoundaryPercents(t *testing.T) {
	store := newMemStore("2022ECE010")
	rec := NewReconciler(store)

	rows := []parser.Row{
		row(parser.KeyRollNumber, "2022ECE010", parser.KeySubjectName, "A", parser.KeyAttendancePercent, "0"),
		row(parser.KeyRollNumber, "2022ECE010", parser.KeySubjectName, "B", parser.KeyAttendancePercent, "100"),
	}
	res, err := rec.ReconcileAttendance(context.Background(), rows)
	if err != nil {
		t.Fatalf("0 and 100 are valid: %v", err)
	}
	if res.Updated != 2 {
		t.Fatalf("updated = %d", res.Updated)
	}
}

/* =========================================================
   Activities
   ========================================================= */

func TestReconcileActivitiesMalformedJSONIsWarning(t *testing.T) {
	store := newMemStore("2022IT007")
	rec := NewReconciler(store)

	rows := []parser.Row{
		row(parser.KeyRollNumber, "2022IT007",
			"certifications", `["AWS Cloud Practitioner"]`,
			"internships", "not-json"),
	}
	res, err := rec.ReconcileActivities(context.Background(), rows)
	if err != nil {
		t.Fatalf("malformed sub-field must not fail the batch: %v", err)
	}
	if res.Updated != 1 {
		t.Fatalf("updated = %d, want 1", res.Updated)
	}
	if len(res.Warnings) != 1 || !strings.Contains(res.Warnings[0], "internships") {
		t.Fatalf("warnings = %v", res.Warnings)
	}

	studentID := store.students["2022IT007"].StudentProfileID
	patch := store.activities[studentID]
	if patch.Certifications == nil {
		t.Error("valid certifications field was not persisted")
	}
	if patch.Internships != nil {
		t.Errorf("malformed internships persisted: %s", patch.Internships)
	}
}

func TestReconcileActivitiesUnknownRollStillFatal(t *testing.T) {
	store := newMemStore("2022IT007")
	rec := NewReconciler(store)

	rows := []parser.Row{
		row(parser.KeyRollNumber, "2022IT007", "sports", `["Cricket"]`),
		row(parser.KeyRollNumber, "GHOST999", "sports", `["Chess"]`),
	}
	_, err := rec.ReconcileActivities(context.Background(), rows)

	var use *UnknownStudentError
	if !errors.As(err, &use) {
		t.Fatalf("err = %v, want UnknownStudentError", err)
	}
	if len(store.activities) != 0 {
		t.Fatal("batch not rolled back")
	}
}

func TestReconcileActivitiesPartialUpdateKeepsOtherFields(t *testing.T) {
	store := newMemStore("2022IT007")
	rec := NewReconciler(store)
	ctx := context.Background()

	first := []parser.Row{row(parser.KeyRollNumber, "2022IT007", "sports", `["Cricket"]`)}
	if _, err := rec.ReconcileActivities(ctx, first); err != nil {
		t.Fatal(err)
	}
	second := []parser.Row{row(parser.KeyRollNumber, "2022IT007", "hackathons", `[{"event":"CodeFest"}]`)}
	if _, err := rec.ReconcileActivities(ctx, second); err != nil {
		t.Fatal(err)
	}

	studentID := store.students["2022IT007"].StudentProfileID
	patch := store.activities[studentID]
	if patch.Sports == nil {
		t.Error("earlier sports list was clobbered by a later partial upload")
	}
	if patch.Hackathons == nil {
		t.Error("hackathons list missing after second upload")
	}
}
