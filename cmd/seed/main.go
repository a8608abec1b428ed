// cmd/seed/main.go
//
// Development roster seeder. Provisions the admin account and a demo
// roster of students with randomized academics, attendance and
// activities so the dashboard and analytics have data to chew on.
//
// Usage: go run ./cmd/seed
package main

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/bytedance/sonic"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"msec_erp_backend/internals/configs"
	"msec_erp_backend/internals/constants"
	database "msec_erp_backend/internals/databases"
	"msec_erp_backend/internals/features/students/model"
)

const (
	studentCount    = 150
	defaultPassword = "student123"
	adminPassword   = "admin123"
)

var (
	departments = []string{"CSE", "ECE", "EEE", "MECH", "CIVIL", "IT"}
	batches     = []string{"2021-2025", "2022-2026", "2023-2027", "2024-2028"}
	bloodGroups = []string{"A+", "A-", "B+", "B-", "O+", "O-", "AB+", "AB-"}

	firstNames = []string{
		"Aarav", "Priya", "Karthik", "Divya", "Arjun", "Meera", "Vikram",
		"Ananya", "Rahul", "Sneha", "Surya", "Lakshmi", "Hari", "Kavya",
		"Manoj", "Nithya", "Pradeep", "Swathi", "Ganesh", "Revathi",
	}
	lastNames = []string{
		"Kumar", "Raj", "Krishnan", "Subramanian", "Pillai", "Nair",
		"Sharma", "Reddy", "Iyer", "Menon", "Srinivasan", "Venkatesh",
	}

	subjectsByYear = map[int][]string{
		1: {"Engineering Mathematics I", "Physics", "Chemistry", "Programming in C", "Engineering Graphics"},
		2: {"Data Structures", "Digital Electronics", "Discrete Mathematics", "Object Oriented Programming", "Computer Architecture"},
		3: {"Operating Systems", "Database Management Systems", "Computer Networks", "Software Engineering", "Theory of Computation"},
		4: {"Machine Learning", "Cloud Computing", "Cryptography", "Distributed Systems", "Project Work"},
	}

	companies = []string{"Zoho", "Freshworks", "TCS", "Infosys", "Chargebee", "Kissflow"}
	certs     = []string{"AWS Cloud Practitioner", "Google Data Analytics", "NPTEL Java", "Cisco CCNA", "Azure Fundamentals"}
	events    = []string{"Smart India Hackathon", "HackVerse", "DevFest Chennai", "CodeFest"}
)

func main() {
	configs.LoadEnv()
	database.ConnectDB()
	database.Migrate()

	// fixed seed keeps reruns deterministic
	rng := rand.New(rand.NewSource(42))

	if err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := seedAdmin(tx); err != nil {
			return err
		}
		return seedStudents(tx, rng)
	}); err != nil {
		log.Fatalf("[ERROR] Seeding failed: %v", err)
	}

	log.Printf("✅ Seeded admin + %d students", studentCount)
}

func seedAdmin(tx *gorm.DB) error {
	var count int64
	if err := tx.Model(&model.User{}).
		Where("user_email = ?", "admin@msec.edu.in").
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("[INFO] Admin already provisioned, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := model.User{
		UserName:     "ERP Administrator",
		UserEmail:    "admin@msec.edu.in",
		UserPassword: string(hash),
		UserRole:     constants.RoleAdmin,
	}
	return tx.Create(&admin).Error
}

func seedStudents(tx *gorm.DB, rng *rand.Rand) error {
	// one hash for the whole roster, bcrypt is slow on purpose
	hash, err := bcrypt.GenerateFromPassword([]byte(defaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	for i := 1; i <= studentCount; i++ {
		dept := departments[rng.Intn(len(departments))]
		batch := batches[rng.Intn(len(batches))]
		roll := fmt.Sprintf("%s%s%03d", batch[:4], dept, i)

		var exists int64
		if err := tx.Model(&model.StudentProfile{}).
			Where("student_profile_roll_number = ?", roll).
			Count(&exists).Error; err != nil {
			return err
		}
		if exists > 0 {
			continue
		}

		name := fmt.Sprintf("%s %s",
			firstNames[rng.Intn(len(firstNames))],
			lastNames[rng.Intn(len(lastNames))])

		user := model.User{
			UserName:     name,
			UserEmail:    fmt.Sprintf("%s@student.msec.edu.in", roll),
			UserPassword: string(hash),
			UserRole:     constants.RoleStudent,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		bg := bloodGroups[rng.Intn(len(bloodGroups))]
		contact := fmt.Sprintf("9%09d", rng.Intn(1_000_000_000))
		profile := model.StudentProfile{
			StudentProfileUserID:     user.UserID,
			StudentProfileRollNumber: roll,
			StudentProfileDepartment: dept,
			StudentProfileBatch:      batch,
			StudentProfileBloodGroup: &bg,
			StudentProfileContact:    &contact,
		}
		if err := tx.Create(&profile).Error; err != nil {
			return err
		}

		if err := seedAcademics(tx, rng, &profile); err != nil {
			return err
		}
		if err := seedAttendance(tx, rng, &profile); err != nil {
			return err
		}
		if err := seedActivities(tx, rng, &profile); err != nil {
			return err
		}
	}
	return nil
}

func seedAcademics(tx *gorm.DB, rng *rand.Rand, profile *model.StudentProfile) error {
	// a slowly drifting base GPA gives the trend analysis something real
	base := 5.0 + rng.Float64()*4.0
	drift := (rng.Float64() - 0.5) * 1.2

	years := 1 + rng.Intn(4)
	for y := 1; y <= years; y++ {
		gpa := clamp(base+drift*float64(y-1)+(rng.Float64()-0.5)*0.4, 3.0, 10.0)
		year := model.AcademicYear{
			AcademicYearStudentID: profile.StudentProfileID,
			AcademicYearYear:      y,
			AcademicYearGpa:       &gpa,
		}
		if err := tx.Create(&year).Error; err != nil {
			return err
		}

		for _, subject := range subjectsByYear[y] {
			marks := clamp(gpa*10+(rng.Float64()-0.5)*20, 30, 100)
			ut1 := clamp(marks/2+(rng.Float64()-0.5)*10, 10, 50)
			ut2 := clamp(marks/2+(rng.Float64()-0.5)*10, 10, 50)
			iat := clamp(marks+(rng.Float64()-0.5)*15, 25, 100)
			mark := model.SubjectMark{
				SubjectMarkAcademicYearID: year.AcademicYearID,
				SubjectMarkSubjectName:    subject,
				SubjectMarkMarks:          &marks,
				SubjectMarkUnitTest1:      &ut1,
				SubjectMarkUnitTest2:      &ut2,
				SubjectMarkIatScore:       &iat,
			}
			if err := tx.Create(&mark).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

func seedAttendance(tx *gorm.DB, rng *rand.Rand, profile *model.StudentProfile) error {
	// base habit per student so shortage students look consistently short
	base := 55.0 + rng.Float64()*45.0

	for _, subject := range subjectsByYear[1+rng.Intn(4)] {
		percent := clamp(base+(rng.Float64()-0.5)*15, 0, 100)
		total := 40 + rng.Intn(20)
		attended := int(float64(total) * percent / 100)
		att := model.Attendance{
			AttendanceStudentID:       profile.StudentProfileID,
			AttendanceSubjectName:     subject,
			AttendancePercent:         percent,
			AttendanceTotalClasses:    &total,
			AttendanceAttendedClasses: &attended,
		}
		if err := tx.Create(&att).Error; err != nil {
			return err
		}
	}
	return nil
}

func seedActivities(tx *gorm.DB, rng *rand.Rand, profile *model.StudentProfile) error {
	// roughly half the roster has any activity data at all
	if rng.Intn(2) == 0 {
		return nil
	}

	act := model.Activities{ActivitiesStudentID: profile.StudentProfileID}
	if rng.Intn(3) == 0 {
		act.ActivitiesInternships = jsonList(
			map[string]string{
				"company":  companies[rng.Intn(len(companies))],
				"role":     "Software Intern",
				"duration": fmt.Sprintf("%d months", 1+rng.Intn(6)),
			})
	}
	if rng.Intn(2) == 0 {
		act.ActivitiesCertifications = jsonList(certs[rng.Intn(len(certs))])
	}
	if rng.Intn(4) == 0 {
		act.ActivitiesHackathons = jsonList(
			map[string]string{
				"event":    events[rng.Intn(len(events))],
				"position": fmt.Sprintf("Top %d", 5*(1+rng.Intn(4))),
			})
	}
	if rng.Intn(5) == 0 {
		act.ActivitiesSports = jsonList("Cricket - Zonal level")
	}
	if rng.Intn(5) == 0 {
		act.ActivitiesEcube = jsonList("E-Cube member")
	}
	return tx.Create(&act).Error
}

func jsonList(items ...any) datatypes.JSON {
	raw, err := sonic.Marshal(items)
	if err != nil {
		return datatypes.JSON([]byte("[]"))
	}
	return datatypes.JSON(raw)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
