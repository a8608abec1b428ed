package constants

import "fmt"

const (
	RoleAdmin   = "ADMIN"
	RoleStudent = "STUDENT"
)

// Role error message templates
const (
	ErrOnlyAdminsCanAccess  = "Only admins may access %s."
	ErrOnlyStudentsCanAccess = "Only students may access %s."
)

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorStudent(feature string) string {
	return fmt.Sprintf(ErrOnlyStudentsCanAccess, feature)
}
