package models

// Courses a candidate can be referred to. The creation form offers exactly
// this list.
var Courses = []string{
	"Business Administration",
	"Computer Science",
	"Nursing",
	"Law",
	"Psychology",
	"Accounting",
}

func IsValidCourse(course string) bool {
	for _, c := range Courses {
		if c == course {
			return true
		}
	}
	return false
}
