package models

// StudentStatus values.
const (
	StudentStatusActive    = "active"
	StudentStatusSuspended = "suspended"
	StudentStatusGraduated = "graduated"
	StudentStatusWithdrawn = "withdrawn"
)

// Student is the academic record of a student profile.
type Student struct {
	Base
	ProfileID     int64  `json:"profileId" db:"profile_id" validate:"required,gt=0"`
	FacultyID     int64  `json:"facultyId" db:"faculty_id" validate:"required,gt=0"`
	StudentNumber string `json:"studentNumber" db:"student_number" validate:"required,max=20" example:"20250001"`
	Level         int    `json:"level" db:"level" validate:"gte=100,lte=900" example:"200"`
	Status        string `json:"status" db:"status" validate:"required,oneof=active suspended graduated withdrawn"`
}

// Lecturer is the staff record of a lecturer profile.
type Lecturer struct {
	Base
	ProfileID      int64   `json:"profileId" db:"profile_id" validate:"required,gt=0"`
	FacultyID      int64   `json:"facultyId" db:"faculty_id" validate:"required,gt=0"`
	StaffNumber    string  `json:"staffNumber" db:"staff_number" validate:"required,max=20" example:"LEC-0042"`
	Title          string  `json:"title" db:"title" validate:"required,max=50" example:"Dr."`
	Specialization *string `json:"specialization,omitempty" db:"specialization" validate:"omitempty,max=150"`
}

// Staff is a non-teaching member of the school.
type Staff struct {
	Base
	ProfileID  *int64 `json:"profileId,omitempty" db:"profile_id" validate:"omitempty,gt=0"`
	FullName   string `json:"fullName" db:"full_name" validate:"required,min=2,max=150"`
	Email      string `json:"email" db:"email" validate:"required,email"`
	Department string `json:"department" db:"department" validate:"required,max=100" example:"Bursary"`
	Position   string `json:"position" db:"position" validate:"required,max=100" example:"Accountant"`
	IsActive   bool   `json:"isActive" db:"is_active"`
}
