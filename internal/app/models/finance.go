package models

import "time"

// PaymentStatus values.
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
	PaymentStatusRefunded  = "refunded"
)

// Payment is money received from a student.
type Payment struct {
	Base
	StudentID       int64      `json:"studentId" db:"student_id" validate:"required,gt=0"`
	TuitionFeeID    *int64     `json:"tuitionFeeId,omitempty" db:"tuition_fee_id" validate:"omitempty,gt=0"`
	Amount          float64    `json:"amount" db:"amount" validate:"gt=0"`
	Method          string     `json:"method" db:"method" validate:"required,oneof=cash card bank_transfer mobile_money"`
	Status          string     `json:"status" db:"status" validate:"omitempty,oneof=pending completed failed refunded"`
	ReferenceNumber string     `json:"referenceNumber" db:"reference_number" example:"PAY-482913-7QK2ZD"`
	PaidAt          *time.Time `json:"paidAt,omitempty" db:"paid_at"`
	Description     *string    `json:"description,omitempty" db:"description"`
}

// RefundStatus values.
const (
	RefundStatusRequested = "requested"
	RefundStatusApproved  = "approved"
	RefundStatusRejected  = "rejected"
	RefundStatusProcessed = "processed"
)

// Refund returns part or all of a payment.
type Refund struct {
	Base
	PaymentID       int64      `json:"paymentId" db:"payment_id" validate:"required,gt=0"`
	StudentID       int64      `json:"studentId" db:"student_id"`
	Amount          float64    `json:"amount" db:"amount" validate:"gt=0"`
	Reason          string     `json:"reason" db:"reason" validate:"required,max=500"`
	Status          string     `json:"status" db:"status" validate:"omitempty,oneof=requested approved rejected processed"`
	ReferenceNumber string     `json:"referenceNumber" db:"reference_number"`
	ProcessedAt     *time.Time `json:"processedAt,omitempty" db:"processed_at"`
}

// TuitionFee is the fee owed per level and academic year within a faculty.
type TuitionFee struct {
	Base
	FacultyID    int64     `json:"facultyId" db:"faculty_id" validate:"required,gt=0"`
	AcademicYear string    `json:"academicYear" db:"academic_year" validate:"required,max=9" example:"2025/2026"`
	Level        int       `json:"level" db:"level" validate:"gte=100,lte=900"`
	Amount       float64   `json:"amount" db:"amount" validate:"gt=0"`
	DueDate      time.Time `json:"dueDate" db:"due_date" validate:"required"`
	Description  *string   `json:"description,omitempty" db:"description"`
}

// Scholarship is an award granted to a student.
type Scholarship struct {
	Base
	StudentID    int64   `json:"studentId" db:"student_id" validate:"required,gt=0"`
	Name         string  `json:"name" db:"name" validate:"required,max=150"`
	Amount       float64 `json:"amount" db:"amount" validate:"gt=0"`
	Status       string  `json:"status" db:"status" validate:"required,oneof=applied awarded rejected revoked"`
	AcademicYear string  `json:"academicYear" db:"academic_year" validate:"required,max=9"`
}

// PaymentReportRow is a payment joined with the paying student.
type PaymentReportRow struct {
	ReferenceNumber string
	StudentNumber   string
	StudentName     string
	Amount          float64
	Method          string
	Status          string
	PaidAt          *time.Time
	CreatedAt       time.Time
}
