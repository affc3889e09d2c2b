package models

// Faculty groups courses, students and lecturers.
type Faculty struct {
	Base
	Name        string  `json:"name" db:"name" validate:"required,min=2,max=150" example:"Faculty of Engineering"`
	Code        string  `json:"code" db:"code" validate:"required,alphanum,uppercase,max=10" example:"ENG"`
	Description *string `json:"description,omitempty" db:"description"`
}
