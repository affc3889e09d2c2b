package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestClassification(t *testing.T) {
	unique := fmt.Errorf("insert: %w", &pgconn.PgError{Code: CodeUniqueViolation, ConstraintName: "enrollments_student_course_key"})
	fk := &pgconn.PgError{Code: CodeForeignKeyViolation}
	check := &pgconn.PgError{Code: CodeCheckViolation, ConstraintName: "courses_capacity_check"}
	plain := errors.New("connection reset")

	assert.True(t, IsUniqueViolation(unique))
	assert.True(t, IsDuplicateConstraintError(unique, "enrollments_student_course_key"))
	assert.False(t, IsDuplicateConstraintError(unique, "profiles_email_key"))
	assert.True(t, IsForeignKeyViolation(fk))
	assert.True(t, IsCheckViolation(check))
	assert.Equal(t, "courses_capacity_check", ConstraintName(check))

	assert.False(t, IsUniqueViolation(plain))
	assert.False(t, IsForeignKeyViolation(plain))
	assert.Equal(t, "", ConstraintName(plain))
}
