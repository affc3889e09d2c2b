package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/campusdesk/internal/app/models"
	"github.com/yigit/campusdesk/internal/pkg/apperrors"
	"github.com/yigit/campusdesk/internal/pkg/validation"
)

// ── fake DBTX ──

type fakeRow struct {
	scan func(dest ...any) error
}

func (r fakeRow) Scan(dest ...any) error { return r.scan(dest...) }

type fakeDB struct {
	sql  []string
	args [][]any

	rowErr  error
	rowScan func(dest ...any) error
	// rows scripts successive QueryRow results ahead of rowErr/rowScan.
	rows    []func(dest ...any) error
	execTag pgconn.CommandTag
	execErr error
}

func (f *fakeDB) record(sql string, args []any) {
	f.sql = append(f.sql, sql)
	f.args = append(f.args, args)
}

func (f *fakeDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.record(sql, args)
	return f.execTag, f.execErr
}

func (f *fakeDB) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	f.record(sql, args)
	return nil, errors.New("query not supported by fakeDB")
}

func (f *fakeDB) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	f.record(sql, args)
	if len(f.rows) > 0 {
		next := f.rows[0]
		f.rows = f.rows[1:]
		return fakeRow{scan: next}
	}
	return fakeRow{scan: func(dest ...any) error {
		if f.rowErr != nil {
			return f.rowErr
		}
		if f.rowScan != nil {
			return f.rowScan(dest...)
		}
		return nil
	}}
}

// fakeTx routes statements to the same fakeDB and records how it ended.
type fakeTx struct {
	pgx.Tx
	db         *fakeDB
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return t.db.Exec(ctx, sql, args...)
}

func (t *fakeTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return t.db.Query(ctx, sql, args...)
}

func (t *fakeTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return t.db.QueryRow(ctx, sql, args...)
}

func (t *fakeTx) Commit(context.Context) error {
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(context.Context) error {
	t.rolledBack = true
	return nil
}

// fakeConn is a fakeDB that can begin fakeTx transactions.
type fakeConn struct {
	*fakeDB
	tx *fakeTx
}

func newFakeConn() *fakeConn {
	return &fakeConn{fakeDB: &fakeDB{}}
}

func (c *fakeConn) Begin(context.Context) (pgx.Tx, error) {
	c.tx = &fakeTx{db: c.fakeDB}
	return c.tx, nil
}

// scanInt returns a scripted row holding a single integer.
func scanInt(v int64) func(dest ...any) error {
	return func(dest ...any) error {
		switch d := dest[0].(type) {
		case *int:
			*d = int(v)
		case *int64:
			*d = v
		default:
			return errors.New("unexpected scan target")
		}
		return nil
	}
}

// scanErr returns a scripted row that fails with err.
func scanErr(err error) func(dest ...any) error {
	return func(...any) error { return err }
}

func newCourseTable(db DBTX) *Table[models.Course, *models.Course] {
	return NewTable[models.Course](db, courseSpec())
}

func TestTable_ListByRejectsUnknownColumn(t *testing.T) {
	db := &fakeDB{}
	table := newCourseTable(db)

	_, _, err := table.ListBy(context.Background(), "title", 1, 1, 20)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	fields, ok := validation.AsFieldErrors(err)
	require.True(t, ok)
	assert.Contains(t, fields, "column")
	assert.Empty(t, db.sql, "no query may run for a rejected column")
}

func TestTable_AllowsForeignKey(t *testing.T) {
	table := newCourseTable(&fakeDB{})

	assert.True(t, table.AllowsForeignKey("faculty_id"))
	assert.True(t, table.AllowsForeignKey("lecturer_id"))
	assert.False(t, table.AllowsForeignKey("id"))
	assert.False(t, table.AllowsForeignKey("course_id"))
}

func TestTable_GetByIDNotFound(t *testing.T) {
	db := &fakeDB{rowErr: pgx.ErrNoRows}
	table := newCourseTable(db)

	_, err := table.GetByID(context.Background(), 7)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
	assert.Equal(t, "course not found", err.Error())
	require.Len(t, db.sql, 1)
	assert.Contains(t, db.sql[0], "FROM courses WHERE id = $1 LIMIT 1")
	assert.Equal(t, []any{int64(7)}, db.args[0])
}

func TestTable_CreateFillsMeta(t *testing.T) {
	created := time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)
	db := &fakeDB{rowScan: func(dest ...any) error {
		*dest[0].(*int64) = 42
		*dest[1].(*time.Time) = created
		*dest[2].(*time.Time) = created
		return nil
	}}
	table := newCourseTable(db)

	course := &models.Course{
		FacultyID: 3,
		Code:      "CSC201",
		Title:     "Data Structures",
		Credits:   3,
		Capacity:  40,
		Semester:  models.TermFirst,
		Status:    models.CourseStatusActive,
	}
	require.NoError(t, table.Create(context.Background(), course))

	assert.Equal(t, int64(42), course.ID)
	assert.Equal(t, created, course.CreatedAt)
	require.Len(t, db.sql, 1)
	assert.Contains(t, db.sql[0], "INSERT INTO courses (faculty_id,lecturer_id,code,title,description,credits,capacity,semester,status)")
	assert.Contains(t, db.sql[0], "RETURNING id, created_at, updated_at")

	args := db.args[0]
	require.Len(t, args, 9)
	assert.Equal(t, int64(3), args[0])
	assert.Nil(t, args[1].(*int64))
	assert.Equal(t, "CSC201", args[2])
	assert.Equal(t, 40, args[6])
	assert.Equal(t, models.TermFirst, args[7])
}

func TestTable_CreateMapsConstraintErrors(t *testing.T) {
	tests := []struct {
		name   string
		pgErr  *pgconn.PgError
		target error
	}{
		{"unique", &pgconn.PgError{Code: "23505", ConstraintName: "courses_code_key"}, apperrors.ErrResourceAlreadyExists},
		{"foreign key", &pgconn.PgError{Code: "23503", ConstraintName: "courses_faculty_id_fkey"}, apperrors.ErrBadRequest},
		{"check", &pgconn.PgError{Code: "23514", ConstraintName: "courses_capacity_check"}, apperrors.ErrBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := newCourseTable(&fakeDB{rowErr: tt.pgErr})

			err := table.Create(context.Background(), &models.Course{})

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.target)
			assert.Contains(t, err.Error(), tt.pgErr.ConstraintName)
		})
	}
}

func TestTable_UpdateTouchesUpdatedAt(t *testing.T) {
	db := &fakeDB{}
	table := newCourseTable(db)

	course := &models.Course{Base: models.Base{ID: 5}, FacultyID: 1, Code: "X1", Title: "Xx", Credits: 1, Capacity: 1}
	require.NoError(t, table.Update(context.Background(), course))

	require.Len(t, db.sql, 1)
	assert.Contains(t, db.sql[0], "UPDATE courses SET")
	assert.Contains(t, db.sql[0], "updated_at = now()")
	assert.Contains(t, db.sql[0], "RETURNING created_at, updated_at")
}

func TestTable_UpdateMissingRow(t *testing.T) {
	table := newCourseTable(&fakeDB{rowErr: pgx.ErrNoRows})

	err := table.Update(context.Background(), &models.Course{Base: models.Base{ID: 99}})

	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestTable_Delete(t *testing.T) {
	t.Run("deleted", func(t *testing.T) {
		db := &fakeDB{execTag: pgconn.NewCommandTag("DELETE 1")}
		require.NoError(t, newCourseTable(db).Delete(context.Background(), 3))
		assert.Contains(t, db.sql[0], "DELETE FROM courses WHERE id = $1")
	})

	t.Run("missing", func(t *testing.T) {
		db := &fakeDB{execTag: pgconn.NewCommandTag("DELETE 0")}
		err := newCourseTable(db).Delete(context.Background(), 3)
		assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
	})
}

func TestTable_WithTxKeepsOriginal(t *testing.T) {
	pool := &fakeDB{}
	tx := &fakeDB{rowErr: pgx.ErrNoRows}
	table := newCourseTable(pool)

	_, _ = table.WithTx(tx).GetByID(context.Background(), 1)

	assert.Empty(t, pool.sql)
	assert.Len(t, tx.sql, 1)
}

func TestProfileCredentialSpecAddsPasswordHash(t *testing.T) {
	spec := profileCredentialSpec()
	p := &models.Profile{}

	assert.Equal(t, "password_hash", spec.Columns[len(spec.Columns)-1])
	assert.Len(t, spec.Fields(p), len(spec.Columns))
	assert.NotContains(t, profileSpec().Columns, "password_hash")
}

func TestSpecsFieldCountsMatchColumns(t *testing.T) {
	checks := map[string][2]int{
		"faculties":       {len(facultySpec().Columns), len(facultySpec().Fields(&models.Faculty{}))},
		"students":        {len(studentSpec().Columns), len(studentSpec().Fields(&models.Student{}))},
		"lecturers":       {len(lecturerSpec().Columns), len(lecturerSpec().Fields(&models.Lecturer{}))},
		"staff":           {len(staffSpec().Columns), len(staffSpec().Fields(&models.Staff{}))},
		"courses":         {len(courseSpec().Columns), len(courseSpec().Fields(&models.Course{}))},
		"enrollments":     {len(enrollmentSpec().Columns), len(enrollmentSpec().Fields(&models.Enrollment{}))},
		"registrations":   {len(registrationSpec().Columns), len(registrationSpec().Fields(&models.Registration{}))},
		"assignments":     {len(assignmentSpec().Columns), len(assignmentSpec().Fields(&models.Assignment{}))},
		"materials":       {len(materialSpec().Columns), len(materialSpec().Fields(&models.Material{}))},
		"quizzes":         {len(quizSpec().Columns), len(quizSpec().Fields(&models.Quiz{}))},
		"exams":           {len(examSpec().Columns), len(examSpec().Fields(&models.Exam{}))},
		"grades":          {len(gradeSpec().Columns), len(gradeSpec().Fields(&models.Grade{}))},
		"attendance":      {len(attendanceSpec().Columns), len(attendanceSpec().Fields(&models.Attendance{}))},
		"payments":        {len(paymentSpec().Columns), len(paymentSpec().Fields(&models.Payment{}))},
		"refunds":         {len(refundSpec().Columns), len(refundSpec().Fields(&models.Refund{}))},
		"tuition_fees":    {len(tuitionFeeSpec().Columns), len(tuitionFeeSpec().Fields(&models.TuitionFee{}))},
		"scholarships":    {len(scholarshipSpec().Columns), len(scholarshipSpec().Fields(&models.Scholarship{}))},
		"announcements":   {len(announcementSpec().Columns), len(announcementSpec().Fields(&models.Announcement{}))},
		"support_tickets": {len(supportTicketSpec().Columns), len(supportTicketSpec().Fields(&models.SupportTicket{}))},
		"calendar_events": {len(calendarEventSpec().Columns), len(calendarEventSpec().Fields(&models.CalendarEvent{}))},
		"profiles":        {len(profileSpec().Columns), len(profileSpec().Fields(&models.Profile{}))},
	}
	for table, c := range checks {
		assert.Equalf(t, c[0], c[1], "%s columns and fields differ", table)
	}
}
