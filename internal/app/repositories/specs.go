package repositories

import "github.com/yigit/campusdesk/internal/app/models"

// Table specs for every persisted entity. Column order must match Fields.

func profileSpec() TableSpec[models.Profile] {
	return TableSpec[models.Profile]{
		Name:    "profiles",
		Entity:  "profile",
		Columns: []string{"email", "full_name", "role", "phone", "avatar_url", "is_active", "last_login_at"},
		Fields: func(p *models.Profile) []any {
			return []any{&p.Email, &p.FullName, &p.Role, &p.Phone, &p.AvatarURL, &p.IsActive, &p.LastLoginAt}
		},
		OrderBy: "full_name ASC",
	}
}

// profileCredentialSpec also reads and writes the password hash.
func profileCredentialSpec() TableSpec[models.Profile] {
	spec := profileSpec()
	spec.Columns = append(spec.Columns, "password_hash")
	fields := spec.Fields
	spec.Fields = func(p *models.Profile) []any {
		return append(fields(p), &p.PasswordHash)
	}
	return spec
}

func facultySpec() TableSpec[models.Faculty] {
	return TableSpec[models.Faculty]{
		Name:    "faculties",
		Entity:  "faculty",
		Columns: []string{"name", "code", "description"},
		Fields: func(f *models.Faculty) []any {
			return []any{&f.Name, &f.Code, &f.Description}
		},
		OrderBy: "name ASC",
	}
}

func studentSpec() TableSpec[models.Student] {
	return TableSpec[models.Student]{
		Name:        "students",
		Entity:      "student",
		Columns:     []string{"profile_id", "faculty_id", "student_number", "level", "status"},
		ForeignKeys: []string{"profile_id", "faculty_id"},
		Fields: func(s *models.Student) []any {
			return []any{&s.ProfileID, &s.FacultyID, &s.StudentNumber, &s.Level, &s.Status}
		},
		OrderBy: "student_number ASC",
	}
}

func lecturerSpec() TableSpec[models.Lecturer] {
	return TableSpec[models.Lecturer]{
		Name:        "lecturers",
		Entity:      "lecturer",
		Columns:     []string{"profile_id", "faculty_id", "staff_number", "title", "specialization"},
		ForeignKeys: []string{"profile_id", "faculty_id"},
		Fields: func(l *models.Lecturer) []any {
			return []any{&l.ProfileID, &l.FacultyID, &l.StaffNumber, &l.Title, &l.Specialization}
		},
		OrderBy: "staff_number ASC",
	}
}

func staffSpec() TableSpec[models.Staff] {
	return TableSpec[models.Staff]{
		Name:        "staff",
		Entity:      "staff member",
		Columns:     []string{"profile_id", "full_name", "email", "department", "position", "is_active"},
		ForeignKeys: []string{"profile_id"},
		Fields: func(s *models.Staff) []any {
			return []any{&s.ProfileID, &s.FullName, &s.Email, &s.Department, &s.Position, &s.IsActive}
		},
		OrderBy: "full_name ASC",
	}
}

func courseSpec() TableSpec[models.Course] {
	return TableSpec[models.Course]{
		Name:        "courses",
		Entity:      "course",
		Columns:     []string{"faculty_id", "lecturer_id", "code", "title", "description", "credits", "capacity", "semester", "status"},
		ForeignKeys: []string{"faculty_id", "lecturer_id"},
		Fields: func(c *models.Course) []any {
			return []any{&c.FacultyID, &c.LecturerID, &c.Code, &c.Title, &c.Description, &c.Credits, &c.Capacity, &c.Semester, &c.Status}
		},
		OrderBy: "code ASC",
	}
}

func enrollmentSpec() TableSpec[models.Enrollment] {
	return TableSpec[models.Enrollment]{
		Name:        "enrollments",
		Entity:      "enrollment",
		Columns:     []string{"student_id", "course_id", "status", "enrolled_at"},
		ForeignKeys: []string{"student_id", "course_id"},
		Fields: func(e *models.Enrollment) []any {
			return []any{&e.StudentID, &e.CourseID, &e.Status, &e.EnrolledAt}
		},
		OrderBy: "enrolled_at DESC",
	}
}

func registrationSpec() TableSpec[models.Registration] {
	return TableSpec[models.Registration]{
		Name:        "registrations",
		Entity:      "registration",
		Columns:     []string{"student_id", "course_id", "term", "status"},
		ForeignKeys: []string{"student_id", "course_id"},
		Fields: func(r *models.Registration) []any {
			return []any{&r.StudentID, &r.CourseID, &r.Term, &r.Status}
		},
	}
}

func assignmentSpec() TableSpec[models.Assignment] {
	return TableSpec[models.Assignment]{
		Name:        "assignments",
		Entity:      "assignment",
		Columns:     []string{"course_id", "lecturer_id", "title", "description", "due_date", "max_score"},
		ForeignKeys: []string{"course_id", "lecturer_id"},
		Fields: func(a *models.Assignment) []any {
			return []any{&a.CourseID, &a.LecturerID, &a.Title, &a.Description, &a.DueDate, &a.MaxScore}
		},
		OrderBy: "due_date ASC",
	}
}

func materialSpec() TableSpec[models.Material] {
	return TableSpec[models.Material]{
		Name:        "materials",
		Entity:      "material",
		Columns:     []string{"course_id", "lecturer_id", "title", "kind", "description", "file_url"},
		ForeignKeys: []string{"course_id", "lecturer_id"},
		Fields: func(m *models.Material) []any {
			return []any{&m.CourseID, &m.LecturerID, &m.Title, &m.Kind, &m.Description, &m.FileURL}
		},
	}
}

func quizSpec() TableSpec[models.Quiz] {
	return TableSpec[models.Quiz]{
		Name:        "quizzes",
		Entity:      "quiz",
		Columns:     []string{"course_id", "title", "duration_minutes", "total_marks", "passing_marks", "opens_at"},
		ForeignKeys: []string{"course_id"},
		Fields: func(q *models.Quiz) []any {
			return []any{&q.CourseID, &q.Title, &q.DurationMinutes, &q.TotalMarks, &q.PassingMarks, &q.OpensAt}
		},
	}
}

func examSpec() TableSpec[models.Exam] {
	return TableSpec[models.Exam]{
		Name:        "exams",
		Entity:      "exam",
		Columns:     []string{"course_id", "title", "exam_date", "duration_minutes", "total_marks", "passing_marks", "venue"},
		ForeignKeys: []string{"course_id"},
		Fields: func(e *models.Exam) []any {
			return []any{&e.CourseID, &e.Title, &e.ExamDate, &e.DurationMinutes, &e.TotalMarks, &e.PassingMarks, &e.Venue}
		},
		OrderBy: "exam_date ASC",
	}
}

func gradeSpec() TableSpec[models.Grade] {
	return TableSpec[models.Grade]{
		Name:        "grades",
		Entity:      "grade",
		Columns:     []string{"student_id", "course_id", "score", "max_score", "percentage", "letter_grade", "term", "remarks"},
		ForeignKeys: []string{"student_id", "course_id"},
		Fields: func(g *models.Grade) []any {
			return []any{&g.StudentID, &g.CourseID, &g.Score, &g.MaxScore, &g.Percentage, &g.LetterGrade, &g.Term, &g.Remarks}
		},
	}
}

func attendanceSpec() TableSpec[models.Attendance] {
	return TableSpec[models.Attendance]{
		Name:        "attendance",
		Entity:      "attendance record",
		Columns:     []string{"student_id", "course_id", "session_date", "status", "note"},
		ForeignKeys: []string{"student_id", "course_id"},
		Fields: func(a *models.Attendance) []any {
			return []any{&a.StudentID, &a.CourseID, &a.SessionDate, &a.Status, &a.Note}
		},
		OrderBy: "session_date DESC",
	}
}

func paymentSpec() TableSpec[models.Payment] {
	return TableSpec[models.Payment]{
		Name:        "payments",
		Entity:      "payment",
		Columns:     []string{"student_id", "tuition_fee_id", "amount", "method", "status", "reference_number", "paid_at", "description"},
		ForeignKeys: []string{"student_id", "tuition_fee_id"},
		Fields: func(p *models.Payment) []any {
			return []any{&p.StudentID, &p.TuitionFeeID, &p.Amount, &p.Method, &p.Status, &p.ReferenceNumber, &p.PaidAt, &p.Description}
		},
	}
}

func refundSpec() TableSpec[models.Refund] {
	return TableSpec[models.Refund]{
		Name:        "refunds",
		Entity:      "refund",
		Columns:     []string{"payment_id", "student_id", "amount", "reason", "status", "reference_number", "processed_at"},
		ForeignKeys: []string{"payment_id", "student_id"},
		Fields: func(r *models.Refund) []any {
			return []any{&r.PaymentID, &r.StudentID, &r.Amount, &r.Reason, &r.Status, &r.ReferenceNumber, &r.ProcessedAt}
		},
	}
}

func tuitionFeeSpec() TableSpec[models.TuitionFee] {
	return TableSpec[models.TuitionFee]{
		Name:        "tuition_fees",
		Entity:      "tuition fee",
		Columns:     []string{"faculty_id", "academic_year", "level", "amount", "due_date", "description"},
		ForeignKeys: []string{"faculty_id"},
		Fields: func(f *models.TuitionFee) []any {
			return []any{&f.FacultyID, &f.AcademicYear, &f.Level, &f.Amount, &f.DueDate, &f.Description}
		},
		OrderBy: "academic_year DESC, level ASC",
	}
}

func scholarshipSpec() TableSpec[models.Scholarship] {
	return TableSpec[models.Scholarship]{
		Name:        "scholarships",
		Entity:      "scholarship",
		Columns:     []string{"student_id", "name", "amount", "status", "academic_year"},
		ForeignKeys: []string{"student_id"},
		Fields: func(s *models.Scholarship) []any {
			return []any{&s.StudentID, &s.Name, &s.Amount, &s.Status, &s.AcademicYear}
		},
	}
}

func announcementSpec() TableSpec[models.Announcement] {
	return TableSpec[models.Announcement]{
		Name:        "announcements",
		Entity:      "announcement",
		Columns:     []string{"author_id", "course_id", "title", "body", "audience", "priority", "published_at"},
		ForeignKeys: []string{"author_id", "course_id"},
		Fields: func(a *models.Announcement) []any {
			return []any{&a.AuthorID, &a.CourseID, &a.Title, &a.Body, &a.Audience, &a.Priority, &a.PublishedAt}
		},
		OrderBy: "created_at DESC",
	}
}

func supportTicketSpec() TableSpec[models.SupportTicket] {
	return TableSpec[models.SupportTicket]{
		Name:        "support_tickets",
		Entity:      "support ticket",
		Columns:     []string{"profile_id", "subject", "message", "category", "priority", "status"},
		ForeignKeys: []string{"profile_id"},
		Fields: func(s *models.SupportTicket) []any {
			return []any{&s.ProfileID, &s.Subject, &s.Message, &s.Category, &s.Priority, &s.Status}
		},
	}
}

func calendarEventSpec() TableSpec[models.CalendarEvent] {
	return TableSpec[models.CalendarEvent]{
		Name:        "calendar_events",
		Entity:      "calendar event",
		Columns:     []string{"created_by", "title", "description", "starts_at", "ends_at", "category"},
		ForeignKeys: []string{"created_by"},
		Fields: func(e *models.CalendarEvent) []any {
			return []any{&e.CreatedBy, &e.Title, &e.Description, &e.StartsAt, &e.EndsAt, &e.Category}
		},
		OrderBy: "starts_at ASC",
	}
}
