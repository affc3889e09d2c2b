package repositories

import (
	"os"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var createTableRe = regexp.MustCompile(`(?s)CREATE TABLE IF NOT EXISTS (\w+) \((.*?)\n\);`)

// schemaColumns parses the initial migration into table -> column set.
func schemaColumns(t *testing.T) map[string]map[string]bool {
	t.Helper()
	raw, err := os.ReadFile("../../../migrations/001_init.sql")
	require.NoError(t, err)

	tables := make(map[string]map[string]bool)
	for _, m := range createTableRe.FindAllStringSubmatch(string(raw), -1) {
		cols := make(map[string]bool)
		for _, line := range strings.Split(m[2], "\n") {
			fields := strings.Fields(line)
			if len(fields) == 0 {
				continue
			}
			cols[fields[0]] = true
		}
		tables[m[1]] = cols
	}
	return tables
}

func TestSchemaCoversEveryTable(t *testing.T) {
	tables := schemaColumns(t)

	specs := map[string][]string{
		profileCredentialSpec().Name: profileCredentialSpec().Columns,
		facultySpec().Name:           facultySpec().Columns,
		studentSpec().Name:           studentSpec().Columns,
		lecturerSpec().Name:          lecturerSpec().Columns,
		staffSpec().Name:             staffSpec().Columns,
		courseSpec().Name:            courseSpec().Columns,
		enrollmentSpec().Name:        enrollmentSpec().Columns,
		registrationSpec().Name:      registrationSpec().Columns,
		assignmentSpec().Name:        assignmentSpec().Columns,
		materialSpec().Name:          materialSpec().Columns,
		quizSpec().Name:              quizSpec().Columns,
		examSpec().Name:              examSpec().Columns,
		gradeSpec().Name:             gradeSpec().Columns,
		attendanceSpec().Name:        attendanceSpec().Columns,
		paymentSpec().Name:           paymentSpec().Columns,
		refundSpec().Name:            refundSpec().Columns,
		tuitionFeeSpec().Name:        tuitionFeeSpec().Columns,
		scholarshipSpec().Name:       scholarshipSpec().Columns,
		announcementSpec().Name:      announcementSpec().Columns,
		supportTicketSpec().Name:     supportTicketSpec().Columns,
		calendarEventSpec().Name:     calendarEventSpec().Columns,
	}

	for table, columns := range specs {
		cols, ok := tables[table]
		if !assert.Truef(t, ok, "no CREATE TABLE for %s", table) {
			continue
		}
		for _, c := range append(append([]string{}, baseColumns...), columns...) {
			assert.Truef(t, cols[c], "%s.%s missing from schema", table, c)
		}
	}

	tokens := tables["refresh_tokens"]
	for _, c := range []string{"token", "profile_id", "expiry_date", "is_revoked"} {
		assert.Truef(t, tokens[c], "refresh_tokens.%s missing from schema", c)
	}
}
