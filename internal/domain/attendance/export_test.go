package attendance

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestBuildWorkbook(t *testing.T) {
	day := time.Date(2025, 3, 10, 18, 30, 0, 0, time.UTC)
	records := []DetailedRecord{
		{
			MemberID:      uuid.New(),
			FirstName:     "Amara",
			LastName:      "Silva",
			StudentID:     "IT22001",
			ActivityKind:  ActivityEvent,
			ActivityTitle: "Spring Concert",
			ActivityDate:  day,
			Status:        StatusPresent,
			Comments:      "arrived early",
			MarkedByName:  "Nadia Jayawardena",
			MarkedAt:      day.Add(time.Hour),
		},
		{
			MemberID:      uuid.New(),
			FirstName:     "Bimal",
			LastName:      "Perera",
			StudentID:     "IT22002",
			ActivityKind:  ActivitySchedule,
			ActivityTitle: "Weekly Practice",
			ActivityDate:  day.AddDate(0, 0, 2),
			Status:        StatusLate,
			MarkedByName:  "Nadia Jayawardena",
			MarkedAt:      day.AddDate(0, 0, 2),
		},
	}

	file, err := BuildWorkbook(records)
	require.NoError(t, err)

	buf, err := WriteWorkbook(file)
	require.NoError(t, err)
	require.NotZero(t, buf.Len())

	reopened, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer reopened.Close()

	rows, err := reopened.GetRows("Attendance")
	require.NoError(t, err)
	// Header plus one row per record
	require.Len(t, rows, 3)

	assert.Equal(t, "Member Name", rows[0][0])
	assert.Equal(t, "Student ID", rows[0][1])
	assert.Equal(t, "Status", rows[0][4])

	assert.Equal(t, "Amara Silva", rows[1][0])
	assert.Equal(t, "IT22001", rows[1][1])
	assert.Equal(t, "Spring Concert", rows[1][2])
	assert.Equal(t, "present", rows[1][4])
	assert.Equal(t, "arrived early", rows[1][5])

	assert.Equal(t, "Bimal Perera", rows[2][0])
	assert.Equal(t, "late", rows[2][4])
}

func TestBuildWorkbookEmpty(t *testing.T) {
	file, err := BuildWorkbook(nil)
	require.NoError(t, err)

	buf, err := WriteWorkbook(file)
	require.NoError(t, err)

	reopened, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer reopened.Close()

	rows, err := reopened.GetRows("Attendance")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Member Name", rows[0][0])
}
