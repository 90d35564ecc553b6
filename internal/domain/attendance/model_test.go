package attendance

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"
)

func TestStatusIsValid(t *testing.T) {
	assert.True(t, StatusPresent.IsValid())
	assert.True(t, StatusAbsent.IsValid())
	assert.True(t, StatusExcused.IsValid())
	assert.True(t, StatusLate.IsValid())
	assert.False(t, Status("attending").IsValid())
	assert.False(t, Status("").IsValid())
}

func TestParseActivityRef(t *testing.T) {
	eventID := uuid.New()
	scheduleID := uuid.New()

	tests := []struct {
		name       string
		eventID    *uuid.UUID
		scheduleID *uuid.UUID
		want       ActivityRef
		wantErr    bool
	}{
		{"event only", &eventID, nil, EventRef(eventID), false},
		{"schedule only", nil, &scheduleID, ScheduleRef(scheduleID), false},
		{"both set", &eventID, &scheduleID, ActivityRef{}, true},
		{"neither set", nil, nil, ActivityRef{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := ParseActivityRef(tt.eventID, tt.scheduleID)
			if tt.wantErr {
				require.Error(t, err)
				var verr *ValidationError
				assert.ErrorAs(t, err, &verr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, ref)
		})
	}
}

// The uniqueness indexes must span (member_id, activity) as a pair; a
// single-column unique index would let only one member per activity.
func TestRecordUniqueIndexesAreComposite(t *testing.T) {
	s, err := schema.Parse(&AttendanceRecord{}, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)

	indexes := s.ParseIndexes()

	fieldNames := func(idx schema.Index) []string {
		names := make([]string, len(idx.Fields))
		for i, f := range idx.Fields {
			names[i] = f.DBName
		}
		return names
	}

	eventIdx, ok := indexes["idx_attendance_member_event"]
	require.True(t, ok)
	assert.Equal(t, "UNIQUE", eventIdx.Class)
	assert.ElementsMatch(t, []string{"member_id", "event_id"}, fieldNames(eventIdx))
	assert.Equal(t, "event_id is not null", eventIdx.Where)

	scheduleIdx, ok := indexes["idx_attendance_member_schedule"]
	require.True(t, ok)
	assert.Equal(t, "UNIQUE", scheduleIdx.Class)
	assert.ElementsMatch(t, []string{"member_id", "schedule_id"}, fieldNames(scheduleIdx))
	assert.Equal(t, "schedule_id is not null", scheduleIdx.Where)
}

func TestRecordActivityRoundTrip(t *testing.T) {
	var r AttendanceRecord

	eventRef := EventRef(uuid.New())
	r.SetActivity(eventRef)
	require.NotNil(t, r.EventID)
	assert.Nil(t, r.ScheduleID)
	assert.Equal(t, eventRef, r.Activity())

	// Switching the anchor must clear the other column
	scheduleRef := ScheduleRef(uuid.New())
	r.SetActivity(scheduleRef)
	require.NotNil(t, r.ScheduleID)
	assert.Nil(t, r.EventID)
	assert.Equal(t, scheduleRef, r.Activity())
}
