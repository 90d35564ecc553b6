package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{"date input value", `"2025-05-01"`, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), false},
		{"rfc 3339", `"2025-05-01T18:30:00Z"`, time.Date(2025, 5, 1, 18, 30, 0, 0, time.UTC), false},
		{"null", `null`, time.Time{}, false},
		{"garbage", `"01/05/2025"`, time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			err := json.Unmarshal([]byte(tt.input), &d)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(d.Time), "got %v", d.Time)
		})
	}
}

// The concert form posts its date exactly as the date input renders it.
func TestCreateEventRequestAcceptsPlainDate(t *testing.T) {
	body := `{"title":"Spring concert","date":"2025-05-01","time":"19:00"}`

	var req CreateEventRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	assert.Equal(t, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), req.Date.Time)
}
