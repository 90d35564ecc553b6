package attendance

import (
	"math"
	"sort"

	"github.com/google/uuid"
)

// StatusCounts breaks a record count down by status
type StatusCounts struct {
	Present int `json:"present"`
	Absent  int `json:"absent"`
	Excused int `json:"excused"`
	Late    int `json:"late"`
}

func (c *StatusCounts) add(s Status) {
	switch s {
	case StatusPresent:
		c.Present++
	case StatusAbsent:
		c.Absent++
	case StatusExcused:
		c.Excused++
	case StatusLate:
		c.Late++
	}
}

// Summary aggregates the whole filtered record set
type Summary struct {
	TotalRecords   int          `json:"totalRecords"`
	ByStatus       StatusCounts `json:"byStatus"`
	AttendanceRate float64      `json:"attendanceRate"`
}

// MemberAnalytics aggregates one member's records inside the window
type MemberAnalytics struct {
	MemberID             uuid.UUID    `json:"memberId"`
	Name                 string       `json:"name"`
	StudentID            string       `json:"studentId"`
	Total                int          `json:"total"`
	ByStatus             StatusCounts `json:"byStatus"`
	AttendancePercentage float64      `json:"attendancePercentage"`
}

// DailyAnalytics aggregates all records whose activity fell on one calendar day
type DailyAnalytics struct {
	Date     string       `json:"date"` // YYYY-MM-DD
	Total    int          `json:"total"`
	ByStatus StatusCounts `json:"byStatus"`
}

// Snapshot is the full analytics result for a date window. It is derived,
// never persisted, and reproducible for an identical record set.
type Snapshot struct {
	Summary         Summary           `json:"summary"`
	MemberAnalytics []MemberAnalytics `json:"memberAnalytics"`
	DailyAnalytics  []DailyAnalytics  `json:"dailyAnalytics"`
}

// ComputeSnapshot aggregates the filtered records into a snapshot. An empty
// input yields a zero summary and empty lists; the rate on zero records is
// defined as 0 rather than a division error.
func ComputeSnapshot(records []DetailedRecord) *Snapshot {
	snap := &Snapshot{
		MemberAnalytics: []MemberAnalytics{},
		DailyAnalytics:  []DailyAnalytics{},
	}

	byMember := make(map[uuid.UUID]*MemberAnalytics)
	byDay := make(map[string]*DailyAnalytics)

	for _, rec := range records {
		snap.Summary.TotalRecords++
		snap.Summary.ByStatus.add(rec.Status)

		ma, ok := byMember[rec.MemberID]
		if !ok {
			ma = &MemberAnalytics{
				MemberID:  rec.MemberID,
				Name:      rec.MemberName(),
				StudentID: rec.StudentID,
			}
			byMember[rec.MemberID] = ma
		}
		ma.Total++
		ma.ByStatus.add(rec.Status)

		day := rec.ActivityDate.Format("2006-01-02")
		da, ok := byDay[day]
		if !ok {
			da = &DailyAnalytics{Date: day}
			byDay[day] = da
		}
		da.Total++
		da.ByStatus.add(rec.Status)
	}

	if snap.Summary.TotalRecords > 0 {
		snap.Summary.AttendanceRate = round2(
			float64(snap.Summary.ByStatus.Present) / float64(snap.Summary.TotalRecords) * 100,
		)
	}

	for _, ma := range byMember {
		if ma.Total > 0 {
			ma.AttendancePercentage = round2(float64(ma.ByStatus.Present) / float64(ma.Total) * 100)
		}
		snap.MemberAnalytics = append(snap.MemberAnalytics, *ma)
	}
	sort.Slice(snap.MemberAnalytics, func(i, j int) bool {
		a, b := snap.MemberAnalytics[i], snap.MemberAnalytics[j]
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		// Tie-break on member ID for deterministic output
		return a.MemberID.String() < b.MemberID.String()
	})

	for _, da := range byDay {
		snap.DailyAnalytics = append(snap.DailyAnalytics, *da)
	}
	sort.Slice(snap.DailyAnalytics, func(i, j int) bool {
		return snap.DailyAnalytics[i].Date < snap.DailyAnalytics[j].Date
	})

	return snap
}

// MemberStats summarizes a single member's history for the report endpoint
type MemberStats struct {
	Total                int          `json:"total"`
	ByStatus             StatusCounts `json:"byStatus"`
	AttendancePercentage float64      `json:"attendancePercentage"`
}

// ComputeMemberStats aggregates one member's filtered records
func ComputeMemberStats(records []DetailedRecord) MemberStats {
	var stats MemberStats
	for _, rec := range records {
		stats.Total++
		stats.ByStatus.add(rec.Status)
	}
	if stats.Total > 0 {
		stats.AttendancePercentage = round2(float64(stats.ByStatus.Present) / float64(stats.Total) * 100)
	}
	return stats
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
