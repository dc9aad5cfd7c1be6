package stats

import (
	"math"
	"sort"
)

// statuses that count as a worked day for the attendance rate.
var presentLike = map[string]bool{
	"present":  true,
	"late":     true,
	"half_day": true,
	"remote":   true,
}

// DayActivity is the per-calendar-day presence tally inside a rollup.
type DayActivity struct {
	Date    string `json:"date"`
	Present int    `json:"present"`
}

// EmployeeBreakdown is the per-employee exception tally inside a rollup.
type EmployeeBreakdown struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name,omitempty"`
	Present      int    `json:"present"`
	Absent       int    `json:"absent"`
	Late         int    `json:"late"`
	HalfDay      int    `json:"half_day"`
	Leave        int    `json:"leave"`
	Remote       int    `json:"remote"`
}

// PeriodStats is one computed rollup.
type PeriodStats struct {
	Period    string `json:"period"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`

	TotalRecords int            `json:"total_records"`
	ByStatus     map[string]int `json:"by_status"`

	// AttendanceRate is present-like days over all counted days, 0 to 100.
	AttendanceRate float64 `json:"attendance_rate"`

	MostPresentDay  *DayActivity `json:"most_present_day,omitempty"`
	LeastPresentDay *DayActivity `json:"least_present_day,omitempty"`

	Breakdown []EmployeeBreakdown `json:"breakdown,omitempty"`
}

// Rollup aggregates already-committed day records into period statistics.
// Pure and side-effect free. Partial periods are fine: the tallies cover
// whatever records exist, never failing on a window that is not full.
func Rollup(records []DayRecord, period Period, start, end string, breakdown bool) *PeriodStats {
	out := &PeriodStats{
		Period:    string(period),
		StartDate: start,
		EndDate:   end,
		ByStatus:  make(map[string]int),
	}

	present := 0
	perDay := make(map[string]int)
	perEmployee := make(map[string]*EmployeeBreakdown)

	for _, r := range records {
		out.TotalRecords++
		out.ByStatus[r.Status]++

		dayKey := r.Date.Format("2006-01-02")
		if presentLike[r.Status] {
			present++
			perDay[dayKey]++
		} else if _, seen := perDay[dayKey]; !seen {
			perDay[dayKey] = 0
		}

		if breakdown {
			eb := perEmployee[r.EmployeeID]
			if eb == nil {
				eb = &EmployeeBreakdown{EmployeeID: r.EmployeeID, EmployeeName: r.EmployeeName}
				perEmployee[r.EmployeeID] = eb
			}
			switch r.Status {
			case "present":
				eb.Present++
			case "absent":
				eb.Absent++
			case "late":
				eb.Present++
				eb.Late++
			case "half_day":
				eb.Present++
				eb.HalfDay++
			case "leave":
				eb.Leave++
			case "remote":
				eb.Present++
				eb.Remote++
			}
		}
	}

	if out.TotalRecords > 0 {
		rate := float64(present) / float64(out.TotalRecords) * 100
		out.AttendanceRate = math.Round(rate*100) / 100
	}

	out.MostPresentDay, out.LeastPresentDay = extremeDays(perDay)

	if breakdown {
		for _, eb := range perEmployee {
			out.Breakdown = append(out.Breakdown, *eb)
		}
		sort.Slice(out.Breakdown, func(i, j int) bool {
			return out.Breakdown[i].EmployeeID < out.Breakdown[j].EmployeeID
		})
	}

	return out
}

// extremeDays picks the best and worst presence days. Ties resolve to the
// earliest date so the result is deterministic.
func extremeDays(perDay map[string]int) (*DayActivity, *DayActivity) {
	if len(perDay) == 0 {
		return nil, nil
	}

	days := make([]string, 0, len(perDay))
	for d := range perDay {
		days = append(days, d)
	}
	sort.Strings(days)

	most := &DayActivity{Date: days[0], Present: perDay[days[0]]}
	least := &DayActivity{Date: days[0], Present: perDay[days[0]]}
	for _, d := range days[1:] {
		if perDay[d] > most.Present {
			most = &DayActivity{Date: d, Present: perDay[d]}
		}
		if perDay[d] < least.Present {
			least = &DayActivity{Date: d, Present: perDay[d]}
		}
	}
	return most, least
}
