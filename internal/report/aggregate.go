package report

import (
	"math"

	"github.com/frahmantamala/compliance-management/internal/staff"
)

// DepartmentRollup aggregates compliance inside one department bucket.
type DepartmentRollup struct {
	Name      string               `json:"name"`
	Total     int                  `json:"total"`
	Compliant int                  `json:"compliant"`
	Pending   int                  `json:"pending"`
	Members   []*staff.StaffRecord `json:"members"`
}

// Summary is the portfolio-wide view every dashboard tile reads from. It is
// recomputed from the full record set on every request, never cached.
type Summary struct {
	Total        int                          `json:"total"`
	Accepted     int                          `json:"accepted"`
	NotifiedOnly int                          `json:"notified_only"`
	Pending      int                          `json:"pending"`
	Percentage   int                          `json:"percentage"`
	Departments  map[string]*DepartmentRollup `json:"departments"`
}

// Aggregate derives the summary from the record set. Pure function: no I/O,
// order of input irrelevant, empty input yields all-zero counts.
//
// Department labels are trimmed; empty labels fall into the "Unassigned"
// bucket, which is omitted from the output when it ends up empty.
func Aggregate(records []*staff.StaffRecord) *Summary {
	summary := &Summary{
		Departments: map[string]*DepartmentRollup{
			staff.DepartmentUnassigned: {Name: staff.DepartmentUnassigned},
		},
	}

	for _, r := range records {
		summary.Total++
		switch {
		case r.UndertakingReceived:
			summary.Accepted++
		case r.NotificationSent:
			summary.NotifiedOnly++
		default:
			summary.Pending++
		}

		dept := staff.NormalizeDepartment(r.Department)
		rollup, ok := summary.Departments[dept]
		if !ok {
			rollup = &DepartmentRollup{Name: dept}
			summary.Departments[dept] = rollup
		}
		rollup.Total++
		rollup.Members = append(rollup.Members, r)
		if r.UndertakingReceived {
			rollup.Compliant++
		} else {
			rollup.Pending++
		}
	}

	if summary.Total > 0 {
		summary.Percentage = int(math.Round(float64(summary.Accepted) / float64(summary.Total) * 100))
	}

	if rollup, ok := summary.Departments[staff.DepartmentUnassigned]; ok && rollup.Total == 0 {
		delete(summary.Departments, staff.DepartmentUnassigned)
	}

	return summary
}
