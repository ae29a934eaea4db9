package staff

import "strings"

// StatusFilter is the registry view's status facet.
type StatusFilter string

const (
	FilterAll      StatusFilter = "All"
	FilterAccepted StatusFilter = "Accepted"
	FilterNotified StatusFilter = "Notified"
	FilterPending  StatusFilter = "Pending"
)

// ParseStatusFilter maps a query parameter to a filter, defaulting to All.
// Matching is case-insensitive so "accepted" and "Accepted" both work.
func ParseStatusFilter(s string) StatusFilter {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "accepted":
		return FilterAccepted
	case "notified":
		return FilterNotified
	case "pending":
		return FilterPending
	default:
		return FilterAll
	}
}

// FilterRecords returns the subsequence matching both the free-text query and
// the status filter. The query is matched case-insensitively as a substring
// of email, first name, or department. Status branches test the compliance
// booleans directly, never the cached status string, so filtering cannot
// disagree with display even if a stale status value was persisted.
func FilterRecords(records []*StaffRecord, query string, status StatusFilter) []*StaffRecord {
	q := strings.ToLower(strings.TrimSpace(query))

	matched := make([]*StaffRecord, 0, len(records))
	for _, r := range records {
		if q != "" &&
			!strings.Contains(strings.ToLower(r.Email), q) &&
			!strings.Contains(strings.ToLower(r.FirstName), q) &&
			!strings.Contains(strings.ToLower(r.Department), q) {
			continue
		}

		switch status {
		case FilterAccepted:
			if !r.UndertakingReceived {
				continue
			}
		case FilterNotified:
			if !r.NotificationSent {
				continue
			}
		case FilterPending:
			if r.NotificationSent || r.UndertakingReceived {
				continue
			}
		}

		matched = append(matched, r)
	}
	return matched
}
