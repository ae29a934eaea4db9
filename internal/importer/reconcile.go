package importer

import (
	"strings"
	"time"

	"github.com/frahmantamala/compliance-management/internal"
	"github.com/frahmantamala/compliance-management/internal/staff"
)

// Batch is the staged output of one reconciliation pass, applied to the
// persistence layer as a single atomic write.
type Batch struct {
	Upserts      []*staff.StaffRecord
	NewCount     int
	UpdatedCount int
	SkippedRows  int
}

// truthyWords is the one documented predicate for undertaking cells. Every
// historical variant of the source sheets is superseded by this set.
var truthyWords = map[string]bool{
	"yes":       true,
	"y":         true,
	"true":      true,
	"1":         true,
	"done":      true,
	"sent":      true,
	"received":  true,
	"submitted": true,
	"later":     true,
}

func isTruthy(cell string) bool {
	return truthyWords[strings.ToLower(strings.TrimSpace(cell))]
}

// Reconcile merges an externally authored sheet into the known record set.
// Row 0 is the header; each data row stages one upsert. Merge semantics:
//
//   - compliance booleans only move forward: a flag already true on the
//     existing record is never reset because the sheet lacks that signal;
//   - a non-empty notification cell counts as notified, undertaking cells
//     must match the truthy predicate;
//   - name/contact fields follow last-non-empty-wins, else keep existing;
//   - rows without an @-containing email are skipped, not errors.
//
// Pure function: no I/O, deterministic for a given clock value, and
// idempotent because email is a stable dedupe key.
func Reconcile(rows [][]string, existing []*staff.StaffRecord, now time.Time) (*Batch, error) {
	if len(rows) < 2 {
		return nil, internal.ErrWorkbookEmpty
	}

	cols := ResolveColumns(rows[0])

	existingByEmail := make(map[string]*staff.StaffRecord, len(existing))
	for _, r := range existing {
		existingByEmail[staff.NormalizeEmail(r.Email)] = r
	}

	batch := &Batch{}
	staged := make(map[string]*staff.StaffRecord)

	for _, row := range rows[1:] {
		email := cell(row, columnOrFallback(cols.Email, fallbackEmailCol))
		if email == "" || !strings.Contains(email, "@") {
			batch.SkippedRows++
			continue
		}

		key := staff.NormalizeEmail(email)

		// A row earlier in the same sheet may already have staged this
		// email; merge onto that so duplicate rows fold together.
		prior, known := staged[key]
		if !known {
			prior, known = existingByEmail[key]
		}

		record := &staff.StaffRecord{Email: email, CreatedAt: now}
		if known {
			clone := *prior
			record = &clone
		}

		record.SrNo = pickValue(cell(row, columnOrFallback(cols.SrNo, fallbackSrNoCol)), record.SrNo)
		record.FirstName = pickValue(cell(row, columnOrFallback(cols.FirstName, fallbackFirstNameCol)), record.FirstName)
		record.LastName = pickValue(cell(row, columnOrFallback(cols.LastName, fallbackLastNameCol)), record.LastName)
		record.Mobile = pickValue(cell(row, cols.Mobile), record.Mobile)
		record.ContactPerson = pickValue(cell(row, cols.Contact), record.ContactPerson)
		record.Department = staff.NormalizeDepartment(pickValue(cell(row, cols.Department), record.Department))

		notified := record.NotificationSent
		if cols.Notification >= 0 && cell(row, cols.Notification) != "" {
			notified = true
		}

		received := record.UndertakingReceived
		if cols.Undertaking >= 0 && isTruthy(cell(row, cols.Undertaking)) {
			received = true
		}

		record.ApplyCompliance(notified, received, now)

		if _, alreadyStaged := staged[key]; !alreadyStaged {
			if _, exists := existingByEmail[key]; exists {
				batch.UpdatedCount++
			} else {
				batch.NewCount++
			}
			batch.Upserts = append(batch.Upserts, record)
		} else {
			// Replace the earlier staged version in place.
			for i, up := range batch.Upserts {
				if staff.NormalizeEmail(up.Email) == key {
					batch.Upserts[i] = record
					break
				}
			}
		}
		staged[key] = record
	}

	return batch, nil
}

// cell returns the trimmed value at idx, or "" when the row is too short or
// the column was never resolved.
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// pickValue implements last-non-empty-wins: the imported value if present,
// otherwise whatever the existing record already holds.
func pickValue(imported, existing string) string {
	if imported != "" {
		return imported
	}
	return existing
}
