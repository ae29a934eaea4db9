package importer

import "strings"

// Columns holds the resolved position of each role in an imported sheet.
// -1 means the role could not be located by header; roles with a documented
// fixed-index fallback apply it at extraction time.
type Columns struct {
	SrNo         int
	FirstName    int
	LastName     int
	Email        int
	Department   int
	Mobile       int
	Contact      int
	Notification int
	Undertaking  int
}

// Fixed-index fallbacks for sheets whose headers carry no usable signal.
const (
	fallbackSrNoCol      = 0
	fallbackFirstNameCol = 1
	fallbackLastNameCol  = 2
	fallbackEmailCol     = 3
)

// Keyword lists per role. Matching is substring on lower-cased, trimmed
// header text; the first column that matches wins.
var (
	emailKeywords        = []string{"email", "user id"}
	departmentKeywords   = []string{"department", "dept"}
	mobileKeywords       = []string{"mobile", "phone"}
	contactKeywords      = []string{"contact person", "responsible"}
	notificationKeywords = []string{"notification", "sent", "notified", "email sent"}
	undertakingKeywords  = []string{"undertaking", "received", "compliance"}
	srNoKeywords         = []string{"sr", "serial"}
	firstNameKeywords    = []string{"first"}
	lastNameKeywords     = []string{"last"}
)

// ResolveColumns locates each role in the header row. Header cells are
// lower-cased and trimmed before matching. Column order in the sheet is not
// fixed; external sheets are authored by hand and rarely agree on labels.
func ResolveColumns(header []string) Columns {
	normalized := make([]string, len(header))
	for i, h := range header {
		normalized[i] = strings.ToLower(strings.TrimSpace(h))
	}

	return Columns{
		SrNo:         findColumn(normalized, srNoKeywords),
		FirstName:    findColumn(normalized, firstNameKeywords),
		LastName:     findColumn(normalized, lastNameKeywords),
		Email:        findColumn(normalized, emailKeywords),
		Department:   findColumn(normalized, departmentKeywords),
		Mobile:       findColumn(normalized, mobileKeywords),
		Contact:      findColumn(normalized, contactKeywords),
		Notification: findColumn(normalized, notificationKeywords),
		Undertaking:  findColumn(normalized, undertakingKeywords),
	}
}

func findColumn(header []string, keywords []string) int {
	for i, cell := range header {
		if cell == "" {
			continue
		}
		for _, kw := range keywords {
			if strings.Contains(cell, kw) {
				return i
			}
		}
	}
	return -1
}

// columnOrFallback returns the resolved index, or the fallback when the
// header gave no signal.
func columnOrFallback(resolved, fallback int) int {
	if resolved >= 0 {
		return resolved
	}
	return fallback
}
