package profile

import "strings"

const (
	jobEntrySeparator = ","
	jobFieldSeparator = ":"
	jobFieldCount     = 4
)

type JobHistoryElement struct {
	Employer string `json:"employer"`
	Position string `json:"position"`
	DateFrom string `json:"date_from"`
	DateTo   string `json:"date_to"`
}

// EncodeJobHistory renders entries as "employer:position:from:to" joined by
// commas. An empty list encodes to nil. Fields are not escaped, so values
// containing ':' or ',' do not survive DecodeJobHistory.
func EncodeJobHistory(entries []JobHistoryElement) *string {
	if len(entries) == 0 {
		return nil
	}
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = strings.Join([]string{e.Employer, e.Position, e.DateFrom, e.DateTo}, jobFieldSeparator)
	}
	encoded := strings.Join(parts, jobEntrySeparator)
	return &encoded
}

// DecodeJobHistory parses the EncodeJobHistory format. Entries that do not
// have exactly four fields are dropped silently.
func DecodeJobHistory(encoded string) []JobHistoryElement {
	entries := make([]JobHistoryElement, 0)
	if encoded == "" {
		return entries
	}
	for _, entry := range strings.Split(encoded, jobEntrySeparator) {
		fields := strings.Split(entry, jobFieldSeparator)
		if len(fields) != jobFieldCount {
			continue
		}
		entries = append(entries, JobHistoryElement{
			Employer: fields[0],
			Position: fields[1],
			DateFrom: fields[2],
			DateTo:   fields[3],
		})
	}
	return entries
}

func DummyJobHistoryElement() JobHistoryElement {
	return JobHistoryElement{
		Employer: "Google",
		Position: "SWE Intern",
		DateFrom: "15.01.2023",
		DateTo:   "31.03.2023",
	}
}
