package profile

import "time"

func FullName(p Profile) string {
	return p.FirstName + " " + p.LastName
}

// SemesterCount is twice the number of whole years between TimeJoined and
// now, or nil when the join time is unknown.
func SemesterCount(p Profile, now time.Time) *int {
	if p.TimeJoined == nil {
		return nil
	}
	semesters := wholeYears(*p.TimeJoined, now) * 2
	return &semesters
}

// DecodedJobHistory returns the job history exposed in responses. Historically
// this attribute always came back empty regardless of the stored value; that
// stays the behavior unless decodeStored is set (config
// profile.decode_job_history).
func DecodedJobHistory(p Profile, decodeStored bool) []JobHistoryElement {
	if !decodeStored || p.JobHistory == nil {
		return []JobHistoryElement{}
	}
	return DecodeJobHistory(*p.JobHistory)
}

// wholeYears counts complete calendar years from -> to, negative when to is earlier.
func wholeYears(from, to time.Time) int {
	if to.Before(from) {
		return -wholeYears(to, from)
	}
	from = from.In(to.Location())
	years := to.Year() - from.Year()
	anniversary := from.AddDate(years, 0, 0)
	if anniversary.After(to) {
		years--
	}
	return years
}
