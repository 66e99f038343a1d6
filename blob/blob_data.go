package blob

// BlobData is the in-memory container the BlobCodec produces on decode and
// consumes on encode. It is immutable from the codec's perspective: encode
// treats it as pure input, decode constructs a fresh one.
type BlobData struct {
	// WeekDaySpeed is the mean working-day speed, in km/h, 0..255.
	WeekDaySpeed uint8
	// WeekendSpeed is the mean weekend-day speed, in km/h, 0..255.
	WeekendSpeed uint8
	// TimeResolutionMinutes is the width of one time bin, in minutes. Zero
	// means no daily profiles are present; otherwise it must be in [1, 1440]
	// and divide 1440 evenly.
	TimeResolutionMinutes uint16
	// Days maps day index (0 = Sunday .. 6 = Saturday) to that day's speed
	// profile. A day with no entry, or whose accessor reports zero bins, is
	// absent.
	Days map[int]DayAccessor
}

// HasDailySpeeds reports whether any day carries a profile.
func (b BlobData) HasDailySpeeds() bool {
	for _, acc := range b.Days {
		if acc != nil && acc.BinCount() > 0 {
			return true
		}
	}

	return false
}

// presentDays returns the indices of days with a non-empty profile, in
// ascending order (Sunday first).
func (b BlobData) presentDays() []int {
	days := make([]int, 0, 7)
	for d := 0; d < 7; d++ {
		if acc, ok := b.Days[d]; ok && acc != nil && acc.BinCount() > 0 {
			days = append(days, d)
		}
	}

	return days
}
