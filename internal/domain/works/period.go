package works

// AllFilter is the sentinel filter value that matches every category or period.
const AllFilter = "All"

const (
	PeriodContemporary = "Contemporary (2020-2024)"
	PeriodModern       = "Modern (2000-2019)"
	PeriodClassical    = "Classical (1980-1999)"
)

// Periods lists the period labels newest first.
func Periods() []string {
	return []string{PeriodContemporary, PeriodModern, PeriodClassical}
}

// PeriodFor buckets a year into its period label. Years past 2024 stay
// Contemporary and years before 1980 fall into Classical.
func PeriodFor(year int) string {
	switch {
	case year >= 2020:
		return PeriodContemporary
	case year >= 2000:
		return PeriodModern
	default:
		return PeriodClassical
	}
}

func IsPeriod(label string) bool {
	for _, p := range Periods() {
		if p == label {
			return true
		}
	}
	return false
}
