package matcher

import (
	"github.com/dustin/go-humanize"
)

// ScoreSalary compares the job's salary band with the profile's
// expectations. A zero bound counts as not given.
func ScoreSalary(expMin, expMax, jobMin, jobMax *int) (int, []string) {
	if !given(jobMin) && !given(jobMax) {
		return 50, []string{"Salary not disclosed"}
	}

	if !given(expMin) {
		offered := humanize.Comma(int64(valueOr(jobMin, 0)))
		return 70, []string{"Salary expectations not set - job offers ₹" + offered}
	}

	jobLow := valueOr(jobMin, 0)
	jobHigh := valueOr(jobMax, jobLow)
	jobMid := float64(jobLow+jobHigh) / 2

	expLow := float64(*expMin)
	// Without an upper bound the expectation stretches to 130% of the minimum.
	expHigh := float64(expLow * 1.3)
	if given(expMax) {
		expHigh = float64(*expMax)
	}
	expMid := (expLow + expHigh) / 2

	switch {
	case jobMid >= expMid:
		return 100, []string{"Salary meets or exceeds expectations"}
	case jobMid >= expMid*0.8:
		return 80, []string{"Salary slightly below expectations but competitive"}
	case jobMid >= expMid*0.6:
		return 50, []string{"Salary below expectations - consider for growth opportunities"}
	default:
		return 30, []string{"Salary significantly below expectations"}
	}
}

func given(v *int) bool {
	return v != nil && *v != 0
}

// valueOr returns *v when it is given and fallback otherwise.
func valueOr(v *int, fallback int) int {
	if given(v) {
		return *v
	}
	return fallback
}
