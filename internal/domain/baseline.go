package domain

// Work styles recognised by the baseline scorer. Any other value applies no
// adjustment.
const (
	WorkStyleMaker   = "maker"
	WorkStyleManager = "manager"
	WorkStyleMixed   = "mixed"
)

const defaultSleepHours = 6

// Profile captures the onboarding answers used to seed the energy chart.
type Profile struct {
	SleepHours *float64 `json:"sleepHours,omitempty"`
	WorkStyle  string   `json:"workStyle,omitempty"`
}

// BaselineScore derives the initial energy pair from a profile. Makers get a
// mental bonus, managers a physical penalty. Pure function; identical input
// yields identical output.
func BaselineScore(profile Profile) Score {
	sleepHours := float64(defaultSleepHours)
	if profile.SleepHours != nil {
		sleepHours = *profile.SleepHours
	}

	base := clamp(sleepHours*10, 40, 100)

	mental := base
	if profile.WorkStyle == WorkStyleMaker {
		mental += 10
	}

	physical := base
	if profile.WorkStyle == WorkStyleManager {
		physical -= 5
	}

	return Score{Mental: mental, Physical: physical}.Clamp()
}
