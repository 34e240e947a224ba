package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

func TestBaselineScore(t *testing.T) {
	cases := []struct {
		name     string
		profile  Profile
		mental   float64
		physical float64
	}{
		{"seven hours mixed", Profile{SleepHours: floatPtr(7), WorkStyle: WorkStyleMixed}, 70, 70},
		{"maker gets mental bonus", Profile{SleepHours: floatPtr(7), WorkStyle: WorkStyleMaker}, 80, 70},
		{"manager gets physical penalty", Profile{SleepHours: floatPtr(7), WorkStyle: WorkStyleManager}, 70, 65},
		{"short sleep hits floor", Profile{SleepHours: floatPtr(3)}, 40, 40},
		{"long sleep hits ceiling", Profile{SleepHours: floatPtr(12), WorkStyle: WorkStyleMaker}, 100, 100},
		{"missing sleep defaults to six", Profile{}, 60, 60},
		{"unknown work style ignored", Profile{SleepHours: floatPtr(8), WorkStyle: "freelancer"}, 80, 80},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			score := BaselineScore(tc.profile)
			require.Equal(t, tc.mental, score.Mental)
			require.Equal(t, tc.physical, score.Physical)
		})
	}
}

func TestBaselineScoreStaysInBounds(t *testing.T) {
	for _, style := range []string{WorkStyleMaker, WorkStyleManager, WorkStyleMixed, ""} {
		for hours := 4.0; hours <= 10.0; hours += 0.5 {
			score := BaselineScore(Profile{SleepHours: floatPtr(hours), WorkStyle: style})
			require.GreaterOrEqual(t, score.Mental, 0.0)
			require.LessOrEqual(t, score.Mental, 100.0)
			require.GreaterOrEqual(t, score.Physical, 0.0)
			require.LessOrEqual(t, score.Physical, 100.0)
		}
	}
}

func TestBaselineScoreIsIdempotent(t *testing.T) {
	profile := Profile{SleepHours: floatPtr(6.5), WorkStyle: WorkStyleMaker}
	require.Equal(t, BaselineScore(profile), BaselineScore(profile))
}
