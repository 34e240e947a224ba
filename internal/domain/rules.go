package domain

import (
	"math"
	"regexp"
	"strings"
)

// Category identifies the primary activity classification. At most one
// primary category applies per activity.
type Category string

const (
	CategorySleep       Category = "sleep"
	CategoryWork        Category = "work"
	CategoryExercise    Category = "exercise"
	CategoryWalk        Category = "walk"
	CategoryMindfulness Category = "mindfulness"
	CategoryNone        Category = "none"
)

// ActivityResult is the outcome of scoring a single activity description.
// Delta carries the rounded adjustment for reporting; NewVals is the running
// score shifted by the unrounded delta and clamped to [0,100].
type ActivityResult struct {
	Delta     Delta    `json:"delta"`
	NewVals   Score    `json:"newVals"`
	Category  Category `json:"category"`
	Modifiers []string `json:"modifiers,omitempty"`
	Duration  float64  `json:"duration_hours,omitempty"`
	HasTime   bool     `json:"duration_parsed"`
}

// primaryRule is one entry of the mutually-exclusive category table. Rules
// are evaluated top-down and the first matching pattern wins. Each rule owns
// the default duration used when the text carries no time expression.
type primaryRule struct {
	category     Category
	pattern      *regexp.Regexp
	defaultHours float64
	effect       func(hours float64) (dMental, dPhysical float64)
}

// modifierRule entries stack: every matching modifier contributes on top of
// the primary category effect, or alone when no category matched.
type modifierRule struct {
	name    string
	pattern *regexp.Regexp
	effect  func(hours float64, hasTime bool) (dMental, dPhysical float64)
}

var primaryRules = []primaryRule{
	{
		category:     CategorySleep,
		pattern:      regexp.MustCompile(`\b(sleep|sleeps|sleeping|slept|nap|naps|napped|napping|rest|rested|resting)\b`),
		defaultHours: 8,
		effect:       sleepEffect,
	},
	{
		category:     CategoryWork,
		pattern:      regexp.MustCompile(`\b(study|studying|studied|work|worked|working|code|coding|coded|meeting|meetings)\b`),
		defaultHours: 1.5,
		effect: func(hours float64) (float64, float64) {
			return -hours * 5, -hours * 2
		},
	},
	{
		category:     CategoryExercise,
		pattern:      regexp.MustCompile(`\b(run|running|ran|jog|jogging|jogged|workout|workouts|gym|exercise|exercised)\b`),
		defaultHours: 1,
		effect: func(hours float64) (float64, float64) {
			return hours * 4, hours * 10
		},
	},
	{
		category:     CategoryWalk,
		pattern:      regexp.MustCompile(`\b(walk|walked|walking|stroll|strolled|stretch|stretched|stretching)\b`),
		defaultHours: 0.5,
		effect: func(hours float64) (float64, float64) {
			return hours * 5, hours * 5
		},
	},
	{
		category:     CategoryMindfulness,
		pattern:      regexp.MustCompile(`\b(yoga|meditate|meditated|meditating|meditation|mindful|mindfulness|breathing)\b`),
		defaultHours: 0.5,
		effect: func(hours float64) (float64, float64) {
			return hours * 15, hours * 4
		},
	},
}

var modifierRules = []modifierRule{
	{
		name:    "stimulant",
		pattern: regexp.MustCompile(`\b(coffee|caffeine|tea|espresso|latte)\b`),
		effect: func(float64, bool) (float64, float64) {
			return 10, 2
		},
	},
	{
		name:    "heavy_food",
		pattern: regexp.MustCompile(`heavy meal|fast food|junk food|\b(sugar|sugary|ate|eating|overate)\b`),
		effect: func(float64, bool) (float64, float64) {
			return -5, -10
		},
	},
	{
		name:    "alcohol",
		pattern: regexp.MustCompile(`\b(alcohol|beer|wine|drank|drinks|drinking)\b`),
		effect: func(float64, bool) (float64, float64) {
			return -10, -15
		},
	},
	{
		name:    "screen_time",
		pattern: regexp.MustCompile(`social media|\b(gaming|gamed|doomscrolling|doomscrolled|scrolling|instagram|tiktok|netflix)\b`),
		effect: func(hours float64, hasTime bool) (float64, float64) {
			if !hasTime {
				hours = 1
			}
			return -hours * 4, 0
		},
	},
}

// sleepEffect implements the sleep threshold sub-table. Thresholds are
// checked top-down; the first band that fits wins.
func sleepEffect(hours float64) (float64, float64) {
	switch {
	case hours > 14:
		return -30, -20 // extreme oversleep
	case hours > 9.5:
		return -10, -5 // oversleep
	case hours >= 7:
		return 25, 20 // optimal
	case hours >= 1:
		return hours * 3, hours * 2
	default:
		return 15, 5 // sub-hour nap, flat bonus
	}
}

// ComputeDelta classifies the activity text and derives the signed score
// adjustment. Unrecognised text is not an error: it yields a zero delta.
func ComputeDelta(activity string, current Score) ActivityResult {
	lowered := strings.ToLower(activity)

	parsed, hasTime := ParseDuration(lowered)

	result := ActivityResult{
		Category: CategoryNone,
		Duration: parsed,
		HasTime:  hasTime,
	}

	var dMental, dPhysical float64

	for _, rule := range primaryRules {
		if !rule.pattern.MatchString(lowered) {
			continue
		}
		hours := rule.defaultHours
		if hasTime {
			hours = parsed
		}
		dM, dP := rule.effect(hours)
		dMental += dM
		dPhysical += dP
		result.Category = rule.category
		break
	}

	for _, rule := range modifierRules {
		if !rule.pattern.MatchString(lowered) {
			continue
		}
		dM, dP := rule.effect(parsed, hasTime)
		dMental += dM
		dPhysical += dP
		result.Modifiers = append(result.Modifiers, rule.name)
	}

	result.Delta = Delta{
		Mental:   int(math.Round(dMental)),
		Physical: int(math.Round(dPhysical)),
	}
	result.NewVals = current.Add(dMental, dPhysical).Clamp()
	return result
}
