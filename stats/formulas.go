package stats

import "math"

const (
	healthPerLevel = 0.15
	rewardPerLevel = 0.5
	rewardDivisor  = 10.0
)

// ScaledMaxHealth grows the level-1 baseline by 15% per level above the first,
// truncated to a whole number of hit points.
func ScaledMaxHealth(baseHealth float64, level int) float64 {
	if level < 1 {
		level = 1
	}
	return math.Floor(baseHealth * (1 + float64(level-1)*healthPerLevel))
}

// KillReward derives the experience payout from the unscaled base health:
// floor(base·(1+level·0.5)/10). A level-1, 75-health monster pays 11.
func KillReward(baseHealth float64, level int) int {
	if level < 1 {
		level = 1
	}
	return int(math.Floor(baseHealth * (1 + float64(level)*rewardPerLevel) / rewardDivisor))
}

// HealthFraction clamps the remaining-health ratio to [0, 1] before any
// dependent computation (boss enrage thresholds, health bars).
func HealthFraction(health, maxHealth float64) float64 {
	if maxHealth <= 0 {
		return 0
	}
	return clamp(health/maxHealth, 0, 1)
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
