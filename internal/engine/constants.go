package engine

const (
	// XPPerLog is the base grant for logging a directive.
	XPPerLog = 100

	// XPPenaltyUnlog is the fallback deduction when a reversed entry
	// carries no recorded grant.
	XPPenaltyUnlog = 100

	// XPPenaltyFail is reserved for failed entries. No toggle path
	// produces a failed entry today.
	XPPenaltyFail = 50

	// StreakBonusThreshold is the streak at which the multiplier kicks in.
	StreakBonusThreshold = 7

	// StreakBonusMultiplier scales the grant once the threshold is met.
	StreakBonusMultiplier = 1.2
)

// FrequencyMin and FrequencyMax bound a directive's expected-execution
// interval in days.
const (
	FrequencyMin = 1
	FrequencyMax = 365
)
