package domain

// Rate-limiter parameters for catalog additions.
const (
	// AdditionCooldownSeconds is the minimum interval between additions.
	AdditionCooldownSeconds = 60
	// DailyAdditionCap is the maximum number of additions per calendar day.
	DailyAdditionCap = 50

	secondsPerDay = 86400
)

// ApplyAdditionRate enforces the cooldown and daily cap for a catalog
// addition at the given unix time, then records the addition in the
// rate-limiter fields. Windows are evaluated lazily: the daily counter rolls
// over on the first attempt of a new day.
//
// The receiver is an in-memory snapshot. On error the caller must discard it
// unsaved, so a rejected attempt never persists the day rollover either.
func (s *State) ApplyAdditionRate(now int64) error {
	currentDay := now / secondsPerDay
	if currentDay != s.LastAdditionDay {
		s.AdditionsToday = 0
		s.LastAdditionDay = currentDay
	}

	// The very first addition ever bypasses the cooldown.
	if s.LastAdditionTimestamp != 0 && now-s.LastAdditionTimestamp < AdditionCooldownSeconds {
		return ErrCooldownActive
	}
	if s.AdditionsToday >= DailyAdditionCap {
		return ErrDailyCapReached
	}

	s.LastAdditionTimestamp = now
	s.AdditionsToday++
	return nil
}
