package engine

import (
	"context"
	"fmt"
	"math"

	"habitexe/internal/storage"
)

// ToggleResult reports one log/unlog transition.
type ToggleResult struct {
	Habit   *storage.Habit
	Logged  bool // false means the action was reversed
	XPDelta int  // positive on log, negative on unlog
	Bonus   bool // streak multiplier applied
	Stats   UserStats
}

// Toggle flips today's entry for a directive.
//
// Pending -> Completed: append a completed entry carrying the XP grant
// (streak bonus applied when the streak has reached the threshold),
// bump the streak and credit the ledger.
//
// Completed -> Pending: remove today's entry, deduct the grant it
// recorded (fallback penalty when absent), decrement the streak. Both
// the ledger and the streak floor at zero.
//
// Past days are immutable through this path; exactly one diagnostic
// entry is appended per toggle, plus one alert when the derived rank
// title changes.
func (s *Service) Toggle(ctx context.Context, habitID string) (*ToggleResult, error) {
	h, err := s.habits.Get(ctx, habitID)
	if err != nil {
		return nil, err
	}
	if h == nil {
		return nil, fmt.Errorf("directive %s not found", habitID)
	}

	op, err := s.operator.GetOrCreateMain(ctx)
	if err != nil {
		return nil, err
	}
	rankBefore := RankFor(op.XP)

	today := s.Today()
	entry, err := s.logs.Get(ctx, h.ID, today)
	if err != nil {
		return nil, err
	}

	res := &ToggleResult{Habit: h}

	if entry != nil && entry.Status == storage.StatusCompleted {
		// Reverse action: deduct what the entry recorded.
		deduct := XPPenaltyUnlog
		if entry.XPGained != nil {
			deduct = *entry.XPGained
		}
		if err := s.logs.Delete(ctx, h.ID, today); err != nil {
			return nil, err
		}
		h.Streak--
		if h.Streak < 0 {
			h.Streak = 0
		}
		op.XP -= deduct
		if op.XP < 0 {
			op.XP = 0
		}
		res.Logged = false
		res.XPDelta = -deduct
		if err := s.habits.Update(ctx, h); err != nil {
			return nil, err
		}
		if err := s.operator.Update(ctx, op); err != nil {
			return nil, err
		}
		s.appendLog(ctx, storage.LogError, "action reversed: %s // -%d xp", h.Name, deduct)
	} else {
		bonus := h.Streak >= StreakBonusThreshold
		mult := 1.0
		if bonus {
			mult = StreakBonusMultiplier
		}
		gain := int(math.Floor(XPPerLog * mult))

		logged := &storage.HabitLog{
			HabitID:  h.ID,
			Day:      today,
			Status:   storage.StatusCompleted,
			XPGained: &gain,
		}
		if err := s.logs.Insert(ctx, logged); err != nil {
			return nil, err
		}
		h.Streak++
		op.XP += gain
		res.Logged = true
		res.XPDelta = gain
		res.Bonus = bonus
		if err := s.habits.Update(ctx, h); err != nil {
			return nil, err
		}
		if err := s.operator.Update(ctx, op); err != nil {
			return nil, err
		}
		if bonus {
			s.appendLog(ctx, storage.LogSuccess, "logged: %s // +%d xp [streak bonus active]", h.Name, gain)
		} else {
			s.appendLog(ctx, storage.LogSuccess, "logged: %s // +%d xp", h.Name, gain)
		}
	}

	rankAfter := RankFor(op.XP)
	if rankAfter.Title != rankBefore.Title {
		if rankAfter.Index > rankBefore.Index {
			s.appendLog(ctx, storage.LogAlert, "*** system alert: promotion achieved *** rank: %s", rankAfter.Title)
		} else {
			s.appendLog(ctx, storage.LogAlert, "*** system alert: rank demotion detected *** rank: %s", rankAfter.Title)
		}
	}

	res.Stats = statsFor(op.XP)
	return res, nil
}
