package engine

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"habitexe/internal/storage"
)

func newTestService(t *testing.T) (*Service, func()) {
	t.Helper()
	ctx := context.Background()

	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")
	db, err := storage.Open(ctx, path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	svc := NewService(db)
	cleanup := func() {
		_ = db.Close()
	}
	return svc, cleanup
}

// pinClock fixes the service clock at the given instant and returns a
// setter for advancing it.
func pinClock(svc *Service, start time.Time) func(time.Time) {
	now := start
	svc.SetClock(func() time.Time { return now })
	return func(t time.Time) { now = t }
}

var testDay0 = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

func mustCreate(t *testing.T, svc *Service, name string) *storage.Habit {
	t.Helper()
	h, err := svc.CreateHabit(context.Background(), name)
	if err != nil {
		t.Fatalf("create habit: %v", err)
	}
	if h == nil {
		t.Fatalf("create habit returned nil for %q", name)
	}
	return h
}

func mustStats(t *testing.T, svc *Service) UserStats {
	t.Helper()
	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	return stats
}

func TestToggleRoundTrip(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()
	pinClock(svc, testDay0)

	h := mustCreate(t, svc, "hydration")

	before := mustStats(t, svc)

	res, err := svc.Toggle(ctx, h.ID)
	if err != nil {
		t.Fatalf("toggle (log): %v", err)
	}
	if !res.Logged {
		t.Fatalf("expected log action")
	}
	if res.XPDelta != XPPerLog {
		t.Fatalf("xp delta=%d, want %d", res.XPDelta, XPPerLog)
	}
	if res.Habit.Streak != 1 {
		t.Fatalf("streak=%d, want 1", res.Habit.Streak)
	}

	res2, err := svc.Toggle(ctx, h.ID)
	if err != nil {
		t.Fatalf("toggle (unlog): %v", err)
	}
	if res2.Logged {
		t.Fatalf("expected reversal")
	}
	if res2.XPDelta != -XPPerLog {
		t.Fatalf("reversal delta=%d, want %d", res2.XPDelta, -XPPerLog)
	}
	if res2.Habit.Streak != 0 {
		t.Fatalf("streak after reversal=%d, want 0", res2.Habit.Streak)
	}

	after := mustStats(t, svc)
	if after.XP != before.XP {
		t.Fatalf("xp after round trip=%d, want %d", after.XP, before.XP)
	}

	// Today's entry is gone again.
	entry, err := svc.LogRepo().Get(ctx, h.ID, svc.Today())
	if err != nil {
		t.Fatalf("get entry: %v", err)
	}
	if entry != nil {
		t.Fatalf("expected no entry for today after round trip")
	}
}

func TestConsecutiveDaysStreakAndBonus(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()
	advance := pinClock(svc, testDay0)

	h := mustCreate(t, svc, "pushups")

	// Days 1-7: plain grants, streak 0 -> 7.
	for day := 0; day < 7; day++ {
		advance(testDay0.AddDate(0, 0, day))
		res, err := svc.Toggle(ctx, h.ID)
		if err != nil {
			t.Fatalf("toggle day %d: %v", day, err)
		}
		if res.Bonus {
			t.Fatalf("unexpected bonus on day %d (streak was %d)", day, res.Habit.Streak-1)
		}
		if res.XPDelta != 100 {
			t.Fatalf("day %d gain=%d, want 100", day, res.XPDelta)
		}
		if res.Habit.Streak != day+1 {
			t.Fatalf("day %d streak=%d, want %d", day, res.Habit.Streak, day+1)
		}
	}

	// Day 8: logged while streak==7, bonus-eligible.
	advance(testDay0.AddDate(0, 0, 7))
	res, err := svc.Toggle(ctx, h.ID)
	if err != nil {
		t.Fatalf("toggle day 8: %v", err)
	}
	if !res.Bonus {
		t.Fatalf("expected bonus on day 8")
	}
	if res.XPDelta != 120 {
		t.Fatalf("bonus gain=%d, want 120", res.XPDelta)
	}

	stats := mustStats(t, svc)
	if stats.XP != 820 {
		t.Fatalf("total xp=%d, want 820", stats.XP)
	}
	if stats.RankTitle != "RECRUIT III" {
		t.Fatalf("rank=%q, want RECRUIT III", stats.RankTitle)
	}
	if stats.NextRankXP != 1200 {
		t.Fatalf("next rank xp=%d, want 1200", stats.NextRankXP)
	}
}

func TestUnlogAfterBonusRestoresExactGrant(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()
	advance := pinClock(svc, testDay0)

	h := mustCreate(t, svc, "reading")
	for day := 0; day < 8; day++ {
		advance(testDay0.AddDate(0, 0, day))
		if _, err := svc.Toggle(ctx, h.ID); err != nil {
			t.Fatalf("toggle day %d: %v", day, err)
		}
	}

	// Unlog the bonus day: the recorded 120 comes back off, not the
	// flat penalty.
	res, err := svc.Toggle(ctx, h.ID)
	if err != nil {
		t.Fatalf("unlog: %v", err)
	}
	if res.XPDelta != -120 {
		t.Fatalf("reversal delta=%d, want -120", res.XPDelta)
	}
	if res.Habit.Streak != 7 {
		t.Fatalf("streak=%d, want 7", res.Habit.Streak)
	}
	stats := mustStats(t, svc)
	if stats.XP != 700 {
		t.Fatalf("xp=%d, want 700", stats.XP)
	}
}

func TestUnlogFallbackPenaltyAndFloor(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()
	pinClock(svc, testDay0)

	h := mustCreate(t, svc, "stretch")

	// Entry without a recorded grant: reversal falls back to the flat
	// penalty and the ledger floors at zero.
	if err := svc.LogRepo().Insert(ctx, &storage.HabitLog{
		HabitID: h.ID,
		Day:     svc.Today(),
		Status:  storage.StatusCompleted,
	}); err != nil {
		t.Fatalf("insert entry: %v", err)
	}
	op, err := svc.OperatorRepo().GetOrCreateMain(ctx)
	if err != nil {
		t.Fatalf("operator: %v", err)
	}
	op.XP = 30
	if err := svc.OperatorRepo().Update(ctx, op); err != nil {
		t.Fatalf("set xp: %v", err)
	}

	res, err := svc.Toggle(ctx, h.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if res.Logged {
		t.Fatalf("expected reversal")
	}
	if res.XPDelta != -XPPenaltyUnlog {
		t.Fatalf("delta=%d, want %d", res.XPDelta, -XPPenaltyUnlog)
	}
	stats := mustStats(t, svc)
	if stats.XP != 0 {
		t.Fatalf("xp=%d, want 0 (floored)", stats.XP)
	}
	if res.Habit.Streak != 0 {
		t.Fatalf("streak=%d, want 0 (floored)", res.Habit.Streak)
	}
}

func TestToggleOverFailedEntryCompletesTheDay(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()
	pinClock(svc, testDay0)

	h := mustCreate(t, svc, "lapsed")

	// A failed entry for today (imported history can carry one) is
	// superseded by a fresh log, not treated as done.
	if err := svc.LogRepo().Insert(ctx, &storage.HabitLog{
		HabitID: h.ID,
		Day:     svc.Today(),
		Status:  storage.StatusFailed,
	}); err != nil {
		t.Fatalf("insert failed entry: %v", err)
	}

	res, err := svc.Toggle(ctx, h.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !res.Logged {
		t.Fatalf("expected log action over failed entry")
	}
	if res.XPDelta != XPPerLog {
		t.Fatalf("gain=%d, want %d", res.XPDelta, XPPerLog)
	}

	entry, err := svc.LogRepo().Get(ctx, h.ID, svc.Today())
	if err != nil {
		t.Fatalf("get entry: %v", err)
	}
	if entry == nil || entry.Status != storage.StatusCompleted {
		t.Fatalf("entry=%+v, want completed", entry)
	}
}

func TestToggleUnknownHabit(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()

	if _, err := svc.Toggle(context.Background(), "no-such-id"); err == nil {
		t.Fatalf("expected error for unknown habit")
	}
}

func TestCreateHabitNormalization(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	h := mustCreate(t, svc, "  Morning   RUN ")
	if h.Name != "morning_run" {
		t.Fatalf("name=%q, want morning_run", h.Name)
	}
	if h.Frequency != 1 {
		t.Fatalf("frequency=%d, want 1", h.Frequency)
	}
	if h.Streak != 0 {
		t.Fatalf("streak=%d, want 0", h.Streak)
	}

	// Blank name: silent no-op.
	before, err := svc.HabitRepo().Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	got, err := svc.CreateHabit(ctx, "   ")
	if err != nil {
		t.Fatalf("create blank: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil habit for blank name")
	}
	after, err := svc.HabitRepo().Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if after != before {
		t.Fatalf("habit count changed on blank create: %d -> %d", before, after)
	}
}

func TestUpdateHabitClampsFrequency(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	h := mustCreate(t, svc, "journal")

	low, err := svc.UpdateHabit(ctx, h.ID, "journal", 0)
	if err != nil {
		t.Fatalf("update low: %v", err)
	}
	if low.Frequency != 1 {
		t.Fatalf("frequency=%d, want 1", low.Frequency)
	}

	high, err := svc.UpdateHabit(ctx, h.ID, "journal", 9999)
	if err != nil {
		t.Fatalf("update high: %v", err)
	}
	if high.Frequency != 365 {
		t.Fatalf("frequency=%d, want 365", high.Frequency)
	}
}

func TestUpdateDoesNotTouchHistoryOrStreak(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()
	pinClock(svc, testDay0)

	h := mustCreate(t, svc, "water")
	if _, err := svc.Toggle(ctx, h.ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	updated, err := svc.UpdateHabit(ctx, h.ID, "hydrate", 2)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Streak != 1 {
		t.Fatalf("streak=%d, want 1", updated.Streak)
	}
	history, err := svc.LogRepo().ListByHabit(ctx, h.ID)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("history length=%d, want 1", len(history))
	}
}

func TestDeleteHabitCascadesHistory(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()
	pinClock(svc, testDay0)

	h := mustCreate(t, svc, "doomed")
	if _, err := svc.Toggle(ctx, h.ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	xpBefore := mustStats(t, svc).XP

	if err := svc.DeleteHabit(ctx, h.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	gone, err := svc.HabitRepo().Get(ctx, h.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if gone != nil {
		t.Fatalf("habit still present after delete")
	}
	history, err := svc.LogRepo().ListByHabit(ctx, h.ID)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 0 {
		t.Fatalf("history survived delete: %d rows", len(history))
	}
	// No retroactive clawback.
	if got := mustStats(t, svc).XP; got != xpBefore {
		t.Fatalf("xp changed on delete: %d -> %d", xpBefore, got)
	}
}

func TestPromotionAlertAppended(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()
	pinClock(svc, testDay0)

	op, err := svc.OperatorRepo().GetOrCreateMain(ctx)
	if err != nil {
		t.Fatalf("operator: %v", err)
	}
	op.XP = 250 // 50 below RECRUIT II
	if err := svc.OperatorRepo().Update(ctx, op); err != nil {
		t.Fatalf("set xp: %v", err)
	}

	h := mustCreate(t, svc, "promotable")
	if _, err := svc.Toggle(ctx, h.ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	logs, err := svc.SystemLogs(ctx)
	if err != nil {
		t.Fatalf("system logs: %v", err)
	}
	if len(logs) == 0 {
		t.Fatalf("no system logs")
	}
	last := logs[len(logs)-1]
	if last.Kind != storage.LogAlert {
		t.Fatalf("last log kind=%s, want ALERT", last.Kind)
	}

	// Demotion: unlog back below the threshold.
	if _, err := svc.Toggle(ctx, h.ID); err != nil {
		t.Fatalf("unlog: %v", err)
	}
	logs, err = svc.SystemLogs(ctx)
	if err != nil {
		t.Fatalf("system logs: %v", err)
	}
	last = logs[len(logs)-1]
	if last.Kind != storage.LogAlert {
		t.Fatalf("last log kind=%s, want ALERT (demotion)", last.Kind)
	}
}

func TestSystemLogCap(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	for i := 0; i < storage.SystemLogCap+10; i++ {
		svc.AppendSystemLog(ctx, storage.LogInfo, "entry")
	}
	logs, err := svc.SystemLogs(ctx)
	if err != nil {
		t.Fatalf("system logs: %v", err)
	}
	if len(logs) != storage.SystemLogCap {
		t.Fatalf("retained=%d, want %d", len(logs), storage.SystemLogCap)
	}
}

func TestEnsureSeededOnlyOnce(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	if err := svc.EnsureSeeded(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}
	n, err := svc.HabitRepo().Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 3 {
		t.Fatalf("seeded habits=%d, want 3", n)
	}

	// Deleting everything must not re-trigger the seed.
	if err := svc.HabitRepo().DeleteAll(ctx); err != nil {
		t.Fatalf("delete all: %v", err)
	}
	if err := svc.EnsureSeeded(ctx); err != nil {
		t.Fatalf("reseed: %v", err)
	}
	n, err = svc.HabitRepo().Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Fatalf("habits after reseed=%d, want 0", n)
	}
}

func TestPastDaysImmutableThroughToggle(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()
	advance := pinClock(svc, testDay0)

	h := mustCreate(t, svc, "archive")
	if _, err := svc.Toggle(ctx, h.ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	day0 := svc.Today()

	// Next day: toggling logs a new entry instead of reversing
	// yesterday's.
	advance(testDay0.AddDate(0, 0, 1))
	res, err := svc.Toggle(ctx, h.ID)
	if err != nil {
		t.Fatalf("toggle day 2: %v", err)
	}
	if !res.Logged {
		t.Fatalf("expected a fresh log on the new day")
	}

	kept, err := svc.LogRepo().Get(ctx, h.ID, day0)
	if err != nil {
		t.Fatalf("get day0: %v", err)
	}
	if kept == nil {
		t.Fatalf("yesterday's entry was touched")
	}
}
