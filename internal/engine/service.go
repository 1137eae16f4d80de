package engine

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"habitexe/internal/dates"
	"habitexe/internal/storage"
)

// Service owns the habit collection, the XP ledger and the diagnostic
// log. Every state transition goes through it.
type Service struct {
	db       *sql.DB
	habits   *storage.HabitRepo
	logs     *storage.LogRepo
	operator *storage.OperatorRepo
	syslog   *storage.SystemLogRepo

	// now is the injectable clock; tests pin it to fix "today".
	now func() time.Time
}

func NewService(db *sql.DB) *Service {
	return &Service{
		db:       db,
		habits:   storage.NewHabitRepo(db),
		logs:     storage.NewLogRepo(db),
		operator: storage.NewOperatorRepo(db),
		syslog:   storage.NewSystemLogRepo(db),
		now:      time.Now,
	}
}

func (s *Service) HabitRepo() *storage.HabitRepo         { return s.habits }
func (s *Service) LogRepo() *storage.LogRepo             { return s.logs }
func (s *Service) OperatorRepo() *storage.OperatorRepo   { return s.operator }
func (s *Service) SystemLogRepo() *storage.SystemLogRepo { return s.syslog }

// SetClock replaces the wall clock. Intended for tests.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// Today resolves the current day key in the system-wide UTC convention.
func (s *Service) Today() dates.Day {
	return dates.DayOf(s.now())
}

// UserStats is derived fresh from the ledger and rank table; never stored.
type UserStats struct {
	XP         int    `json:"xp"`
	RankTitle  string `json:"rankTitle"`
	NextRankXP int    `json:"nextRankXp"`
	Level      int    `json:"level"`
}

func statsFor(xp int) UserStats {
	r := RankFor(xp)
	return UserStats{
		XP:         xp,
		RankTitle:  r.Title,
		NextRankXP: r.NextXP,
		Level:      LevelForXP(xp),
	}
}

func (s *Service) Stats(ctx context.Context) (UserStats, error) {
	op, err := s.operator.GetOrCreateMain(ctx)
	if err != nil {
		return UserStats{}, err
	}
	return statsFor(op.XP), nil
}

func (s *Service) OperatorName(ctx context.Context) (string, error) {
	op, err := s.operator.GetOrCreateMain(ctx)
	if err != nil {
		return "", err
	}
	return op.Name, nil
}

// RenameOperator updates the operator designation. No-op when the name
// is unchanged or blank.
func (s *Service) RenameOperator(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	op, err := s.operator.GetOrCreateMain(ctx)
	if err != nil {
		return err
	}
	if name == op.Name {
		return nil
	}
	old := op.Name
	op.Name = name
	if err := s.operator.Update(ctx, op); err != nil {
		return err
	}
	s.appendLog(ctx, storage.LogInfo, "operator designation updated: %s -> %s", old, name)
	return nil
}

// appendLog records one diagnostic entry. Messages are lowercased; log
// failures never fail the transition that produced them.
func (s *Service) appendLog(ctx context.Context, kind storage.LogKind, format string, args ...any) {
	entry := &storage.SystemLog{
		ID:        uuid.New().String(),
		Timestamp: s.now(),
		Kind:      kind,
		Message:   strings.ToLower(fmt.Sprintf(format, args...)),
	}
	_ = s.syslog.Append(ctx, entry)
}

// AppendSystemLog exposes the diagnostic channel for boundary callers
// (the uplink result, TUI boot lines).
func (s *Service) AppendSystemLog(ctx context.Context, kind storage.LogKind, message string) {
	s.appendLog(ctx, kind, "%s", message)
}

// SystemLogs returns the retained diagnostic history, oldest first.
func (s *Service) SystemLogs(ctx context.Context) ([]storage.SystemLog, error) {
	return s.syslog.List(ctx)
}

// seedNames are the directives installed on first boot.
var seedNames = []string{
	"core_hydration_protocol",
	"neural_optimization_read",
	"physical_maint_drill",
}

// EnsureSeeded installs the default directives and operator row on a
// fresh database. Subsequent calls are no-ops, including after the user
// deletes every directive.
func (s *Service) EnsureSeeded(ctx context.Context) error {
	op, err := s.operator.Get(ctx, storage.MainOperatorKey)
	if err != nil {
		return err
	}
	if op != nil {
		return nil
	}
	if _, err := s.operator.GetOrCreateMain(ctx); err != nil {
		return err
	}
	for _, name := range seedNames {
		h := &storage.Habit{
			ID:        uuid.New().String(),
			Name:      name,
			Frequency: 1,
		}
		if err := s.habits.Insert(ctx, h); err != nil {
			return err
		}
	}
	return nil
}
