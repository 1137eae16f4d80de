package engine

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"habitexe/internal/storage"
)

var nameSpaces = regexp.MustCompile(`\s+`)

// NormalizeName canonicalizes a directive name: trimmed, lowercased,
// internal whitespace collapsed to single underscores.
func NormalizeName(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return nameSpaces.ReplaceAllString(strings.ToLower(trimmed), "_")
}

func clampFrequency(f int) int {
	if f < FrequencyMin {
		return FrequencyMin
	}
	if f > FrequencyMax {
		return FrequencyMax
	}
	return f
}

// CreateHabit initializes a new directive. A blank name is a silent
// no-op: (nil, nil).
func (s *Service) CreateHabit(ctx context.Context, rawName string) (*storage.Habit, error) {
	name := NormalizeName(rawName)
	if name == "" {
		return nil, nil
	}

	h := &storage.Habit{
		ID:        uuid.New().String(),
		Name:      name,
		Frequency: 1,
	}
	if err := s.habits.Insert(ctx, h); err != nil {
		return nil, err
	}
	s.appendLog(ctx, storage.LogSuccess, "new directive initialized: %s", name)
	return h, nil
}

// UpdateHabit reconfigures name and frequency. A blank name is a silent
// no-op; frequency is clamped to [1, 365]. History and streak are left
// untouched.
func (s *Service) UpdateHabit(ctx context.Context, id, rawName string, frequency int) (*storage.Habit, error) {
	name := NormalizeName(rawName)
	if name == "" {
		return nil, nil
	}

	h, err := s.habits.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if h == nil {
		return nil, fmt.Errorf("directive %s not found", id)
	}

	h.Name = name
	h.Frequency = clampFrequency(frequency)
	if err := s.habits.Update(ctx, h); err != nil {
		return nil, err
	}
	s.appendLog(ctx, storage.LogInfo, "directive config updated: %s", name)
	return h, nil
}

// DeleteHabit terminates a directive along with its entire history.
// Earned XP is not clawed back.
func (s *Service) DeleteHabit(ctx context.Context, id string) error {
	h, err := s.habits.Get(ctx, id)
	if err != nil {
		return err
	}
	if h == nil {
		return fmt.Errorf("directive %s not found", id)
	}
	if err := s.habits.Delete(ctx, id); err != nil {
		return err
	}
	s.appendLog(ctx, storage.LogError, "directive terminated: %s", h.Name)
	return nil
}

// HabitView pairs a habit with its full history for display and derived
// views.
type HabitView struct {
	storage.Habit
	History []storage.HabitLog
}

// ListHabits returns all directives with their histories, oldest first.
func (s *Service) ListHabits(ctx context.Context) ([]HabitView, error) {
	habits, err := s.habits.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]HabitView, 0, len(habits))
	for _, h := range habits {
		history, err := s.logs.ListByHabit(ctx, h.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, HabitView{Habit: h, History: history})
	}
	return out, nil
}

// FindHabit resolves a directive by id, then by normalized name.
func (s *Service) FindHabit(ctx context.Context, ref string) (*storage.Habit, error) {
	h, err := s.habits.Get(ctx, ref)
	if err != nil {
		return nil, err
	}
	if h != nil {
		return h, nil
	}
	return s.habits.GetByName(ctx, NormalizeName(ref))
}
