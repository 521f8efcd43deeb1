package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrGoalLimit is returned by AddGoal and UpdateGoal when committing would
// leave more than MaxActiveGoals goals active today. The transaction is
// rolled back; the document is left unchanged.
var ErrGoalLimit = errors.New("goal limit reached")

// ErrEmptyTitle is returned when a goal title is blank after trimming.
var ErrEmptyTitle = errors.New("goal title is empty")

// ErrInvalidEndDate is returned when an end date does not parse or falls
// before the goal's start date.
var ErrInvalidEndDate = errors.New("invalid end date")

// Store owns the durable goal document. Every mutation runs as one atomic
// transaction against it, and all other components only ever see immutable
// snapshots through Goals or Watch.
type Store struct {
	doc *docFile
	now func() time.Time
}

// NewStore opens (or creates) the preferences document at path.
func NewStore(path string) (*Store, error) {
	doc, err := newDocFile(path)
	if err != nil {
		return nil, err
	}
	return &Store{doc: doc, now: time.Now}, nil
}

// Path returns the location of the backing document.
func (s *Store) Path() string {
	return s.doc.path
}

// Goals returns the current goal list in insertion order.
func (s *Store) Goals() ([]Goal, error) {
	p, err := s.doc.load()
	if err != nil {
		return nil, err
	}
	return DecodeGoals(p.GoalsJSON)
}

// Watch streams goal-list snapshots: the current list immediately, then one
// per committed change, in commit order, until ctx is cancelled. A slow
// consumer may have intermediate snapshots coalesced but never reordered.
// Changes written by other processes are picked up too.
func (s *Store) Watch(ctx context.Context) (<-chan []Goal, error) {
	if err := s.doc.watchExternal(ctx); err != nil {
		return nil, err
	}

	id, prefsCh := s.doc.subscribe()
	out := make(chan []Goal, 1)

	// Seed the duplicate filter from the same load that produced the
	// initial snapshot. Starting it empty would swallow a later broadcast
	// whose goal document is also empty, such as removing the last goal.
	p, err := s.doc.load()
	if err != nil {
		s.doc.unsubscribe(id)
		return nil, err
	}
	initial, err := DecodeGoals(p.GoalsJSON)
	if err != nil {
		s.doc.unsubscribe(id)
		return nil, err
	}
	out <- initial

	go func() {
		defer close(out)
		defer s.doc.unsubscribe(id)
		lastDoc := p.GoalsJSON
		for {
			select {
			case p, ok := <-prefsCh:
				if !ok {
					return
				}
				if p.GoalsJSON == lastDoc {
					continue
				}
				lastDoc = p.GoalsJSON
				goals, err := DecodeGoals(p.GoalsJSON)
				if err != nil {
					continue
				}
				select {
				case out <- goals:
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}

// AddGoal creates a goal starting today with a fresh id and appends it. The
// end date must parse and may not precede today. Fails with ErrGoalLimit if
// the goal would be active and the active count is already at the cap.
func (s *Store) AddGoal(title, description, endDate string) (Goal, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Goal{}, ErrEmptyTitle
	}
	endDate = strings.TrimSpace(endDate)
	today := dateOf(s.now())

	end, ok := ParseGoalDate(endDate)
	if !ok || end.Before(today) {
		return Goal{}, fmt.Errorf("%w: %q", ErrInvalidEndDate, endDate)
	}

	goal := Goal{
		ID:          uuid.NewString(),
		Title:       title,
		Description: strings.TrimSpace(description),
		StartDate:   today.Format(DateLayout),
		EndDate:     endDate,
	}

	err := s.doc.edit(func(p *prefs) error {
		stored, err := DecodeGoals(p.GoalsJSON)
		if err != nil {
			return err
		}
		updated := append(stored, goal)
		if goal.IsActive(today) && ActiveCount(updated, today) > MaxActiveGoals {
			return ErrGoalLimit
		}
		return writeGoals(p, updated)
	})
	if err != nil {
		return Goal{}, err
	}
	return goal, nil
}

// UpdateGoal replaces the title, description and end date of the goal with
// the given id. An unknown id is a silent no-op: the goal may have been
// deleted concurrently and the caller's view will catch up via the stream.
// The id and start date never change.
func (s *Store) UpdateGoal(id, title, description, endDate string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrEmptyTitle
	}
	endDate = strings.TrimSpace(endDate)
	today := dateOf(s.now())

	end, endOK := ParseGoalDate(endDate)
	if !endOK {
		return fmt.Errorf("%w: %q", ErrInvalidEndDate, endDate)
	}

	return s.doc.edit(func(p *prefs) error {
		stored, err := DecodeGoals(p.GoalsJSON)
		if err != nil {
			return err
		}
		idx := indexOf(stored, id)
		if idx == -1 {
			return nil
		}
		if start, ok := ParseGoalDate(stored[idx].StartDate); ok && end.Before(start) {
			return fmt.Errorf("%w: %q precedes start date", ErrInvalidEndDate, endDate)
		}
		stored[idx].Title = title
		stored[idx].Description = strings.TrimSpace(description)
		stored[idx].EndDate = endDate
		if ActiveCount(stored, today) > MaxActiveGoals {
			return ErrGoalLimit
		}
		return writeGoals(p, stored)
	})
}

// RemoveGoal deletes the goal with the given id. Removing an unknown id is
// a no-op that leaves the document untouched.
func (s *Store) RemoveGoal(id string) error {
	return s.doc.edit(func(p *prefs) error {
		stored, err := DecodeGoals(p.GoalsJSON)
		if err != nil {
			return err
		}
		kept := stored[:0]
		for _, g := range stored {
			if g.ID != id {
				kept = append(kept, g)
			}
		}
		return writeGoals(p, kept)
	})
}

// CompleteGoal moves the goal's end date to yesterday so the date-derived
// classification files it under completed. The start date is untouched and
// the active count can only shrink, so no cap check is needed. An unknown
// id is a no-op.
func (s *Store) CompleteGoal(id string) error {
	yesterday := dateOf(s.now()).AddDate(0, 0, -1).Format(DateLayout)
	return s.doc.edit(func(p *prefs) error {
		stored, err := DecodeGoals(p.GoalsJSON)
		if err != nil {
			return err
		}
		idx := indexOf(stored, id)
		if idx == -1 {
			return nil
		}
		stored[idx].EndDate = yesterday
		return writeGoals(p, stored)
	})
}

// ActiveWindow returns the reminder window as (startMin, endMin) minutes of
// day, defaulting to 09:00–21:00 when never set.
func (s *Store) ActiveWindow() (int, int, error) {
	p, err := s.doc.load()
	if err != nil {
		return 0, 0, err
	}
	start, end := DefaultWindowStartMin, DefaultWindowEndMin
	if p.ActiveStartMin != nil {
		start = *p.ActiveStartMin
	}
	if p.ActiveEndMin != nil {
		end = *p.ActiveEndMin
	}
	return start, end, nil
}

// SetActiveWindow stores the reminder window, clamping both bounds into a
// single 24h day.
func (s *Store) SetActiveWindow(startMin, endMin int) error {
	start := clampMinute(startMin)
	end := clampMinute(endMin)
	return s.doc.edit(func(p *prefs) error {
		p.ActiveStartMin = &start
		p.ActiveEndMin = &end
		return nil
	})
}

// ThemeMode returns the stored theme preference, falling back to light for
// unset or unrecognized values.
func (s *Store) ThemeMode() (ThemeMode, error) {
	p, err := s.doc.load()
	if err != nil {
		return ThemeLight, err
	}
	return ParseThemeMode(p.ThemeMode), nil
}

// SetThemeMode stores the theme preference.
func (s *Store) SetThemeMode(mode ThemeMode) error {
	return s.doc.edit(func(p *prefs) error {
		p.ThemeMode = string(mode)
		return nil
	})
}

// writeGoals encodes the list into the document, clearing the key entirely
// when the list is empty so an empty store stays an empty document.
func writeGoals(p *prefs, goals []Goal) error {
	if len(goals) == 0 {
		p.GoalsJSON = ""
		return nil
	}
	doc, err := EncodeGoals(goals)
	if err != nil {
		return err
	}
	p.GoalsJSON = doc
	return nil
}

func indexOf(goals []Goal, id string) int {
	for i, g := range goals {
		if g.ID == id {
			return i
		}
	}
	return -1
}

func clampMinute(m int) int {
	if m < 0 {
		return 0
	}
	if m > MaxMinuteOfDay {
		return MaxMinuteOfDay
	}
	return m
}
