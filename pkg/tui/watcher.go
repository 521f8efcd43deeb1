package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/arif/checkin/pkg/store"
)

// StartWatcher bridges the store's live goal stream into the program as
// GoalsMsg values. The store handles file watching and debouncing itself;
// this goroutine only pumps snapshots. The returned cleanup stops it.
func StartWatcher(s *store.Store, program *tea.Program) (func(), error) {
	ctx, cancel := context.WithCancel(context.Background())

	ch, err := s.Watch(ctx)
	if err != nil {
		cancel()
		return nil, err
	}

	go func() {
		for goals := range ch {
			program.Send(GoalsMsg(goals))
		}
	}()

	return cancel, nil
}
