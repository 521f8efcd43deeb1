package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/arif/checkin/pkg/sched"
	"github.com/arif/checkin/pkg/store"
	"github.com/arif/checkin/pkg/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	s, err := store.NewStore(documentPath())
	if err != nil {
		return err
	}

	args := os.Args[1:]
	jsonOutput := hasFlag(args, "--json")
	args = removeFlag(args, "--json")
	args = removeFlagWithValue(args, "--dir")

	if len(args) == 0 {
		return runTUI(s)
	}

	switch args[0] {
	case "list":
		return cmdList(s, jsonOutput)
	case "add":
		if len(args) < 3 {
			return fmt.Errorf("usage: checkin add <title> <end-date> [description]")
		}
		desc := strings.Join(args[3:], " ")
		return cmdAdd(s, args[1], args[2], desc, jsonOutput)
	case "edit":
		if len(args) < 4 {
			return fmt.Errorf("usage: checkin edit <id> <title> <end-date> [description]")
		}
		desc := strings.Join(args[4:], " ")
		return cmdEdit(s, args[1], args[2], args[3], desc, jsonOutput)
	case "complete":
		if len(args) < 2 {
			return fmt.Errorf("usage: checkin complete <id>")
		}
		return cmdComplete(s, args[1], jsonOutput)
	case "delete":
		if len(args) < 2 {
			return fmt.Errorf("usage: checkin delete <id>")
		}
		return cmdDelete(s, args[1], jsonOutput)
	case "window":
		if len(args) == 1 {
			return cmdWindowShow(s, jsonOutput)
		}
		if len(args) < 3 {
			return fmt.Errorf("usage: checkin window [<start HH:MM> <end HH:MM>]")
		}
		return cmdWindowSet(s, args[1], args[2], jsonOutput)
	case "theme":
		if len(args) == 1 {
			return cmdThemeShow(s, jsonOutput)
		}
		return cmdThemeSet(s, args[1], jsonOutput)
	case "notify":
		return cmdNotify(s)
	case "remind":
		return cmdRemind(s)
	default:
		return fmt.Errorf("unknown command: %s\nUsage: checkin [list|add|edit|complete|delete|window|theme|notify|remind]", args[0])
	}
}

func documentPath() string {
	if dir := os.Getenv("CHECKIN_DIR"); dir != "" {
		return filepath.Join(dir, store.DocumentName)
	}
	for i, a := range os.Args {
		if a == "--dir" && i+1 < len(os.Args) {
			return filepath.Join(os.Args[i+1], store.DocumentName)
		}
	}
	return store.DefaultDocumentPath()
}

func hasFlag(args []string, flag string) bool {
	for _, a := range args {
		if a == flag {
			return true
		}
	}
	return false
}

func removeFlag(args []string, flag string) []string {
	var result []string
	for _, a := range args {
		if a != flag {
			result = append(result, a)
		}
	}
	return result
}

func removeFlagWithValue(args []string, flag string) []string {
	var result []string
	for i := 0; i < len(args); i++ {
		if args[i] == flag {
			i++ // skip the value too
			continue
		}
		result = append(result, args[i])
	}
	return result
}

func runTUI(s *store.Store) error {
	worker := sched.NewWorker(s, sched.NewTimerQueue(), &sched.DesktopNotifier{})
	m := tui.NewModel(s, worker)
	p := tea.NewProgram(m, tea.WithAltScreen())

	cleanup, err := tui.StartWatcher(s, p)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: file watcher failed: %v\n", err)
	} else {
		defer cleanup()
	}

	_, err = p.Run()
	return err
}

// CLI Commands

func cmdList(s *store.Store, jsonOut bool) error {
	goals, err := s.Goals()
	if err != nil {
		return err
	}

	if jsonOut {
		return outputJSON(goalsToMap(goals, time.Now()))
	}

	if len(goals) == 0 {
		fmt.Println("No goals yet. Run 'checkin add <title> <end-date>' to create one.")
		return nil
	}

	now := time.Now()
	for _, g := range goals {
		if g.IsActive(now) {
			pct := g.RemainingProgress(now) * 100
			fmt.Printf("○ %s  %s → %s  %.0f%% left  [%s]\n", g.Title, g.StartDate, g.EndDate, pct, g.ID)
		} else {
			fmt.Printf("✓ %s  %s → %s  [%s]\n", g.Title, g.StartDate, g.EndDate, g.ID)
		}
	}
	return nil
}

func cmdAdd(s *store.Store, title, endDate, desc string, jsonOut bool) error {
	g, err := s.AddGoal(title, desc, endDate)
	if err != nil {
		return err
	}

	if jsonOut {
		return outputJSON(goalToMap(g, time.Now()))
	}

	fmt.Printf("Created: %s [%s]\n", g.Title, g.ID)
	return nil
}

func cmdEdit(s *store.Store, id, title, endDate, desc string, jsonOut bool) error {
	if err := s.UpdateGoal(id, title, desc, endDate); err != nil {
		return err
	}

	if jsonOut {
		return outputJSON(map[string]string{"updated": id})
	}

	fmt.Printf("Updated: %s\n", id)
	return nil
}

func cmdComplete(s *store.Store, id string, jsonOut bool) error {
	if err := s.CompleteGoal(id); err != nil {
		return err
	}

	if jsonOut {
		return outputJSON(map[string]string{"completed": id})
	}

	fmt.Printf("Completed: %s\n", id)
	return nil
}

func cmdDelete(s *store.Store, id string, jsonOut bool) error {
	if err := s.RemoveGoal(id); err != nil {
		return err
	}

	if jsonOut {
		return outputJSON(map[string]string{"deleted": id})
	}

	fmt.Printf("Deleted: %s\n", id)
	return nil
}

func cmdWindowShow(s *store.Store, jsonOut bool) error {
	startMin, endMin, err := s.ActiveWindow()
	if err != nil {
		return err
	}

	if jsonOut {
		return outputJSON(map[string]int{"start_min": startMin, "end_min": endMin})
	}

	fmt.Printf("Reminder window: %s - %s\n", formatClock(startMin), formatClock(endMin))
	return nil
}

func cmdWindowSet(s *store.Store, start, end string, jsonOut bool) error {
	startMin, err := parseClock(start)
	if err != nil {
		return err
	}
	endMin, err := parseClock(end)
	if err != nil {
		return err
	}

	if err := s.SetActiveWindow(startMin, endMin); err != nil {
		return err
	}
	return cmdWindowShow(s, jsonOut)
}

func cmdThemeShow(s *store.Store, jsonOut bool) error {
	mode, err := s.ThemeMode()
	if err != nil {
		return err
	}

	if jsonOut {
		return outputJSON(map[string]string{"theme": string(mode)})
	}

	fmt.Println(mode)
	return nil
}

func cmdThemeSet(s *store.Store, raw string, jsonOut bool) error {
	if raw != string(store.ThemeLight) && raw != string(store.ThemeDark) {
		return fmt.Errorf("invalid theme: %s (use light or dark)", raw)
	}
	if err := s.SetThemeMode(store.ThemeMode(raw)); err != nil {
		return err
	}
	return cmdThemeShow(s, jsonOut)
}

func cmdNotify(s *store.Store) error {
	n := &sched.DesktopNotifier{}
	if !n.Enabled() {
		return fmt.Errorf("no desktop notification helper found")
	}
	worker := sched.NewWorker(s, sched.NewTimerQueue(), n)
	worker.NotifyNow(store.Goal{Title: "Test notification"})
	fmt.Println("Notification sent.")
	return nil
}

// cmdRemind runs the reminder loop in the foreground until interrupted. Each
// firing delivers a check-in notification and schedules the next one at a
// random time inside the active window.
func cmdRemind(s *store.Store) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	notifier := &sched.DesktopNotifier{}
	if !notifier.Enabled() {
		logger.Warn("no desktop notification helper found, reminders will be silent")
	}

	queue := sched.NewTimerQueue()
	defer queue.Stop()

	worker := sched.NewWorker(s, queue, notifier)
	worker.Schedule()

	startMin, endMin, err := s.ActiveWindow()
	if err != nil {
		return err
	}
	logger.Info("reminder loop started",
		"document", s.Path(),
		"window_start", formatClock(startMin),
		"window_end", formatClock(endMin))

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	logger.Info("shutting down")
	return nil
}

// Clock helpers

func parseClock(raw string) (int, error) {
	parts := strings.SplitN(raw, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q (use HH:MM)", raw)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q (use HH:MM)", raw)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q (use HH:MM)", raw)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid time %q (use HH:MM)", raw)
	}
	return h*60 + m, nil
}

func formatClock(minuteOfDay int) string {
	return fmt.Sprintf("%02d:%02d", minuteOfDay/60, minuteOfDay%60)
}

// JSON helpers

func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func goalToMap(g store.Goal, now time.Time) map[string]interface{} {
	m := map[string]interface{}{
		"id":          g.ID,
		"title":       g.Title,
		"description": g.Description,
		"start_date":  g.StartDate,
		"end_date":    g.EndDate,
		"active":      g.IsActive(now),
	}
	if g.IsActive(now) {
		m["remaining"] = g.RemainingProgress(now)
	}
	return m
}

func goalsToMap(goals []store.Goal, now time.Time) []map[string]interface{} {
	var result []map[string]interface{}
	for _, g := range goals {
		result = append(result, goalToMap(g, now))
	}
	return result
}
