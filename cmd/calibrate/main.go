// Package main is the entry point for the calibrate CLI. It wires the
// store, score engine, report assembler and synthesis client together
// behind a small set of subcommands.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/gen2brain/beeep"
	"github.com/guptarohit/asciigraph"

	"github.com/founderos/calibrate/internal/config"
	"github.com/founderos/calibrate/internal/format"
	"github.com/founderos/calibrate/internal/logger"
	"github.com/founderos/calibrate/internal/models"
	"github.com/founderos/calibrate/internal/report"
	"github.com/founderos/calibrate/internal/score"
	"github.com/founderos/calibrate/internal/store"
	"github.com/founderos/calibrate/internal/synthesis"
	"github.com/founderos/calibrate/internal/version"
	"github.com/founderos/calibrate/internal/watch"
)

const dateFlagFormat = "2006-01-02"

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	scoreStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	upStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	downStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func main() {
	if len(os.Args) > 1 && (os.Args[1] == "-v" || os.Args[1] == "--version") {
		fmt.Println(version.Info())
		os.Exit(0)
	}

	if len(os.Args) < 2 || os.Args[1] == "-h" || os.Args[1] == "--help" {
		printUsage()
		if len(os.Args) < 2 {
			os.Exit(1)
		}
		os.Exit(0)
	}

	if err := run(os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run contains the main application logic, separated for cleaner error handling.
func run(command string, args []string) error {
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	weights, err := score.LoadWeights(cfg.WeightsPath)
	if err != nil {
		return fmt.Errorf("failed to load score weights: %w", err)
	}

	st, err := store.New(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			logger.Warn("failed to close store", "error", closeErr)
		}
	}()

	ctx := context.Background()

	switch command {
	case "log":
		return runLog(ctx, st, weights, args)
	case "score":
		return runScore(ctx, st, args)
	case "report":
		return runReport(ctx, cfg, st)
	case "trend":
		return runTrend(ctx, st, args)
	case "watch":
		return runWatch(cfg, st)
	default:
		printUsage()
		return fmt.Errorf("unknown command: %s", command)
	}
}

// runLog records one day's telemetry and prints the resulting score.
func runLog(ctx context.Context, st *store.Store, weights score.Weights, args []string) error {
	fs := flag.NewFlagSet("log", flag.ExitOnError)
	date := fs.String("date", time.Now().Format(dateFlagFormat), "date to log (YYYY-MM-DD)")
	sleep := fs.Float64("sleep", 0, "hours slept")
	training := fs.Int("training", 0, "training minutes")
	body := fs.Int("body", 0, "body feel, 1-10")
	nervous := fs.String("ns", "regulated", "nervous system state: regulated, elevated, spiked")
	focus := fs.Float64("focus", 0, "deep focus hours")
	ships := fs.Int("ships", 0, "things shipped")
	shipped := fs.String("shipped", "", "what shipped (free text)")
	asks := fs.Int("asks", 0, "revenue asks made")
	revenue := fs.Float64("revenue", 0, "revenue landed in dollars")
	conversations := fs.Int("conversations", 0, "customer conversations")
	intros := fs.Int("intros", 0, "warm intros made or received")
	meetings := fs.Int("meetings", 0, "meetings booked")
	posts := fs.Int("posts", 0, "public posts published")
	study := fs.Int("study", 0, "study minutes")
	insights := fs.Int("insights", 0, "insights logged")
	practice := fs.Int("practice", 0, "deliberate practice minutes")
	contacts := fs.Int("contacts", 0, "new contacts")
	project := fs.String("project", "", "primary project for the day")
	hours := fs.String("hours", "", "per-project hours, e.g. atlas=3,ops=1.5")
	if err := fs.Parse(args); err != nil {
		return err
	}

	day, err := time.Parse(dateFlagFormat, *date)
	if err != nil {
		return fmt.Errorf("invalid -date %q: %w", *date, err)
	}
	projectHours, err := parseProjectHours(*hours)
	if err != nil {
		return err
	}

	rec := &models.DayRecord{
		Date:            day,
		SleepHours:      *sleep,
		TrainingMinutes: *training,
		BodyFelt:        *body,
		NervousSystem:   models.NervousSystemState(*nervous),
		FocusHours:      *focus,
		ShipCount:       *ships,
		WhatShipped:     *shipped,
		RevenueAsks:     *asks,
		RevenueAmount:   *revenue,
		Conversations:   *conversations,
		Intros:          *intros,
		Meetings:        *meetings,
		Posts:           *posts,
		StudyMinutes:    *study,
		InsightsLogged:  *insights,
		PracticeMinutes: *practice,
		NewContacts:     *contacts,
		Project:         *project,
		ProjectHours:    projectHours,
	}

	if err := st.SaveDayRecord(ctx, rec, weights); err != nil {
		return fmt.Errorf("failed to save day record: %w", err)
	}

	fmt.Printf("%s %s\n", titleStyle.Render("Logged"), day.Format(dateFlagFormat))
	printScoreLine(rec.Score)
	return nil
}

// runScore prints one day's score with its component breakdown.
func runScore(ctx context.Context, st *store.Store, args []string) error {
	fs := flag.NewFlagSet("score", flag.ExitOnError)
	date := fs.String("date", time.Now().Format(dateFlagFormat), "date to inspect (YYYY-MM-DD)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	day, err := time.Parse(dateFlagFormat, *date)
	if err != nil {
		return fmt.Errorf("invalid -date %q: %w", *date, err)
	}

	rec, err := st.GetDayRecord(ctx, day)
	if err != nil {
		return err
	}
	if rec == nil || rec.Score == nil {
		fmt.Printf("No record logged for %s\n", day.Format(dateFlagFormat))
		return nil
	}

	fmt.Println(titleStyle.Render(day.Format("Monday, Jan 2 2006")))
	printScoreLine(rec.Score)
	fmt.Println()

	for _, name := range score.PrimaryComponents {
		printComponent(name, rec.Score.Components[name])
	}
	printComponent(score.ComponentRegulationGate, rec.Score.Components[score.ComponentRegulationGate])
	printComponent(score.ComponentFragmentation, rec.Score.Components[score.ComponentFragmentation])
	return nil
}

// runReport generates and prints the weekly calibration report.
func runReport(ctx context.Context, cfg *config.Config, st *store.Store) error {
	var client synthesis.Client
	if cfg.GeminiAPIKey != "" {
		gemini, err := synthesis.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			logger.Warn("failed to create synthesis client, report will be degraded", "error", err)
		} else {
			client = gemini
			defer func() {
				if closeErr := gemini.Close(); closeErr != nil {
					logger.Warn("failed to close synthesis client", "error", closeErr)
				}
			}()
		}
	}

	assembler := report.NewAssembler(st, synthesis.NewAdapter(client, cfg.SynthesisTimeout))
	weekly := assembler.Generate(ctx, time.Now())

	fmt.Println(format.Report(weekly))

	if err := beeep.Notify("Calibrate", "Weekly calibration report is ready", ""); err != nil {
		logger.Debug("desktop notification failed", "error", err)
	}
	return nil
}

// runTrend plots recent daily scores as an ASCII chart.
func runTrend(ctx context.Context, st *store.Store, args []string) error {
	fs := flag.NewFlagSet("trend", flag.ExitOnError)
	days := fs.Int("days", 30, "number of scored days to plot")
	if err := fs.Parse(args); err != nil {
		return err
	}

	records, err := st.GetScoreHistory(ctx, *days)
	if err != nil {
		return err
	}
	if len(records) < 2 {
		fmt.Println("Not enough scored days to plot a trend yet.")
		return nil
	}

	values := make([]float64, len(records))
	for i, rec := range records {
		values[i] = rec.Score.Score
	}

	caption := fmt.Sprintf("daily score, %s to %s",
		records[0].Date.Format(dateFlagFormat),
		records[len(records)-1].Date.Format(dateFlagFormat))
	fmt.Println(asciigraph.Plot(values,
		asciigraph.Height(10),
		asciigraph.Caption(caption),
	))
	return nil
}

// runWatch re-prints today's score whenever another process writes the
// database, until interrupted.
func runWatch(cfg *config.Config, st *store.Store) error {
	show := func() {
		today := time.Now()
		rec, err := st.GetDayRecord(context.Background(), today)
		if err != nil {
			logger.Warn("failed to reload today's record", "error", err)
			return
		}
		if rec == nil || rec.Score == nil {
			fmt.Printf("%s no record yet for %s\n",
				dimStyle.Render(time.Now().Format("15:04:05")), today.Format(dateFlagFormat))
			return
		}
		fmt.Printf("%s ", dimStyle.Render(time.Now().Format("15:04:05")))
		printScoreLine(rec.Score)
	}

	w, err := watch.New(cfg.DatabasePath, show)
	if err != nil {
		return fmt.Errorf("failed to watch database: %w", err)
	}
	defer func() {
		if closeErr := w.Close(); closeErr != nil {
			logger.Warn("failed to close watcher", "error", closeErr)
		}
	}()

	fmt.Printf("Watching %s (Ctrl+C to stop)\n", cfg.DatabasePath)
	show()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	return nil
}

func printScoreLine(result *models.ScoreResult) {
	if result == nil {
		return
	}
	line := fmt.Sprintf("Score: %s", scoreStyle.Render(fmt.Sprintf("%.1f", result.Score)))
	if result.Delta != nil {
		delta := *result.Delta
		text := fmt.Sprintf("(%+.1f)", delta)
		if delta >= 0 {
			line += " " + upStyle.Render(text)
		} else {
			line += " " + downStyle.Render(text)
		}
	}
	fmt.Println(line)
}

func printComponent(name string, value float64) {
	bar := strings.Repeat("█", int(value*20+0.5))
	fmt.Printf("  %-22s %.2f %s\n", name, value, dimStyle.Render(bar))
}

// parseProjectHours parses "atlas=3,ops=1.5" into a project-hours map.
func parseProjectHours(s string) (map[string]float64, error) {
	if s == "" {
		return nil, nil
	}
	result := make(map[string]float64)
	for _, pair := range strings.Split(s, ",") {
		name, value, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid -hours entry %q, expected name=hours", pair)
		}
		hours, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid hours in -hours entry %q: %w", pair, err)
		}
		result[name] = hours
	}
	return result, nil
}

// printUsage prints the command-line usage information.
func printUsage() {
	fmt.Println(`Calibrate - daily founder telemetry scoring and weekly calibration

Usage:
  calibrate <command> [flags]

Commands:
  log       Record a day's telemetry and compute its score
  score     Show a day's score with the component breakdown
  report    Generate the weekly calibration report
  trend     Plot recent daily scores as an ASCII chart
  watch     Re-print today's score on external database writes

Flags:
  -h, --help      Show this help message
  -v, --version   Show version information

Environment Variables:
  DATABASE_PATH           SQLite database path
  GEMINI_API_KEY          Gemini API key (report narrative; optional)
  GEMINI_MODEL            Gemini model name (default: gemini-2.0-flash)
  SYNTHESIS_TIMEOUT       Synthesis call timeout (default: 60s)
  CALIBRATE_WEIGHTS_PATH  YAML file overriding score component weights

Configuration:
  The application looks for .env files in the following locations:
  - Current directory
  - ~/.config/calibrate/.env
  - ~/.calibrate/.env

Examples:
  calibrate log -sleep 7.5 -focus 4 -ships 1 -shipped "onboarding flow" -project atlas
  calibrate score -date 2025-03-12
  calibrate report
  calibrate trend -days 60`)
}
