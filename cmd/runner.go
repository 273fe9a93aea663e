package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/jumptools/airtime/internal/formatter"
	"github.com/jumptools/airtime/internal/physics"
	"github.com/jumptools/airtime/internal/share"
	"github.com/jumptools/airtime/internal/shared"
	"github.com/jumptools/airtime/internal/store"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config *shared.Config
	logger *log.Logger
	output io.Writer

	// openDB is swapped out in tests to point at an in-memory database.
	openDB func() (*sql.DB, error)
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config *shared.Config
	Logger *log.Logger
	Output io.Writer
	OpenDB func() (*sql.DB, error)
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	r := &Runner{
		config: opts.Config,
		logger: opts.Logger,
		output: opts.Output,
		openDB: opts.OpenDB,
	}
	if r.openDB == nil {
		r.openDB = r.openConfiguredDB
	}

	return r
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, calcCommand, usersCommand, historyCommand, markCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

func (r *Runner) openConfiguredDB() (*sql.DB, error) {
	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return nil, err
	}
	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)
	return db, nil
}

// openStores opens local storage and loads both stores. The returned close
// function releases the database.
func (r *Runner) openStores() (*store.UserStore, *store.HistoryStore, func(), error) {
	db, err := r.openDB()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to open storage: %w", err)
	}

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		return nil, nil, nil, fmt.Errorf("failed to migrate storage: %w", err)
	}

	kv := store.NewSQLiteKV(db)
	users, err := store.NewUserStore(kv)
	if err != nil {
		db.Close()
		return nil, nil, nil, err
	}
	history, err := store.NewHistoryStore(kv)
	if err != nil {
		db.Close()
		return nil, nil, nil, err
	}

	return users, history, func() { db.Close() }, nil
}

// Setup initializes local storage, bootstraps the default profile, and
// optionally writes a starter config file.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool("write-config") {
		path := cmd.String("config")
		if err := shared.CreateConfigFile(path); err != nil {
			return err
		}
		r.writePlain("wrote %s\n", path)
	}

	users, _, closeStores, err := r.openStores()
	if err != nil {
		return err
	}
	defer closeStores()

	current, _ := users.Current()
	r.writePlain("storage ready at %s (%d profile(s), current: %s)\n",
		r.config.Database.Path, users.Len(), current.Name)
	return nil
}

// Calc computes a jump height from explicit instants or a flight time.
func (r *Runner) Calc(ctx context.Context, cmd *cli.Command) error {
	flight := cmd.Float("flight")
	if flight == 0 {
		takeOff := cmd.Float("takeoff")
		landing := cmd.Float("landing")
		flight = landing - takeOff
		if flight < 0 {
			flight = 0
		}
	}

	if flight <= 0 {
		return fmt.Errorf("%w: flight time must be positive", shared.ErrInvalidFlag)
	}

	height := physics.HeightFromFlightTime(flight)

	if cmd.Bool("json") {
		return r.writeJSON(map[string]any{
			"flightTime": flight,
			"heightCm":   height,
		}, true)
	}

	r.writePlain("flight %s → %.1f cm\n", physics.FormatDuration(flight), height)
	return nil
}

// UsersList prints all profiles.
func (r *Runner) UsersList(ctx context.Context, cmd *cli.Command) error {
	users, _, closeStores, err := r.openStores()
	if err != nil {
		return err
	}
	defer closeStores()

	if cmd.Bool("json") {
		return r.writeJSON(users.All(), true)
	}

	current, _ := users.Current()
	for _, user := range users.All() {
		mark := " "
		if user.ID == current.ID {
			mark = "*"
		}
		r.writePlain("%s %s  %s  (since %s)\n", mark, user.ID, user.Name, user.CreatedAt.Format("2006-01-02"))
	}
	return nil
}

// UsersCreate adds a profile and switches to it. An empty name is silently
// ignored, matching the original tool.
func (r *Runner) UsersCreate(ctx context.Context, cmd *cli.Command) error {
	users, _, closeStores, err := r.openStores()
	if err != nil {
		return err
	}
	defer closeStores()

	user, created := users.Create(cmd.StringArg("name"))
	if !created {
		r.writePlain("no profile created: empty name\n")
		return nil
	}

	r.writePlain("created %s (%s), now current\n", user.Name, user.ID)
	return nil
}

// UsersSwitch changes the current profile by ID.
func (r *Runner) UsersSwitch(ctx context.Context, cmd *cli.Command) error {
	users, _, closeStores, err := r.openStores()
	if err != nil {
		return err
	}
	defer closeStores()

	if err := users.SwitchByID(cmd.String("id")); err != nil {
		return err
	}

	current, _ := users.Current()
	r.writePlain("current user: %s\n", current.Name)
	return nil
}

// UsersCurrent prints the current profile.
func (r *Runner) UsersCurrent(ctx context.Context, cmd *cli.Command) error {
	users, _, closeStores, err := r.openStores()
	if err != nil {
		return err
	}
	defer closeStores()

	current, ok := users.Current()
	if !ok {
		return shared.ErrNoCurrentUser
	}

	r.writePlain("%s  %s\n", current.ID, current.Name)
	return nil
}

// UsersDelete removes a profile by ID. Saved jumps are never deleted with
// the profile; they just stop showing up in any listing.
func (r *Runner) UsersDelete(ctx context.Context, cmd *cli.Command) error {
	users, _, closeStores, err := r.openStores()
	if err != nil {
		return err
	}
	defer closeStores()

	id := cmd.String("id")
	if err := users.Delete(id); err != nil {
		return err
	}

	if current, ok := users.Current(); ok {
		r.writePlain("deleted %s (current user: %s)\n", id, current.Name)
	} else {
		r.writePlain("deleted %s (no profiles left)\n", id)
	}
	return nil
}

// HistoryList prints the current user's records, newest first.
func (r *Runner) HistoryList(ctx context.Context, cmd *cli.Command) error {
	users, history, closeStores, err := r.openStores()
	if err != nil {
		return err
	}
	defer closeStores()

	current, ok := users.Current()
	if !ok {
		return shared.ErrNoCurrentUser
	}

	records := history.ForUser(current.ID)
	if limit := int(cmd.Int("limit")); limit > 0 && limit < len(records) {
		records = records[:limit]
	}

	if cmd.Bool("json") {
		return r.writeJSON(records, true)
	}

	if len(records) == 0 {
		r.writePlain("no saved jumps for %s\n", current.Name)
		return nil
	}

	for _, record := range records {
		r.writePlain("%s  %s  %.1f cm  flight %s\n",
			record.ID, record.Date.Format("2006-01-02 15:04"),
			record.HeightCm, physics.FormatDuration(record.FlightTime))
	}
	return nil
}

// HistoryDelete removes a record by ID.
func (r *Runner) HistoryDelete(ctx context.Context, cmd *cli.Command) error {
	_, history, closeStores, err := r.openStores()
	if err != nil {
		return err
	}
	defer closeStores()

	id := cmd.String("id")
	if err := history.Delete(id); err != nil {
		return err
	}

	r.writePlain("deleted %s\n", id)
	return nil
}

// HistoryExport renders the current user's history in the requested format.
func (r *Runner) HistoryExport(ctx context.Context, cmd *cli.Command) error {
	users, history, closeStores, err := r.openStores()
	if err != nil {
		return err
	}
	defer closeStores()

	current, ok := users.Current()
	if !ok {
		return shared.ErrNoCurrentUser
	}
	records := history.ForUser(current.ID)

	var data []byte
	switch format := strings.ToLower(cmd.String("format")); format {
	case "csv":
		data, err = formatter.HistoryToCSV(records)
	case "md", "markdown":
		data, err = formatter.HistoryToMarkdown(current, records)
	case "text", "txt":
		data, err = formatter.HistoryToText(current, records)
	default:
		return fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, format)
	}
	if err != nil {
		return fmt.Errorf("failed to render export: %w", err)
	}

	if cmd.Bool("copy") {
		share.Share(r.logger, r.output, string(data))
		return nil
	}

	if path := cmd.String("output"); path != "" {
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("failed to write export: %w", err)
		}
		r.writePlain("wrote %s\n", path)
		return nil
	}

	if _, err := r.output.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
