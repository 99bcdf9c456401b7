package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"deadlines/internal/api"
	"deadlines/internal/clock"
	"deadlines/internal/config"
	"deadlines/internal/logging"
)

// Opener builds the business API over the task store described by cfg. The
// returned func releases the store.
type Opener func(cfg *config.Config) (api.BusinessAPI, func() error, error)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd        *cobra.Command
	configPath string
	opener     Opener
	config     *config.Config
	app        *App
	closeFn    func() error
}

// NewRootCommand creates the root cobra command. Configuration is loaded from
// configPath, the environment and flags before a subcommand runs; the task
// store is opened on first use.
func NewRootCommand(configPath string, opener Opener) *RootCommand {
	root := &RootCommand{configPath: configPath, opener: opener}
	root.build()
	return root
}

// NewRootCommandWithApp creates a root command around a ready App. Flags
// still parse but configuration is not reloaded.
func NewRootCommandWithApp(app *App) *RootCommand {
	root := &RootCommand{app: app, config: app.config}
	root.build()
	return root
}

func (r *RootCommand) build() {
	r.cmd = &cobra.Command{
		Use:   "sd",
		Short: "A command-line deadline tracker",
		Long: `Simple Deadlines (sd) keeps tasks with due dates and sorts them by urgency.

Every open task lands in a bucket by the days left until it is due:
  today      due today, tomorrow or overdue
  urgent     2-3 days left
  worrying   4-7 days left
  nice       8-15 days left
  nevermind  16 or more days left, or no due date

EXAMPLES:
  sd add "Pay rent" --due 2024-06-01          # Add a task due on a date
  sd add "Book flights" --due 5d -c Travel    # Due in five days, in a category
  sd list                                     # Open tasks and today's completions
  sd list urgent --days 7                     # Everything due within a week
  sd list archive                             # Tasks completed before today
  sd done 12                                  # Complete (or reopen) a task
  sd expired                                  # How many tasks are overdue
  sd widget --out digest.cbor                 # Payload for the companion widget

CONFIGURATION:
  Configuration follows this priority order: command-line flags > environment variables > config file > defaults
  The config file is TOML, at $SD_CONFIG or ~/.sd/config.toml. Run 'sd config --init' to create it.

  Database Configuration:
    SD_DB_DIR                              Database directory (default: ~/.sd)
    SD_DB_FILENAME                         Database filename (default: sd.db)
    SD_DB_QUERY_TIMEOUT                    Query timeout (default: 10s)
    SD_DB_WRITE_TIMEOUT                    Write timeout (default: 5s)

  Urgency Configuration:
    SD_URGENT_WINDOW_DAYS                  Default urgent window (default: 3)
    SD_DAY_RULE                            calendar or elapsed+1 (default: calendar)

  Application Configuration:
    SD_APP_TIMEOUT                         Command timeout (default: 30s)
    SD_LOG_LEVEL                           debug, info, warn or error (default: warn)
    SD_LOG_FORMAT                          text or json (default: text)`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return r.loadConfig()
		},
	}

	r.addGlobalFlags()
	r.addSubcommands()
}

// Command returns the underlying cobra command
func (r *RootCommand) Command() *cobra.Command {
	return r.cmd
}

// Execute runs the root command with os.Args
func (r *RootCommand) Execute(ctx context.Context) error {
	return r.cmd.ExecuteContext(ctx)
}

// Close releases the task store if a command opened it
func (r *RootCommand) Close() error {
	if r.closeFn == nil {
		return nil
	}
	err := r.closeFn()
	r.closeFn = nil
	return err
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.String("config", "", "Config file (overrides SD_CONFIG)")

	// Database configuration
	flags.String("db-dir", "", "Database directory (overrides SD_DB_DIR)")
	flags.String("db-filename", "", "Database filename (overrides SD_DB_FILENAME)")
	flags.Duration("db-query-timeout", 0, "Database query timeout (overrides SD_DB_QUERY_TIMEOUT)")
	flags.Duration("db-write-timeout", 0, "Database write timeout (overrides SD_DB_WRITE_TIMEOUT)")

	// Urgency configuration
	flags.Int("window-days", 0, "Default urgent window in days (overrides SD_URGENT_WINDOW_DAYS)")
	flags.String("day-rule", "", "Day counting rule: calendar or elapsed+1 (overrides SD_DAY_RULE)")

	// Display configuration
	flags.String("time-format", "", "Due date display format (overrides SD_DISPLAY_TIME_FORMAT)")
	flags.Bool("no-color", false, "Disable coloured badges")

	// Application configuration
	flags.Duration("app-timeout", 0, "Command timeout (overrides SD_APP_TIMEOUT)")
	flags.BoolP("verbose", "v", false, "Enable debug logging (overrides SD_APP_VERBOSE)")
	flags.String("log-level", "", "Log level (overrides SD_LOG_LEVEL)")

	// Commands configuration
	flags.String("list-format", "", "Default list format (overrides SD_LIST_DEFAULT_FORMAT)")
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	// Add command
	var addOpts AddOptions
	addCmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task",
		Long: `Add a task with an optional due date and category.

Due dates accept YYYY-MM-DD, "YYYY-MM-DD HH:MM", today, tomorrow and
shorthands counted in days from today: 3d, 2w, 1mo, 1y.`,
		Args: cobra.MinimumNArgs(1),
		RunE: r.run(func(app *App) Handler { return NewAddCommand(app, addOpts) }),
	}
	addCmd.Flags().StringVarP(&addOpts.Due, "due", "d", "", "Due date")
	addCmd.Flags().StringVarP(&addOpts.Category, "category", "c", "", "Category name, created on first use")

	// List command
	var listOpts ListOptions
	var listDays int
	listCmd := &cobra.Command{
		Use:   "list [today|archive|category|urgent|undone|all|expired]",
		Short: "List tasks in a view",
		Long: `List tasks in a view, sorted by due date with undated tasks last.

Views:
  today      open tasks plus tasks completed today (default)
  archive    tasks completed before today
  category   the today view of one category (needs --category)
  urgent     open tasks due within --days days, overdue included
  undone     every open task
  all        every task
  expired    open tasks already past due`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("days") {
				listOpts.Days = &listDays
			}
			return r.run(func(app *App) Handler { return NewListCommand(app, listOpts) })(cmd, args)
		},
	}
	listCmd.Flags().StringVarP(&listOpts.Category, "category", "c", "", "Restrict to a category")
	listCmd.Flags().IntVar(&listDays, "days", 0, "Urgent window in days")
	listCmd.Flags().StringVarP(&listOpts.Format, "format", "f", "", "Output format: table, json or yaml")

	// Done command
	doneCmd := &cobra.Command{
		Use:   "done <id>",
		Short: "Complete a task, or reopen a completed one",
		Args:  cobra.ExactArgs(1),
		RunE:  r.run(func(app *App) Handler { return NewDoneCommand(app) }),
	}

	// Edit command
	var editTitle, editDue, editCategory string
	var editClearDue bool
	editCmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a task's title, due date or category",
		Long: `Change a task's title, due date or category. Flags that are not given are
left unchanged. --category "" removes the task from its category.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := EditOptions{ClearDue: editClearDue}
			if cmd.Flags().Changed("title") {
				opts.Title = &editTitle
			}
			if cmd.Flags().Changed("due") {
				opts.Due = &editDue
			}
			if cmd.Flags().Changed("category") {
				opts.Category = &editCategory
			}
			return r.run(func(app *App) Handler { return NewEditCommand(app, opts) })(cmd, args)
		},
	}
	editCmd.Flags().StringVarP(&editTitle, "title", "t", "", "New title")
	editCmd.Flags().StringVarP(&editDue, "due", "d", "", "New due date")
	editCmd.Flags().BoolVar(&editClearDue, "clear-due", false, "Remove the due date")
	editCmd.Flags().StringVarP(&editCategory, "category", "c", "", "New category")

	// Delete command
	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task",
		Long:  "Delete a task. This operation cannot be undone. The task's category is kept.",
		Args:  cobra.ExactArgs(1),
		RunE:  r.run(func(app *App) Handler { return NewDeleteCommand(app) }),
	}

	// Categories command
	var categoriesActive bool
	var categoriesFormat string
	categoriesCmd := &cobra.Command{
		Use:   "categories",
		Short: "List categories",
		Args:  cobra.NoArgs,
		RunE: r.run(func(app *App) Handler {
			return NewCategoriesCommand(app, categoriesActive, categoriesFormat)
		}),
	}
	categoriesCmd.Flags().BoolVar(&categoriesActive, "active", false, "Only categories with open tasks")
	categoriesCmd.Flags().StringVarP(&categoriesFormat, "format", "f", "", "Output format: table, json or yaml")

	// Expired command
	var expiredQuiet bool
	expiredCmd := &cobra.Command{
		Use:   "expired",
		Short: "Count open tasks that are past due",
		Args:  cobra.NoArgs,
		RunE:  r.run(func(app *App) Handler { return NewExpiredCommand(app, expiredQuiet) }),
	}
	expiredCmd.Flags().BoolVarP(&expiredQuiet, "quiet", "q", false, "Print the bare number")

	// Summary command
	var summaryCategory string
	summaryCmd := &cobra.Command{
		Use:   "summary",
		Short: "Show open tasks per urgency bucket",
		Args:  cobra.NoArgs,
		RunE:  r.run(func(app *App) Handler { return NewSummaryCommand(app, summaryCategory) }),
	}
	summaryCmd.Flags().StringVarP(&summaryCategory, "category", "c", "", "Restrict to a category")

	// Output command
	outputCmd := &cobra.Command{
		Use:   "output format=csv|json|yaml [view]",
		Short: "Export tasks in the specified format",
		Long: `Export tasks in the specified format. The view defaults to all.

Example:
  sd output format=csv > tasks.csv`,
		Args: cobra.RangeArgs(1, 2),
		RunE: r.run(func(app *App) Handler { return NewOutputCommand(app) }),
	}

	// Widget command
	var widgetOpts WidgetOptions
	var widgetDays int
	widgetCmd := &cobra.Command{
		Use:   "widget",
		Short: "Write the urgent-task digest for the companion widget",
		Long: `Write the open tasks due within the urgent window, most urgent first, as a
CBOR digest for the companion widget. --diag prints it in diagnostic notation.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("days") {
				widgetOpts.Days = &widgetDays
			}
			return r.run(func(app *App) Handler { return NewWidgetCommand(app, widgetOpts) })(cmd, args)
		},
	}
	widgetCmd.Flags().IntVar(&widgetDays, "days", 0, "Urgent window in days")
	widgetCmd.Flags().StringVarP(&widgetOpts.Out, "out", "o", "", "Write to a file instead of stdout")
	widgetCmd.Flags().BoolVar(&widgetOpts.Diagnose, "diag", false, "Print CBOR diagnostic notation")

	// Config command
	var configInit bool
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := NewAppWithOptions(nil, r.config, cmd.OutOrStdout(), nil)
			return NewConfigCommand(app, r.configFilePath(), configInit).Execute(cmd.Context(), args)
		},
	}
	configCmd.Flags().BoolVar(&configInit, "init", false, "Write the config file if it does not exist")

	r.cmd.AddCommand(
		addCmd,
		listCmd,
		doneCmd,
		editCmd,
		deleteCmd,
		categoriesCmd,
		expiredCmd,
		summaryCmd,
		outputCmd,
		widgetCmd,
		configCmd,
	)
}

// Handler is implemented by every command handler
type Handler interface {
	Execute(ctx context.Context, args []string) error
}

// run adapts a handler constructor to a cobra RunE, opening the task store
// and bounding the command by the application timeout.
func (r *RootCommand) run(newHandler func(app *App) Handler) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		app, err := r.application(cmd.OutOrStdout())
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), r.getAppTimeout())
		defer cancel()

		return newHandler(app).Execute(ctx, args)
	}
}

// application returns the App, opening the task store on first use
func (r *RootCommand) application(out io.Writer) (*App, error) {
	if r.app != nil {
		return r.app, nil
	}
	if r.opener == nil {
		return nil, fmt.Errorf("no task store configured")
	}

	businessAPI, closeFn, err := r.opener(r.config)
	if err != nil {
		return nil, NewErrorHandler().Handle("open task store", err)
	}
	r.closeFn = closeFn
	r.app = NewAppWithOptions(businessAPI, r.config, out, clock.Real())
	return r.app, nil
}

// getAppTimeout returns the configured application timeout
func (r *RootCommand) getAppTimeout() time.Duration {
	if r.config != nil && r.config.Application.Timeout > 0 {
		return r.config.Application.Timeout
	}
	return 30 * time.Second
}

func (r *RootCommand) configFilePath() string {
	if path, _ := r.cmd.PersistentFlags().GetString("config"); path != "" {
		return path
	}
	if r.configPath != "" {
		return r.configPath
	}
	return config.DefaultConfigPath()
}

// loadConfig builds the configuration from file, environment and flags.
// A ready App keeps its configuration.
func (r *RootCommand) loadConfig() error {
	if r.app != nil {
		return nil
	}

	path := r.configFilePath()
	cfg, err := config.NewLoaderWithFile(path).LoadWithOverrides(r.getConfigFromFlags())
	if err != nil {
		return err
	}
	logging.Debugf("config: file=%q db=%s window=%d rule=%s\n",
		path, cfg.GetDatabasePath(), cfg.Urgency.WindowDays, cfg.Urgency.DayRule)
	r.config = cfg
	return nil
}

// getConfigFromFlags collects the flags that were set on the command line
func (r *RootCommand) getConfigFromFlags() *config.ConfigOverrides {
	flags := r.cmd.PersistentFlags()
	overrides := &config.ConfigOverrides{}

	// Database configuration
	if flags.Changed("db-dir") {
		v, _ := flags.GetString("db-dir")
		overrides.DBDir = &v
	}
	if flags.Changed("db-filename") {
		v, _ := flags.GetString("db-filename")
		overrides.DBFilename = &v
	}
	if flags.Changed("db-query-timeout") {
		v, _ := flags.GetDuration("db-query-timeout")
		overrides.DBQueryTimeout = &v
	}
	if flags.Changed("db-write-timeout") {
		v, _ := flags.GetDuration("db-write-timeout")
		overrides.DBWriteTimeout = &v
	}

	// Urgency configuration
	if flags.Changed("window-days") {
		v, _ := flags.GetInt("window-days")
		overrides.WindowDays = &v
	}
	if flags.Changed("day-rule") {
		v, _ := flags.GetString("day-rule")
		overrides.DayRule = &v
	}

	// Display configuration
	if flags.Changed("time-format") {
		v, _ := flags.GetString("time-format")
		overrides.TimeFormat = &v
	}
	if noColor, _ := flags.GetBool("no-color"); noColor {
		color := false
		overrides.Color = &color
	}

	// Application configuration
	if flags.Changed("app-timeout") {
		v, _ := flags.GetDuration("app-timeout")
		overrides.Timeout = &v
	}
	if flags.Changed("verbose") {
		v, _ := flags.GetBool("verbose")
		overrides.Verbose = &v
	}
	if flags.Changed("log-level") {
		v, _ := flags.GetString("log-level")
		overrides.LogLevel = &v
	}

	// Commands configuration
	if flags.Changed("list-format") {
		v, _ := flags.GetString("list-format")
		overrides.ListDefaultFormat = &v
	}

	return overrides
}
