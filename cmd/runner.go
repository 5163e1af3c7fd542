package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/moodtunes/internal/services"
	"github.com/desertthunder/moodtunes/internal/shared"
	"github.com/fatih/color"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	client     services.Recommender
	history    services.HistoryReader
	api        *services.APIService
	logger     *log.Logger
	output     io.Writer
	input      *bufio.Reader
	isTerminal func() bool

	green  *color.Color
	yellow *color.Color
	bold   *color.Color
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	Client     services.Recommender
	History    services.HistoryReader
	API        *services.APIService
	Logger     *log.Logger
	Output     io.Writer
	Input      io.Reader
	IsTerminal func() bool
}

// NewRunner creates a new Runner with the provided configuration
//
// Client and History default to a [services.Client] on Config.Client.BaseURL.
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
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.IsTerminal == nil {
		opts.IsTerminal = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) }
	}
	if opts.API == nil {
		opts.API = services.NewAPIService(opts.Config.Client.BaseURL, nil)
	}

	r := &Runner{
		config:     opts.Config,
		client:     opts.Client,
		history:    opts.History,
		api:        opts.API,
		logger:     opts.Logger,
		output:     opts.Output,
		input:      bufio.NewReader(opts.Input),
		isTerminal: opts.IsTerminal,
		green:      color.New(color.FgGreen),
		yellow:     color.New(color.FgYellow),
		bold:       color.New(color.Bold),
	}

	if r.client == nil || r.history == nil {
		client := services.NewClient(r.api, shared.WithLogger(r.logger, "component", "client"))
		if r.client == nil {
			r.client = client
		}
		if r.history == nil {
			r.history = client
		}
	}

	return r
}

// SetLogger replaces the logger used by the runner and its default client and history reader.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
	client := services.NewClient(r.api, shared.WithLogger(l, "component", "client"))
	if _, ok := r.client.(*services.Client); ok {
		r.client = client
	}
	if _, ok := r.history.(*services.Client); ok {
		r.history = client
	}
}

// UseBaseURL points the runner at another backend.
func (r *Runner) UseBaseURL(baseURL string) {
	r.config.Client.BaseURL = baseURL
	r.api = services.NewAPIService(baseURL, nil)
	client := services.NewClient(r.api, shared.WithLogger(r.logger, "component", "client"))
	r.client = client
	r.history = client
}

// before applies root flags ahead of any command action.
func (r *Runner) before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if cmd.IsSet("base-url") {
		r.UseBaseURL(cmd.String("base-url"))
		r.logger.Debug("using backend", "url", r.api.BaseURL())
	}
	if cmd.IsSet("log-level") {
		if err := shared.SetLogLevel(r.logger, cmd.String("log-level")); err != nil {
			return ctx, fmt.Errorf("%w: %v", shared.ErrInvalidFlag, err)
		}
	}
	return ctx, nil
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		recommendCommand, favoritesCommand, historyCommand, serveCommand, setupCommand, apiCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// confirm asks question on the terminal and reports whether the answer was yes.
//
// Without a terminal nothing is asked and the answer is no.
func (r *Runner) confirm(question string) bool {
	if !r.isTerminal() {
		r.logger.Warn("not a terminal, cannot ask for confirmation")
		return false
	}

	r.writePlain("%s [y/N] ", question)
	answer, err := r.input.ReadString('\n')
	if err != nil && answer == "" {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
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

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", r.bold.Sprint(title))
	r.writePlain("═══════════════════════════════════════\n")
}

// writeSuccess writes a green line.
func (r *Runner) writeSuccess(format string, args ...any) error {
	return r.writePlain("%s\n", r.green.Sprintf(format, args...))
}

// writeWarning writes a yellow line.
func (r *Runner) writeWarning(format string, args ...any) error {
	return r.writePlain("%s\n", r.yellow.Sprintf(format, args...))
}
