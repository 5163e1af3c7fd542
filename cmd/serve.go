package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/desertthunder/moodtunes/internal/repositories"
	"github.com/desertthunder/moodtunes/internal/server"
	"github.com/desertthunder/moodtunes/internal/services"
	"github.com/desertthunder/moodtunes/internal/shared"
	"github.com/desertthunder/moodtunes/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Serve runs the recommendation backend until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	config := *r.config
	if cmd.IsSet("host") {
		config.Server.Host = cmd.String("host")
	}
	if cmd.IsSet("port") {
		config.Server.Port = cmd.Int("port")
	}
	if cmd.IsSet("db") {
		config.Database.Path = cmd.String("db")
	}

	srv, db, err := r.buildServer(&config)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.Run(ctx)
}

// buildServer opens the database and wires repositories, quote service and engine into a server.
//
// The caller closes the returned database.
func (r *Runner) buildServer(config *shared.Config) (*server.Server, *sql.DB, error) {
	r.logger.Info("opening database", "path", config.Database.Path)

	db, err := shared.OpenDatabase(config.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	favorites := repositories.NewFavoriteRepository(db)
	history := repositories.NewHistoryRepository(db)

	quotes := services.NewQuoteServiceFromConfig(config.Quotes, shared.WithLogger(r.logger, "component", "quotes"))
	engine := tasks.NewRecommendEngine(tasks.EngineOpts{
		Quotes:  quotes,
		History: history,
		Logger:  shared.WithLogger(r.logger, "component", "engine"),
	})

	srv := server.New(server.Opts{
		Config:    config.Server,
		Engine:    engine,
		Favorites: favorites,
		History:   history,
		Logger:    shared.WithLogger(r.logger, "component", "server"),
		Version:   version,
	})

	return srv, db, nil
}
