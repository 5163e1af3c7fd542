package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/moodtunes/internal/formatter"
	"github.com/desertthunder/moodtunes/internal/models"
	"github.com/desertthunder/moodtunes/internal/shared"
	"github.com/urfave/cli/v3"
)

// Recommend fetches and prints recommendations for --mood.
func (r *Runner) Recommend(ctx context.Context, cmd *cli.Command) error {
	mood := strings.TrimSpace(cmd.String("mood"))
	if mood == "" {
		return fmt.Errorf("%w: --mood is required (one of %s)", shared.ErrMissingArgument, moodNames())
	}

	r.logger.Info("fetching recommendations", "mood", mood)

	songs, err := r.client.Recommend(ctx, mood, time.Now())
	if err != nil {
		r.logger.Error("failed to fetch recommendations", "mood", mood, "error", err)
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(models.RecommendResponse{Songs: songs}, true)
	}

	if len(songs) == 0 {
		return r.writeWarning("No songs found for %q mood. Try another mood!", mood)
	}

	r.writePlainHeader(fmt.Sprintf("%s songs", models.Mood(strings.ToLower(mood)).Label()))
	for _, song := range songs {
		r.writePlain("\n%s", formatter.SongCard(song))
	}
	return nil
}

// FavoritesList prints favorites matching --mood.
func (r *Runner) FavoritesList(ctx context.Context, cmd *cli.Command) error {
	filter := cmd.String("mood")

	favs, err := r.client.Favorites(ctx)
	if err != nil {
		r.logger.Error("failed to fetch favorites", "error", err)
		return err
	}
	favs = models.FilterFavorites(favs, filter)

	if cmd.Bool("json") {
		return r.writeJSON(models.FavoritesResponse{Favorites: favs}, true)
	}

	if len(favs) == 0 {
		return r.writeWarning("No favorite songs found for this category.")
	}

	r.writePlainHeader(fmt.Sprintf("Favorites (%d)", len(favs)))
	for _, fav := range favs {
		r.writePlain("\n%s", formatter.FavoriteCard(fav))
	}
	return nil
}

// FavoritesAdd saves a song to favorites.
func (r *Runner) FavoritesAdd(ctx context.Context, cmd *cli.Command) error {
	fav := models.Favorite{
		Title:  cmd.String("title"),
		Artist: cmd.String("artist"),
		URL:    strings.TrimSpace(cmd.String("url")),
		Mood:   cmd.String("mood"),
	}
	if fav.URL == "" {
		return fmt.Errorf("%w: --url", shared.ErrMissingArgument)
	}

	msg, err := r.client.AddFavorite(ctx, fav)
	if err != nil {
		r.logger.Error("failed to add favorite", "url", fav.URL, "error", err)
		return fmt.Errorf("error adding song to favorites: %w", err)
	}

	return r.writeSuccess("%s", msg)
}

// FavoritesRemove removes a favorite after confirmation.
//
// Returns [shared.ErrCancelled] when the removal is declined.
func (r *Runner) FavoritesRemove(ctx context.Context, cmd *cli.Command) error {
	url := strings.TrimSpace(cmd.String("url"))
	if url == "" {
		return fmt.Errorf("%w: --url", shared.ErrMissingArgument)
	}

	if !cmd.Bool("yes") && !r.confirm("Are you sure you want to remove this song from favorites?") {
		r.logger.Info("removal declined", "url", url)
		return fmt.Errorf("%w: %s not removed", shared.ErrCancelled, url)
	}

	msg, err := r.client.DeleteFavorite(ctx, url)
	if err != nil {
		r.logger.Error("failed to remove favorite", "url", url, "error", err)
		return fmt.Errorf("error removing song: %w", err)
	}

	return r.writeSuccess("%s", msg)
}

// FavoritesExport writes favorites matching --mood to a file.
func (r *Runner) FavoritesExport(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}
	filter := cmd.String("mood")

	favs, err := r.client.Favorites(ctx)
	if err != nil {
		r.logger.Error("failed to fetch favorites", "error", err)
		return err
	}
	favs = models.FilterFavorites(favs, filter)

	path, err := formatter.WriteExport(favs, format, filter, cmd.String("output"))
	if err != nil {
		return err
	}

	r.logger.Info("favorites exported", "path", path, "format", format, "count", len(favs))
	return r.writeSuccess("✓ Exported %d favorites to %s", len(favs), path)
}

// History prints recent recommendation requests.
func (r *Runner) History(ctx context.Context, cmd *cli.Command) error {
	limit := cmd.Int("limit")
	if limit <= 0 {
		return fmt.Errorf("%w: --limit must be positive", shared.ErrInvalidFlag)
	}

	entries, err := r.history.History(ctx, limit)
	if err != nil {
		r.logger.Error("failed to fetch history", "error", err)
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(models.HistoryResponse{History: entries}, true)
	}

	if len(entries) == 0 {
		return r.writeWarning("No recommendations recorded yet.")
	}

	r.writePlainHeader(fmt.Sprintf("History (%d)", len(entries)))
	for _, entry := range entries {
		r.writePlain("%s\n", formatter.HistoryLine(entry))
	}
	return nil
}

func moodNames() string {
	names := make([]string, len(models.Moods))
	for i, m := range models.Moods {
		names[i] = m.String()
	}
	return strings.Join(names, ", ")
}
