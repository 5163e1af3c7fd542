// package formatter renders songs and favorites as text and exports favorites to CSV, Markdown and plain text
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/desertthunder/moodtunes/internal/models"
	"github.com/desertthunder/moodtunes/internal/shared"
)

// Format is a favorites export format.
type Format string

const (
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
	FormatText     Format = "txt"
)

// Formats lists the supported export formats.
var Formats = []Format{FormatCSV, FormatMarkdown, FormatText}

// Extension returns the file extension written for f.
func (f Format) Extension() string {
	if f == FormatMarkdown {
		return "md"
	}
	return string(f)
}

// ParseFormat resolves a --format value. "md" and "text" are accepted as aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return FormatCSV, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "txt", "text":
		return FormatText, nil
	}
	return "", fmt.Errorf("%w: unknown format %q (want csv, markdown or txt)", shared.ErrInvalidFlag, s)
}

// SongCard renders a recommendation as a multi-line card.
func SongCard(song models.Song) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", song.Title)
	fmt.Fprintf(&b, "Artist: %s\n", song.Artist)
	if song.Quote != "" {
		fmt.Fprintf(&b, "%s\n", song.Quote)
	}
	fmt.Fprintf(&b, "Listen: %s\n", song.URL)
	return b.String()
}

// FavoriteCard renders a favorite as a multi-line card.
func FavoriteCard(fav models.Favorite) string {
	return fmt.Sprintf("%s\nArtist: %s\nMood: %s\nListen: %s\n", fav.Title, fav.Artist, fav.Mood, fav.URL)
}

// HistoryLine renders one history entry on a single line.
func HistoryLine(h models.HistoryView) string {
	titles := make([]string, 0, len(h.Songs))
	for _, s := range h.Songs {
		titles = append(titles, s.Title)
	}

	songs := "no songs"
	if len(titles) > 0 {
		songs = strings.Join(titles, ", ")
	}
	return fmt.Sprintf("%s  %-10s %d  %s", h.Timestamp, h.Mood, len(h.Songs), songs)
}

// filterLabel returns the heading used for a favorites filter.
func filterLabel(filter string) string {
	if filter == "" || strings.EqualFold(filter, models.FilterAll) {
		return "All"
	}
	return models.Mood(strings.ToLower(filter)).Label()
}

// ExportToCSV converts favorites to CSV with columns: Title, Artist, Mood, URL
func ExportToCSV(favs []models.Favorite) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"Title", "Artist", "Mood", "URL"}); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, fav := range favs {
		if err := writer.Write([]string{fav.Title, fav.Artist, fav.Mood, fav.URL}); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts favorites to a Markdown document headed by the filter
func ExportToMarkdown(favs []models.Favorite, filter string) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# Favorites: %s\n\n", filterLabel(filter))
	fmt.Fprintf(&buf, "**Songs**: %d\n\n", len(favs))

	if len(favs) == 0 {
		buf.WriteString("_No favorite songs found for this category._\n")
		return buf.Bytes(), nil
	}

	buf.WriteString("## Songs\n\n")
	for i, fav := range favs {
		fmt.Fprintf(&buf, "%d. [%s](%s) - %s _(%s)_\n", i+1, fav.Title, fav.URL, fav.Artist, fav.Mood)
	}

	return buf.Bytes(), nil
}

// ExportToText converts favorites to plain text
func ExportToText(favs []models.Favorite, filter string) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Favorites: %s\n", filterLabel(filter))
	fmt.Fprintf(&buf, "Songs: %d\n\n", len(favs))

	for i, fav := range favs {
		fmt.Fprintf(&buf, "%d. %s - %s [%s] %s\n", i+1, fav.Artist, fav.Title, fav.Mood, fav.URL)
	}

	return buf.Bytes(), nil
}

// Export renders favorites in format.
func Export(favs []models.Favorite, format Format, filter string) ([]byte, error) {
	switch format {
	case FormatCSV:
		return ExportToCSV(favs)
	case FormatMarkdown:
		return ExportToMarkdown(favs, filter)
	case FormatText:
		return ExportToText(favs, filter)
	}
	return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, format)
}

// DefaultExportPath returns favorites_{filter}.{ext}.
func DefaultExportPath(format Format, filter string) string {
	if filter == "" {
		filter = models.FilterAll
	}
	return fmt.Sprintf("favorites_%s.%s", strings.ToLower(filter), format.Extension())
}

// WriteExport writes favorites in format to path and returns the path written.
//
// Defaults to [DefaultExportPath] when path is empty. Parent directories are created.
func WriteExport(favs []models.Favorite, format Format, filter, path string) (string, error) {
	if path == "" {
		path = DefaultExportPath(format, filter)
	}

	data, err := Export(favs, format, filter)
	if err != nil {
		return "", fmt.Errorf("failed to generate %s: %w", format, err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s file: %w", format, err)
	}

	return path, nil
}
