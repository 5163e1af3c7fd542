package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/moodtunes/internal/models"
	"github.com/desertthunder/moodtunes/internal/services"
	"github.com/desertthunder/moodtunes/internal/shared"
	tu "github.com/desertthunder/moodtunes/internal/testing"
)

type fakeHistory struct {
	entries []models.HistoryView
	err     error
	limits  []int
}

func (f *fakeHistory) History(ctx context.Context, limit int) ([]models.HistoryView, error) {
	f.limits = append(f.limits, limit)
	return f.entries, f.err
}

type testEnv struct {
	runner  *Runner
	client  *tu.FakeRecommender
	history *fakeHistory
	output  *bytes.Buffer
}

func newTestEnv(t *testing.T, input string, terminal bool) *testEnv {
	t.Helper()

	env := &testEnv{
		client:  tu.NewFakeRecommender(),
		history: &fakeHistory{},
		output:  &bytes.Buffer{},
	}
	env.runner = NewRunner(RunnerOpts{
		Client:     env.client,
		History:    env.history,
		Logger:     log.New(io.Discard),
		Output:     env.output,
		Input:      strings.NewReader(input),
		IsTerminal: func() bool { return terminal },
	})
	return env
}

// run executes the full command tree with args.
func (e *testEnv) run(args ...string) error {
	return newApp(e.runner).Run(context.Background(), append([]string{"moodtunes"}, args...))
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			client := tu.NewFakeRecommender()
			history := &fakeHistory{}
			api := services.NewAPIService("http://example.test", nil)

			runner := NewRunner(RunnerOpts{
				Config:  config,
				Logger:  logger,
				Output:  output,
				Client:  client,
				History: history,
				API:     api,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.client != client {
				t.Error("expected client to be set")
			}
			if runner.history != history {
				t.Error("expected history to be set")
			}
			if runner.api != api {
				t.Error("expected api to be set")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Logger: log.New(io.Discard)})

			if runner.config == nil {
				t.Fatal("expected default config to be set")
			}
			if runner.api.BaseURL() != shared.DefaultConfig().Client.BaseURL {
				t.Errorf("expected api on default base url, got %s", runner.api.BaseURL())
			}
		})

		t.Run("with nil client builds one on the api", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Logger: log.New(io.Discard)})

			client, ok := runner.client.(*services.Client)
			if !ok {
				t.Fatalf("expected *services.Client, got %T", runner.client)
			}
			if client.API() != runner.api {
				t.Error("client should share the runner api")
			}
			if runner.history == nil {
				t.Error("expected history reader to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Logger: log.New(io.Discard)})

			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})
	})

	t.Run("UseBaseURL", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{Logger: log.New(io.Discard)})
		runner.UseBaseURL("http://other.test:9000/")

		if runner.api.BaseURL() != "http://other.test:9000" {
			t.Errorf("unexpected base url %s", runner.api.BaseURL())
		}
		if runner.config.Client.BaseURL != "http://other.test:9000/" {
			t.Errorf("config not updated: %s", runner.config.Client.BaseURL)
		}
	})

	t.Run("SetLogger", func(t *testing.T) {
		t.Run("rebuilds client and history reader", func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			}))
			defer ts.Close()

			runner := NewRunner(RunnerOpts{Logger: log.New(io.Discard)})
			runner.UseBaseURL(ts.URL)

			var buf bytes.Buffer
			runner.SetLogger(log.New(&buf))

			client, _ := runner.client.(*services.Client)
			history, _ := runner.history.(*services.Client)
			if client == nil || client != history {
				t.Error("expected client and history to share one rebuilt client")
			}
			if _, err := runner.history.History(context.Background(), 5); err == nil {
				t.Fatal("expected history error")
			}
			if !strings.Contains(buf.String(), "backend returned an error") {
				t.Errorf("history diagnostics not on the new logger: %q", buf.String())
			}
		})

		t.Run("keeps injected doubles", func(t *testing.T) {
			env := newTestEnv(t, "", false)
			env.runner.SetLogger(log.New(io.Discard))

			if env.runner.client != env.client {
				t.Error("injected client should be kept")
			}
			if env.runner.history != env.history {
				t.Error("injected history reader should be kept")
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output, Logger: log.New(io.Discard)})

			if err := runner.writeJSON(map[string]string{"key": "value"}, true); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if !strings.Contains(result, `"key": "value"`) {
				t.Errorf("expected formatted JSON, got %s", result)
			}
			if !strings.HasSuffix(result, "\n") {
				t.Error("expected output to end with newline")
			}
		})

		t.Run("writes compact JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output, Logger: log.New(io.Discard)})

			if err := runner.writeJSON(map[string]string{"key": "value"}, false); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if output.String() != "{\"key\":\"value\"}\n" {
				t.Errorf("expected compact JSON, got %q", output.String())
			}
		})

		t.Run("handles marshal error with non-serializable data", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}, Logger: log.New(io.Discard)})

			err := runner.writeJSON(map[string]any{"fn": func() {}}, false)
			if err == nil || !strings.Contains(err.Error(), "failed to marshal JSON") {
				t.Errorf("expected marshal error, got %v", err)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}, Logger: log.New(io.Discard)})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)
			if err == nil || !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})

		t.Run("handles newline write failure", func(t *testing.T) {
			limitedWriter := tu.NewLimitedWriter(1, 0, &bytes.Buffer{})
			runner := NewRunner(RunnerOpts{Output: &limitedWriter, Logger: log.New(io.Discard)})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)
			if err == nil || !strings.Contains(err.Error(), "failed to write newline") {
				t.Errorf("expected newline error, got %v", err)
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		t.Run("writes plain text successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output, Logger: log.New(io.Discard)})

			if err := runner.writePlain("Hello %s", "World"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if output.String() != "Hello World" {
				t.Errorf("expected 'Hello World', got %q", output.String())
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}, Logger: log.New(io.Discard)})

			if err := runner.writePlain("text"); err == nil {
				t.Error("expected error")
			}
			if err := runner.writePlainln("text"); err == nil {
				t.Error("expected error")
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{Logger: log.New(io.Discard)})

		names := []string{}
		for _, cmd := range runner.register() {
			names = append(names, cmd.Name)
		}

		want := "recommend,favorites,history,serve,setup,api,tui"
		if got := strings.Join(names, ","); got != want {
			t.Errorf("expected %s, got %s", want, got)
		}
	})

	t.Run("confirm", func(t *testing.T) {
		tt := []struct {
			name     string
			input    string
			terminal bool
			want     bool
		}{
			{name: "yes", input: "y\n", terminal: true, want: true},
			{name: "full word", input: "YES\n", terminal: true, want: true},
			{name: "no", input: "n\n", terminal: true, want: false},
			{name: "default", input: "\n", terminal: true, want: false},
			{name: "eof without newline", input: "y", terminal: true, want: true},
			{name: "empty input", input: "", terminal: true, want: false},
			{name: "not a terminal", input: "y\n", terminal: false, want: false},
		}

		for _, tc := range tt {
			t.Run(tc.name, func(t *testing.T) {
				env := newTestEnv(t, tc.input, tc.terminal)
				if got := env.runner.confirm("Sure?"); got != tc.want {
					t.Errorf("confirm() = %v, want %v", got, tc.want)
				}
			})
		}
	})
}

func TestRecommendCommand(t *testing.T) {
	t.Run("prints cards", func(t *testing.T) {
		env := newTestEnv(t, "", false)
		env.client.Songs["happy"] = []models.Song{
			{Title: "Shake It Off", Artist: "Taylor Swift", URL: "https://youtu.be/nfWlot6h_JM", Quote: `"Dance." - Anon`},
		}

		if err := env.run("recommend", "--mood", "happy"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		out := env.output.String()
		for _, want := range []string{"Happy songs", "Shake It Off", "Artist: Taylor Swift", `"Dance." - Anon`, "https://youtu.be/nfWlot6h_JM"} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q:\n%s", want, out)
			}
		}
		if calls := env.client.CallsTo("Recommend"); len(calls) != 1 || calls[0].At.IsZero() {
			t.Errorf("expected one timestamped request, got %v", calls)
		}
	})

	t.Run("json", func(t *testing.T) {
		env := newTestEnv(t, "", false)

		if err := env.run("recommend", "-m", "sad", "--json"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(env.output.String(), `"songs": []`) {
			t.Errorf("expected empty songs array, got %s", env.output.String())
		}
	})

	t.Run("empty result", func(t *testing.T) {
		env := newTestEnv(t, "", false)

		if err := env.run("recommend", "--mood", "chill"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(env.output.String(), `No songs found for "chill" mood. Try another mood!`) {
			t.Errorf("unexpected output %q", env.output.String())
		}
	})

	t.Run("missing mood fails fast", func(t *testing.T) {
		env := newTestEnv(t, "", false)

		err := env.run("recommend")
		if !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
		if len(env.client.Calls) != 0 {
			t.Error("no request should be sent")
		}
	})

	t.Run("backend failure", func(t *testing.T) {
		env := newTestEnv(t, "", false)
		env.client.RecommendErr = &services.APIError{StatusCode: 500, Message: services.FallbackRecommend}

		err := env.run("recommend", "--mood", "happy")
		if !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("expected ErrAPIRequest, got %v", err)
		}
	})
}

func TestFavoritesCommands(t *testing.T) {
	seed := []models.Favorite{
		{Title: "Perfect", Artist: "Ed Sheeran", URL: "https://youtu.be/p", Mood: "romantic"},
		{Title: "Shake It Off", Artist: "Taylor Swift", URL: "https://youtu.be/s", Mood: "Happy"},
	}

	t.Run("list filters by mood", func(t *testing.T) {
		env := newTestEnv(t, "", false)
		env.client.FavoritesList = seed

		if err := env.run("favorites", "list", "--mood", "happy"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		out := env.output.String()
		if !strings.Contains(out, "Shake It Off") || strings.Contains(out, "Perfect") {
			t.Errorf("unexpected output:\n%s", out)
		}
		if !strings.Contains(out, "Mood: Happy") {
			t.Errorf("card missing mood:\n%s", out)
		}
	})

	t.Run("list json", func(t *testing.T) {
		env := newTestEnv(t, "", false)
		env.client.FavoritesList = seed

		if err := env.run("fav", "ls", "--json"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Count(env.output.String(), `"url"`) != 2 {
			t.Errorf("expected both favorites, got %s", env.output.String())
		}
	})

	t.Run("list empty", func(t *testing.T) {
		env := newTestEnv(t, "", false)

		if err := env.run("favorites", "list"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(env.output.String(), "No favorite songs found for this category.") {
			t.Errorf("unexpected output %q", env.output.String())
		}
	})

	t.Run("add", func(t *testing.T) {
		env := newTestEnv(t, "", false)

		args := []string{"favorites", "add", "--title", "Perfect", "--artist", "Ed Sheeran", "--url", "https://youtu.be/p", "--mood", "romantic"}
		if err := env.run(args...); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := env.run(args...); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		out := env.output.String()
		if !strings.Contains(out, "Song added to favorites") || !strings.Contains(out, "Song already in favorites") {
			t.Errorf("unexpected output:\n%s", out)
		}
		if len(env.client.FavoritesList) != 1 || env.client.FavoritesList[0] != seed[0] {
			t.Errorf("unexpected favorites %v", env.client.FavoritesList)
		}
	})

	t.Run("add failure", func(t *testing.T) {
		env := newTestEnv(t, "", false)
		env.client.AddErr = &services.APIError{StatusCode: 400, Message: "Song URL not provided"}

		err := env.run("favorites", "add", "--url", "https://youtu.be/p")
		if err == nil || !strings.Contains(err.Error(), "error adding song to favorites: Song URL not provided") {
			t.Errorf("unexpected error %v", err)
		}
	})

	t.Run("remove with --yes", func(t *testing.T) {
		env := newTestEnv(t, "", false)
		env.client.FavoritesList = append([]models.Favorite{}, seed...)

		if err := env.run("favorites", "remove", "--url", "https://youtu.be/p", "--yes"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(env.output.String(), "Song removed from favorites") {
			t.Errorf("unexpected output %q", env.output.String())
		}
		if len(env.client.FavoritesList) != 1 {
			t.Errorf("expected one favorite left, got %d", len(env.client.FavoritesList))
		}
	})

	t.Run("remove confirmed on terminal", func(t *testing.T) {
		env := newTestEnv(t, "y\n", true)
		env.client.FavoritesList = append([]models.Favorite{}, seed...)

		if err := env.run("favorites", "rm", "--url", "https://youtu.be/s"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(env.output.String(), "Are you sure you want to remove this song from favorites? [y/N]") {
			t.Errorf("prompt not shown: %q", env.output.String())
		}
		if len(env.client.CallsTo("DeleteFavorite")) != 1 {
			t.Error("expected a delete request")
		}
	})

	t.Run("remove declined", func(t *testing.T) {
		for _, tc := range []struct {
			name     string
			input    string
			terminal bool
		}{
			{name: "answered no", input: "n\n", terminal: true},
			{name: "not a terminal", input: "y\n", terminal: false},
		} {
			t.Run(tc.name, func(t *testing.T) {
				env := newTestEnv(t, tc.input, tc.terminal)
				env.client.FavoritesList = append([]models.Favorite{}, seed...)

				err := env.run("favorites", "remove", "--url", "https://youtu.be/p")
				if !errors.Is(err, shared.ErrCancelled) {
					t.Errorf("expected ErrCancelled, got %v", err)
				}
				if len(env.client.CallsTo("DeleteFavorite")) != 0 {
					t.Error("declined removal must not send a request")
				}
			})
		}
	})

	t.Run("remove unknown url", func(t *testing.T) {
		env := newTestEnv(t, "", false)
		env.client.DeleteErr = &services.APIError{StatusCode: 404, Message: "Song not found in favorites"}

		err := env.run("favorites", "remove", "--url", "https://youtu.be/x", "-y")
		if !services.IsNotFound(err) {
			t.Errorf("expected not found, got %v", err)
		}
		if !strings.Contains(err.Error(), "error removing song: Song not found in favorites") {
			t.Errorf("unexpected message %v", err)
		}
	})

	t.Run("export", func(t *testing.T) {
		env := newTestEnv(t, "", false)
		env.client.FavoritesList = seed
		path := filepath.Join(t.TempDir(), "romantic.md")

		if err := env.run("favorites", "export", "--mood", "romantic", "--format", "md", "--output", path); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		tu.AssertFileExists(t, path)
		content := tu.MustReadFile(t, path)
		if !strings.Contains(content, "# Favorites: Romantic") || !strings.Contains(content, "Perfect") || strings.Contains(content, "Shake It Off") {
			t.Errorf("unexpected export:\n%s", content)
		}
		if !strings.Contains(env.output.String(), "Exported 1 favorites to "+path) {
			t.Errorf("unexpected output %q", env.output.String())
		}
	})

	t.Run("export bad format", func(t *testing.T) {
		env := newTestEnv(t, "", false)

		err := env.run("favorites", "export", "--format", "xml")
		if !errors.Is(err, shared.ErrInvalidFlag) {
			t.Errorf("expected ErrInvalidFlag, got %v", err)
		}
		if len(env.client.Calls) != 0 {
			t.Error("no request should be sent for a bad format")
		}
	})
}

func TestHistoryCommand(t *testing.T) {
	t.Run("prints entries", func(t *testing.T) {
		env := newTestEnv(t, "", false)
		env.history.entries = []models.HistoryView{
			{Mood: "happy", Timestamp: "2024-01-01T00:00:00.000Z", Songs: []models.Song{{Title: "Shake It Off"}}},
		}

		if err := env.run("history", "-n", "5"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(env.history.limits) != 1 || env.history.limits[0] != 5 {
			t.Errorf("unexpected limits %v", env.history.limits)
		}
		if !strings.Contains(env.output.String(), "Shake It Off") {
			t.Errorf("unexpected output %q", env.output.String())
		}
	})

	t.Run("empty", func(t *testing.T) {
		env := newTestEnv(t, "", false)

		if err := env.run("history"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if env.history.limits[0] != 20 {
			t.Errorf("expected default limit 20, got %d", env.history.limits[0])
		}
		if !strings.Contains(env.output.String(), "No recommendations recorded yet.") {
			t.Errorf("unexpected output %q", env.output.String())
		}
	})

	t.Run("bad limit", func(t *testing.T) {
		env := newTestEnv(t, "", false)

		if err := env.run("history", "--limit", "0"); !errors.Is(err, shared.ErrInvalidFlag) {
			t.Errorf("expected ErrInvalidFlag, got %v", err)
		}
	})
}

func TestAPICommands(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/favorites":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"favorites":[]}`))
		case "/add_favorite":
			body, _ := io.ReadAll(r.Body)
			w.Header().Set("Content-Type", "application/json")
			if !strings.Contains(string(body), `"url"`) {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`{"error":"Song URL not provided"}`))
				return
			}
			w.Write([]byte(`{"message":"Song added to favorites"}`))
		default:
			w.Write([]byte("pong"))
		}
	}))
	defer ts.Close()

	newEnv := func(t *testing.T) *testEnv {
		env := newTestEnv(t, "", false)
		env.runner.UseBaseURL(ts.URL)
		return env
	}

	t.Run("get", func(t *testing.T) {
		env := newEnv(t)

		if err := env.run("api", "get", "/favorites"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(env.output.String(), `"favorites": []`) {
			t.Errorf("unexpected output %q", env.output.String())
		}
	})

	t.Run("get plain body", func(t *testing.T) {
		env := newEnv(t)

		if err := env.run("api", "get", "/ping"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if env.output.String() != "pong\n" {
			t.Errorf("unexpected output %q", env.output.String())
		}
	})

	t.Run("get without path", func(t *testing.T) {
		env := newEnv(t)

		if err := env.run("api", "get"); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("post", func(t *testing.T) {
		env := newEnv(t)

		if err := env.run("api", "post", "-d", `{"url":"https://youtu.be/p"}`, "/add_favorite"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(env.output.String(), "Song added to favorites") {
			t.Errorf("unexpected output %q", env.output.String())
		}
	})

	t.Run("post non-2xx", func(t *testing.T) {
		env := newEnv(t)

		err := env.run("api", "post", "-d", `{}`, "/add_favorite")
		if !errors.Is(err, shared.ErrAPIRequest) || !strings.Contains(err.Error(), "status 400") {
			t.Errorf("expected API error, got %v", err)
		}
	})

	t.Run("post invalid JSON", func(t *testing.T) {
		env := newEnv(t)

		if err := env.run("api", "post", "-d", `{nope`, "/add_favorite"); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("base-url flag", func(t *testing.T) {
		env := newTestEnv(t, "", false)

		if err := env.run("--base-url", ts.URL, "api", "get", "/favorites"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if env.runner.api.BaseURL() != ts.URL {
			t.Errorf("expected %s, got %s", ts.URL, env.runner.api.BaseURL())
		}
	})
}

func TestSetupCommands(t *testing.T) {
	t.Run("config", func(t *testing.T) {
		env := newTestEnv(t, "", false)
		path := filepath.Join(t.TempDir(), "config.toml")

		if err := env.run("setup", "config", "--config", path); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		tu.AssertFileExists(t, path)

		if err := os.WriteFile(path, []byte("# edited\n"), 0644); err != nil {
			t.Fatalf("failed to edit config: %v", err)
		}

		if err := env.run("setup", "config", "-c", path); !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument without --force, got %v", err)
		}
		if content := tu.MustReadFile(t, path); content != "# edited\n" {
			t.Errorf("file changed without --force: %q", content)
		}

		if err := env.run("setup", "config", "-c", path, "--force"); err != nil {
			t.Fatalf("expected overwrite with --force, got %v", err)
		}
		if content := tu.MustReadFile(t, path); !strings.Contains(content, "[server]") {
			t.Errorf("expected template after --force, got %q", content)
		}
	})

	t.Run("database and rollback", func(t *testing.T) {
		t.Chdir(t.TempDir())
		env := newTestEnv(t, "", false)

		if err := env.run("setup", "database"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		tu.AssertFileExists(t, "config.toml")
		config, err := shared.LoadConfig("config.toml")
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}
		tu.AssertFileExists(t, config.Database.Path)

		out := env.output.String()
		if strings.Count(out, "applied") != 2 {
			t.Errorf("expected two applied migrations:\n%s", out)
		}

		env.output.Reset()
		if err := env.run("setup", "rollback"); err != nil {
			t.Fatalf("unexpected rollback error: %v", err)
		}
		if strings.Count(env.output.String(), "pending") != 1 {
			t.Errorf("expected one pending migration:\n%s", env.output.String())
		}
	})
}

func TestBuildServer(t *testing.T) {
	quotes := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"q":"Keep going.","a":"Anon"}]`))
	}))
	defer quotes.Close()

	config := shared.DefaultConfig()
	config.Database.Path = ":memory:"
	config.Quotes.BaseURL = quotes.URL
	config.Quotes.RateLimit = 1000

	env := newTestEnv(t, "", false)
	srv, db, err := env.runner.buildServer(config)
	if err != nil {
		t.Fatalf("failed to build server: %v", err)
	}
	defer db.Close()

	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	client := services.NewClient(services.NewAPIService(ts.URL, nil), nil)
	ctx := context.Background()

	songs, err := client.Recommend(ctx, "romantic", time.Now())
	if err != nil {
		t.Fatalf("recommend failed: %v", err)
	}
	if len(songs) == 0 {
		t.Fatal("expected romantic songs from the catalog")
	}
	for _, song := range songs {
		if song.Quote == "" {
			t.Errorf("song %q has no quote", song.Title)
		}
	}

	entries, err := client.History(ctx, 10)
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Mood != "romantic" {
		t.Errorf("expected one romantic history entry, got %v", entries)
	}

	if routes := strings.Join(srv.Routes(), ","); !strings.Contains(routes, "/recommend") || !strings.Contains(routes, "/history") {
		t.Errorf("unexpected routes %s", routes)
	}
}
