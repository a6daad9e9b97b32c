package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/fatih/color"
	homedir "github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"

	"github.com/five82/checkoff/internal/api"
	"github.com/five82/checkoff/internal/app"
	"github.com/five82/checkoff/internal/config"
	"github.com/five82/checkoff/internal/prefs"
)

// todoServer is a minimal in-memory todos API.
type todoServer struct {
	mu      sync.Mutex
	todos   []api.Todo
	next    int
	failAll bool
}

func (s *todoServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failAll {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(api.ErrorResponse{Error: "database offline"})
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/todos")
	id = strings.TrimPrefix(id, "/")

	switch {
	case r.Method == http.MethodGet && id == "":
		_ = json.NewEncoder(w).Encode(api.ListResponse{Todos: s.todos})
	case r.Method == http.MethodPost && id == "":
		var body struct {
			Title string `json:"title"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		s.next++
		todo := api.Todo{ID: "id" + strconv.Itoa(s.next), Title: body.Title}
		s.todos = append(s.todos, todo)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(api.TodoResponse{Todo: todo})
	case r.Method == http.MethodPut:
		var patch api.Patch
		_ = json.NewDecoder(r.Body).Decode(&patch)
		for i := range s.todos {
			if s.todos[i].ID != id {
				continue
			}
			if patch.Title != nil {
				s.todos[i].Title = *patch.Title
			}
			if patch.Completed != nil {
				s.todos[i].Completed = *patch.Completed
			}
			_ = json.NewEncoder(w).Encode(api.TodoResponse{Todo: s.todos[i]})
			return
		}
		s.notFound(w)
	case r.Method == http.MethodDelete:
		for i := range s.todos {
			if s.todos[i].ID == id {
				s.todos = append(s.todos[:i], s.todos[i+1:]...)
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}
		s.notFound(w)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *todoServer) notFound(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNotFound)
	_ = json.NewEncoder(w).Encode(api.ErrorResponse{Error: "Todo not found"})
}

func (s *todoServer) snapshot() []api.Todo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]api.Todo(nil), s.todos...)
}

func setup(t *testing.T, todos ...api.Todo) (*todoServer, string) {
	t.Helper()
	color.NoColor = true
	homedir.DisableCache = true
	t.Setenv("HOME", t.TempDir())
	t.Setenv(config.EnvBaseURL, "")

	srv := &todoServer{todos: todos, next: len(todos)}
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	return srv, ts.URL + "/api/todos"
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := New(BuildInfo{Version: "1.0.0", Commit: "abc", Date: "today"})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--config", filepath.Join(t.TempDir(), "none.toml")))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestListTable(t *testing.T) {
	_, base := setup(t,
		api.Todo{ID: "a1", Title: "Buy milk"},
		api.Todo{ID: "b2", Title: "Walk dog", Completed: true},
	)

	out, err := execute(t, "list", "--base-url", base)
	if err != nil {
		t.Fatalf("list returned error: %v", err)
	}
	for _, want := range []string{"ID", "TITLE", "a1", "Buy milk", "[x]", "Walk dog"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "Buy milk") > strings.Index(out, "Walk dog") {
		t.Fatalf("output not in server order:\n%s", out)
	}
}

func TestListEmpty(t *testing.T) {
	_, base := setup(t)
	out, err := execute(t, "list", "--base-url", base)
	if err != nil {
		t.Fatalf("list returned error: %v", err)
	}
	if !strings.Contains(out, "No todos yet.") {
		t.Fatalf("output = %q, want empty message", out)
	}
}

func TestListJSONAndYAML(t *testing.T) {
	_, base := setup(t, api.Todo{ID: "a1", Title: "Buy milk"})

	out, err := execute(t, "list", "-o", "json", "--base-url", base)
	if err != nil {
		t.Fatalf("list json returned error: %v", err)
	}
	var fromJSON []api.Todo
	if err := json.Unmarshal([]byte(out), &fromJSON); err != nil {
		t.Fatalf("json output did not parse: %v\n%s", err, out)
	}
	if len(fromJSON) != 1 || fromJSON[0].ID != "a1" {
		t.Fatalf("json todos = %+v", fromJSON)
	}

	out, err = execute(t, "list", "-o", "yaml", "--base-url", base)
	if err != nil {
		t.Fatalf("list yaml returned error: %v", err)
	}
	var fromYAML []api.Todo
	if err := yaml.Unmarshal([]byte(out), &fromYAML); err != nil {
		t.Fatalf("yaml output did not parse: %v\n%s", err, out)
	}
	if len(fromYAML) != 1 || fromYAML[0].Title != "Buy milk" {
		t.Fatalf("yaml todos = %+v", fromYAML)
	}
}

func TestListUnknownFormatIsUsage(t *testing.T) {
	_, base := setup(t)
	_, err := execute(t, "list", "-o", "xml", "--base-url", base)
	if got := ExitCode(err); got != 2 {
		t.Fatalf("ExitCode = %d, want 2 (err %v)", got, err)
	}
}

func TestAddToggleRenameRemove(t *testing.T) {
	srv, base := setup(t)

	if _, err := execute(t, "add", "Buy", "milk", "--base-url", base); err != nil {
		t.Fatalf("add returned error: %v", err)
	}
	todos := srv.snapshot()
	if len(todos) != 1 || todos[0].Title != "Buy milk" {
		t.Fatalf("server todos after add = %+v", todos)
	}
	id := todos[0].ID

	if _, err := execute(t, "rename", id, "Buy", "oat", "milk", "--base-url", base); err != nil {
		t.Fatalf("rename returned error: %v", err)
	}
	if got := srv.snapshot()[0].Title; got != "Buy oat milk" {
		t.Fatalf("title after rename = %q", got)
	}

	out, err := execute(t, "toggle", id, "--base-url", base)
	if err != nil {
		t.Fatalf("toggle returned error: %v", err)
	}
	if !srv.snapshot()[0].Completed {
		t.Fatalf("todo not completed after toggle")
	}
	if !strings.Contains(out, "[x]") {
		t.Fatalf("toggle output = %q, want completed row", out)
	}

	if _, err := execute(t, "rename", id, "Nope", "--base-url", base); err == nil {
		t.Fatalf("rename of completed todo succeeded")
	}

	if _, err := execute(t, "rm", id, "--base-url", base); err != nil {
		t.Fatalf("rm returned error: %v", err)
	}
	if got := len(srv.snapshot()); got != 0 {
		t.Fatalf("server todos after rm = %d, want 0", got)
	}
}

func TestAddBlankTitleFails(t *testing.T) {
	srv, base := setup(t)
	_, err := execute(t, "add", "   ", "--base-url", base)
	if err == nil {
		t.Fatalf("add blank title succeeded")
	}
	if got := ExitCode(err); got != 1 {
		t.Fatalf("ExitCode = %d, want 1", got)
	}
	if got := len(srv.snapshot()); got != 0 {
		t.Fatalf("server todos = %d, want 0", got)
	}
}

func TestServerFailureUsesServerMessage(t *testing.T) {
	srv, base := setup(t)
	srv.failAll = true

	_, err := execute(t, "list", "--base-url", base)
	if err == nil || err.Error() != "database offline" {
		t.Fatalf("list error = %v, want server message", err)
	}
	if got := ExitCode(err); got != 1 {
		t.Fatalf("ExitCode = %d, want 1", got)
	}
}

func TestRemoveMissingUsesServerMessage(t *testing.T) {
	_, base := setup(t)
	_, err := execute(t, "rm", "ghost", "--base-url", base)
	if err == nil || err.Error() != "Todo not found" {
		t.Fatalf("rm error = %v, want Todo not found", err)
	}
}

func TestMissingBaseURLIsStartupError(t *testing.T) {
	setup(t)
	_, err := execute(t, "list")
	var startupErr *app.StartupError
	if !errors.As(err, &startupErr) {
		t.Fatalf("list error = %v, want *app.StartupError", err)
	}
	if got := ExitCode(err); got != 2 {
		t.Fatalf("ExitCode = %d, want 2", got)
	}
}

func TestArgumentErrorsAreUsage(t *testing.T) {
	setup(t)
	for _, args := range [][]string{
		{"toggle"},
		{"rename", "only-id"},
		{"list", "--bogus"},
		{"frobnicate"},
	} {
		_, err := execute(t, args...)
		if got := ExitCode(err); got != 2 {
			t.Fatalf("%v: ExitCode = %d, want 2 (err %v)", args, got, err)
		}
	}
}

func TestVersion(t *testing.T) {
	setup(t)
	out, err := execute(t, "version", "--short")
	if err != nil {
		t.Fatalf("version returned error: %v", err)
	}
	if !strings.Contains(out, "1.0.0") {
		t.Fatalf("version output = %q, want 1.0.0", out)
	}
}

func TestExitCode(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"usage", &UsageError{Err: errors.New("bad flag")}, 2},
		{"startup", &app.StartupError{Err: config.ErrMissingBaseURL}, 2},
		{"other", errors.New("boom"), 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExitCode(tc.err); got != tc.want {
				t.Fatalf("ExitCode(%v) = %d, want %d", tc.err, got, tc.want)
			}
		})
	}
}

func TestFlagHelpNamesDefaultPaths(t *testing.T) {
	cmd := New(BuildInfo{})
	if usage := cmd.PersistentFlags().Lookup("config").Usage; !strings.Contains(usage, config.DefaultPath()) {
		t.Fatalf("--config usage = %q, want it to name %s", usage, config.DefaultPath())
	}
	if usage := cmd.Flags().Lookup("prefs").Usage; !strings.Contains(usage, prefs.DefaultPath()) {
		t.Fatalf("--prefs usage = %q, want it to name %s", usage, prefs.DefaultPath())
	}
}
