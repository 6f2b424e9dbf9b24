package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/urfave/cli/v3"

	"github.com/DeutscheWaffel/Videoteka-UP/internal/shared"
	tu "github.com/DeutscheWaffel/Videoteka-UP/internal/testing"
)

// newTestRunner builds a runner against a stub backend and a throwaway
// database, returning the captured output buffer.
func newTestRunner(t *testing.T, handler http.Handler) (*Runner, *bytes.Buffer) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	config := shared.DefaultConfig()
	config.API.BaseURL = server.URL
	config.API.LandingURL = ""
	config.Database.Path = filepath.Join(t.TempDir(), "test.db")

	output := &bytes.Buffer{}
	runner := NewRunner(RunnerOpts{
		Config: config,
		Logger: shared.NewLogger(&bytes.Buffer{}),
		Output: output,
	})
	t.Cleanup(func() { runner.Close() })

	return runner, output
}

// run invokes the CLI tree the way main does.
func run(t *testing.T, r *Runner, args ...string) error {
	t.Helper()
	app := &cli.Command{Name: "videoteka", Commands: r.register()}
	return app.Run(context.Background(), append([]string{"videoteka"}, args...))
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Config: nil})
			if runner.config == nil {
				t.Error("expected default config to be set")
			}
		})

		t.Run("with nil logger uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Logger: nil})
			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: nil})
			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})

		t.Run("with nil httpClient uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{HTTPClient: nil})
			if runner.httpClient != http.DefaultClient {
				t.Error("expected httpClient to default to http.DefaultClient")
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

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
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(map[string]string{"key": "value"}, false); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			expected := `{"key":"value"}` + "\n"
			if output.String() != expected {
				t.Errorf("expected %q, got %q", expected, output.String())
			}
		})

		t.Run("handles marshal error with non-serializable data", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}})

			// channels cannot be marshaled to JSON
			err := runner.writeJSON(make(chan int), false)
			if err == nil {
				t.Fatal("expected error for non-serializable data")
			}
			if !strings.Contains(err.Error(), "failed to marshal JSON") {
				t.Errorf("expected marshal error, got %v", err)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)
			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		t.Run("writes plain text successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writePlain("hello %s", "world"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if output.String() != "hello world" {
				t.Errorf("expected 'hello world', got %q", output.String())
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			if err := runner.writePlain("test"); err == nil {
				t.Fatal("expected error from failing writer")
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		commands := runner.register()

		if len(commands) == 0 {
			t.Error("expected at least one command to be registered")
		}

		for i, cmd := range commands {
			if cmd == nil {
				t.Errorf("command at index %d is nil", i)
			}
		}
	})
}

func TestAuthActions(t *testing.T) {
	t.Run("login stores the issued token", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("POST /api/v1/login", func(w http.ResponseWriter, req *http.Request) {
			var body map[string]string
			json.NewDecoder(req.Body).Decode(&body)
			if body["username"] != "user" || body["password"] != "pw" {
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{"detail": "bad credentials"})
				return
			}
			json.NewEncoder(w).Encode(map[string]string{"access_token": "t1", "token_type": "bearer"})
		})

		runner, output := newTestRunner(t, mux)

		if err := run(t, runner, "auth", "login", "--username", "user", "--password", "pw"); err != nil {
			t.Fatalf("login failed: %v", err)
		}

		if !strings.Contains(output.String(), "Logged in as user") {
			t.Errorf("unexpected output: %s", output.String())
		}

		sess, err := runner.session()
		if err != nil {
			t.Fatalf("session failed: %v", err)
		}
		tok := sess.AccessToken()
		if tok == nil || tok.AccessToken != "t1" {
			t.Errorf("expected stored token t1, got %+v", tok)
		}
	})

	t.Run("failed login leaves no token behind", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("POST /api/v1/login", func(w http.ResponseWriter, req *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"detail": "bad credentials"})
		})

		runner, _ := newTestRunner(t, mux)

		if err := run(t, runner, "auth", "login", "--username", "user", "--password", "nope"); err == nil {
			t.Fatal("expected login error")
		}

		sess, _ := runner.session()
		if sess.Authenticated() {
			t.Error("expected no stored token after failed login")
		}
	})

	t.Run("account commands fail fast without a stored token", func(t *testing.T) {
		// backend must never be reached
		mux := http.NewServeMux()
		mux.HandleFunc("/", func(w http.ResponseWriter, req *http.Request) {
			t.Errorf("unexpected request to %s", req.URL.Path)
		})

		runner, _ := newTestRunner(t, mux)

		if err := run(t, runner, "auth", "me"); !errors.Is(err, shared.ErrNoToken) {
			t.Errorf("expected ErrNoToken, got %v", err)
		}
	})

	t.Run("logout clears the token", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("POST /api/v1/login", func(w http.ResponseWriter, req *http.Request) {
			json.NewEncoder(w).Encode(map[string]string{"access_token": "t1", "token_type": "bearer"})
		})

		runner, _ := newTestRunner(t, mux)

		run(t, runner, "auth", "login", "--username", "user", "--password", "pw")
		if err := run(t, runner, "auth", "logout"); err != nil {
			t.Fatalf("logout failed: %v", err)
		}

		sess, _ := runner.session()
		if sess.Authenticated() {
			t.Error("expected session cleared")
		}
	})
}

func TestFilmsActions(t *testing.T) {
	catalog := `[
		{"flim_id": 2, "title": "banana", "author": "Zed", "price": "30"},
		{"flim_id": 1, "title": "Apple", "author": "Ann", "price": "10"}
	]`

	t.Run("list sorts client-side and prints JSON", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("GET /api/v1/films/all", func(w http.ResponseWriter, req *http.Request) {
			w.Write([]byte(catalog))
		})

		runner, output := newTestRunner(t, mux)

		if err := run(t, runner, "films", "list", "--json", "--sort", "title"); err != nil {
			t.Fatalf("films list failed: %v", err)
		}

		result := output.String()
		apple := strings.Index(result, "Apple")
		banana := strings.Index(result, "banana")
		if apple == -1 || banana == -1 || apple > banana {
			t.Errorf("expected Apple before banana, got: %s", result)
		}
	})

	t.Run("list rejects unknown sort field", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("GET /api/v1/films/all", func(w http.ResponseWriter, req *http.Request) {
			w.Write([]byte(catalog))
		})

		runner, _ := newTestRunner(t, mux)

		if err := run(t, runner, "films", "list", "--sort", "rating"); err == nil {
			t.Fatal("expected error for unknown sort field")
		}
	})

	t.Run("random passes the count through", func(t *testing.T) {
		var requested string
		mux := http.NewServeMux()
		mux.HandleFunc("GET /api/v1/films/random/{n}", func(w http.ResponseWriter, req *http.Request) {
			requested = req.PathValue("n")
			w.Write([]byte(catalog))
		})

		runner, _ := newTestRunner(t, mux)

		if err := run(t, runner, "films", "random", "--json", "2"); err != nil {
			t.Fatalf("films random failed: %v", err)
		}
		if requested != "2" {
			t.Errorf("expected count 2, got %q", requested)
		}
	})
}

func TestCollectionActions(t *testing.T) {
	// stub backend with an in-memory cart
	newBackend := func() (*http.ServeMux, *[]map[string]any) {
		entries := &[]map[string]any{}
		mux := http.NewServeMux()
		mux.HandleFunc("GET /api/v1/films/all", func(w http.ResponseWriter, req *http.Request) {
			w.Write([]byte(`[{"flim_id": 7, "title": "Dune", "author": "Villeneuve", "price": "300"}]`))
		})
		mux.HandleFunc("GET /api/v1/cart", func(w http.ResponseWriter, req *http.Request) {
			json.NewEncoder(w).Encode(*entries)
		})
		mux.HandleFunc("POST /api/v1/cart", func(w http.ResponseWriter, req *http.Request) {
			var item map[string]any
			json.NewDecoder(req.Body).Decode(&item)
			*entries = append(*entries, item)
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(item)
		})
		mux.HandleFunc("DELETE /api/v1/cart/{id}", func(w http.ResponseWriter, req *http.Request) {
			*entries = (*entries)[:0]
			w.WriteHeader(http.StatusNoContent)
		})
		return mux, entries
	}

	t.Run("toggle adds then removes", func(t *testing.T) {
		mux, entries := newBackend()
		runner, output := newTestRunner(t, mux)

		if err := run(t, runner, "cart", "toggle", "7"); err != nil {
			t.Fatalf("toggle failed: %v", err)
		}
		if !strings.Contains(output.String(), "added to cart") {
			t.Errorf("unexpected output: %s", output.String())
		}
		if len(*entries) != 1 {
			t.Fatalf("expected 1 server entry, got %d", len(*entries))
		}
		if (*entries)[0]["movie_id"] != "7" {
			t.Errorf("unexpected payload: %+v", (*entries)[0])
		}

		output.Reset()
		if err := run(t, runner, "cart", "toggle", "7"); err != nil {
			t.Fatalf("second toggle failed: %v", err)
		}
		if !strings.Contains(output.String(), "removed from cart") {
			t.Errorf("unexpected output: %s", output.String())
		}
		if len(*entries) != 0 {
			t.Errorf("expected empty server cart, got %d entries", len(*entries))
		}
	})

	t.Run("toggle of an unknown id fails", func(t *testing.T) {
		mux, _ := newBackend()
		runner, _ := newTestRunner(t, mux)

		if err := run(t, runner, "cart", "toggle", "999"); err == nil {
			t.Fatal("expected error for unknown film")
		}
	})

	t.Run("show falls back to the cached copy when the server is down", func(t *testing.T) {
		mux, _ := newBackend()
		runner, output := newTestRunner(t, mux)

		if err := run(t, runner, "cart", "toggle", "7"); err != nil {
			t.Fatalf("toggle failed: %v", err)
		}

		// point the gateway at a dead server; the persisted snapshot survives
		runner.client = nil
		runner.cart, runner.bookmarks = nil, nil
		runner.config.API.BaseURL = "http://127.0.0.1:1"

		output.Reset()
		if err := run(t, runner, "cart", "show"); err != nil {
			t.Fatalf("show failed: %v", err)
		}
		if !strings.Contains(output.String(), "Dune") {
			t.Errorf("expected cached entry in output, got: %s", output.String())
		}
	})

	t.Run("export writes a CSV file", func(t *testing.T) {
		mux, _ := newBackend()
		runner, _ := newTestRunner(t, mux)

		if err := run(t, runner, "cart", "toggle", "7"); err != nil {
			t.Fatalf("toggle failed: %v", err)
		}

		path := filepath.Join(t.TempDir(), "cart.csv")
		if err := run(t, runner, "cart", "export", "--output", path); err != nil {
			t.Fatalf("export failed: %v", err)
		}

		content := tu.MustReadFile(t, path)
		if !strings.Contains(content, "MovieID,Title,Author,Price") || !strings.Contains(content, "Dune") {
			t.Errorf("unexpected CSV: %s", content)
		}
	})
}

func TestExportActions(t *testing.T) {
	t.Run("rejects an unknown format before doing any work", func(t *testing.T) {
		runner, _ := newTestRunner(t, http.NewServeMux())

		err := run(t, runner, "export", "genres", "--genre", "Drama", "--format", "xml")
		if !errors.Is(err, shared.ErrInvalidFlag) {
			t.Errorf("expected ErrInvalidFlag, got %v", err)
		}
	})
}

func TestAPIActions(t *testing.T) {
	t.Run("get prints the parsed response", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("GET /api/v1/genres", func(w http.ResponseWriter, req *http.Request) {
			w.Write([]byte(`{"genres": ["Drama"]}`))
		})

		runner, output := newTestRunner(t, mux)

		if err := run(t, runner, "api", "get", "/genres"); err != nil {
			t.Fatalf("api get failed: %v", err)
		}
		if !strings.Contains(output.String(), "Drama") {
			t.Errorf("unexpected output: %s", output.String())
		}
	})

	t.Run("post sends the JSON body", func(t *testing.T) {
		var received map[string]any
		mux := http.NewServeMux()
		mux.HandleFunc("POST /api/v1/echo", func(w http.ResponseWriter, req *http.Request) {
			json.NewDecoder(req.Body).Decode(&received)
			json.NewEncoder(w).Encode(received)
		})

		runner, _ := newTestRunner(t, mux)

		if err := run(t, runner, "api", "post", "--data", `{"a": 1}`, "/echo"); err != nil {
			t.Fatalf("api post failed: %v", err)
		}
		if received["a"] != float64(1) {
			t.Errorf("unexpected body: %+v", received)
		}
	})

	t.Run("post rejects invalid JSON", func(t *testing.T) {
		runner, _ := newTestRunner(t, http.NewServeMux())

		if err := run(t, runner, "api", "post", "--data", "{not json", "/echo"); err == nil {
			t.Fatal("expected error for invalid JSON body")
		}
	})
}
