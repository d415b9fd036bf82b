package e2e_test

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"partyhub/internal/api"
	"partyhub/internal/factory"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	serverURL  string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	// Find project root (where go.mod is)
	projectRoot := findProjectRoot(t)

	// Build the CLI binary
	binaryPath := filepath.Join(projectRoot, "bin", "partyhub-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/partyhub")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  serverURL,
	}
}

func (r *cliRunner) run(args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// testServer manages a real HTTP server for e2e tests
type testServer struct {
	server   *http.Server
	addr     string
	shutdown func()
}

func startTestServer(t *testing.T) *testServer {
	t.Helper()

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	// Create application
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	app, err := factory.New(factory.Config{Logger: logger})
	require.NoError(t, err)

	router := api.NewRouter(api.RouterConfig{
		Logger:            logger,
		SessionController: app.SessionController,
		Registry:          app.Registry,
		Hub:               app.Hub,
	})

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server
	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			t.Logf("server error: %v", err)
		}
	}()

	// Wait for server to be ready
	serverURL := "http://" + addr
	waitForServer(t, serverURL+"/healthz")

	return &testServer{
		server: server,
		addr:   serverURL,
		shutdown: func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Shutdown(ctx)
		},
	}
}

func waitForServer(t *testing.T, url string) {
	t.Helper()

	client := &http.Client{Timeout: 100 * time.Millisecond}
	deadline := time.Now().Add(5 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	t.Fatal("server did not become ready in time")
}

// Response types for JSON parsing
type playerResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Points uint   `json:"points"`
}

type gameResponse struct {
	Code         int                       `json:"code"`
	Players      map[string]playerResponse `json:"players"`
	Status       string                    `json:"status"`
	TotalPlayers int                       `json:"total_players"`
	TotalRounds  int                       `json:"total_rounds"`
}

type healthResponse struct {
	Status string `json:"status"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Tests

func TestCLI_HealthCheck(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("health")
	require.NoError(t, err, "output: %s", output)

	var resp healthResponse
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestCLI_GameCommands(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Create a game
	output, err := cli.run("game", "create", "--players", "4", "--rounds", "3")
	require.NoError(t, err, "output: %s", output)

	var created gameResponse
	require.NoError(t, json.Unmarshal([]byte(output), &created))
	assert.Equal(t, "Active", created.Status)
	assert.Equal(t, 4, created.TotalPlayers)
	assert.Equal(t, 3, created.TotalRounds)
	assert.GreaterOrEqual(t, created.Code, 1000)
	assert.LessOrEqual(t, created.Code, 9999)
	code := fmt.Sprintf("%d", created.Code)

	// Join as alice
	output, err = cli.run("game", "join", code, "alice")
	require.NoError(t, err, "output: %s", output)

	var joined playerResponse
	require.NoError(t, json.Unmarshal([]byte(output), &joined))
	assert.Equal(t, "alice", joined.ID)
	assert.Equal(t, "Joined", joined.Status)
	assert.Zero(t, joined.Points)

	// Join as bob
	output, err = cli.run("game", "join", code, "bob")
	require.NoError(t, err, "output: %s", output)

	// Duplicate join is rejected
	output, err = cli.run("game", "join", code, "alice")
	assert.Error(t, err, "duplicate name should be rejected")
	assert.Contains(t, strings.ToLower(output), "already")

	// Get shows both players
	output, err = cli.run("game", "get", code)
	require.NoError(t, err, "output: %s", output)

	var got gameResponse
	require.NoError(t, json.Unmarshal([]byte(output), &got))
	assert.Equal(t, created.Code, got.Code)
	assert.Len(t, got.Players, 2)
	assert.Contains(t, got.Players, "alice")
	assert.Contains(t, got.Players, "bob")
}

func TestCLI_ChatSend(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Any positive id is a valid sender; with no listeners the message
	// simply reaches nobody
	output, err := cli.run("chat", "send", "1", "hello", "world")
	require.NoError(t, err, "output: %s", output)

	var resp messageResponse
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.Equal(t, "Message sent", resp.Message)
}

func TestCLI_ErrorHandling(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Get non-existent game
	output, err := cli.run("game", "get", "9999")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "not found")

	// Non-numeric game code is rejected client-side
	output, err = cli.run("game", "get", "abc")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "numeric")
}
