package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/okra-platform/rpcgen/internal/config"
	"github.com/okra-platform/rpcgen/internal/dev"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockConfigLoader struct {
	mock.Mock
}

func (m *mockConfigLoader) LoadConfig() (*config.Config, string, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*config.Config), args.String(1), args.Error(2)
}

func (m *mockConfigLoader) LoadConfigFromPath(path string) (*config.Config, error) {
	args := m.Called(path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*config.Config), args.Error(1)
}

type mockOutput struct {
	mu       sync.Mutex
	messages []string
}

func (m *mockOutput) Printf(format string, a ...any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, fmt.Sprintf(format, a...))
}

func (m *mockOutput) Println(a ...any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, fmt.Sprintln(a...))
}

func (m *mockOutput) String() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return strings.Join(m.messages, "")
}

type mockSignalNotifier struct {
	mock.Mock
}

func (m *mockSignalNotifier) Notify(c chan<- os.Signal, sig ...os.Signal) {
	m.Called(c, sig)
}

func (m *mockSignalNotifier) Stop(c chan<- os.Signal) {
	m.Called(c)
}

type mockWatchServer struct {
	mock.Mock
}

func (m *mockWatchServer) Start(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockWatchServer) Stop(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type mockWatchServerFactory struct {
	mock.Mock
	regen dev.Regenerator
}

func (m *mockWatchServerFactory) NewServer(projectRoot string, watch config.WatchConfig, regen dev.Regenerator) WatchServer {
	m.regen = regen
	args := m.Called(projectRoot, watch, regen)
	return args.Get(0).(WatchServer)
}

// newProject copies the calc schema into a temp dir and returns the dir with
// a config generating go and js into gen/
func newProject(t *testing.T) (string, *config.Config) {
	t.Helper()
	root := t.TempDir()

	data, err := os.ReadFile(filepath.Join("..", "example", "calc", "calc.graphql"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(root, "calc.graphql"), data, 0o644))

	cfg := config.Default()
	cfg.Schema = "./calc.graphql"
	cfg.Targets = []config.Target{
		{Backend: "go", Out: "./gen/go"},
		{Backend: "js", Out: "./gen/js", Options: map[string]string{"target": "node"}},
	}
	return root, cfg
}
