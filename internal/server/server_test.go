package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mj1618/switcher/internal/model"
	"github.com/mj1618/switcher/internal/output"
	"github.com/mj1618/switcher/internal/platform"
	"github.com/mj1618/switcher/internal/switcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

type mockDiscovery struct {
	mu      sync.Mutex
	windows []model.Window
	err     error
	calls   int
}

func (m *mockDiscovery) ListWindows(context.Context) ([]model.Window, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return m.windows, m.err
}

func (m *mockDiscovery) Watch(ctx context.Context, _ chan<- platform.Event) error {
	<-ctx.Done()
	return nil
}

func (m *mockDiscovery) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

type mockSwitcher struct {
	mu        sync.Mutex
	state     switcher.State
	stateErr  error
	postErr   error
	lists     [][]model.Window
	activated []model.WindowID
	closed    []model.WindowID
}

func (m *mockSwitcher) State(context.Context) (switcher.State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state, m.stateErr
}

func (m *mockSwitcher) WindowListChanged(windows []model.Window) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lists = append(m.lists, windows)
	return m.postErr
}

func (m *mockSwitcher) Activate(w model.WindowID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.activated = append(m.activated, w)
	return m.postErr
}

func (m *mockSwitcher) CloseWindow(w model.WindowID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = append(m.closed, w)
	return m.postErr
}

func newTestServer(t *testing.T, sw Switcher, d *mockDiscovery) *Server {
	t.Helper()
	var disc platform.Discovery
	if d != nil {
		disc = d
	}
	return New(sw, disc, Config{CacheTTL: time.Second}, clockwork.NewFakeClock(), quiet)
}

func callRequest(args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", res.Content[0])
	return text.Text
}

func TestHandleListButtons(t *testing.T) {
	sw := &mockSwitcher{state: switcher.State{
		Pending:       true,
		PreviousCount: 2,
		Buttons:       []model.ButtonState{{Window: 1, Title: "Terminal"}},
	}}
	srv := newTestServer(t, sw, nil)

	res, err := srv.handleListButtons(context.Background(), callRequest(nil))
	require.NoError(t, err)
	assert.False(t, res.IsError)

	var got output.ButtonsResult
	require.NoError(t, yaml.Unmarshal([]byte(resultText(t, res)), &got))
	assert.True(t, got.Pending)
	assert.Equal(t, 2, got.Windows)
	assert.Equal(t, sw.state.Buttons, got.Buttons)
}

func TestHandleListButtons_Stopped(t *testing.T) {
	srv := newTestServer(t, &mockSwitcher{stateErr: switcher.ErrStopped}, nil)

	res, err := srv.handleListButtons(context.Background(), callRequest(nil))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "stopped")
}

func TestHandleListWindows_Cached(t *testing.T) {
	d := &mockDiscovery{windows: []model.Window{{ID: 7, Title: "Editor"}}}
	srv := newTestServer(t, &mockSwitcher{}, d)

	for i := 0; i < 3; i++ {
		res, err := srv.handleListWindows(context.Background(), callRequest(nil))
		require.NoError(t, err)
		assert.Contains(t, resultText(t, res), "Editor")
	}
	assert.Equal(t, 1, d.callCount())
}

func TestHandleListWindows_NoDiscovery(t *testing.T) {
	srv := newTestServer(t, &mockSwitcher{}, nil)

	res, err := srv.handleListWindows(context.Background(), callRequest(nil))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestHandleActivate(t *testing.T) {
	tests := []struct {
		name string
		id   interface{}
		want model.WindowID
	}{
		{"hex string", "0x1a00003", 0x1a00003},
		{"decimal string", "42", 42},
		{"number", float64(42), 42},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sw := &mockSwitcher{}
			srv := newTestServer(t, sw, nil)

			res, err := srv.handleActivate(context.Background(), callRequest(map[string]interface{}{"window-id": tt.id}))
			require.NoError(t, err)
			assert.False(t, res.IsError, resultText(t, res))
			assert.Equal(t, []model.WindowID{tt.want}, sw.activated)

			var got output.RequestResult
			require.NoError(t, yaml.Unmarshal([]byte(resultText(t, res)), &got))
			assert.True(t, got.OK)
			assert.Equal(t, "activate", got.Action)
		})
	}
}

func TestHandleActivate_InvalidID(t *testing.T) {
	for _, args := range []map[string]interface{}{
		nil,
		{"window-id": "0"},
		{"window-id": "nope"},
		{"window-id": 1.5},
		{"window-id": true},
	} {
		sw := &mockSwitcher{}
		srv := newTestServer(t, sw, nil)

		res, err := srv.handleActivate(context.Background(), callRequest(args))
		require.NoError(t, err)
		assert.True(t, res.IsError, "args %v", args)
		assert.Empty(t, sw.activated)
	}
}

func TestHandleClose_InvalidatesCache(t *testing.T) {
	d := &mockDiscovery{windows: []model.Window{{ID: 7, Title: "Editor"}}}
	sw := &mockSwitcher{}
	srv := newTestServer(t, sw, d)
	ctx := context.Background()

	_, err := srv.handleListWindows(ctx, callRequest(nil))
	require.NoError(t, err)

	res, err := srv.handleClose(ctx, callRequest(map[string]interface{}{"window-id": "7"}))
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Equal(t, []model.WindowID{7}, sw.closed)

	_, err = srv.handleListWindows(ctx, callRequest(nil))
	require.NoError(t, err)
	assert.Equal(t, 2, d.callCount(), "close should drop the cached list")
}

func TestHandleClose_Stopped(t *testing.T) {
	sw := &mockSwitcher{postErr: switcher.ErrStopped}
	srv := newTestServer(t, sw, nil)

	res, err := srv.handleClose(context.Background(), callRequest(map[string]interface{}{"window-id": "7"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "stopped")
}

func TestHandleRefresh(t *testing.T) {
	windows := []model.Window{{ID: 1, Title: "A"}, {ID: 2, Title: "B"}}
	d := &mockDiscovery{windows: windows}
	sw := &mockSwitcher{}
	srv := newTestServer(t, sw, d)

	res, err := srv.handleRefresh(context.Background(), callRequest(nil))
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Contains(t, resultText(t, res), "windows: 2")
	assert.Equal(t, [][]model.Window{windows}, sw.lists)
}

func TestHandleRefresh_DiscoveryError(t *testing.T) {
	d := &mockDiscovery{err: errors.New("display closed")}
	sw := &mockSwitcher{}
	srv := newTestServer(t, sw, d)

	res, err := srv.handleRefresh(context.Background(), callRequest(nil))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Empty(t, sw.lists)
}

func TestServe_UnsupportedTransport(t *testing.T) {
	srv := newTestServer(t, &mockSwitcher{}, nil)
	err := srv.Serve(context.Background(), Config{Transport: "carrier-pigeon"})
	assert.ErrorContains(t, err, "unsupported transport")
}
