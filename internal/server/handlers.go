package server

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mj1618/switcher/internal/model"
	"github.com/mj1618/switcher/internal/output"
	"github.com/mj1618/switcher/internal/platform"
	"gopkg.in/yaml.v3"
)

// refreshResult is the output of the refresh tool.
type refreshResult struct {
	OK      bool `yaml:"ok"      json:"ok"`
	Windows int  `yaml:"windows" json:"windows"`
}

// toText serializes v to YAML for an MCP response.
func toText(v interface{}) string {
	b, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return string(b)
}

func (s *Server) handleListButtons(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	st, err := s.sw.State(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(toText(output.ButtonsResult{
		TS:      s.clock.Now().UnixMilli(),
		Pending: st.Pending,
		Windows: st.PreviousCount,
		Buttons: st.Buttons,
	})), nil
}

func (s *Server) handleListWindows(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.cache == nil {
		return mcp.NewToolResultError("window discovery not available on this platform"), nil
	}
	windows, err := s.cache.ListWindows(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if windows == nil {
		windows = []model.Window{}
	}
	return mcp.NewToolResultText(toText(windows)), nil
}

func (s *Server) handleActivate(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.windowRequest(request, "activate", s.sw.Activate)
}

func (s *Server) handleClose(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.windowRequest(request, "close", s.sw.CloseWindow)
}

// windowRequest posts a fire-and-forget request for the window named by the
// window-id argument and invalidates the window cache.
func (s *Server) windowRequest(request mcp.CallToolRequest, action string, fn func(model.WindowID) error) (*mcp.CallToolResult, error) {
	result := output.RequestResult{Action: action}

	id, err := windowIDParam(request.GetArguments(), "window-id")
	if err != nil {
		result.Error = err.Error()
		return mcp.NewToolResultError(toText(result)), nil
	}
	result.Window = id

	if err := fn(id); err != nil {
		result.Error = err.Error()
		return mcp.NewToolResultError(toText(result)), nil
	}
	result.OK = true

	if s.cache != nil {
		s.cache.Invalidate()
	}
	s.logger.Debug("window request posted", "action", action, "window", id)
	return mcp.NewToolResultText(toText(result)), nil
}

func (s *Server) handleRefresh(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.cache == nil {
		return mcp.NewToolResultError("window discovery not available on this platform"), nil
	}
	s.cache.Invalidate()
	windows, err := s.cache.ListWindows(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.sw.WindowListChanged(windows); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(toText(refreshResult{OK: true, Windows: len(windows)})), nil
}

// windowIDParam reads a window ID given as a number or as a decimal or hex
// string.
func windowIDParam(params map[string]interface{}, key string) (model.WindowID, error) {
	v, ok := params[key]
	if !ok {
		return 0, fmt.Errorf("%s is required", key)
	}
	switch n := v.(type) {
	case string:
		return platform.ParseWindowID(n)
	case float64:
		if n != float64(uint32(n)) {
			return 0, fmt.Errorf("invalid %s: %v", key, n)
		}
		return platform.ParseWindowID(strconv.FormatUint(uint64(n), 10))
	case int:
		return platform.ParseWindowID(strconv.Itoa(n))
	default:
		return 0, fmt.Errorf("invalid %s: %v", key, v)
	}
}
