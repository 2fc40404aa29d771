package cmd

import (
	"context"
	"fmt"

	"github.com/mj1618/switcher/internal/model"
	"github.com/mj1618/switcher/internal/output"
	"github.com/mj1618/switcher/internal/platform"
	"github.com/spf13/cobra"
)

var activateCmd = &cobra.Command{
	Use:   "activate",
	Short: "Raise and focus a window",
	Long: `Ask the window manager to raise and focus a window, as pressing its switcher
button would. The window ID is the one shown by 'switcher list', in decimal or
0x-prefixed hex.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRequest(cmd, "activate", platform.Activator.Activate)
	},
}

var closeCmd = &cobra.Command{
	Use:   "close",
	Short: "Ask the window manager to close a window",
	Long:  "Send a close request for a window. The application may still refuse or prompt the user.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRequest(cmd, "close", platform.Activator.RequestClose)
	},
}

func init() {
	rootCmd.AddCommand(activateCmd)
	activateCmd.Flags().String("window-id", "", "Window ID (required)")
	rootCmd.AddCommand(closeCmd)
	closeCmd.Flags().String("window-id", "", "Window ID (required)")
}

type requestFunc func(a platform.Activator, ctx context.Context, w model.WindowID) error

func runRequest(cmd *cobra.Command, action string, fn requestFunc) error {
	id, err := windowIDFlag(cmd)
	if err != nil {
		return err
	}

	provider, err := newProvider()
	if err != nil {
		return err
	}
	defer closeProvider(provider)

	if provider.Activator == nil {
		return fmt.Errorf("window activation not available on this platform")
	}
	if err := fn(provider.Activator, cmd.Context(), id); err != nil {
		return fmt.Errorf("%s window %d: %w", action, id, err)
	}

	return output.Print(output.RequestResult{
		OK:     true,
		Action: action,
		Window: id,
	})
}
