package cmd

import (
	"fmt"

	"github.com/mj1618/switcher/internal/model"
	"github.com/mj1618/switcher/internal/output"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List switchable windows",
	Long:  "List the windows that would get a switcher button, in window-manager order, with their ID, title, application and PID.",
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().String("app", "", "Filter windows by application class")
}

func runList(cmd *cobra.Command, args []string) error {
	provider, err := newProvider()
	if err != nil {
		return err
	}
	defer closeProvider(provider)

	if provider.Discovery == nil {
		return fmt.Errorf("window discovery not available on this platform")
	}

	windows, err := provider.Discovery.ListWindows(cmd.Context())
	if err != nil {
		return err
	}

	app, _ := cmd.Flags().GetString("app")
	windows = filterByApp(windows, app)
	if windows == nil {
		windows = []model.Window{}
	}
	return output.Print(windows)
}

// filterByApp keeps windows whose application matches app. An empty app
// keeps everything.
func filterByApp(windows []model.Window, app string) []model.Window {
	if app == "" {
		return windows
	}
	var out []model.Window
	for _, w := range windows {
		if w.App == app {
			out = append(out, w)
		}
	}
	return out
}
