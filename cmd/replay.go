package cmd

import (
	"fmt"
	"os"

	"github.com/mj1618/switcher/internal/logging"
	"github.com/mj1618/switcher/internal/output"
	"github.com/mj1618/switcher/internal/render"
	"github.com/mj1618/switcher/internal/replay"
	"github.com/spf13/cobra"
)

var replayCmd = &cobra.Command{
	Use:   "replay FILE",
	Short: "Play a scripted window event sequence through the switcher",
	Long: `Feed a YAML script of timed window-list, title, activate, close and viewport
events through the switcher on a virtual clock, and print every button set it
publishes. No window system is needed.

Example script:

  steps:
    - at: 0ms
      windows: [{id: 1, title: Terminal}, {id: 2, title: Browser}]
    - at: 100ms
      title: {id: 2, title: "Browser - news"}
    - at: 1s
      close: 2`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	rootCmd.AddCommand(replayCmd)
	replayCmd.Flags().Duration("delay", 0, "Debounce delay for new windows (default from SWITCHER_UPDATE_DELAY)")
	replayCmd.Flags().String("png", "", "Write a preview of the final buttons to this PNG file")
	replayCmd.Flags().Int("columns", 4, "Buttons per row in the PNG preview")
}

func runReplay(cmd *cobra.Command, args []string) error {
	delay, _ := cmd.Flags().GetDuration("delay")
	pngPath, _ := cmd.Flags().GetString("png")
	columns, _ := cmd.Flags().GetInt("columns")
	if delay == 0 {
		delay = appConfig.UpdateDelay
	}

	script, err := replay.Load(args[0])
	if err != nil {
		return err
	}

	res, err := replay.Run(cmd.Context(), script, replay.Options{
		Delay:  delay,
		Logger: logging.Logger,
	})
	if err != nil {
		return err
	}

	if pngPath != "" {
		if err := writePreview(pngPath, res, columns); err != nil {
			return err
		}
	}
	return output.Print(res)
}

func writePreview(path string, res *replay.Result, columns int) error {
	opts := render.DefaultOptions()
	opts.Columns = columns
	img := render.Strip(res.Final, opts)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create preview: %w", err)
	}
	if err := render.WritePNG(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
