package cmd

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/mj1618/switcher/internal/model"
	"github.com/mj1618/switcher/internal/render"
	"github.com/mj1618/switcher/internal/replay"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplayCommand_Args(t *testing.T) {
	assert.Error(t, replayCmd.Args(replayCmd, nil))
	assert.NoError(t, replayCmd.Args(replayCmd, []string{"script.yaml"}))
	assert.NotNil(t, replayCmd.Flags().Lookup("png"))
}

func TestWritePreview(t *testing.T) {
	path := filepath.Join(t.TempDir(), "strip.png")
	res := &replay.Result{Final: []model.ButtonState{
		{Window: 1, Title: "Terminal"},
		{Window: 2, Title: "Browser"},
		{Window: 3, Title: "Editor"},
	}}

	require.NoError(t, writePreview(path, res, 2))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	opts := render.DefaultOptions()
	opts.Columns = 2
	_, canvas := render.Layout(3, opts)
	assert.Equal(t, canvas, img.Bounds(), "three buttons in two columns wrap to a second row")
}
