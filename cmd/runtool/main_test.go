package main

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/sandrunner/internal/config"
	"github.com/Faultbox/sandrunner/internal/engine/input"
	"github.com/Faultbox/sandrunner/internal/game/replay"
	"github.com/Faultbox/sandrunner/internal/storage"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func savedPlaythrough(t *testing.T) (string, *replay.Playthrough) {
	t.Helper()
	p := replay.New(replay.SettingsFrom(config.Default()))
	p.History = input.Idle(100)
	path := filepath.Join(t.TempDir(), p.FileName())
	require.NoError(t, p.Save(path))
	return path, p
}

func TestReplayPrintsOutcomes(t *testing.T) {
	path, p := savedPlaythrough(t)
	id, err := replay.RegressionID(p)
	require.NoError(t, err)

	out, err := execute(t, "replay", path)
	require.NoError(t, err)

	assert.Contains(t, out, p.ID.String())
	assert.Contains(t, out, "DEAD")
	assert.Contains(t, out, "tick    95  lethal")
	assert.NotContains(t, out, "tick    96", "a continuing contact is not listed again")
	assert.Contains(t, out, "Ticks: 100  Landings: 0  Lethal: 1")
	assert.Contains(t, out, "Regression: "+id)

	quiet, err := execute(t, "replay", "-q", path)
	require.NoError(t, err)
	assert.NotContains(t, quiet, "DEAD")
}

func TestVerify(t *testing.T) {
	path, p := savedPlaythrough(t)
	id, err := replay.RegressionID(p)
	require.NoError(t, err)

	out, err := execute(t, "verify", path, id)
	require.NoError(t, err)
	assert.Contains(t, out, "OK "+id)

	_, err = execute(t, "verify", path, strings.Repeat("0", 64))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "regression mismatch")
}

func TestReplayMissingFile(t *testing.T) {
	_, err := execute(t, "replay", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestRuns(t *testing.T) {
	db := filepath.Join(t.TempDir(), "runs.db")

	out, err := execute(t, "runs", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "No runs recorded yet.")

	store, err := storage.Open(db)
	require.NoError(t, err)
	require.NoError(t, store.SaveRun(storage.Run{
		ID: "6f1c2c48-0000-4000-8000-000000000001", Motion: "jump",
		Ticks: 95, Lethal: 1, Halted: true, Regression: "abcdef0123456789",
	}))
	require.NoError(t, store.Close())

	out, err = execute(t, "runs", "--db", db, "-n", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "6f1c2c48-0000-4000-8000-000000000001")
	assert.Contains(t, out, "abcdef012345 (halted)")
}

func TestAtlas(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 90, 90))
	for y := 0; y < 90; y++ {
		for x := 0; x < 90; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x / 30 * 100), A: 0xFF})
		}
	}
	path := filepath.Join(t.TempDir(), "sheet.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	out, err := execute(t, "atlas", path, "--rows", "3", "--columns", "3", "--frames", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "90x90, 7 frames of 30x30")
	assert.Contains(t, out, "   6  x=0     y=60")
	assert.Contains(t, out, "#c80000ff")

	_, err = execute(t, "atlas", path, "--rows", "2", "--columns", "2", "--frames", "7")
	assert.Error(t, err)
}
