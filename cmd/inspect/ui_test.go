package main

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/schematic-engine/internal/logger"
	"github.com/jwebster45206/schematic-engine/internal/report"
	"github.com/jwebster45206/schematic-engine/internal/storage"
)

const crate = `{"RootObjectId": 0, "Blocks": [
	{"Name": "Crate", "ObjectId": 1, "ParentId": 0, "BlockType": "Empty"},
	{"Name": "Medkit", "ObjectId": 2, "ParentId": 1, "BlockType": "Pickup", "Properties": {"ItemType": 14}}
]}`

func newTestUI(t *testing.T, file string) InspectUI {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "crate.json"), []byte(crate), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "vault.jsonc"), []byte(crate), 0o644))

	files := storage.NewFileStorage(dir, logger.Discard())
	return NewInspectUI(files, report.Options{Seed: 5, Log: logger.Discard()}, file)
}

func update(t *testing.T, m InspectUI, msg tea.Msg) (InspectUI, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	ui, ok := next.(InspectUI)
	require.True(t, ok)
	return ui, cmd
}

func typeCommand(t *testing.T, m InspectUI, input string) (InspectUI, tea.Cmd) {
	t.Helper()
	m.textarea.SetValue(input)
	return update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
}

func TestInspect_SelectAndBuild(t *testing.T) {
	m := newTestUI(t, "")
	require.True(t, m.showSelectModal)

	msg := m.Init()()
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m, _ = update(t, m, msg)
	assert.Equal(t, []string{"crate.json", "vault.jsonc"}, m.schematics)
	assert.Contains(t, m.View(), "Select a Schematic")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, m.selected)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.False(t, m.showSelectModal)

	built := m.build(m.schematics[m.selected], 5)().(builtMsg)
	require.NoError(t, built.err)
	m, _ = update(t, m, built)

	require.NotNil(t, m.report)
	assert.Equal(t, "vault.jsonc", m.current)
	assert.Equal(t, "vault", m.report.Owner.Name)
	assert.Contains(t, m.treeView.View(), "Crate")
	assert.Contains(t, m.metaView.View(), "Seed:     5")
}

func TestInspect_Commands(t *testing.T) {
	m := newTestUI(t, "crate.json")
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m, _ = update(t, m, m.build("crate.json", 5)())
	require.NotNil(t, m.report)

	m, cmd := typeCommand(t, m, "/seed 11")
	require.NotNil(t, cmd)
	built := cmd().(builtMsg)
	require.NoError(t, built.err)
	assert.Equal(t, uint64(11), built.report.Seed)

	m, cmd = typeCommand(t, m, "/seed zero")
	assert.Nil(t, cmd)
	assert.Equal(t, "seed must be a positive integer", m.status)

	m, _ = typeCommand(t, m, "/dance")
	assert.Equal(t, "unknown command /dance", m.status)

	m, cmd = typeCommand(t, m, "/open")
	require.NotNil(t, cmd)
	assert.True(t, m.showSelectModal)
}

func TestInspect_BuildError(t *testing.T) {
	m := newTestUI(t, "missing.json")
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m, _ = update(t, m, m.build("missing.json", 1)())

	assert.ErrorIs(t, m.err, storage.ErrNotFound)
	assert.Nil(t, m.report)
	assert.Contains(t, m.metaView.View(), "Nothing built")
}

func TestInspect_QuitModal(t *testing.T) {
	m := newTestUI(t, "crate.json")
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.True(t, m.showQuitModal)
	assert.Contains(t, m.View(), "Close the schematic viewer?")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	assert.False(t, m.showQuitModal)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
