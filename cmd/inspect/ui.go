package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/jwebster45206/schematic-engine/internal/report"
	"github.com/jwebster45206/schematic-engine/internal/storage"
)

const PlaceHolderText = "/help for commands"

// InspectUI is the BubbleTea model of the build viewer.
// https://github.com/charmbracelet/bubbletea
type InspectUI struct {
	files    storage.Schematics
	opts     report.Options
	report   *report.Report
	current  string
	treeView viewport.Model
	metaView viewport.Model
	textarea textarea.Model
	ready    bool
	width    int
	height   int
	err      error
	status   string

	// Schematic selection state
	showSelectModal bool
	schematics      []string
	selected        int
	loadingList     bool

	// Quit confirmation state
	showQuitModal bool
}

type schematicsLoadedMsg struct {
	names []string
	err   error
}

type builtMsg struct {
	name   string
	report *report.Report
	err    error
}

var (
	treePanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(1).
			PaddingLeft(3).
			PaddingRight(0)

	metaPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(0).
			PaddingLeft(0).
			PaddingRight(2)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Align(lipgloss.Center)

	modalItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	modalSelectedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("205")).
				Bold(true)
)

// NewInspectUI opens file directly, or shows the schematic picker when
// file is empty.
func NewInspectUI(files storage.Schematics, opts report.Options, file string) InspectUI {
	ta := textarea.New()
	ta.Placeholder = PlaceHolderText
	ta.Focus()
	ta.Prompt = promptStyle.Render(":: ")
	ta.CharLimit = 200
	ta.SetWidth(50)
	ta.SetHeight(1)
	ta.ShowLineNumbers = false

	treeVp := viewport.New(50, 20)
	treeVp.MouseWheelEnabled = true

	metaVp := viewport.New(20, 20)

	return InspectUI{
		files:           files,
		opts:            opts,
		current:         file,
		textarea:        ta,
		treeView:        treeVp,
		metaView:        metaVp,
		showSelectModal: file == "",
		loadingList:     file == "",
	}
}

func (m InspectUI) Init() tea.Cmd {
	if m.showSelectModal {
		return m.loadSchematics()
	}
	return tea.Batch(m.build(m.current, m.opts.Seed), textarea.Blink)
}

func (m InspectUI) loadSchematics() tea.Cmd {
	return func() tea.Msg {
		names, err := m.files.ListSchematics(context.Background())
		return schematicsLoadedMsg{names, err}
	}
}

func (m InspectUI) build(name string, seed uint64) tea.Cmd {
	opts := m.opts
	opts.Seed = seed
	if opts.Instance == "" {
		opts.Instance = report.InstanceName(name)
	}
	return func() tea.Msg {
		ctx := context.Background()
		data, err := report.Load(ctx, m.files, name)
		if err != nil {
			return builtMsg{name: name, err: err}
		}
		r, err := report.Build(ctx, data, opts)
		return builtMsg{name: name, report: r, err: err}
	}
}

func (m InspectUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showSelectModal {
		return m.updateSelectModal(msg)
	}
	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}

	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		mvCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.MouseMsg:
		m.treeView, vpCmd = m.treeView.Update(msg)
		m.metaView, mvCmd = m.metaView.Update(msg)
		return m, tea.Batch(vpCmd, mvCmd)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.ready = true
		m.writeContent()

	case builtMsg:
		m.current = msg.name
		m.err = msg.err
		if msg.report != nil {
			m.report = msg.report
			m.status = fmt.Sprintf("built %s with seed %d", msg.name, msg.report.Seed)
		}
		m.writeContent()
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil
		case tea.KeyEnter:
			input := strings.TrimSpace(m.textarea.Value())
			m.textarea.Reset()
			if input == "" {
				return m, nil
			}
			return m.handleCommand(input)
		}
	}

	m.textarea, tiCmd = m.textarea.Update(msg)
	m.treeView, vpCmd = m.treeView.Update(msg)
	m.metaView, mvCmd = m.metaView.Update(msg)

	return m, tea.Batch(tiCmd, vpCmd, mvCmd)
}

func (m *InspectUI) resize() {
	treeWidth := int(float64(m.width)*0.70) - 4
	metaWidth := m.width - treeWidth - 6

	m.treeView.Width = treeWidth - 2
	m.treeView.Height = m.height - 7
	m.metaView.Width = metaWidth - 2
	m.metaView.Height = m.height - 4
	m.textarea.SetWidth(treeWidth - 4)
}

// writeContent re-renders the report for the current viewport widths.
func (m *InspectUI) writeContent() {
	width := max(m.treeView.Width-6, 20)

	var tree strings.Builder
	if m.err != nil {
		tree.WriteString(errorStyle.Render(wordwrap.String("Error: "+m.err.Error(), width)) + "\n\n")
	}
	if m.report != nil {
		tree.WriteString(m.report.TreeView())
		if d := m.report.Diagnostics(width); d != "" {
			tree.WriteString("\n" + d)
		}
	}
	m.treeView.SetContent(tree.String())
	m.metaView.SetContent(m.writeMetadata())
}

func (m InspectUI) writeMetadata() string {
	var content strings.Builder
	if m.report != nil {
		content.WriteString(m.report.Summary())
	} else {
		content.WriteString(report.TitleStyle.Render("SCHEMATIC") + "\n\nNothing built\n")
	}
	content.WriteString("\n")
	if m.status != "" {
		content.WriteString(statusStyle.Render(wordwrap.String(m.status, max(m.metaView.Width-2, 10))) + "\n\n")
	}
	content.WriteString("Commands:\n")
	content.WriteString("• Ctrl+C: Quit\n")
	content.WriteString("• /reroll: New seed\n")
	content.WriteString("• /seed N: Rebuild\n")
	content.WriteString("• /copy: Copy report\n")
	content.WriteString("• /open: Pick file\n")
	return content.String()
}

func (m InspectUI) handleCommand(input string) (tea.Model, tea.Cmd) {
	fields := strings.Fields(strings.ToLower(input))

	switch fields[0] {
	case "/reroll":
		return m, m.build(m.current, 0)
	case "/seed":
		if len(fields) != 2 {
			m.status = "usage: /seed N"
			break
		}
		seed, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil || seed == 0 {
			m.status = "seed must be a positive integer"
			break
		}
		return m, m.build(m.current, seed)
	case "/copy":
		if m.report == nil {
			m.status = "nothing to copy"
			break
		}
		if err := clipboard.WriteAll(m.report.Render(m.treeView.Width)); err != nil {
			m.status = "copy failed: " + err.Error()
		} else {
			m.status = "report copied to clipboard"
		}
	case "/open":
		m.showSelectModal = true
		m.loadingList = true
		return m, m.loadSchematics()
	default:
		m.status = "unknown command " + fields[0]
	}

	m.metaView.SetContent(m.writeMetadata())
	return m, nil
}

func (m InspectUI) updateSelectModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case schematicsLoadedMsg:
		m.loadingList = false
		m.err = msg.err
		m.schematics = msg.names
		m.selected = 0

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyEsc {
			return m, tea.Quit
		}
		if m.loadingList || m.err != nil {
			return m, nil
		}

		switch msg.Type {
		case tea.KeyUp:
			if m.selected > 0 {
				m.selected--
			}
		case tea.KeyDown:
			if m.selected < len(m.schematics)-1 {
				m.selected++
			}
		case tea.KeyEnter:
			if len(m.schematics) > 0 {
				m.showSelectModal = false
				m.opts.Instance = ""
				m.resize()
				m.ready = true
				return m, tea.Batch(m.build(m.schematics[m.selected], m.opts.Seed), textarea.Blink)
			}
		}
	}

	return m, nil
}

func (m InspectUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc, tea.KeyEnter:
			return m, tea.Quit
		default:
			switch msg.String() {
			case "y", "Y":
				return m, tea.Quit
			case "n", "N":
				m.showQuitModal = false
				m.textarea.Focus()
				return m, textarea.Blink
			}
		}
	}

	return m, nil
}

func (m InspectUI) renderQuitModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Quit?"))
	content.WriteString("\n\n")
	content.WriteString("Close the schematic viewer?")
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Y to quit, N to continue, or Ctrl+C to force quit"))

	modal := modalStyle.Width(50).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m InspectUI) renderSelectModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder

	switch {
	case m.loadingList:
		content.WriteString(modalTitleStyle.Render("Loading Schematics..."))
	case m.err != nil:
		content.WriteString(modalTitleStyle.Render("Error"))
		content.WriteString("\n\n")
		content.WriteString(errorStyle.Render(fmt.Sprintf("Failed to list schematics: %v", m.err)))
		content.WriteString("\n\n")
		content.WriteString("Press Ctrl+C to exit")
	case len(m.schematics) == 0:
		content.WriteString(modalTitleStyle.Render("No Schematics"))
		content.WriteString("\n\n")
		content.WriteString("The data directory has no schematic files.\n\nPress Ctrl+C to exit")
	default:
		content.WriteString(modalTitleStyle.Render("Select a Schematic"))
		content.WriteString("\n\n")
		for i, name := range m.schematics {
			if i == m.selected {
				content.WriteString(modalSelectedItemStyle.Render(fmt.Sprintf("▶ %s", name)))
			} else {
				content.WriteString(modalItemStyle.Render(fmt.Sprintf("  %s", name)))
			}
			content.WriteString("\n")
		}
		content.WriteString("\n")
		content.WriteString(promptStyle.Render("Use ↑/↓ to navigate, Enter to select, Ctrl+C to exit"))
	}

	modal := modalStyle.Width(60).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m InspectUI) View() string {
	if m.showSelectModal {
		return m.renderSelectModal()
	}
	if m.showQuitModal {
		return m.renderQuitModal()
	}
	if !m.ready {
		return "\n  Initializing..."
	}

	treeWidth := int(float64(m.width)*0.70) - 4
	metaWidth := m.width - treeWidth - 6

	treePanel := treePanelStyle.Width(treeWidth).Height(m.height - 3).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.treeView.View(),
			"",
			report.SeparatorStyle.Render(strings.Repeat("─", max(treeWidth-4, 1))),
			m.textarea.View(),
		),
	)

	metaPanel := metaPanelStyle.Width(metaWidth).Height(m.height - 2).Render(
		m.metaView.View(),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, treePanel, metaPanel)
}
