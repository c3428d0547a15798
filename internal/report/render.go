package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/jwebster45206/schematic-engine/internal/scene"
	"github.com/jwebster45206/schematic-engine/pkg/schematic"
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	kindStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	detailStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	SeparatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// Render returns the full report wrapped to width.
func (r *Report) Render(width int) string {
	var b strings.Builder
	b.WriteString(r.Summary())
	b.WriteString("\n")
	b.WriteString(SeparatorStyle.Render(strings.Repeat("─", max(width-2, 1))) + "\n\n")
	b.WriteString(r.TreeView())
	if d := r.Diagnostics(width); d != "" {
		b.WriteString("\n")
		b.WriteString(d)
	}
	return b.String()
}

func (r *Report) Summary() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("SCHEMATIC") + "\n\n")
	fmt.Fprintf(&b, "Instance: %s\n", r.Owner.Name)
	fmt.Fprintf(&b, "Owner:    %s\n", r.Owner.ID)
	fmt.Fprintf(&b, "Seed:     %d\n", r.Seed)
	fmt.Fprintf(&b, "Built:    %d\n", r.Result.Built())
	fmt.Fprintf(&b, "Failed:   %d\n", len(r.Result.Failures))
	fmt.Fprintf(&b, "Warnings: %d\n", len(r.Warnings))
	fmt.Fprintf(&b, "Unlocks:  %d\n", r.Unlocks.Len())
	if r.Err != nil {
		b.WriteString(errorStyle.Render("Aborted") + "\n")
	}
	return b.String()
}

// TreeView lists every object under the root, indented by depth.
func (r *Report) TreeView() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("OBJECTS") + "\n\n")
	r.Tree.Walk(func(n *scene.Node, depth int) {
		b.WriteString(strings.Repeat("  ", depth))
		b.WriteString(n.Name())
		if c := n.Component(); c != nil {
			b.WriteString(" " + kindStyle.Render("["+c.Kind()+"]"))
		}
		if tpl := n.Template(); tpl != "" && tpl != n.Name() {
			b.WriteString(" " + detailStyle.Render(tpl))
		}
		b.WriteString(" " + detailStyle.Render("@ "+n.Local().Position.String()))
		b.WriteString("\n")
		for _, line := range r.details(n.Component()) {
			b.WriteString(strings.Repeat("  ", depth+2))
			b.WriteString(detailStyle.Render(line) + "\n")
		}
	})
	return b.String()
}

func (r *Report) details(c schematic.Component) []string {
	switch c := c.(type) {
	case *schematic.Pickup:
		line := fmt.Sprintf("item %s serial %s", r.Catalog.ItemName(c.Item), c.Serial)
		if _, locked := r.Unlocks.Owner(c.Serial); locked {
			line += " locked"
		}
		return []string{line}
	case *schematic.Locker:
		var lines []string
		for _, ch := range c.Chambers {
			var items []string
			for _, it := range ch.Items {
				items = append(items, fmt.Sprintf("%s x%d", it.Name, it.Count))
			}
			fill := strings.Join(items, ", ")
			if fill == "" {
				fill = "empty"
			}
			if ch.DefaultFilled {
				fill += " (default)"
			}
			lines = append(lines, fmt.Sprintf("chamber %d: %s", ch.Index, fill))
		}
		return lines
	case *schematic.Elevator:
		lines := make([]string, 0, len(c.Doors))
		for i, d := range c.Doors {
			line := fmt.Sprintf("door %d %s", i, d.Position)
			if d == c.LastArrived {
				line += " (initial)"
			}
			lines = append(lines, line)
		}
		return lines
	case *schematic.Text:
		return []string{fmt.Sprintf("%q size %s", c.Format, c.DisplaySize)}
	default:
		return nil
	}
}

// Diagnostics lists failures and warnings, empty when there are none.
func (r *Report) Diagnostics(width int) string {
	if len(r.Result.Failures) == 0 && len(r.Warnings) == 0 {
		return ""
	}
	wrap := max(width-4, 20)

	var b strings.Builder
	if len(r.Result.Failures) > 0 {
		b.WriteString(TitleStyle.Render("FAILURES") + "\n\n")
		for _, f := range r.Result.Failures {
			b.WriteString(errorStyle.Render(wordwrap.String("• "+f.Error(), wrap)) + "\n")
		}
		b.WriteString("\n")
	}
	if len(r.Warnings) > 0 {
		b.WriteString(TitleStyle.Render("WARNINGS") + "\n\n")
		for _, w := range r.Warnings {
			b.WriteString(warnStyle.Render(wordwrap.String("• "+w.String(), wrap)) + "\n")
		}
	}
	return b.String()
}
