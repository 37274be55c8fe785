// Package render formats a partition tree for terminals, scripts and user
// templates.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jakoblorz/go-aptprofile/internal/partition"
)

// TextOptions controls text rendering.
type TextOptions struct {
	// Plain disables all styling.
	Plain bool

	// Highlight marks a module, e.g. the one just moved.
	Highlight string
}

type palette struct {
	title, profile, def, enabled, muted, highlight lipgloss.Style
	plain                                          bool
}

func newPalette(plain bool) palette {
	return palette{
		title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4")),
		profile:   lipgloss.NewStyle().Bold(true),
		def:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#888888")),
		enabled:   lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")),
		muted:     lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")).Italic(true),
		highlight: lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4")).Bold(true),
		plain:     plain,
	}
}

func (p palette) paint(style lipgloss.Style, s string) string {
	if p.plain {
		return s
	}
	return style.Render(s)
}

// Text writes the tree as an indented list, the default profile first.
func Text(w io.Writer, tree *partition.Tree, opts TextOptions) error {
	p := newPalette(opts.Plain)

	var b strings.Builder
	b.WriteString(p.paint(p.title, "Processor profiles"))
	b.WriteString("\n\n")

	for _, node := range tree.Nodes {
		header := p.paint(p.profile, node.Name)
		if node.Default {
			header = p.paint(p.def, node.Name) + p.paint(p.muted, " (default)")
		}
		status := "disabled"
		if node.Enabled {
			status = p.paint(p.enabled, "enabled")
		}
		fmt.Fprintf(&b, "%s [%s] %s\n", header, status, plural(len(node.Modules), "module"))

		if len(node.Modules) == 0 {
			fmt.Fprintf(&b, "└─ %s\n", p.paint(p.muted, "(no modules)"))
		}
		for i, module := range node.Modules {
			prefix := "├─"
			if i == len(node.Modules)-1 {
				prefix = "└─"
			}
			if module == opts.Highlight {
				module = p.paint(p.highlight, module+" ←")
			}
			fmt.Fprintf(&b, "%s %s\n", prefix, module)
		}
		b.WriteString("\n")
	}

	b.WriteString("Summary:\n")
	fmt.Fprintf(&b, "- %s\n", plural(len(tree.Nodes)-1, "explicit profile"))
	fmt.Fprintf(&b, "- %s\n", plural(tree.ModuleCount(), "module"))

	_, err := io.WriteString(w, b.String())
	return err
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
