package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/electripy/electripy/pkg/app"
	"github.com/electripy/electripy/pkg/core"
)

func init() {
	RegisterCommand(&Command{
		Name:  "tree",
		Short: "Print the element tree of a layout",
		Long: `Build the layout and print the application header and element tree.

The layout defaults to the "layout" entry of electripy.yaml, or layout.yaml
in the project root.

Flags:
  --json       Print the rendered tree (styles, attributes, callbacks) as JSON
  --color      Force colored output
  --no-color   Disable colored output`,
		Usage: "electripy tree [layout] [--json] [--color|--no-color]",
		Run:   runTree,
	})
}

func runTree(args []string) error {
	var (
		layoutPath string
		asJSON     bool
		color      = isTerminal(stdout)
	)
	for _, arg := range args {
		switch arg {
		case "--json":
			asJSON = true
		case "--color":
			color = true
		case "--no-color":
			color = false
		default:
			if strings.HasPrefix(arg, "-") {
				return fmt.Errorf("unknown flag: %s", arg)
			}
			if layoutPath != "" {
				return fmt.Errorf("unexpected argument: %s", arg)
			}
			layoutPath = arg
		}
	}

	p, err := openProject(overrides{layout: layoutPath})
	if err != nil {
		return err
	}
	defer p.Close()

	if asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(core.Render(p.app.Root()))
	}
	if !color {
		_, err := io.WriteString(stdout, p.app.String())
		return err
	}
	return renderTree(stdout, p.app)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// treeStyles colors the parts of a tree line.
type treeStyles struct {
	header lipgloss.Style
	marker lipgloss.Style
	name   lipgloss.Style
	attr   lipgloss.Style
	id     lipgloss.Style
}

func newTreeStyles(w io.Writer) treeStyles {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(termenv.ANSI256)
	return treeStyles{
		header: r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		marker: r.NewStyle().Faint(true),
		name:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		attr:   r.NewStyle().Foreground(lipgloss.Color("14")),
		id:     r.NewStyle().Foreground(lipgloss.Color("11")),
	}
}

// renderTree writes the colored form of a.String.
func renderTree(w io.Writer, a *app.App) error {
	s := newTreeStyles(w)
	header, _, _ := strings.Cut(a.String(), "\n")
	var sb strings.Builder
	sb.WriteString(s.header.Render(header))
	sb.WriteByte('\n')
	for depth, e := range core.Walk(a.Root()) {
		n := e.Base()
		sb.WriteString(s.marker.Render("|" + strings.Repeat(core.IndentMarker, depth)))
		sb.WriteString(" <")
		sb.WriteString(s.name.Render(n.Name()))
		sb.WriteString(" ")
		sb.WriteString(s.attr.Render("class=" + n.Class()))
		sb.WriteString(" ")
		sb.WriteString(s.id.Render("id=" + n.ID()))
		sb.WriteString(">\n")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
