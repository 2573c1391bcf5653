package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cbc-technology/vxml/xml"
)

type BrowseCmd struct {
	ParserOptions
}

var browseCmd BrowseCmd

// Run opens an interactive, scrollable view of the document tree.
func (b *BrowseCmd) Run(args []string) error {
	set := flag.NewFlagSet("browse", flag.ContinueOnError)
	if err := set.Parse(args); err != nil {
		return err
	}

	b.Quiet = true
	doc, err := parseDocument(set.Arg(0), b.ParserOptions)
	if err != nil {
		return err
	}

	m := newBrowseModel(set.Arg(0), doc)
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

type browseStyles struct {
	Title lipgloss.Style
	Tag   lipgloss.Style
	Attr  lipgloss.Style
	Value lipgloss.Style
	Help  lipgloss.Style
}

func defaultBrowseStyles() browseStyles {
	return browseStyles{
		Title: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
		Tag:   lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		Attr:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Value: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Help:  lipgloss.NewStyle().Faint(true),
	}
}

type browseModel struct {
	file     string
	doc      *xml.Document
	viewport viewport.Model
	styles   browseStyles
	ready    bool
}

func newBrowseModel(file string, doc *xml.Document) browseModel {
	if file == "" {
		file = "stdin"
	}
	return browseModel{
		file:   file,
		doc:    doc,
		styles: defaultBrowseStyles(),
	}
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-2)
			m.viewport.SetContent(m.renderTree())
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - 2
		}
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m browseModel) View() string {
	if !m.ready {
		return "loading..."
	}
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render(m.file))
	sb.WriteString("\n")
	sb.WriteString(m.viewport.View())
	sb.WriteString("\n")
	sb.WriteString(m.styles.Help.Render("↑/↓ scroll - q quit"))
	return sb.String()
}

func (m browseModel) renderTree() string {
	var sb strings.Builder
	if m.doc.Root == nil {
		sb.WriteString("document has no root element")
		return sb.String()
	}
	m.renderNode(&sb, m.doc.Root, 0)
	return sb.String()
}

func (m browseModel) renderNode(sb *strings.Builder, node *xml.Node, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
	sb.WriteString(m.styles.Tag.Render(node.Tag))
	for _, a := range node.Attrs {
		sb.WriteString(" ")
		sb.WriteString(m.styles.Attr.Render(fmt.Sprintf("%s=%q", a.Name, a.Value)))
	}
	if node.Value != "" {
		sb.WriteString(" ")
		sb.WriteString(m.styles.Value.Render(node.Value))
	}
	sb.WriteString("\n")
	for _, c := range node.Nodes {
		m.renderNode(sb, c, depth+1)
	}
}
