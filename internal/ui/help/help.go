// Package help contains the help overlay component.
package help

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/perchtree/perch/internal/keys"
	"github.com/perchtree/perch/internal/ui/markdown"
	"github.com/perchtree/perch/internal/ui/overlay"
	"github.com/perchtree/perch/internal/ui/styles"
)

// aboutText introduces the pinned band; shown at the top of the card.
const aboutText = "Scroll the tree and the ancestors of the first visible entry stay " +
	"**pinned** at the top. Click a pinned entry to jump back to it."

const aboutWidth = 56

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.OverlayTitleColor).
			PaddingLeft(2)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.OverlayTitleColor).
			MarginTop(1)

	keyStyle = lipgloss.NewStyle().
			Foreground(styles.TextSecondaryColor).
			Width(11)

	descStyle = lipgloss.NewStyle().
			Foreground(styles.TextPrimaryColor)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(styles.OverlayBorderColor)

	contentStyle = lipgloss.NewStyle().
			Padding(0, 2)

	footerStyle = lipgloss.NewStyle().
			Foreground(styles.TextMutedColor).
			MarginTop(1)
)

// Model holds the help view state.
type Model struct {
	keys   keys.KeyMap
	about  string
	width  int
	height int
}

// New creates a new help view.
func New() Model {
	return Model{
		keys:  keys.DefaultKeyMap(),
		about: renderAbout(),
	}
}

// renderAbout renders the intro blurb through the markdown renderer. A
// failing renderer just drops the blurb.
func renderAbout() string {
	r, err := markdown.New(aboutWidth)
	if err != nil {
		return ""
	}
	out, err := r.Render(aboutText)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

// SetSize updates dimensions.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}

// View renders the help box standalone, no background.
func (m Model) View() string {
	return m.Overlay("")
}

// Overlay renders the help box on top of a background view.
func (m Model) Overlay(background string) string {
	helpBox := m.renderContent()

	if background == "" {
		return lipgloss.Place(
			m.width, m.height,
			lipgloss.Center, lipgloss.Center,
			helpBox,
		)
	}

	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Center,
	}, helpBox, background)
}

// renderContent builds the help box content.
func (m Model) renderContent() string {
	columnStyle := lipgloss.NewStyle().MarginRight(4)

	var navCol strings.Builder
	navCol.WriteString(sectionStyle.Render("Navigation"))
	navCol.WriteString("\n")
	navCol.WriteString(m.renderBinding(m.keys.Up))
	navCol.WriteString(m.renderBinding(m.keys.Down))
	navCol.WriteString(m.renderBinding(m.keys.PageUp))
	navCol.WriteString(m.renderBinding(m.keys.PageDown))
	navCol.WriteString(m.renderBinding(m.keys.Top))
	navCol.WriteString(m.renderBinding(m.keys.Bottom))

	var treeCol strings.Builder
	treeCol.WriteString(sectionStyle.Render("Tree"))
	treeCol.WriteString("\n")
	treeCol.WriteString(m.renderBinding(m.keys.Expand))
	treeCol.WriteString(m.renderBinding(m.keys.Collapse))
	treeCol.WriteString(m.renderBinding(m.keys.Toggle))
	treeCol.WriteString(m.renderBinding(m.keys.Reload))
	treeCol.WriteString(m.renderBinding(m.keys.Hidden))

	var generalCol strings.Builder
	generalCol.WriteString(sectionStyle.Render("General"))
	generalCol.WriteString("\n")
	generalCol.WriteString(m.renderBinding(m.keys.Help))
	generalCol.WriteString(m.renderBinding(m.keys.Quit))
	generalCol.WriteString(renderKeyDesc("click", "jump to pinned dir"))
	generalCol.WriteString(renderKeyDesc("wheel", "scroll"))

	columns := lipgloss.JoinHorizontal(
		lipgloss.Top,
		columnStyle.Render(navCol.String()),
		columnStyle.Render(treeCol.String()),
		generalCol.String(),
	)

	sections := []string{titleStyle.Render("Perch Help")}
	if m.about != "" {
		sections = append(sections, m.about)
	}
	sections = append(sections, columns,
		footerStyle.Render("press ? or esc to close"))

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	return boxStyle.Render(contentStyle.Render(content))
}

// renderBinding formats one keybinding row from its help text.
func (m Model) renderBinding(b key.Binding) string {
	h := b.Help()
	return renderKeyDesc(h.Key, h.Desc)
}

func renderKeyDesc(k, desc string) string {
	return keyStyle.Render(k) + descStyle.Render(desc) + "\n"
}
