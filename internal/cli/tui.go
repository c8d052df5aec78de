package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/mlehnert/placard/pkg/layout"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// previewWidth/previewHeight are the character dimensions of the canvas
// preview panel. Canvas coordinates are scaled down to fit.
const (
	previewWidth  = 56
	previewHeight = 16
)

// TraceModel is the bubbletea model for stepping through a placement trace.
// Each step corresponds to one box in placement order; the preview shows the
// canvas state after the selected step.
type TraceModel struct {
	Layout layout.Layout
	Cursor int
}

// NewTraceModel creates a trace model positioned at the last step.
func NewTraceModel(l layout.Layout) TraceModel {
	cursor := len(l.Boxes) - 1
	if cursor < 0 {
		cursor = 0
	}
	return TraceModel{Layout: l, Cursor: cursor}
}

func (m TraceModel) Init() tea.Cmd {
	return nil
}

func (m TraceModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc", "enter":
			return m, tea.Quit
		case "left", "h", "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "right", "l", "down", "j":
			if m.Cursor < len(m.Layout.Boxes)-1 {
				m.Cursor++
			}
		case "home", "g":
			m.Cursor = 0
		case "end", "G":
			m.Cursor = len(m.Layout.Boxes) - 1
		}
	}
	return m, nil
}

func (m TraceModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Placement Trace"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("←/→ step  g/G first/last  q quit"))
	b.WriteString("\n\n")

	if len(m.Layout.Boxes) == 0 {
		b.WriteString(listDimStyle.Render("  (empty layout)"))
		return b.String()
	}

	b.WriteString(m.renderPreview())
	b.WriteString("\n")
	b.WriteString(m.renderSteps())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Layout.Boxes))))

	return b.String()
}

// renderPreview draws the canvas as a character grid with every box placed up
// to and including the selected step.
func (m TraceModel) renderPreview() string {
	w, h := m.Layout.Width, m.Layout.Height
	if w <= 0 || h <= 0 {
		w, h = 1, 1
	}

	grid := make([][]rune, previewHeight)
	for y := range grid {
		grid[y] = make([]rune, previewWidth)
		for x := range grid[y] {
			grid[y][x] = ' '
		}
	}

	mark := func(fx, fy float64, r rune) {
		x := int(fx / w * float64(previewWidth))
		y := int(fy / h * float64(previewHeight))
		if x < 0 || x >= previewWidth || y < 0 || y >= previewHeight {
			return
		}
		grid[y][x] = r
	}

	for i := 0; i <= m.Cursor; i++ {
		box := m.Layout.Boxes[i]
		r := rune('a' + i%26)
		if i == m.Cursor {
			r = '█'
		}
		for dx := box.X; dx <= box.X+box.W; dx += w / float64(previewWidth) {
			mark(dx, box.Y, r)
			mark(dx, box.Y+box.H, r)
		}
		for dy := box.Y; dy <= box.Y+box.H; dy += h / float64(previewHeight) {
			mark(box.X, dy, r)
			mark(box.X+box.W, dy, r)
		}
	}

	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorDim)

	lines := make([]string, previewHeight)
	for y, row := range grid {
		lines[y] = string(row)
	}
	return border.Render(strings.Join(lines, "\n"))
}

// renderSteps draws the step table around the cursor.
func (m TraceModel) renderSteps() string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	// Window of steps centered on the cursor.
	const window = 7
	start := m.Cursor - window/2
	if start < 0 {
		start = 0
	}
	end := start + window
	if end > len(m.Layout.Boxes) {
		end = len(m.Layout.Boxes)
		if end-window > 0 {
			start = end - window
		} else {
			start = 0
		}
	}

	rows := [][]string{}
	for i := start; i < end; i++ {
		box := m.Layout.Boxes[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		position := fmt.Sprintf("(%.0f, %.0f)", box.X, box.Y)
		moved := ""
		if box.Displaced {
			moved = fmt.Sprintf("from (%.0f, %.0f)", box.PreferredX, box.PreferredY)
		}

		against := "—"
		if len(box.Against) > 0 {
			labels := make([]string, 0, len(box.Against))
			for _, id := range box.Against {
				labels = append(labels, m.labelFor(id))
			}
			against = strings.Join(labels, ", ")
		}

		rows = append(rows, []string{cursor, fmt.Sprintf("%d", i+1), box.Label, position, moved, against})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "#", "Box", "Position", "Displaced", "Pushed by").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			actualIdx := start + row
			if actualIdx == m.Cursor {
				return listSelectedStyle
			}
			if actualIdx < len(m.Layout.Boxes) && m.Layout.Boxes[actualIdx].Displaced {
				return lipgloss.NewStyle().Foreground(colorYellow)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	return t.Render()
}

// labelFor resolves a box ID to its label, falling back to the ID.
func (m TraceModel) labelFor(id string) string {
	for _, box := range m.Layout.Boxes {
		if box.ID == id {
			if box.Label != "" {
				return box.Label
			}
			return id
		}
	}
	return id
}
