package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gridleaf/carboncast/internal/intensity"
	"github.com/gridleaf/carboncast/internal/refdata"
)

// Default dimensions for the profile browser.
const (
	profileDefaultWidth = 80
	profileBarMaxWidth  = 40
)

// profileKeyMap defines the key bindings for the profile browser.
type profileKeyMap struct {
	Left  key.Binding
	Right key.Binding
	Best  key.Binding
	Worst key.Binding
	Quit  key.Binding
}

func defaultProfileKeyMap() profileKeyMap {
	return profileKeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "previous hour"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next hour"),
		),
		Best: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "jump to cleanest hour"),
		),
		Worst: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "jump to dirtiest hour"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ProfileModel is the Bubble Tea model for browsing an hourly intensity
// profile. The selected hour moves with the arrow keys and the view shows
// that hour's intensity against the day's cleanest hour.
type ProfileModel struct {
	profile intensity.Profile
	season  string

	selected int
	keys     profileKeyMap
	width    int
	quitting bool
}

// NewProfileModel creates a profile browser starting at the day's
// cleanest hour.
func NewProfileModel(profile intensity.Profile, season string) *ProfileModel {
	best, _ := profile.Min()
	return &ProfileModel{
		profile:  profile,
		season:   season,
		selected: best,
		keys:     defaultProfileKeyMap(),
		width:    profileDefaultWidth,
	}
}

// Selected returns the currently selected hour.
func (m *ProfileModel) Selected() int {
	return m.selected
}

// Init implements tea.Model.
func (m *ProfileModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *ProfileModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Left):
			m.selected = (m.selected + refdata.HoursPerDay - 1) % refdata.HoursPerDay
			return m, nil

		case key.Matches(msg, m.keys.Right):
			m.selected = (m.selected + 1) % refdata.HoursPerDay
			return m, nil

		case key.Matches(msg, m.keys.Best):
			m.selected, _ = m.profile.Min()
			return m, nil

		case key.Matches(msg, m.keys.Worst):
			m.selected, _ = m.profile.Max()
			return m, nil
		}
	}

	return m, nil
}

// View implements tea.Model.
func (m *ProfileModel) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder

	sb.WriteString(HeaderStyle.Render("HOURLY CARBON INTENSITY"))
	sb.WriteString("\n")
	sb.WriteString(LabelStyle.Render("Region: "))
	sb.WriteString(ValueStyle.Render(m.profile.Region))
	sb.WriteString(LabelStyle.Render("   Season: "))
	sb.WriteString(ValueStyle.Render(m.season))
	sb.WriteString(LabelStyle.Render("   Template: "))
	sb.WriteString(ValueStyle.Render(m.profile.Template))
	sb.WriteString("\n\n")

	sb.WriteString(m.renderChart())
	sb.WriteString("\n")
	sb.WriteString(m.renderSelection())
	sb.WriteString("\n\n")
	sb.WriteString(m.renderHelp())

	return BoxStyle.Width(m.width - 2).Render(sb.String())
}

// renderChart draws one bar per hour, marking the selection, the cleanest
// hour, and the dirtiest hour.
func (m *ProfileModel) renderChart() string {
	best, _ := m.profile.Min()
	worst, maxValue := m.profile.Max()

	barWidth := m.width - 24
	if barWidth > profileBarMaxWidth {
		barWidth = profileBarMaxWidth
	}
	if barWidth < 8 {
		barWidth = 8
	}

	var sb strings.Builder
	for hour, value := range m.profile.Values {
		cells := 1
		if maxValue > 0 {
			cells = int(value / maxValue * float64(barWidth))
			if cells < 1 {
				cells = 1
			}
		}
		bar := strings.Repeat("█", cells)

		style := MutedStyle
		switch hour {
		case m.selected:
			style = lipgloss.NewStyle().Foreground(ColorHighlight).Bold(true)
		case best:
			style = OKStyle
		case worst:
			style = WarnStyle
		}

		cursor := "  "
		if hour == m.selected {
			cursor = "> "
		}

		sb.WriteString(fmt.Sprintf("%s%02d:00 %6.3f %s\n",
			cursor, hour, value, style.Render(bar)))
	}
	return sb.String()
}

// renderSelection summarizes the selected hour against the cleanest one.
func (m *ProfileModel) renderSelection() string {
	best, bestValue := m.profile.Min()
	selectedValue := m.profile.At(m.selected)

	var sb strings.Builder
	sb.WriteString(LabelStyle.Render("Selected: "))
	sb.WriteString(ValueStyle.Render(fmt.Sprintf("%02d:00 at %.3f kg CO2/kWh", m.selected, selectedValue)))

	if m.selected == best {
		sb.WriteString("  ")
		sb.WriteString(OKStyle.Render("cleanest hour of the day"))
		return sb.String()
	}

	extra := 0.0
	if bestValue > 0 {
		extra = (selectedValue - bestValue) / bestValue
	}
	sb.WriteString("\n")
	sb.WriteString(LabelStyle.Render("Cleanest: "))
	sb.WriteString(ValueStyle.Render(fmt.Sprintf("%02d:00 at %.3f kg CO2/kWh", best, bestValue)))
	sb.WriteString(WarnStyle.Render(fmt.Sprintf("  +%.0f%% dirtier here", extra*100)))
	return sb.String()
}

func (m *ProfileModel) renderHelp() string {
	bindings := []key.Binding{m.keys.Left, m.keys.Right, m.keys.Best, m.keys.Worst, m.keys.Quit}
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		parts = append(parts, b.Help().Key+": "+b.Help().Desc)
	}
	return MutedStyle.Render(strings.Join(parts, " | "))
}
