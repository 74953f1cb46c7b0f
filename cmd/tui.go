// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Thermoquad/pusstat/pkg/timecode"
)

// Event log entry
type clockEvent struct {
	timestamp timecode.CdsShort
	message   string
	isError   bool // true for errors, false for info
}

// Key bindings
type clockKeyMap struct {
	Quit key.Binding
	Mark key.Binding
}

var clockKeys = clockKeyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Mark: key.NewBinding(
		key.WithKeys("m", " "),
		key.WithHelp("m", "mark timestamp"),
	),
}

// TUI model
type clockModel struct {
	interval  time.Duration
	now       func() time.Time
	current   timecode.CdsShort
	release   *timecode.CdsShort
	released  bool
	events    []clockEvent
	maxEvents int
	width     int
	height    int
	quitting  bool
}

// Messages
type tickMsg time.Time

// formatDuration formats a duration to a human-friendly string
func formatDuration(d time.Duration) string {
	ms := d.Milliseconds()
	if ms <= 0 {
		return "0 seconds"
	}

	seconds := ms / 1000
	minutes := seconds / 60
	hours := minutes / 60
	days := hours / 24

	seconds %= 60
	minutes %= 60
	hours %= 24

	parts := []string{}
	if days > 0 {
		if days == 1 {
			parts = append(parts, "1 day")
		} else {
			parts = append(parts, fmt.Sprintf("%d days", days))
		}
	}
	if hours > 0 {
		if hours == 1 {
			parts = append(parts, "1 hour")
		} else {
			parts = append(parts, fmt.Sprintf("%d hours", hours))
		}
	}
	if minutes > 0 {
		if minutes == 1 {
			parts = append(parts, "1 minute")
		} else {
			parts = append(parts, fmt.Sprintf("%d minutes", minutes))
		}
	}
	if seconds > 0 || len(parts) == 0 {
		if seconds == 1 {
			parts = append(parts, "1 second")
		} else {
			parts = append(parts, fmt.Sprintf("%d seconds", seconds))
		}
	}

	// Join with commas and "and" for last item
	if len(parts) == 1 {
		return parts[0]
	}
	if len(parts) == 2 {
		return parts[0] + " and " + parts[1]
	}
	last := parts[len(parts)-1]
	rest := strings.Join(parts[:len(parts)-1], ", ")
	return rest + ", and " + last
}

func initialClockModel(interval time.Duration, release *timecode.CdsShort, now func() time.Time) clockModel {
	m := clockModel{
		interval:  interval,
		now:       now,
		release:   release,
		events:    make([]clockEvent, 0),
		maxEvents: 100,
		width:     80,
		height:    24,
	}
	m.refresh()
	return m
}

func (m clockModel) Init() tea.Cmd {
	return tea.Batch(
		m.tickCmd(),
		tea.EnterAltScreen,
	)
}

func (m clockModel) tickCmd() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m clockModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, clockKeys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, clockKeys.Mark):
			raw := m.current.AppendBytes(nil)
			m.addEvent(fmt.Sprintf("Marked % X", raw), false)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tickMsg:
		m.refresh()
		return m, m.tickCmd()
	}

	return m, nil
}

// refresh samples the clock and checks the release time
func (m *clockModel) refresh() {
	stamp, err := timecode.CdsShortFromTime(m.now())
	if err != nil {
		m.addEvent(err.Error(), true)
		return
	}
	m.current = stamp

	if m.release != nil && !m.released && !m.current.DateTime().Before(m.release.DateTime()) {
		m.released = true
		m.addEvent("Release time reached", false)
	}
}

func (m *clockModel) addEvent(message string, isError bool) {
	entry := clockEvent{
		timestamp: m.current,
		message:   message,
		isError:   isError,
	}
	m.events = append(m.events, entry)

	// Keep only last N entries
	if len(m.events) > m.maxEvents {
		m.events = m.events[len(m.events)-m.maxEvents:]
	}
}

func (m clockModel) View() string {
	if m.quitting {
		return "Shutting down...\n"
	}

	// Header
	var s strings.Builder
	s.WriteString(titleStyle.Render("PUSSTAT - CDS SHORT CLOCK"))
	s.WriteString("\n")
	s.WriteString(headerStyle.Render(fmt.Sprintf("Refresh: %s | Press '%s' to %s, '%s' to %s",
		m.interval, clockKeys.Mark.Help().Key, clockKeys.Mark.Help().Desc,
		clockKeys.Quit.Help().Key, clockKeys.Quit.Help().Desc)))
	s.WriteString("\n\n")

	// Current timestamp
	raw := m.current.AppendBytes(nil)
	clockContent := strings.Builder{}
	clockContent.WriteString(fmt.Sprintf("%s %s\n",
		labelStyle.Render("UTC:      "), valueStyle.Render(m.current.String())))
	clockContent.WriteString(fmt.Sprintf("%s %s\n",
		labelStyle.Render("Bytes:    "), valueStyle.Render(fmt.Sprintf("% X", raw))))
	clockContent.WriteString(fmt.Sprintf("%s %d   %s %d\n",
		labelStyle.Render("Days:     "), m.current.CCSDSDays(),
		labelStyle.Render("Ms of day:"), m.current.MsOfDay()))
	clockContent.WriteString(fmt.Sprintf("%s %d",
		labelStyle.Render("Unix:     "), m.current.UnixSeconds()))
	s.WriteString(boxStyle.Render(clockContent.String()))
	s.WriteString("\n\n")

	// Release countdown (only shown with a release time)
	if m.release != nil {
		s.WriteString(labelStyle.Render("Release:"))
		s.WriteString("\n")
		releaseContent := strings.Builder{}
		releaseContent.WriteString(fmt.Sprintf("%s %s\n",
			labelStyle.Render("At:       "), valueStyle.Render(m.release.String())))
		if m.released {
			releaseContent.WriteString(warningStyle.Render("Released"))
		} else {
			remaining := m.release.DateTime().Sub(m.current.DateTime())
			releaseContent.WriteString(fmt.Sprintf("%s %s",
				labelStyle.Render("In:       "), valueStyle.Render(formatDuration(remaining))))
		}
		s.WriteString(boxStyle.Render(releaseContent.String()))
		s.WriteString("\n\n")
	}

	// Event log
	s.WriteString(labelStyle.Render("Recent Events:"))
	s.WriteString("\n")

	// Calculate how many log entries we can show
	logHeight := m.height - 16 // Reserve space for header and clock
	if logHeight < 5 {
		logHeight = 5
	}

	logContent := strings.Builder{}
	startIdx := len(m.events) - logHeight
	if startIdx < 0 {
		startIdx = 0
	}

	if len(m.events) == 0 {
		logContent.WriteString(headerStyle.Render("  (no events yet)"))
	} else {
		for i := startIdx; i < len(m.events); i++ {
			entry := m.events[i]
			timestamp := entry.timestamp.DateTime().Format("01/02/06 15:04:05.000")
			if entry.isError {
				logContent.WriteString(fmt.Sprintf("%s %s\n",
					headerStyle.Render(timestamp),
					errorStyle.Render("✗ "+entry.message),
				))
			} else {
				logContent.WriteString(fmt.Sprintf("%s %s\n",
					headerStyle.Render(timestamp),
					warningStyle.Render("ℹ "+entry.message),
				))
			}
		}
	}

	s.WriteString(boxStyle.Width(m.width - 4).Render(logContent.String()))

	return s.String()
}
