// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Thermoquad/pusstat/pkg/ecss"
	"github.com/Thermoquad/pusstat/pkg/tc"
)

//////////////////////////////////////////////////////////////
// Constants
//////////////////////////////////////////////////////////////

// Focus states
const (
	focusServiceList = iota
	focusSubservice
	focusAPID
	focusSeq
	focusData
	focusButton
)

// Text input indices, in focus order after the service list
const (
	inputSubservice = iota
	inputAPID
	inputSeq
	inputData
	inputCount
)

//////////////////////////////////////////////////////////////
// Types
//////////////////////////////////////////////////////////////

// serviceItem is a PUS service shown in the service list
type serviceItem struct {
	service uint8
}

// Implement list.Item interface
func (s serviceItem) Title() string       { return fmt.Sprintf("%2d %s", s.service, ecss.ServiceName(s.service)) }
func (s serviceItem) Description() string { return fmt.Sprintf("service type %d", s.service) }
func (s serviceItem) FilterValue() string { return ecss.ServiceName(s.service) }

// buildModel is the Bubble Tea model for the interactive packet builder
type buildModel struct {
	base         encodeOptions
	serviceList  list.Model
	inputs       []textinput.Model
	focusedField int

	// Result
	packet   *tc.PusTc
	buildErr error
	done     bool

	// UI state
	width    int
	height   int
	quitting bool
}

// knownServices lists the standard PUS services
func knownServices() []list.Item {
	items := []list.Item{}
	for s := 1; s <= 255; s++ {
		if ecss.ServiceName(uint8(s)) != "UNKNOWN" {
			items = append(items, serviceItem{service: uint8(s)})
		}
	}
	return items
}

func initialBuildModel(base encodeOptions) buildModel {
	// Initialize text inputs
	inputs := make([]textinput.Model, inputCount)
	for i := range inputs {
		ti := textinput.New()
		ti.Width = 20
		inputs[i] = ti
	}
	inputs[inputSubservice].Placeholder = "1"
	inputs[inputSubservice].CharLimit = 3
	inputs[inputSubservice].SetValue(strconv.Itoa(int(base.subservice)))
	inputs[inputAPID].Placeholder = "0x002"
	inputs[inputAPID].CharLimit = 6
	inputs[inputAPID].SetValue(fmt.Sprintf("0x%03X", base.apid))
	inputs[inputSeq].Placeholder = "0"
	inputs[inputSeq].CharLimit = 6
	inputs[inputSeq].SetValue(strconv.Itoa(int(base.seq)))
	inputs[inputData].Placeholder = "hex bytes"
	inputs[inputData].Width = 40
	inputs[inputData].SetValue(hex.EncodeToString(base.appData))

	// Initialize service list
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetHeight(1)
	delegate.SetSpacing(0)
	items := knownServices()
	serviceList := list.New(items, delegate, 32, 14)
	serviceList.Title = "Service"
	serviceList.SetShowStatusBar(false)
	serviceList.SetShowHelp(false)
	serviceList.SetFilteringEnabled(false)
	for i, item := range items {
		if item.(serviceItem).service == base.service {
			serviceList.Select(i)
		}
	}

	m := buildModel{
		base:         base,
		serviceList:  serviceList,
		inputs:       inputs,
		focusedField: focusServiceList,
		width:        80,
		height:       24,
	}
	m.rebuild()
	return m
}

//////////////////////////////////////////////////////////////
// Bubble Tea Interface
//////////////////////////////////////////////////////////////

func (m buildModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m buildModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	return m, nil
}

func (m *buildModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit

	case "q":
		if m.focusedField == focusServiceList || m.focusedField == focusButton {
			m.quitting = true
			return m, tea.Quit
		}

	case "tab":
		return m.cycleFocus(1), nil

	case "shift+tab":
		return m.cycleFocus(-1), nil

	case "enter":
		if m.focusedField == focusButton {
			if m.buildErr == nil {
				m.done = true
				return m, tea.Quit
			}
			return m, nil
		}
		return m.cycleFocus(1), nil
	}

	// Pass through to focused component
	var cmd tea.Cmd
	if m.focusedField == focusServiceList {
		m.serviceList, cmd = m.serviceList.Update(msg)
	} else if idx := m.focusedField - focusSubservice; idx >= 0 && idx < inputCount {
		m.inputs[idx], cmd = m.inputs[idx].Update(msg)
	}
	m.rebuild()
	return m, cmd
}

func (m *buildModel) cycleFocus(delta int) *buildModel {
	maxFocus := focusButton

	// Cycle through focus states
	m.focusedField = (m.focusedField + delta + maxFocus + 1) % (maxFocus + 1)

	// Update focus state
	for i := range m.inputs {
		if i == m.focusedField-focusSubservice {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}

	return m
}

// rebuild parses the inputs and rebuilds the preview packet
func (m *buildModel) rebuild() {
	opts, err := m.options()
	if err != nil {
		m.packet, m.buildErr = nil, err
		return
	}
	m.packet, m.buildErr = buildTelecommand(opts)
}

// options merges the form inputs into the base options
func (m buildModel) options() (encodeOptions, error) {
	opts := m.base
	if item, ok := m.serviceList.SelectedItem().(serviceItem); ok {
		opts.service = item.service
	}

	subservice, err := strconv.ParseUint(strings.TrimSpace(m.inputs[inputSubservice].Value()), 0, 8)
	if err != nil {
		return opts, fmt.Errorf("subservice: %w", err)
	}
	opts.subservice = uint8(subservice)

	apid, err := strconv.ParseUint(strings.TrimSpace(m.inputs[inputAPID].Value()), 0, 16)
	if err != nil {
		return opts, fmt.Errorf("apid: %w", err)
	}
	opts.apid = uint16(apid)

	seq, err := strconv.ParseUint(strings.TrimSpace(m.inputs[inputSeq].Value()), 0, 16)
	if err != nil {
		return opts, fmt.Errorf("sequence count: %w", err)
	}
	opts.seq = uint16(seq)

	opts.appData = nil
	if data := strings.TrimSpace(m.inputs[inputData].Value()); data != "" {
		appData, err := parseHex(data)
		if err != nil {
			return opts, fmt.Errorf("app data: %w", err)
		}
		opts.appData = appData
	}
	return opts, nil
}

func (m buildModel) View() string {
	if m.quitting || m.done {
		return ""
	}

	var s strings.Builder

	focusedBoxStyle := boxStyle.
		BorderForeground(lipgloss.Color("12"))

	buttonStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color("12")).
		Padding(0, 2)

	focusedButtonStyle := buttonStyle.
		Background(lipgloss.Color("10"))

	// Header
	s.WriteString(titleStyle.Render("PUSSTAT BUILD"))
	s.WriteString(" ")
	s.WriteString(headerStyle.Render("| Tab=switch Enter=next Esc=quit"))
	s.WriteString("\n\n")

	// Layout: left panel (services) | right panel (fields)
	leftWidth := 34
	rightWidth := m.width - leftWidth - 6
	if rightWidth < 30 {
		rightWidth = 30
	}

	listStyle := boxStyle.Width(leftWidth)
	if m.focusedField == focusServiceList {
		listStyle = focusedBoxStyle.Width(leftWidth)
	}
	servicePanel := listStyle.Render(m.serviceList.View())

	var fields strings.Builder
	labels := []string{"Subservice:", "APID:", "Sequence:", "App data:"}
	for i, label := range labels {
		fields.WriteString(fmt.Sprintf("%s\n%s\n\n", labelStyle.Render(label), m.inputs[i].View()))
	}
	button := buttonStyle.Render("Print packet")
	if m.focusedField == focusButton {
		button = focusedButtonStyle.Render("Print packet")
	}
	fields.WriteString(button)
	fieldPanel := boxStyle.Width(rightWidth).Render(fields.String())

	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, servicePanel, " ", fieldPanel))
	s.WriteString("\n\n")

	// Preview
	s.WriteString(labelStyle.Render("Preview:"))
	s.WriteString("\n")
	var preview string
	if m.buildErr != nil {
		preview = errorStyle.Render("✗ " + m.buildErr.Error())
	} else if raw, err := m.packet.Bytes(); err != nil {
		preview = errorStyle.Render("✗ " + err.Error())
	} else {
		preview = valueStyle.Render(hex.EncodeToString(raw)) + "\n" +
			headerStyle.Render(strings.TrimSuffix(tc.FormatPacket(m.packet), "\n"))
	}
	s.WriteString(boxStyle.Width(m.width - 4).Render(preview))

	return s.String()
}
