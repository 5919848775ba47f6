package main

import "github.com/charmbracelet/lipgloss"

var styles = struct {
	Box      lipgloss.Style
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Label    lipgloss.Style
	Focused  lipgloss.Style
	Error    lipgloss.Style
	Failure  lipgloss.Style
	Button   lipgloss.Style
	Success  lipgloss.Style
	Help     lipgloss.Style
}{
	Box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("214")).
		Padding(1, 2).
		Margin(1),
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("214")),
	Subtitle: lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Width(64),
	Label:   lipgloss.NewStyle().Bold(true),
	Focused: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
	Error: lipgloss.NewStyle().
		Foreground(lipgloss.Color("196")),
	Failure: lipgloss.NewStyle().
		Foreground(lipgloss.Color("196")).
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(lipgloss.Color("196")).
		PaddingLeft(1).
		Width(64),
	Button: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color("214")).
		Padding(0, 2),
	Success: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("42")),
	Help: lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")),
}
