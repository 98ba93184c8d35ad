package ui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	Primary   = lipgloss.Color("#00ADD8")
	Secondary = lipgloss.Color("#5DC9E2")
	Accent    = lipgloss.Color("#CE3262")
	Success   = lipgloss.Color("#00D9A5")
	Warning   = lipgloss.Color("#FFB84D")
	Error     = lipgloss.Color("#FF5A87")
	Muted     = lipgloss.Color("#6B7B8C")
	Text      = lipgloss.Color("#E3F2FD")
	BgDark    = lipgloss.Color("#0A1A2F")

	TitleStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true).
			Padding(0, 1)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2).
			MarginTop(1)

	InfoStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	InputStyle = lipgloss.NewStyle().
			Foreground(Text).
			Border(lipgloss.NormalBorder()).
			BorderForeground(Secondary).
			Padding(0, 1)

	FocusedInputStyle = lipgloss.NewStyle().
				Foreground(Text).
				Border(lipgloss.NormalBorder()).
				BorderForeground(Accent).
				Padding(0, 1)

	LabelStyle = lipgloss.NewStyle().
			Foreground(Secondary).
			Width(20)

	HeaderRowStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	SelectedRowStyle = lipgloss.NewStyle().
				Foreground(Accent).
				Bold(true)

	RowStyle = lipgloss.NewStyle().
			Foreground(Text)

	InStockStyle = lipgloss.NewStyle().
			Foreground(Success)

	OutOfStockStyle = lipgloss.NewStyle().
			Foreground(Warning)
)
