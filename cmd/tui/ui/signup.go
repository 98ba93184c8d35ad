package ui

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/stockpile/stockpile/cmd/tui/client"
)

type signupSuccessMsg struct{}

type signupErrorMsg struct {
	err error
}

type SignupModel struct {
	usernameInput string
	passwordInput string
	confirmInput  string
	focusedInput  int
	loading       bool
	err           error
	client        *client.Client
}

func NewSignupModel() *SignupModel {
	return &SignupModel{}
}

func (m *SignupModel) SetClient(c *client.Client) {
	m.client = c
}

func (m *SignupModel) Init() tea.Cmd {
	return nil
}

func signupCmd(c *client.Client, username, password string) tea.Cmd {
	return func() tea.Msg {
		if err := c.Register(username, password); err != nil {
			return signupErrorMsg{err: err}
		}
		return signupSuccessMsg{}
	}
}

func (m *SignupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case signupSuccessMsg:
		m.loading = false
		m.err = nil
		m.passwordInput = ""
		m.confirmInput = ""
		return m, nil

	case signupErrorMsg:
		m.loading = false
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}

		switch msg.String() {
		case "tab":
			m.focusedInput = (m.focusedInput + 1) % 3
		case "shift+tab":
			m.focusedInput = (m.focusedInput + 2) % 3
		case "enter":
			if m.usernameInput == "" {
				m.err = errors.New("username cannot be empty")
				return m, nil
			}
			if m.passwordInput == "" {
				m.err = errors.New("password cannot be empty")
				return m, nil
			}
			if m.passwordInput != m.confirmInput {
				m.err = errors.New("passwords do not match")
				return m, nil
			}

			if m.client != nil {
				m.loading = true
				m.err = nil
				return m, signupCmd(m.client, m.usernameInput, m.passwordInput)
			}
			m.err = errors.New("client not connected")
		case "backspace":
			switch m.focusedInput {
			case 0:
				m.usernameInput = trimLastRune(m.usernameInput)
			case 1:
				m.passwordInput = trimLastRune(m.passwordInput)
			case 2:
				m.confirmInput = trimLastRune(m.confirmInput)
			}
		case "ctrl+l":
			m.usernameInput = ""
			m.passwordInput = ""
			m.confirmInput = ""
			m.err = nil
		default:
			if len(msg.String()) == 1 {
				switch m.focusedInput {
				case 0:
					m.usernameInput += msg.String()
				case 1:
					m.passwordInput += msg.String()
				case 2:
					m.confirmInput += msg.String()
				}
			}
		}
	}
	return m, nil
}

func (m *SignupModel) View() string {
	var b strings.Builder

	title := lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true).
		Render("REGISTER")

	subtitle := lipgloss.NewStyle().
		Foreground(Muted).
		Render("Create an account to access the catalog.")

	b.WriteString(lipgloss.NewStyle().
		Width(80).
		Align(lipgloss.Center).
		MarginTop(2).
		Render(title))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(80).
		Align(lipgloss.Center).
		MarginBottom(3).
		Render(subtitle))
	b.WriteString("\n\n")

	b.WriteString(renderField("Username:", m.usernameInput, m.focusedInput == 0))
	b.WriteString("\n\n")
	b.WriteString(renderField("Password:", strings.Repeat("•", len([]rune(m.passwordInput))), m.focusedInput == 1))
	b.WriteString("\n\n")
	b.WriteString(renderField("Confirm:", strings.Repeat("•", len([]rune(m.confirmInput))), m.focusedInput == 2))
	b.WriteString("\n\n")

	if m.loading {
		loading := InfoStyle.Render("Registering...")
		b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(loading))
		b.WriteString("\n")
	}

	if m.err != nil {
		errMsg := ErrorStyle.Render(m.err.Error())
		b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(errMsg))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	help := InfoStyle.Render("tab switch  •  enter register  •  ctrl+l clear  •  ctrl+s login  •  ctrl+c quit")
	b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(help))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Primary).
		Padding(2, 4).
		Width(76).
		Render(b.String())
}
