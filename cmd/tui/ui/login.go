package ui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/stockpile/stockpile/cmd/tui/client"
)

type loginSuccessMsg struct {
	username string
}

type loginErrorMsg struct {
	err error
}

// sessionExpiredMsg bubbles up from any view when the API rejects the
// token.
type sessionExpiredMsg struct {
	err error
}

type LoginModel struct {
	usernameInput string
	passwordInput string
	focusedInput  int
	loading       bool
	err           error
	notice        string
	client        *client.Client
}

func NewLoginModel() *LoginModel {
	return &LoginModel{}
}

func (m *LoginModel) SetClient(c *client.Client) {
	m.client = c
}

func (m *LoginModel) Init() tea.Cmd {
	return nil
}

func loginCmd(c *client.Client, username, password string) tea.Cmd {
	return func() tea.Msg {
		if err := c.Login(username, password); err != nil {
			return loginErrorMsg{err: err}
		}
		return loginSuccessMsg{username: username}
	}
}

func (m *LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loginSuccessMsg:
		m.loading = false
		m.err = nil
		m.notice = ""
		m.passwordInput = ""
		return m, nil

	case loginErrorMsg:
		m.loading = false
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}

		switch msg.String() {
		case "tab", "shift+tab":
			m.focusedInput = (m.focusedInput + 1) % 2
		case "enter":
			if m.usernameInput == "" {
				m.err = errors.New("username cannot be empty")
				return m, nil
			}
			if m.passwordInput == "" {
				m.err = errors.New("password cannot be empty")
				return m, nil
			}

			if m.client != nil {
				m.loading = true
				m.err = nil
				m.notice = ""
				return m, loginCmd(m.client, m.usernameInput, m.passwordInput)
			}
			m.err = fmt.Errorf("client not connected")
		case "backspace":
			if m.focusedInput == 0 {
				m.usernameInput = trimLastRune(m.usernameInput)
			} else {
				m.passwordInput = trimLastRune(m.passwordInput)
			}
		case "ctrl+l":
			m.usernameInput = ""
			m.passwordInput = ""
			m.err = nil
		default:
			if len(msg.String()) == 1 {
				if m.focusedInput == 0 {
					m.usernameInput += msg.String()
				} else {
					m.passwordInput += msg.String()
				}
			}
		}
	}
	return m, nil
}

func (m *LoginModel) View() string {
	var b strings.Builder

	title := lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true).
		Render("LOGIN")

	subtitle := lipgloss.NewStyle().
		Foreground(Muted).
		Render("Sign in to manage the product catalog.")

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

	if m.loading {
		loading := InfoStyle.Render("Logging in...")
		b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(loading))
		b.WriteString("\n")
	}

	if m.notice != "" {
		notice := SuccessStyle.Render(m.notice)
		b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(notice))
		b.WriteString("\n")
	}

	if m.err != nil {
		errMsg := ErrorStyle.Render(m.err.Error())
		b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(errMsg))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	help := InfoStyle.Render("tab switch  •  enter login  •  ctrl+l clear  •  ctrl+s register  •  ctrl+c quit")
	b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(help))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Primary).
		Padding(2, 4).
		Width(76).
		Render(b.String())
}

func renderField(label, value string, focused bool) string {
	fieldLabel := LabelStyle.Width(15).Render(label)
	style := InputStyle
	if focused {
		style = FocusedInputStyle
	}
	fieldValue := style.Width(50).Render(value)
	field := lipgloss.JoinHorizontal(lipgloss.Left, fieldLabel, fieldValue)
	return lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(field)
}
