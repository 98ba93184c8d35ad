package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/stockpile/stockpile/cmd/tui/client"
)

type View int

const (
	LoginView View = iota
	SignupView
	TableView
)

type Model struct {
	currentView View
	login       *LoginModel
	signup      *SignupModel
	table       *TableModel
	client      *client.Client
	width       int
	height      int

	isAuthenticated bool
	username        string
}

func NewModel(apiClient *client.Client) Model {
	loginModel := NewLoginModel()
	loginModel.SetClient(apiClient)

	signupModel := NewSignupModel()
	signupModel.SetClient(apiClient)

	tableModel := NewTableModel()
	tableModel.SetClient(apiClient)

	return Model{
		currentView: LoginView,
		login:       loginModel,
		signup:      signupModel,
		table:       tableModel,
		client:      apiClient,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case loginSuccessMsg:
		m.isAuthenticated = true
		m.username = msg.username
		m.currentView = TableView
		m.table.loaded = false
		m.table.loading = true
		return m, loadProductsCmd(m.client)

	case signupSuccessMsg:
		// Registration does not log the user in; credentials are
		// re-entered on the login screen, like the web client.
		m.currentView = LoginView
		m.login.notice = "Registration successful. You can now login."
		return m, nil

	case sessionExpiredMsg:
		m.isAuthenticated = false
		m.username = ""
		m.client.ClearToken()
		m.currentView = LoginView
		m.login.err = msg.err
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "ctrl+s":
			if m.currentView == LoginView {
				m.currentView = SignupView
				return m, nil
			} else if m.currentView == SignupView {
				m.currentView = LoginView
				return m, nil
			}
		}
	}

	switch m.currentView {
	case LoginView:
		updatedLogin, cmd := m.login.Update(msg)
		m.login = updatedLogin.(*LoginModel)
		return m, cmd

	case SignupView:
		updatedSignup, cmd := m.signup.Update(msg)
		m.signup = updatedSignup.(*SignupModel)
		return m, cmd

	case TableView:
		updatedTable, cmd := m.table.Update(msg)
		m.table = updatedTable.(*TableModel)
		return m, cmd
	}

	return m, nil
}

func (m Model) View() string {
	var statusBar string
	if m.isAuthenticated && m.currentView == TableView {
		userInfo := lipgloss.NewStyle().
			Foreground(Success).
			Render("logged in as " + m.username)

		statusBar = lipgloss.NewStyle().
			Width(80).
			Align(lipgloss.Left).
			Background(BgDark).
			Padding(0, 2).
			Render(userInfo)
	}

	var mainContent string
	switch m.currentView {
	case LoginView:
		mainContent = m.login.View()
	case SignupView:
		mainContent = m.signup.View()
	case TableView:
		mainContent = m.table.View()
	}

	if statusBar != "" {
		return lipgloss.JoinVertical(lipgloss.Left, statusBar, "\n", mainContent)
	}
	return mainContent
}
