package ui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/stockpile/stockpile/cmd/tui/client"
)

const pageSize = 5

type productsLoadedMsg struct {
	products []client.Product
}

type productsErrorMsg struct {
	err error
}

type productUpdatedMsg struct {
	product client.Product
}

type productDeletedMsg struct {
	id string
}

// Editable fields, cycled with tab while editing.
const (
	fieldName = iota
	fieldPrice
	fieldCategory
	fieldCount
)

type TableModel struct {
	products []client.Product
	filter   string
	cursor   int
	page     int

	filterMode    bool
	editMode      bool
	editField     int
	editBuffers   [fieldCount]string
	confirmDelete bool

	loading bool
	loaded  bool
	err     error
	client  *client.Client
}

func NewTableModel() *TableModel {
	return &TableModel{
		products: []client.Product{},
	}
}

func (m *TableModel) SetClient(c *client.Client) {
	m.client = c
}

func (m *TableModel) Init() tea.Cmd {
	return nil
}

func loadProductsCmd(c *client.Client) tea.Cmd {
	return func() tea.Msg {
		products, err := c.ListProducts()
		if err != nil {
			if errors.Is(err, client.ErrUnauthorized) {
				return sessionExpiredMsg{err: err}
			}
			return productsErrorMsg{err: err}
		}
		return productsLoadedMsg{products: products}
	}
}

func updateProductCmd(c *client.Client, id string, patch client.ProductPatch) tea.Cmd {
	return func() tea.Msg {
		updated, err := c.UpdateProduct(id, patch)
		if err != nil {
			if errors.Is(err, client.ErrUnauthorized) {
				return sessionExpiredMsg{err: err}
			}
			return productsErrorMsg{err: err}
		}
		return productUpdatedMsg{product: *updated}
	}
}

func deleteProductCmd(c *client.Client, id string) tea.Cmd {
	return func() tea.Msg {
		if err := c.DeleteProduct(id); err != nil {
			if errors.Is(err, client.ErrUnauthorized) {
				return sessionExpiredMsg{err: err}
			}
			return productsErrorMsg{err: err}
		}
		return productDeletedMsg{id: id}
	}
}

// visible applies the filter box, matching names case-insensitively.
func (m *TableModel) visible() []client.Product {
	if m.filter == "" {
		return m.products
	}
	needle := strings.ToLower(m.filter)
	matched := make([]client.Product, 0, len(m.products))
	for _, p := range m.products {
		if strings.Contains(strings.ToLower(p.Name), needle) {
			matched = append(matched, p)
		}
	}
	return matched
}

func (m *TableModel) pageRows() []client.Product {
	visible := m.visible()
	start := m.page * pageSize
	if start >= len(visible) {
		return nil
	}
	end := start + pageSize
	if end > len(visible) {
		end = len(visible)
	}
	return visible[start:end]
}

func (m *TableModel) pageCount() int {
	visible := len(m.visible())
	if visible == 0 {
		return 1
	}
	return (visible + pageSize - 1) / pageSize
}

func (m *TableModel) clampCursor() {
	rows := len(m.pageRows())
	if rows == 0 {
		m.cursor = 0
		return
	}
	if m.cursor >= rows {
		m.cursor = rows - 1
	}
}

func (m *TableModel) selected() *client.Product {
	rows := m.pageRows()
	if m.cursor >= len(rows) {
		return nil
	}
	return &rows[m.cursor]
}

func (m *TableModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case productsLoadedMsg:
		m.loading = false
		m.loaded = true
		m.err = nil
		m.products = msg.products
		m.clampCursor()
		return m, nil

	case productsErrorMsg:
		m.loading = false
		m.loaded = true
		m.err = msg.err
		return m, nil

	case productUpdatedMsg:
		m.loading = false
		m.err = nil
		for i := range m.products {
			if m.products[i].ID == msg.product.ID {
				m.products[i] = msg.product
				break
			}
		}
		return m, nil

	case productDeletedMsg:
		m.loading = false
		m.err = nil
		kept := m.products[:0]
		for _, p := range m.products {
			if p.ID != msg.id {
				kept = append(kept, p)
			}
		}
		m.products = kept
		m.clampCursor()
		return m, nil

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}
		if m.filterMode {
			return m.updateFilter(msg)
		}
		if m.editMode {
			return m.updateEdit(msg)
		}
		if m.confirmDelete {
			return m.updateConfirm(msg)
		}
		return m.updateBrowse(msg)
	}

	if !m.loaded && !m.loading && m.client != nil {
		m.loading = true
		return m, loadProductsCmd(m.client)
	}

	return m, nil
}

func (m *TableModel) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.pageRows())-1 {
			m.cursor++
		}
	case "left", "h":
		if m.page > 0 {
			m.page--
			m.clampCursor()
		}
	case "right", "l":
		if m.page < m.pageCount()-1 {
			m.page++
			m.clampCursor()
		}
	case "/":
		m.filterMode = true
	case "r":
		m.loading = true
		m.err = nil
		return m, loadProductsCmd(m.client)
	case "t":
		if p := m.selected(); p != nil {
			inStock := !p.InStock
			m.loading = true
			return m, updateProductCmd(m.client, p.ID, client.ProductPatch{InStock: &inStock})
		}
	case "enter", "e":
		if p := m.selected(); p != nil {
			m.editMode = true
			m.editField = fieldName
			m.editBuffers[fieldName] = p.Name
			m.editBuffers[fieldPrice] = strconv.FormatFloat(p.Price, 'f', 2, 64)
			m.editBuffers[fieldCategory] = p.Category
			m.err = nil
		}
	case "d":
		if m.selected() != nil {
			m.confirmDelete = true
		}
	}
	return m, nil
}

func (m *TableModel) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.filterMode = false
		m.page = 0
		m.clampCursor()
	case "backspace":
		m.filter = trimLastRune(m.filter)
	case "ctrl+l":
		m.filter = ""
	default:
		if len(msg.String()) == 1 {
			m.filter += msg.String()
		}
	}
	return m, nil
}

func (m *TableModel) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.editMode = false
	case "tab":
		m.editField = (m.editField + 1) % fieldCount
	case "shift+tab":
		m.editField = (m.editField + fieldCount - 1) % fieldCount
	case "enter":
		p := m.selected()
		if p == nil {
			m.editMode = false
			return m, nil
		}

		name := strings.TrimSpace(m.editBuffers[fieldName])
		if name == "" {
			m.err = errors.New("name cannot be empty")
			return m, nil
		}
		price, err := strconv.ParseFloat(strings.TrimSpace(m.editBuffers[fieldPrice]), 64)
		if err != nil {
			m.err = errors.New("price must be a number")
			return m, nil
		}
		category := strings.TrimSpace(m.editBuffers[fieldCategory])

		m.editMode = false
		m.loading = true
		m.err = nil
		return m, updateProductCmd(m.client, p.ID, client.ProductPatch{
			Name:     &name,
			Price:    &price,
			Category: &category,
		})
	case "backspace":
		m.editBuffers[m.editField] = trimLastRune(m.editBuffers[m.editField])
	default:
		if len(msg.String()) == 1 {
			m.editBuffers[m.editField] += msg.String()
		}
	}
	return m, nil
}

func (m *TableModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y":
		m.confirmDelete = false
		if p := m.selected(); p != nil {
			m.loading = true
			return m, deleteProductCmd(m.client, p.ID)
		}
	case "n", "esc":
		m.confirmDelete = false
	}
	return m, nil
}

func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}

// trimLastRune drops the final rune, so backspace works on multi-byte
// input.
func trimLastRune(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	return string(runes[:len(runes)-1])
}

func (m *TableModel) View() string {
	var b strings.Builder

	header := TitleStyle.Render("PRODUCT CATALOG")
	b.WriteString(lipgloss.NewStyle().
		Width(80).
		Align(lipgloss.Center).
		MarginTop(1).
		MarginBottom(1).
		Render(header))
	b.WriteString("\n\n")

	// Filter box
	filterLabel := LabelStyle.Width(10).Render("Filter:")
	filterStyle := InputStyle
	if m.filterMode {
		filterStyle = FocusedInputStyle
	}
	filterValue := filterStyle.Width(40).Render(m.filter)
	b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).
		Render(lipgloss.JoinHorizontal(lipgloss.Left, filterLabel, filterValue)))
	b.WriteString("\n\n")

	switch {
	case m.loading:
		loading := lipgloss.NewStyle().Foreground(Accent).Render("Loading products...")
		b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(loading))
		b.WriteString("\n")
	case len(m.visible()) == 0:
		empty := lipgloss.NewStyle().Foreground(Muted).Render("No products found.")
		b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(empty))
		b.WriteString("\n")
	default:
		b.WriteString(m.renderRows())
	}

	if m.err != nil {
		errMsg := ErrorStyle.Render(m.err.Error())
		b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(errMsg))
		b.WriteString("\n")
	}

	pageInfo := InfoStyle.Render(fmt.Sprintf("page %d/%d", m.page+1, m.pageCount()))
	b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(pageInfo))
	b.WriteString("\n\n")

	var help string
	switch {
	case m.editMode:
		help = "tab next field  •  enter save  •  esc cancel"
	case m.confirmDelete:
		help = "y confirm delete  •  n cancel"
	case m.filterMode:
		help = "type to filter  •  enter done  •  ctrl+l clear"
	default:
		help = "↑/↓ row  •  ←/→ page  •  / filter  •  e edit  •  t stock  •  d delete  •  r refresh  •  q quit"
	}
	b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(InfoStyle.Render(help)))

	return BoxStyle.Width(76).Render(b.String())
}

func (m *TableModel) renderRows() string {
	var b strings.Builder

	headerRow := HeaderRowStyle.Render(fmt.Sprintf("  %-28s %10s  %-16s %-10s", "NAME", "PRICE", "CATEGORY", "STOCK"))
	b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(headerRow))
	b.WriteString("\n")

	for i, p := range m.pageRows() {
		selected := i == m.cursor

		if selected && m.editMode {
			b.WriteString(m.renderEditRow())
			b.WriteString("\n")
			continue
		}

		stock := OutOfStockStyle.Render("out")
		if p.InStock {
			stock = InStockStyle.Render("in stock")
		}

		row := fmt.Sprintf("  %-28s %10.2f  %-16s ", truncate(p.Name, 28), p.Price, truncate(p.Category, 16))
		style := RowStyle
		if selected {
			style = SelectedRowStyle
			if m.confirmDelete {
				row = fmt.Sprintf("  delete %q? ", p.Name)
				stock = ErrorStyle.Render("y/n")
			}
		}
		line := style.Render(row) + stock
		b.WriteString(lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(line))
		b.WriteString("\n")
	}

	return b.String()
}

func (m *TableModel) renderEditRow() string {
	labels := [fieldCount]string{"name", "price", "category"}
	var parts []string
	for i := 0; i < fieldCount; i++ {
		style := InputStyle
		if i == m.editField {
			style = FocusedInputStyle
		}
		parts = append(parts, LabelStyle.Width(9).Render(labels[i]+":")+style.Render(m.editBuffers[i]))
	}
	row := lipgloss.JoinHorizontal(lipgloss.Left, parts...)
	return lipgloss.NewStyle().Width(80).Align(lipgloss.Center).Render(row)
}
