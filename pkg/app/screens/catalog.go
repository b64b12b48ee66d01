package screens

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fontdex/fontdex/pkg/app/styles"
	"github.com/fontdex/fontdex/pkg/data"
)

type catalogLoadedMsg struct {
	entries []data.Entry
	err     error
}

// CatalogScreen is a filterable table over the coverage catalog.
type CatalogScreen struct {
	catalogPath string
	entries     []data.Entry
	table       table.Model
	filter      textinput.Model
	filtering   bool
	width       int
	height      int
	err         error
}

func NewCatalogScreen(catalogPath string) *CatalogScreen {
	filter := textinput.New()
	filter.Placeholder = "filter families"
	filter.CharLimit = 40

	columns := []table.Column{
		{Title: "Family", Width: 30},
		{Title: "Files", Width: 6},
		{Title: "Ranges", Width: 7},
		{Title: "Code Points", Width: 12},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(20),
	)

	return &CatalogScreen{
		catalogPath: catalogPath,
		table:       t,
		filter:      filter,
	}
}

func (s *CatalogScreen) Init() tea.Cmd {
	return s.loadCatalog
}

func (s *CatalogScreen) loadCatalog() tea.Msg {
	entries, err := data.ReadCatalog(s.catalogPath)
	return catalogLoadedMsg{entries: entries, err: err}
}

func (s *CatalogScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		s.table.SetHeight(msg.Height - 8)

	case tea.KeyMsg:
		if s.filtering {
			switch msg.String() {
			case "enter", "esc":
				s.filtering = false
				s.filter.Blur()
			default:
				var cmd tea.Cmd
				s.filter, cmd = s.filter.Update(msg)
				s.refreshRows()
				return s, cmd
			}
			s.refreshRows()
			return s, nil
		}

		switch msg.String() {
		case "q", "ctrl+c":
			return s, tea.Quit
		case "/":
			s.filtering = true
			s.filter.Focus()
			return s, textinput.Blink
		case "r":
			return s, s.loadCatalog
		}

	case catalogLoadedMsg:
		s.entries = msg.entries
		s.err = msg.err
		s.refreshRows()
	}

	var cmd tea.Cmd
	s.table, cmd = s.table.Update(msg)
	return s, cmd
}

func (s *CatalogScreen) refreshRows() {
	query := strings.ToLower(s.filter.Value())
	rows := []table.Row{}
	for _, entry := range s.entries {
		if query != "" && !strings.Contains(strings.ToLower(entry.Family), query) {
			continue
		}
		rows = append(rows, table.Row{
			entry.Family,
			fmt.Sprintf("%d", len(entry.Files)),
			fmt.Sprintf("%d", len(entry.UnicodeRanges)),
			fmt.Sprintf("%d", entry.CodePoints()),
		})
	}
	s.table.SetRows(rows)
}

func (s *CatalogScreen) View() string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("fontdex catalog"))
	b.WriteString("\n")

	if s.err != nil {
		b.WriteString(styles.ErrorStyle.Render(fmt.Sprintf("Cannot read catalog: %v", s.err)))
		b.WriteString("\n")
		b.WriteString(styles.MutedStyle.Render("Run 'fontdex fetch' to build it. Press q to quit."))
		return b.String()
	}

	if s.filtering || s.filter.Value() != "" {
		b.WriteString(s.filter.View())
		b.WriteString("\n")
	}

	b.WriteString(s.table.View())
	b.WriteString("\n")
	b.WriteString(styles.MutedStyle.Render("↑/↓ move · / filter · r reload · q quit"))
	return b.String()
}
