package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fontdex/fontdex/pkg/app/screens"
)

type App struct {
	catalogPath string
}

func NewApp(catalogPath string) *App {
	return &App{catalogPath: catalogPath}
}

func (a *App) Run() error {
	model := screens.NewCatalogScreen(a.catalogPath)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
