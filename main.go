package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/catalogd/catalog-tui/app"
	"github.com/catalogd/catalog-tui/client"
	"github.com/catalogd/catalog-tui/config"
	"github.com/catalogd/catalog-tui/style"
)

var version = "dev"

func main() {
	urlFlag := flag.String("url", "", "Catalog backend URL (default CATALOG_URL or http://localhost:8080)")
	tokenFlag := flag.String("token", "", "Bearer token (default CATALOG_TOKEN)")
	themeFlag := flag.String("theme", "", "Color theme: dark, light, catppuccin")
	gridFlag := flag.Bool("grid", false, "Start in grid layout")
	noColor := flag.Bool("no-color", false, "Disable ANSI colors")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.BoolVar(showVersion, "V", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("catalog-tui %s\n", version)
		os.Exit(0)
	}

	if *noColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	home, _ := os.UserHomeDir()
	app.ProfileDir = filepath.Join(home, ".catalog-tui")
	cfg := config.Load(app.ProfileDir)

	baseURL := *urlFlag
	if baseURL == "" {
		baseURL = os.Getenv("CATALOG_URL")
	}
	if baseURL == "" {
		baseURL = cfg.BackendURL
	}
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	cfg.BackendURL = baseURL

	token := *tokenFlag
	if token == "" {
		token = os.Getenv("CATALOG_TOKEN")
	}
	if token == "" {
		if data, err := os.ReadFile(filepath.Join(app.ProfileDir, "token")); err == nil {
			token = strings.TrimSpace(string(data))
		}
	}

	if *gridFlag {
		cfg.View = "grid"
	}

	// Flag beats config beats terminal background detection.
	switch {
	case *themeFlag != "":
		style.SetTheme(*themeFlag)
		cfg.Theme = style.CurrentThemeName
	case cfg.Theme != "":
		style.SetTheme(cfg.Theme)
	case lipgloss.HasDarkBackground():
		style.SetTheme("dark")
	default:
		style.SetTheme("light")
	}

	c := client.New(baseURL)
	if token != "" {
		c.SetToken(token)
	}

	m := app.New(c, cfg)

	opts := []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}

	p := tea.NewProgram(m, opts...)

	go func() {
		p.Send(app.ProgramReady{Program: p})
	}()

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "catalog-tui: %v\n", err)
		os.Exit(1)
	}
}
