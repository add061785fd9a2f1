package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"taskboard/internal/board"
	"taskboard/internal/client"
	"taskboard/internal/util"
)

func main() {
	apiFlag := flag.String("api", util.EnvOrDefault("TASKBOARD_API", "http://localhost:8080"), "Task board API base URL")
	flag.Parse()

	api := client.New(*apiFlag)

	p := tea.NewProgram(board.New(api), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
