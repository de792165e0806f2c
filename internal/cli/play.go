package cli

import (
	"fmt"
	"io"
	"log"

	"quizzler/internal/app"
	"quizzler/internal/config"
	"quizzler/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// NewPlayCmd runs the quiz in the terminal.
func NewPlayCmd(configPath *string) *cobra.Command {
	var (
		logFile  string
		provider string
		count    int
	)
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a quiz in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if provider != "" {
				cfg.Provider.Kind = provider
			}
			if count > 0 {
				cfg.Quiz.QuestionCount = count
			}

			// Log lines would corrupt the alt screen.
			if logFile != "" {
				f, err := tea.LogToFile(logFile, "quizzler")
				if err != nil {
					return fmt.Errorf("open log file: %w", err)
				}
				defer f.Close()
			} else {
				log.SetOutput(io.Discard)
			}

			d, err := buildDeps(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer d.Close()

			model := tui.New(cmd.Context(), d.service, app.NewEngine(app.NewShuffler()))
			_, err = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}
	cmd.Flags().StringVar(&logFile, "log-file", "", "write logs to this file while playing")
	cmd.Flags().StringVar(&provider, "provider", "", "question provider override (opentdb, postgres, static)")
	cmd.Flags().IntVar(&count, "count", 0, "questions per quiz (default from config)")
	return cmd
}
