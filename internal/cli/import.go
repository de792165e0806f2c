package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"time"

	"quizzler/internal/app"
	"quizzler/internal/config"
	"quizzler/internal/domain"
	"quizzler/internal/infra/opentdb"
	"quizzler/internal/infra/postgres"

	"github.com/spf13/cobra"
)

// Open Trivia DB allows one request per IP every five seconds and at most 50
// questions per request.
const (
	importPacing    = 5 * time.Second
	maxImportAmount = 50
)

// NewImportCmd copies Open Trivia DB batches into the Postgres question bank.
func NewImportCmd(configPath *string) *cobra.Command {
	var (
		categories []string
		amount     int
	)
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import Open Trivia DB questions into the Postgres question bank",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if err := runMigrationsWithConfig(cmd.Context(), cfg); err != nil {
				return err
			}
			return runImport(cmd.Context(), cfg, categories, amount)
		},
	}
	cmd.Flags().StringSliceVar(&categories, "category", nil, "category ids to import (default all)")
	cmd.Flags().IntVar(&amount, "amount", maxImportAmount, "questions to request per category")
	return cmd
}

func runImport(ctx context.Context, cfg config.Config, only []string, amount int) error {
	if amount <= 0 || amount > maxImportAmount {
		amount = maxImportAmount
	}

	db, err := openBunDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	importer := postgres.NewImporter(db)

	client := opentdb.NewClient(cfg.Provider.BaseURL, config.TTLDuration(cfg.Provider.Timeout, 10*time.Second))
	gateway := app.NewGateway(client, client)

	categories, err := gateway.FetchCategories(ctx)
	if err != nil {
		return err
	}
	if err := importer.UpsertCategories(ctx, categories); err != nil {
		return err
	}
	log.Printf("imported %d categories", len(categories))

	if len(only) > 0 {
		categories = slices.DeleteFunc(categories, func(c domain.Category) bool {
			return !slices.Contains(only, c.ID)
		})
		if len(categories) == 0 {
			return fmt.Errorf("no matching categories for %v", only)
		}
	}

	total := 0
	for i, c := range categories {
		if i > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(importPacing):
			}
		}

		questions, err := gateway.FetchQuestions(ctx, c.ID, amount)
		if errors.Is(err, domain.ErrNoQuestionsAvailable) {
			log.Printf("skipping category %s (%s): not enough questions", c.ID, c.Name)
			continue
		}
		if err != nil {
			return fmt.Errorf("category %s: %w", c.ID, err)
		}

		n, err := importer.InsertQuestions(ctx, c.ID, questions)
		if err != nil {
			return err
		}
		total += n
		log.Printf("category %s (%s): %d new of %d fetched", c.ID, c.Name, n, len(questions))
	}
	log.Printf("import finished: %d new questions", total)
	return nil
}
