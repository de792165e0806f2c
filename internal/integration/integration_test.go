package integration

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"strings"
	"testing"
	"time"

	"quizzler/internal/app"
	"quizzler/internal/domain"
	"quizzler/internal/infra/postgres"
	pgmigrations "quizzler/internal/infra/postgres/migrations"
	infraredis "quizzler/internal/infra/redis"

	"github.com/docker/go-connections/nat"
	"github.com/jackc/pgx/v4/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"
)

func TestQuizFromQuestionBankEndToEnd(t *testing.T) {
	ctx := context.Background()
	requireDocker(t)

	pgURL, pgCleanup := startPostgres(t, ctx)
	defer pgCleanup()
	redisURL, redisCleanup := startRedis(t, ctx)
	defer redisCleanup()

	seedBank(t, ctx, pgURL)

	pool, err := pgxpool.Connect(ctx, pgURL)
	if err != nil {
		t.Fatalf("connect pg: %v", err)
	}
	defer pool.Close()
	bank := postgres.NewQuestionBank(pool)

	redisClient, err := redisClientFromURL(redisURL)
	if err != nil {
		t.Fatalf("redis client: %v", err)
	}
	defer redisClient.Close()

	categories := infraredis.NewCategoryCache(redisClient, bank, 5*time.Minute)
	service := app.NewQuizService(app.NewGateway(categories, bank), 10)

	cats, err := service.Categories(ctx)
	if err != nil {
		t.Fatalf("categories: %v", err)
	}
	if len(cats) != 2 || cats[0].Name != "General Knowledge" || cats[1].ID != "22" {
		t.Fatalf("unexpected categories %+v", cats)
	}
	cached, err := redisClient.HGet(ctx, "quizzler:categories", "22").Result()
	if err != nil || cached != "Geography" {
		t.Fatalf("expected cached category, got %q err=%v", cached, err)
	}

	sessions := infraredis.NewSessionStore(redisClient, 5*time.Minute, app.NewSeededShuffler(1))
	engine := sessions.Create("player-1")
	defer sessions.Delete("player-1")

	if err := service.Start(ctx, engine, "22"); err != nil {
		t.Fatalf("start: %v", err)
	}
	snap := engine.Snapshot()
	if snap.State != domain.StateAwaitingAnswer || snap.Total != 2 {
		t.Fatalf("unexpected snapshot after start %+v", snap)
	}

	for {
		q, err := engine.CurrentQuestion()
		if err != nil {
			t.Fatalf("current question: %v", err)
		}
		outcome, err := engine.SubmitAnswer(q.CorrectAnswer)
		if err != nil {
			t.Fatalf("submit: %v", err)
		}
		if !outcome.IsCorrect {
			t.Fatalf("expected %q to be correct", q.CorrectAnswer)
		}
		adv, err := engine.Advance()
		if err != nil {
			t.Fatalf("advance: %v", err)
		}
		if adv.Completed() {
			if adv.Score != 2 || adv.Total != 2 || adv.Rank != domain.RankUltimate {
				t.Fatalf("unexpected completion %+v", adv)
			}
			break
		}
	}

	err = service.Start(ctx, engine, "9")
	if !errors.Is(err, domain.ErrNoQuestionsAvailable) {
		t.Fatalf("expected no questions for empty category, got %v", err)
	}
	if engine.State() != domain.StateCompleted {
		t.Fatalf("failed fetch must not touch engine, state=%s", engine.State())
	}
}

func startPostgres(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	endpoint, cleanup := startContainer(t, ctx, tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_USER": "quizzler", "POSTGRES_PASSWORD": "quizzler", "POSTGRES_DB": "bank"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}, "5432/tcp")
	return fmt.Sprintf("postgres://quizzler:quizzler@%s/bank?sslmode=disable", endpoint), cleanup
}

func startRedis(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	endpoint, cleanup := startContainer(t, ctx, tc.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(30 * time.Second),
	}, "6379/tcp")
	return "redis://" + endpoint, cleanup
}

// startContainer runs req and returns host:port for the exposed port.
func startContainer(t *testing.T, ctx context.Context, req tc.ContainerRequest, port nat.Port) (string, func()) {
	t.Helper()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start %s: %v", req.Image, err)
	}
	cleanup := func() { _ = container.Terminate(ctx) }

	host, err := container.Host(ctx)
	if err != nil {
		cleanup()
		t.Fatalf("%s host: %v", req.Image, err)
	}
	mapped, err := container.MappedPort(ctx, port)
	if err != nil {
		cleanup()
		t.Fatalf("%s port: %v", req.Image, err)
	}
	return net.JoinHostPort(host, mapped.Port()), cleanup
}

// seedBank migrates the schema and imports a small bank through the importer.
// General Knowledge is left without questions.
func seedBank(t *testing.T, ctx context.Context, dsn string) {
	t.Helper()
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())
	defer db.Close()

	migrator := migrate.NewMigrator(db, pgmigrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		t.Fatalf("migrator init: %v", err)
	}
	if _, err := migrator.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	importer := postgres.NewImporter(db)
	err := importer.UpsertCategories(ctx, []domain.Category{
		{ID: "9", Name: "General Knowledge"},
		{ID: "22", Name: "Geography"},
	})
	if err != nil {
		t.Fatalf("upsert categories: %v", err)
	}
	geography := []domain.Question{
		{
			Text:             "What is the capital of France?",
			CorrectAnswer:    "Paris",
			IncorrectAnswers: []string{"Berlin", "Rome", "Madrid"},
			Difficulty:       "easy",
			Type:             "multiple",
		},
		{
			Text:             "Which river flows through Cairo?",
			CorrectAnswer:    "Nile",
			IncorrectAnswers: []string{"Amazon", "Danube", "Tigris"},
			Difficulty:       "easy",
			Type:             "multiple",
		},
	}
	n, err := importer.InsertQuestions(ctx, "22", geography)
	if err != nil {
		t.Fatalf("insert questions: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 new rows, got %d", n)
	}
	n, err = importer.InsertQuestions(ctx, "22", geography)
	if err != nil {
		t.Fatalf("re-insert questions: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected duplicates to be skipped, got %d new", n)
	}
}

func redisClientFromURL(url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return goredis.NewClient(opts), nil
}

func requireDocker(t *testing.T) {
	t.Helper()
	if _, err := tc.NewDockerProvider(); err != nil {
		t.Skipf("docker not available: %v", err)
	}
}
