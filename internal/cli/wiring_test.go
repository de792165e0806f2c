package cli

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"quizzler/internal/config"
	redisinfra "quizzler/internal/infra/redis"

	"github.com/alicebob/miniredis/v2"
)

func TestBuildDepsStaticProvider(t *testing.T) {
	cfg := config.Default()
	cfg.Provider.Kind = config.ProviderStatic
	cfg.Quiz.QuestionCount = 2

	d, err := buildDeps(context.Background(), cfg)
	if err != nil {
		t.Fatalf("build deps: %v", err)
	}
	defer d.Close()

	categories, err := d.service.Categories(context.Background())
	if err != nil || len(categories) != 2 {
		t.Fatalf("expected sample categories, got %+v err=%v", categories, err)
	}
	engine := d.sessions.Create("s1")
	if err := d.service.Start(context.Background(), engine, "9"); err != nil {
		t.Fatalf("start: %v", err)
	}
	if got := engine.Snapshot().Total; got != 2 {
		t.Fatalf("expected 2 questions, got %d", got)
	}
}

func TestBuildDepsUsesRedisWhenConfigured(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := config.Default()
	cfg.Provider.Kind = config.ProviderStatic
	cfg.Redis.Addr = mr.Addr()

	d, err := buildDeps(context.Background(), cfg)
	if err != nil {
		t.Fatalf("build deps: %v", err)
	}
	defer d.Close()

	if _, ok := d.sessions.(*redisinfra.SessionStore); !ok {
		t.Fatalf("expected redis session store, got %T", d.sessions)
	}
	if _, err := d.service.Categories(context.Background()); err != nil {
		t.Fatalf("categories: %v", err)
	}
	if got := mr.HGet("quizzler:categories", "9"); got != "General Knowledge" {
		t.Fatalf("expected categories cached in redis, got %q", got)
	}
}

func TestBuildDepsRejectsBadProvider(t *testing.T) {
	cfg := config.Default()
	cfg.Provider.Kind = "carrier-pigeon"
	if _, err := buildDeps(context.Background(), cfg); err == nil {
		t.Fatalf("expected unknown provider error")
	}

	cfg.Provider.Kind = config.ProviderPostgres
	cfg.Postgres.URL = ""
	if _, err := buildDeps(context.Background(), cfg); err == nil {
		t.Fatalf("expected missing postgres url error")
	}
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"start", "play", "migrate", "import"} {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Fatalf("expected %s subcommand, got %v err=%v", name, cmd, err)
		}
	}
}

func TestListenPort(t *testing.T) {
	cfg := config.Default()
	cfg.Server.Port = "9000"
	if got := listenPort("7000", cfg); got != "7000" {
		t.Fatalf("flag should win, got %s", got)
	}
	if got := listenPort("", cfg); got != "9000" {
		t.Fatalf("config port expected, got %s", got)
	}
	cfg.Server.Port = ""
	if got := listenPort("", cfg); got != "8080" {
		t.Fatalf("default port expected, got %s", got)
	}
}

func TestMuxServesHealthAndCategories(t *testing.T) {
	cfg := config.Default()
	cfg.Provider.Kind = config.ProviderStatic
	d, err := buildDeps(context.Background(), cfg)
	if err != nil {
		t.Fatalf("build deps: %v", err)
	}
	defer d.Close()

	server := httptest.NewServer(newMux(d.service, d.sessions))
	defer server.Close()

	for _, path := range []string{"/healthz", "/api/categories"} {
		resp, err := http.Get(server.URL + path)
		if err != nil {
			t.Fatalf("get %s: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, resp.StatusCode)
		}
	}
}
