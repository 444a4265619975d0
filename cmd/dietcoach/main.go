package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"

	adapthttp "dietcoach/internal/adapter/http"
	"dietcoach/internal/adapter/memory"
	"dietcoach/internal/adapter/postgres"
	"dietcoach/internal/app"
	"dietcoach/internal/domain"
	"dietcoach/internal/guide"

	"golang.org/x/oauth2"

	"github.com/coreos/go-oidc/v3/oidc"
)

type stores struct {
	profiles domain.ProfileRepository
	sessions domain.ChatSessionRepository
	weights  domain.WeightRepository
	ops      domain.OperatorRepository
	console  domain.ConsoleSessionRepository
	close    func() error
}

func main() {
	addr := env("ADDR", ":8080")

	st, err := openStores()
	if err != nil {
		log.Fatalf("store open: %v", err)
	}
	defer func() { _ = st.close() }()

	guides := guide.Default()
	if path := os.Getenv("GUIDE_FILE"); path != "" {
		guides, err = guide.Load(path)
		if err != nil {
			log.Fatalf("guide load: %v", err)
		}
	}

	coachCfg := app.DefaultCoachConfig()
	coachCfg.ResetPurgesHistory = os.Getenv("RESET_PURGES_HISTORY") == "true"

	plans := app.NewPlanService(app.DefaultPlanConfig())
	trends := app.NewTrendService(app.DefaultTrendConfig())
	suggests := app.NewSuggestService(app.DefaultSuggestConfig())
	coach := app.NewCoachService(st.profiles, st.sessions, st.weights, plans, trends, suggests, guides, coachCfg)
	authSvc := app.NewAuthService(st.ops, st.console)

	opts := []adapthttp.Option{}
	if secret := os.Getenv("CHANNEL_SECRET"); secret != "" {
		opts = append(opts, adapthttp.WithChannelSecret(secret))
	}
	if oidcCfg := openOIDC(); oidcCfg.Enabled {
		opts = append(opts, adapthttp.WithOIDC(oidcCfg))
	}

	h := adapthttp.New(coach, authSvc, plans, st.profiles, st.weights, opts...).Handler()
	log.Printf("listening on %s", addr)
	if err := http.ListenAndServe(addr, h); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

func openStores() (*stores, error) {
	if env("STORE", "postgres") == "memory" {
		db := memory.New()
		return &stores{
			profiles: db,
			sessions: db,
			weights:  db,
			ops:      db,
			console:  db.NewConsoleSessionRepo(),
			close:    func() error { return nil },
		}, nil
	}

	connStr := os.Getenv("DATABASE_URL")
	if connStr == "" {
		return nil, errors.New("DATABASE_URL is required (or set STORE=memory)")
	}
	db, err := postgres.Open(connStr)
	if err != nil {
		return nil, err
	}
	return &stores{
		profiles: db,
		sessions: db,
		weights:  db,
		ops:      db,
		console:  postgres.NewConsoleSessionRepo(db),
		close:    db.Close,
	}, nil
}

func openOIDC() adapthttp.OIDCConfig {
	issuer := os.Getenv("OIDC_ISSUER")
	if issuer == "" {
		return adapthttp.OIDCConfig{}
	}

	provider, err := oidc.NewProvider(context.Background(), issuer)
	if err != nil {
		log.Fatalf("oidc provider: %v", err)
	}
	return adapthttp.OIDCConfig{
		Enabled:  true,
		Provider: provider,
		OAuth2Config: &oauth2.Config{
			ClientID:     os.Getenv("OIDC_CLIENT_ID"),
			ClientSecret: os.Getenv("OIDC_CLIENT_SECRET"),
			RedirectURL:  os.Getenv("OIDC_REDIRECT_URL"),
			Endpoint:     provider.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID, "email", "profile"},
		},
	}
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
