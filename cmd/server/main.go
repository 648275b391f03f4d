package main

import (
	"context"
	"log/slog"
	"os"

	"boardhub/internal/auth"
	"boardhub/internal/config"
	"boardhub/internal/db"
	"boardhub/internal/handlers"
	"boardhub/internal/httpserver"
	"boardhub/internal/router"
	"boardhub/internal/services"
	"boardhub/internal/store"
	"boardhub/internal/uow"
	"boardhub/internal/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	conf, err := config.New(".env")
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: conf.SlogLevel()}))
	slog.SetDefault(logger)

	if err := run(conf, logger); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run(conf *config.Config, logger *slog.Logger) error {
	isolation, err := uow.ParseIsolation(conf.Isolation)
	if err != nil {
		return err
	}

	gdb, err := db.Open(conf.Postgres.URL, conf.MaxOpenConns, logger)
	if err != nil {
		return err
	}
	if err := db.Migrate(gdb); err != nil {
		return err
	}

	cache, err := utils.NewCache(conf.Cache.Size)
	if err != nil {
		return err
	}

	tokens := auth.NewJWT(conf.Auth.Secret, conf.Auth.Issuer, conf.Auth.TTL)
	units := uow.NewGormFactory(gdb, isolation, logger)
	posts := store.GormPosts{}

	boards := services.NewBoardService(gdb, tokens, posts, cache, conf.Cache.TTL, logger)
	recommends := services.NewRecommendService(units, tokens, posts, store.GormRecommends{}, cache, logger)
	comments := services.NewCommentService(gdb, tokens, store.GormComments{}, posts, logger)
	moderation := services.NewModerationService(gdb, units, tokens, posts, store.GormReports{}, cache, logger)
	mailer := services.NewMailService(conf.Mail, logger)
	google, err := googleVerifier(conf.Auth, logger)
	if err != nil {
		return err
	}
	users := services.NewUserService(gdb, store.GormUsers{}, mailer, tokens, google, bcrypt.DefaultCost, logger)

	gin.SetMode(gin.ReleaseMode)
	engine := router.New(router.Handlers{
		Board:   handlers.NewBoardHandler(boards, recommends),
		Comment: handlers.NewCommentHandler(comments),
		Report:  handlers.NewReportHandler(moderation),
		User:    handlers.NewUserHandler(users),
	}, conf.CORSOrigins, logger)

	return httpserver.New(conf.HTTPServer, engine, logger).Run(context.Background())
}

// googleVerifier fetches Google's signing keys when a client id is configured. Without
// one, Google sign-in refuses every token.
func googleVerifier(conf config.Auth, logger *slog.Logger) (*auth.GoogleVerifier, error) {
	if conf.GoogleClientID == "" {
		logger.Warn("google sign-in disabled: GOOGLE_CLIENT_ID not set")
		return auth.NewGoogleVerifier("", nil), nil
	}

	keys, err := auth.NewGoogleKeySet(context.Background(), conf.GoogleCertsURL)
	if err != nil {
		return nil, err
	}
	return auth.NewGoogleVerifier(conf.GoogleClientID, keys), nil
}
