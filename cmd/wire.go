package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/jumpypanter/serverforms/internal/adapters/identity/usercache"
	"github.com/jumpypanter/serverforms/internal/adapters/render/chat"
	"github.com/jumpypanter/serverforms/internal/adapters/repo/jsonfile"
	"github.com/jumpypanter/serverforms/internal/application"
	"github.com/jumpypanter/serverforms/internal/catalog"
	"github.com/jumpypanter/serverforms/internal/ports"
	"github.com/spf13/viper"
)

const (
	envPrefix = "SERVERFORMS"

	dataDirKey       = "data.dir"
	catalogPathKey   = "catalog.path"
	answersDirKey    = "answers.dir"
	userCachePathKey = "usercache.path"
	listenAddrKey    = "listen.addr"
)

var errPlayerRequired = errors.New("player name required: pass --player or set SERVERFORMS_PLAYER")

type app struct {
	catalog     *catalog.Catalog
	engine      *application.Engine
	viewer      *application.Viewer
	answers     ports.AnswerRepository
	resolver    ports.IdentityResolver
	logger      *slog.Logger
	listenAddr  string
	newNotifier func(io.Writer) ports.Notifier
}

func wireApp() (*app, error) {
	// A .env next to the binary is optional and only a convenience.
	_ = godotenv.Load()

	cfg := viper.New()
	cfg.SetEnvPrefix(envPrefix)
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()
	cfg.SetDefault(dataDirKey, ".")

	dataDir := cfg.GetString(dataDirKey)
	cfg.SetDefault(catalogPathKey, filepath.Join(dataDir, "config", "ServerForms.json"))
	cfg.SetDefault(answersDirKey, filepath.Join(dataDir, "FormAnswers"))
	cfg.SetDefault(userCachePathKey, filepath.Join(dataDir, "usercache.json"))
	cfg.SetDefault(listenAddrKey, ":8750")

	cfg.SetConfigName("serverforms")
	cfg.SetConfigType("toml")
	cfg.AddConfigPath(dataDir)
	if err := cfg.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read settings file: %w", err)
		}
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cat, err := catalog.Load(cfg.GetString(catalogPathKey), logger)
	if err != nil {
		return nil, fmt.Errorf("load form catalog: %w", err)
	}

	answers := jsonfile.NewRepository(cfg.GetString(answersDirKey), logger)
	resolver := usercache.NewCache(cfg.GetString(userCachePathKey))
	registry := application.NewSessionRegistry()

	return &app{
		catalog:    cat,
		engine:     application.NewEngine(registry, answers, cat, logger),
		viewer:     application.NewViewer(answers, resolver, cat, logger),
		answers:    answers,
		resolver:   resolver,
		logger:     logger,
		listenAddr: cfg.GetString(listenAddrKey),
		newNotifier: func(w io.Writer) ports.Notifier {
			return chat.NewRenderer(w)
		},
	}, nil
}
