// Package builder assembles the application from configuration: database,
// repositories, LLM gateway, usecases, HTTP server and the Telegram bot.
package builder

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/jazmy/formchat/internal/api"
	chatapi "github.com/jazmy/formchat/internal/api/chat"
	formapi "github.com/jazmy/formchat/internal/api/form"
	"github.com/jazmy/formchat/internal/api/responseapi"
	sessionapi "github.com/jazmy/formchat/internal/api/session"
	"github.com/jazmy/formchat/internal/config"
	"github.com/jazmy/formchat/internal/entity"
	"github.com/jazmy/formchat/internal/integration/openai"
	"github.com/jazmy/formchat/internal/pkg/formatter"
	"github.com/jazmy/formchat/internal/pkg/validator"
	"github.com/jazmy/formchat/internal/repository"
	"github.com/jazmy/formchat/internal/telegram"
	telegrambot "github.com/jazmy/formchat/internal/telegram/bot"
	"github.com/jazmy/formchat/internal/usecase/chat"
	"github.com/jazmy/formchat/internal/usecase/conversation"
	"github.com/jazmy/formchat/internal/usecase/form"
	"github.com/jazmy/formchat/internal/usecase/output"
	"github.com/jazmy/formchat/internal/usecase/response"
	"github.com/jazmy/formchat/internal/usecase/validation"
)

// core holds everything both binaries share.
type core struct {
	cfg    *config.Config
	logger *zap.Logger
	db     *pgxpool.Pool

	formUC         *form.FormUsecase
	responseUC     *response.ResponseUsecase
	chatUC         *chat.Usecase
	validationUC   *validation.Validator
	outputUC       *output.Generator
	conversationUC *conversation.Usecase
}

func buildCore(ctx context.Context) (*core, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
	)

	db, err := setupDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("setup database: %w", err)
	}

	logger.Info("Running database migrations")
	if err := repository.RunMigrations(cfg.DatabaseURL); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("Database migrations completed successfully")

	formRepo := repository.NewFormPostgres(db)
	responseRepo := repository.NewResponsePostgres(db)
	settingsRepo := repository.NewSettingsPostgres(db)
	logger.Info("Repositories initialized")

	applySettings(ctx, settingsRepo, cfg, logger)

	var gateway openai.Gateway
	if cfg.EnableMocks {
		logger.Info("Using mock LLM gateway")
		gateway = openai.NewMockGateway(logger)
	} else {
		gateway = openai.NewConnector(cfg.OpenAICfg, logger)
	}

	v := validator.NewValidator()

	formUC := form.NewUsecase(formRepo, v, logger)
	responseUC := response.NewUsecase(responseRepo, formRepo, formatter.NewFactory(), v, logger)
	chatUC := chat.NewUsecase(gateway, logger)
	validationUC := validation.NewValidator(gateway, logger)
	outputUC := output.NewGenerator(gateway, logger)

	conversationUC := conversation.NewUsecase(
		formUC,
		responseUC,
		validationUC,
		outputUC,
		chatUC,
		conversation.NewStore(cfg.SessionTTL),
		logger,
	)
	logger.Info("Use cases initialized")

	return &core{
		cfg:            cfg,
		logger:         logger,
		db:             db,
		formUC:         formUC,
		responseUC:     responseUC,
		chatUC:         chatUC,
		validationUC:   validationUC,
		outputUC:       outputUC,
		conversationUC: conversationUC,
	}, nil
}

// Build assembles the HTTP API application.
func Build() (*App, error) {
	ctx := context.Background()

	c, err := buildCore(ctx)
	if err != nil {
		return nil, err
	}

	v := validator.NewValidator()
	formHandler := formapi.NewHandler(c.formUC, c.validationUC, c.outputUC, c.chatUC, v)
	responseHandler := responseapi.NewHandler(c.responseUC)
	chatHandler := chatapi.NewHandler(c.chatUC, v)
	sessionHandler := sessionapi.NewHandler(c.conversationUC, v)
	c.logger.Info("API handlers initialized")

	router := api.SetupRouter(formHandler, responseHandler, chatHandler, sessionHandler, c.logger)
	c.logger.Info("HTTP router configured")

	server := &http.Server{
		Addr:         c.cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 150 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	c.logger.Info("Application built successfully",
		zap.String("environment", c.cfg.Environment),
	)

	return &App{
		server: server,
		db:     c.db,
		logger: c.logger,
	}, nil
}

// BuildTelegramBot assembles the Telegram bot binary.
func BuildTelegramBot() (*telegrambot.Bot, *zap.Logger, error) {
	ctx := context.Background()

	c, err := buildCore(ctx)
	if err != nil {
		return nil, nil, err
	}

	bot, err := telegram.NewBot(c.cfg, telegrambot.Deps{
		Conversations: c.conversationUC,
		Forms:         c.formUC,
		Side:          c.chatUC,
		Exporter:      c.responseUC,
	}, c.logger)
	if err != nil {
		c.db.Close()
		return nil, nil, fmt.Errorf("initialize telegram bot: %w", err)
	}

	c.logger.Info("Telegram bot built successfully",
		zap.String("environment", c.cfg.Environment),
	)

	return bot, c.logger, nil
}

var allProfiles = []entity.Profile{
	entity.ProfileChat,
	entity.ProfileConversational,
	entity.ProfileValidation,
	entity.ProfileGuidance,
	entity.ProfileWelcome,
	entity.ProfileOutput,
}

// applySettings overlays database-stored settings onto the loaded
// config. Settings are read once at startup; a missing or malformed row
// leaves the configured value in place.
func applySettings(ctx context.Context, settings repository.SettingsRepository, cfg *config.Config, logger *zap.Logger) {
	all, err := settings.GetAll(ctx)
	if err != nil {
		logger.Warn("failed to read settings, using configured defaults", zap.Error(err))
		return
	}
	if len(all) == 0 {
		return
	}

	if cfg.OpenAICfg.Models == nil {
		cfg.OpenAICfg.Models = make(map[string]string)
	}
	if cfg.OpenAICfg.MaxTokens == nil {
		cfg.OpenAICfg.MaxTokens = make(map[string]int)
	}
	if cfg.OpenAICfg.Temperatures == nil {
		cfg.OpenAICfg.Temperatures = make(map[string]float64)
	}

	if raw, ok := all[repository.SettingRequestsPerMinute]; ok {
		if rpm, err := strconv.Atoi(raw); err != nil || rpm < 1 {
			logger.Warn("ignoring malformed rate limit setting", zap.String("value", raw))
		} else {
			cfg.OpenAICfg.RequestsPerMinute = rpm
			logger.Info("rate limit overridden from settings", zap.Int("requests_per_minute", rpm))
		}
	}

	// The default model fills in profiles with no explicit override,
	// from env or from a per-profile setting row.
	if model, ok := all[repository.SettingDefaultModel]; ok && model != "" {
		for _, p := range allProfiles {
			if _, set := cfg.OpenAICfg.Models[string(p)]; !set {
				if _, rowSet := all[repository.SettingModelPrefix+string(p)]; !rowSet {
					cfg.OpenAICfg.Models[string(p)] = model
				}
			}
		}
		logger.Info("default model overridden from settings", zap.String("model", model))
	}

	for key, value := range all {
		switch {
		case strings.HasPrefix(key, repository.SettingModelPrefix):
			profile := strings.TrimPrefix(key, repository.SettingModelPrefix)
			cfg.OpenAICfg.Models[profile] = value
		case strings.HasPrefix(key, repository.SettingMaxTokensPrefix):
			profile := strings.TrimPrefix(key, repository.SettingMaxTokensPrefix)
			if tokens, err := strconv.Atoi(value); err != nil || tokens < 1 {
				logger.Warn("ignoring malformed max tokens setting", zap.String("key", key), zap.String("value", value))
			} else {
				cfg.OpenAICfg.MaxTokens[profile] = tokens
			}
		case strings.HasPrefix(key, repository.SettingTemperaturePrefix):
			profile := strings.TrimPrefix(key, repository.SettingTemperaturePrefix)
			if temp, err := strconv.ParseFloat(value, 64); err != nil || temp < 0 || temp > 2 {
				logger.Warn("ignoring malformed temperature setting", zap.String("key", key), zap.String("value", value))
			} else {
				cfg.OpenAICfg.Temperatures[profile] = temp
			}
		}
	}
}
