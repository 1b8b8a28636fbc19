package builder

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/jazmy/formchat/internal/config"
	"github.com/jazmy/formchat/internal/entity"
)

type fakeSettings struct {
	rows map[string]string
	err  error
}

func (f *fakeSettings) Get(_ context.Context, key string) (string, error) {
	return f.rows[key], f.err
}

func (f *fakeSettings) GetAll(_ context.Context) (map[string]string, error) {
	return f.rows, f.err
}

func (f *fakeSettings) Set(_ context.Context, key, value string) error {
	if f.rows == nil {
		f.rows = make(map[string]string)
	}
	f.rows[key] = value
	return nil
}

func baseConfig() *config.Config {
	return &config.Config{
		OpenAICfg: config.OpenAIConfig{RequestsPerMinute: 20},
	}
}

func TestApplySettingsOverridesRateLimitAndModels(t *testing.T) {
	cfg := baseConfig()
	settings := &fakeSettings{rows: map[string]string{
		"gpt_rate_limit_per_minute": "5",
		"default_model":             "gpt-4o-mini",
		"model_OUTPUT":              "gpt-4o",
		"max_tokens_OUTPUT":         "2000",
		"temperature_VALIDATION":    "0.1",
	}}

	applySettings(context.Background(), settings, cfg, zap.NewNop())

	assert.Equal(t, 5, cfg.OpenAICfg.RequestsPerMinute)
	assert.Equal(t, "gpt-4o", cfg.OpenAICfg.ModelFor(entity.ProfileOutput))
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAICfg.ModelFor(entity.ProfileChat))
	assert.Equal(t, 2000, cfg.OpenAICfg.MaxTokensFor(entity.ProfileOutput))
	assert.Equal(t, 0.1, cfg.OpenAICfg.TemperatureFor(entity.ProfileValidation))
}

func TestApplySettingsIgnoresMalformedRows(t *testing.T) {
	cfg := baseConfig()
	settings := &fakeSettings{rows: map[string]string{
		"gpt_rate_limit_per_minute": "lots",
		"max_tokens_CHAT":           "-3",
		"temperature_CHAT":          "9.5",
	}}

	applySettings(context.Background(), settings, cfg, zap.NewNop())

	assert.Equal(t, 20, cfg.OpenAICfg.RequestsPerMinute)
	assert.Equal(t, config.DefaultMaxTokens, cfg.OpenAICfg.MaxTokensFor(entity.ProfileChat))
	assert.Equal(t, config.DefaultTemperature, cfg.OpenAICfg.TemperatureFor(entity.ProfileChat))
}

func TestApplySettingsSurvivesRepositoryFailure(t *testing.T) {
	cfg := baseConfig()
	settings := &fakeSettings{err: errors.New("db down")}

	applySettings(context.Background(), settings, cfg, zap.NewNop())

	assert.Equal(t, 20, cfg.OpenAICfg.RequestsPerMinute)
}
