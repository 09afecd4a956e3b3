package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "3001", cfg.Server.Port)
	assert.Equal(t, 3, cfg.Game.Rounds)
	assert.Equal(t, 60*time.Second, cfg.Game.TimeLimit)
	assert.Equal(t, 5, cfg.Game.PromptsCount)
	assert.Equal(t, 10, cfg.Game.MaxPlayers)
	assert.Equal(t, 2, cfg.Game.MinNameLength)
	assert.Equal(t, 2*time.Hour, cfg.Game.StaleRoomTTL)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("ROUNDS", "5")
	t.Setenv("ROUND_TIME_LIMIT_SECONDS", "90")
	t.Setenv("ENV", "production")

	cfg := Load()

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, 5, cfg.Game.Rounds)
	assert.Equal(t, 90*time.Second, cfg.Game.TimeLimit)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "0.0.0.0:9000", cfg.GetAddr())
}

func TestLoad_InvalidIntFallsBack(t *testing.T) {
	t.Setenv("ROUNDS", "not-a-number")
	cfg := Load()
	assert.Equal(t, 3, cfg.Game.Rounds)
}

func TestAIKeyLookup(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-openai")
	t.Setenv("DEEPSEEK_API_KEY", "sk-deepseek")

	cfg := Load()
	assert.Equal(t, "sk-openai", cfg.AI.APIKey, "the first set key wins")
}
