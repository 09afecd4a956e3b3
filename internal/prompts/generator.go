package prompts

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/Heyymant/Uncommon/internal/config"
)

const deepseekBaseURL = "https://api.deepseek.com/v1"

// Generator produces game prompts. When an API key is configured it asks
// the chat-completion API; any failure, timeout or malformed reply falls
// back to the curated lists so game flow never blocks on the collaborator.
type Generator struct {
	client   *openai.Client
	provider string
	model    string
	timeout  time.Duration
	logger   *slog.Logger
}

// NewGenerator creates a generator from AI configuration. With no API key
// the generator serves fallback prompts only.
func NewGenerator(cfg config.AIConfig, logger *slog.Logger) *Generator {
	g := &Generator{
		provider: cfg.Provider,
		model:    openai.GPT3Dot5Turbo,
		timeout:  cfg.RequestTimeout,
		logger:   logger,
	}

	if cfg.APIKey == "" {
		logger.Info("no AI API key configured, using fallback prompts")
		return g
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.Provider == "deepseek" {
		clientCfg.BaseURL = deepseekBaseURL
		g.model = "deepseek-chat"
	}
	g.client = openai.NewClientWithConfig(clientCfg)
	return g
}

// Configured reports whether the AI collaborator is available
func (g *Generator) Configured() bool {
	return g.client != nil
}

// Provider returns the configured provider name
func (g *Generator) Provider() string {
	return g.provider
}

// Generate returns count prompts for the category. It never fails: every
// error path returns curated fallback prompts instead.
func (g *Generator) Generate(ctx context.Context, category string, count int) []string {
	if count <= 0 {
		count = 5
	}
	if g.client == nil {
		return Fallback(category, count)
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt(category, count)},
		},
		Temperature:      1.2,
		TopP:             0.95,
		MaxTokens:        600,
		PresencePenalty:  0.6,
		FrequencyPenalty: 0.6,
	})
	if err != nil {
		g.logger.Warn("AI prompt generation failed", "error", err, "category", category)
		return Fallback(category, count)
	}
	if len(resp.Choices) == 0 {
		return Fallback(category, count)
	}

	generated, err := parsePromptList(resp.Choices[0].Message.Content)
	if err != nil {
		g.logger.Warn("could not parse AI response", "error", err)
		return Fallback(category, count)
	}

	cleaned := make([]string, 0, count)
	for _, p := range generated {
		p = strings.TrimSpace(p)
		if len(p) > 5 && len(p) < 100 {
			cleaned = append(cleaned, p)
		}
		if len(cleaned) == count {
			break
		}
	}

	// Top up from the curated lists when the model came up short
	if len(cleaned) < count {
		cleaned = append(cleaned, Fallback(category, count-len(cleaned))...)
	}
	return cleaned
}

// parsePromptList extracts the JSON string array from a model reply that
// may wrap it in prose or a code fence.
func parsePromptList(content string) ([]string, error) {
	start := strings.Index(content, "[")
	end := strings.LastIndex(content, "]")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON array in response")
	}

	var prompts []string
	if err := json.Unmarshal([]byte(content[start:end+1]), &prompts); err != nil {
		return nil, err
	}
	return prompts, nil
}

const systemPrompt = `You are a creative prompt generator for a party word game where players answer each prompt with a word starting with a given letter.

RULES:
1. Each prompt MUST have MANY possible correct answers (not just one)
2. Make them fun, relatable and conversation-sparking
3. Mix pop culture, office life, everyday situations and smart references
4. Avoid generic or boring prompts
5. Be creative and unexpected`

func userPrompt(category string, count int) string {
	theme, ok := categoryThemes[category]
	if !ok {
		theme = categoryThemes["mixed"]
	}
	return fmt.Sprintf(`Generate exactly %d unique, fresh prompts for: %s

Each prompt should have many possible correct answers. Examples of the style (do NOT copy these, create new ones):
- "A character from The Office (US)"
- "Something found in an office"
- "An excuse for being late"
- "A way to get from here to there"

Return ONLY a JSON array of %d unique strings.`, count, theme, count)
}

var categoryThemes = map[string]string{
	"mixed":      "a diverse mix of pop culture, office life, everyday situations and relatable topics",
	"easy":       "fun, universally known topics like TV characters, food, streaming shows and social media",
	"tricky":     "challenging intellectual topics like scientists, logical fallacies and niche references",
	"party":      "party and nightlife topics like cocktails, drinking games, party songs and social situations",
	"popculture": "TV shows, blockbuster movies, viral memes, streaming series and celebrity culture",
	"adulting":   "relatable adult life struggles like work excuses, errands and things people deal with",
	"tech":       "technology, internet culture, startups, apps and things that live on social media",
	"food":       "foodie culture, late-night cravings, guilty pleasures and comfort foods",
}
