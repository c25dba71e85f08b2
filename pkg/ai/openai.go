package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	generationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "ludika",
		Subsystem: "ai",
		Name:      "generation_duration_seconds",
		Help:      "Duration of text generation requests",
	}, []string{"model"})

	generationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ludika",
		Subsystem: "ai",
		Name:      "generation_failures_total",
		Help:      "Number of text generation failures",
	}, []string{"model"})
)

// OpenAIConfig defines configuration options for the OpenAI text generator.
type OpenAIConfig struct {
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float32
	Logger      zerolog.Logger
}

// OpenAIGenerator implements TextGenerator against the OpenAI chat completion API.
type OpenAIGenerator struct {
	client *openai.Client
	cfg    OpenAIConfig
	tracer trace.Tracer
	logger zerolog.Logger
}

// NewOpenAIGenerator builds a new generator using the provided configuration.
func NewOpenAIGenerator(cfg OpenAIConfig) (*OpenAIGenerator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}

	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}

	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 768
	}

	tracer := otel.Tracer("github.com/ludika/ludika-api/pkg/ai/openai")
	logger := cfg.Logger
	if logger.GetLevel() == zerolog.Disabled {
		logger = zerolog.Nop()
	}

	config := openai.DefaultConfig(cfg.APIKey)
	client := openai.NewClientWithConfig(config)

	return &OpenAIGenerator{
		client: client,
		cfg:    cfg,
		tracer: tracer,
		logger: logger,
	}, nil
}

// GenerateText sends the prompt to OpenAI and returns the generated prose.
func (g *OpenAIGenerator) GenerateText(parent context.Context, prompt string) (Generation, error) {
	ctx, span := g.tracer.Start(parent, "openai.generate", trace.WithAttributes(
		attribute.String("model", g.cfg.Model),
	))
	defer span.End()

	start := time.Now()
	request := openai.ChatCompletionRequest{
		Model:       g.cfg.Model,
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: reporterSystemPrompt(),
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	}

	resp, err := g.client.CreateChatCompletion(ctx, request)
	duration := time.Since(start)
	generationDuration.WithLabelValues(g.cfg.Model).Observe(duration.Seconds())
	if err != nil {
		generationFailures.WithLabelValues(g.cfg.Model).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Generation{}, fmt.Errorf("openai generate: %w", err)
	}

	if len(resp.Choices) == 0 {
		err := fmt.Errorf("no choices returned from openai")
		generationFailures.WithLabelValues(g.cfg.Model).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Generation{}, err
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		err := fmt.Errorf("empty completion returned from openai")
		generationFailures.WithLabelValues(g.cfg.Model).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Generation{}, err
	}

	return Generation{
		Text:     text,
		Provider: "openai",
		Model:    g.cfg.Model,
	}, nil
}

func reporterSystemPrompt() string {
	return "You are an assistant that writes short progress reports for teachers about how a student is doing in " +
		"educational mini-games. Write warm, factual prose grounded strictly in the numbers provided. Do not invent metrics."
}
