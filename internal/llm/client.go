package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
	"go.uber.org/zap"

	"github.com/prematurebabys/community/pkg/config"
	"github.com/prematurebabys/community/pkg/logging"
	"github.com/prematurebabys/community/pkg/telemetry"
)

const moderationSystemPrompt = "You are a compassionate content moderator for a support forum for families " +
	"with premature babies. Your role is to ensure all content is supportive, appropriate, and maintains a " +
	"safe space for vulnerable families. Check if the content is: 1) Supportive and kind, 2) Appropriate " +
	"for families in crisis, 3) Free from harmful advice, 4) Respectful of different experiences. Respond " +
	"with 'APPROVED' if the content is appropriate, or 'NEEDS_REVIEW: [reason]' if it needs human review."

const writerSystemPrompt = "You are a compassionate expert writer specializing in premature baby health and " +
	"support. Your writing should be deeply empathetic, understanding that parents reading this are likely " +
	"experiencing fear, uncertainty, and overwhelming emotions. Write with warmth, hope, and genuine care. " +
	"Provide practical advice while acknowledging the emotional journey. Always include reassurance and " +
	"remind parents that they are not alone in this experience."

// completer is the slice of the langchaingo model surface the client needs
type completer interface {
	GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error)
}

// Client calls the text-completion service for moderation and content
// generation
type Client struct {
	model   completer
	timeout time.Duration
	logger  *zap.Logger

	// initErr is remembered when the underlying model could not be built, so
	// moderation can fail closed instead of the server refusing to boot.
	initErr error
}

// New creates a completion client from configuration
func New(cfg *config.LLMConfig) *Client {
	c := &Client{
		timeout: cfg.Timeout,
		logger:  logging.WithComponent("llm"),
	}

	opts := []openai.Option{
		openai.WithToken(cfg.APIKey),
		openai.WithModel(cfg.Model),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}

	model, err := openai.New(opts...)
	if err != nil {
		c.initErr = err
		c.logger.Warn("Completion client unavailable", zap.Error(err))
		return c
	}
	c.model = model
	return c
}

// Decision is the outcome of a moderation check
type Decision struct {
	Approved bool
	Result   string
}

// Moderate reviews user-submitted forum content. Approval requires the model
// reply to begin with "APPROVED"; any failure, including timeout, yields a
// needs-review decision. Fail-closed: content is never auto-published on an
// ambiguous or failed evaluation.
func (c *Client) Moderate(ctx context.Context, content string) Decision {
	ctx, span := telemetry.StartSpan(ctx, "llm.moderate")
	defer span.End()

	reply, err := c.complete(ctx, moderationSystemPrompt,
		"Please review this forum post content: "+content, 100)
	if err != nil {
		c.logger.Warn("Moderation unavailable, defaulting to human review", zap.Error(err))
		return Decision{
			Approved: false,
			Result:   "NEEDS_REVIEW: AI moderation unavailable - " + err.Error(),
		}
	}

	reply = strings.TrimSpace(reply)
	return Decision{
		Approved: strings.HasPrefix(reply, "APPROVED"),
		Result:   reply,
	}
}

// GeneratedPost is the output of blog content generation
type GeneratedPost struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Excerpt string `json:"excerpt"`
}

// GenerateBlogPost writes a blog post about the given topic. Unlike
// moderation, failures propagate to the caller.
func (c *Client) GenerateBlogPost(ctx context.Context, topic string) (*GeneratedPost, error) {
	ctx, span := telemetry.StartSpan(ctx, "llm.generate_blog_post")
	defer span.End()

	prompt := fmt.Sprintf("Write a detailed, compassionate blog post about: %s. "+
		"Address both the practical and emotional aspects. Include expert insights, but deliver them "+
		"with warmth and understanding. Make it around 1000-1500 words, and ensure it provides both "+
		"information and emotional support for NICU families.", topic)

	content, err := c.complete(ctx, writerSystemPrompt, prompt, 2000)
	if err != nil {
		return nil, err
	}

	return &GeneratedPost{
		Title:   topic,
		Content: content,
		Excerpt: excerpt(content, 200),
	}, nil
}

// excerpt truncates content to n runes with a trailing ellipsis
func excerpt(content string, n int) string {
	runes := []rune(content)
	if len(runes) <= n {
		return content + "..."
	}
	return string(runes[:n]) + "..."
}

func (c *Client) complete(ctx context.Context, system, user string, maxTokens int) (string, error) {
	if c.model == nil {
		if c.initErr != nil {
			return "", c.initErr
		}
		return "", fmt.Errorf("completion client not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	messages := []llms.MessageContent{
		llms.TextParts(schema.ChatMessageTypeSystem, system),
		llms.TextParts(schema.ChatMessageTypeHuman, user),
	}

	resp, err := c.model.GenerateContent(ctx, messages, llms.WithMaxTokens(maxTokens))
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("completion returned no choices")
	}
	return resp.Choices[0].Content, nil
}
