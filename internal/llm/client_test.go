package llm

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap"
)

// fakeModel returns a canned reply or error
type fakeModel struct {
	reply string
	err   error
}

func (f *fakeModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: f.reply}},
	}, nil
}

func newTestClient(model completer) *Client {
	return &Client{model: model, timeout: time.Second, logger: zap.NewNop()}
}

func TestModerate(t *testing.T) {
	tests := []struct {
		name         string
		reply        string
		err          error
		wantApproved bool
		wantPrefix   string
	}{
		{
			name:         "approved",
			reply:        "APPROVED",
			wantApproved: true,
			wantPrefix:   "APPROVED",
		},
		{
			name:         "approved with trailing text",
			reply:        "APPROVED - this content is kind and supportive",
			wantApproved: true,
			wantPrefix:   "APPROVED",
		},
		{
			name:         "approved with surrounding whitespace",
			reply:        "  APPROVED\n",
			wantApproved: true,
			wantPrefix:   "APPROVED",
		},
		{
			name:         "needs review",
			reply:        "NEEDS_REVIEW: contains medical advice",
			wantApproved: false,
			wantPrefix:   "NEEDS_REVIEW:",
		},
		{
			name:         "unexpected reply is not approval",
			reply:        "I think this is fine",
			wantApproved: false,
			wantPrefix:   "I think",
		},
		{
			name:         "service failure fails closed",
			err:          errors.New("connection refused"),
			wantApproved: false,
			wantPrefix:   "NEEDS_REVIEW: AI moderation unavailable - connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(&fakeModel{reply: tt.reply, err: tt.err})
			decision := client.Moderate(context.Background(), "some forum content")

			if decision.Approved != tt.wantApproved {
				t.Errorf("Moderate() approved = %v, want %v", decision.Approved, tt.wantApproved)
			}
			if !strings.HasPrefix(decision.Result, tt.wantPrefix) {
				t.Errorf("Moderate() result = %q, want prefix %q", decision.Result, tt.wantPrefix)
			}
		})
	}
}

func TestModerateWithoutModelFailsClosed(t *testing.T) {
	client := &Client{timeout: time.Second, initErr: errors.New("missing token"), logger: zap.NewNop()}
	decision := client.Moderate(context.Background(), "content")

	if decision.Approved {
		t.Error("Moderate() without a model must not approve")
	}
	if !strings.HasPrefix(decision.Result, "NEEDS_REVIEW: AI moderation unavailable - ") {
		t.Errorf("Moderate() result = %q, want unavailable prefix", decision.Result)
	}
}

func TestGenerateBlogPost(t *testing.T) {
	longContent := strings.Repeat("Every small step in the NICU matters. ", 20)
	client := newTestClient(&fakeModel{reply: longContent})

	post, err := client.GenerateBlogPost(context.Background(), "kangaroo care")
	if err != nil {
		t.Fatalf("GenerateBlogPost() error = %v", err)
	}

	if post.Title != "kangaroo care" {
		t.Errorf("GenerateBlogPost() title = %q, want topic", post.Title)
	}
	if post.Content != longContent {
		t.Error("GenerateBlogPost() content does not match model reply")
	}
	if len([]rune(post.Excerpt)) != 203 {
		t.Errorf("GenerateBlogPost() excerpt length = %d, want 200 runes plus ellipsis", len([]rune(post.Excerpt)))
	}
	if !strings.HasSuffix(post.Excerpt, "...") {
		t.Errorf("GenerateBlogPost() excerpt %q missing ellipsis", post.Excerpt)
	}
}

func TestGenerateBlogPostError(t *testing.T) {
	client := newTestClient(&fakeModel{err: errors.New("rate limited")})

	if _, err := client.GenerateBlogPost(context.Background(), "topic"); err == nil {
		t.Fatal("GenerateBlogPost() should propagate model errors")
	}
}

func TestExcerptShortContent(t *testing.T) {
	if got := excerpt("short", 200); got != "short..." {
		t.Errorf("excerpt() = %q, want %q", got, "short...")
	}
}
