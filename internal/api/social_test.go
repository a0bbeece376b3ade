package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/prematurebabys/community/internal/social"
	"github.com/prematurebabys/community/pkg/config"
)

func newTestEngine() (*gin.Engine, *SocialAPI) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	api := NewSocialAPI(social.NewRelay(config.SocialConfig{}))
	return engine, api
}

func TestPostValidation(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode int
		wantErr  string
	}{
		{
			name:     "missing content",
			body:     `{"platforms": ["facebook"]}`,
			wantCode: http.StatusBadRequest,
			wantErr:  "Content is required",
		},
		{
			name:     "missing platforms",
			body:     `{"content": "hello"}`,
			wantCode: http.StatusBadRequest,
			wantErr:  "At least one platform must be specified",
		},
		{
			name:     "malformed body",
			body:     `{not json`,
			wantCode: http.StatusBadRequest,
			wantErr:  "invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, api := newTestEngine()
			engine.POST("/social-media/post", api.Post)

			req := httptest.NewRequest(http.MethodPost, "/social-media/post", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			engine.ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantCode)
			}

			var payload map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
				t.Fatalf("unmarshal response: %v", err)
			}
			if payload["error"] != tt.wantErr {
				t.Errorf("error = %q, want %q", payload["error"], tt.wantErr)
			}
		})
	}
}

func TestScheduleEchoesRequest(t *testing.T) {
	engine, api := newTestEngine()
	engine.POST("/social-media/schedule", api.Schedule)

	body := `{"content": "hi", "platforms": ["facebook"], "schedule_time": "2026-09-01T12:00:00Z"}`
	req := httptest.NewRequest(http.MethodPost, "/social-media/schedule", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var payload struct {
		Success       bool `json:"success"`
		ScheduledPost struct {
			Content      string `json:"content"`
			Status       string `json:"status"`
			ScheduleTime string `json:"schedule_time"`
		} `json:"scheduled_post"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if !payload.Success {
		t.Error("success = false, want true")
	}
	if payload.ScheduledPost.Status != "scheduled" {
		t.Errorf("status = %q, want %q", payload.ScheduledPost.Status, "scheduled")
	}
	if payload.ScheduledPost.Content != "hi" {
		t.Errorf("content = %q, want %q", payload.ScheduledPost.Content, "hi")
	}
	if payload.ScheduledPost.ScheduleTime != "2026-09-01T12:00:00Z" {
		t.Errorf("schedule_time = %q", payload.ScheduledPost.ScheduleTime)
	}
}

func TestScheduleRequiresAllFields(t *testing.T) {
	engine, api := newTestEngine()
	engine.POST("/social-media/schedule", api.Schedule)

	req := httptest.NewRequest(http.MethodPost, "/social-media/schedule",
		strings.NewReader(`{"content": "hi", "platforms": ["facebook"]}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if !strings.Contains(rec.Body.String(), "Content, platforms, and schedule_time are required") {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestGenerateContentDefaults(t *testing.T) {
	engine, api := newTestEngine()
	engine.POST("/social-media/generate-content", api.GenerateContent)

	req := httptest.NewRequest(http.MethodPost, "/social-media/generate-content",
		strings.NewReader(`{"topic": "kangaroo care"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var payload struct {
		Content  string   `json:"content"`
		Hashtags []string `json:"hashtags"`
		Platform string   `json:"platform"`
		Tone     string   `json:"tone"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if payload.Platform != "general" {
		t.Errorf("platform = %q, want %q", payload.Platform, "general")
	}
	if payload.Tone != "supportive" {
		t.Errorf("tone = %q, want %q", payload.Tone, "supportive")
	}
	if !strings.Contains(payload.Content, "kangaroo care") {
		t.Errorf("content does not mention topic: %s", payload.Content)
	}
	if len(payload.Hashtags) == 0 {
		t.Error("expected hashtags")
	}
}

func TestTestConnectionUnknownPlatform(t *testing.T) {
	engine, api := newTestEngine()
	engine.GET("/social-media/test-connection/:platform", api.TestConnection)

	req := httptest.NewRequest(http.MethodGet, "/social-media/test-connection/myspace", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if !strings.Contains(rec.Body.String(), "Unknown platform: myspace") {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}
