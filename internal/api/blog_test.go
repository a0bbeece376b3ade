package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestGenerateContentRequiresTopic(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name:    "empty topic",
			body:    `{"topic": ""}`,
			wantErr: "Topic is required",
		},
		{
			name:    "topic absent",
			body:    `{}`,
			wantErr: "Topic is required",
		},
		{
			name:    "malformed body",
			body:    `{not json`,
			wantErr: "invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			engine := gin.New()
			// Validation rejects the request before the repository or the
			// completion client is touched.
			api := NewBlogAPI(nil, nil)
			engine.POST("/blog/generate", api.GenerateContent)

			req := httptest.NewRequest(http.MethodPost, "/blog/generate", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			engine.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
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
