package social

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/prematurebabys/community/pkg/config"
	"github.com/prematurebabys/community/pkg/logging"
	"github.com/prematurebabys/community/pkg/telemetry"
)

const (
	facebookAPIBase  = "https://graph.facebook.com/v18.0"
	instagramAPIBase = "https://graph.instagram.com/v18.0"
)

// Relay performs outbound calls against social platform APIs. Credentials are
// validated from the immutable config snapshot taken at construction; a
// platform with missing credentials is reported without touching the network.
type Relay struct {
	creds      config.SocialConfig
	httpClient *http.Client
	logger     *zap.Logger
}

// NewRelay creates a relay over the given credential set
func NewRelay(creds config.SocialConfig) *Relay {
	return &Relay{
		creds: creds,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logging.WithComponent("social-relay"),
	}
}

// missingVars returns the env var names a platform still needs
func (r *Relay) missingVars(platform Platform) []string {
	var missing []string
	switch platform {
	case PlatformFacebook:
		if r.creds.Facebook.AccessToken == "" {
			missing = append(missing, "FACEBOOK_ACCESS_TOKEN")
		}
		if r.creds.Facebook.PageID == "" {
			missing = append(missing, "FACEBOOK_PAGE_ID")
		}
	case PlatformInstagram:
		if r.creds.Instagram.AccessToken == "" {
			missing = append(missing, "INSTAGRAM_ACCESS_TOKEN")
		}
		if r.creds.Instagram.UserID == "" {
			missing = append(missing, "INSTAGRAM_USER_ID")
		}
	case PlatformTikTok:
		if r.creds.TikTok.ClientKey == "" {
			missing = append(missing, "TIKTOK_CLIENT_KEY")
		}
		if r.creds.TikTok.ClientSecret == "" {
			missing = append(missing, "TIKTOK_CLIENT_SECRET")
		}
		if r.creds.TikTok.AccessToken == "" {
			missing = append(missing, "TIKTOK_ACCESS_TOKEN")
		}
	}
	return missing
}

// CheckCredentials reports whether a platform is fully configured
func (r *Relay) CheckCredentials(platform Platform) (bool, string) {
	if _, err := ParsePlatform(string(platform)); err != nil {
		return false, err.Error()
	}
	if missing := r.missingVars(platform); len(missing) > 0 {
		return false, "Missing environment variables: " + strings.Join(missing, ", ")
	}
	return true, "All credentials available"
}

// PlatformStatus describes one platform's configuration state
type PlatformStatus struct {
	Configured  bool   `json:"configured"`
	Message     string `json:"message"`
	LastChecked string `json:"last_checked"`
}

// Status reports the configuration state of every platform
func (r *Relay) Status() map[string]PlatformStatus {
	now := time.Now().UTC().Format(time.RFC3339)
	status := make(map[string]PlatformStatus, len(Platforms))
	for _, platform := range Platforms {
		configured, message := r.CheckCredentials(platform)
		status[string(platform)] = PlatformStatus{
			Configured:  configured,
			Message:     message,
			LastChecked: now,
		}
	}
	return status
}

// PostResult is the normalized outcome of posting to one platform
type PostResult struct {
	Success  bool   `json:"success"`
	PostID   string `json:"post_id,omitempty"`
	Platform string `json:"platform,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Post publishes content to each requested platform independently. One
// platform failing does not block the others.
func (r *Relay) Post(ctx context.Context, content, mediaURL string, platforms []string) map[string]PostResult {
	results := make(map[string]PostResult, len(platforms))
	for _, name := range platforms {
		platform, err := ParsePlatform(name)
		if err != nil {
			results[name] = PostResult{Success: false, Error: err.Error()}
			continue
		}

		var result PostResult
		switch platform {
		case PlatformFacebook:
			result = r.postToFacebook(ctx, content, mediaURL)
		case PlatformInstagram:
			result = r.postToInstagram(ctx, content, mediaURL)
		case PlatformTikTok:
			result = r.postToTikTok(ctx)
		}
		results[name] = result

		if !result.Success {
			r.logger.Warn("Social post failed",
				zap.String("platform", name),
				zap.String("error", result.Error))
		}
	}
	return results
}

type graphResponse struct {
	ID string `json:"id"`
}

// postForm issues a form POST and decodes the Graph-style {"id": ...} reply
func (r *Relay) postForm(ctx context.Context, endpoint string, form url.Values) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
	}

	var parsed graphResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("unexpected response: %s", string(body))
	}
	return parsed.ID, nil
}

func (r *Relay) postToFacebook(ctx context.Context, content, mediaURL string) PostResult {
	if configured, message := r.CheckCredentials(PlatformFacebook); !configured {
		return PostResult{Success: false, Error: message}
	}

	ctx, span := telemetry.StartSpan(ctx, "social.facebook.post")
	defer span.End()

	form := url.Values{
		"message":      {content},
		"access_token": {r.creds.Facebook.AccessToken},
	}
	if mediaURL != "" {
		form.Set("link", mediaURL)
	}

	endpoint := fmt.Sprintf("%s/%s/feed", facebookAPIBase, r.creds.Facebook.PageID)
	postID, err := r.postForm(ctx, endpoint, form)
	if err != nil {
		return PostResult{Success: false, Error: "Facebook API error: " + err.Error()}
	}
	return PostResult{Success: true, PostID: postID, Platform: string(PlatformFacebook)}
}

func (r *Relay) postToInstagram(ctx context.Context, content, mediaURL string) PostResult {
	if configured, message := r.CheckCredentials(PlatformInstagram); !configured {
		return PostResult{Success: false, Error: message}
	}

	// Instagram requires media for posts
	if mediaURL == "" {
		return PostResult{Success: false, Error: "Instagram posts require media (image or video)"}
	}

	ctx, span := telemetry.StartSpan(ctx, "social.instagram.post")
	defer span.End()

	// Step 1: create media container
	containerEndpoint := fmt.Sprintf("%s/%s/media", instagramAPIBase, r.creds.Instagram.UserID)
	containerID, err := r.postForm(ctx, containerEndpoint, url.Values{
		"image_url":    {mediaURL},
		"caption":      {content},
		"access_token": {r.creds.Instagram.AccessToken},
	})
	if err != nil {
		return PostResult{Success: false, Error: "Instagram API error: " + err.Error()}
	}

	// Step 2: publish the container
	publishEndpoint := fmt.Sprintf("%s/%s/media_publish", instagramAPIBase, r.creds.Instagram.UserID)
	postID, err := r.postForm(ctx, publishEndpoint, url.Values{
		"creation_id":  {containerID},
		"access_token": {r.creds.Instagram.AccessToken},
	})
	if err != nil {
		return PostResult{Success: false, Error: "Instagram API error: " + err.Error()}
	}
	return PostResult{Success: true, PostID: postID, Platform: string(PlatformInstagram)}
}

func (r *Relay) postToTikTok(ctx context.Context) PostResult {
	if configured, message := r.CheckCredentials(PlatformTikTok); !configured {
		return PostResult{Success: false, Error: message}
	}

	// The TikTok Content Posting API requires a chunked video upload flow.
	return PostResult{
		Success: false,
		Error:   "TikTok posting requires video upload implementation - coming soon!",
	}
}

// TestResult is the outcome of a platform connection test
type TestResult struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message,omitempty"`
	Error   string                 `json:"error,omitempty"`
	Data    map[string]interface{} `json:"data,omitempty"`
}

// TestConnection performs a lightweight authenticated read against the
// platform API
func (r *Relay) TestConnection(ctx context.Context, platform Platform) TestResult {
	if configured, message := r.CheckCredentials(platform); !configured {
		return TestResult{Success: false, Error: message}
	}

	var endpoint string
	switch platform {
	case PlatformFacebook:
		endpoint = fmt.Sprintf("%s/me?access_token=%s",
			facebookAPIBase, url.QueryEscape(r.creds.Facebook.AccessToken))
	case PlatformInstagram:
		endpoint = fmt.Sprintf("%s/%s?access_token=%s",
			instagramAPIBase, r.creds.Instagram.UserID, url.QueryEscape(r.creds.Instagram.AccessToken))
	case PlatformTikTok:
		return TestResult{
			Success: true,
			Message: "TikTok credentials configured (connection test not implemented yet)",
		}
	}

	ctx, span := telemetry.StartSpan(ctx, "social.test_connection")
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return TestResult{Success: false, Error: connectionError(platform, err)}
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return TestResult{Success: false, Error: connectionError(platform, err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return TestResult{Success: false, Error: connectionError(platform, err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return TestResult{
			Success: false,
			Error:   connectionError(platform, fmt.Errorf("status %d: %s", resp.StatusCode, string(body))),
		}
	}

	var data map[string]interface{}
	if err := json.Unmarshal(body, &data); err != nil {
		return TestResult{Success: false, Error: connectionError(platform, err)}
	}

	return TestResult{
		Success: true,
		Message: titleCase(string(platform)) + " connection successful",
		Data:    data,
	}
}

func connectionError(platform Platform, err error) string {
	return fmt.Sprintf("%s connection failed: %s", titleCase(string(platform)), err)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
