package social

import (
	"context"
	"strings"
	"testing"

	"github.com/prematurebabys/community/pkg/config"
)

func TestParsePlatform(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Platform
		wantErr bool
	}{
		{"facebook", "facebook", PlatformFacebook, false},
		{"instagram", "instagram", PlatformInstagram, false},
		{"tiktok", "tiktok", PlatformTikTok, false},
		{"unknown", "twitter", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePlatform(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePlatform(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParsePlatform(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestShareIntentURL(t *testing.T) {
	tests := []struct {
		name     string
		platform Platform
		expected string
	}{
		{
			name:     "facebook sharer with escaped url",
			platform: PlatformFacebook,
			expected: "https://www.facebook.com/sharer/sharer.php?u=https%3A%2F%2Fprematurebabys.com%2Fshare%2Fabc12345",
		},
		{
			name:     "instagram placeholder",
			platform: PlatformInstagram,
			expected: "instagram://share",
		},
		{
			name:     "tiktok placeholder",
			platform: PlatformTikTok,
			expected: "tiktok://share",
		},
		{
			name:     "unknown platform passes url through",
			platform: Platform("other"),
			expected: "https://prematurebabys.com/share/abc12345",
		},
	}

	shareURL := "https://prematurebabys.com/share/abc12345"
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShareIntentURL(tt.platform, shareURL, "a title"); got != tt.expected {
				t.Errorf("ShareIntentURL() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestCheckCredentials(t *testing.T) {
	tests := []struct {
		name        string
		creds       config.SocialConfig
		platform    Platform
		wantOK      bool
		wantMessage string
	}{
		{
			name: "facebook configured",
			creds: config.SocialConfig{
				Facebook: config.FacebookConfig{AccessToken: "token", PageID: "page"},
			},
			platform:    PlatformFacebook,
			wantOK:      true,
			wantMessage: "All credentials available",
		},
		{
			name:        "facebook fully missing",
			creds:       config.SocialConfig{},
			platform:    PlatformFacebook,
			wantOK:      false,
			wantMessage: "Missing environment variables: FACEBOOK_ACCESS_TOKEN, FACEBOOK_PAGE_ID",
		},
		{
			name: "instagram partially missing",
			creds: config.SocialConfig{
				Instagram: config.InstagramConfig{AccessToken: "token"},
			},
			platform:    PlatformInstagram,
			wantOK:      false,
			wantMessage: "Missing environment variables: INSTAGRAM_USER_ID",
		},
		{
			name:        "tiktok missing all three",
			creds:       config.SocialConfig{},
			platform:    PlatformTikTok,
			wantOK:      false,
			wantMessage: "Missing environment variables: TIKTOK_CLIENT_KEY, TIKTOK_CLIENT_SECRET, TIKTOK_ACCESS_TOKEN",
		},
		{
			name:        "unknown platform",
			creds:       config.SocialConfig{},
			platform:    Platform("twitter"),
			wantOK:      false,
			wantMessage: "Unknown platform: twitter",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			relay := NewRelay(tt.creds)
			ok, message := relay.CheckCredentials(tt.platform)
			if ok != tt.wantOK {
				t.Errorf("CheckCredentials() ok = %v, want %v", ok, tt.wantOK)
			}
			if message != tt.wantMessage {
				t.Errorf("CheckCredentials() message = %q, want %q", message, tt.wantMessage)
			}
		})
	}
}

// Posting to an unconfigured platform must fail before any network call. The
// relay would otherwise hit the real Graph API hosts, so the assertion on the
// missing-variables error doubles as proof the request was never built.
func TestPostUnconfiguredPlatform(t *testing.T) {
	relay := NewRelay(config.SocialConfig{})

	results := relay.Post(context.Background(), "hello", "", []string{"facebook", "instagram", "tiktok", "myspace"})

	for _, name := range []string{"facebook", "instagram", "tiktok"} {
		result := results[name]
		if result.Success {
			t.Errorf("Post() to unconfigured %s succeeded", name)
		}
		if !strings.HasPrefix(result.Error, "Missing environment variables: ") {
			t.Errorf("Post() to unconfigured %s error = %q, want missing-variables message", name, result.Error)
		}
	}

	if result := results["myspace"]; result.Success || result.Error != "Unknown platform: myspace" {
		t.Errorf("Post() to unknown platform result = %+v", result)
	}
}

func TestPostInstagramRequiresMedia(t *testing.T) {
	relay := NewRelay(config.SocialConfig{
		Instagram: config.InstagramConfig{AccessToken: "token", UserID: "user"},
	})

	results := relay.Post(context.Background(), "hello", "", []string{"instagram"})
	result := results["instagram"]
	if result.Success {
		t.Error("Post() to instagram without media succeeded")
	}
	if result.Error != "Instagram posts require media (image or video)" {
		t.Errorf("Post() error = %q", result.Error)
	}
}

func TestPostTikTokNotImplemented(t *testing.T) {
	relay := NewRelay(config.SocialConfig{
		TikTok: config.TikTokConfig{ClientKey: "k", ClientSecret: "s", AccessToken: "t"},
	})

	results := relay.Post(context.Background(), "hello", "https://example.com/video.mp4", []string{"tiktok"})
	result := results["tiktok"]
	if result.Success {
		t.Error("Post() to tiktok should not succeed")
	}
	if !strings.Contains(result.Error, "video upload") {
		t.Errorf("Post() tiktok error = %q", result.Error)
	}
}

func TestTestConnectionTikTokStub(t *testing.T) {
	relay := NewRelay(config.SocialConfig{
		TikTok: config.TikTokConfig{ClientKey: "k", ClientSecret: "s", AccessToken: "t"},
	})

	result := relay.TestConnection(context.Background(), PlatformTikTok)
	if !result.Success {
		t.Errorf("TestConnection(tiktok) success = false, error = %q", result.Error)
	}
	if !strings.Contains(result.Message, "not implemented") {
		t.Errorf("TestConnection(tiktok) message = %q", result.Message)
	}
}

func TestStatusCoversAllPlatforms(t *testing.T) {
	relay := NewRelay(config.SocialConfig{
		Facebook: config.FacebookConfig{AccessToken: "token", PageID: "page"},
	})

	status := relay.Status()
	if len(status) != len(Platforms) {
		t.Fatalf("Status() has %d entries, want %d", len(status), len(Platforms))
	}
	if !status["facebook"].Configured {
		t.Error("Status() facebook should be configured")
	}
	if status["instagram"].Configured {
		t.Error("Status() instagram should not be configured")
	}
	for name, s := range status {
		if s.LastChecked == "" {
			t.Errorf("Status() %s missing last_checked", name)
		}
	}
}
