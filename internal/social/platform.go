package social

import (
	"fmt"
	"net/url"
)

// Platform identifies a supported social network
type Platform string

// Supported platforms
const (
	PlatformFacebook  Platform = "facebook"
	PlatformInstagram Platform = "instagram"
	PlatformTikTok    Platform = "tiktok"
)

// Platforms lists every supported platform
var Platforms = []Platform{PlatformFacebook, PlatformInstagram, PlatformTikTok}

// ParsePlatform maps a request value to a Platform
func ParsePlatform(s string) (Platform, error) {
	switch Platform(s) {
	case PlatformFacebook:
		return PlatformFacebook, nil
	case PlatformInstagram:
		return PlatformInstagram, nil
	case PlatformTikTok:
		return PlatformTikTok, nil
	default:
		return "", fmt.Errorf("Unknown platform: %s", s)
	}
}

// ShareIntentURL returns the platform-specific sharing URL for a share link.
// Instagram and TikTok do not support arbitrary URL sharing, so they get
// fixed app-scheme placeholders.
func ShareIntentURL(platform Platform, shareURL, title string) string {
	switch platform {
	case PlatformFacebook:
		return "https://www.facebook.com/sharer/sharer.php?u=" + url.QueryEscape(shareURL)
	case PlatformInstagram:
		return "instagram://share"
	case PlatformTikTok:
		return "tiktok://share"
	default:
		return shareURL
	}
}
