package models

import (
	"time"
)

// PageView records a single page impression. Rows are append-only.
type PageView struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;column:id"`
	PageURL   string    `gorm:"type:varchar(500);not null;column:page_url"`
	UserAgent string    `gorm:"type:varchar(500);column:user_agent"`
	IPAddress string    `gorm:"type:varchar(45);column:ip_address"`
	Referrer  string    `gorm:"type:varchar(500);column:referrer"`
	Timestamp time.Time `gorm:"not null;autoCreateTime;column:timestamp"`
	SessionID string    `gorm:"type:varchar(100);column:session_id"`
}

// TableName specifies the table name for PageView
func (PageView) TableName() string {
	return "page_views"
}

// ShareEvent records content being shared to a platform
type ShareEvent struct {
	ID           int64     `gorm:"primaryKey;autoIncrement;column:id"`
	ContentType  string    `gorm:"type:varchar(50);not null;column:content_type"`
	ContentID    int64     `gorm:"column:content_id"`
	Platform     string    `gorm:"type:varchar(50);not null;column:platform"`
	ShareURL     string    `gorm:"type:varchar(500);column:share_url"`
	ReferralCode string    `gorm:"type:varchar(100);column:referral_code"`
	Timestamp    time.Time `gorm:"not null;autoCreateTime;column:timestamp"`
	Clicks       int64     `gorm:"not null;default:0;column:clicks"`
}

// TableName specifies the table name for ShareEvent
func (ShareEvent) TableName() string {
	return "share_events"
}

// ReferralTracking maps a short referral code to its destination URL and
// counters. Linked to ShareEvent by referral_code, without a foreign key.
type ReferralTracking struct {
	ID           int64     `gorm:"primaryKey;autoIncrement;column:id"`
	ReferralCode string    `gorm:"type:varchar(100);not null;uniqueIndex:referral_tracking_ux1;column:referral_code"`
	OriginalURL  string    `gorm:"type:varchar(500);not null;column:original_url"`
	Clicks       int64     `gorm:"not null;default:0;column:clicks"`
	Conversions  int64     `gorm:"not null;default:0;column:conversions"`
	CreatedAt    time.Time `gorm:"not null;column:created_at"`
}

// TableName specifies the table name for ReferralTracking
func (ReferralTracking) TableName() string {
	return "referral_tracking"
}

// AsMap returns the API representation of the referral row
func (r *ReferralTracking) AsMap() map[string]interface{} {
	return map[string]interface{}{
		"code":        r.ReferralCode,
		"url":         r.OriginalURL,
		"clicks":      r.Clicks,
		"conversions": r.Conversions,
	}
}
