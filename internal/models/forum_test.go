package models

import (
	"testing"
	"time"
)

func TestParseContentKind(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    ContentKind
		wantErr bool
	}{
		{"thread", "thread", ContentKindThread, false},
		{"post", "post", ContentKindPost, false},
		{"unknown", "comment", "", true},
		{"empty", "", "", true},
		{"case sensitive", "Thread", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseContentKind(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseContentKind(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseContentKind(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestThreadLastPostAt(t *testing.T) {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	thread := &ForumThread{CreatedAt: base}
	if got := thread.LastPostAt(); !got.Equal(base) {
		t.Errorf("LastPostAt() with no posts = %v, want thread created_at %v", got, base)
	}

	thread.Posts = []ForumPost{
		{CreatedAt: base.Add(time.Hour)},
		{CreatedAt: base.Add(3 * time.Hour)},
		{CreatedAt: base.Add(2 * time.Hour)},
	}
	want := base.Add(3 * time.Hour)
	if got := thread.LastPostAt(); !got.Equal(want) {
		t.Errorf("LastPostAt() = %v, want latest post time %v", got, want)
	}
}

func TestThreadAsMapCategoryName(t *testing.T) {
	thread := &ForumThread{CreatedAt: time.Now()}
	if name := thread.AsMap()["category_name"]; name != "Unknown" {
		t.Errorf("category_name without category = %v, want Unknown", name)
	}

	thread.Category = &ForumCategory{Name: "NICU Support"}
	if name := thread.AsMap()["category_name"]; name != "NICU Support" {
		t.Errorf("category_name = %v, want NICU Support", name)
	}
}

func TestAsMapAuthorNameFallback(t *testing.T) {
	thread := &ForumThread{CreatedAt: time.Now()}
	if name := thread.AsMap()["author_name"]; name != "Unknown" {
		t.Errorf("thread author_name = %v, want Unknown", name)
	}

	post := &ForumPost{CreatedAt: time.Now()}
	if name := post.AsMap()["author_name"]; name != "Unknown" {
		t.Errorf("post author_name = %v, want Unknown", name)
	}
}
