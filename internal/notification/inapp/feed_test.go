package inapp

import (
	"context"
	"fmt"
	"testing"

	"riseleads_backend/internal/leads/domain"
	"riseleads_backend/platform/apperr"
)

func TestFeedKeepsNewestTwenty(t *testing.T) {
	svc := NewService(NewFeed(DefaultLimit), nil, nil)

	for i := 1; i <= 25; i++ {
		svc.Push(context.Background(), fmt.Sprintf("n%d", i), "", domain.AuditInfo)
	}

	items := svc.List()
	if len(items) != 20 {
		t.Fatalf("expected 20 notifications, got %d", len(items))
	}
	if items[0].Title != "n25" {
		t.Fatalf("expected newest first, got %q", items[0].Title)
	}
	if items[19].Title != "n6" {
		t.Fatalf("expected oldest retained to be n6, got %q", items[19].Title)
	}
}

func TestFeedReadAndClear(t *testing.T) {
	svc := NewService(NewFeed(5), nil, nil)
	first := svc.Push(context.Background(), "Lead Discovered", "Acme added to pipeline.", domain.AuditSuccess)
	svc.Push(context.Background(), "Sync Warning", "Duplicate lead detected: Acme", "")

	if got := svc.CountUnread(); got != 2 {
		t.Fatalf("expected 2 unread, got %d", got)
	}
	if svc.List()[0].Type != domain.AuditInfo {
		t.Fatal("empty type must default to info")
	}

	if err := svc.MarkRead(first.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := svc.CountUnread(); got != 1 {
		t.Fatalf("expected 1 unread, got %d", got)
	}
	if err := svc.MarkRead("missing"); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	svc.MarkAllRead()
	if got := svc.CountUnread(); got != 0 {
		t.Fatalf("expected 0 unread, got %d", got)
	}

	svc.Clear()
	if len(svc.List()) != 0 {
		t.Fatal("expected empty feed after clear")
	}
}

func TestFeedListReturnsCopy(t *testing.T) {
	feed := NewFeed(3)
	feed.Add(Notification{ID: "a"})
	items := feed.List()
	items[0].Read = true

	if feed.CountUnread() != 1 {
		t.Fatal("mutating the listed copy must not affect the feed")
	}
}
