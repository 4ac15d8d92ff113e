package scheduler

import (
	"context"
	"testing"

	"riseleads_backend/platform/apperr"
	"riseleads_backend/platform/config"

	"github.com/alicebob/miniredis/v2"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	mr := miniredis.RunT(t)
	c, err := NewClient(&config.Config{RedisURL: "redis://" + mr.Addr(), AsynqQueueName: "leads"})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func pendingTasks(t *testing.T, c *Client) int {
	t.Helper()
	info, err := c.inspector.GetQueueInfo(c.queue)
	if err != nil {
		t.Fatalf("queue info: %v", err)
	}
	return info.Pending
}

func TestEnqueueLeadEnrichmentRejectsDuplicateWhilePending(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	if err := c.EnqueueLeadEnrichment(ctx, "lead-1"); err != nil {
		t.Fatalf("first enqueue: %v", err)
	}
	if err := c.EnqueueLeadEnrichment(ctx, "lead-1"); !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("second enqueue = %v, want conflict", err)
	}
	if n := pendingTasks(t, c); n != 1 {
		t.Fatalf("pending = %d, want 1", n)
	}
}

func TestEnqueueLeadEnrichmentRequeuesArchivedTask(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	if err := c.EnqueueLeadEnrichment(ctx, "lead-1"); err != nil {
		t.Fatalf("first enqueue: %v", err)
	}
	if err := c.inspector.ArchiveTask(c.queue, TaskEnrichLead+":lead-1"); err != nil {
		t.Fatalf("archive: %v", err)
	}
	if n := pendingTasks(t, c); n != 0 {
		t.Fatalf("pending after archive = %d, want 0", n)
	}

	if err := c.EnqueueLeadEnrichment(ctx, "lead-1"); err != nil {
		t.Fatalf("re-enqueue after archive: %v", err)
	}
	if n := pendingTasks(t, c); n != 1 {
		t.Fatalf("pending = %d, want 1", n)
	}
}
