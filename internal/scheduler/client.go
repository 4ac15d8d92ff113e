package scheduler

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"time"

	"riseleads_backend/platform/apperr"
	"riseleads_backend/platform/config"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
)

const (
	enrichMaxRetry = 3
	enrichTimeout  = 2 * time.Minute
)

type Client struct {
	client    *asynq.Client
	inspector *asynq.Inspector
	queue     string
}

func NewClient(cfg config.SchedulerConfig) (*Client, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	return &Client{
		client:    asynq.NewClient(opt),
		inspector: asynq.NewInspector(opt),
		queue:     queueName(cfg),
	}, nil
}

func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return errors.Join(c.client.Close(), c.inspector.Close())
}

// EnqueueLeadEnrichment queues a background enrichment. Tasks for the same lead
// share an id, so a lead is queued at most once while its task is pending,
// active or retrying; that case returns a conflict error. An archived or
// completed task is cleared and the lead queued again.
func (c *Client) EnqueueLeadEnrichment(ctx context.Context, leadID string) error {
	task, err := NewEnrichLeadTask(EnrichLeadPayload{LeadID: leadID})
	if err != nil {
		return err
	}
	taskID := TaskEnrichLead + ":" + leadID
	opts := []asynq.Option{
		asynq.Queue(c.queue),
		asynq.TaskID(taskID),
		asynq.MaxRetry(enrichMaxRetry),
		asynq.Timeout(enrichTimeout),
	}

	_, err = c.client.EnqueueContext(ctx, task, opts...)
	if !errors.Is(err, asynq.ErrTaskIDConflict) {
		return err
	}

	settled, err := c.clearSettled(taskID)
	if err != nil {
		return err
	}
	if !settled {
		return apperr.Conflict("enrichment already queued for this lead")
	}

	_, err = c.client.EnqueueContext(ctx, task, opts...)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		return apperr.Conflict("enrichment already queued for this lead")
	}
	return err
}

// clearSettled deletes the task holding taskID when it can no longer run.
// It reports whether the id is free again.
func (c *Client) clearSettled(taskID string) (bool, error) {
	info, err := c.inspector.GetTaskInfo(c.queue, taskID)
	if errors.Is(err, asynq.ErrTaskNotFound) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("inspect task %s: %w", taskID, err)
	}

	switch info.State {
	case asynq.TaskStateArchived, asynq.TaskStateCompleted:
		err := c.inspector.DeleteTask(c.queue, taskID)
		if err != nil && !errors.Is(err, asynq.ErrTaskNotFound) {
			return false, fmt.Errorf("delete settled task %s: %w", taskID, err)
		}
		return true, nil
	default:
		return false, nil
	}
}

func queueName(cfg config.SchedulerConfig) string {
	if queue := cfg.GetAsynqQueueName(); queue != "" {
		return queue
	}
	return "default"
}

func redisClientOpt(redisURL string, tlsInsecure bool) (asynq.RedisClientOpt, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return asynq.RedisClientOpt{}, err
	}

	var tlsConfig *tls.Config
	if opt.TLSConfig != nil {
		clone := opt.TLSConfig.Clone()
		if tlsInsecure {
			clone.InsecureSkipVerify = true
		}
		tlsConfig = clone
	} else if tlsInsecure {
		tlsConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return asynq.RedisClientOpt{
		Addr:      opt.Addr,
		Password:  opt.Password,
		DB:        opt.DB,
		TLSConfig: tlsConfig,
	}, nil
}
