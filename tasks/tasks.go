package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"wardrobeapi/services"

	"github.com/getsentry/sentry-go"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

const (
	TypeOutfitWorn = "outfit:worn"
	QueueDefault   = "default"
)

// Enqueuer is satisfied by *asynq.Client.
type Enqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

type OutfitWornPayload struct {
	UserID   uint      `json:"user_id"`
	OutfitID string    `json:"outfit_id"`
	WornAt   time.Time `json:"worn_at"`
}

func NewOutfitWornTask(userID uint, outfitID string, wornAt time.Time) (*asynq.Task, error) {
	payload, err := json.Marshal(OutfitWornPayload{UserID: userID, OutfitID: outfitID, WornAt: wornAt})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeOutfitWorn, payload), nil
}

// EnqueueOutfitWorn submits the wear bookkeeping of a saved outfit.
func EnqueueOutfitWorn(enqueuer Enqueuer, userID uint, outfitID string, wornAt time.Time) (*asynq.TaskInfo, error) {
	task, err := NewOutfitWornTask(userID, outfitID, wornAt)
	if err != nil {
		return nil, err
	}
	return enqueuer.Enqueue(task, asynq.MaxRetry(3), asynq.Queue(QueueDefault))
}

// HandleOutfitWornTask marks the outfit as worn and bumps the wear count of
// every item of the outfit that is still in the catalogue.
func HandleOutfitWornTask(ctx context.Context, t *asynq.Task, stores services.Stores) error {
	var payload OutfitWornPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("decode %s payload: %v: %w", TypeOutfitWorn, err, asynq.SkipRetry)
	}
	logger := log.With().Str("outfit_id", payload.OutfitID).Uint("user_id", payload.UserID).Logger()
	if payload.WornAt.IsZero() {
		payload.WornAt = time.Now().UTC()
	}

	outfit, err := stores.History.MarkWorn(ctx, payload.UserID, payload.OutfitID, payload.WornAt)
	if errors.Is(err, services.ErrNotFound) {
		sentry.CaptureException(fmt.Errorf("[Outfit: %s] worn outfit not found for user %v", payload.OutfitID, payload.UserID))
		return fmt.Errorf("outfit %s not found: %w", payload.OutfitID, asynq.SkipRetry)
	}
	if err != nil {
		sentry.CaptureException(err)
		return err
	}

	updated, err := stores.Catalogue.RecordWear(ctx, payload.UserID, outfit.Items.IDs(), payload.WornAt)
	if err != nil {
		sentry.CaptureException(fmt.Errorf("[Outfit: %s] failed to record wear: %w", payload.OutfitID, err))
		return err
	}
	logger.Info().Int("items_updated", updated).Int("items_in_outfit", len(outfit.Items)).Msg("[Queue] outfit wear recorded")
	return nil
}

// InlineEnqueuer runs tasks in the calling process. The memory store backend
// uses it since a separate worker cannot see in-memory stores.
type InlineEnqueuer struct {
	Stores services.Stores
	IDs    services.IDGenerator
}

func NewInlineEnqueuer(stores services.Stores) *InlineEnqueuer {
	return &InlineEnqueuer{Stores: stores, IDs: services.UUIDGenerator{}}
}

func (e *InlineEnqueuer) Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	if task.Type() != TypeOutfitWorn {
		return nil, fmt.Errorf("no inline handler for task %s", task.Type())
	}
	if err := HandleOutfitWornTask(context.Background(), task, e.Stores); err != nil {
		return nil, err
	}
	return &asynq.TaskInfo{
		ID:      e.IDs.NewID(),
		Queue:   QueueDefault,
		Type:    task.Type(),
		Payload: task.Payload(),
		State:   asynq.TaskStateCompleted,
	}, nil
}
