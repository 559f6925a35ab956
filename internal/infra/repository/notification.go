package repository

import (
	"context"
	"time"

	"presale-engine/internal/infra/db"
)

type NotificationRepository struct {
	db db.DBTX
}

func NewNotificationRepository(dbtx db.DBTX) *NotificationRepository {
	return &NotificationRepository{db: dbtx}
}

const createNotificationJobSQL = `
INSERT INTO notification_jobs (kind, topic, payload, run_at, status, created_at)
VALUES ($1, $2, $3, $4, 'queued', now())`

// CreateJob enqueues within the caller's transaction, so a rolled back
// operation never notifies anyone.
func (r *NotificationRepository) CreateJob(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) error {
	if _, err := r.db.Exec(ctx, createNotificationJobSQL, kind, topic, payload, runAt); err != nil {
		return wrapWriteErr("failed to create notification job", err)
	}
	return nil
}
