package services

import (
	"context"
	"encoding/json"
	"fmt"

	"rebar-shipment-backend/db/models"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TypeNotArrivedAlert is the asynq task type for 未到货 Feishu alerts.
// Delivery runs out of band so a flaky webhook can never block or fail the
// status update itself; asynq retries with backoff on failure.
const TypeNotArrivedAlert = "notification:not_arrived"

// NewNotArrivedTask wraps an alert payload in an asynq task.
func NewNotArrivedTask(alert NotArrivedAlert) (*asynq.Task, error) {
	payload, err := json.Marshal(alert)
	if err != nil {
		return nil, fmt.Errorf("marshal alert payload: %w", err)
	}
	return asynq.NewTask(TypeNotArrivedAlert, payload, asynq.MaxRetry(3)), nil
}

// NotificationProcessor consumes alert tasks: posts the card, then records
// the attempt in notification_logs so failures are visible to an operator.
type NotificationProcessor struct {
	feishu *FeishuClient
	db     *gorm.DB
	logger *zap.Logger
}

func NewNotificationProcessor(feishu *FeishuClient, db *gorm.DB, logger *zap.Logger) *NotificationProcessor {
	return &NotificationProcessor{feishu: feishu, db: db, logger: logger}
}

func (p *NotificationProcessor) HandleNotArrivedTask(ctx context.Context, t *asynq.Task) error {
	var alert NotArrivedAlert
	if err := json.Unmarshal(t.Payload(), &alert); err != nil {
		// A payload that cannot decode will never succeed; drop it.
		p.logger.Error("Undecodable alert payload", zap.Error(err))
		return fmt.Errorf("unmarshal alert payload: %v: %w", err, asynq.SkipRetry)
	}

	sendErr := p.feishu.Send(ctx, alert)

	logRow := models.NotificationLog{
		ID:       uuid.New(),
		Identity: alert.RecordID,
		Channel:  "feishu",
		Payload:  t.Payload(),
		Success:  sendErr == nil,
	}
	if sendErr != nil {
		logRow.Error = sendErr.Error()
	}
	if err := p.db.Create(&logRow).Error; err != nil {
		p.logger.Error("Failed to record notification log", zap.Error(err))
	}

	if sendErr != nil {
		p.logger.Warn("Feishu alert delivery failed, will retry",
			zap.String("record_id", alert.RecordID),
			zap.Error(sendErr),
		)
	}
	return sendErr
}

// RegisterHandlers mounts the processor on an asynq mux.
func (p *NotificationProcessor) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(TypeNotArrivedAlert, p.HandleNotArrivedTask)
}
