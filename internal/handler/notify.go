package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/teamcal-dev/shift-calendar/backend/internal/domain"
)

// publishNotification 把一条通知事件投递到消息队列，由 notifier 进程消费
func (h *Handler) publishNotification(msg *domain.NotificationMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	return h.notifyChannel.PublishWithContext(
		ctx,
		"",
		"notification_queue",
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}

// notifyEmployee 是 fire-and-forget 的通知：
// 投递失败只记录日志，绝不回滚触发它的班次写入
func (h *Handler) notifyEmployee(msg *domain.NotificationMessage) {
	if err := h.publishNotification(msg); err != nil {
		slog.Error("通知投递失败", "event", msg.Event, "employeeID", msg.EmployeeID, "error", err)
	}
}
