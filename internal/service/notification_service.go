package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/supplier-directory/internal/events"
)

// NotificationService surfaces workflow outcomes to operators. Submitters
// learn of rejections through the rejection-audit table; this service
// mirrors the lifecycle into the log stream for admins.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to workflow events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventSupplierSubmitted, n.handleSupplierSubmitted)
	n.dispatcher.Subscribe(events.EventSupplierApproved, n.handleSupplierDecision)
	n.dispatcher.Subscribe(events.EventSupplierRejected, n.handleSupplierDecision)
	n.dispatcher.Subscribe(events.EventSuppliersDeleted, n.handleSuppliersDeleted)
	n.dispatcher.Subscribe(events.EventUserSignedUp, n.handleUserLifecycle)
	n.dispatcher.Subscribe(events.EventUserApproved, n.handleUserLifecycle)
	n.dispatcher.Subscribe(events.EventUserRejected, n.handleUserLifecycle)
}

func (n *NotificationService) handleSupplierSubmitted(_ context.Context, event events.Event) error {
	n.logger.Info("SupplierSubmitted",
		zap.String("supplier", event.Subject),
		zap.String("actor", event.Actor.Username),
		zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleSupplierDecision(_ context.Context, event events.Event) error {
	n.logger.Info(string(event.Type),
		zap.String("supplier", event.Subject),
		zap.String("actor", event.Actor.Username),
		zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleSuppliersDeleted(_ context.Context, event events.Event) error {
	n.logger.Info("SuppliersDeleted",
		zap.String("actor", event.Actor.Username),
		zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleUserLifecycle(_ context.Context, event events.Event) error {
	n.logger.Info(string(event.Type),
		zap.String("username", event.Subject),
		zap.String("actor", event.Actor.Username))
	return nil
}
