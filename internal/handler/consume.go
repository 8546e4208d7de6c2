package handler

import (
	"context"
	"encoding/json"

	"github.com/IBM/sarama"
	"go.uber.org/zap"

	"github.com/Astemirdum/stockroom-service/internal/model"
)

type recordScan func(ctx context.Context, sessionID, itemID string, delta int) (model.ScanRecord, error)

// Consumer feeds scan events from the scans topic into the same RecordScan
// path the HTTP handler uses.
type Consumer struct {
	recordScanHandler recordScan
	log               *zap.Logger
	ready             chan bool
}

func NewConsumer(recordScan recordScan, log *zap.Logger) *Consumer {
	return &Consumer{
		recordScanHandler: recordScan,
		log:               log.Named("consumer"),
		ready:             make(chan bool),
	}
}

func (consumer *Consumer) Setup(sarama.ConsumerGroupSession) error {
	// Mark the consumer as ready
	close(consumer.ready)
	return nil
}

// Cleanup is run at the end of a session, once all ConsumeClaim goroutines have exited.
func (consumer *Consumer) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (consumer *Consumer) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				consumer.log.Warn("message channel was closed")
				return nil
			}
			var msg model.ScanMsg
			if err := json.Unmarshal(message.Value, &msg); err != nil {
				consumer.log.Error("unmarshal scan event", zap.Error(err))
				session.MarkMessage(message, "")
				continue
			}

			rec, err := consumer.recordScanHandler(context.Background(), msg.SessionID, msg.ItemID, msg.Delta)
			if err != nil {
				consumer.log.Error("consumer.recordScanHandler", zap.Error(err))
				session.MarkMessage(message, "")
				continue
			}

			consumer.log.Debug("scan claimed",
				zap.String("session_id", msg.SessionID),
				zap.String("item_id", rec.ItemID),
				zap.String("status", string(rec.Status)),
				zap.Time("timestamp", message.Timestamp),
				zap.String("topic", message.Topic))
			session.MarkMessage(message, "")
		case <-session.Context().Done():
			return nil
		}
	}
}
