package handler

import (
	"encoding/json"
	"time"

	"github.com/IBM/sarama"
	"go.uber.org/zap"

	"github.com/Astemirdum/stockroom-service/internal/model"
	cb "github.com/Astemirdum/stockroom-service/pkg/circuit_breaker"
)

// Enqueuer publishes decision events after a transition has committed.
// Publishing is best-effort: a broker failure is logged and never rolls the
// transition back.
type Enqueuer interface {
	EnqueueDecision(ev model.DecisionEvent)
}

func NewEnqueuer(producer sarama.SyncProducer, topic string, log *zap.Logger) Enqueuer {
	return &enqueuerImpl{
		producer: producer,
		topic:    topic,
		breaker:  cb.New(20, time.Second*30, 0.5, 5),
		log:      log.Named("enqueuer"),
	}
}

type enqueuerImpl struct {
	producer sarama.SyncProducer
	topic    string
	breaker  cb.CircuitBreaker
	log      *zap.Logger
}

func (q *enqueuerImpl) EnqueueDecision(ev model.DecisionEvent) {
	if q.producer == nil {
		return
	}
	data, err := json.Marshal(ev)
	if err != nil {
		q.log.Error("marshal decision event", zap.Error(err))
		return
	}
	err = q.breaker.Call(func() error {
		msg := &sarama.ProducerMessage{Topic: q.topic, Value: sarama.StringEncoder(data)}
		_, _, err := q.producer.SendMessage(msg)
		return err
	})
	if err != nil {
		q.log.Error("enqueue decision event",
			zap.String("request_id", ev.RequestID), zap.Error(err))
	}
}
