package kafka

import (
	"github.com/IBM/sarama"
)

type Config struct {
	Addrs          []string `envconfig:"KAFKA_ADDRS" default:"localhost:9092"`
	DecisionsTopic string   `envconfig:"KAFKA_DECISIONS_TOPIC" default:"stockroom.decisions"`
	ScansTopic     string   `envconfig:"KAFKA_SCANS_TOPIC" default:"stockroom.scans"`
	ConsumerGroup  string   `envconfig:"KAFKA_CONSUMER_GROUP" default:"stockroom"`
}

func NewProducer(cfg Config) (sarama.SyncProducer, error) {
	defaultCfg := sarama.NewConfig()

	defaultCfg.Producer.RequiredAcks = sarama.WaitForAll
	defaultCfg.Producer.Return.Successes = true

	return sarama.NewSyncProducer(cfg.Addrs, defaultCfg)
}

func NewConsumerGroup(cfg Config) (sarama.ConsumerGroup, error) {
	defaultCfg := sarama.NewConfig()

	defaultCfg.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}
	defaultCfg.Consumer.Offsets.Initial = sarama.OffsetOldest

	return sarama.NewConsumerGroup(cfg.Addrs, cfg.ConsumerGroup, defaultCfg)
}
