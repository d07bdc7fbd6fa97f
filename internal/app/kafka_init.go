package app

import (
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orderpay/internal/domain"
	"github.com/vladislavdragonenkov/orderpay/internal/messaging/kafka"
)

// initKafkaPublisher создаёт producer и публикатор событий.
// Недоступность Kafka не мешает старту: сервис работает без публикации.
func initKafkaPublisher(brokers []string, topic string, logger *log.Entry) (*kafka.Producer, domain.EventPublisher) {
	if len(brokers) == 0 {
		return nil, nil
	}

	producer, err := kafka.NewProducer(brokers)
	if err != nil {
		logger.WithError(err).Warn("failed to create kafka producer, continuing without kafka")
		return nil, nil
	}

	logger.WithFields(log.Fields{
		"brokers": brokers,
		"topic":   topic,
	}).Info("kafka producer initialized")
	return producer, kafka.NewOrderEventPublisher(producer, topic)
}

// closeKafka закрывает producer, если он был создан.
func closeKafka(producer *kafka.Producer, logger *log.Entry) {
	if producer == nil {
		return
	}
	if err := producer.Close(); err != nil {
		logger.WithError(err).Warn("failed to close kafka producer")
		return
	}
	logger.Info("kafka producer closed")
}
