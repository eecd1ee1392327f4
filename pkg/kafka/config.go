// Package kafka wraps segmentio/kafka-go for publishing messages to a broker.
package kafka

// Config holds Kafka connection configuration.
type Config struct {
	Brokers []string
}
