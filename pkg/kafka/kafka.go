package kafka

import (
	"encoding/json"
	"time"

	"github.com/IBM/sarama"
)

type Config struct {
	Addrs []string `envconfig:"KAFKA_ADDRS" default:"localhost:9092"`
}

const (
	BookingTopic = "booking-events"
)

type BookingEventType string

const (
	EventBookingCreated   BookingEventType = "BOOKING_CREATED"
	EventBookingCancelled BookingEventType = "BOOKING_CANCELLED"
)

// EventBooking is the payload published for downstream consumers (stats, notifications).
type EventBooking struct {
	Type        BookingEventType `json:"type"`
	BookingUid  string           `json:"bookingUid"`
	Username    string           `json:"username"`
	FieldID     int              `json:"fieldId"`
	BookingDate string           `json:"bookingDate"`
	StartTime   string           `json:"startTime"`
	EndTime     string           `json:"endTime"`
	TotalPrice  float64          `json:"totalPrice"`
	CreatedAt   time.Time        `json:"createdAt"`
}

func NewProducer(cfg Config) (sarama.SyncProducer, error) {
	defaultCfg := sarama.NewConfig()

	defaultCfg.Producer.RequiredAcks = sarama.WaitForAll
	defaultCfg.Producer.Return.Successes = true

	return sarama.NewSyncProducer(cfg.Addrs, defaultCfg)
}

func Publish(producer sarama.SyncProducer, topic string, event EventBooking) error {
	b, err := json.Marshal(event)
	if err != nil {
		return err
	}
	_, _, err = producer.SendMessage(&sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(event.BookingUid),
		Value: sarama.ByteEncoder(b),
	})
	return err
}
