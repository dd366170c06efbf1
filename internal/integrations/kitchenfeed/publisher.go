package kitchenfeed

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher публикует события о бронированиях для кухни
type KafkaPublisher struct {
	writer messageWriter
	topic  string
	log    Logger
}

// NewKafkaPublisher создает publisher поверх kafka.Writer
func NewKafkaPublisher(brokers []string, topic string, log Logger) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			BatchTimeout: 10 * time.Millisecond,
		},
		topic: topic,
		log:   log,
	}
}

// PublishBookingIssued отправляет событие booking.issued.
// Ключ сообщения - дата и секция, события одной раздачи попадают в одну партицию.
func (p *KafkaPublisher) PublishBookingIssued(ctx context.Context, event BookingIssued) error {
	msg, err := p.encode(event)
	if err != nil {
		return err
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("%w: write message: %v", ErrPublish, err)
	}

	p.log.Info("Kitchen feed: booking issued token=%s section=%s item=%s", event.Token, event.Section, event.Item)
	return nil
}

// Close закрывает writer
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

func (p *KafkaPublisher) encode(event BookingIssued) (kafka.Message, error) {
	envelope := Event{
		Entity:     entityBooking,
		Action:     actionIssued,
		ResourceID: event.Token,
		Topic:      p.topic,
		Metadata: map[string]string{
			"date":    event.Date,
			"section": event.Section,
		},
		Data: event,
	}

	value, err := json.Marshal(envelope)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("%w: marshal event: %v", ErrPublish, err)
	}

	return kafka.Message{
		Key:   []byte(event.Date + ":" + event.Section),
		Value: value,
		Time:  event.IssuedAt,
	}, nil
}

// NoopPublisher используется, когда лента кухни выключена
type NoopPublisher struct{}

// PublishBookingIssued ничего не делает
func (NoopPublisher) PublishBookingIssued(context.Context, BookingIssued) error { return nil }

// Close ничего не делает
func (NoopPublisher) Close() error { return nil }
