package events

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/ayo6706/wallet-ledger/internal/models"
)

// KafkaWriter is the subset of kafka.Writer the publisher needs.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// TransferEvent is the wire shape published for each completed transfer.
type TransferEvent struct {
	LedgerID  int64     `json:"ledger_id"`
	UserID    int64     `json:"user_id"`
	Currency  string    `json:"currency"`
	Amount    string    `json:"amount"`
	Fee       string    `json:"fee"`
	ToAddress string    `json:"to_address"`
	CreatedAt time.Time `json:"created_at"`
}

// Publisher emits completed-transfer events. Publication is best effort
// and strictly post-commit: failures are logged and never surfaced to the
// transfer path.
type Publisher struct {
	writer KafkaWriter
}

// NewPublisher wraps a Kafka writer. A nil writer yields a publisher that
// drops events, which keeps local setups runnable without a broker.
func NewPublisher(writer KafkaWriter) *Publisher {
	return &Publisher{writer: writer}
}

// NewKafkaWriter builds the default writer for the transfer topic.
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
	}
}

// PublishTransfer emits one event keyed by user id, preserving per-account
// ordering within a partition.
func (p *Publisher) PublishTransfer(ctx context.Context, entry *models.LedgerEntry) {
	if p == nil || p.writer == nil {
		return
	}

	event := TransferEvent{
		LedgerID:  entry.ID,
		UserID:    entry.UserID,
		Currency:  string(entry.Currency),
		Amount:    entry.Amount.String(),
		Fee:       entry.Fee.String(),
		ToAddress: entry.ToAddress,
		CreatedAt: entry.CreatedAt,
	}
	payload, err := json.Marshal(event)
	if err != nil {
		zap.L().Error("marshal transfer event", zap.Error(err), zap.Int64("ledger_id", entry.ID))
		return
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(entry.UserID, 10)),
		Value: payload,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		zap.L().Warn("publish transfer event failed", zap.Error(err), zap.Int64("ledger_id", entry.ID))
		return
	}
	zap.L().Info("transfer event published", zap.Int64("ledger_id", entry.ID), zap.String("currency", event.Currency))
}

// Close releases the underlying writer.
func (p *Publisher) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
