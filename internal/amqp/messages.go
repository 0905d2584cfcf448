package amqp

import (
	"encoding/json"
	"time"
)

// TransactionExportMessage references a transaction awaiting export.
// It carries only identifiers; the worker loads the full record from
// the database so the export always reflects the latest state.
type TransactionExportMessage struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Timestamp time.Time `json:"timestamp"`
}

// NewTransactionExportMessage creates an export message for a transaction
func NewTransactionExportMessage(id, userID string) *TransactionExportMessage {
	return &TransactionExportMessage{
		ID:        id,
		UserID:    userID,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *TransactionExportMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// TransactionExportMessageFromJSON creates a message from JSON bytes
func TransactionExportMessageFromJSON(data []byte) (*TransactionExportMessage, error) {
	var msg TransactionExportMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
