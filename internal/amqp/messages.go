package amqp

import (
	"encoding/json"
	"time"
)

// DataUpdatedMessage announces that a user's server-side records
// changed. Advisory only; consumers re-read the store rather than
// trusting any payload beyond the user ID.
type DataUpdatedMessage struct {
	UserID    int64     `json:"user_id"`
	Source    string    `json:"source"`
	Timestamp time.Time `json:"timestamp"`
}

func NewDataUpdatedMessage(userID int64, source string) *DataUpdatedMessage {
	return &DataUpdatedMessage{
		UserID:    userID,
		Source:    source,
		Timestamp: time.Now(),
	}
}

func (m *DataUpdatedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func DataUpdatedMessageFromJSON(data []byte) (*DataUpdatedMessage, error) {
	var msg DataUpdatedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
