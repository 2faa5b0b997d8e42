package services

import (
	"database/sql"

	"github.com/davmont/quorum-be/internal/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// MessageServiceProvider defines the interface for chat message services.
type MessageServiceProvider interface {
	SaveMessage(msg models.Message) (models.Message, error)
	GetMessages() []models.Message
}

// MessageService provides business logic for the global chat feed.
type MessageService struct {
	db *sql.DB
}

// NewMessageService creates a new MessageService.
func NewMessageService(db *sql.DB) *MessageService {
	return &MessageService{db: db}
}

// SaveMessage persists a chat message and returns the stored record.
func (s *MessageService) SaveMessage(msg models.Message) (models.Message, error) {
	msg.ID = uuid.New().String()

	stmt, err := s.db.Prepare("INSERT INTO messages (id, msg, msg_from, msg_date_time) VALUES (?, ?, ?, ?)")
	if err != nil {
		return models.Message{}, err
	}
	defer stmt.Close()

	if _, err := stmt.Exec(msg.ID, msg.Msg, msg.MsgFrom, msg.MsgDateTime); err != nil {
		return models.Message{}, err
	}
	return msg, nil
}

// GetMessages retrieves the whole feed ordered by timestamp ascending.
// Messages with equal timestamps keep their insertion order. A storage
// failure yields an empty feed rather than an error; the feed is a
// convenience surface and degrades to empty on a storage hiccup. The
// failure is still logged.
func (s *MessageService) GetMessages() []models.Message {
	messages := []models.Message{}

	rows, err := s.db.Query("SELECT id, msg, msg_from, msg_date_time FROM messages ORDER BY msg_date_time ASC, rowid ASC")
	if err != nil {
		log.Error().Err(err).Msg("Failed to retrieve messages")
		return messages
	}
	defer rows.Close()

	for rows.Next() {
		var msg models.Message
		if err := rows.Scan(&msg.ID, &msg.Msg, &msg.MsgFrom, &msg.MsgDateTime); err != nil {
			log.Error().Err(err).Msg("Failed to scan message row")
			return []models.Message{}
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		log.Error().Err(err).Msg("Failed to iterate message rows")
		return []models.Message{}
	}
	return messages
}
