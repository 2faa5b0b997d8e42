package services

import (
	"testing"
	"time"

	"github.com/davmont/quorum-be/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveMessage(t *testing.T) {
	svc := NewMessageService(newTestDB(t))

	saved, err := svc.SaveMessage(models.Message{
		Msg:         "hello",
		MsgFrom:     "sana",
		MsgDateTime: time.Date(2024, 6, 4, 12, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, "hello", saved.Msg)
}

func TestGetMessagesOrderedByTimestamp(t *testing.T) {
	svc := NewMessageService(newTestDB(t))

	later := time.Date(2024, 6, 5, 12, 0, 0, 0, time.UTC)
	earlier := time.Date(2024, 6, 4, 12, 0, 0, 0, time.UTC)

	_, err := svc.SaveMessage(models.Message{Msg: "second", MsgFrom: "a", MsgDateTime: later})
	require.NoError(t, err)
	_, err = svc.SaveMessage(models.Message{Msg: "first", MsgFrom: "b", MsgDateTime: earlier})
	require.NoError(t, err)

	messages := svc.GetMessages()
	require.Len(t, messages, 2)
	assert.Equal(t, "first", messages[0].Msg)
	assert.Equal(t, "second", messages[1].Msg)
}

// Equal timestamps keep insertion order, and both messages survive.
func TestGetMessagesEqualTimestamps(t *testing.T) {
	svc := NewMessageService(newTestDB(t))

	at := time.Date(2024, 6, 4, 12, 0, 0, 0, time.UTC)
	_, err := svc.SaveMessage(models.Message{Msg: "one", MsgFrom: "a", MsgDateTime: at})
	require.NoError(t, err)
	_, err = svc.SaveMessage(models.Message{Msg: "two", MsgFrom: "b", MsgDateTime: at})
	require.NoError(t, err)

	messages := svc.GetMessages()
	require.Len(t, messages, 2)
	assert.Equal(t, "one", messages[0].Msg)
	assert.Equal(t, "two", messages[1].Msg)
}

func TestGetMessagesEmptyFeed(t *testing.T) {
	svc := NewMessageService(newTestDB(t))

	messages := svc.GetMessages()
	assert.NotNil(t, messages)
	assert.Empty(t, messages)
}

// A storage failure degrades to an empty feed, never an error.
func TestGetMessagesStorageFailure(t *testing.T) {
	db := newTestDB(t)
	svc := NewMessageService(db)

	_, err := svc.SaveMessage(models.Message{Msg: "hello", MsgFrom: "sana", MsgDateTime: time.Now().UTC()})
	require.NoError(t, err)

	require.NoError(t, db.Close())

	messages := svc.GetMessages()
	assert.NotNil(t, messages)
	assert.Empty(t, messages)
}
