package models

import "time"

// Message represents a single chat message in the global feed.
type Message struct {
	ID          string    `json:"_id"`
	Msg         string    `json:"msg"`
	MsgFrom     string    `json:"msgFrom"`
	MsgDateTime time.Time `json:"msgDateTime"`
}
