package domain

import "time"

// MessageWindow is the maximum number of messages returned for a match.
const MessageWindow = 50

type Message struct {
	ID       int64     `json:"id"`
	MatchID  int64     `json:"match_id"`
	SenderID int64     `json:"sender_id"`
	Content  string    `json:"content"`
	SentAt   time.Time `json:"timestamp"`
	Read     bool      `json:"read"`
}
