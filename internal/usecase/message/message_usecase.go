package message

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gdugdh24/lovematch/internal/domain"
	"github.com/gdugdh24/lovematch/internal/pkg/log"
	"github.com/gdugdh24/lovematch/internal/pkg/validate"
	"github.com/gdugdh24/lovematch/internal/repository"
)

type MessageUseCase struct {
	messageRepo repository.MessageRepository
	matchRepo   repository.MatchRepository
	now         func() time.Time
}

type Option func(*MessageUseCase)

func WithClock(now func() time.Time) Option {
	return func(uc *MessageUseCase) { uc.now = now }
}

func NewMessageUseCase(messageRepo repository.MessageRepository, matchRepo repository.MatchRepository, opts ...Option) *MessageUseCase {
	uc := &MessageUseCase{messageRepo: messageRepo, matchRepo: matchRepo, now: time.Now}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

type SendMessageInput struct {
	MatchID  int64  `json:"match_id" validate:"required"`
	SenderID int64  `json:"sender_id" validate:"required"`
	Content  string `json:"content" validate:"required,max=5000"`
}

// Send appends a message to a match. The sender must be one of the two
// participants.
func (uc *MessageUseCase) Send(ctx context.Context, in SendMessageInput) (*domain.Message, error) {
	const op = "message.MessageUseCase.Send"

	if strings.TrimSpace(in.Content) == "" {
		return nil, fmt.Errorf("%s: empty content: %w", op, domain.ErrInvalidInput)
	}
	if err := validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	match, err := uc.matchRepo.GetByID(ctx, in.MatchID)
	if err != nil {
		if errors.Is(err, domain.ErrMatchNotFound) {
			return nil, fmt.Errorf("%s: match %d: %w", op, in.MatchID, domain.ErrUnknownMatch)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !match.HasProfile(in.SenderID) {
		return nil, fmt.Errorf("%s: profile %d: %w", op, in.SenderID, domain.ErrNotParticipant)
	}

	msg := &domain.Message{
		MatchID:  in.MatchID,
		SenderID: in.SenderID,
		Content:  in.Content,
		SentAt:   uc.now(),
	}
	if err := uc.messageRepo.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.From(ctx).Debug("message_sent", "op", op, "match_id", msg.MatchID, "message_id", msg.ID)
	return msg, nil
}

// List returns the newest domain.MessageWindow messages of a match, newest
// first.
func (uc *MessageUseCase) List(ctx context.Context, matchID int64) ([]*domain.Message, error) {
	const op = "message.MessageUseCase.List"

	msgs, err := uc.messageRepo.ListRecent(ctx, matchID, domain.MessageWindow)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return msgs, nil
}
