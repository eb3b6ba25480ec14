package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/you/agrigo/pkg/apperr"
	"github.com/you/agrigo/services/marketplace-api/internal/chatstore"
	"github.com/you/agrigo/services/marketplace-api/internal/domain"
	"github.com/you/agrigo/services/marketplace-api/internal/policy"
	"github.com/you/agrigo/services/marketplace-api/internal/repository"
)

type SendMessageInput struct {
	BookingID string `json:"booking_id"`
	Message   string `json:"message"`
}

type ChatSvc struct {
	store    *chatstore.BoltStore
	bookings *repository.BookingRepo
	now      func() time.Time
}

func NewChatSvc(store *chatstore.BoltStore, bookings *repository.BookingRepo) *ChatSvc {
	return &ChatSvc{store: store, bookings: bookings, now: time.Now}
}

// party loads the booking and checks the caller belongs to it.
func (s *ChatSvc) party(ctx context.Context, actor policy.Actor, bookingID, denied string) error {
	b, err := s.bookings.ByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if !policy.CanActOnBooking(actor, b, b.Resource) {
		return apperr.New(apperr.Forbidden, denied)
	}
	return nil
}

func (s *ChatSvc) Send(ctx context.Context, actor policy.Actor, in SendMessageInput) (*domain.ChatMessage, error) {
	in.BookingID = strings.TrimSpace(in.BookingID)
	in.Message = strings.TrimSpace(in.Message)
	if err := required(field{"booking_id", in.BookingID != ""}, field{"message", in.Message != ""}); err != nil {
		return nil, err
	}
	if err := s.party(ctx, actor, in.BookingID, "You do not have permission to chat on this booking"); err != nil {
		return nil, err
	}
	m := &domain.ChatMessage{
		ID:         uuid.NewString(),
		BookingID:  in.BookingID,
		SenderID:   actor.ID,
		SenderName: actor.Name,
		SenderRole: actor.Role,
		Message:    in.Message,
		Timestamp:  s.now().UTC(),
	}
	if err := s.store.Append(m); err != nil {
		return nil, apperr.Store("append chat message", err)
	}
	return m, nil
}

func (s *ChatSvc) Messages(ctx context.Context, actor policy.Actor, bookingID string) ([]domain.ChatMessage, error) {
	if err := s.party(ctx, actor, bookingID, "You do not have permission to view these messages"); err != nil {
		return nil, err
	}
	items, err := s.store.List(bookingID)
	if err != nil {
		return nil, apperr.Store("read chat thread", err)
	}
	return items, nil
}

// MarkRead needs ids to be present; an empty list is a no-op.
func (s *ChatSvc) MarkRead(ctx context.Context, bookingID string, ids []string) (int, error) {
	if ids == nil {
		return 0, apperr.Validationf("message_ids must be an array")
	}
	n, err := s.store.MarkRead(bookingID, ids)
	if err != nil {
		return 0, apperr.Store("mark messages read", err)
	}
	return n, nil
}
