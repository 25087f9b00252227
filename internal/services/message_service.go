package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"socialnet/internal/models"
	"socialnet/internal/storage"
)

var (
	ErrSelfMessage      = errors.New("cannot send a message to yourself")
	ErrEmptyMessage     = errors.New("message content must not be empty")
	ErrMessageNotFound  = errors.New("message not found")
	ErrNotMessageSender = errors.New("only the sender can delete a message")
)

// MessageService defines the interface for direct messaging.
type MessageService interface {
	Send(ctx context.Context, senderID, receiverID uint, content string) (*models.Message, error)
	// GetHistory returns the full exchange between the caller and another
	// user, oldest first.
	GetHistory(ctx context.Context, callerID, otherUserID uint) ([]*models.Message, error)
	// MarkSeen marks every unseen message from senderID to the caller as
	// seen, returning how many changed. Calling it again is a no-op.
	MarkSeen(ctx context.Context, callerID, senderID uint) (int64, error)
	// ConversationsFor folds the caller's messages into one summary per
	// counterpart: the most recent message and the caller's unread count.
	ConversationsFor(ctx context.Context, callerID uint) ([]*models.ConversationSummary, error)
	DeleteMessage(ctx context.Context, callerID, messageID uint) error
}

// messageService is the MessageService implementation.
type messageService struct {
	messageRepo storage.MessageRepository
	userRepo    storage.UserRepository
	notifier    Notifier
}

// NewMessageService creates a new MessageService instance.
func NewMessageService(messageRepo storage.MessageRepository, userRepo storage.UserRepository, notifier Notifier) MessageService {
	return &messageService{messageRepo: messageRepo, userRepo: userRepo, notifier: notifier}
}

// Send stores a message and notifies the receiver.
func (s *messageService) Send(ctx context.Context, senderID, receiverID uint, content string) (*models.Message, error) {
	if senderID == receiverID {
		return nil, ErrSelfMessage
	}
	if content == "" {
		return nil, ErrEmptyMessage
	}

	if _, err := s.userRepo.GetByID(ctx, receiverID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to look up receiver %d: %w", receiverID, err)
	}

	message := &models.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
	}
	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, fmt.Errorf("failed to store message: %w", err)
	}

	s.notifier.Notify(ctx, NotificationEvent{
		Type:        NotificationNewMessage,
		ActorID:     senderID,
		RecipientID: receiverID,
		SubjectID:   message.ID,
	})
	return message, nil
}

// GetHistory returns the exchange between the caller and the other user,
// oldest first.
func (s *messageService) GetHistory(ctx context.Context, callerID, otherUserID uint) ([]*models.Message, error) {
	messages, err := s.messageRepo.GetBetween(ctx, callerID, otherUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch message history: %w", err)
	}
	return messages, nil
}

// MarkSeen flips seen on everything the sender has sent the caller.
func (s *messageService) MarkSeen(ctx context.Context, callerID, senderID uint) (int64, error) {
	updated, err := s.messageRepo.MarkSeen(ctx, senderID, callerID)
	if err != nil {
		return 0, fmt.Errorf("failed to mark messages seen: %w", err)
	}
	return updated, nil
}

// ConversationsFor builds the caller's conversation list: one summary per
// counterpart ordered by recency of the last message, partners resolved in a
// single batched lookup.
func (s *messageService) ConversationsFor(ctx context.Context, callerID uint) ([]*models.ConversationSummary, error) {
	messages, err := s.messageRepo.GetAllFor(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}

	partnerIDs, summaries := foldConversations(callerID, messages)
	if len(partnerIDs) == 0 {
		return []*models.ConversationSummary{}, nil
	}

	partners, err := s.userRepo.GetMultipleBasicInfoByIDs(ctx, partnerIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve conversation partners: %w", err)
	}
	partnerByID := make(map[uint]*models.UserBasicInfo, len(partners))
	for _, p := range partners {
		partnerByID[p.ID] = p
	}

	result := make([]*models.ConversationSummary, 0, len(partnerIDs))
	for _, id := range partnerIDs {
		summary := summaries[id]
		summary.Partner = partnerByID[id]
		if summary.Partner == nil {
			// Counterpart account deleted; keep the thread with a stub.
			summary.Partner = &models.UserBasicInfo{ID: id}
		}
		result = append(result, summary)
	}
	return result, nil
}

// foldConversations groups messages by counterpart. Messages must arrive
// newest first: the first message seen per counterpart becomes the
// conversation's last message, and unseen messages addressed to userID count
// toward that counterpart's unread total. Returned partner IDs preserve the
// recency order.
func foldConversations(userID uint, messages []*models.Message) ([]uint, map[uint]*models.ConversationSummary) {
	var partnerIDs []uint
	summaries := make(map[uint]*models.ConversationSummary)

	for _, msg := range messages {
		partnerID := msg.SenderID
		if partnerID == userID {
			partnerID = msg.ReceiverID
		}

		summary, ok := summaries[partnerID]
		if !ok {
			summary = &models.ConversationSummary{LastMessage: msg}
			summaries[partnerID] = summary
			partnerIDs = append(partnerIDs, partnerID)
		}
		if msg.ReceiverID == userID && !msg.Seen {
			summary.UnreadCount++
		}
	}
	return partnerIDs, summaries
}

// DeleteMessage removes a message. Only the sender may delete.
func (s *messageService) DeleteMessage(ctx context.Context, callerID, messageID uint) error {
	message, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMessageNotFound
		}
		return fmt.Errorf("failed to fetch message %d: %w", messageID, err)
	}
	if message.SenderID != callerID {
		return ErrNotMessageSender
	}
	if err := s.messageRepo.Delete(ctx, messageID); err != nil {
		return fmt.Errorf("failed to delete message %d: %w", messageID, err)
	}
	return nil
}
