package services

import (
	"context"
	"sync"

	"github.com/go-telegram/bot"
	tgmodels "github.com/go-telegram/bot/models"
)

type trackedMessage struct {
	chatID    int64
	messageID int
}

// MessageManager sends outbound messages with retry and keeps the chat
// clean: per user it remembers the latest menu/result message (the
// "active" slot) and the latest "please type X" message (the "prompt"
// slot), each replaced and deleted independently. Only the most recent
// message per slot is ever tracked; deletion is best-effort because the
// user may have removed the message first.
//
// Both slots are in-memory on purpose. Like sessions, they do not
// survive a restart; an orphaned menu just stops working.
type MessageManager struct {
	client   TelegramClient
	errMgr   *ErrorManager
	maxRetry int

	mu      sync.Mutex
	active  map[int64]trackedMessage
	prompts map[int64]trackedMessage
}

func NewMessageManager(client TelegramClient, errMgr *ErrorManager) *MessageManager {
	return &MessageManager{
		client:   client,
		errMgr:   errMgr,
		maxRetry: 2,
		active:   make(map[int64]trackedMessage),
		prompts:  make(map[int64]trackedMessage),
	}
}

func (m *MessageManager) SendWithRetry(ctx context.Context, params *bot.SendMessageParams) (*tgmodels.Message, error) {
	var lastErr error
	for attempt := 0; attempt < m.maxRetry; attempt++ {
		msg, err := m.client.SendMessage(ctx, params)
		if err == nil {
			return msg, nil
		}
		lastErr = err
	}
	chatID, _ := params.ChatID.(int64)
	m.errMgr.NotifySendFailure(ctx, chatID, params, lastErr)
	return nil, lastErr
}

// SendActive replaces the user's current menu/result message: the
// previous one is deleted, the new one is sent and tracked.
func (m *MessageManager) SendActive(ctx context.Context, userID int64, params *bot.SendMessageParams) (*tgmodels.Message, error) {
	m.ClearActive(ctx, userID)

	msg, err := m.SendWithRetry(ctx, params)
	if err != nil {
		return nil, err
	}

	chatID, _ := params.ChatID.(int64)
	m.TrackActive(userID, chatID, msg.ID)
	return msg, nil
}

// SendPrompt replaces the user's pending "please type X" message.
func (m *MessageManager) SendPrompt(ctx context.Context, userID int64, params *bot.SendMessageParams) (*tgmodels.Message, error) {
	m.ClearPrompt(ctx, userID)

	msg, err := m.SendWithRetry(ctx, params)
	if err != nil {
		return nil, err
	}

	chatID, _ := params.ChatID.(int64)
	m.TrackPrompt(userID, chatID, msg.ID)
	return msg, nil
}

func (m *MessageManager) TrackActive(userID int64, chatID int64, messageID int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.active[userID] = trackedMessage{chatID: chatID, messageID: messageID}
}

func (m *MessageManager) ClearActive(ctx context.Context, userID int64) {
	m.clearSlot(ctx, m.active, userID)
}

func (m *MessageManager) TrackPrompt(userID int64, chatID int64, messageID int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prompts[userID] = trackedMessage{chatID: chatID, messageID: messageID}
}

func (m *MessageManager) ClearPrompt(ctx context.Context, userID int64) {
	m.clearSlot(ctx, m.prompts, userID)
}

func (m *MessageManager) clearSlot(ctx context.Context, slot map[int64]trackedMessage, userID int64) {
	m.mu.Lock()
	tracked, ok := slot[userID]
	delete(slot, userID)
	m.mu.Unlock()

	if ok {
		_ = m.DeleteMessage(ctx, tracked.chatID, tracked.messageID)
	}
}

// DeleteMessage removes a message, tolerating messages that are already
// gone. Callers treat cleanup as best-effort.
func (m *MessageManager) DeleteMessage(ctx context.Context, chatID int64, messageID int) error {
	_, err := m.client.DeleteMessage(ctx, &bot.DeleteMessageParams{
		ChatID:    chatID,
		MessageID: messageID,
	})
	return err
}
