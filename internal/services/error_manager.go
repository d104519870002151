package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"runtime/debug"

	"github.com/go-telegram/bot"
	tgmodels "github.com/go-telegram/bot/models"
)

// ErrorManager escalates panics and repeated send failures to the admin
// chat. With no admin configured it falls back to the process log.
type ErrorManager struct {
	client  TelegramClient
	adminID int64
}

func NewErrorManager(client TelegramClient, adminID int64) *ErrorManager {
	return &ErrorManager{
		client:  client,
		adminID: adminID,
	}
}

func (e *ErrorManager) NotifyAdmin(ctx context.Context, panicValue interface{}, update *tgmodels.Update) {
	userInfo := "unknown"

	if update != nil {
		if update.Message != nil && update.Message.From != nil {
			userInfo = formatFrom(update.Message.From)
		} else if update.CallbackQuery != nil && update.CallbackQuery.From.ID != 0 {
			userInfo = formatFrom(&update.CallbackQuery.From)
		}
	}

	msg := fmt.Sprintf("🚨 Panic in handler\nUser: %s\nError: %v\n\nStack trace:\n%s",
		userInfo, panicValue, string(debug.Stack()))

	e.send(ctx, msg)
}

func (e *ErrorManager) NotifySendFailure(ctx context.Context, chatID int64, request interface{}, err error) {
	msg := fmt.Sprintf("❌ Failed to send message\nChat: [%d]\nError: %v\n\nRequest:\n%s",
		chatID, err, e.dumpRequest(request))

	e.send(ctx, msg)
}

func (e *ErrorManager) send(ctx context.Context, msg string) {
	if len(msg) > 4000 {
		msg = msg[:4000] + "\n... (truncated)"
	}

	if e.adminID == 0 {
		log.Printf("[ERROR] %s", msg)
		return
	}

	_, _ = e.client.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: e.adminID,
		Text:   msg,
	})
}

func (e *ErrorManager) dumpRequest(request interface{}) string {
	jsonData, err := json.MarshalIndent(request, "", "  ")
	if err != nil {
		return fmt.Sprintf("%+v", request)
	}
	return string(jsonData)
}

func formatFrom(u *tgmodels.User) string {
	info := fmt.Sprintf("[%d]", u.ID)
	if u.FirstName != "" {
		info = u.FirstName + " " + info
	}
	if u.Username != "" {
		info = info + " @" + u.Username
	}
	return info
}
