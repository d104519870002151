package handlers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/ad/go-telegram-skills/internal/db"
	"github.com/ad/go-telegram-skills/internal/fsm"
	"github.com/ad/go-telegram-skills/internal/models"
	"github.com/ad/go-telegram-skills/internal/services"
	"github.com/go-telegram/bot"
	tgmodels "github.com/go-telegram/bot/models"
)

var xpGrantValues = []int{1, 5, 10, 20, 50, 75, 100}

type BotHandler struct {
	client       services.TelegramClient
	errorManager *services.ErrorManager
	msgManager   *services.MessageManager
	cooldown     *services.CooldownGuard
	sessions     *fsm.Store
	userRepo     *db.UserRepository
	skillRepo    *db.SkillRepository
}

func NewBotHandler(
	client services.TelegramClient,
	errorManager *services.ErrorManager,
	msgManager *services.MessageManager,
	cooldown *services.CooldownGuard,
	sessions *fsm.Store,
	userRepo *db.UserRepository,
	skillRepo *db.SkillRepository,
) *BotHandler {
	return &BotHandler{
		client:       client,
		errorManager: errorManager,
		msgManager:   msgManager,
		cooldown:     cooldown,
		sessions:     sessions,
		userRepo:     userRepo,
		skillRepo:    skillRepo,
	}
}

func (h *BotHandler) HandleUpdate(ctx context.Context, _ *bot.Bot, update *tgmodels.Update) {
	defer h.recoverPanic(ctx, update)

	if update.Message != nil {
		h.handleMessage(ctx, update.Message)
	} else if update.CallbackQuery != nil {
		h.handleCallback(ctx, update.CallbackQuery)
	}
}

func (h *BotHandler) recoverPanic(ctx context.Context, update *tgmodels.Update) {
	if r := recover(); r != nil {
		h.errorManager.NotifyAdmin(ctx, r, update)
	}
}

func (h *BotHandler) handleMessage(ctx context.Context, msg *tgmodels.Message) {
	if msg.From == nil {
		return
	}

	switch msg.Text {
	case "/start":
		h.handleStart(ctx, msg)
	case "/listskills":
		h.handleListSkills(ctx, msg)
	case "/addxp":
		h.handleAddXP(ctx, msg)
	case "/delexper":
		h.handleDelExper(ctx, msg)
	case "/rename":
		h.handleRename(ctx, msg)
	case "/deladdskills":
		h.handleDelAddSkills(ctx, msg)
	case "/rating":
		h.handleRating(ctx, msg)
	case "/cancel":
		h.handleCancel(ctx, msg)
	default:
		if session, ok := h.sessions.Get(msg.From.ID); ok {
			h.handleSessionText(ctx, msg, session)
		}
		// Stray text without a session has no handler.
	}
}

// ================= Commands =================

func (h *BotHandler) handleStart(ctx context.Context, msg *tgmodels.Message) {
	userID := msg.From.ID

	if err := h.upsertUser(msg.From); err != nil {
		h.sendError(ctx, msg.Chat.ID, "Ошибка при регистрации")
		return
	}

	count, err := h.skillRepo.CountByUser(userID)
	if err != nil {
		h.sendError(ctx, msg.Chat.ID, "Не получилось прочитать навыки")
		return
	}

	if count > 0 {
		h.msgManager.SendWithRetry(ctx, &bot.SendMessageParams{
			ChatID: msg.Chat.ID,
			Text:   "У тебя уже есть созданная ветка навыков.\n\nЖми /listskills чтобы посмотреть их.🚀",
		})
		return
	}

	markup := &tgmodels.InlineKeyboardMarkup{
		InlineKeyboard: [][]tgmodels.InlineKeyboardButton{
			{{Text: "Создать", CallbackData: "create_skills"}},
		},
	}

	h.msgManager.SendActive(ctx, userID, &bot.SendMessageParams{
		ChatID:      msg.Chat.ID,
		Text:        "Прокачка персонажа начата.\n\nТеперь создай навыки, на них будет поступать XP.✅",
		ReplyMarkup: markup,
	})
}

func (h *BotHandler) handleListSkills(ctx context.Context, msg *tgmodels.Message) {
	skills, err := h.skillRepo.ListByUser(msg.From.ID)
	if err != nil {
		h.sendError(ctx, msg.Chat.ID, "Не получилось прочитать навыки")
		return
	}

	if len(skills) == 0 {
		h.msgManager.SendWithRetry(ctx, &bot.SendMessageParams{
			ChatID: msg.Chat.ID,
			Text:   "У тебя пока нет навыков.",
		})
		return
	}

	text := "Твои навыки.\n\n" + services.FormatSkillList(skills) +
		"\nЕсли хочешь увеличить XP, жми на - /addxp.🚀"

	h.msgManager.SendWithRetry(ctx, &bot.SendMessageParams{
		ChatID: msg.Chat.ID,
		Text:   text,
	})
}

func (h *BotHandler) handleAddXP(ctx context.Context, msg *tgmodels.Message) {
	skills, err := h.skillRepo.ListByUser(msg.From.ID)
	if err != nil {
		h.sendError(ctx, msg.Chat.ID, "Не получилось прочитать навыки")
		return
	}

	if len(skills) == 0 {
		h.msgManager.SendWithRetry(ctx, &bot.SendMessageParams{
			ChatID: msg.Chat.ID,
			Text:   "Сначала создай навыки через /start.",
		})
		return
	}

	text := "Твои навыки.\n\n" + services.FormatSkillList(skills) +
		"\nВыбери навык ниже, чтобы добавить XP.🚀"

	h.msgManager.SendActive(ctx, msg.From.ID, &bot.SendMessageParams{
		ChatID:      msg.Chat.ID,
		Text:        text,
		ReplyMarkup: skillButtons(skills, "selectskill_"),
	})
}

func (h *BotHandler) handleDelExper(ctx context.Context, msg *tgmodels.Message) {
	skills, ok := h.requireSkills(ctx, msg)
	if !ok {
		return
	}

	h.msgManager.SendActive(ctx, msg.From.ID, &bot.SendMessageParams{
		ChatID:      msg.Chat.ID,
		Text:        "Из какого навыка требуется убрать XP?",
		ReplyMarkup: skillButtons(skills, "choose_delxp_"),
	})
}

func (h *BotHandler) handleRename(ctx context.Context, msg *tgmodels.Message) {
	skills, ok := h.requireSkills(ctx, msg)
	if !ok {
		return
	}

	markup := skillButtons(skills, "rename_")
	markup.InlineKeyboard = append(markup.InlineKeyboard, []tgmodels.InlineKeyboardButton{
		{Text: "Я передумал.", CallbackData: "rename_cancel"},
	})

	h.msgManager.SendActive(ctx, msg.From.ID, &bot.SendMessageParams{
		ChatID:      msg.Chat.ID,
		Text:        "Какому навыку нужно изменить имя?🤔",
		ReplyMarkup: markup,
	})
}

func (h *BotHandler) handleDelAddSkills(ctx context.Context, msg *tgmodels.Message) {
	if _, ok := h.requireSkills(ctx, msg); !ok {
		return
	}

	markup := &tgmodels.InlineKeyboardMarkup{
		InlineKeyboard: [][]tgmodels.InlineKeyboardButton{
			{
				{Text: "Удалить", CallbackData: "delete_mode"},
				{Text: "Добавить", CallbackData: "add_mode"},
			},
		},
	}

	h.msgManager.SendActive(ctx, msg.From.ID, &bot.SendMessageParams{
		ChatID:      msg.Chat.ID,
		Text:        "Ты хочешь удалить или добавить новый навык?",
		ReplyMarkup: markup,
	})
}

func (h *BotHandler) handleRating(ctx context.Context, msg *tgmodels.Message) {
	top, err := h.userRepo.TopByTotalXP(10)
	if err != nil {
		h.sendError(ctx, msg.Chat.ID, "Не получилось построить рейтинг")
		return
	}

	if len(top) == 0 {
		h.msgManager.SendWithRetry(ctx, &bot.SendMessageParams{
			ChatID: msg.Chat.ID,
			Text:   "Пока нет данных.",
		})
		return
	}

	h.msgManager.SendWithRetry(ctx, &bot.SendMessageParams{
		ChatID: msg.Chat.ID,
		Text:   services.FormatRating(top),
	})
}

func (h *BotHandler) handleCancel(ctx context.Context, msg *tgmodels.Message) {
	userID := msg.From.ID

	if _, ok := h.sessions.Get(userID); !ok {
		return
	}

	h.sessions.Clear(userID)
	h.msgManager.ClearPrompt(ctx, userID)
	h.msgManager.DeleteMessage(ctx, msg.Chat.ID, msg.ID)

	h.msgManager.SendWithRetry(ctx, &bot.SendMessageParams{
		ChatID: msg.Chat.ID,
		Text:   "Действие отменено.",
	})
}

// requireSkills guards the commands that only make sense after /start
// created at least one skill.
func (h *BotHandler) requireSkills(ctx context.Context, msg *tgmodels.Message) ([]*models.Skill, bool) {
	skills, err := h.skillRepo.ListByUser(msg.From.ID)
	if err != nil {
		h.sendError(ctx, msg.Chat.ID, "Не получилось прочитать навыки")
		return nil, false
	}
	if len(skills) == 0 {
		h.msgManager.SendWithRetry(ctx, &bot.SendMessageParams{
			ChatID: msg.Chat.ID,
			Text:   "Сначала нажми первую команду /start.",
		})
		return nil, false
	}
	return skills, true
}

// ================= Session text input =================

func (h *BotHandler) handleSessionText(ctx context.Context, msg *tgmodels.Message, session fsm.Session) {
	if msg.Text == "" {
		return
	}

	switch session.Mode {
	case fsm.ModeCollectingNames:
		h.handleCollectName(ctx, msg, session)
	case fsm.ModeAddingSkill:
		h.handleAddSkillName(ctx, msg)
	case fsm.ModeRenaming:
		h.handleNewSkillName(ctx, msg, session)
	case fsm.ModeSubtractingXP:
		h.handleSubtractAmount(ctx, msg, session)
	default:
		// A mode this build does not know cannot be resumed.
		log.Printf("dropping session with unknown mode %q for user %d", session.Mode, msg.From.ID)
		h.sessions.Clear(msg.From.ID)
	}
}

func (h *BotHandler) handleCollectName(ctx context.Context, msg *tgmodels.Message, session fsm.Session) {
	userID := msg.From.ID

	if err := h.upsertUser(msg.From); err != nil {
		h.sendError(ctx, msg.Chat.ID, "Не получилось сохранить навык, отправь название ещё раз")
		return
	}
	if _, err := h.skillRepo.Create(userID, msg.Text); err != nil {
		h.sendError(ctx, msg.Chat.ID, "Не получилось сохранить навык, отправь название ещё раз")
		return
	}

	h.consumeInput(ctx, msg)

	session.Remaining--
	if session.Remaining > 0 {
		h.sessions.Start(userID, session)
		h.msgManager.SendPrompt(ctx, userID, &bot.SendMessageParams{
			ChatID: msg.Chat.ID,
			Text:   "Дай название следующему навыку.",
		})
		return
	}

	h.sessions.Clear(userID)
	h.msgManager.SendWithRetry(ctx, &bot.SendMessageParams{
		ChatID: msg.Chat.ID,
		Text: fmt.Sprintf("Персонаж получил %d %s.\n\nЖми /listskills для просмотра своих навыков.🎉",
			session.Total, services.PluralSkills(session.Total)),
	})
}

func (h *BotHandler) handleAddSkillName(ctx context.Context, msg *tgmodels.Message) {
	userID := msg.From.ID

	if err := h.upsertUser(msg.From); err != nil {
		h.sendError(ctx, msg.Chat.ID, "Не получилось сохранить навык, отправь название ещё раз")
		return
	}
	if _, err := h.skillRepo.Create(userID, msg.Text); err != nil {
		h.sendError(ctx, msg.Chat.ID, "Не получилось сохранить навык, отправь название ещё раз")
		return
	}

	h.consumeInput(ctx, msg)
	h.sessions.Clear(userID)

	h.msgManager.SendWithRetry(ctx, &bot.SendMessageParams{
		ChatID: msg.Chat.ID,
		Text:   "Новый навык успешно добавлен.🎉",
	})
}

func (h *BotHandler) handleNewSkillName(ctx context.Context, msg *tgmodels.Message, session fsm.Session) {
	userID := msg.From.ID

	if err := h.skillRepo.Rename(session.SkillID, msg.Text); err != nil {
		h.sendError(ctx, msg.Chat.ID, "Не получилось переименовать навык, отправь имя ещё раз")
		return
	}

	h.consumeInput(ctx, msg)
	h.sessions.Clear(userID)

	h.msgManager.SendWithRetry(ctx, &bot.SendMessageParams{
		ChatID: msg.Chat.ID,
		Text:   fmt.Sprintf("Теперь твой навык называется \"%s\"✅.", msg.Text),
	})
}

func (h *BotHandler) handleSubtractAmount(ctx context.Context, msg *tgmodels.Message, session fsm.Session) {
	userID := msg.From.ID

	amount, err := strconv.Atoi(msg.Text)
	if err != nil || amount < 0 {
		// Not a number: the input vanishes from the transcript and the
		// prompt stays up waiting for a valid one.
		h.msgManager.DeleteMessage(ctx, msg.Chat.ID, msg.ID)
		return
	}

	skill, err := h.skillRepo.GetByID(session.SkillID)
	if errors.Is(err, sql.ErrNoRows) {
		// Deleted from another menu in the meantime; nothing left to reduce.
		h.consumeInput(ctx, msg)
		h.sessions.Clear(userID)
		return
	}
	if err != nil {
		h.sendError(ctx, msg.Chat.ID, "Не получилось изменить XP, отправь число ещё раз")
		return
	}

	newXP := skill.XP - amount
	if newXP < 0 {
		newXP = 0
	}

	if err := h.skillRepo.UpdateXP(skill.ID, newXP); err != nil {
		h.sendError(ctx, msg.Chat.ID, "Не получилось изменить XP, отправь число ещё раз")
		return
	}

	h.consumeInput(ctx, msg)
	h.sessions.Clear(userID)

	h.msgManager.SendWithRetry(ctx, &bot.SendMessageParams{
		ChatID: msg.Chat.ID,
		Text:   fmt.Sprintf("Теперь у твоего навыка %d XP.", newXP),
	})
}

// consumeInput removes the user's raw message and the prompt it
// answered, keeping the transcript bot-authored. Called only after the
// write succeeded.
func (h *BotHandler) consumeInput(ctx context.Context, msg *tgmodels.Message) {
	h.msgManager.DeleteMessage(ctx, msg.Chat.ID, msg.ID)
	h.msgManager.ClearPrompt(ctx, msg.From.ID)
}

// ================= Callbacks =================

func (h *BotHandler) handleCallback(ctx context.Context, cb *tgmodels.CallbackQuery) {
	data := cb.Data

	// Exact tags first: "delete_mode" and "rename_cancel" would also
	// match the id-carrying prefixes below.
	switch data {
	case "create_skills":
		h.handleCreateSkills(ctx, cb)
		return
	case "rename_cancel":
		h.msgManager.ClearActive(ctx, cb.From.ID)
		h.ackCallback(ctx, cb)
		return
	case "delete_mode":
		h.handleDeleteMode(ctx, cb)
		return
	case "add_mode":
		h.handleAddMode(ctx, cb)
		return
	}

	switch {
	case strings.HasPrefix(data, "skillcount_"):
		h.handleSkillCount(ctx, cb)
	case strings.HasPrefix(data, "selectskill_"):
		h.handleSelectSkill(ctx, cb)
	case strings.HasPrefix(data, "addxp_"):
		h.handleGrantXP(ctx, cb)
	case strings.HasPrefix(data, "choose_delxp_"):
		h.handleChooseSubtract(ctx, cb)
	case strings.HasPrefix(data, "rename_"):
		h.handleChooseRename(ctx, cb)
	case strings.HasPrefix(data, "delete_"):
		h.handleDeleteSkill(ctx, cb)
	default:
		h.ackCallback(ctx, cb)
	}
}

func (h *BotHandler) handleCreateSkills(ctx context.Context, cb *tgmodels.CallbackQuery) {
	userID := cb.From.ID

	var rows [][]tgmodels.InlineKeyboardButton
	var row []tgmodels.InlineKeyboardButton
	for i := 1; i <= 8; i++ {
		row = append(row, tgmodels.InlineKeyboardButton{
			Text:         strconv.Itoa(i),
			CallbackData: fmt.Sprintf("skillcount_%d", i),
		})
		if len(row) == 4 {
			rows = append(rows, row)
			row = nil
		}
	}

	h.msgManager.SendActive(ctx, userID, &bot.SendMessageParams{
		ChatID:      h.callbackChatID(cb),
		Text:        "Выбери кол-во навыков.",
		ReplyMarkup: &tgmodels.InlineKeyboardMarkup{InlineKeyboard: rows},
	})
	h.ackCallback(ctx, cb)
}

func (h *BotHandler) handleSkillCount(ctx context.Context, cb *tgmodels.CallbackQuery) {
	userID := cb.From.ID
	chatID := h.callbackChatID(cb)

	count, err := strconv.Atoi(strings.TrimPrefix(cb.Data, "skillcount_"))
	if err != nil || count < 1 {
		h.ackCallback(ctx, cb)
		return
	}

	h.msgManager.ClearActive(ctx, userID)

	h.sessions.Start(userID, fsm.Session{
		Mode:      fsm.ModeCollectingNames,
		Remaining: count,
		Total:     count,
	})

	h.msgManager.SendWithRetry(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   "Лучше давать простые названия навыкам.✏️",
	})
	h.msgManager.SendPrompt(ctx, userID, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   "Дай название первому навыку.",
	})
	h.ackCallback(ctx, cb)
}

func (h *BotHandler) handleSelectSkill(ctx context.Context, cb *tgmodels.CallbackQuery) {
	userID := cb.From.ID

	h.msgManager.ClearActive(ctx, userID)

	skill, ok := h.callbackSkill(ctx, cb, "selectskill_")
	if !ok {
		return
	}

	var rows [][]tgmodels.InlineKeyboardButton
	var row []tgmodels.InlineKeyboardButton
	for _, value := range xpGrantValues {
		row = append(row, tgmodels.InlineKeyboardButton{
			Text:         fmt.Sprintf("+%d", value),
			CallbackData: fmt.Sprintf("addxp_%d_%d", skill.ID, value),
		})
		if len(row) == 3 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	h.msgManager.SendActive(ctx, userID, &bot.SendMessageParams{
		ChatID:      h.callbackChatID(cb),
		Text:        fmt.Sprintf("%s.🔥\n\nТекущий XP: %d", skill.Name, skill.XP),
		ReplyMarkup: &tgmodels.InlineKeyboardMarkup{InlineKeyboard: rows},
	})
	h.ackCallback(ctx, cb)
}

func (h *BotHandler) handleGrantXP(ctx context.Context, cb *tgmodels.CallbackQuery) {
	userID := cb.From.ID
	chatID := h.callbackChatID(cb)

	h.msgManager.ClearActive(ctx, userID)

	parts := strings.Split(cb.Data, "_")
	if len(parts) != 3 {
		h.ackCallback(ctx, cb)
		return
	}
	skillID, err1 := strconv.ParseInt(parts[1], 10, 64)
	amount, err2 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil {
		h.ackCallback(ctx, cb)
		return
	}

	if !h.cooldown.Allow(userID) {
		h.alertCallback(ctx, cb, "Подожди 2 минуты.⏳")
		return
	}

	skill, err := h.skillRepo.GetByID(skillID)
	if errors.Is(err, sql.ErrNoRows) {
		h.ackCallback(ctx, cb)
		return
	}
	if err != nil {
		h.sendError(ctx, chatID, "Не получилось начислить XP")
		h.ackCallback(ctx, cb)
		return
	}

	newXP := skill.XP + amount
	if err := h.skillRepo.UpdateXP(skill.ID, newXP); err != nil {
		h.sendError(ctx, chatID, "Не получилось начислить XP")
		h.ackCallback(ctx, cb)
		return
	}

	h.msgManager.SendWithRetry(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text: fmt.Sprintf("Твой навык \"%s\" получил %d XP.\n\nОбщий XP стал %d, красавчик!💎",
			skill.Name, amount, newXP),
	})
	h.ackCallback(ctx, cb)
}

func (h *BotHandler) handleChooseSubtract(ctx context.Context, cb *tgmodels.CallbackQuery) {
	userID := cb.From.ID

	h.msgManager.ClearActive(ctx, userID)

	skill, ok := h.callbackSkill(ctx, cb, "choose_delxp_")
	if !ok {
		return
	}

	h.sessions.Start(userID, fsm.Session{
		Mode:    fsm.ModeSubtractingXP,
		SkillID: skill.ID,
	})

	h.msgManager.SendPrompt(ctx, userID, &bot.SendMessageParams{
		ChatID: h.callbackChatID(cb),
		Text:   "Напиши насколько XP нужно уменьшить навык.",
	})
	h.ackCallback(ctx, cb)
}

func (h *BotHandler) handleChooseRename(ctx context.Context, cb *tgmodels.CallbackQuery) {
	userID := cb.From.ID

	h.msgManager.ClearActive(ctx, userID)

	skill, ok := h.callbackSkill(ctx, cb, "rename_")
	if !ok {
		return
	}

	h.sessions.Start(userID, fsm.Session{
		Mode:    fsm.ModeRenaming,
		SkillID: skill.ID,
	})

	h.msgManager.SendPrompt(ctx, userID, &bot.SendMessageParams{
		ChatID: h.callbackChatID(cb),
		Text:   "Укажи новое имя навыка.",
	})
	h.ackCallback(ctx, cb)
}

func (h *BotHandler) handleDeleteMode(ctx context.Context, cb *tgmodels.CallbackQuery) {
	userID := cb.From.ID

	h.msgManager.ClearActive(ctx, userID)

	skills, err := h.skillRepo.ListByUser(userID)
	if err != nil || len(skills) == 0 {
		h.ackCallback(ctx, cb)
		return
	}

	h.msgManager.SendActive(ctx, userID, &bot.SendMessageParams{
		ChatID:      h.callbackChatID(cb),
		Text:        "Выбери навык, чтобы его удалить.😔\n\nОпыт, который ты получил ранее, будет сохранен.",
		ReplyMarkup: skillButtons(skills, "delete_"),
	})
	h.ackCallback(ctx, cb)
}

func (h *BotHandler) handleAddMode(ctx context.Context, cb *tgmodels.CallbackQuery) {
	userID := cb.From.ID

	h.msgManager.ClearActive(ctx, userID)

	h.sessions.Start(userID, fsm.Session{Mode: fsm.ModeAddingSkill})

	h.msgManager.SendPrompt(ctx, userID, &bot.SendMessageParams{
		ChatID: h.callbackChatID(cb),
		Text:   "Дай название новому навыку.",
	})
	h.ackCallback(ctx, cb)
}

func (h *BotHandler) handleDeleteSkill(ctx context.Context, cb *tgmodels.CallbackQuery) {
	userID := cb.From.ID
	chatID := h.callbackChatID(cb)

	h.msgManager.ClearActive(ctx, userID)

	skill, ok := h.callbackSkill(ctx, cb, "delete_")
	if !ok {
		return
	}

	// Bank the XP before dropping the row so the user's total survives
	// the deletion.
	if err := h.userRepo.IncrementSavedXP(userID, skill.XP); err != nil {
		h.sendError(ctx, chatID, "Не получилось удалить навык")
		h.ackCallback(ctx, cb)
		return
	}
	if err := h.skillRepo.Delete(skill.ID); err != nil {
		h.sendError(ctx, chatID, "Не получилось удалить навык")
		h.ackCallback(ctx, cb)
		return
	}

	h.msgManager.SendWithRetry(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   "Твой навык удален.",
	})
	h.ackCallback(ctx, cb)
}

// ================= Helpers =================

// callbackSkill resolves the skill id carried in a callback tag. A
// skill that vanished since the menu was rendered just acknowledges the
// tap; the stale button leads nowhere.
func (h *BotHandler) callbackSkill(ctx context.Context, cb *tgmodels.CallbackQuery, prefix string) (*models.Skill, bool) {
	id, err := strconv.ParseInt(strings.TrimPrefix(cb.Data, prefix), 10, 64)
	if err != nil {
		h.ackCallback(ctx, cb)
		return nil, false
	}

	skill, err := h.skillRepo.GetByID(id)
	if err != nil {
		h.ackCallback(ctx, cb)
		return nil, false
	}
	return skill, true
}

func (h *BotHandler) callbackChatID(cb *tgmodels.CallbackQuery) int64 {
	if cb.Message.Message != nil {
		return cb.Message.Message.Chat.ID
	}
	// Private-chat bot: the user id doubles as the chat id.
	return cb.From.ID
}

func (h *BotHandler) ackCallback(ctx context.Context, cb *tgmodels.CallbackQuery) {
	h.client.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: cb.ID,
	})
}

func (h *BotHandler) alertCallback(ctx context.Context, cb *tgmodels.CallbackQuery, text string) {
	h.client.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: cb.ID,
		Text:            text,
		ShowAlert:       true,
	})
}

func (h *BotHandler) sendError(ctx context.Context, chatID int64, text string) {
	h.msgManager.SendWithRetry(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   "⚠️ " + text,
	})
}

func (h *BotHandler) upsertUser(from *tgmodels.User) error {
	return h.userRepo.CreateOrUpdate(&models.User{
		ID:        from.ID,
		FirstName: from.FirstName,
		LastName:  from.LastName,
		Username:  from.Username,
	})
}

func skillButtons(skills []*models.Skill, prefix string) *tgmodels.InlineKeyboardMarkup {
	rows := make([][]tgmodels.InlineKeyboardButton, 0, len(skills))
	for _, skill := range skills {
		rows = append(rows, []tgmodels.InlineKeyboardButton{{
			Text:         skill.Name,
			CallbackData: fmt.Sprintf("%s%d", prefix, skill.ID),
		}})
	}
	return &tgmodels.InlineKeyboardMarkup{InlineKeyboard: rows}
}
