package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/ad/go-telegram-skills/internal/db"
	"github.com/ad/go-telegram-skills/internal/fsm"
	"github.com/ad/go-telegram-skills/internal/handlers"
	"github.com/ad/go-telegram-skills/internal/services"
	"github.com/go-telegram/bot"
	tgmodels "github.com/go-telegram/bot/models"
	_ "github.com/joho/godotenv/autoload"
	_ "modernc.org/sqlite"
)

func main() {
	botToken := os.Getenv("BOT_TOKEN")
	if botToken == "" {
		log.Fatal("BOT_TOKEN environment variable is required")
	}

	// Optional: panics and send failures go to this chat when set.
	adminID := envInt64("ADMIN_ID", 0)

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "skills.db"
	}

	maxClicks := envInt("MAX_FAST_CLICKS", services.DefaultMaxFastClicks)
	cooldownSeconds := envInt("COOLDOWN_SECONDS", services.DefaultCooldownSeconds)

	sqlDB, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer sqlDB.Close()

	if err := db.InitSchema(sqlDB); err != nil {
		log.Fatalf("Failed to initialize schema: %v", err)
	}

	dbQueue := db.NewDBQueue(sqlDB)
	defer dbQueue.Close()

	userRepo := db.NewUserRepository(dbQueue)
	skillRepo := db.NewSkillRepository(dbQueue)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	httpClient := &http.Client{
		Timeout: 30 * time.Second,
	}

	b, err := bot.New(botToken, bot.WithHTTPClient(15*time.Second, httpClient))
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}

	// Retry getMe with shorter timeout
	for i := 0; i < 3; i++ {
		log.Printf("Attempting to connect to Telegram API (attempt %d/3)...", i+1)
		getMeCtx, getMeCancel := context.WithTimeout(context.Background(), 10*time.Second)
		_, err = b.GetMe(getMeCtx)
		getMeCancel()
		if err == nil {
			log.Printf("Successfully connected to Telegram API")
			break
		}
		log.Printf("Failed to get bot info (attempt %d/3): %v", i+1, err)
		if i < 2 {
			log.Printf("Retrying in 2 seconds...")
			time.Sleep(2 * time.Second)
		}
	}
	if err != nil {
		log.Fatalf("Failed to get bot info after 3 attempts: %v", err)
	}

	errorManager := services.NewErrorManager(b, adminID)
	msgManager := services.NewMessageManager(b, errorManager)
	cooldown := services.NewCooldownGuard(maxClicks, time.Duration(cooldownSeconds)*time.Second)
	sessions := fsm.NewStore()

	handler := handlers.NewBotHandler(
		b,
		errorManager,
		msgManager,
		cooldown,
		sessions,
		userRepo,
		skillRepo,
	)

	b.RegisterHandlerMatchFunc(func(update *tgmodels.Update) bool {
		return true
	}, handler.HandleUpdate, logMiddleware)

	log.Printf("Bot started. DB: %s", dbPath)

	b.Start(ctx)
}

func envInt(name string, fallback int) int {
	value := os.Getenv(name)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		log.Fatalf("Invalid %s: %v", name, err)
	}
	return parsed
}

func envInt64(name string, fallback int64) int64 {
	value := os.Getenv(name)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		log.Fatalf("Invalid %s: %v", name, err)
	}
	return parsed
}

func formatUser(u tgmodels.User) string {
	name := u.FirstName
	if u.LastName != "" {
		name += " " + u.LastName
	}
	if u.Username != "" {
		name += " @" + u.Username
	}
	return fmt.Sprintf("%s [%d]", name, u.ID)
}

func logMiddleware(next bot.HandlerFunc) bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, update *tgmodels.Update) {
		if update.Message != nil {
			log.Printf("[MSG] from=%s text=%q", formatUser(*update.Message.From), update.Message.Text)
		}
		if update.CallbackQuery != nil {
			log.Printf("[CALLBACK] from=%s data=%q", formatUser(update.CallbackQuery.From), update.CallbackQuery.Data)
		}
		next(ctx, b, update)
	}
}
