package bot

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Golffzza/wellness-server/internal/domain"
)

const helpText = `Hi! I can show your wellness bookings.

Send "my bookings" (or /mybookings) to list them.
Reservations are made through the web app.`

// BookingLister is the slice of the reservation service the bot consumes.
type BookingLister interface {
	UserBookings(ctx context.Context, userID string) ([]domain.Booking, error)
}

// Responder turns one inbound chat message into a reply: a recognized
// "my bookings" command lists the user's bookings, anything else gets the
// help text.
type Responder struct {
	svc    BookingLister
	logger *log.Logger
}

func NewResponder(svc BookingLister, logger *log.Logger) *Responder {
	if logger == nil {
		logger = log.Default()
	}
	return &Responder{svc: svc, logger: logger}
}

func (r *Responder) Reply(ctx context.Context, userID, text string) string {
	if !isMyBookingsCommand(text) {
		return helpText
	}

	bookings, err := r.svc.UserBookings(ctx, userID)
	if err != nil {
		r.logger.Printf("WARN: list bookings user=%s: %v", userID, err)
		return "Sorry, I could not load your bookings right now."
	}
	return FormatBookings(bookings)
}

func isMyBookingsCommand(text string) bool {
	t := strings.ToLower(strings.TrimSpace(text))
	return t == "my bookings" || t == "/mybookings" || t == "mybookings"
}

// FormatBookings renders a booking list as a chat message.
func FormatBookings(bookings []domain.Booking) string {
	if len(bookings) == 0 {
		return "You have no bookings yet."
	}
	var sb strings.Builder
	sb.WriteString("Your bookings:\n")
	for _, b := range bookings {
		fmt.Fprintf(&sb, "- %s at %s (#%d)\n", b.Date, b.Slot, b.ID)
	}
	return strings.TrimRight(sb.String(), "\n")
}

// Bot long-polls Telegram and answers each message through a Responder. The
// chat ID doubles as the opaque user ID.
type Bot struct {
	api       *tgbotapi.BotAPI
	responder *Responder
	logger    *log.Logger
}

func New(token string, svc BookingLister, logger *log.Logger) (*Bot, error) {
	if logger == nil {
		logger = log.Default()
	}
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot: %w", err)
	}
	return &Bot{api: api, responder: NewResponder(svc, logger), logger: logger}, nil
}

// Run polls for updates until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = 30
	updates := b.api.GetUpdatesChan(cfg)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message == nil {
				continue
			}
			b.handleMessage(ctx, update.Message.Chat.ID, update.Message.Text)
		}
	}
}

func (b *Bot) handleMessage(ctx context.Context, chatID int64, text string) {
	reply := b.responder.Reply(ctx, strconv.FormatInt(chatID, 10), text)
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, reply)); err != nil {
		b.logger.Printf("WARN: send reply chat=%d: %v", chatID, err)
	}
}
