package notifier

import (
	"fmt"
	"log"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Golffzza/wellness-server/internal/notify"
)

// Notifier delivers one confirmation message to a user. Implementations own
// their transport; the worker retries via the queue, not here.
type Notifier interface {
	Send(userID, text string) error
}

// ConfirmationText renders the message sent after a successful reservation.
func ConfirmationText(ev notify.Event) string {
	return fmt.Sprintf(
		"Hi %s, your booking is confirmed: %s at %s (booking #%d).",
		ev.Name, ev.Date, ev.Slot, ev.BookingID,
	)
}

// Console logs messages instead of delivering them. Useful without a chat
// transport configured.
type Console struct {
	logger *log.Logger
}

func NewConsole(logger *log.Logger) *Console {
	if logger == nil {
		logger = log.Default()
	}
	return &Console{logger: logger}
}

func (c *Console) Send(userID, text string) error {
	c.logger.Printf("notify user=%s: %s", userID, text)
	return nil
}

// Telegram delivers messages over the Telegram bot API. The user ID is the
// numeric chat ID, matching what the chat front end hands out.
type Telegram struct {
	api *tgbotapi.BotAPI
}

func NewTelegram(token string) (*Telegram, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot: %w", err)
	}
	return &Telegram{api: api}, nil
}

func (t *Telegram) Send(userID, text string) error {
	chatID, err := strconv.ParseInt(userID, 10, 64)
	if err != nil {
		return fmt.Errorf("user id %q is not a telegram chat id: %w", userID, err)
	}
	if _, err := t.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}
	return nil
}
