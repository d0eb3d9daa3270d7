package notify

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/igolaizola/musicprompt/pkg/notify/telegram"
	"github.com/igolaizola/musicprompt/pkg/storage"
)

// LogSender writes notifications to the standard logger.
type LogSender struct{}

func (LogSender) Send(_ context.Context, n *storage.Notification) error {
	log.Printf("notify: [%s] %s: %s\n", n.UserID, n.Title, n.Body)
	return nil
}

// NewSender returns the sender for the type: "log" or "telegram" with a
// token@chat connection string.
func NewSender(typ, conn, proxy string, debug bool) (Sender, error) {
	switch typ {
	case "", "log":
		return LogSender{}, nil
	case "telegram":
		split := strings.Split(conn, "@")
		if len(split) != 2 {
			return nil, fmt.Errorf("notify: invalid telegram connection string %q", conn)
		}
		chat, err := strconv.ParseInt(split[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("notify: invalid telegram chat id %q: %w", split[1], err)
		}
		s, err := telegram.New(split[0], chat, proxy, debug)
		if err != nil {
			return nil, fmt.Errorf("notify: %w", err)
		}
		return &telegramSender{s}, nil
	default:
		return nil, fmt.Errorf("notify: unknown sender type %q", typ)
	}
}

type telegramSender struct {
	bot *telegram.Sender
}

func (t *telegramSender) Send(ctx context.Context, n *storage.Notification) error {
	return t.bot.Send(ctx, n.UserID, n.Title, n.Body)
}
