// Package telegram delivers notifications to a telegram chat.
package telegram

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	tgbot "github.com/go-telegram-bot-api/telegram-bot-api"
)

type Sender struct {
	bot   *tgbot.BotAPI
	chat  int64
	debug bool
}

func New(token string, chat int64, proxy string, debug bool) (*Sender, error) {
	client := &http.Client{
		Timeout: 60 * time.Second,
	}
	if proxy != "" {
		u, err := url.Parse(proxy)
		if err != nil {
			return nil, fmt.Errorf("telegram: invalid proxy %s: %w", proxy, err)
		}
		client.Transport = &http.Transport{
			Proxy: http.ProxyURL(u),
		}
	}
	bot, err := tgbot.NewBotAPIWithClient(token, client)
	if err != nil {
		return nil, fmt.Errorf("telegram: couldn't create bot: %w", err)
	}
	bot.Debug = debug

	// Check that chatID is valid
	if _, err := bot.GetChat(tgbot.ChatConfig{ChatID: chat}); err != nil {
		return nil, fmt.Errorf("telegram: invalid chat id: %w", err)
	}
	return &Sender{bot: bot, chat: chat, debug: debug}, nil
}

var backoff = []time.Duration{
	2 * time.Second,
	5 * time.Second,
	15 * time.Second,
}

// Send posts the notification to the chat, retrying on failure.
func (s *Sender) Send(ctx context.Context, user, title, body string) error {
	msg := tgbot.NewMessage(s.chat, Text(user, title, body))
	msg.ParseMode = tgbot.ModeMarkdown

	maxAttempts := 3
	attempts := 0
	for {
		_, err := s.bot.Send(msg)
		if err == nil {
			return nil
		}

		// Increase attempts and check if we should stop
		attempts++
		if attempts >= maxAttempts {
			return fmt.Errorf("telegram: couldn't send message: %w", err)
		}
		idx := attempts - 1
		if idx >= len(backoff) {
			idx = len(backoff) - 1
		}
		wait := backoff[idx]
		t := time.NewTimer(wait)
		if s.debug {
			log.Printf("%v (retrying in %s)\n", err, wait)
		}
		select {
		case <-ctx.Done():
			t.Stop()
			return fmt.Errorf("telegram: send message cancelled: %w", ctx.Err())
		case <-t.C:
		}
	}
}

// Text renders the message body using telegram markdown.
func Text(user, title, body string) string {
	var sb strings.Builder
	if title != "" {
		sb.WriteString("*" + escape(title) + "*\n")
	}
	if body != "" {
		sb.WriteString(escape(body) + "\n")
	}
	if user != "" {
		sb.WriteString("_" + escape(user) + "_")
	}
	return strings.TrimSpace(sb.String())
}

var replacer = strings.NewReplacer("_", "\\_", "*", "\\*", "`", "\\`", "[", "\\[")

func escape(s string) string {
	return replacer.Replace(s)
}
