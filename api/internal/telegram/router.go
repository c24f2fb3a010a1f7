package telegram

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"interview-helper/api/internal/interview"
	"interview-helper/api/internal/llm"
	"interview-helper/api/internal/logger"
	"interview-helper/api/internal/util"
)

// Telegram rejects messages longer than 4096 characters.
const maxMessageRunes = 3900

const usage = "Send /questions followed by the candidate, separated by |:\n" +
	"/questions Ana | Backend developer | 5 years | Go, PostgreSQL, Kafka\n\n" +
	"Commands: /questions, /health, /help"

// Sender is the subset of *tgbotapi.BotAPI the router needs.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Generator interface {
	Generate(ctx context.Context, req interview.GenerationRequest) (interview.Outcome, error)
	Model() string
}

type Router struct {
	Bot     Sender
	Gen     Generator
	Log     logger.Logger
	Timeout time.Duration

	inflight sync.WaitGroup
}

// Dispatch handles upd on its own goroutine. Wait blocks until every
// dispatched update has finished.
func (r *Router) Dispatch(ctx context.Context, upd tgbotapi.Update) {
	r.inflight.Add(1)
	go func() {
		defer r.inflight.Done()
		r.HandleUpdate(ctx, upd)
	}()
}

func (r *Router) Wait() { r.inflight.Wait() }

func (r *Router) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	if upd.Message == nil || upd.Message.Chat == nil {
		return
	}
	cid := upd.Message.Chat.ID

	if !upd.Message.IsCommand() {
		if strings.TrimSpace(upd.Message.Text) != "" {
			r.send(cid, usage)
		}
		return
	}

	switch upd.Message.Command() {
	case "start", "help":
		r.send(cid, usage)
	case "health":
		r.send(cid, "✅ OK, model: "+r.Gen.Model())
	case "questions":
		r.handleQuestions(ctx, cid, upd.Message.CommandArguments())
	default:
		r.send(cid, "Unknown command.\n\n"+usage)
	}
}

func (r *Router) handleQuestions(ctx context.Context, chatID int64, args string) {
	req, ok := ParseArgs(args)
	if !ok {
		r.send(chatID, usage)
		return
	}
	if _, err := r.Bot.Send(tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)); err != nil {
		r.log().Debug("Chat action failed", "chat_id", chatID, "error", err)
	}

	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}
	out, err := r.Gen.Generate(ctx, req)
	if err != nil {
		r.log().Error("Gemini error", "chat_id", chatID, "status", llm.StatusOf(err), "error", err)
		r.send(chatID, "⚠️ Could not generate questions right now, try again later.")
		return
	}
	if out.Fallback != nil {
		r.send(chatID, "📝 The model did not return a structured list, here is its reply:\n\n"+out.Fallback.Raw)
		return
	}
	r.send(chatID, "📝 "+interview.Format(out.Set))
}

// ParseArgs reads "name | position | experience | skills". Trailing fields
// may be omitted; at least one field must be non-empty.
func ParseArgs(args string) (interview.GenerationRequest, bool) {
	parts := strings.SplitN(args, "|", 4)
	fields := make([]string, 4)
	nonEmpty := false
	for i, p := range parts {
		fields[i] = strings.TrimSpace(p)
		if fields[i] != "" {
			nonEmpty = true
		}
	}
	return interview.GenerationRequest{
		Name:       fields[0],
		Position:   fields[1],
		Experience: fields[2],
		Skills:     fields[3],
	}, nonEmpty
}

func (r *Router) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, util.Truncate(text, maxMessageRunes, "…"))
	if _, err := r.Bot.Send(msg); err != nil {
		r.log().Warn("Telegram send failed", "chat_id", chatID, "error", fmt.Sprint(err))
	}
}

func (r *Router) log() logger.Logger {
	if r.Log == nil {
		return logger.Nop()
	}
	return r.Log
}
