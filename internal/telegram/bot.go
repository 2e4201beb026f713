package telegram

import (
	"context"
	"log"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"ai-tutor/internal/auth"
	"ai-tutor/internal/conversation"
	"ai-tutor/internal/history"
	"ai-tutor/internal/markup"
	"ai-tutor/internal/storage"
)

const (
	greeting        = "Hi I'm David, I will be your tutor? What is your name? "
	genericApology  = "I do not understand that. Can you ask your question again?"
	quotaApology    = "I am not able to provide an answer now. Please try again later."
	notAllowedReply = "Sorry, this tutor is private. Ask a parent to add you."
)

type converser interface {
	Converse(ctx context.Context, text string, user auth.User) conversation.Outcome
}

type Bot struct {
	api       *tgbotapi.BotAPI
	s         sender
	authSvc   *auth.Service
	convo     converser
	store     *history.Store
	recorder  storage.Recorder
	parseMode string
}

func New(botToken string, authSvc *auth.Service, convo *conversation.Client, store *history.Store, rec storage.Recorder, parseMode string) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, err
	}
	return &Bot{
		api:       api,
		s:         botAPISender{api: api},
		authSvc:   authSvc,
		convo:     convo,
		store:     store,
		recorder:  rec,
		parseMode: parseMode,
	}, nil
}

func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for update := range updates {
		if update.Message != nil {
			b.handleIncomingMessage(ctx, update.Message)
		}
	}
}

func (b *Bot) handleIncomingMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil {
		return
	}
	user := auth.User{ID: msg.From.ID, Username: msg.From.UserName, FirstName: msg.From.FirstName}

	if !b.authSvc.IsAllowed(user.ID) {
		log.Printf("unauthorized access attempt by user ID: %d, username: @%s", user.ID, user.Username)
		b.send(msg.Chat.ID, notAllowedReply)
		return
	}

	if msg.IsCommand() {
		if msg.Command() == "start" {
			b.handleStart(msg.Chat.ID, user)
		}
		// other commands are not part of the tutor conversation
		return
	}

	log.Printf("incoming message from %d (@%s): %q", user.ID, user.Username, msg.Text)

	// An empty message gets the generic apology without touching the model.
	if strings.TrimSpace(msg.Text) == "" {
		b.record(user.ID, msg.Text, genericApology, "empty_input")
		b.deliver(msg.Chat.ID, genericApology)
		return
	}

	out := b.convo.Converse(ctx, msg.Text, user)
	reply := b.replyFor(out)
	b.record(user.ID, msg.Text, reply, out.Kind.String())
	b.deliver(msg.Chat.ID, reply)
}

// handleStart archives the user's transcript and greets them. The model
// itself asks for the student's name once the history is empty again.
func (b *Bot) handleStart(chatID int64, user auth.User) {
	if err := b.store.Archive(user); err != nil {
		log.Printf("failed to archive history for %d: %v", user.ID, err)
	}
	b.record(user.ID, "/start", greeting, "reset")
	b.send(chatID, greeting)
}

func (b *Bot) replyFor(out conversation.Outcome) string {
	switch out.Kind {
	case conversation.KindReply:
		return out.Text
	case conversation.KindQuota:
		log.Printf("model quota exhausted: %s", out.Detail)
		return quotaApology
	default:
		if out.Detail != "" {
			log.Printf("model call failed (%s): %s", out.Kind, out.Detail)
		}
		return genericApology
	}
}

// deliver sends the reply with markup formatting applied; if Telegram
// rejects the markup, the same reply is resent once through the escape
// fallback. A second rejection is logged and dropped.
func (b *Bot) deliver(chatID int64, reply string) {
	msg := tgbotapi.NewMessage(chatID, markup.Format(reply))
	msg.ParseMode = b.parseMode
	_, err := b.s.Send(msg)
	if err == nil {
		return
	}
	log.Printf("primary send rejected, retrying escaped: %v", err)
	fallback := tgbotapi.NewMessage(chatID, markup.Escape(reply))
	fallback.ParseMode = b.parseMode
	if _, err := b.s.Send(fallback); err != nil {
		log.Printf("fallback send failed: %v", err)
	}
}

// send delivers fixed service text without the formatting passes.
func (b *Bot) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.s.Send(msg); err != nil {
		log.Printf("failed to send message: %v", err)
	}
}

func (b *Bot) record(userID int64, userMsg, reply, outcome string) {
	if b.recorder == nil {
		return
	}
	ev := storage.Event{
		Timestamp:         time.Now().UTC(),
		UserID:            userID,
		UserMessage:       userMsg,
		AssistantResponse: reply,
		Outcome:           outcome,
	}
	if err := b.recorder.AppendInteraction(ev); err != nil {
		log.Printf("failed to record interaction: %v", err)
	}
}
