package telegram

import (
	"context"
	"strings"
	"time"

	"github.com/apex/log"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"recipe-chef/api/internal/recipe"
	"recipe-chef/api/internal/util"
)

const maxMessageLen = 3900

// Sender is the part of *tgbotapi.BotAPI the router uses.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Router struct {
	Bot     Sender
	Recipes *recipe.Service

	// Timeout bounds one recommendation, text and image together.
	Timeout time.Duration
}

func (r *Router) HandleCommand(upd tgbotapi.Update) {
	cid := upd.Message.Chat.ID
	switch upd.Message.Command() {
	case "start", "help":
		r.send(cid, greetingText)
	default:
		r.send(cid, unknownCommandText)
	}
}

func (r *Router) HandleUpdate(upd tgbotapi.Update) {
	if upd.Message == nil {
		return
	}
	if upd.Message.IsCommand() {
		r.HandleCommand(upd)
		return
	}
	ingredients := strings.TrimSpace(upd.Message.Text)
	if ingredients == "" {
		return
	}
	cid := upd.Message.Chat.ID
	if !acquire(cid) {
		r.send(cid, busyText)
		return
	}
	go func() {
		defer release(cid)
		r.recommend(cid, ingredients)
	}()
}

func (r *Router) recommend(cid int64, ingredients string) {
	r.send(cid, workingText)

	timeout := r.Timeout
	if timeout <= 0 {
		timeout = 3 * time.Minute
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var st recipe.State
	if err := r.Recipes.Recommend(ctx, nil, &st, ingredients, nil); err != nil {
		r.send(cid, recipe.GenerationFailedMessage)
		return
	}
	if st.Error != nil {
		r.send(cid, *st.Error)
		return
	}
	r.SendRecipe(cid, st.Content)
	if st.HasImage() {
		r.SendImage(cid, *st.Image, recipe.ExtractDishName(st.Content))
	}
}

func (r *Router) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := r.Bot.Send(msg); err != nil {
		log.WithField("chat", chatID).WithError(err).Warn("telegram send")
	}
}

func (r *Router) SendRecipe(chatID int64, text string) {
	r.send(chatID, util.Truncate(text, maxMessageLen))
}

// SendImage uploads the generated data URL as a photo.
func (r *Router) SendImage(chatID int64, dataURL, caption string) {
	photo, err := photoUpload(chatID, dataURL, caption)
	if err != nil {
		log.WithField("chat", chatID).WithError(err).Warn("bad dish image")
		return
	}
	if _, err := r.Bot.Send(photo); err != nil {
		log.WithField("chat", chatID).WithError(err).Warn("telegram send photo")
	}
}
