// Package keyboard builds the inline keyboards the bot attaches to its
// messages.
package keyboard

import (
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/jazmy/formchat/internal/entity"
	"github.com/jazmy/formchat/internal/telegram/render"
)

// Forms lists active forms, one button per row.
func Forms(forms []entity.FormSummary) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(forms))
	for _, f := range forms {
		btn := tgbotapi.NewInlineKeyboardButtonData(
			f.Title,
			EncodeCallback(ActionSelectForm, strconv.FormatInt(f.ID, 10)),
		)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(btn))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// Decision offers the four ways out of a rejected answer.
func Decision(hasSuggestion bool) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, 3)
	if hasSuggestion {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(render.BtnAcceptSuggestion, ActionAccept),
		))
	}
	rows = append(rows,
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(render.BtnUseOriginal, ActionOriginal),
			tgbotapi.NewInlineKeyboardButtonData(render.BtnRevise, ActionRevise),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(render.BtnAskQuestion, ActionAsk),
		),
	)
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// Return brings the user back to the pending question after a side answer.
func Return() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(render.BtnReturn, ActionReturn),
		),
	)
}

// RetryOutput is shown when output generation fails.
func RetryOutput() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(render.BtnRetryOutput, ActionRetry),
		),
	)
}
