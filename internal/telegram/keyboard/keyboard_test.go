package keyboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jazmy/formchat/internal/entity"
)

func TestCallbackRoundTrip(t *testing.T) {
	tests := []struct {
		action string
		value  string
		data   string
	}{
		{ActionSelectForm, "42", "form:42"},
		{ActionAccept, "", "accept"},
		{ActionReturn, "", "return"},
	}

	for _, tt := range tests {
		data := EncodeCallback(tt.action, tt.value)
		assert.Equal(t, tt.data, data)

		action, value := ParseCallback(data)
		assert.Equal(t, tt.action, action)
		assert.Equal(t, tt.value, value)
	}
}

func TestFormsOneButtonPerRow(t *testing.T) {
	kb := Forms([]entity.FormSummary{
		{ID: 1, Title: "Conference feedback"},
		{ID: 7, Title: "Job application"},
	})

	require.Len(t, kb.InlineKeyboard, 2)
	require.Len(t, kb.InlineKeyboard[0], 1)
	assert.Equal(t, "Conference feedback", kb.InlineKeyboard[0][0].Text)
	assert.Equal(t, "form:1", *kb.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, "form:7", *kb.InlineKeyboard[1][0].CallbackData)
}

func TestDecisionHidesAcceptWithoutSuggestion(t *testing.T) {
	with := Decision(true)
	require.Len(t, with.InlineKeyboard, 3)
	assert.Equal(t, "accept", *with.InlineKeyboard[0][0].CallbackData)

	without := Decision(false)
	require.Len(t, without.InlineKeyboard, 2)
	assert.Equal(t, "original", *without.InlineKeyboard[0][0].CallbackData)
}
