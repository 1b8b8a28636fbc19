// Package render holds the bot's user-facing message templates.
package render

const (
	MsgGreeting = "Hi! I help you fill out forms in a conversation.\n" +
		"Pick a form below to get started."
	MsgHelp = "Send /start to pick a form.\n" +
		"Answer each question in your own words. If an answer needs work " +
		"I will suggest an improved version and you can accept it, keep " +
		"your original, revise it, or ask me a question about the form.\n" +
		"Send /cancel to abandon the current form."
	MsgNoActiveForms  = "There are no forms available right now. Check back later."
	MsgCancelled      = "Okay, I dropped the form you were filling out. Send /start to pick another."
	MsgNothingToDrop  = "You are not filling out a form right now. Send /start to pick one."
	MsgUnknownCommand = "I don't know that command. Send /help to see what I can do."
	MsgNoSession      = "Your session has expired. Send /start to begin again."

	MsgQuestionFmt  = "Question %d of %d\n\n%s"
	MsgFeedbackFmt  = "Let's polish that answer.\n\n%s"
	MsgSuggestedFmt = "Suggested answer: %s"
	MsgReviseFmt    = "Go ahead and send a revised answer. Your current draft:\n\n%s"
	MsgAskPrompt    = "What would you like to know? Ask me anything about this form."
	MsgDecisionPrompt = "What would you like to do? You can also just type a revised answer."
	MsgSideAnswer   = "%s\n\nAnything else, or shall we return to the question?"
	MsgGenerating   = "That was the last question. Give me a moment to put your results together."
	MsgCompleted    = "All done! Here is what I generated from your answers:\n\n%s"
	MsgCompletedNoOutput = "All done! Your answers have been saved."
	MsgTranscript        = "Here is a transcript of your answers."

	ErrGeneric              = "Something went wrong on my side. Please try again."
	ErrValidationDown       = "I couldn't check that answer right now. Please send it again in a moment."
	ErrAnswerNotSaved       = "I couldn't save that answer. Please send it again."
	ErrOutputFailed         = "I couldn't generate your results. Please try again in a moment."
	ErrFormUnavailable      = "That form is no longer available. Send /start to pick another."
	ErrExpectedButton       = "Please use one of the buttons above, or just type a revised answer."
	ErrRateLimitFmt         = "You're sending messages too fast. Please wait %d seconds."

	BtnAcceptSuggestion = "Accept suggestion"
	BtnUseOriginal      = "Use my original"
	BtnRevise           = "Revise answer"
	BtnAskQuestion      = "Ask a question"
	BtnReturn           = "Back to the form"
	BtnRetryOutput      = "Try again"
)
