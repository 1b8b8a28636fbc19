package entity

// ChatRequest is a side question with its form context.
type ChatRequest struct {
	Question string      `json:"question"`
	Context  FormContext `json:"context"`
}

// ChatResponse returns the assistant's answer.
type ChatResponse struct {
	Response string `json:"response"`
}
