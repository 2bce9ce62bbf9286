package gateway

// Wire shapes for the QA backend. The backend owns all durable state;
// these mirror its JSON contract exactly.

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
}

type ConversationSummary struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type MessageRecord struct {
	ID      string `json:"id"`
	Role    string `json:"role"`
	Content string `json:"content"`
}

// AskRequest carries a question to the inference endpoint.
// ConversationID is nil for a new, unsaved conversation; the backend
// creates one implicitly and returns its ID.
type AskRequest struct {
	Question       string  `json:"question"`
	ConversationID *string `json:"conversation_id"`
}

type AskResponse struct {
	Answer         string `json:"answer"`
	ConversationID string `json:"conversation_id"`
}

type FeedbackRequest struct {
	MessageID string `json:"message_id"`
	Rating    int    `json:"rating"`
}
