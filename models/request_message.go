package models

// OutgoingMessage is the message body posted to the backend. It carries no
// identifier or delivery status.
type OutgoingMessage struct {
	Text      string `json:"text"`
	Sender    Sender `json:"sender"`
	Timestamp string `json:"timestamp"`
}

// SendMessageRequest is the body of the "send message" request.
type SendMessageRequest struct {
	SessionID string          `json:"sessionId"`
	Message   OutgoingMessage `json:"message"`
}

// NewSendMessageRequest builds the wire request for message in sessionID.
func NewSendMessageRequest(sessionID string, message Message) SendMessageRequest {
	return SendMessageRequest{
		SessionID: sessionID,
		Message: OutgoingMessage{
			Text:      message.Text,
			Sender:    message.Sender,
			Timestamp: message.Timestamp,
		},
	}
}

// PushEnvelope is a single frame on the push channel.
type PushEnvelope struct {
	Type      Sender  `json:"type"`
	SessionID string  `json:"sessionId"`
	Message   Message `json:"message"`
}
