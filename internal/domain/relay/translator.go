package relay

import "encoding/json"

// RealtimeEvent is the conversation event shape accepted by the OpenAI
// Realtime API when injecting an assistant message.
type RealtimeEvent struct {
	Type string `json:"type"`
	Item Item   `json:"item"`
}

// Item is the conversation item carried by a RealtimeEvent.
type Item struct {
	Type    string    `json:"type"`
	Role    string    `json:"role"`
	Content []Content `json:"content"`
}

// Content is a single content block inside a conversation item.
type Content struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// AssistantEvent formats a text reply as a conversation.item.create event
// for the Realtime API. Total for any input string.
func AssistantEvent(text string) RealtimeEvent {
	return RealtimeEvent{
		Type: "conversation.item.create",
		Item: Item{
			Type: "message",
			Role: "assistant",
			Content: []Content{
				{Type: "input_text", Text: text},
			},
		},
	}
}

// Reply is a normalized webhook reply. It always carries a string under
// the "text" key; extra keys are preserved when the webhook already
// answered in the expected shape.
type Reply map[string]any

// Text returns the normalized reply text.
func (r Reply) Text() string {
	if s, ok := r["text"].(string); ok {
		return s
	}
	return ""
}

// replyTextAliases are checked, in order, when a JSON object reply has
// no "text" key.
var replyTextAliases = []string{"message", "response", "content", "result"}

// NormalizeReply coerces an arbitrary webhook response body into a Reply.
// Precedence, first match wins:
//  1. JSON object with a string "text" value: returned as-is.
//  2. JSON object with a string value under one of the alias keys.
//  3. Bare JSON string.
//  4. Any other valid JSON: the raw body becomes the text.
//  5. Invalid JSON: the raw body becomes the text.
func NormalizeReply(body []byte) Reply {
	raw := string(body)

	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return Reply{"text": raw}
	}

	switch v := decoded.(type) {
	case map[string]any:
		if _, ok := v["text"].(string); ok {
			return Reply(v)
		}
		for _, key := range replyTextAliases {
			if s, ok := v[key].(string); ok {
				return Reply{"text": s}
			}
		}
		return Reply{"text": raw}
	case string:
		return Reply{"text": v}
	default:
		return Reply{"text": raw}
	}
}
