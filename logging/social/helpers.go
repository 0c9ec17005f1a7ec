package social

import (
	"context"

	"saferoom/server/logging"
)

const (
	// EventChatStart is emitted when two monsters begin an idle conversation.
	EventChatStart logging.EventType = "social.chat_start"
	// EventChatLine is emitted for every banter line shown above a monster.
	EventChatLine logging.EventType = "social.chat_line"
	// EventChatEnd is emitted when a conversation finishes or is torn down.
	EventChatEnd logging.EventType = "social.chat_end"
)

// ChatStartPayload names the paired participant types.
type ChatStartPayload struct {
	InitiatorType string `json:"initiatorType"`
	PartnerType   string `json:"partnerType"`
	PropTarget    bool   `json:"propTarget,omitempty"`
}

// ChatLinePayload carries the text shown above the speaker.
type ChatLinePayload struct {
	Text   string `json:"text"`
	Second bool   `json:"second,omitempty"`
}

// ChatEndPayload records why the conversation ended.
type ChatEndPayload struct {
	Reason string `json:"reason"`
}

// ChatStart publishes a conversation start event.
func ChatStart(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, partner logging.EntityRef, payload ChatStartPayload, extra map[string]any) {
	if pub == nil {
		return
	}
	event := logging.Event{
		Type:     EventChatStart,
		Tick:     tick,
		Actor:    actor,
		Targets:  []logging.EntityRef{partner},
		Severity: logging.SeverityDebug,
		Category: logging.CategorySocial,
		Payload:  payload,
		Extra:    extra,
	}
	pub.Publish(ctx, event)
}

// ChatLine publishes a single banter line event.
func ChatLine(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload ChatLinePayload, extra map[string]any) {
	if pub == nil {
		return
	}
	event := logging.Event{
		Type:     EventChatLine,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityDebug,
		Category: logging.CategorySocial,
		Payload:  payload,
		Extra:    extra,
	}
	pub.Publish(ctx, event)
}

// ChatEnd publishes a conversation teardown event.
func ChatEnd(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload ChatEndPayload, extra map[string]any) {
	if pub == nil {
		return
	}
	event := logging.Event{
		Type:     EventChatEnd,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityDebug,
		Category: logging.CategorySocial,
		Payload:  payload,
		Extra:    extra,
	}
	pub.Publish(ctx, event)
}
