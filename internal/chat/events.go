// Package chat implements the flow orchestrator: it normalizes inbound
// transport events, stores uploaded photos, dispatches events to the
// conversation machine, and returns the machine's replies for delivery.
// It holds no business logic beyond this translation.
package chat

// UserInfo identifies the sender of an inbound event.
type UserInfo struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// InboundPhoto describes an uploaded photo by its transport file handle.
// Size and Format are declared by the transport and checked against the
// configured limits before the photo is fetched.
type InboundPhoto struct {
	FileID string `json:"file_id"`
	Size   int64  `json:"size"`
	Format string `json:"format"`
}

// InboundButton describes an inline button press.
type InboundButton struct {
	Action string `json:"action"`
	ItemID int64  `json:"item_id"`
}

// InboundEvent is one normalized transport event. Exactly one of Text,
// Photo, or Button is set.
type InboundEvent struct {
	User   UserInfo       `json:"user"`
	Text   *string        `json:"text,omitempty"`
	Photo  *InboundPhoto  `json:"photo,omitempty"`
	Button *InboundButton `json:"button,omitempty"`
}
