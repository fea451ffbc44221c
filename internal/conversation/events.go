package conversation

// Event is an inbound chat event normalized by the orchestrator. The
// machine only sees these three shapes; transport details never reach it.
type Event interface {
	isEvent()
}

// TextEvent carries a plain text message, including button label presses
// rendered as text by the transport.
type TextEvent struct {
	Text string
}

// PhotoEvent carries an uploaded photo: the transport's file handle and
// the blob storage key the orchestrator stored it under.
type PhotoEvent struct {
	FileID string
	Key    string
}

// ButtonEvent carries an inline button press.
type ButtonEvent struct {
	Action string
	ItemID int64
}

func (TextEvent) isEvent()   {}
func (PhotoEvent) isEvent()  {}
func (ButtonEvent) isEvent() {}
