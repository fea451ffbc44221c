package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/outfitly/outfitly/internal/config"
	"github.com/outfitly/outfitly/internal/conversation"
	"github.com/outfitly/outfitly/internal/wardrobe"
	"github.com/outfitly/outfitly/pkg/storage"
)

// Orchestrator routes inbound events through the conversation machine.
// Per-user ordering comes from the session lock inside Machine.Handle;
// events for different users proceed fully in parallel.
type Orchestrator struct {
	sessions *conversation.Sessions
	machine  *conversation.Machine
	wardrobe wardrobe.System
	storage  storage.System
	photos   PhotoSource
	cfg      *config.ChatConfig
	logger   *slog.Logger
}

// NewOrchestrator creates an Orchestrator over the given systems.
func NewOrchestrator(
	sessions *conversation.Sessions,
	machine *conversation.Machine,
	w wardrobe.System,
	store storage.System,
	photos PhotoSource,
	cfg *config.ChatConfig,
	logger *slog.Logger,
) *Orchestrator {
	return &Orchestrator{
		sessions: sessions,
		machine:  machine,
		wardrobe: w,
		storage:  store,
		photos:   photos,
		cfg:      cfg,
		logger:   logger.With("system", "chat"),
	}
}

// Handler returns the HTTP handler for the chat webhook.
func (o *Orchestrator) Handler() *Handler {
	return NewHandler(o, o.logger)
}

// Process validates one inbound event, applies it to the sender's
// session, and returns the replies to deliver.
func (o *Orchestrator) Process(ctx context.Context, event InboundEvent) ([]conversation.Reply, error) {
	if err := validate(event); err != nil {
		return nil, err
	}

	// Registration is best-effort: a failed upsert must not block the
	// conversation.
	if err := o.wardrobe.UpsertUser(ctx, wardrobe.User{
		ID:        event.User.ID,
		Username:  event.User.Username,
		FirstName: event.User.FirstName,
		LastName:  event.User.LastName,
	}); err != nil {
		o.logger.Warn("user upsert failed", "owner", event.User.ID, "error", err)
	}

	machineEvent, reject := o.translate(ctx, event)
	if reject != nil {
		return []conversation.Reply{*reject}, nil
	}

	session := o.sessions.Acquire(event.User.ID)
	return o.machine.Handle(ctx, session, machineEvent), nil
}

// translate converts an inbound event into a machine event. Photo
// intake limits are enforced here: a rejected photo produces a reply
// without reaching the machine.
func (o *Orchestrator) translate(ctx context.Context, event InboundEvent) (conversation.Event, *conversation.Reply) {
	switch {
	case event.Text != nil:
		return conversation.TextEvent{Text: strings.TrimSpace(*event.Text)}, nil

	case event.Button != nil:
		return conversation.ButtonEvent{
			Action: event.Button.Action,
			ItemID: event.Button.ItemID,
		}, nil

	default:
		return o.translatePhoto(ctx, *event.Photo)
	}
}

func (o *Orchestrator) translatePhoto(ctx context.Context, photo InboundPhoto) (conversation.Event, *conversation.Reply) {
	if photo.Size > o.cfg.MaxPhotoSizeBytes() {
		return nil, &conversation.Reply{
			Text: fmt.Sprintf("❌ Photo is too large! Maximum size is %s.", o.cfg.MaxPhotoSize),
		}
	}

	format := strings.ToLower(strings.TrimPrefix(photo.Format, "."))
	if !o.cfg.AllowsFormat(format) {
		return nil, &conversation.Reply{
			Text: fmt.Sprintf("❌ Unsupported photo format! Please use one of: %s.",
				strings.Join(o.cfg.PhotoFormats, ", ")),
		}
	}

	key, err := o.storePhoto(ctx, photo.FileID, format)
	if err != nil {
		o.logger.Error("photo intake failed", "file_id", photo.FileID, "error", err)
		return nil, &conversation.Reply{
			Text: "❌ I couldn't receive that photo. Please try again!",
		}
	}

	return conversation.PhotoEvent{FileID: photo.FileID, Key: key}, nil
}

// storePhoto fetches the photo from the transport and streams it into
// blob storage under a fresh key.
func (o *Orchestrator) storePhoto(ctx context.Context, fileID, format string) (string, error) {
	reader, err := o.photos.Fetch(ctx, fileID)
	if err != nil {
		return "", fmt.Errorf("fetch photo %s: %w", fileID, err)
	}
	defer reader.Close()

	key := fmt.Sprintf("photos/%s.%s", uuid.New(), format)
	contentType := "image/" + format
	if format == "jpg" {
		contentType = "image/jpeg"
	}

	if err := o.storage.Upload(ctx, key, reader, contentType); err != nil {
		return "", fmt.Errorf("store photo %s: %w", fileID, err)
	}

	return key, nil
}

func validate(event InboundEvent) error {
	if event.User.ID == 0 {
		return ErrMissingUser
	}

	set := 0
	if event.Text != nil {
		set++
	}
	if event.Photo != nil {
		set++
	}
	if event.Button != nil {
		set++
	}
	if set != 1 {
		return ErrInvalidEvent
	}
	return nil
}
