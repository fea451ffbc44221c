package api

import (
	"context"
	"fmt"

	"github.com/outfitly/outfitly/internal/chat"
	"github.com/outfitly/outfitly/internal/conversation"
	"github.com/outfitly/outfitly/internal/stylist"
	"github.com/outfitly/outfitly/internal/wardrobe"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Wardrobe wardrobe.System
	Stylist  stylist.System
	Sessions *conversation.Sessions
	Chat     *chat.Orchestrator
}

// NewDomain creates all domain systems from the API runtime.
// The context is used to initialize the classification client.
func NewDomain(ctx context.Context, runtime *Runtime) (*Domain, error) {
	wardrobeSystem := wardrobe.New(
		runtime.Database.Connection(),
		runtime.Storage,
		runtime.Logger,
		runtime.Pagination,
	)

	stylistSystem, err := stylist.New(ctx, runtime.Stylist, runtime.Storage, runtime.Logger)
	if err != nil {
		return nil, fmt.Errorf("stylist init failed: %w", err)
	}

	sessions := conversation.NewSessions(
		runtime.Chat.SessionTTLDuration(),
		runtime.Chat.SweepIntervalDuration(),
		runtime.Logger,
	)

	machine := conversation.NewMachine(
		wardrobeSystem,
		stylistSystem,
		runtime.Chat.BulkCapacity,
		runtime.Logger,
	)

	orchestrator := chat.NewOrchestrator(
		sessions,
		machine,
		wardrobeSystem,
		runtime.Storage,
		chat.NewHTTPPhotoSource(runtime.Chat.PhotoSourceURL),
		runtime.Chat,
		runtime.Logger,
	)

	return &Domain{
		Wardrobe: wardrobeSystem,
		Stylist:  stylistSystem,
		Sessions: sessions,
		Chat:     orchestrator,
	}, nil
}
