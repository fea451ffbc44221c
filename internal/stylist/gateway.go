package stylist

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/outfitly/outfitly/internal/config"
	"github.com/outfitly/outfitly/internal/wardrobe"
	"github.com/outfitly/outfitly/pkg/formatting"
	"github.com/outfitly/outfitly/pkg/storage"
)

// generator abstracts a generative model call so tests can substitute
// a fake without a network client.
type generator interface {
	Generate(ctx context.Context, parts ...genai.Part) (string, error)
}

type geminiModel struct {
	model *genai.GenerativeModel
}

func (m *geminiModel) Generate(ctx context.Context, parts ...genai.Part) (string, error) {
	resp, err := m.model.GenerateContent(ctx, parts...)
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty model response")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return sb.String(), nil
}

type gateway struct {
	client  *genai.Client
	vision  generator
	text    generator
	storage storage.System
	logger  *slog.Logger
	timeout time.Duration
}

// New creates a Gemini-backed stylist system.
func New(
	ctx context.Context,
	cfg *config.StylistConfig,
	store storage.System,
	logger *slog.Logger,
) (System, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey()))
	if err != nil {
		return nil, fmt.Errorf("create model client: %w", err)
	}

	return &gateway{
		client:  client,
		vision:  &geminiModel{client.GenerativeModel(cfg.VisionModel)},
		text:    &geminiModel{client.GenerativeModel(cfg.TextModel)},
		storage: store,
		logger:  logger.With("system", "stylist"),
		timeout: cfg.RequestTimeoutDuration(),
	}, nil
}

func (g *gateway) Close() error {
	return g.client.Close()
}

func (g *gateway) ClassifyPhoto(ctx context.Context, photoKey string) ItemDraft {
	draft, err := g.classifyPhoto(ctx, photoKey)
	if err != nil {
		g.logger.Warn("photo classification failed", "key", photoKey, "error", err)
		return PhotoFallback()
	}
	return normalizeDraft(draft, "Unknown Item")
}

func (g *gateway) ClassifyText(ctx context.Context, description string) ItemDraft {
	draft, err := g.classifyText(ctx, description)
	if err != nil {
		g.logger.Warn("text classification failed", "error", err)
		return TextFallback(description)
	}

	// A name much shorter than the input means the model summarized
	// away detail; keep the corrected original instead.
	if float64(len(draft.Name)) < float64(len(description))*0.7 {
		draft.Name = CorrectBrands(strings.TrimSpace(description))
	}

	return normalizeDraft(draft, CorrectBrands(strings.TrimSpace(description)))
}

func (g *gateway) ComposeOutfit(
	ctx context.Context,
	request string,
	items []wardrobe.ClothingItem,
	prefs *wardrobe.Preferences,
) OutfitPlan {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	content, err := g.text.Generate(ctx, genai.Text(outfitPrompt(request, items, prefs)))
	if err != nil {
		g.logger.Warn("outfit generation failed", "error", err)
		return OutfitFallback()
	}

	plan, err := formatting.Parse[OutfitPlan](content)
	if err != nil {
		g.logger.Warn("outfit response parse failed", "error", err)
		return OutfitFallback()
	}

	if plan.SelectedItems == nil {
		plan.SelectedItems = []string{}
	}
	if plan.StylingTips == nil {
		plan.StylingTips = []string{}
	}
	return plan
}

func (g *gateway) SuggestOutfits(ctx context.Context, items []wardrobe.ClothingItem) []string {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	content, err := g.text.Generate(ctx, genai.Text(suggestionsPrompt(items)))
	if err != nil {
		g.logger.Warn("suggestion generation failed", "error", err)
		return SuggestionsFallback()
	}

	var suggestions []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line != "" && line[0] >= '0' && line[0] <= '9' {
			suggestions = append(suggestions, line)
		}
	}

	if len(suggestions) == 0 {
		return SuggestionsFallback()
	}
	return suggestions
}

func (g *gateway) classifyPhoto(ctx context.Context, photoKey string) (ItemDraft, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	reader, err := g.storage.Download(ctx, photoKey)
	if err != nil {
		return ItemDraft{}, fmt.Errorf("fetch photo: %w", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return ItemDraft{}, fmt.Errorf("read photo: %w", err)
	}

	content, err := g.vision.Generate(ctx,
		genai.Text(photoPrompt),
		genai.ImageData(imageFormat(photoKey), data),
	)
	if err != nil {
		return ItemDraft{}, err
	}

	return formatting.Parse[ItemDraft](content)
}

func (g *gateway) classifyText(ctx context.Context, description string) (ItemDraft, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	content, err := g.text.Generate(ctx, genai.Text(textPrompt(description)))
	if err != nil {
		return ItemDraft{}, err
	}

	return formatting.Parse[ItemDraft](content)
}

// normalizeDraft corrects the name and clamps category, season, and
// occasion to their closed vocabularies so callers always receive a
// draft the store will accept.
func normalizeDraft(d ItemDraft, fallbackName string) ItemDraft {
	d.Name = CorrectBrands(strings.TrimSpace(d.Name))
	if d.Name == "" {
		d.Name = fallbackName
	}

	d.Category = strings.ToLower(strings.TrimSpace(d.Category))
	if !wardrobe.ValidCategory(d.Category) {
		d.Category = "accessories"
	}

	d.Season = strings.ToLower(strings.TrimSpace(d.Season))
	if !wardrobe.ValidSeason(d.Season) {
		d.Season = "all"
	}

	d.Occasion = strings.ToLower(strings.TrimSpace(d.Occasion))
	if !wardrobe.ValidOccasion(d.Occasion) {
		d.Occasion = "casual"
	}

	if d.Tags == nil {
		d.Tags = []string{}
	}

	return d
}

func imageFormat(key string) string {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(key), ".")) {
	case "png":
		return "png"
	case "webp":
		return "webp"
	default:
		return "jpeg"
	}
}
