package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ContentType identifies the kind of marketing copy to produce.
type ContentType string

// Supported content types
const (
	ContentTypeBlog   ContentType = "blog"
	ContentTypeEmail  ContentType = "email"
	ContentTypeSocial ContentType = "social"
)

// Valid reports whether c is one of the supported content types.
func (c ContentType) Valid() bool {
	switch c {
	case ContentTypeBlog, ContentTypeEmail, ContentTypeSocial:
		return true
	default:
		return false
	}
}

// Tone is the voice the generated copy should be written in.
type Tone string

// Supported tones
const (
	ToneFormal     Tone = "formal"
	ToneCasual     Tone = "casual"
	ToneFunny      Tone = "funny"
	TonePersuasive Tone = "persuasive"
)

// Valid reports whether t is one of the supported tones.
func (t Tone) Valid() bool {
	switch t {
	case ToneFormal, ToneCasual, ToneFunny, TonePersuasive:
		return true
	default:
		return false
	}
}

// Length is the requested size class of the generated copy.
type Length string

// Supported lengths
const (
	LengthShort  Length = "short"
	LengthMedium Length = "medium"
	LengthLong   Length = "long"
)

// Valid reports whether l is one of the supported lengths.
func (l Length) Valid() bool {
	switch l {
	case LengthShort, LengthMedium, LengthLong:
		return true
	default:
		return false
	}
}

// Field limits, matching the column widths of the generations table.
const (
	MaxProductLength           = 255
	MaxAudienceLength          = 255
	MaxExtraInstructionsLength = 2000
)

// GenerationRequest is the caller's description of the content to generate.
// It is never persisted on its own; its fields are copied into a Generation.
type GenerationRequest struct {
	ContentType       ContentType `json:"content_type"`
	Tone              Tone        `json:"tone"`
	Length            Length      `json:"length"`
	Product           string      `json:"product"`
	Audience          string      `json:"audience"`
	ExtraInstructions string      `json:"extra_instructions,omitempty"`
}

// Validate checks the enumerated fields and the free-text fields.
// Unknown enum values are rejected rather than defaulted.
func (r GenerationRequest) Validate() error {
	if !r.ContentType.Valid() {
		return NewValidationError("content_type", "must be one of blog, email, social")
	}
	if !r.Tone.Valid() {
		return NewValidationError("tone", "must be one of formal, casual, funny, persuasive")
	}
	if !r.Length.Valid() {
		return NewValidationError("length", "must be one of short, medium, long")
	}

	switch product := strings.TrimSpace(r.Product); {
	case product == "":
		return NewValidationError("product", "cannot be empty")
	case len(product) > MaxProductLength:
		return NewValidationError("product", "is too long")
	}

	switch audience := strings.TrimSpace(r.Audience); {
	case audience == "":
		return NewValidationError("audience", "cannot be empty")
	case len(audience) > MaxAudienceLength:
		return NewValidationError("audience", "is too long")
	}

	if len(r.ExtraInstructions) > MaxExtraInstructionsLength {
		return NewValidationError("extra_instructions", "is too long")
	}

	return nil
}

// Generation is a persisted piece of generated content owned by a single user.
// Records are created once and never mutated.
type Generation struct {
	ID                uuid.UUID   `json:"id"`
	UserID            uuid.UUID   `json:"user_id"`
	ContentType       ContentType `json:"content_type"`
	Tone              Tone        `json:"tone"`
	Length            Length      `json:"length"`
	Product           string      `json:"product"`
	Audience          string      `json:"audience"`
	ExtraInstructions string      `json:"extra_instructions,omitempty"`
	GeneratedContent  string      `json:"generated_content"`
	ModelUsed         string      `json:"model_used"`
	CreatedAt         time.Time   `json:"created_at"`
}

// NewGeneration builds a record for the given owner from a validated request
// and the produced text. It assigns a new ID and the current UTC time.
// Product and audience are stored trimmed, the form their length was checked in.
func NewGeneration(
	userID uuid.UUID,
	req GenerationRequest,
	content string,
	modelUsed string,
) (*Generation, error) {
	g := &Generation{
		ID:                uuid.New(),
		UserID:            userID,
		ContentType:       req.ContentType,
		Tone:              req.Tone,
		Length:            req.Length,
		Product:           strings.TrimSpace(req.Product),
		Audience:          strings.TrimSpace(req.Audience),
		ExtraInstructions: req.ExtraInstructions,
		GeneratedContent:  content,
		ModelUsed:         modelUsed,
		CreatedAt:         time.Now().UTC(),
	}

	if err := g.Validate(); err != nil {
		return nil, err
	}

	return g, nil
}

// Validate checks the invariants of a persisted record.
func (g *Generation) Validate() error {
	if g.UserID == uuid.Nil {
		return NewValidationError("user_id", "cannot be empty")
	}
	if strings.TrimSpace(g.GeneratedContent) == "" {
		return NewValidationError("generated_content", "cannot be empty")
	}
	if g.ModelUsed == "" {
		return NewValidationError("model_used", "cannot be empty")
	}
	return nil
}
