package geminiservice

import (
	"context"
	"fmt"
	"time"

	"GeminiMentor/internal/metrics"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"google.golang.org/genai"
)

// UnavailableModelName is reported when no model tier could be initialized.
const UnavailableModelName = "unavailable"

// Tier identifies which model handle was selected at startup.
type Tier int

const (
	TierUnavailable Tier = iota
	TierPrimary
	TierSecondary
)

func (t Tier) String() string {
	switch t {
	case TierPrimary:
		return "primary"
	case TierSecondary:
		return "secondary"
	default:
		return "unavailable"
	}
}

// GenerationOptions are the per-call sampling knobs.
type GenerationOptions struct {
	Temperature     float32
	MaxOutputTokens int32
}

// Generator is the contract the HTTP layer depends on.
type Generator interface {
	// Generate returns the raw model response, or ok == false when no usable
	// response could be obtained. It never returns an error.
	Generate(ctx context.Context, logger *zerolog.Logger, prompt string, opts GenerationOptions) (resp *genai.GenerateContentResponse, ok bool)

	// ActiveModel returns the selected model name or UnavailableModelName.
	ActiveModel() string

	Tier() Tier
}

// modelsAPI is the subset of *genai.Models the client uses.
type modelsAPI interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	Get(ctx context.Context, model string, config *genai.GetModelConfig) (*genai.Model, error)
}

// Options configure New.
type Options struct {
	APIKey         string
	BaseURL        string
	PrimaryModel   string
	SecondaryModel string
	RequestTimeout time.Duration
	InitTimeout    time.Duration
}

// Client is the model adapter. Its tier and model are fixed after New and
// only read afterwards, so a Client is safe for concurrent use.
type Client struct {
	api     modelsAPI
	tier    Tier
	model   string
	timeout time.Duration
}

// New creates the genai client and selects a model tier. Failures never
// surface as errors: they degrade the client to TierUnavailable.
func New(ctx context.Context, logger *zerolog.Logger, opts Options) *Client {
	cc := &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if opts.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: opts.BaseURL}
	}

	gc, err := genai.NewClient(ctx, cc)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to create Gemini client, model unavailable")
		metrics.ModelAvailable.Set(0)
		return &Client{tier: TierUnavailable, timeout: opts.RequestTimeout}
	}

	return newClient(ctx, logger, gc.Models, opts)
}

func newClient(ctx context.Context, logger *zerolog.Logger, api modelsAPI, opts Options) *Client {
	initCtx, cancel := context.WithTimeout(ctx, opts.InitTimeout)
	defer cancel()

	tier, model := resolveTier(initCtx, logger, api, opts.PrimaryModel, opts.SecondaryModel)

	c := &Client{api: api, tier: tier, model: model, timeout: opts.RequestTimeout}
	if tier == TierUnavailable {
		logger.Warn().Msg("No Gemini model could be initialized, serving fallback responses")
		metrics.ModelAvailable.Set(0)
		return c
	}

	logger.Info().Str("model", model).Stringer("tier", tier).Msg("Gemini model initialized")
	metrics.ModelAvailable.Set(1)
	return c
}

// resolveTier probes both models at once; the primary wins when both answer.
func resolveTier(ctx context.Context, logger *zerolog.Logger, api modelsAPI, primary, secondary string) (Tier, string) {
	var primaryErr, secondaryErr error

	var g errgroup.Group
	g.Go(func() error {
		primaryErr = probeModel(ctx, api, primary)
		return nil
	})
	g.Go(func() error {
		secondaryErr = probeModel(ctx, api, secondary)
		return nil
	})
	_ = g.Wait()

	if primaryErr == nil {
		return TierPrimary, primary
	}
	logger.Error().Err(primaryErr).Str("model", primary).Msg("Failed to initialize primary Gemini model")

	if secondaryErr == nil {
		logger.Info().Str("model", secondary).Msg("Falling back to secondary Gemini model")
		return TierSecondary, secondary
	}
	logger.Error().Err(secondaryErr).Str("model", secondary).Msg("Failed to initialize secondary Gemini model")

	return TierUnavailable, ""
}

func probeModel(ctx context.Context, api modelsAPI, model string) error {
	if model == "" {
		return fmt.Errorf("no model configured")
	}
	if _, err := api.Get(ctx, model, nil); err != nil {
		return fmt.Errorf("probe %s: %w", model, err)
	}
	return nil
}

// Generate sends one prompt to the active model. Transport errors, timeouts,
// API errors and panics inside the SDK all come back as ok == false.
func (c *Client) Generate(ctx context.Context, logger *zerolog.Logger, prompt string, opts GenerationOptions) (resp *genai.GenerateContentResponse, ok bool) {
	if c.tier == TierUnavailable {
		logger.Warn().Msg("Gemini model not available, using fallback")
		return nil, false
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	outcome := "error"
	defer func() {
		if r := recover(); r != nil {
			logger.Error().Interface("panic", r).Msg("Gemini client panicked")
			resp, ok = nil, false
		}
		metrics.ModelCallDuration.WithLabelValues(c.model, outcome).Observe(time.Since(start).Seconds())
	}()

	cfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(opts.Temperature),
		MaxOutputTokens: opts.MaxOutputTokens,
	}

	logger.Debug().Str("model", c.model).Str("prompt", prompt).Msg("Sending prompt to Gemini")

	resp, err := c.api.GenerateContent(ctx, c.model, genai.Text(prompt), cfg)
	if err != nil {
		logger.Error().Err(err).Str("model", c.model).Dur("elapsed", time.Since(start)).Msg("Gemini request failed")
		return nil, false
	}
	if resp == nil {
		logger.Warn().Str("model", c.model).Msg("Gemini returned a nil response")
		return nil, false
	}

	outcome = "ok"
	logger.Debug().Interface("response", resp).Msg("Gemini response raw")
	return resp, true
}

func (c *Client) ActiveModel() string {
	if c.tier == TierUnavailable {
		return UnavailableModelName
	}
	return c.model
}

func (c *Client) Tier() Tier {
	return c.tier
}
