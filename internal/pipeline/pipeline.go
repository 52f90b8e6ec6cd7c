// Package pipeline orchestrates the complete analysis: extraction,
// validation, merge, assessment, recommendation, rendering.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/nfarrow/recoup/internal/assess"
	"github.com/nfarrow/recoup/internal/extract"
	"github.com/nfarrow/recoup/internal/llm"
	"github.com/nfarrow/recoup/internal/model"
	"github.com/nfarrow/recoup/internal/recommend"
	"github.com/nfarrow/recoup/internal/reconcile"
	"github.com/nfarrow/recoup/internal/store"
)

// Pipeline orchestrates the complete analysis process
type Pipeline struct {
	extractor *llm.Extractor // Optional extraction service (nil if disabled)
	store     store.Store    // Optional persistence (nil if disabled)
	renderer  *Renderer
	logger    *zap.Logger
	config    *model.Config
}

// NewPipeline creates a new pipeline with the given configuration
func NewPipeline(cfg *model.Config, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}

	var extractor *llm.Extractor
	if cfg.Extraction.Provider != "" {
		e, err := llm.NewExtractor(llm.ConfigFromModel(cfg.Extraction))
		if err != nil {
			logger.Warn("failed to initialize extraction provider", zap.Error(err))
		} else {
			extractor = e
		}
	}

	var st store.Store
	if cfg.Store.Enabled {
		st = store.NewLayeredStore(cfg.Store.TTL, cfg.Store.Dir)
	}

	return &Pipeline{
		extractor: extractor,
		store:     st,
		renderer:  NewRenderer(cfg.Output.IncludeFooter),
		logger:    logger,
		config:    cfg,
	}
}

// ExtractionEnabled reports whether an extraction provider is configured
func (p *Pipeline) ExtractionEnabled() bool {
	return p.extractor != nil && p.extractor.IsEnabled()
}

// ExtractDelta sends document text to the extraction service and turns
// the payload into a claim delta. Implements the batch worker's Analyzer.
func (p *Pipeline) ExtractDelta(ctx context.Context, text, sourceName string) (*reconcile.Delta, extract.Suggestion, error) {
	return p.extractDelta(ctx, text, sourceName, model.SourceDocumentExtraction)
}

// ExtractChatDelta is ExtractDelta for free-text chat turns
func (p *Pipeline) ExtractChatDelta(ctx context.Context, text, sourceName string) (*reconcile.Delta, extract.Suggestion, error) {
	return p.extractDelta(ctx, text, sourceName, model.SourceChatExtraction)
}

func (p *Pipeline) extractDelta(ctx context.Context, text, sourceName string, source model.Source) (*reconcile.Delta, extract.Suggestion, error) {
	if !p.ExtractionEnabled() {
		return nil, extract.Suggestion{}, fmt.Errorf("no extraction provider configured")
	}

	start := time.Now()
	resp, err := p.extractor.Extract(ctx, text, sourceName)
	if err != nil {
		return nil, extract.Suggestion{}, err
	}
	p.logger.Debug("extraction call complete",
		zap.String("source", sourceName),
		zap.String("model", resp.Model),
		zap.Int("tokens", resp.TokensUsed),
		zap.Duration("elapsed", time.Since(start)))

	return p.ParseDelta(resp.RawJSON, source, sourceName)
}

// ParseDelta validates a raw extraction payload and builds a claim delta.
// Used directly when the caller already holds extracted JSON.
func (p *Pipeline) ParseDelta(data []byte, source model.Source, sourceRef string) (*reconcile.Delta, extract.Suggestion, error) {
	raw, err := extract.ParseRaw(data)
	if err != nil {
		return nil, extract.Suggestion{}, fmt.Errorf("parse extraction: %w", err)
	}
	delta, suggestion := extract.BuildDelta(raw, source, sourceRef, time.Now().UTC())
	return delta, suggestion, nil
}

// Apply merges a delta into the record and returns the updated record.
// The input record is never mutated.
func (p *Pipeline) Apply(record *model.TrackedClaimRecord, delta *reconcile.Delta) *model.TrackedClaimRecord {
	merged := reconcile.Merge(record, delta)
	p.logger.Debug("delta merged",
		zap.String("claim_id", merged.ID),
		zap.Int("populated_fields", len(merged.FieldRefs())),
		zap.Int("timeline_events", len(merged.Timeline)))
	return merged
}

// Assess produces the analysis bundle for the record: warnings, the
// procedural recommendation, and the verification surface.
func (p *Pipeline) Assess(record *model.TrackedClaimRecord, now time.Time, prefs recommend.Preferences) *model.AnalysisResult {
	warnings := assess.Generate(record, now)
	recommendation := recommend.Recommend(record, now, prefs)

	refs := record.FieldRefs()
	populated := make([]string, 0, len(refs))
	var needsVerification []string
	threshold := p.config.Review.VerificationThreshold
	for _, ref := range refs {
		populated = append(populated, ref.Path)
		if ref.Confidence < threshold {
			needsVerification = append(needsVerification, ref.Path)
		}
	}

	return &model.AnalysisResult{
		Record:            record,
		OverallConfidence: model.OverallConfidence(record),
		PopulatedFields:   populated,
		NeedsVerification: needsVerification,
		Warnings:          warnings,
		Recommendation:    &recommendation,
	}
}

// LogSuggestion records the extraction service's own document suggestion.
// The suggestion never overrides the rule-based recommendation; a
// disagreement is only worth a log line.
func (p *Pipeline) LogSuggestion(suggestion extract.Suggestion, recommendation *model.Recommendation) {
	if suggestion.Document == "" || recommendation == nil {
		return
	}
	if suggestion.Document != recommendation.PrimaryDocument {
		p.logger.Info("extraction suggestion differs from rule-based recommendation",
			zap.String("suggested", string(suggestion.Document)),
			zap.String("recommended", string(recommendation.PrimaryDocument)),
			zap.String("reason", suggestion.Reason))
	}
}

// LoadOrCreate fetches the record with the given ID, or creates a fresh
// one when id is empty or unknown
func (p *Pipeline) LoadOrCreate(id string) (*model.TrackedClaimRecord, error) {
	if id == "" || p.store == nil {
		return model.NewClaimRecord(), nil
	}

	record, found, err := p.store.Get(id)
	if err != nil {
		return nil, fmt.Errorf("load claim %s: %w", id, err)
	}
	if !found {
		p.logger.Info("claim not found, starting fresh", zap.String("claim_id", id))
		return model.NewClaimRecord(), nil
	}
	return record, nil
}

// Save persists the record if a store is configured
func (p *Pipeline) Save(record *model.TrackedClaimRecord) error {
	if p.store == nil {
		return nil
	}
	if err := p.store.Put(record); err != nil {
		return fmt.Errorf("save claim %s: %w", record.ID, err)
	}
	p.logger.Debug("claim saved", zap.String("claim_id", record.ID))
	return nil
}

// Store exposes the configured store, nil when persistence is disabled
func (p *Pipeline) Store() store.Store {
	return p.store
}

// RenderResult renders the analysis result to the configured outputs
func (p *Pipeline) RenderResult(result *model.AnalysisResult, jsonPath, mdPath string, verbose bool) error {
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(result, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote JSON: %s\n", jsonPath)
		}
	}

	if mdPath != "" {
		if err := p.renderer.RenderMarkdown(result, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote Markdown: %s\n", mdPath)
		}
	}

	p.renderer.RenderSummary(result)
	return nil
}
