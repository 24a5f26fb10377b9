// Package abstractor orchestrates a full title abstraction run: a first
// extraction pass inventories every document in the PDF, a second pass pulls
// full details per document, and the reconciliation stages deduplicate,
// order, relate and verify the results into a chain-of-title abstract.
package abstractor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/joelkehle/title-abstractor/internal/analyzer"
	"github.com/joelkehle/title-abstractor/internal/chains"
	"github.com/joelkehle/title-abstractor/internal/dedupe"
	"github.com/joelkehle/title-abstractor/internal/relationship"
	"github.com/joelkehle/title-abstractor/internal/titledoc"
)

const (
	detailAttempts = 3
	detailDelay    = 5 * time.Second
)

// StageError identifies which pipeline stage failed.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string { return fmt.Sprintf("%s: %v", e.Stage, e.Err) }
func (e *StageError) Unwrap() error { return e.Err }

// StageNameFromError extracts the failed stage name, or "pipeline" when the
// error did not come from a stage.
func StageNameFromError(err error) string {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage
	}
	return "pipeline"
}

// Request is one PDF to abstract. PageCount may be 0 when unknown.
type Request struct {
	PDF       []byte
	FileName  string
	PageCount int
}

type Pipeline struct {
	extractor  Extractor
	tracer     trace.Tracer
	retryDelay time.Duration
}

func NewPipeline(extractor Extractor) *Pipeline {
	return &Pipeline{
		extractor:  extractor,
		tracer:     otel.Tracer("title-abstractor"),
		retryDelay: detailDelay,
	}
}

// Run executes the full pipeline. Failed per-document detail extractions
// degrade to placeholder records rather than failing the run; only the
// inventory pass is fatal.
func (p *Pipeline) Run(ctx context.Context, req Request, progress titledoc.ProgressFn) (Abstract, error) {
	started := time.Now()
	res := Abstract{
		RunID:     uuid.NewString(),
		Source:    Source{FileName: req.FileName, State: "NY"},
		StartedAt: started,
	}
	if len(req.PDF) == 0 {
		return res, &StageError{Stage: "inventory", Err: errors.New("empty PDF input")}
	}

	ctx, runSpan := p.tracer.Start(ctx, "abstract.run", trace.WithAttributes(
		attribute.String("run.id", res.RunID),
		attribute.String("file.name", req.FileName),
		attribute.Int("file.pages", req.PageCount),
	))
	defer runSpan.End()

	inventory, err := p.runInventory(ctx, req, progress)
	if err != nil {
		return res, err
	}

	inventory = dedupe.Inventory(inventory, progress)

	docs := p.runDetails(ctx, req, inventory, progress)

	docs = dedupe.Documents(docs, progress)

	analyzed := analyzer.Analyze(docs, progress)

	rel := relationship.AnalyzeAll(analyzed.Documents, progress)
	chainResult := chains.Build(rel, analyzed.Documents, progress)

	res.Documents = analyzed.Documents
	res.Chains = chainResult
	res.Duration = time.Since(started)
	res.Review = Review{
		TotalPagesProcessed: req.PageCount,
		AllPagesReviewed:    req.PageCount > 0,
		ChainWarnings:       analyzed.Warnings,
		ExtractionMethod:    extractionMethod,
		DocumentsExtracted:  len(analyzed.Documents),
		TimeMetrics:         computeTimeMetrics(analyzed.Documents, res.Duration),
	}
	runSpan.SetAttributes(
		attribute.Int("documents.extracted", len(analyzed.Documents)),
		attribute.Int("chains.total", chainResult.Summary.TotalChains),
		attribute.Int("issues.total", chainResult.Summary.TotalIssues),
	)
	return res, nil
}

func (p *Pipeline) runInventory(ctx context.Context, req Request, progress titledoc.ProgressFn) ([]titledoc.InventoryEntry, error) {
	ctx, span := p.tracer.Start(ctx, "abstract.inventory")
	defer span.End()

	progress.Emit("inventory", "Pass 1: document inventory...")
	raw, err := p.extractor.ExtractJSON(ctx, req.PDF, inventoryPrompt(req.PageCount))
	if err != nil {
		return nil, &StageError{Stage: "inventory", Err: err}
	}
	var parsed struct {
		Inventory []titledoc.InventoryEntry `json:"inventory"`
	}
	if err := decodeModelJSON(raw, &parsed); err != nil {
		return nil, &StageError{Stage: "inventory", Err: err}
	}
	span.SetAttributes(attribute.Int("inventory.count", len(parsed.Inventory)))
	progress.Emit("inventory", fmt.Sprintf("Found %d document(s)", len(parsed.Inventory)))
	return parsed.Inventory, nil
}

func (p *Pipeline) runDetails(ctx context.Context, req Request, inventory []titledoc.InventoryEntry, progress titledoc.ProgressFn) []titledoc.Document {
	ctx, span := p.tracer.Start(ctx, "abstract.details",
		trace.WithAttributes(attribute.Int("inventory.count", len(inventory))))
	defer span.End()

	progress.Emit("details", "Pass 2: detailed extraction...")
	docs := make([]titledoc.Document, 0, len(inventory))
	failed := 0
	for i, entry := range inventory {
		progress.Emit("details", fmt.Sprintf("Document %d/%d: %s (pages %d-%d)",
			i+1, len(inventory), entry.Type, entry.Pages.Start, entry.Pages.End))

		doc, err := p.extractDetail(ctx, req.PDF, entry, i+1)
		if err != nil {
			failed++
			progress.Emit("details", fmt.Sprintf("Document %d/%d failed, recording placeholder: %v", i+1, len(inventory), err))
			doc = placeholderDocument(entry, err)
		}
		doc.PageLocation = entry.Pages
		docs = append(docs, doc)
	}
	span.SetAttributes(attribute.Int("details.failed", failed))
	return docs
}

func (p *Pipeline) extractDetail(ctx context.Context, pdf []byte, entry titledoc.InventoryEntry, docNum int) (titledoc.Document, error) {
	prompt := detailPrompt(entry, docNum)

	var lastErr error
	for attempt := 1; attempt <= detailAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return titledoc.Document{}, ctx.Err()
			case <-time.After(p.retryDelay):
			}
		}

		raw, err := p.extractor.ExtractJSON(ctx, pdf, prompt)
		if err != nil {
			lastErr = err
			continue
		}

		doc, err := decodeDetail(raw)
		if err != nil {
			lastErr = err
			continue
		}
		return doc, nil
	}
	return titledoc.Document{}, fmt.Errorf("failed after %d attempts: %w", detailAttempts, lastErr)
}

// decodeDetail accepts both response shapes the model produces: a single
// document object, or that object wrapped in a documents array.
func decodeDetail(raw string) (titledoc.Document, error) {
	var wrapped struct {
		Documents []titledoc.Document `json:"documents"`
	}
	if err := decodeModelJSON(raw, &wrapped); err == nil && len(wrapped.Documents) > 0 {
		return wrapped.Documents[0], nil
	}

	var doc titledoc.Document
	if err := decodeModelJSON(raw, &doc); err != nil {
		return titledoc.Document{}, err
	}
	if doc.DocumentType == "" {
		return titledoc.Document{}, errors.New("no document found in response")
	}
	return doc, nil
}

// placeholderDocument is the degraded record written when a document's detail
// extraction fails every attempt. The run continues with the inventory's
// facts and an extraction_failed quality flag.
func placeholderDocument(entry titledoc.InventoryEntry, extractErr error) titledoc.Document {
	return titledoc.Document{
		DocumentType: entry.Type,
		Category:     entry.Type,
		Parties: titledoc.Parties{
			FromLabel: "Unknown",
			ToLabel:   "Unknown",
			From:      entry.From,
			To:        entry.To,
		},
		Dates: titledoc.Dates{RecordDate: entry.RecordDate},
		Recording: titledoc.Recording{
			LocationInstrumentNumber: fmt.Sprintf("Pages %d-%d", entry.Pages.Start, entry.Pages.End),
		},
		Property: titledoc.Property{
			LegalDescription: fmt.Sprintf("EXTRACTION FAILED: %v", extractErr),
		},
		Quality: &titledoc.Quality{
			Confidence: 0,
			Flags:      []string{"extraction_failed"},
			Comments:   fmt.Sprintf("Failed to extract after %d attempts: %v", detailAttempts, extractErr),
		},
	}
}
