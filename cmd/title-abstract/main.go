package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joelkehle/title-abstractor/internal/abstractor"
	"github.com/joelkehle/title-abstractor/internal/report"
	"github.com/joelkehle/title-abstractor/internal/store"
	"github.com/joelkehle/title-abstractor/internal/telemetry"
)

func main() {
	pdfPath := flag.String("pdf", "", "Path to the title document PDF")
	pageCount := flag.Int("pages", 0, "Page count of the PDF (0 when unknown)")
	jsonOut := flag.String("json-output", "", "Optional path to write the abstract JSON")
	mdOut := flag.String("markdown-output", "", "Optional path to write the abstract markdown (defaults to stdout)")
	dbPath := flag.String("db", "", "Optional SQLite database to save the run into")
	storageDir := flag.String("storage", "pdf_storage", "Directory for archived source PDFs (used with -db)")
	flag.Parse()

	if *pdfPath == "" {
		log.Fatal("missing required -pdf")
	}

	pdf, err := os.ReadFile(*pdfPath)
	if err != nil {
		log.Fatalf("read pdf: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	shutdown, err := telemetry.Setup(ctx, "title-abstract")
	if err != nil {
		log.Fatalf("telemetry setup: %v", err)
	}
	defer shutdown(context.Background())

	extractor, err := abstractor.NewAnthropicExtractorFromEnv()
	if err != nil {
		log.Fatal(err)
	}

	pipeline := abstractor.NewPipeline(extractor)
	log.Printf("abstracting %s (%d page(s), model=%s)", *pdfPath, *pageCount, extractor.ModelName())

	abs, err := pipeline.Run(ctx, abstractor.Request{
		PDF:       pdf,
		FileName:  filepath.Base(*pdfPath),
		PageCount: *pageCount,
	}, func(stage, message string) {
		log.Printf("[%s] %s", stage, message)
	})
	if err != nil {
		log.Fatalf("abstract failed at stage %q: %v", abstractor.StageNameFromError(err), err)
	}

	markdown := report.RenderMarkdown(abs)
	absJSON, err := json.MarshalIndent(abs, "", "  ")
	if err != nil {
		log.Fatalf("encode abstract: %v", err)
	}

	if *jsonOut != "" {
		if err := os.WriteFile(*jsonOut, absJSON, 0o644); err != nil {
			log.Fatalf("write json output: %v", err)
		}
	}
	if err := writeMarkdown(*mdOut, markdown); err != nil {
		log.Fatalf("write markdown: %v", err)
	}

	if *dbPath != "" {
		id, err := saveRun(*dbPath, *storageDir, *pdfPath, abs, string(absJSON), markdown)
		if err != nil {
			log.Fatalf("save run: %v", err)
		}
		log.Printf("saved abstract #%d to %s", id, *dbPath)
	}

	log.Printf("done: %d document(s), %d chain(s), %d issue(s) in %s",
		len(abs.Documents), abs.Chains.Summary.TotalChains, abs.Chains.Summary.TotalIssues, abs.Duration)
}

func writeMarkdown(path, markdown string) error {
	if path == "" {
		_, err := os.Stdout.WriteString(markdown)
		return err
	}
	return os.WriteFile(path, []byte(markdown), 0o644)
}

func saveRun(dbPath, storageDir, pdfPath string, abs abstractor.Abstract, absJSON, markdown string) (int64, error) {
	s, err := store.New(dbPath, storageDir)
	if err != nil {
		return 0, err
	}
	defer s.Close()

	return s.Save(store.SaveInput{
		FileName:       abs.Source.FileName,
		JSONData:       absJSON,
		Markdown:       markdown,
		PagesProcessed: abs.Review.TotalPagesProcessed,
		CostEstimate:   abs.Review.TimeMetrics.AICost,
		PDFPath:        pdfPath,
	})
}
