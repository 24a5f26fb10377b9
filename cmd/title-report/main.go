package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joelkehle/title-abstractor/internal/abstractor"
	"github.com/joelkehle/title-abstractor/internal/report"
	"github.com/joelkehle/title-abstractor/internal/store"
)

func main() {
	inputPath := flag.String("input", "", "Path to a saved abstract JSON file")
	dbPath := flag.String("db", "", "SQLite database to load a saved run from")
	runID := flag.Int64("id", 0, "Saved run id (used with -db)")
	outputPath := flag.String("output", "report.pdf", "Path to write the rendered PDF")
	mdOnly := flag.Bool("markdown-only", false, "Print markdown to stdout instead of rendering a PDF")
	flag.Parse()

	title, markdown, err := loadReport(*inputPath, *dbPath, *runID)
	if err != nil {
		log.Fatal(err)
	}

	if *mdOnly {
		if _, err := os.Stdout.WriteString(markdown); err != nil {
			log.Fatalf("write markdown: %v", err)
		}
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	renderer := report.NewChromiumPDFRenderer()
	pdf, err := renderer.Render(ctx, title, markdown)
	if err != nil {
		log.Fatalf("render pdf: %v", err)
	}
	if err := os.WriteFile(*outputPath, pdf, 0o644); err != nil {
		log.Fatalf("write pdf: %v", err)
	}
	log.Printf("wrote %s (%d bytes)", *outputPath, len(pdf))
}

// loadReport resolves the report title and markdown either from an abstract
// JSON file or from a saved run in the database. Saved runs prefer the
// reviewer-edited markdown when present.
func loadReport(inputPath, dbPath string, runID int64) (string, string, error) {
	switch {
	case inputPath != "":
		raw, err := os.ReadFile(inputPath)
		if err != nil {
			return "", "", err
		}
		var abs abstractor.Abstract
		if err := json.Unmarshal(raw, &abs); err != nil {
			return "", "", err
		}
		return abs.Source.FileName, report.RenderMarkdown(abs), nil

	case dbPath != "" && runID > 0:
		s, err := store.New(dbPath, os.TempDir())
		if err != nil {
			return "", "", err
		}
		defer s.Close()

		rec, err := s.Get(runID)
		if err != nil {
			return "", "", err
		}
		if rec == nil {
			log.Fatalf("no saved run with id %d", runID)
		}
		markdown := rec.Markdown
		if rec.EditedMarkdown.Valid && rec.EditedMarkdown.String != "" {
			markdown = rec.EditedMarkdown.String
		}
		return rec.FileName, markdown, nil

	default:
		log.Fatal("need -input, or -db with -id")
		return "", "", nil
	}
}
