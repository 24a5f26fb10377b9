package abstractor

import (
	"time"

	"github.com/joelkehle/title-abstractor/internal/chains"
	"github.com/joelkehle/title-abstractor/internal/titledoc"
)

const extractionMethod = "two-pass-hybrid"

// Source identifies the processed input file.
type Source struct {
	FileName string `json:"fileName"`
	County   string `json:"county"`
	State    string `json:"state"`
}

// TimeMetrics compares AI processing time against the estimated manual
// abstracting effort for the same file.
type TimeMetrics struct {
	AIProcessingSeconds   float64 `json:"aiProcessingSeconds"`
	AIProcessingMinutes   float64 `json:"aiProcessingMinutes"`
	ManualEstimateMinutes float64 `json:"manualEstimateMinutes"`
	TimeSavedMinutes      float64 `json:"timeSavedMinutes"`
	TimeSavedPercent      float64 `json:"timeSavedPercent"`
	HourlyRate            float64 `json:"hourlyRate"`
	ManualCost            float64 `json:"manualCost"`
	AICost                float64 `json:"aiCost"`
	CostSaved             float64 `json:"costSaved"`
}

// Review summarizes the run for the human reviewer.
type Review struct {
	TotalPagesProcessed int         `json:"totalPagesProcessed"`
	AllPagesReviewed    bool        `json:"allPagesReviewed"`
	ChainWarnings       []string    `json:"chainWarnings"`
	ExtractionMethod    string      `json:"extractionMethod"`
	DocumentsExtracted  int         `json:"documentsExtracted"`
	TimeMetrics         TimeMetrics `json:"timeMetrics"`
}

// Abstract is the complete output of one pipeline run.
type Abstract struct {
	RunID     string              `json:"runId"`
	Source    Source              `json:"source"`
	Review    Review              `json:"review"`
	Documents []titledoc.Document `json:"documents"`
	Chains    chains.Result       `json:"chainAnalysis"`
	StartedAt time.Time           `json:"startedAt"`
	Duration  time.Duration       `json:"-"`
}
