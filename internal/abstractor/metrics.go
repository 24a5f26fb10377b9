package abstractor

import (
	"math"
	"time"

	"github.com/joelkehle/title-abstractor/internal/titledoc"
)

// HourlyRate is the abstractor labor rate used for cost comparisons.
const HourlyRate = 23.0

// computeTimeMetrics estimates what a manual abstract of the same documents
// would have cost. The manual model is 4 minutes per document, an extra
// minute for each deed and mortgage, plus transcription of the legal
// descriptions at 250 characters per minute (50 WPM).
func computeTimeMetrics(docs []titledoc.Document, elapsed time.Duration) TimeMetrics {
	numDocs := len(docs)
	numDeeds := 0
	numMortgages := 0
	totalChars := 0
	for i := range docs {
		switch docs[i].Kind() {
		case titledoc.KindDeed:
			numDeeds++
		case titledoc.KindMortgage:
			numMortgages++
		}
		totalChars += len(docs[i].Property.LegalDescription)
	}

	seconds := elapsed.Seconds()
	manualMinutes := float64(numDocs*4) + float64(numDeeds) + float64(numMortgages) + float64(totalChars)/250

	savedMinutes := manualMinutes - seconds/60
	savedPercent := 0.0
	if manualMinutes > 0 {
		savedPercent = savedMinutes / manualMinutes * 100
	}

	manualCost := manualMinutes / 60 * HourlyRate
	aiCost := seconds / 60 / 60 * HourlyRate

	return TimeMetrics{
		AIProcessingSeconds:   round1(seconds),
		AIProcessingMinutes:   round1(seconds / 60),
		ManualEstimateMinutes: round1(manualMinutes),
		TimeSavedMinutes:      round1(savedMinutes),
		TimeSavedPercent:      round1(savedPercent),
		HourlyRate:            HourlyRate,
		ManualCost:            round2(manualCost),
		AICost:                round2(aiCost),
		CostSaved:             round2(manualCost - aiCost),
	}
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
