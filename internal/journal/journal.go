// Package journal appends priced scenarios to a JSON-lines file through a
// background worker, so the request path never waits on disk.
package journal

import (
	"encoding/json"
	"os"
	"strings"
	"time"

	"github.com/tvogel/volgrid/internal/logger"
	"github.com/tvogel/volgrid/internal/pricing"
)

// Entry is one recorded scenario.
type Entry struct {
	Timestamp  time.Time            `json:"timestamp"`
	Kind       string               `json:"kind"` // "price" or "heatmap"
	Params     pricing.OptionParams `json:"params"`
	SpotAxis   *pricing.AxisRange   `json:"spot_axis,omitempty"`
	VolAxis    *pricing.AxisRange   `json:"vol_axis,omitempty"`
	Prices     pricing.PriceResult  `json:"prices"`
	DurationMs float64              `json:"duration_ms"`
}

// Journal is a fire-and-forget scenario recorder. A nil *Journal is valid and
// records nothing, so callers never need to branch on whether journaling is
// enabled.
type Journal struct {
	entries        chan Entry
	filenameFormat string
}

// New starts the journal worker. format names the output file; the literal
// {date} is replaced with the current day, giving one file per day.
func New(filenameFormat string) *Journal {
	j := &Journal{
		entries:        make(chan Entry, 100),
		filenameFormat: filenameFormat,
	}
	go j.worker()
	return j
}

// Record queues an entry. Never blocks: if the worker is behind, the entry is
// dropped with a warning rather than delaying the response.
func (j *Journal) Record(e Entry) {
	if j == nil {
		return
	}
	select {
	case j.entries <- e:
	default:
		logger.Warn.Printf("journal backlog full, dropping %s entry", e.Kind)
	}
}

func (j *Journal) worker() {
	for e := range j.entries {
		line, err := json.Marshal(e)
		if err != nil {
			logger.Error.Printf("journal marshal failed: %v", err)
			continue
		}
		name := strings.ReplaceAll(j.filenameFormat, "{date}", e.Timestamp.Format("2006-01-02"))
		f, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			logger.Error.Printf("journal open %s failed: %v", name, err)
			continue
		}
		if _, err := f.Write(append(line, '\n')); err != nil {
			logger.Error.Printf("journal write failed: %v", err)
		}
		f.Close()
	}
}
