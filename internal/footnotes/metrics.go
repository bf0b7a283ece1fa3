package footnotes

import (
	"time"

	"github.com/goliatone/go-cms-footnotes/pkg/interfaces"
)

// NoOpMetrics returns a recorder that drops every observation.
func NoOpMetrics() interfaces.FootnoteMetrics {
	return noopMetrics{}
}

type noopMetrics struct{}

func (noopMetrics) ObserveRenderDuration(time.Duration) {}

func (noopMetrics) IncrementMarkerSkipped(string) {}
