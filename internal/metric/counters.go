package metric

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var checkIns = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "seminar_checkins_total",
	Help: "Check-in operations by outcome",
}, []string{"outcome"})

var importedRows = promauto.NewCounter(prometheus.CounterOpts{
	Name: "seminar_imported_rows_total",
	Help: "Attendee rows accepted by bulk import",
})

var exports = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "seminar_exports_total",
	Help: "Completed exports by document kind",
}, []string{"kind"})

func CountCheckIn(alreadyInState bool) {
	outcome := "transition"
	if alreadyInState {
		outcome = "noop"
	}
	checkIns.WithLabelValues(outcome).Inc()
}

func CountImportedRows(n int) {
	importedRows.Add(float64(n))
}

func CountExport(kind string) {
	exports.WithLabelValues(kind).Inc()
}
