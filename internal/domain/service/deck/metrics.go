package deck

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals
var (
	decksAssembled = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "winedeck",
		Subsystem: "deck",
		Name:      "assembled_total",
		Help:      "Number of decks assembled.",
	})

	cardsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "winedeck",
		Subsystem: "deck",
		Name:      "cards_dropped_total",
		Help:      "Cards excluded from decks for missing purchase links.",
	})
)
