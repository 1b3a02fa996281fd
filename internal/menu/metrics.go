package menu

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	catalogSaves = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "menu_catalog_saves_total",
			Help: "Catalog saves by result",
		},
		[]string{"result"},
	)

	catalogMutations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "menu_catalog_mutations_total",
			Help: "Catalog mutations by operation",
		},
		[]string{"op"},
	)
)
