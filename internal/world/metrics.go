package world

import "github.com/prometheus/client_golang/prometheus"

var (
	chunksGenerated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "worldgen",
		Name:      "chunks_generated_total",
		Help:      "Общее число сгенерированных чанков.",
	})
	chunkGenerationSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "worldgen",
		Name:      "chunk_generation_seconds",
		Help:      "Длительность генерации одного чанка.",
		Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
	})
	chunksCached = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "worldgen",
		Name:      "chunks_cached",
		Help:      "Количество чанков в кэше мира.",
	}, []string{"world"})
)

func init() {
	prometheus.MustRegister(chunksGenerated, chunkGenerationSeconds, chunksCached)
}
