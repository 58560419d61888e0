package observability

import (
	"context"
	"strconv"
	"time"

	"github.com/annel0/worldgen/internal/logging"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
)

// shutdownTimeout ограничивает сброс накопленных спанов при завершении
const shutdownTimeout = 5 * time.Second

// Options описывает процесс генерации для трейсов
type Options struct {
	ServiceName string
	Seed        uint64  // сид основного мира процесса
	SampleRatio float64 // доля трассируемых генераций чанков, [0, 1]
}

// Resource собирает атрибуты процесса: имя сервиса и сид мира.
// Сид хранится строкой: uint64 не помещается в int64-атрибут.
func (o Options) Resource(ctx context.Context) (*resource.Resource, error) {
	return resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(o.ServiceName),
			attribute.String("worldgen.seed", strconv.FormatUint(o.Seed, 10)),
		),
	)
}

// Sampler выбирает долю корневых спанов world.GenerateChunk
func (o Options) Sampler() trace.Sampler {
	switch {
	case o.SampleRatio >= 1:
		return trace.AlwaysSample()
	case o.SampleRatio <= 0:
		return trace.NeverSample()
	}
	return trace.ParentBased(trace.TraceIDRatioBased(o.SampleRatio))
}

// InitTelemetry настраивает OTLP экспортер и устанавливает глобальный TracerProvider.
// Спаны генерации чанков уходят в коллектор (по умолчанию localhost:4318,
// переопределяется OTEL_EXPORTER_OTLP_ENDPOINT).
// Возвращает функцию shutdown, которую нужно вызвать при завершении приложения.
func InitTelemetry(ctx context.Context, opts Options) (func(context.Context) error, error) {
	exp, err := otlptracehttp.New(ctx)
	if err != nil {
		return nil, err
	}

	res, err := opts.Resource(ctx)
	if err != nil {
		return nil, err
	}

	tp := trace.NewTracerProvider(
		trace.WithBatcher(exp),
		trace.WithResource(res),
		trace.WithSampler(opts.Sampler()),
	)

	otel.SetTracerProvider(tp)
	logging.GetComponentLogger("telemetry").Info("OpenTelemetry инициализирован (service=%s, seed=%d, sample=%v)",
		opts.ServiceName, opts.Seed, opts.SampleRatio)

	shutdown := func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
		defer cancel()
		return tp.Shutdown(ctx)
	}
	return shutdown, nil
}
