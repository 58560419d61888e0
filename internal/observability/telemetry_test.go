package observability

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
)

func TestInitTelemetry_SetsGlobalProvider(t *testing.T) {
	prev := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	shutdown, err := InitTelemetry(context.Background(), Options{ServiceName: "worldgen-test", Seed: 1234, SampleRatio: 1})
	require.NoError(t, err)
	require.NotNil(t, shutdown)

	_, ok := otel.GetTracerProvider().(*sdktrace.TracerProvider)
	assert.True(t, ok, "Глобальный провайдер должен быть SDK TracerProvider")

	assert.NoError(t, shutdown(context.Background()))
}

func TestOptions_Resource(t *testing.T) {
	res, err := Options{ServiceName: "gen", Seed: math.MaxUint64}.Resource(context.Background())
	require.NoError(t, err)

	set := res.Set()
	name, ok := set.Value(semconv.ServiceNameKey)
	require.True(t, ok)
	assert.Equal(t, "gen", name.AsString())

	seed, ok := set.Value(attribute.Key("worldgen.seed"))
	require.True(t, ok)
	assert.Equal(t, "18446744073709551615", seed.AsString())
}

func TestOptions_Sampler(t *testing.T) {
	assert.Equal(t, sdktrace.AlwaysSample().Description(), Options{SampleRatio: 1}.Sampler().Description())
	assert.Equal(t, sdktrace.NeverSample().Description(), Options{SampleRatio: 0}.Sampler().Description())
	assert.Equal(t,
		sdktrace.ParentBased(sdktrace.TraceIDRatioBased(0.25)).Description(),
		Options{SampleRatio: 0.25}.Sampler().Description())
}
