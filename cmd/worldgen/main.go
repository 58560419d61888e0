package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/annel0/worldgen/internal/config"
	"github.com/annel0/worldgen/internal/logging"
	"github.com/annel0/worldgen/internal/observability"
	"github.com/annel0/worldgen/internal/vec"
	"github.com/annel0/worldgen/internal/world"
	"github.com/dustin/go-humanize"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	var (
		configPath = flag.String("config", "", "путь к YAML конфигурации (или WORLDGEN_CONFIG)")
		rulesPath  = flag.String("rules", "", "путь к YAML каталогу блоков и слоёв (пусто: из конфигурации или встроенный)")
		seedFlag   = flag.String("seed", "", "сид мира (пусто: из конфигурации)")
		minX       = flag.Int("x", -64, "левая граница региона")
		minY       = flag.Int("y", -64, "верхняя граница региона")
		width      = flag.Int("w", 128, "ширина региона")
		height     = flag.Int("h", 256, "высота региона")
		seedsFlag  = flag.String("seeds", "", "список сидов через запятую для параллельного обзора")
		serve      = flag.Bool("metrics", false, "после отчёта отдавать метрики Prometheus до сигнала завершения")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Ошибка загрузки конфигурации: %v", err)
	}

	level, err := logging.ParseLevel(cfg.Logging.GetLevel())
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	if err := logging.InitDefaultLogger("worldgen", cfg.Logging.Dir); err != nil {
		log.Fatalf("❌ Ошибка инициализации логирования: %v", err)
	}
	defer logging.CloseDefaultLogger()
	logging.SetDefaultLevel(level)
	logging.GetLoggerManager().Configure(cfg.Logging.Dir, level)
	defer logging.GetLoggerManager().CloseAll()

	logger := logging.GetCLILogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rules, err := loadRules(*rulesPath, cfg.World.RulesPath)
	if err != nil {
		logger.Error("❌ Ошибка загрузки реестра: %v", err)
		os.Exit(1)
	}

	seed := cfg.World.GetSeed()
	if *seedFlag != "" {
		if seed, err = strconv.ParseUint(*seedFlag, 10, 64); err != nil {
			logger.Error("❌ Некорректный сид %q: %v", *seedFlag, err)
			os.Exit(2)
		}
	}

	if cfg.Telemetry.Enabled {
		shutdown, err := observability.InitTelemetry(ctx, observability.Options{
			ServiceName: cfg.Telemetry.GetServiceName(),
			Seed:        seed,
			SampleRatio: cfg.Telemetry.GetSampleRatio(),
		})
		if err != nil {
			logger.Error("Ошибка инициализации OpenTelemetry: %v", err)
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					logger.Warn("Ошибка остановки OpenTelemetry: %v", err)
				}
			}()
		}
	}

	r := region{Min: vec.Vec2{X: *minX, Y: *minY}, Size: vec.Vec2{X: *width, Y: *height}}
	if r.Size.X <= 0 || r.Size.Y <= 0 {
		logger.Error("❌ Размер региона должен быть положительным: %v", r.Size)
		os.Exit(2)
	}

	start := time.Now()
	w := world.NewWorld(rules, seed)
	counts := sampleRegion(w, r)

	fmt.Printf("Мир %s, seed=%d, регион %v + %v (%s блоков, %d чанков, %v)\n",
		w.ID(), seed, r.Min, r.Size, humanize.Comma(int64(r.area())), w.ChunksGenerated(), time.Since(start).Round(time.Millisecond))
	printHistogram(os.Stdout, rules, counts)

	if *seedsFlag != "" {
		seeds, err := parseSeeds(*seedsFlag)
		if err != nil {
			logger.Error("❌ %v", err)
			os.Exit(2)
		}

		results, err := surveySeeds(ctx, rules, seeds, r)
		if err != nil {
			logger.Error("❌ Обзор сидов прерван: %v", err)
			os.Exit(1)
		}
		for _, res := range results {
			fmt.Printf("\nseed=%d (%d чанков)\n", res.Seed, res.Chunks)
			printHistogram(os.Stdout, rules, res.Counts)
		}
	}

	if *serve {
		serveMetrics(ctx, logger, cfg.Metrics.GetAddr())
	}
}

// loadRules выбирает каталог: флаг, затем конфигурация, иначе встроенный реестр
func loadRules(flagPath, configPath string) (*world.GameRules, error) {
	path := flagPath
	if path == "" {
		path = configPath
	}
	if path == "" {
		return world.Load(), nil
	}
	return world.LoadRulesFile(path)
}

func parseSeeds(s string) ([]uint64, error) {
	parts := strings.Split(s, ",")
	seeds := make([]uint64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		seed, err := strconv.ParseUint(p, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("некорректный сид %q: %w", p, err)
		}
		seeds = append(seeds, seed)
	}
	if len(seeds) == 0 {
		return nil, errors.New("пустой список сидов")
	}
	return seeds, nil
}

func serveMetrics(ctx context.Context, logger *logging.Logger, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Сервер метрик: %v", err)
		}
	}()
	logger.Info("📊 Метрики Prometheus: http://localhost%s/metrics", addr)

	<-ctx.Done()
	logger.Info("Получен сигнал завершения, остановка сервера метрик...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("Ошибка остановки сервера метрик: %v", err)
	}
}
