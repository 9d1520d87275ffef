package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"itinerary-scheduler-service/internal/adapters/cache"
	"itinerary-scheduler-service/internal/adapters/transit"
	"itinerary-scheduler-service/internal/config"
	"itinerary-scheduler-service/internal/domain"
	"itinerary-scheduler-service/internal/platform/db"
	"itinerary-scheduler-service/internal/ports"
	"itinerary-scheduler-service/internal/services"
)

// main is the composition root: it wires concrete adapters behind ports,
// runs a scheduling pass over a seed file and prints the itinerary.
func main() {
	seedPath := flag.String("seed", "data/seeds/activities.json", "path to the activity seed JSON")
	configPath := flag.String("config", "config.yaml", "path to the optional YAML config")
	from := flag.String("from", "", "first trip day (YYYY-MM-DD)")
	to := flag.String("to", "", "last trip day (YYYY-MM-DD)")
	tz := flag.String("tz", "UTC", "trip timezone (IANA name)")
	precise := flag.Bool("precise", false, "resolve precise transit times between consecutive placements (needs ORS_API_KEY)")
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	if err := godotenv.Load(); err != nil {
		logger.Info().Msg("no .env file found (using environment variables)")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("load config")
	}
	if level, err := zerolog.ParseLevel(cfg.Logging.Level); err == nil {
		logger = logger.Level(level)
	}

	if *from == "" || *to == "" {
		logger.Fatal().Msg("-from and -to are required")
	}
	loc, err := time.LoadLocation(*tz)
	if err != nil {
		logger.Fatal().Err(err).Str("tz", *tz).Msg("load timezone")
	}
	start, err := time.ParseInLocation("2006-01-02", *from, loc)
	if err != nil {
		logger.Fatal().Err(err).Msg("parse -from")
	}
	end, err := time.ParseInLocation("2006-01-02", *to, loc)
	if err != nil {
		logger.Fatal().Err(err).Msg("parse -to")
	}

	candidates, err := loadSeed(*seedPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("load seed")
	}

	planner := services.NewPlanner()
	planner.Weights = services.ScoreWeights{
		Transit:    cfg.Scheduler.TransitWeight,
		TimeOfDay:  cfg.Scheduler.TimeOfDayWeight,
		Popularity: cfg.Scheduler.PopularityWeight,
		Clustering: cfg.Scheduler.ClusteringWeight,
		SlotUsage:  cfg.Scheduler.SlotUsageWeight,
	}

	ctx := logger.WithContext(context.Background())
	res, err := planner.Rebalance(ctx, services.ScheduleRequest{
		Activities: candidates,
		Start:      start,
		End:        end,
		Timezone:   *tz,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("rebalance")
	}

	printItinerary(res, loc)

	if *precise {
		resolvePrecise(ctx, logger, cfg.Transit, res, loc)
	}
}

func loadSeed(path string) ([]domain.ActivityCandidate, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load seed: read %q: %w", path, err)
	}

	var candidates []domain.ActivityCandidate
	if err := json.Unmarshal(b, &candidates); err != nil {
		return nil, fmt.Errorf("load seed: decode %q: %w", path, err)
	}

	for i := range candidates {
		if candidates[i].ID == "" {
			candidates[i].ID = uuid.NewString()
		}
	}
	return candidates, nil
}

func printItinerary(res *services.ScheduleResult, loc *time.Location) {
	for _, a := range res.Scheduled {
		fmt.Printf(
			"%s  %s - %s  transit=%dmin  %s",
			a.StartTime.In(loc).Format("Mon 2006-01-02"),
			a.StartTime.In(loc).Format("15:04"),
			a.EndTime.In(loc).Format("15:04"),
			a.TransitMinutes,
			a.Name,
		)
		if a.Warning != "" {
			fmt.Printf("  [warning: %s]", a.Warning)
		}
		fmt.Println()
	}
	for _, a := range res.Unscheduled {
		fmt.Printf("unplaced            %s\n", a.Name)
	}
}

// resolvePrecise replaces the walking estimates between consecutive
// placements with provider-backed transit times. This is the single-decision
// boundary the resolver exists for; the combinatorial search never uses it.
func resolvePrecise(
	ctx context.Context,
	logger zerolog.Logger,
	cfg config.TransitConfig,
	res *services.ScheduleResult,
	loc *time.Location,
) {
	apiKey := os.Getenv("ORS_API_KEY")
	if apiKey == "" {
		logger.Error().Msg("ORS_API_KEY is required for -precise")
		return
	}

	provider, err := transit.NewORSProvider(apiKey,
		transit.WithBaseURL(cfg.ProviderURL),
		transit.WithProfile(cfg.Profile),
	)
	if err != nil {
		logger.Error().Err(err).Msg("build transit provider")
		return
	}

	store, err := buildCache(cfg)
	if err != nil {
		logger.Error().Err(err).Msg("build transit cache")
		return
	}

	resolver := transit.NewResolver(provider, store,
		transit.WithTTL(time.Duration(cfg.CacheTTLHours)*time.Hour),
		transit.WithDebounceDelay(time.Duration(cfg.DebounceMillis)*time.Millisecond),
		transit.WithMaxBatch(cfg.MaxBatchSize),
		transit.WithLogger(logger),
	)

	for i := 1; i < len(res.Scheduled); i++ {
		prev, cur := res.Scheduled[i-1], res.Scheduled[i]
		prevDay := prev.StartTime.In(loc)
		curDay := cur.StartTime.In(loc)
		if prevDay.Year() != curDay.Year() || prevDay.YearDay() != curDay.YearDay() {
			continue
		}

		minutes, err := resolver.TransitMinutes(ctx, prev.Location, cur.Location, *prev.EndTime)
		if err != nil {
			logger.Warn().Err(err).Str("from", prev.Name).Str("to", cur.Name).Msg("transit lookup failed")
			continue
		}
		fmt.Printf("transit %s -> %s: %dmin\n", prev.Name, cur.Name, minutes)
	}
}

func buildCache(cfg config.TransitConfig) (ports.TransitCache, error) {
	ttl := time.Duration(cfg.CacheTTLHours) * time.Hour

	switch cfg.CacheBackend {
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		return cache.NewRedisTransitCache(client, ttl), nil
	case "postgres":
		conn, err := db.Open(os.Getenv("DATABASE_URL"))
		if err != nil {
			return nil, err
		}
		if err := cache.InitSchema(context.Background(), conn); err != nil {
			return nil, err
		}
		return cache.NewSQLTransitCache(conn, ttl), nil
	default:
		return cache.NewMemoryTransitCache(ttl), nil
	}
}
