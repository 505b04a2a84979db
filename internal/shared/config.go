package shared

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv         string
	HTTPAddr       string
	MetricsAddr    string
	RedisAddr      string
	RedisDB        int
	RedisPass      string
	HostawayBase   string
	HostawayKey    string
	HostawayRPS    int
	ReviewsFile    string
	CacheTTL       time.Duration
	AllowedOrigins []string
	RateLimitRPS   int
	RateLimitBurst int
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:       env("APP_ENV", "prod"),
		HTTPAddr:     env("HTTP_ADDR", ":8080"),
		MetricsAddr:  env("METRICS_ADDR", ":9100"),
		RedisAddr:    env("REDIS_ADDR", "localhost:6379"),
		RedisPass:    env("REDIS_PASSWORD", ""),
		RedisDB:      atoi("REDIS_DB", 0),
		HostawayBase: env("HOSTAWAY_BASE_URL", "https://api.hostaway.com/v1"),
		HostawayKey:  env("HOSTAWAY_API_KEY", ""),
		HostawayRPS:  atoi("HOSTAWAY_RPS", 5),
		ReviewsFile:  env("REVIEWS_FILE", ""),
		CacheTTL:     time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
		AllowedOrigins: splitCSV(env("ALLOWED_ORIGINS",
			"http://localhost:5173,https://the-flex-project.vercel.app")),
		RateLimitRPS:   atoi("RATE_LIMIT_RPS", 20),
		RateLimitBurst: atoi("RATE_LIMIT_BURST", 40),
	}
	if c.HostawayKey == "" {
		log.Info().Msg("HOSTAWAY_API_KEY empty; reviews will load from the bundled export")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
