package utils

import (
	"os"
	"strconv"
	"time"
)

type AuthConfig struct {
	JWTSecret   string
	JWTIssuer   string
	JWTDuration time.Duration
}

func LoadAuthConfig() AuthConfig {
	secret := os.Getenv("ANIFLUX_JWT_SECRET")
	if secret == "" {
		// dev default (change for demo / production)
		secret = "dev-secret-change-me"
	}

	issuer := os.Getenv("ANIFLUX_JWT_ISSUER")
	if issuer == "" {
		issuer = "aniflux"
	}

	return AuthConfig{
		JWTSecret:   secret,
		JWTIssuer:   issuer,
		JWTDuration: envDuration("ANIFLUX_JWT_TTL", 24*time.Hour),
	}
}

type ProviderConfig struct {
	BaseURL           string
	SearchTimeout     time.Duration
	FetchTimeout      time.Duration
	FallbackEpisodes  int
	CacheTTL          time.Duration
	RequestsPerSecond float64
}

func LoadProviderConfig() ProviderConfig {
	base := os.Getenv("ANIFLUX_PROVIDER_URL")
	if base == "" {
		base = "https://api.consumet.org/anime/gogoanime"
	}

	return ProviderConfig{
		BaseURL:           base,
		SearchTimeout:     envDuration("ANIFLUX_PROVIDER_SEARCH_TIMEOUT", 4*time.Second),
		FetchTimeout:      envDuration("ANIFLUX_PROVIDER_FETCH_TIMEOUT", 8*time.Second),
		FallbackEpisodes:  envInt("ANIFLUX_FALLBACK_EPISODES", 12),
		CacheTTL:          envDuration("ANIFLUX_PROVIDER_CACHE_TTL", 10*time.Minute),
		RequestsPerSecond: envFloat("ANIFLUX_PROVIDER_RPS", 4),
	}
}

type CronConfig struct {
	Secret   string
	DevMode  bool
	Schedule string
}

func LoadCronConfig() CronConfig {
	return CronConfig{
		Secret:   os.Getenv("ANIFLUX_CRON_SECRET"),
		DevMode:  os.Getenv("ANIFLUX_ENV") == "development",
		Schedule: envString("ANIFLUX_CRON_SCHEDULE", "@every 6h"),
	}
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func envFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		return def
	}
	return f
}

func envDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
