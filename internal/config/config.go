package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Persistence modes.
const (
	ModeRemote = "remote"
	ModeLocal  = "local"

	SubstrateFile  = "file"
	SubstrateRedis = "redis"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	// Persistence
	Mode           string        // "remote" | "local"
	BackendURL     string        // remote mode: base URL of the reels REST backend
	BackendTimeout time.Duration // remote mode: per request timeout (default: 5s)
	LocalSubstrate string        // local mode: "file" | "redis"
	DataFile       string        // local file substrate: path to reels.json
	WatchDataFile  bool          // local file substrate: reload when the file changes on disk
	RedisNamespace string        // local redis substrate: key namespace (default: "reelpanel")
	SeedFile       string        // optional YAML imported on startup when the collection is empty
	ReloadInterval time.Duration // periodic refresh from the backing store (0 = disabled)

	// Redis (local redis substrate only)
	RedisAddr           string        // ex: "localhost:6379"
	RedisUser           string        // optional
	RedisPassword       string        // optional
	RedisDB             int           // Redis DB number
	RedisDT             time.Duration // Redis dial timeout (ex: 5s)
	RedisRT             time.Duration // Redis read timeout (ex: 3s)
	RedisWT             time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait        time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout    time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize       int           // Redis connection pool size
	RedisConnectTimeout time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval  time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold  int           // warn after this many attempts

	// Rate limits
	APIRateLimit       int // read API requests per minute per client IP (0 = disabled)
	MutationBurst      int // mutation burst per client IP
	MutationRefillPerM int // mutation tokens refilled per minute per client IP

	AllowedHosts []string // optional, restrict ops endpoints to specific Host headers
	AllowedCIDRS []string // optional, restrict ops endpoints to specific IPs (e.g. "1.2.3.4, 10.0.0.0/8")
	TrustProxy   bool     // true => trust X-Forwarded-For headers (e.g. cloudflared)
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("REELS_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("REELS_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("REELS_LOG_LEVEL", "info"),
		PrettyLog: mustBool("REELS_PRETTY_LOG", true),

		// Persistence
		Mode:           strings.ToLower(getenv("REELS_MODE", ModeLocal)),
		BackendTimeout: mustDuration("REELS_BACKEND_TIMEOUT", 5*time.Second),
		LocalSubstrate: strings.ToLower(getenv("REELS_LOCAL_SUBSTRATE", SubstrateFile)),
		DataFile:       getenv("REELS_DATA_FILE", "/app/data/reels.json"),
		WatchDataFile:  mustBool("REELS_WATCH_DATA_FILE", true),
		RedisNamespace: getenv("REELS_REDIS_NAMESPACE", "reelpanel"),
		SeedFile:       getenv("REELS_SEED_FILE", ""), // Optional, empty = no seed import
		ReloadInterval: mustDuration("REELS_RELOAD_INTERVAL", time.Minute),

		// Rate limits
		APIRateLimit:       getenvInt("REELS_API_RATE_LIMIT", 120),
		MutationBurst:      getenvInt("REELS_MUTATION_BURST", 20),
		MutationRefillPerM: getenvInt("REELS_MUTATION_REFILL_PER_MIN", 60),

		// Access restrictions
		AllowedHosts: splitAndTrim(getenv("REELS_ALLOWED_HOSTS", "")),
		AllowedCIDRS: parseAllowedIPs(getenv("REELS_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("REELS_TRUST_PROXY", false),
	}

	switch cfg.Mode {
	case ModeRemote:
		cfg.BackendURL = requireEnv("REELS_BACKEND_URL")
	case ModeLocal:
		loadLocal(cfg)
	default:
		panic(fmt.Sprintf("❌ FATAL: REELS_MODE must be %q or %q, got %q", ModeRemote, ModeLocal, cfg.Mode))
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		if cfg.RedisPassword != "" {
			cfgCopy.RedisPassword = "***REDACTED***"
		}
		if cfg.RedisUser != "" {
			cfgCopy.RedisUser = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

func loadLocal(cfg *Config) {
	switch cfg.LocalSubstrate {
	case SubstrateFile:
		return
	case SubstrateRedis:
	default:
		panic(fmt.Sprintf("❌ FATAL: REELS_LOCAL_SUBSTRATE must be %q or %q, got %q",
			SubstrateFile, SubstrateRedis, cfg.LocalSubstrate))
	}

	cfg.RedisAddr = requireEnv("REELS_REDIS_ADDR")
	cfg.RedisUser = getenv("REELS_REDIS_USERNAME", "")
	cfg.RedisPassword = getenv("REELS_REDIS_PASSWORD", "")
	cfg.RedisDB = requireEnvInt("REELS_REDIS_DB")
	cfg.RedisDT = mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second)
	cfg.RedisRT = mustDuration("REDIS_READ_TIMEOUT", 3*time.Second)
	cfg.RedisWT = mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second)
	cfg.RedisMaxWait = mustDuration("REDIS_MAX_WAIT", 10*time.Second)
	cfg.RedisPingTimeout = mustDuration("REDIS_PING_TIMEOUT", 5*time.Second)
	cfg.RedisPoolSize = getenvInt("REDIS_POOL_SIZE", 10)
	cfg.RedisConnectTimeout = mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second)
	cfg.RedisRetryInterval = mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second)
	cfg.RedisWarnThreshold = getenvInt("REDIS_WARN_THRESHOLD", 3)
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func requireEnvInt(key string) int {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		panic(fmt.Sprintf("❌ FATAL: Invalid integer value for %s: %s", key, v))
	}
	return i
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func parseAllowedIPs(allowed string) []string {
	if allowed == "" {
		return nil
	}
	ips := make([]string, 0, 4)
	for _, ip := range splitAndTrim(allowed) {
		if ip != "" {
			ips = append(ips, ip)
		}
	}
	return ips
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
