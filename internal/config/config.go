package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	BaseURL         string        // public base URL, ex: https://blog.domain.ext
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	PageSize         int    // posts per feed page
	BookmarkSeedFile string // optional YAML file of sidebar bookmarks, empty = no seeding

	// Identity
	AuthorEmail       string        // the single email allowed to authenticate
	SessionSecret     string        // HMAC key for the session cookie
	SessionTTL        time.Duration // session cookie lifetime
	OAuthClientID     string
	OAuthClientSecret string
	OAuthRedirectURL  string // callback URL registered at the provider; defaults to BaseURL + "/login"

	// Redis
	RedisAddr           string        // ex: "localhost:6379"
	RedisUser           string        // optional
	RedisPassword       string        // optional
	RedisDB             int           // Redis DB number
	RedisDialTimeout    time.Duration // ex: 5s
	RedisReadTimeout    time.Duration // ex: 3s
	RedisWriteTimeout   time.Duration // ex: 3s
	RedisPoolSize       int           // connection pool size
	RedisConnectTimeout time.Duration // total time to retry connecting (ex: 30s)
	RedisRetryInterval  time.Duration // initial wait between retries, grows exponentially
	RedisMaxWait        time.Duration // max wait between retries
	RedisPingTimeout    time.Duration // timeout for each ping attempt

	AllowedHosts []string // optional, restrict access to specific Host headers
	TrustProxy   bool     // true => trust X-Forwarded-For headers

	// Login rate limit (token bucket per client IP)
	LoginBurst     int
	LoginPerMinute int
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("QUILL_LISTEN_PORT", ":8080"),
		BaseURL:         getenv("QUILL_BASE_URL", "http://localhost:8080"),
		ShutdownTimeout: mustDuration("QUILL_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("QUILL_LOG_LEVEL", "info"),
		PrettyLog: mustBool("QUILL_PRETTY_LOG", true),

		// Blog
		PageSize:         getenvInt("QUILL_PAGE_SIZE", 10),
		BookmarkSeedFile: getenv("QUILL_BOOKMARK_SEED_FILE", ""), // Optional, empty = no seeding

		// Identity
		AuthorEmail:       requireEnv("QUILL_AUTHOR_EMAIL"),
		SessionSecret:     requireEnv("QUILL_SESSION_SECRET"),
		SessionTTL:        mustDuration("QUILL_SESSION_TTL", 30*24*time.Hour),
		OAuthClientID:     requireEnv("QUILL_OAUTH_CLIENT_ID"),
		OAuthClientSecret: requireEnv("QUILL_OAUTH_CLIENT_SECRET"),
		OAuthRedirectURL:  getenv("QUILL_OAUTH_REDIRECT_URL", ""),

		// Redis settings
		RedisAddr:           requireEnv("QUILL_REDIS_ADDR"),
		RedisUser:           getenv("QUILL_REDIS_USERNAME", "default"),
		RedisPassword:       getenv("QUILL_REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("QUILL_REDIS_DB", 0),
		RedisDialTimeout:    mustDuration("QUILL_REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisReadTimeout:    mustDuration("QUILL_REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWriteTimeout:   mustDuration("QUILL_REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisPoolSize:       getenvInt("QUILL_REDIS_POOL_SIZE", 10),
		RedisConnectTimeout: mustDuration("QUILL_REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:  mustDuration("QUILL_REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisMaxWait:        mustDuration("QUILL_REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    mustDuration("QUILL_REDIS_PING_TIMEOUT", 5*time.Second),

		// Access restrictions
		AllowedHosts: splitAndTrim(getenv("QUILL_ALLOWED_HOSTS", "")),
		TrustProxy:   mustBool("QUILL_TRUST_PROXY", false),

		// Login rate limit
		LoginBurst:     getenvInt("QUILL_LOGIN_BURST", 5),
		LoginPerMinute: getenvInt("QUILL_LOGIN_PER_MINUTE", 10),
	}

	if len(cfg.SessionSecret) < 16 {
		panic("❌ FATAL: QUILL_SESSION_SECRET must be at least 16 bytes")
	}

	if cfg.OAuthRedirectURL == "" {
		cfg.OAuthRedirectURL = strings.TrimSuffix(cfg.BaseURL, "/") + "/login"
	}

	return cfg
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
