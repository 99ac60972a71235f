package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	commoncfg "hda-data/common/config"

	"github.com/joho/godotenv"
)

// Secret policies accepted by the identity gate.
const (
	SecretPolicyPresence = "presence"
	SecretPolicyBcrypt   = "bcrypt"
)

// Config hda-data (HTTP API) configuration
type Config struct {
	HTTP struct {
		Addr string
	}
	DBEnabled    bool
	Database     commoncfg.DatabaseConfig
	RedisEnabled bool
	Redis        commoncfg.RedisConfig
	Log          struct {
		Level  string
		Format string
	}
	Cache     CacheConfig
	Session   SessionConfig
	Auth      AuthConfig
	HoneyBook HoneyBookConfig
}

// CacheConfig sizes the in-memory fallback substrate.
type CacheConfig struct {
	QuotaBytes int
}

// SessionConfig signs and expires session tokens.
type SessionConfig struct {
	Secret string
	TTL    time.Duration
}

// AuthConfig is the allow-list gate.
type AuthConfig struct {
	AllowedIdentities []string
	AdminIdentity     string
	SecretPolicy      string
	PasswordHashes    map[string]string // identity -> bcrypt hash
}

// HoneyBookConfig points the CRM bridge at its API.
type HoneyBookConfig struct {
	BaseURL  string
	APIToken string
	Timeout  time.Duration
}

// Load reads the environment, after merging an optional .env file
// (ENV_FILE, default ".env"). Variables already set win over the file.
func Load() *Config {
	_ = godotenv.Load(getEnv("ENV_FILE", ".env"))

	cfg := &Config{}
	cfg.HTTP.Addr = getEnv("HTTP_ADDR", ":8080")

	// if the database is unreachable the service falls back to the memory store
	cfg.DBEnabled = getEnv("DB_ENABLED", "true") == "true"
	cfg.Database = commoncfg.DatabaseConfig{
		Host:            "localhost",
		Port:            5432,
		User:            "postgres",
		Password:        "postgres",
		Database:        "hda",
		SSLMode:         "disable",
		MaxConns:        10,
		MaxIdle:         5,
		ConnMaxLifetime: 30 * time.Minute,
	}
	cfg.Database.LoadFromEnv("DB")

	cfg.RedisEnabled = getEnv("REDIS_ENABLED", "false") == "true"
	cfg.Redis = commoncfg.RedisConfig{Addr: "localhost:6379"}
	cfg.Redis.LoadFromEnv("REDIS")

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	cfg.Cache.QuotaBytes = parseInt(getEnv("CACHE_QUOTA_BYTES", "5242880"), 5<<20)

	cfg.Session.Secret = getEnv("SESSION_SECRET", "")
	cfg.Session.TTL = parseDuration(getEnv("SESSION_TTL", "24h"), 24*time.Hour)

	cfg.Auth.AllowedIdentities = splitList(getEnv("AUTH_ALLOWED_IDENTITIES",
		"sasha@hustledigitalagency.com,mikayla@hustledigitalagency.com"))
	cfg.Auth.AdminIdentity = strings.ToLower(strings.TrimSpace(getEnv("AUTH_ADMIN_IDENTITY", "sasha@hustledigitalagency.com")))
	cfg.Auth.SecretPolicy = strings.ToLower(getEnv("AUTH_SECRET_POLICY", SecretPolicyPresence))
	cfg.Auth.PasswordHashes = parseHashes(getEnv("AUTH_PASSWORD_HASHES", ""))

	cfg.HoneyBook.BaseURL = getEnv("HONEYBOOK_BASE_URL", "https://api.honeybook.com/v2")
	cfg.HoneyBook.APIToken = getEnv("HONEYBOOK_API_TOKEN", "")
	cfg.HoneyBook.Timeout = parseDuration(getEnv("HONEYBOOK_TIMEOUT", "15s"), 15*time.Second)

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseInt(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

func parseDuration(s string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

// splitList normalizes a comma separated identity list.
func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if v := strings.ToLower(strings.TrimSpace(part)); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// parseHashes reads "identity=hash,identity=hash".
func parseHashes(s string) map[string]string {
	out := map[string]string{}
	for _, part := range strings.Split(s, ",") {
		identity, hash, ok := strings.Cut(part, "=")
		if !ok {
			continue
		}
		identity = strings.ToLower(strings.TrimSpace(identity))
		hash = strings.TrimSpace(hash)
		if identity != "" && hash != "" {
			out[identity] = hash
		}
	}
	return out
}
