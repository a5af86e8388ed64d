package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT
	JWTSecret       string
	JWTAccessExpiry time.Duration

	// Refresh token cookie
	RefreshTokenExpiry time.Duration
	CookieSecure       bool
	CookieSameSite     string
	CookieDomain       string

	// Server
	Env         string
	Port        string
	CORSOrigins string

	// Media storage
	MediaDir string
}

func Load() *Config {
	env := getEnv("APP_ENV", "development")

	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "clinic_db"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret:       getEnv("JWT_SECRET", ""),
		JWTAccessExpiry: parseDuration(getEnv("JWT_ACCESS_EXPIRY", "15m")),

		RefreshTokenExpiry: ParseCookieMaxAge(getEnv("REFRESH_TOKEN_EXPIRES_IN", "30d")),
		CookieSecure:       parseBool(getEnv("REFRESH_TOKEN_COOKIE_SECURE", ""), env == "production"),
		CookieSameSite:     getEnv("REFRESH_TOKEN_COOKIE_SAMESITE", "lax"),
		CookieDomain:       getEnv("REFRESH_TOKEN_COOKIE_DOMAIN", ""),

		Env:         env,
		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),

		MediaDir: getEnv("MEDIA_DIR", "uploads"),
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 15 * time.Minute
	}
	return d
}

func parseBool(s string, fallback bool) bool {
	if s == "" {
		return fallback
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return fallback
	}
	return b
}

// ParseCookieMaxAge parses duration strings like "30d", "1h", "900s" into
// a duration. Unlike time.ParseDuration it accepts the "d" suffix. A
// malformed string or unknown suffix parses to 0, which downstream turns
// into a session cookie rather than an error.
func ParseCookieMaxAge(s string) time.Duration {
	if len(s) < 2 {
		return 0
	}

	var unit time.Duration
	switch s[len(s)-1] {
	case 's':
		unit = time.Second
	case 'm':
		unit = time.Minute
	case 'h':
		unit = time.Hour
	case 'd':
		unit = 24 * time.Hour
	default:
		return 0
	}

	n, err := strconv.Atoi(strings.TrimSpace(s[:len(s)-1]))
	if err != nil || n < 0 {
		return 0
	}
	return time.Duration(n) * unit
}
