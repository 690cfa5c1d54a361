package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort string
	BasePath   string
	AppEnv     string

	// API_URL é o endereço público; INTERNAL_API_URL evita o proxy
	// quando o servidor roda na mesma rede do backend.
	APIURL         string
	InternalAPIURL string
	APITimeout     time.Duration

	SessionSecret string
	SessionCookie string
	CookieSecure  bool

	DBUrl string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	S3Bucket    string
	S3Region    string
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string

	AllowedOrigins []string

	LoginRate  float64
	LoginBurst int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("config: .env não carregado (%v), usando ambiente", err)
	}

	cfg := &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		BasePath:   normalizeBasePath(getEnv("BASE_PATH", "/agendamento")),
		AppEnv:     getEnv("APP_ENV", "development"),

		APIURL:         getEnv("API_URL", "http://localhost:3000/"),
		InternalAPIURL: getEnv("INTERNAL_API_URL", ""),
		APITimeout:     getDuration("API_TIMEOUT", 15*time.Second),

		SessionSecret: getEnv("SESSION_SECRET", ""),
		SessionCookie: getEnv("SESSION_COOKIE", "agendamento_sessao"),
		CookieSecure:  getBool("COOKIE_SECURE", false),

		DBUrl: getEnv("DATABASE_URL", ""),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getInt("REDIS_DB", 0),
		CacheTTL:      getDuration("CACHE_TTL", 120*time.Second),

		S3Bucket:    getEnv("S3_BUCKET", ""),
		S3Region:    getEnv("S3_REGION", "us-east-1"),
		S3Endpoint:  getEnv("S3_ENDPOINT", ""),
		S3AccessKey: getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey: getEnv("S3_SECRET_KEY", ""),

		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "")),

		LoginRate:  getFloat("LOGIN_RATE", 1),
		LoginBurst: getInt("LOGIN_BURST", 5),
	}

	if cfg.SessionSecret == "" {
		if !cfg.IsDevelopment() {
			log.Fatal("SESSION_SECRET is required")
		}
		cfg.SessionSecret = "changeme"
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Printf("config: %s inválido (%q), usando %d", key, v, def)
	}
	return def
}

func getFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		log.Printf("config: %s inválido (%q), usando %v", key, v, def)
	}
	return def
}

func getBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

// aceita "15s", "2m" ou segundos puros
func getDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second
	}
	log.Printf("config: %s inválido (%q), usando %s", key, v, def)
	return def
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func normalizeBasePath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" || p == "/" {
		return ""
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return strings.TrimRight(p, "/")
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.ServerPort)
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// BackendURL é a base usada pelas chamadas feitas no servidor,
// sempre terminando em "/".
func (c *Config) BackendURL() string {
	u := c.InternalAPIURL
	if u == "" {
		u = c.APIURL
	}
	if u != "" && !strings.HasSuffix(u, "/") {
		u += "/"
	}
	return u
}

// Path monta uma rota da aplicação sob o BASE_PATH.
func (c *Config) Path(p string) string {
	if p == "" || p == "/" {
		if c.BasePath == "" {
			return "/"
		}
		return c.BasePath + "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return c.BasePath + p
}
