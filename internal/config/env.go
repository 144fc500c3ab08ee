package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Server is the process configuration, read from the environment.
type Server struct {
	Port string
	// Env is "production" or anything else (development).
	Env string

	Store  string // memory | sqlite
	DBPath string

	LogLevel    string
	CORSOrigins []string
	StaticDir   string
}

// LoadServer reads the environment. Callers load .env first if they want it.
func LoadServer() *Server {
	return &Server{
		Port:        getEnv("API_PORT", "8080"),
		Env:         getEnv("API_ENV", "development"),
		Store:       strings.ToLower(getEnv("STORE", "sqlite")),
		DBPath:      getEnv("DB_PATH", "./data/revenue.db"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "")),
		StaticDir:   getEnv("STATIC_DIR", ""),
	}
}

func (s *Server) Production() bool { return s.Env == "production" }

func (s *Server) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(s.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port '%s': must be a number", s.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch s.Store {
	case "memory":
	case "sqlite":
		if strings.TrimSpace(s.DBPath) == "" {
			problems = append(problems, "DB_PATH is required when STORE=sqlite")
		}
	default:
		problems = append(problems, fmt.Sprintf("invalid store '%s': must be memory or sqlite", s.Store))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(problems, "; "))
	}
	return nil
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
