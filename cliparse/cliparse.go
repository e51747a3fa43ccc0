package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Database types accepted by the server
const (
	DatabaseSQLite    = "sqlite"
	DatabasePostgres  = "postgres"
	DatabaseFirestore = "firestore"
)

type Config struct {
	Port                    int
	DatabaseURL             string
	DatabaseType            string
	VoterKeySalt            string
	FirebaseCredentialsFile string
	FirebaseProjectID       string
}

// ClientConfig configures the terminal poll viewer
type ClientConfig struct {
	ServerURL string
	Token     string
	Timeout   time.Duration
	LogFile   string
	Args      []string
}

// loadDotEnv reads .env into the environment without overriding variables
// that are already set
func loadDotEnv() {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}
}

// ParseFlags validates flags and sets port number
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	loadDotEnv()

	fs := flag.NewFlagSet("polly", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite, postgres or firestore)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.VoterKeySalt, "voter-salt", "", "Salt for anonymous voter keys (prefer env)")

	fs.StringVar(&cfg.FirebaseCredentialsFile, "firebase-creds", "", "Firebase service account key file")
	fs.StringVar(&cfg.FirebaseProjectID, "firebase-project", "", "Firebase project ID")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318 // default
		}
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = DatabaseSQLite
		}
	}
	switch cfg.DatabaseType {
	case DatabaseSQLite, DatabasePostgres, DatabaseFirestore:
	default:
		return Config{}, fmt.Errorf("unknown database type %q", cfg.DatabaseType)
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" && cfg.DatabaseType != DatabaseFirestore {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.FirebaseCredentialsFile == "" {
		cfg.FirebaseCredentialsFile = os.Getenv("FIREBASE_CREDENTIALS_FILE")
	}
	if cfg.FirebaseProjectID == "" {
		cfg.FirebaseProjectID = os.Getenv("FIREBASE_PROJECT_ID")
	}
	if cfg.DatabaseType == DatabaseFirestore && cfg.FirebaseProjectID == "" {
		return Config{}, errors.New("FIREBASE_PROJECT_ID required for firestore")
	}

	// Secrets - MUST be provided
	if cfg.VoterKeySalt == "" {
		cfg.VoterKeySalt = os.Getenv("VOTER_KEY_SALT")
	}
	if cfg.VoterKeySalt == "" {
		return Config{}, errors.New("VOTER_KEY_SALT required")
	}

	return cfg, nil
}

// ParseClientFlags reads the viewer's flags; remaining arguments are kept in Args
func ParseClientFlags(args []string) (ClientConfig, error) {
	var cfg ClientConfig

	loadDotEnv()

	fs := flag.NewFlagSet("pollview", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerURL, "server", "", "API server URL")
	fs.StringVar(&cfg.Token, "token", "", "Bearer token (prefer env)")
	fs.DurationVar(&cfg.Timeout, "timeout", 0, "Per-request timeout")
	fs.StringVar(&cfg.LogFile, "log", "", "Write logs to this file")

	if err := fs.Parse(args); err != nil {
		return ClientConfig{}, err
	}
	cfg.Args = fs.Args()

	if cfg.ServerURL == "" {
		cfg.ServerURL = os.Getenv("POLLY_SERVER_URL")
		if cfg.ServerURL == "" {
			cfg.ServerURL = "http://localhost:3318"
		}
	}
	if cfg.Token == "" {
		cfg.Token = os.Getenv("POLLY_TOKEN")
	}
	if cfg.Timeout == 0 {
		if s := os.Getenv("POLLY_TIMEOUT"); s != "" {
			d, err := time.ParseDuration(s)
			if err != nil {
				return ClientConfig{}, errors.New("invalid POLLY_TIMEOUT env variable")
			}
			cfg.Timeout = d
		} else {
			cfg.Timeout = 10 * time.Second
		}
	}
	if cfg.LogFile == "" {
		cfg.LogFile = os.Getenv("POLLY_LOG_FILE")
	}

	return cfg, nil
}
