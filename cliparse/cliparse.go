package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
)

// Store backend names
const (
	BackendGitHub = "github"
	BackendSQL    = "sql"
)

type Config struct {
	Port         int
	StoreBackend string

	// GitHub backend
	GitHubToken  string
	GitHubRepo   string
	GitHubBranch string

	// SQL backend
	DatabaseURL    string
	DatabaseDriver string

	AdminToken string
}

// ParseFlags validates flags and fills in environment fallbacks
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("blockvote", flag.ContinueOnError)

	// Network and backend selection (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.StoreBackend, "b", "", "Store backend (github or sql)")
	fs.StringVar(&cfg.GitHubRepo, "repo", "", "GitHub repository (owner/name)")
	fs.StringVar(&cfg.GitHubBranch, "branch", "", "GitHub branch")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL (sql backend)")
	fs.StringVar(&cfg.DatabaseDriver, "t", "", "Database driver (sqlite or postgres)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.GitHubToken, "github-token", "", "GitHub token (prefer env)")
	fs.StringVar(&cfg.AdminToken, "admin-token", "", "Admin token (prefer env)")

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
			cfg.Port = 3000 // default
		}
	}

	if cfg.StoreBackend == "" {
		cfg.StoreBackend = os.Getenv("STORE_BACKEND")
		if cfg.StoreBackend == "" {
			cfg.StoreBackend = BackendGitHub
		}
	}
	if cfg.StoreBackend != BackendGitHub && cfg.StoreBackend != BackendSQL {
		return Config{}, errors.New("store backend must be github or sql")
	}

	switch cfg.StoreBackend {
	case BackendGitHub:
		if cfg.GitHubToken == "" {
			cfg.GitHubToken = os.Getenv("GITHUB_TOKEN")
		}
		if cfg.GitHubToken == "" {
			return Config{}, errors.New("GITHUB_TOKEN required (use -github-token or env)")
		}
		if cfg.GitHubRepo == "" {
			cfg.GitHubRepo = os.Getenv("GITHUB_REPO")
		}
		if cfg.GitHubRepo == "" {
			return Config{}, errors.New("GITHUB_REPO required (use -repo or env)")
		}
		if cfg.GitHubBranch == "" {
			cfg.GitHubBranch = os.Getenv("GITHUB_BRANCH")
			if cfg.GitHubBranch == "" {
				cfg.GitHubBranch = "main"
			}
		}
	case BackendSQL:
		if cfg.DatabaseURL == "" {
			cfg.DatabaseURL = os.Getenv("DATABASE_URL")
		}
		if cfg.DatabaseURL == "" {
			return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
		}
		if cfg.DatabaseDriver == "" {
			cfg.DatabaseDriver = os.Getenv("DATABASE_DRIVER")
			if cfg.DatabaseDriver == "" {
				cfg.DatabaseDriver = "sqlite"
			}
		}
		if cfg.DatabaseDriver != "sqlite" && cfg.DatabaseDriver != "postgres" {
			return Config{}, errors.New("database driver must be sqlite or postgres")
		}
	}

	// Secrets - MUST be provided
	if cfg.AdminToken == "" {
		cfg.AdminToken = os.Getenv("ADMIN_TOKEN")
	}
	if cfg.AdminToken == "" {
		return Config{}, errors.New("ADMIN_TOKEN required")
	}

	return cfg, nil
}
