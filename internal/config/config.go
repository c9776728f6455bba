package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Fetch struct {
		Symbols []string `yaml:"symbols"`
		Years   int      `yaml:"years"`
	} `yaml:"fetch"`
	Lookup struct {
		Names   map[string]string `yaml:"names"`
		Sectors map[string]string `yaml:"sectors"`
	} `yaml:"lookup"`
	Output struct {
		StocksDir    string `yaml:"stocks_dir"`
		MetadataFile string `yaml:"metadata_file"`
	} `yaml:"output"`
	Report struct {
		GapThresholdDays int `yaml:"gap_threshold_days"`
	} `yaml:"report"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Schedule string `yaml:"schedule"`
	Proxy    string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides. A missing file is not an error: the compiled-in defaults below
// describe the standard Chart Arcade data set.
func Load(path string) (*Config, error) {
	// Best-effort .env loading so local overrides work without exporting.
	_ = godotenv.Load()

	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("STOCK_SYMBOLS"); v != "" {
		cfg.Fetch.Symbols = splitSymbols(v)
	}
	if v := os.Getenv("YEARS_OF_DATA"); v != "" {
		if years, err := strconv.Atoi(v); err == nil {
			cfg.Fetch.Years = years
		}
	}
	if v := os.Getenv("STOCKS_DIR"); v != "" {
		cfg.Output.StocksDir = v
	}
	if v := os.Getenv("METADATA_FILE"); v != "" {
		cfg.Output.MetadataFile = v
	}
	if v := os.Getenv("GAP_THRESHOLD_DAYS"); v != "" {
		if days, err := strconv.Atoi(v); err == nil {
			cfg.Report.GapThresholdDays = days
		}
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("FETCH_SCHEDULE"); v != "" {
		cfg.Schedule = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if len(cfg.Fetch.Symbols) == 0 {
		cfg.Fetch.Symbols = []string{"AAPL", "UAL", "AXON", "T"}
	}
	if cfg.Fetch.Years == 0 {
		cfg.Fetch.Years = 3
	}
	if cfg.Lookup.Names == nil {
		cfg.Lookup.Names = map[string]string{
			"AAPL": "Apple Inc.",
			"UAL":  "United Airlines Holdings, Inc.",
			"AXON": "Axon Enterprise, Inc.",
			"T":    "AT&T Inc.",
		}
	}
	if cfg.Lookup.Sectors == nil {
		cfg.Lookup.Sectors = map[string]string{
			"AAPL": "Technology",
			"AXON": "Technology",
			"UAL":  "Consumer Cyclical",
			"T":    "Consumer Cyclical",
		}
	}
	if cfg.Output.StocksDir == "" {
		cfg.Output.StocksDir = "data/stocks"
	}
	if cfg.Output.MetadataFile == "" {
		cfg.Output.MetadataFile = "data/metadata.json"
	}
	if cfg.Report.GapThresholdDays == 0 {
		cfg.Report.GapThresholdDays = 5
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if len(c.Fetch.Symbols) == 0 {
		return fmt.Errorf("fetch.symbols must not be empty")
	}
	if c.Fetch.Years <= 0 {
		return fmt.Errorf("fetch.years must be positive")
	}
	if c.Report.GapThresholdDays <= 0 {
		return fmt.Errorf("report.gap_threshold_days must be positive")
	}
	if c.Output.StocksDir == "" {
		return fmt.Errorf("output.stocks_dir is required")
	}
	if c.Output.MetadataFile == "" {
		return fmt.Errorf("output.metadata_file is required")
	}
	return nil
}

func splitSymbols(v string) []string {
	parts := strings.Split(v, ",")
	symbols := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.ToUpper(strings.TrimSpace(p)); s != "" {
			symbols = append(symbols, s)
		}
	}
	return symbols
}
