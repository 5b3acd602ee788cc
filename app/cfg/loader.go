package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Page snapshot configuration
	PagePath   string `long:"page" env:"PAGE_PATH" default:"./page.html" description:"Path to the feed page snapshot kept up to date by the capture process"`
	PageHost   string `long:"page-host" env:"PAGE_HOST" default:"www.instagram.com" description:"Hostname the snapshot was captured from"`
	SiteHost   string `long:"site-host" env:"SITE_HOST" default:"instagram.com" description:"Hostname the engine is built for; other hosts are left untouched"`
	OutputPath string `long:"output" env:"OUTPUT_PATH" description:"Optional path the filtered page is written to after every pass"`

	// List sources
	AllowList string `long:"allow-list" env:"ALLOW_LIST" default:"./allowed.txt" description:"File path or URL of the allowed accounts list, one handle per line"`
	BlockList string `long:"block-list" env:"BLOCK_LIST" default:"./blocked_hosts.txt" description:"File path or URL of the blocked hosts list, one host per line"`

	// Application configuration
	ProfilePath        string `long:"profile" env:"PROFILE_PATH" description:"Optional YAML site profile overriding the built-in heuristics"`
	DBPath             string `long:"db-path" env:"DB_PATH" default:"./focusaid.db" description:"SQLite database path for pass telemetry"`
	Port               string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	APIAccessKey       string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for authentication (optional)"`
	DebounceMs         int    `long:"debounce-ms" env:"DEBOUNCE_MS" default:"200" description:"Debounce window in milliseconds for coalescing snapshot changes"`
	ReclassifyOnReload bool   `long:"reclassify-on-reload" env:"RECLASSIFY_ON_RELOAD" description:"Re-decide already-classified items when the allow list is reloaded"`
	ListTimeout        int    `long:"list-timeout" env:"LIST_TIMEOUT" default:"30" description:"Timeout in seconds for fetching lists over HTTP"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"FocusAid/1.0" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, America/New_York)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		PagePath:           raw.PagePath,
		PageHost:           raw.PageHost,
		SiteHost:           raw.SiteHost,
		OutputPath:         raw.OutputPath,
		AllowList:          raw.AllowList,
		BlockList:          raw.BlockList,
		ProfilePath:        raw.ProfilePath,
		DBPath:             raw.DBPath,
		Port:               raw.Port,
		APIAccessKey:       raw.APIAccessKey,
		DebounceMs:         raw.DebounceMs,
		ReclassifyOnReload: raw.ReclassifyOnReload,
		ListTimeout:        raw.ListTimeout,
		UserAgent:          raw.UserAgent,
		Timezone:           raw.Timezone,
		Debug:              raw.Debug,
		Version:            GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}
