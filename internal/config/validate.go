package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text (got %q)", c.Log.Format)
	}

	if c.Translate.SourceLang == "" {
		return fmt.Errorf("translate.source_lang must not be empty")
	}
	if c.Translate.Timeout <= 0 {
		return fmt.Errorf("translate.timeout must be > 0 (got %v)", c.Translate.Timeout)
	}
	if c.Translate.PhraseTTL <= 0 {
		return fmt.Errorf("translate.phrase_ttl must be > 0 (got %v)", c.Translate.PhraseTTL)
	}

	if c.Cache.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be > 0 (got %v)", c.Cache.TTL)
	}
	if c.Cache.MaxEntries <= 0 {
		return fmt.Errorf("cache.max_entries must be > 0 (got %d)", c.Cache.MaxEntries)
	}

	if c.Admin.RateLimitPerMinute <= 0 {
		return fmt.Errorf("admin.rate_limit_per_minute must be > 0 (got %d)", c.Admin.RateLimitPerMinute)
	}

	if c.Backfill.APILimit <= 0 {
		return fmt.Errorf("backfill.api_limit must be > 0 (got %d)", c.Backfill.APILimit)
	}
	if c.Backfill.CLILimit <= 0 {
		return fmt.Errorf("backfill.cli_limit must be > 0 (got %d)", c.Backfill.CLILimit)
	}

	return nil
}
