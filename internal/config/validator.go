package config

import "fmt"

// Validate ověří konfiguraci před spuštěním aplikace. Neplatná
// konfigurace se odmítá dřív, než se pipeline vůbec rozběhne.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("SERVER_PORT nesmí být prázdný")
	}
	if c.ARESBaseURL == "" {
		return fmt.Errorf("ARES_BASE_URL nesmí být prázdný")
	}
	if c.ARESFetchLimit <= 0 {
		return fmt.Errorf("ARES_FETCH_LIMIT musí být kladný, je %d", c.ARESFetchLimit)
	}
	if c.ARESRateLimit <= 0 {
		return fmt.Errorf("ARES_RATE_LIMIT musí být kladný, je %g", c.ARESRateLimit)
	}
	if c.HighThreshold < 0 || c.HighThreshold > 100 {
		return fmt.Errorf("SIMILARITY_HIGH_THRESHOLD %g je mimo rozsah 0..100", c.HighThreshold)
	}
	if c.MediumThreshold < 0 || c.MediumThreshold > 100 {
		return fmt.Errorf("SIMILARITY_MEDIUM_THRESHOLD %g je mimo rozsah 0..100", c.MediumThreshold)
	}
	if c.MediumThreshold > c.HighThreshold {
		return fmt.Errorf("SIMILARITY_MEDIUM_THRESHOLD %g převyšuje SIMILARITY_HIGH_THRESHOLD %g",
			c.MediumThreshold, c.HighThreshold)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("CHECK_WORKERS musí být kladný, je %d", c.Workers)
	}
	return nil
}
