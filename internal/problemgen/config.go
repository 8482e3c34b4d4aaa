package problemgen

// Config controls exercise generation.
type Config struct {
	// MaxAttempts bounds how many equations are generated while trying to
	// avoid an excluded key. The last attempt is returned regardless.
	MaxAttempts int

	// MaxDistractorDraws bounds the random perturbations tried before the
	// remaining distractors are filled deterministically.
	MaxDistractorDraws int
}

// DefaultConfig returns the standard generation limits.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:        10,
		MaxDistractorDraws: 64,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = d.MaxAttempts
	}
	if c.MaxDistractorDraws <= 0 {
		c.MaxDistractorDraws = d.MaxDistractorDraws
	}
	return c
}
