package redis

import "time"

// Config holds Redis connection parameters for the session store.
// Zero fields keep the package defaults.
type Config struct {
	URL string `env:"REDIS_URL" yaml:"url"`

	PoolSize     int `env:"REDIS_POOL_SIZE" yaml:"pool_size"`
	MinIdleConns int `env:"REDIS_MIN_IDLE_CONNS" yaml:"min_idle_conns"`

	// Startup is retried with linear backoff: interval, 2*interval, ...
	RetryAttempts int           `env:"REDIS_RETRY_ATTEMPTS" yaml:"retry_attempts"`
	RetryInterval time.Duration `env:"REDIS_RETRY_INTERVAL" yaml:"retry_interval"`

	DialTimeout time.Duration `env:"REDIS_DIAL_TIMEOUT" yaml:"dial_timeout"`
	IOTimeout   time.Duration `env:"REDIS_IO_TIMEOUT" yaml:"io_timeout"`
}

// Options converts the config into connection options.
func (c Config) Options() []Option {
	opts := make([]Option, 0, 5)
	if c.PoolSize > 0 {
		opts = append(opts, WithPoolSize(c.PoolSize))
	}
	if c.MinIdleConns > 0 {
		opts = append(opts, WithMinIdleConns(c.MinIdleConns))
	}
	if c.RetryAttempts > 0 {
		opts = append(opts, WithRetry(c.RetryAttempts, c.RetryInterval))
	}
	if c.DialTimeout > 0 {
		opts = append(opts, WithDialTimeout(c.DialTimeout))
	}
	if c.IOTimeout > 0 {
		opts = append(opts, WithIOTimeout(c.IOTimeout))
	}
	return opts
}
