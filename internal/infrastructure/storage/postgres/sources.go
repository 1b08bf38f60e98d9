package postgres

import (
	"context"
	"fmt"
	"net/url"

	"langodata/internal/core/apperror"
	"langodata/internal/domain/catalog"
	"langodata/pkg/logger"
	"langodata/pkg/obfuscate"
)

// SourceConfig describes one backing data source. Credentials arrive through
// configuration, never process-wide globals; the password may be stored in
// the obfuscated at-rest encoding.
type SourceConfig struct {
	Source          catalog.DataSource
	Host            string
	Port            int
	Database        string
	Username        string
	Password        string
	PasswordEncoded bool
	MaxConns        int32
}

func (c SourceConfig) dsn() (string, error) {
	password := c.Password
	if c.PasswordEncoded {
		decoded, err := obfuscate.Decode(password)
		if err != nil {
			return "", fmt.Errorf("source %s: %w", c.Source, err)
		}
		password = decoded
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s",
		url.QueryEscape(c.Username), url.QueryEscape(password),
		c.Host, c.Port, c.Database), nil
}

// SourceSet holds one connection pool per configured data source.
type SourceSet struct {
	pools map[catalog.DataSource]*Pool
	log   *logger.Logger
}

// NewSourceSet opens a pool per configured source. All pools are closed
// again if any of them fails to open.
func NewSourceSet(ctx context.Context, configs []SourceConfig, log *logger.Logger) (*SourceSet, error) {
	s := &SourceSet{
		pools: make(map[catalog.DataSource]*Pool, len(configs)),
		log:   log.WithComponent("sources"),
	}
	for _, cfg := range configs {
		dsn, err := cfg.dsn()
		if err != nil {
			s.Close()
			return nil, err
		}
		poolCfg := DefaultPoolConfig(dsn)
		if cfg.MaxConns > 0 {
			poolCfg.MaxConns = cfg.MaxConns
		}
		pool, err := NewPool(ctx, poolCfg)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("open source %s: %w", cfg.Source, err)
		}
		s.pools[cfg.Source] = pool
		s.log.Infow("data source connected", "source", cfg.Source, "host", cfg.Host, "database", cfg.Database)
	}
	return s, nil
}

// Get returns the pool for a data source.
func (s *SourceSet) Get(source catalog.DataSource) (*Pool, error) {
	pool, ok := s.pools[source]
	if !ok {
		return nil, apperror.NewConnectivity(string(source), fmt.Errorf("data source not configured"))
	}
	return pool, nil
}

// Ping verifies every configured source is reachable.
func (s *SourceSet) Ping(ctx context.Context) error {
	for source, pool := range s.pools {
		if err := pool.Ping(ctx); err != nil {
			return apperror.NewConnectivity(string(source), err)
		}
	}
	return nil
}

// Close closes every pool.
func (s *SourceSet) Close() {
	for _, pool := range s.pools {
		pool.Close()
	}
}
