// Package database connects to Oracle through go-ora and reads table and
// column metadata from the data dictionary views.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	go_ora "github.com/sijms/go-ora/v2"

	"github.com/thalib/oranum/cmd/oranum/internal/config"
	"github.com/thalib/oranum/cmd/oranum/internal/constants"
	apperrors "github.com/thalib/oranum/cmd/oranum/internal/errors"
	"github.com/thalib/oranum/cmd/oranum/internal/logging"
)

// DriverName is the database/sql driver name registered by go-ora.
const DriverName = "oracle"

// Driver defines the interface for dictionary access
type Driver interface {
	// Close closes the database connection
	Close() error

	// Ping verifies the connection to the database is still alive
	Ping(ctx context.Context) error

	// DB returns the underlying *sql.DB instance
	DB() *sql.DB

	// ListTables returns the tables, and synonyms when enabled, of an owner
	ListTables(ctx context.Context, owner string) ([]TableRef, error)

	// Columns returns the columns of a table or synonym
	Columns(ctx context.Context, owner, table string) (*TableInfo, error)
}

// Client is an Oracle connection governed by the connector configuration.
type Client struct {
	db      *sql.DB
	cfg     *config.Config
	logger  *logging.Logger
	backoff time.Duration
}

var _ Driver = (*Client)(nil)

// BuildDSN returns a go-ora connection URL. Options are passed as URL
// parameters (e.g. "SSL": "true").
func BuildDSN(host string, port int, service, user, password string, options map[string]string) string {
	return go_ora.BuildUrl(host, port, service, user, password, options)
}

// Open opens dsn with the go-ora driver and connects using the reconnect
// policy of cfg.
func Open(ctx context.Context, dsn string, cfg *config.Config, logger *logging.Logger) (*Client, error) {
	if dsn == "" {
		return nil, apperrors.NewInvalidInputError("dsn", "", "connection string is empty")
	}

	db, err := sql.Open(DriverName, dsn)
	if err != nil {
		return nil, apperrors.New(apperrors.CodeConnectionFailed, "failed to open database").Wrap(err)
	}

	c := NewClient(db, cfg, logger)
	if err := c.Connect(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return c, nil
}

// NewClient wraps an open database handle. It does not connect.
func NewClient(db *sql.DB, cfg *config.Config, logger *logging.Logger) *Client {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Client{
		db:      db,
		cfg:     cfg,
		logger:  logger,
		backoff: constants.ReconnectBackoff,
	}
}

// Connect pings the database. When auto-reconnect is enabled, failures that
// look like network errors are retried up to MaxReconnects more times, each
// attempt bounded by the connection timeout and delayed by a growing backoff.
func (c *Client) Connect(ctx context.Context) error {
	attempts := 1
	if c.cfg.AutoReconnect() {
		attempts += c.cfg.MaxReconnects()
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		lastErr = c.Ping(ctx)
		if lastErr == nil {
			if attempt > 1 {
				c.logger.WithContext(ctx).Infof("Connected after %d attempts", attempt)
			}
			return nil
		}

		if !apperrors.IsConnectionError(lastErr) || attempt == attempts {
			break
		}

		c.logger.WithContext(ctx).WithField("attempt", attempt).Warnf("Connection attempt failed, reconnecting: %v", lastErr)
		select {
		case <-ctx.Done():
			return apperrors.New(apperrors.CodeConnectionFailed, "connection cancelled").Wrap(ctx.Err())
		case <-time.After(time.Duration(attempt) * c.backoff):
		}
	}

	return apperrors.New(apperrors.CodeConnectionFailed, "failed to connect to database").Wrap(lastErr)
}

// Close closes the database connection
func (c *Client) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// Ping verifies the connection, bounded by the connection timeout
func (c *Client) Ping(ctx context.Context) error {
	if timeout := c.cfg.ConnectionTimeout(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return c.db.PingContext(ctx)
}

// DB returns the underlying *sql.DB instance
func (c *Client) DB() *sql.DB {
	return c.db
}

// Config returns the configuration the client was created with.
func (c *Client) Config() *config.Config {
	return c.cfg
}

func (c *Client) String() string {
	return fmt.Sprintf("oracle client (auto-reconnect=%t, max-reconnects=%d, synonyms=%t)",
		c.cfg.AutoReconnect(), c.cfg.MaxReconnects(), c.cfg.SynonymsEnabled())
}
