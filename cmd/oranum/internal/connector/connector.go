// Package connector ties one catalog configuration to an Oracle client. It
// lists tables and resolves the numeric columns of a table into host types,
// caching the result per table.
package connector

import (
	"context"
	"fmt"

	"github.com/thalib/oranum/cmd/oranum/internal/config"
	"github.com/thalib/oranum/cmd/oranum/internal/constants"
	"github.com/thalib/oranum/cmd/oranum/internal/database"
	"github.com/thalib/oranum/cmd/oranum/internal/logging"
	"github.com/thalib/oranum/cmd/oranum/internal/mapping"
	"github.com/thalib/oranum/cmd/oranum/internal/registry"
	"github.com/thalib/oranum/cmd/oranum/internal/ulid"
)

// Connector is a configured catalog instance. It is safe for concurrent use.
type Connector struct {
	id       string
	cfg      *config.Config
	client   database.Driver
	resolver *mapping.Resolver
	cache    *registry.MappingRegistry
	logger   *logging.Logger
}

// New creates a connector over client. A nil logger uses the global logger.
func New(cfg *config.Config, client database.Driver, logger *logging.Logger) *Connector {
	if logger == nil {
		logger = logging.GetLogger()
	}
	id := ulid.NewConnectorID()
	return &Connector{
		id:       id,
		cfg:      cfg,
		client:   client,
		resolver: mapping.NewResolver(cfg),
		cache:    registry.NewMappingRegistry(),
		logger:   logger.WithField(constants.ContextKeyConnectorID, id),
	}
}

// ID returns the connector instance ID
func (c *Connector) ID() string { return c.id }

// Config returns the connector configuration
func (c *Connector) Config() *config.Config { return c.cfg }

// Tables lists the tables of owner, and its synonyms when enabled.
func (c *Connector) Tables(ctx context.Context, owner string) ([]database.TableRef, error) {
	ctx = logging.WithConnectorID(ctx, c.id)
	tables, err := c.client.ListTables(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	c.logger.WithField("owner", owner).Debugf("Listed %d tables", len(tables))
	return tables, nil
}

// ColumnMappings resolves the numeric columns of owner.table. Non-numeric
// columns and columns skipped by the IGNORE strategy are left out. The first
// column that cannot be mapped fails the whole table.
func (c *Connector) ColumnMappings(ctx context.Context, owner, table string) (*registry.TableMapping, error) {
	key := registry.Key(owner, table)
	if cached, ok := c.cache.Get(key); ok {
		return cached, nil
	}

	ctx = logging.WithConnectorID(ctx, c.id)
	info, err := c.client.Columns(ctx, owner, table)
	if err != nil {
		return nil, fmt.Errorf("failed to read columns of %s: %w", key, err)
	}

	result := &registry.TableMapping{Owner: info.Owner, Name: info.Name, Columns: []mapping.ColumnMapping{}}
	for _, col := range info.Columns {
		if !mapping.IsNumeric(col.DataType) {
			continue
		}

		log := c.logger.WithFields(map[string]any{
			"table":  info.Owner + "." + info.Name,
			"column": col.String(),
		})

		m, ok, err := c.resolver.Resolve(col)
		if err != nil {
			log.ErrorWithErr("Column mapping failed", err)
			return nil, fmt.Errorf("failed to map %s.%s: %w", info.Owner, info.Name, err)
		}
		if !ok {
			log.Debug("Skipping unsupported column")
			continue
		}

		log.WithField("type", m.Type.String()).Debug("Resolved column")
		result.Columns = append(result.Columns, m)
	}

	if err := c.cache.Set(key, result); err != nil {
		return nil, err
	}
	return result, nil
}

// Invalidate drops the cached mapping of owner.table
func (c *Connector) Invalidate(owner, table string) {
	c.cache.Delete(registry.Key(owner, table))
}

// Close releases the client
func (c *Connector) Close() error {
	c.cache.Clear()
	return c.client.Close()
}
