package database

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/thalib/oranum/cmd/oranum/internal/constants"
	apperrors "github.com/thalib/oranum/cmd/oranum/internal/errors"
	"github.com/thalib/oranum/cmd/oranum/internal/mapping"
)

// TableRef names a table, or a synonym when Synonym is set.
type TableRef struct {
	Owner   string `json:"owner"`
	Name    string `json:"name"`
	Synonym bool   `json:"synonym,omitempty"`

	// Base table of a synonym
	TargetOwner string `json:"target_owner,omitempty"`
	TargetName  string `json:"target_name,omitempty"`
}

// TableInfo contains the columns of a table. Owner and Name are those of the
// base table when a synonym was resolved.
type TableInfo struct {
	Owner   string
	Name    string
	Columns []mapping.Column
}

const (
	listTablesQuery = `SELECT OWNER, TABLE_NAME FROM ALL_TABLES WHERE OWNER = :1 ORDER BY TABLE_NAME`

	listSynonymsQuery = `SELECT OWNER, SYNONYM_NAME, TABLE_OWNER, TABLE_NAME FROM ALL_SYNONYMS
		WHERE OWNER = :1 ORDER BY SYNONYM_NAME`

	resolveSynonymQuery = `SELECT TABLE_OWNER, TABLE_NAME FROM ALL_SYNONYMS
		WHERE OWNER = :1 AND SYNONYM_NAME = :2`

	columnsQuery = `SELECT COLUMN_NAME, DATA_TYPE, DATA_PRECISION, DATA_SCALE, NULLABLE
		FROM ALL_TAB_COLUMNS
		WHERE OWNER = :1 AND TABLE_NAME = :2
		ORDER BY COLUMN_ID`
)

var identifierRegex = regexp.MustCompile(constants.OracleIdentifierPattern)

// normalizeIdentifier validates an unquoted Oracle identifier and returns it
// in the upper case the dictionary stores it in.
func normalizeIdentifier(kind, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > constants.MaxIdentifierLength || !identifierRegex.MatchString(name) {
		return "", apperrors.Newf(apperrors.CodeInvalidIdentifier, "invalid %s name: %q", kind, name).
			WithDetails(map[string]any{kind: name})
	}
	return strings.ToUpper(name), nil
}

func (c *Client) query(ctx context.Context, query string, args ...any) (*sql.Rows, context.CancelFunc, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.MetadataQueryTimeout)
	start := time.Now()
	rows, err := c.db.QueryContext(ctx, query, args...)
	c.logger.WithContext(ctx).LogSlowQuery(query, time.Since(start), args...)
	if err != nil {
		cancel()
		return nil, nil, apperrors.NewDatabaseError(err)
	}
	return rows, cancel, nil
}

// ListTables returns the tables of owner ordered by name, followed by its
// synonyms when synonyms are enabled.
func (c *Client) ListTables(ctx context.Context, owner string) ([]TableRef, error) {
	owner, err := normalizeIdentifier("owner", owner)
	if err != nil {
		return nil, err
	}

	rows, cancel, err := c.query(ctx, listTablesQuery, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to query tables: %w", err)
	}
	defer cancel()
	defer rows.Close()

	tables := []TableRef{}
	for rows.Next() {
		var t TableRef
		if err := rows.Scan(&t.Owner, &t.Name); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		tables = append(tables, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating table rows: %w", err)
	}

	if !c.cfg.SynonymsEnabled() {
		return tables, nil
	}

	synonyms, err := c.listSynonyms(ctx, owner)
	if err != nil {
		return nil, err
	}
	return append(tables, synonyms...), nil
}

func (c *Client) listSynonyms(ctx context.Context, owner string) ([]TableRef, error) {
	rows, cancel, err := c.query(ctx, listSynonymsQuery, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to query synonyms: %w", err)
	}
	defer cancel()
	defer rows.Close()

	var synonyms []TableRef
	for rows.Next() {
		t := TableRef{Synonym: true}
		var targetOwner sql.NullString
		if err := rows.Scan(&t.Owner, &t.Name, &targetOwner, &t.TargetName); err != nil {
			return nil, fmt.Errorf("failed to scan synonym: %w", err)
		}
		t.TargetOwner = targetOwner.String
		synonyms = append(synonyms, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating synonym rows: %w", err)
	}
	return synonyms, nil
}

// resolveSynonym returns the base table of owner.name, or owner.name itself
// when it is not a synonym.
func (c *Client) resolveSynonym(ctx context.Context, owner, name string) (string, string, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.MetadataQueryTimeout)
	defer cancel()

	var targetOwner sql.NullString
	var targetName string
	err := c.db.QueryRowContext(ctx, resolveSynonymQuery, owner, name).Scan(&targetOwner, &targetName)
	if stderrors.Is(err, sql.ErrNoRows) {
		return owner, name, nil
	}
	if err != nil {
		return "", "", fmt.Errorf("failed to resolve synonym: %w", apperrors.NewDatabaseError(err))
	}
	if !targetOwner.Valid || targetOwner.String == "" {
		return owner, targetName, nil
	}
	return targetOwner.String, targetName, nil
}

// Columns returns the columns of owner.table in declaration order. A synonym
// is resolved to its base table when synonyms are enabled.
func (c *Client) Columns(ctx context.Context, owner, table string) (*TableInfo, error) {
	owner, err := normalizeIdentifier("owner", owner)
	if err != nil {
		return nil, err
	}
	table, err = normalizeIdentifier("table", table)
	if err != nil {
		return nil, err
	}

	if c.cfg.SynonymsEnabled() {
		if owner, table, err = c.resolveSynonym(ctx, owner, table); err != nil {
			return nil, err
		}
	}

	rows, cancel, err := c.query(ctx, columnsQuery, owner, table)
	if err != nil {
		return nil, fmt.Errorf("failed to query table info: %w", err)
	}
	defer cancel()
	defer rows.Close()

	var columns []mapping.Column
	for rows.Next() {
		var (
			col       mapping.Column
			precision sql.NullInt64
			scale     sql.NullInt64
			nullable  sql.NullString
		)
		if err := rows.Scan(&col.Name, &col.DataType, &precision, &scale, &nullable); err != nil {
			return nil, fmt.Errorf("failed to scan column info: %w", err)
		}
		col.Precision = intOrNil(precision)
		col.Scale = intOrNil(scale)
		col.Nullable = nullable.String != "N"
		columns = append(columns, col)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating column rows: %w", err)
	}

	if len(columns) == 0 {
		return nil, apperrors.Newf(apperrors.CodeObjectNotFound, "table %s.%s not found", owner, table).
			WithDetails(map[string]any{"owner": owner, "table": table})
	}

	return &TableInfo{Owner: owner, Name: table, Columns: columns}, nil
}

func intOrNil(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}
