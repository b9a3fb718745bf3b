package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thalib/oranum/cmd/oranum/internal/config"
	"github.com/thalib/oranum/cmd/oranum/internal/connector"
	"github.com/thalib/oranum/cmd/oranum/internal/constants"
	"github.com/thalib/oranum/cmd/oranum/internal/database"
	"github.com/thalib/oranum/cmd/oranum/internal/decimal"
	apperrors "github.com/thalib/oranum/cmd/oranum/internal/errors"
	"github.com/thalib/oranum/cmd/oranum/internal/logging"
	"github.com/thalib/oranum/cmd/oranum/internal/numeric"
)

// DSNEnv names the environment variable read when no connection flags are given.
const DSNEnv = "ORANUM_DSN"

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "oranum %s\n", config.Version())
		},
	}
}

func newConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective catalog properties",
		Long:  `Load the catalog properties, validate them and print every property with its effective value.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeJSON(cmd.OutOrStdout(), getConfig(cmd.Context()).Properties())
		},
	}
}

type convertOptions struct {
	kind      string
	precision int
	scale     int
}

func newConvertCommand() *cobra.Command {
	opts := &convertOptions{}

	cmd := &cobra.Command{
		Use:   "convert <value>",
		Short: "Convert a decimal value under the catalog policy",
		Long: `Convert a decimal literal to a fixed, float, integer or text representation
using the configured rounding mode and exceeds-limits handling.`,
		Example: `  oranum convert 123.456 --precision 10 --scale 2
  oranum convert 1e40 --precision 38 --scale 0 --config catalog.yaml
  oranum convert 2.5 --kind integer`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := decimal.Parse(args[0])
			if err != nil {
				return apperrors.NewInvalidInputError("value", args[0], err.Error())
			}

			target, err := opts.target(d)
			if err != nil {
				return err
			}

			v, err := numeric.Convert(d, target, numeric.PolicyFor(getConfig(cmd.Context())))
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), v.String())
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.kind, "kind", "fixed", "target representation (fixed|float|integer|text)")
	cmd.Flags().IntVar(&opts.precision, "precision", constants.MaxDecimalPrecision, "fixed-point precision")
	cmd.Flags().IntVar(&opts.scale, "scale", constants.UndefinedScale, "fractional digits (-1 keeps the value's own scale)")

	return cmd
}

func (o *convertOptions) target(d decimal.Decimal) (numeric.Target, error) {
	switch strings.ToLower(o.kind) {
	case "fixed":
		scale := o.scale
		if scale == constants.UndefinedScale {
			scale = max(d.Scale(), 0)
		}
		return numeric.FixedTarget(o.precision, scale), nil
	case "float":
		return numeric.FloatTarget(o.scale), nil
	case "integer":
		return numeric.IntegerTarget(), nil
	case "text":
		return numeric.TextTarget(), nil
	default:
		return numeric.Target{}, apperrors.NewInvalidInputError("kind", o.kind, "must be one of: fixed, float, integer, text")
	}
}

type connectionOptions struct {
	dsn      string
	host     string
	port     int
	service  string
	user     string
	password string
}

func (o *connectionOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.dsn, "dsn", "", "go-ora connection URL (default: $"+DSNEnv+")")
	cmd.Flags().StringVar(&o.host, "host", "", "database host, used when no DSN is given")
	cmd.Flags().IntVar(&o.port, "port", 1521, "listener port")
	cmd.Flags().StringVar(&o.service, "service", "", "service name")
	cmd.Flags().StringVar(&o.user, "user", "", "database user")
	cmd.Flags().StringVar(&o.password, "password", "", "database password")
}

func (o *connectionOptions) resolveDSN() string {
	switch {
	case o.dsn != "":
		return o.dsn
	case o.host != "":
		return database.BuildDSN(o.host, o.port, o.service, o.user, o.password, nil)
	default:
		return os.Getenv(DSNEnv)
	}
}

func (o *connectionOptions) open(cmd *cobra.Command) (*connector.Connector, error) {
	cfg := getConfig(cmd.Context())
	logger := logging.GetLogger()

	client, err := database.Open(cmd.Context(), o.resolveDSN(), cfg, logger)
	if err != nil {
		return nil, err
	}

	c := connector.New(cfg, client, logger)
	logger.WithField(constants.ContextKeyConnectorID, c.ID()).Infof("Connected: %s", client)
	return c, nil
}

func newTablesCommand() *cobra.Command {
	opts := &connectionOptions{}

	cmd := &cobra.Command{
		Use:   "tables <owner>",
		Short: "List the tables of a schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			tables, err := c.Tables(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), tables)
		},
	}
	opts.addFlags(cmd)
	return cmd
}

// columnRow is one line of the columns command output.
type columnRow struct {
	Column   string `json:"column"`
	Oracle   string `json:"oracle_type"`
	Type     string `json:"type"`
	Nullable bool   `json:"nullable"`
}

func newColumnsCommand() *cobra.Command {
	opts := &connectionOptions{}

	cmd := &cobra.Command{
		Use:   "columns <owner> <table>",
		Short: "Show the host types of a table's numeric columns",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer c.Close()

			table, err := c.ColumnMappings(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}

			rows := make([]columnRow, 0, len(table.Columns))
			for _, m := range table.Columns {
				rows = append(rows, columnRow{
					Column:   m.Column.Name,
					Oracle:   strings.TrimPrefix(m.Column.String(), m.Column.Name+" "),
					Type:     m.Type.String(),
					Nullable: m.Column.Nullable,
				})
			}
			return writeJSON(cmd.OutOrStdout(), rows)
		},
	}
	opts.addFlags(cmd)
	return cmd
}
