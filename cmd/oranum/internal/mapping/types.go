// Package mapping decides, for each Oracle numeric column, which host type it
// is exposed as and how its values are converted.
package mapping

import (
	"fmt"
	"strings"
)

// Column is a column as described by the Oracle data dictionary. A nil
// Precision or Scale is NULL in ALL_TAB_COLUMNS.
type Column struct {
	Name      string
	DataType  string
	Precision *int
	Scale     *int
	Nullable  bool
}

func (c Column) String() string {
	switch {
	case c.Precision != nil && c.Scale != nil:
		return fmt.Sprintf("%s %s(%d,%d)", c.Name, c.DataType, *c.Precision, *c.Scale)
	case c.Precision != nil:
		return fmt.Sprintf("%s %s(%d)", c.Name, c.DataType, *c.Precision)
	default:
		return c.Name + " " + c.DataType
	}
}

// Host type names.
const (
	BaseDecimal = "decimal"
	BaseDouble  = "double"
	BaseBigint  = "bigint"
	BaseVarchar = "varchar"
)

// HostType is a type of the host engine. Precision and Scale are set for
// decimal only.
type HostType struct {
	Base      string `json:"base"`
	Precision int    `json:"precision,omitempty"`
	Scale     int    `json:"scale,omitempty"`
}

var (
	DoubleType  = HostType{Base: BaseDouble}
	BigintType  = HostType{Base: BaseBigint}
	VarcharType = HostType{Base: BaseVarchar}
)

// DecimalType returns decimal(precision, scale).
func DecimalType(precision, scale int) HostType {
	return HostType{Base: BaseDecimal, Precision: precision, Scale: scale}
}

func (h HostType) String() string {
	if h.Base == BaseDecimal {
		return fmt.Sprintf("decimal(%d,%d)", h.Precision, h.Scale)
	}
	return h.Base
}

// Oracle data types handled by the resolver.
var numericTypes = map[string]bool{
	"NUMBER":        true,
	"NUMERIC":       true,
	"DECIMAL":       true,
	"DEC":           true,
	"INTEGER":       true,
	"INT":           true,
	"SMALLINT":      true,
	"FLOAT":         true,
	"REAL":          true,
	"BINARY_FLOAT":  true,
	"BINARY_DOUBLE": true,
}

var floatingTypes = map[string]bool{
	"FLOAT":         true,
	"REAL":          true,
	"BINARY_FLOAT":  true,
	"BINARY_DOUBLE": true,
}

// IsNumeric reports whether dataType is an Oracle numeric type.
func IsNumeric(dataType string) bool {
	return numericTypes[strings.ToUpper(strings.TrimSpace(dataType))]
}

func isFloating(dataType string) bool {
	return floatingTypes[strings.ToUpper(strings.TrimSpace(dataType))]
}
