// Package catalog holds the static report catalogs: per data group, a
// read-only mapping from a report code to the table, SQL template and output
// column list that serve it. Catalogs are built once at startup and shared
// between calls; nothing in this package touches the database.
package catalog

import (
	"fmt"
	"regexp"
	"strings"

	"langodata/internal/core/apperror"
)

// DataGroup is the top-level category of regulatory or economic data.
type DataGroup string

const (
	GroupMSP         DataGroup = "MSP"
	GroupITRS        DataGroup = "ITRS"
	GroupMacro       DataGroup = "MACROECONOMICS"
	GroupSubmissions DataGroup = "SUBMISSIONS"
	GroupBank        DataGroup = "BANK"
)

// DataSource is the backing system/schema family a query targets.
type DataSource string

const (
	SourceBSIS DataSource = "BSIS"
	SourceEDI  DataSource = "EDI"
	SourceDWH  DataSource = "DWH"
)

// Descriptor binds one report code to its table, query template and output
// column list. SQL templates carry the placeholder tokens understood by
// Render; Columns must match the rendered query's select-list arity exactly.
// A nil Columns slice means the column names are taken from the result set
// (only the generic SELECT * fallback uses that).
type Descriptor struct {
	Group   DataGroup
	Type    string
	Table   string
	SQL     string
	Columns []string

	// Fallback marks a descriptor synthesized for an unregistered report
	// code by a fail-open catalog.
	Fallback bool
}

// SchemaFunc resolves the schema prefix (including the trailing dot, or
// empty) for a data source and report code. Each catalog carries its own
// policy.
type SchemaFunc func(source DataSource, dataType string) string

// Catalog is one data group's immutable descriptor table. Fail-closed
// catalogs reject unknown report codes; a catalog with a fallback template
// synthesizes a generic descriptor for them instead.
type Catalog struct {
	group       DataGroup
	sources     []DataSource
	schema      SchemaFunc
	entries     map[string]Descriptor
	fallback    string // SQL template, empty = fail closed
	tablePrefix string // table prefix for synthesized fallback descriptors
}

// identPattern restricts report codes embedded into a fallback table name.
var identPattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// Group returns the data group this catalog serves.
func (c *Catalog) Group() DataGroup { return c.group }

// AllowsSource reports whether the data source is on this catalog's
// allow-list.
func (c *Catalog) AllowsSource(source DataSource) bool {
	for _, s := range c.sources {
		if s == source {
			return true
		}
	}
	return false
}

// Schema resolves the schema prefix for a source and report code.
func (c *Catalog) Schema(source DataSource, dataType string) string {
	if c.schema == nil {
		return ""
	}
	return c.schema(source, dataType)
}

// Lookup resolves a report code to its descriptor. On a fail-closed catalog
// an unknown code is a validation error; a fail-open catalog synthesizes a
// generic SELECT * descriptor against its conventional table name instead.
func (c *Catalog) Lookup(dataType string) (Descriptor, error) {
	if d, ok := c.entries[dataType]; ok {
		return d, nil
	}
	if c.fallback == "" {
		return Descriptor{}, apperror.NewValidation(fmt.Sprintf("Invalid data type: %s. ", dataType))
	}
	// The code becomes part of a table name, so only plain identifiers
	// may pass through.
	if !identPattern.MatchString(dataType) {
		return Descriptor{}, apperror.NewValidation(fmt.Sprintf("Invalid data type: %s. ", dataType))
	}
	return Descriptor{
		Group:    c.group,
		Type:     dataType,
		Table:    c.tablePrefix + strings.ToLower(dataType),
		SQL:      c.fallback,
		Fallback: true,
	}, nil
}

// Types returns the registered report codes, for validation and tests.
func (c *Catalog) Types() []string {
	out := make([]string, 0, len(c.entries))
	for t := range c.entries {
		out = append(out, t)
	}
	return out
}

// Registry is the routing table from data group to catalog.
type Registry struct {
	catalogs map[DataGroup]*Catalog
}

// NewRegistry builds the registry with every catalog the gateway serves.
func NewRegistry() *Registry {
	r := &Registry{catalogs: make(map[DataGroup]*Catalog)}
	r.register(newMSPCatalog())
	r.register(newITRSCatalog())
	r.register(newMacroCatalog())
	r.register(newSubmissionsCatalog())
	return r
}

func (r *Registry) register(c *Catalog) {
	r.catalogs[c.group] = c
}

// Lookup returns the catalog for a data group, or false when no handler is
// registered for it.
func (r *Registry) Lookup(group DataGroup) (*Catalog, bool) {
	c, ok := r.catalogs[group]
	return c, ok
}

// Groups returns the registered data groups.
func (r *Registry) Groups() []DataGroup {
	out := make([]DataGroup, 0, len(r.catalogs))
	for g := range r.catalogs {
		out = append(out, g)
	}
	return out
}
