package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMSPFallbackForUnknownCode(t *testing.T) {
	c := newMSPCatalog()

	d, err := c.Lookup("99")
	require.NoError(t, err)
	assert.True(t, d.Fallback)
	assert.Equal(t, "msp2_99", d.Table)
	assert.Nil(t, d.Columns)
	assert.Equal(t, mspFallbackSQL, d.SQL)
}

func TestMSPFallbackRejectsNonIdentifierCodes(t *testing.T) {
	c := newMSPCatalog()

	for _, code := range []string{"99; DROP TABLE x", "a.b", "x y", ""} {
		_, err := c.Lookup(code)
		assert.Error(t, err, "code %q", code)
	}
}

func TestITRSFailsClosed(t *testing.T) {
	c := newITRSCatalog()

	_, err := c.Lookup("99")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid data type: 99.")
}

func TestSchemaPolicies(t *testing.T) {
	registry := NewRegistry()

	tests := []struct {
		group    DataGroup
		source   DataSource
		dataType string
		want     string
	}{
		{GroupMSP, SourceBSIS, "01", "bsis_dev."},
		{GroupMSP, SourceBSIS, "CONS05", ""},
		{GroupMSP, SourceEDI, "01", "edi."},
		{GroupMSP, DataSource("OTHER"), "01", ""},
		{GroupITRS, SourceBSIS, "RATES", "bsis_dev."},
		{GroupITRS, SourceBSIS, "CONSOLIDATED_TZS", "bsis_dev."},
		{GroupITRS, SourceEDI, "RATES", "edi."},
		{GroupMacro, SourceDWH, "CPI", "dwh."},
		{GroupSubmissions, SourceBSIS, "SUBMITTED", "bsis_dev."},
		{GroupSubmissions, SourceEDI, "SUBMITTED", "bsis_dev."},
	}
	for _, tt := range tests {
		c, ok := registry.Lookup(tt.group)
		require.True(t, ok, "group %s", tt.group)
		assert.Equal(t, tt.want, c.Schema(tt.source, tt.dataType),
			"%s/%s/%s", tt.group, tt.source, tt.dataType)
	}
}

func TestSourceAllowLists(t *testing.T) {
	registry := NewRegistry()

	msp, _ := registry.Lookup(GroupMSP)
	assert.True(t, msp.AllowsSource(SourceBSIS))
	assert.True(t, msp.AllowsSource(SourceEDI))
	assert.False(t, msp.AllowsSource(SourceDWH))

	macro, _ := registry.Lookup(GroupMacro)
	assert.True(t, macro.AllowsSource(SourceDWH))
	assert.False(t, macro.AllowsSource(SourceBSIS))
}

// countSelectColumns counts the top-level select-list expressions of the
// outermost SELECT, ignoring commas nested in parentheses.
func countSelectColumns(t *testing.T, sql string) (int, bool) {
	t.Helper()

	upper := strings.ToUpper(sql)
	start := strings.Index(upper, "SELECT")
	require.GreaterOrEqual(t, start, 0)
	rest := sql[start+len("SELECT"):]

	if strings.HasPrefix(strings.TrimSpace(rest), "*") {
		return 0, false
	}

	depth, count := 0, 1
	for i := 0; i < len(rest); i++ {
		switch rest[i] {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				count++
			}
		case 'F', 'f':
			if depth == 0 && i+4 <= len(rest) && strings.EqualFold(rest[i:i+4], "FROM") {
				return count, true
			}
		}
	}
	t.Fatalf("no FROM clause found in %q", sql)
	return 0, false
}

// Every registered descriptor with an authored select list must produce
// exactly as many columns as it registers.
func TestDescriptorArityMatchesSelectList(t *testing.T) {
	registry := NewRegistry()

	for _, group := range registry.Groups() {
		c, _ := registry.Lookup(group)
		for _, code := range c.Types() {
			d, err := c.Lookup(code)
			require.NoError(t, err)
			n, explicit := countSelectColumns(t, d.SQL)
			if !explicit {
				// SELECT * templates bind columns by position only.
				continue
			}
			assert.Len(t, d.Columns, n, "%s/%s", group, code)
		}
	}
}

func TestProfileLookup(t *testing.T) {
	d, err := LookupProfile(GroupMSP)
	require.NoError(t, err)
	assert.Equal(t, "msp_institution", d.Table)
	assert.Len(t, d.Columns, 27)

	d, err = LookupProfile(GroupBank)
	require.NoError(t, err)
	assert.Equal(t, "institution", d.Table)
	assert.Len(t, d.Columns, 38)

	_, err = LookupProfile(DataGroup("FUNDS"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No column mapping found")
}

func TestBuildProfileQuery(t *testing.T) {
	d, err := LookupProfile(GroupBank)
	require.NoError(t, err)

	q, err := BuildProfileQuery(d, SourceBSIS, "B001")
	require.NoError(t, err)
	assert.Contains(t, q.SQL, "FROM bsis_dev.institution")
	assert.Contains(t, q.SQL, "institutioncode = $1")
	assert.Equal(t, []any{"B001"}, q.Args)
	assert.NotContains(t, q.SQL, "B001")

	q, err = BuildProfileQuery(d, SourceEDI, Wildcard)
	require.NoError(t, err)
	assert.Contains(t, q.SQL, "FROM institution")
	assert.NotContains(t, q.SQL, "WHERE")
	assert.Empty(t, q.Args)
}
