package catalog

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderInput(filterCode string) RenderInput {
	return RenderInput{
		Source:      SourceBSIS,
		FilterCode:  filterCode,
		StartPeriod: time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC),
		EndPeriod:   time.Date(2024, 9, 30, 0, 0, 0, 0, time.UTC),
	}
}

func TestRenderWildcardIsTautology(t *testing.T) {
	c := newMSPCatalog()
	d, err := c.Lookup("01")
	require.NoError(t, err)

	q, err := c.Render(d, renderInput(Wildcard))
	require.NoError(t, err)

	assert.Contains(t, q.SQL, "1=1")
	assert.NotContains(t, q.SQL, "institutioncode =")
	assert.Contains(t, q.SQL, "FROM bsis_dev.msp2_01")
	// Only the two date bounds are bound.
	require.Len(t, q.Args, 2)
	assert.Contains(t, q.SQL, "BETWEEN $1 AND $2")
}

func TestRenderFilterIsParameterized(t *testing.T) {
	c := newMSPCatalog()
	d, err := c.Lookup("01")
	require.NoError(t, err)

	q, err := c.Render(d, renderInput("MSP042"))
	require.NoError(t, err)

	assert.Contains(t, q.SQL, "institutioncode = $1")
	assert.NotContains(t, q.SQL, "MSP042")
	require.Len(t, q.Args, 3)
	assert.Equal(t, "MSP042", q.Args[0])
}

func TestRenderQualifiedCondition(t *testing.T) {
	c := newITRSCatalog()
	d, err := c.Lookup("URT_PAYMENTS")
	require.NoError(t, err)

	q, err := c.Render(d, renderInput("B055"))
	require.NoError(t, err)

	assert.Contains(t, q.SQL, "a.institutioncode = $1")
	assert.Contains(t, q.SQL, "JOIN bsis_dev.institution b")
	assert.Equal(t, "B055", q.Args[0])
}

func TestRenderFallbackTableForUnknownCode(t *testing.T) {
	c := newMSPCatalog()
	d, err := c.Lookup("99")
	require.NoError(t, err)

	q, err := c.Render(d, renderInput(Wildcard))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(q.SQL, "SELECT * FROM bsis_dev.msp2_99"))
}

func TestRenderFrequencyParameter(t *testing.T) {
	c := newMacroCatalog()
	d, err := c.Lookup("CPI")
	require.NoError(t, err)

	in := renderInput(Wildcard)
	in.Source = SourceDWH
	in.Frequency = "M"
	q, err := c.Render(d, in)
	require.NoError(t, err)

	assert.Contains(t, q.SQL, "FROM dwh.fact_cpi f")
	assert.Contains(t, q.SQL, "fr.frequency = $3")
	require.Len(t, q.Args, 3)
	assert.Equal(t, "M", q.Args[2])
}

func TestRenderRepeatedDateBounds(t *testing.T) {
	c := newITRSCatalog()
	d, err := c.Lookup("REGION_SECTOR_TZS")
	require.NoError(t, err)

	q, err := c.Render(d, renderInput(Wildcard))
	require.NoError(t, err)

	// Both UNION branches bind their own copy of the range.
	require.Len(t, q.Args, 4)
	assert.Contains(t, q.SQL, "BETWEEN $1 AND $2")
	assert.Contains(t, q.SQL, "BETWEEN $3 AND $4")
}
