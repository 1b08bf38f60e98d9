package catalog

// The macroeconomic catalog reads star-schema facts from the data warehouse.
// Requests carry a series frequency instead of an institution filter; the
// {freq} token binds the single-letter frequency code stored on dim_freq.

// Frequencies accepted for macroeconomic series, mapped to the stored code.
var MacroFrequencies = map[string]string{
	"DAILY":            "D",
	"MONTHLY":          "M",
	"QUARTERLY":        "Q",
	"ANNUAL-CALENDAR":  "A",
	"ANNUAL-FINANCIAL": "F",
}

func macroSchema(source DataSource, _ string) string {
	if source == SourceDWH {
		return "dwh."
	}
	return ""
}

func newMacroCatalog() *Catalog {
	c := &Catalog{
		group:   GroupMacro,
		sources: []DataSource{SourceDWH},
		schema:  macroSchema,
		entries: make(map[string]Descriptor),
	}

	c.entries["CPI"] = Descriptor{
		Group: GroupMacro,
		Type:  "CPI",
		Table: "fact_cpi",
		SQL: `
		SELECT t.time_period, t.year, t.month,
		       l.location_name, l.location_iso,
		       i.indicator_name, i.description AS indicator_description,
		       f.value, u.unit, fr.frequency, s.source
		FROM {table} f
		JOIN {schema}dim_time t      ON f.time_id = t.time_id
		JOIN {schema}dim_location l  ON f.location_id = l.location_id
		JOIN {schema}dim_indicator i ON f.indicator_id = i.indicator_id
		JOIN {schema}dim_units u     ON f.unit_id = u.unit_id
		JOIN {schema}dim_freq fr     ON f.freq_id = fr.freq_id
		JOIN {schema}dim_sources s   ON f.source_id = s.source_id
		WHERE t.time_period BETWEEN {start} AND {end}
		  AND fr.frequency = {freq}`,
		Columns: []string{"TIME_PERIOD", "YEAR", "MONTH", "LOCATION_NAME", "LOCATION_ISO",
			"INDICATOR_NAME", "INDICATOR_DESCRIPTION", "VALUE", "UNIT", "FREQUENCY", "SOURCE"},
	}

	c.entries["BOP"] = Descriptor{
		Group: GroupMacro,
		Type:  "BOP",
		Table: "fact_bop",
		SQL: `
		SELECT t.time_period, t.year, t.month, t.quarter,
		       l.location_name,
		       i.indicator_name, i.description AS indicator_description,
		       f.value, u.unit, fr.frequency, s.source
		FROM {table} f
		JOIN {schema}dim_time t      ON f.time_id = t.time_id
		JOIN {schema}dim_location l  ON f.location_id = l.location_id
		JOIN {schema}dim_indicator i ON f.indicator_id = i.indicator_id
		JOIN {schema}dim_units u     ON f.unit_id = u.unit_id
		JOIN {schema}dim_freq fr     ON f.freq_id = fr.freq_id
		JOIN {schema}dim_sources s   ON f.source_id = s.source_id
		WHERE t.time_period BETWEEN {start} AND {end}
		  AND fr.frequency = {freq}
		ORDER BY t.time_period DESC`,
		Columns: []string{"TIME_PERIOD", "YEAR", "MONTH", "QUARTER", "LOCATION_NAME", "INDICATOR_NAME",
			"INDICATOR_DESCRIPTION", "VALUE", "UNIT", "FREQUENCY", "SOURCE"},
	}

	return c
}
