package catalog

// The ITRS catalog covers cross-border settlement reports. It fails closed:
// every report code needs an explicit template, there is no generic fallback.
//
// Several reports pivot location/purpose pairs into fixed columns. The quoted
// aliases below ('PAYMENT -URT' etc.) are the published column headings and
// must stay byte-identical to the registered column lists.

func itrsSchema(source DataSource, _ string) string {
	switch source {
	case SourceBSIS:
		return "bsis_dev."
	case SourceEDI:
		return "edi."
	default:
		return ""
	}
}

const itrsPivotColumns = `
		       sum(amount) FILTER (WHERE location_purpose = 'PAYMENT -URT') AS "PAYMENT -URT",
		       sum(amount) FILTER (WHERE location_purpose = 'RECEIPTS -URT') AS "RECEIPTS -URT",
		       sum(amount) FILTER (WHERE location_purpose = 'PAYMENT -ZANZIBAR') AS "PAYMENT -ZANZIBAR",
		       sum(amount) FILTER (WHERE location_purpose = 'RECEIPTS -ZANZIBAR') AS "RECEIPTS -ZANZIBAR"`

func newITRSCatalog() *Catalog {
	c := &Catalog{
		group:   GroupITRS,
		sources: []DataSource{SourceBSIS, SourceEDI},
		schema:  itrsSchema,
		entries: make(map[string]Descriptor),
	}

	add := func(code, table, sql string, columns []string) {
		c.entries[code] = Descriptor{Group: GroupITRS, Type: code, Table: table, SQL: sql, Columns: columns}
	}

	add("RATES", "itrs_fi_rate", `
		SELECT row_number() OVER (ORDER BY a.cu_code) AS sno, a.ra_date AS reporting_date,
		       a.cu_code AS currency, b.cu_desc AS description,
		       a.ra_srate AS tzs_rate, a.ra_drate AS usd_rate
		FROM {table} a
		JOIN {schema}itrs_fi_curr b ON a.cu_code = b.cu_code
		WHERE a.ra_date BETWEEN {start} AND {end}
		ORDER BY a.cu_code`,
		[]string{"SNO", "REPORTING_DATE", "CURRENCY", "DESCRIPTION", "TZS_RATE", "USD_RATE"})

	add("MONITORING", "itrs_monitoring", `
		SELECT row_number() OVER () AS sno, a."RETURN NAME", a."EDI RECORDS", a."LAST EDI UPDATE",
		       a."BSIS RECORDS", a."TRANSFORMED RECORDS", a."LAST MIGRATION",
		       round(a."MIGRATION PERCENTAGE")::text || '%' AS migration_percentage,
		       a."LAST TRANSFORMATION",
		       round(a."TRANSFORMATION PERCENTAGE")::text || '%' AS transformation_percentage,
		       round(a."COMPLETION PERCENTAGE")::text || '%' AS completion_percentage
		FROM {table} a`,
		[]string{"SNO", "RETURN NAME", "EDI RECORDS", "LAST EDI UPDATE", "BSIS RECORDS",
			"TRANSFORMED RECORDS", "LAST MIGRATION", "MIGRATION_PERCENTAGE", "LAST TRANSFORMATION",
			"TRANSFORMATION_PERCENTAGE", "COMPLETION_PERCENTAGE"})

	// The master-details view selects *, so the registered column list is
	// bound to the view definition by position only.
	add("OVERALL_ANALYSIS", "itrs_master_details", `
		SELECT *
		FROM {table}
		WHERE reportingdate BETWEEN {start} AND {end}`,
		[]string{"INSTITUTION", "TRANSACTION_LOCATION", "PERIOD", "REPORTINGDATE", "DATE",
			"PURPOSE", "PURPOSE_DESCRIPTION"})

	// error_date is stored as DD-MM-YY text; rows are selected by the last
	// day of the month preceding the error date, as the loaders file them.
	add("TRANSFORMATION_ERRORS", "itrs_errors", `
		SELECT row_number() OVER (ORDER BY error_date DESC) AS sno,
		       error_date, error_details, error_type, id AS error_id
		FROM {table}
		WHERE date_trunc('month', to_date(error_date, 'DD-MM-YY'))::date - 1 BETWEEN {start} AND {end}`,
		[]string{"SNO", "ERROR_DATE", "ERROR_DETAILS", "ERROR_TYPE", "ERROR_ID"})

	pivotCols := []string{"COUNTRY", "SECTOR", "PAYMENT -URT", "RECEIPTS -URT",
		"PAYMENT -ZANZIBAR", "RECEIPTS -ZANZIBAR"}

	countrySectorSQL := func(amountCol string) string {
		return `
		SELECT country, sector,` + itrsPivotColumns + `
		FROM (
			SELECT DISTINCT country, sector,
			       purpose || ' -' || transaction_location AS location_purpose,
			       ` + amountCol + ` AS amount
			FROM {table}
			WHERE reportingdate BETWEEN {start} AND {end}
		) t
		GROUP BY country, sector
		ORDER BY country ASC, sector ASC`
	}
	add("COUNTRIES_SECTORS_TZS", "itrs_itrs_detail", countrySectorSQL("amount_in_tzs_eqv"), pivotCols)
	add("COUNTRIES_SECTORS_USD", "itrs_itrs_detail", countrySectorSQL("amount_in_usd_eqv"), pivotCols)
	add("CONSOLIDATED_TZS", "itrs_itrs_detail", countrySectorSQL("amount_in_tzs_eqv"), pivotCols)
	add("CONSOLIDATED_USD", "itrs_itrs_detail", countrySectorSQL("amount_in_usd_eqv"), pivotCols)

	regionSectorSQL := func(amountCol string) string {
		return `
		SELECT region_grouping, sector,
		       COALESCE(sum(amount) FILTER (WHERE location_purpose = 'PAYMENT -URT'), 0) AS payment_urt,
		       COALESCE(sum(amount) FILTER (WHERE location_purpose = 'RECEIPTS -URT'), 0) AS receipts_urt,
		       COALESCE(sum(amount) FILTER (WHERE location_purpose = 'PAYMENT -ZANZIBAR'), 0) AS payment_zanzibar,
		       COALESCE(sum(amount) FILTER (WHERE location_purpose = 'RECEIPTS -ZANZIBAR'), 0) AS receipts_zanzibar
		FROM (
			SELECT 'EAC' AS region_grouping, sector,
			       purpose || ' -' || transaction_location AS location_purpose,
			       ` + amountCol + ` AS amount
			FROM {table}
			WHERE reportingdate BETWEEN {start} AND {end}
			  AND country IN ('TANZANIA', 'KENYA', 'UGANDA', 'RWANDA', 'BURUNDI', 'SOUTH SUDAN')
			UNION ALL
			SELECT 'SADC' AS region_grouping, sector,
			       purpose || ' -' || transaction_location AS location_purpose,
			       ` + amountCol + ` AS amount
			FROM {table}
			WHERE reportingdate BETWEEN {start} AND {end}
			  AND country IN ('SOUTH AFRICA', 'ZAMBIA', 'ZIMBABWE')
		) t
		GROUP BY region_grouping, sector
		ORDER BY region_grouping ASC, sector ASC`
	}
	regionCols := []string{"REGION_GROUPING", "SECTOR", "PAYMENT_URT", "RECEIPTS_URT",
		"PAYMENT_ZANZIBAR", "RECEIPTS_ZANZIBAR"}
	add("REGION_SECTOR_TZS", "itrs_itrs_detail", regionSectorSQL("amount_in_tzs_eqv"), regionCols)
	add("REGION_SECTOR_USD", "itrs_itrs_detail", regionSectorSQL("amount_in_usd_eqv"), regionCols)

	// Raw payment/receipt registers joined with the institution register for
	// the reporting institution's name.
	registerSQL := `
		SELECT b.institutionname, a.institutioncode, a.descriptionno AS sno, a.reportingdate,
		       a.purpose, a.pu_code AS code, a.sector, a.country, a.currency, a.amount
		FROM {table} a
		JOIN {schema}institution b ON a.institutioncode = b.institutioncode
		WHERE {cond:a.institutioncode} AND a.reportingdate::date BETWEEN {start} AND {end}
		ORDER BY b.institutionname, a.institutioncode, a.descriptionno, a.reportingdate DESC`
	registerCols := []string{"INSTITUTIONNAME", "INSTITUTIONCODE", "SNO", "REPORTINGDATE",
		"PURPOSE", "CODE", "SECTOR", "COUNTRY", "CURRENCY", "AMOUNT"}
	add("URT_PAYMENTS", "itrs_urt_payments", registerSQL, registerCols)
	add("URT_RECEIPTS", "itrs_urt_receipts", registerSQL, registerCols)
	add("ZNZ_PAYMENTS", "itrs_znz_payments", registerSQL, registerCols)
	add("ZNZ_RECEIPTS", "itrs_znz_receipts", registerSQL, registerCols)

	// Final registers carry the converted amounts alongside the original
	// currency amount.
	finalSQL := `
		SELECT descriptionno AS sno, reportingdate, purpose, pu_code AS code, sector, country, currency,
		       amount_in_orig_currency, amount_in_usd_eqv, amount_in_tzs_eqv
		FROM {table}
		WHERE {cond} AND reportingdate::date BETWEEN {start} AND {end}
		ORDER BY reportingdate DESC, sno`
	finalCols := []string{"SNO", "REPORTINGDATE", "PURPOSE", "CODE", "SECTOR", "COUNTRY", "CURRENCY",
		"AMOUNT_IN_ORIG_CURRENCY", "AMOUNT_IN_USD_EQV", "AMOUNT_IN_TZS_EQV"}
	add("URT_PAYMENTS_FINAL", "itrs_urt_payments_final", finalSQL, finalCols)
	add("URT_RECEIPTS_FINAL", "itrs_urt_receipts_final", finalSQL, finalCols)
	add("ZNZ_PAYMENTS_FINAL", "itrs_znz_payments_final", finalSQL, finalCols)
	add("ZNZ_RECEIPTS_FINAL", "itrs_znz_receipts_final", finalSQL, finalCols)

	return c
}
