package catalog

import (
	"fmt"
	"strings"
)

// mspFallbackSQL serves every per-institution MSP return and any report code
// without a registered template. The MSP catalog is the only fail-open one.
const mspFallbackSQL = `SELECT * FROM {table} WHERE {cond} AND reportingdate::date BETWEEN {start} AND {end}`

// mspSchema suppresses the dev-schema prefix for consolidated reports, which
// read from the published schema.
func mspSchema(source DataSource, dataType string) string {
	switch source {
	case SourceBSIS:
		if strings.Contains(dataType, "CONS") {
			return ""
		}
		return "bsis_dev."
	case SourceEDI:
		return "edi."
	default:
		return ""
	}
}

func newMSPCatalog() *Catalog {
	c := &Catalog{
		group:       GroupMSP,
		sources:     []DataSource{SourceBSIS, SourceEDI},
		schema:      mspSchema,
		entries:     make(map[string]Descriptor),
		fallback:    mspFallbackSQL,
		tablePrefix: "msp2_",
	}

	// Per-institution returns 01..10 share the generic template and differ
	// only in table and column list.
	perInstitution := map[string][]string{
		"01": {"INSTITUTIONCODE", "REPORTINGDATE", "DESCRIPTIONNO", "PARTICULARS", "AMOUNT"},
		"02": {"INSTITUTIONCODE", "REPORTINGDATE", "DESCRIPTIONNO", "PARTICULARS", "AMOUNT", "YR_TO_DATE_AMOUNT"},
		"03": {"INSTITUTIONCODE", "REPORTINGDATE", "DESCRIPTIONNO", "SECTOR", "BORROWERS", "OUTSTANDING_AMOUNT",
			"CURRENT_AMOUNT", "ESM", "SUBSTANDARD", "DOUBTFUL", "LOSS", "WRITTENOFF"},
		"04": {"INSTITUTIONCODE", "REPORTINGDATE", "DESCRIPTIONNO", "PARTICULARS", "BORROWERS",
			"OUTSTANDING_AMOUNT", "WA_IRSLA", "NIRSLA_LOWEST", "NIRSLA_HIGHEST", "WA_IRRBA",
			"NIRRBA_LOWEST", "NIRRBA_HIGHEST"},
		"05": {"INSTITUTIONCODE", "REPORTINGDATE", "DESCRIPTIONNO", "PARTICULARS", "AMOUNT"},
		"06": {"INSTITUTIONCODE", "REPORTINGDATE", "DESCRIPTIONNO", "PARTICULARS", "NUMBER_COMPLAINTS",
			"VALUE_COMPLAINTS", "COMPLAINTS_IR", "COMPLAINTS_AGREEMENT", "COMPLAINTS_REPAYMENTS",
			"COMPLAINTS_LOAN_ST", "COMPLAINTS_LOAN_PROC", "COMPLAINTS_OTHERS"},
		"07": {"INSTITUTIONCODE", "REPORTINGDATE", "DESCRIPTIONNO", "PARTICULARS", "DEPOSIT_TZS",
			"DEPOSIT_FOREIGN_EQV_TZS", "DEPOSIT_TOTAL", "LOAN_TZS", "LOAN_FOREIGN_EQV_TZS", "LOAN_TOTAL"},
		"08": {"INSTITUTIONCODE", "REPORTINGDATE", "DESCRIPTIONNO", "PARTICULARS", "AMOUNT"},
		"09": {"INSTITUTIONCODE", "REPORTINGDATE", "DESCRIPTIONNO", "PARTICULARS", "LOAN_FEMALE_NUMBER",
			"LOAN_FEMALE_AMOUNT", "LOAN_MALE_NUMBER", "LOAN_MALE_AMOUNT", "LOAN_NUMBER", "LOAN_AMOUNT"},
		"10": {"INSTITUTIONCODE", "REPORTINGDATE", "DESCRIPTIONNO", "PARTICULARS", "BRANCHES", "EMPLOYEES",
			"COMPULSORY_SAVINGS", "BORROWERS_TO35YRS_F", "BORROWERS_TO35YRS_M", "BORROWERS_ABOVE35YRS_F",
			"BORROWERS_ABOVE35YRS_M", "LOANS_TO35YRS_F", "LOANS_TO35YRS_M", "LOANS_ABOVE35YRS_F",
			"LOANS_ABOVE35YRS_M", "AMOUNT_TO35YRS_F", "AMOUNT_TO35YRS_M", "AMOUNT_ABOVE35YRS_F",
			"AMOUNT_ABOVE35YRS_M"},
	}
	for code, cols := range perInstitution {
		c.entries[code] = Descriptor{
			Group:   GroupMSP,
			Type:    code,
			Table:   "msp2_" + code,
			SQL:     mspFallbackSQL,
			Columns: cols,
		}
	}

	// Consolidated reports aggregate across institutions and read the same
	// tables without the institution filter.
	for code, d := range mspConsolidated() {
		c.entries[code] = d
	}
	return c
}

func mspConsolidated() map[string]Descriptor {
	entries := make(map[string]Descriptor)

	add := func(code, table, sql string, columns []string) {
		entries[code] = Descriptor{Group: GroupMSP, Type: code, Table: table, SQL: sql, Columns: columns}
	}

	add("CONS01", "msp2_01", `
		SELECT a.reportingdate, a.descriptionno, a.particulars, sum(a.amount) AS amount
		FROM {table} a
		WHERE a.reportingdate BETWEEN {start} AND {end}
		GROUP BY a.reportingdate, a.descriptionno, a.particulars
		ORDER BY a.descriptionno ASC`,
		[]string{"REPORTINGDATE", "DESCRIPTIONNO", "PARTICULARS", "AMOUNT"})

	add("CONS02", "msp2_02", `
		SELECT a.reportingdate, a.descriptionno, a.particulars, sum(a.amount) AS amount,
		       sum(a.yr_to_date_amount) AS yr_to_date_amount
		FROM {table} a
		WHERE a.reportingdate BETWEEN {start} AND {end}
		GROUP BY a.reportingdate, a.descriptionno, a.particulars
		ORDER BY a.descriptionno ASC`,
		[]string{"REPORTINGDATE", "DESCRIPTIONNO", "PARTICULARS", "AMOUNT", "YR_TO_DATE_AMOUNT"})

	add("CONS03", "msp2_03", `
		SELECT a.reportingdate, a.descriptionno, a.sector, sum(a.borrowers) AS borrowers,
		       sum(a.outstanding_amount) AS outstanding_amount, sum(a.current_amount) AS current_amount,
		       sum(a.esm) AS esm, sum(a.substandard) AS substandard, sum(a.doubtful) AS doubtful,
		       sum(a.loss) AS loss, sum(a.writtenoff) AS writtenoff
		FROM {table} a
		WHERE a.reportingdate BETWEEN {start} AND {end}
		GROUP BY a.reportingdate, a.descriptionno, a.sector
		ORDER BY a.descriptionno`,
		[]string{"REPORTINGDATE", "DESCRIPTIONNO", "SECTOR", "BORROWERS", "OUTSTANDING_AMOUNT",
			"CURRENT_AMOUNT", "ESM", "SUBSTANDARD", "DOUBTFUL", "LOSS", "WRITTENOFF"})

	add("CONS04", "msp2_04", `
		SELECT a.reportingdate, a.descriptionno, a.particulars, sum(a.borrowers) AS borrowers,
		       sum(a.outstanding_amount) AS outstanding_amount, avg(a.wa_irsla) AS wa_irsla,
		       avg(a.nirsla_lowest) AS nirsla_lowest, avg(a.nirsla_highest) AS nirsla_highest,
		       avg(a.wa_irrba) AS wa_irrba, avg(a.nirrba_lowest) AS nirrba_lowest,
		       avg(a.nirrba_highest) AS nirrba_highest
		FROM {table} a
		WHERE a.reportingdate BETWEEN {start} AND {end}
		GROUP BY a.reportingdate, a.descriptionno, a.particulars
		ORDER BY a.descriptionno`,
		[]string{"REPORTINGDATE", "DESCRIPTIONNO", "PARTICULARS", "BORROWERS",
			"OUTSTANDING_AMOUNT", "WA_IRSLA", "NIRSLA_LOWEST", "NIRSLA_HIGHEST", "WA_IRRBA",
			"NIRRBA_LOWEST", "NIRRBA_HIGHEST"})

	add("CONS05", "msp2_05", `
		SELECT a.reportingdate, a.descriptionno, a.particulars, sum(a.amount) AS amount
		FROM {table} a
		WHERE a.reportingdate BETWEEN {start} AND {end}
		GROUP BY a.reportingdate, a.descriptionno, a.particulars
		ORDER BY a.descriptionno`,
		[]string{"REPORTINGDATE", "DESCRIPTIONNO", "PARTICULARS", "AMOUNT"})

	add("CONS06", "msp2_06", `
		SELECT a.reportingdate, a.descriptionno, a.particulars,
		       sum(a.number_complaints) AS number_complaints, sum(a.value_complaints) AS value_complaints,
		       sum(a.complaints_ir) AS complaints_ir, sum(a.complaints_agreement) AS complaints_agreement,
		       sum(a.complaints_repayments) AS complaints_repayments, sum(a.complaints_loan_st) AS complaints_loan_st,
		       sum(a.complaints_loan_proc) AS complaints_loan_proc, sum(a.complaints_others) AS complaints_others
		FROM {table} a
		WHERE a.reportingdate BETWEEN {start} AND {end}
		GROUP BY a.reportingdate, a.descriptionno, a.particulars
		ORDER BY a.descriptionno`,
		[]string{"REPORTINGDATE", "DESCRIPTIONNO", "PARTICULARS", "NUMBER_COMPLAINTS",
			"VALUE_COMPLAINTS", "COMPLAINTS_IR", "COMPLAINTS_AGREEMENT", "COMPLAINTS_REPAYMENTS",
			"COMPLAINTS_LOAN_ST", "COMPLAINTS_LOAN_PROC", "COMPLAINTS_OTHERS"})

	// The deposit/loan split return 07 ships in four sections; I, II and III
	// cover description rows 1..29 and IV covers 59..64.
	cons07Cols := []string{"REPORTINGDATE", "DESCRIPTIONNO", "PARTICULARS", "DEPOSIT_TZS",
		"DEPOSIT_FOREIGN_EQV_TZS", "DEPOSIT_TOTAL", "LOAN_TZS", "LOAN_FOREIGN_EQV_TZS", "LOAN_TOTAL"}
	cons07SQL := func(lo, hi int) string {
		return fmt.Sprintf(`
		SELECT a.reportingdate, a.descriptionno, a.particulars,
		       sum(a.deposit_tzs) AS deposit_tzs, sum(a.deposit_foreign_eqv_tzs) AS deposit_foreign_eqv_tzs,
		       sum(a.deposit_total) AS deposit_total, sum(a.loan_tzs) AS loan_tzs,
		       sum(a.loan_foreign_eqv_tzs) AS loan_foreign_eqv_tzs, sum(a.loan_total) AS loan_total
		FROM {table} a
		WHERE a.descriptionno BETWEEN %d AND %d
		  AND a.reportingdate BETWEEN {start} AND {end}
		GROUP BY a.reportingdate, a.descriptionno, a.particulars
		ORDER BY a.descriptionno`, lo, hi)
	}
	add("CONS07I", "msp2_07", cons07SQL(1, 29), cons07Cols)
	add("CONS07II", "msp2_07", cons07SQL(1, 29), cons07Cols)
	add("CONS07III", "msp2_07", cons07SQL(1, 29), cons07Cols)
	add("CONS07IV", "msp2_07", cons07SQL(59, 64), cons07Cols)

	add("CONS08", "msp2_08", `
		SELECT a.reportingdate, a.descriptionno - 1 AS descriptionno, a.particulars, sum(a.amount) AS amount
		FROM {table} a
		WHERE a.reportingdate BETWEEN {start} AND {end}
		GROUP BY a.reportingdate, a.descriptionno, a.particulars
		ORDER BY a.descriptionno`,
		[]string{"REPORTINGDATE", "DESCRIPTIONNO", "PARTICULARS", "AMOUNT"})

	add("CONS09", "msp2_09", `
		SELECT a.reportingdate, a.descriptionno, a.particulars,
		       sum(a.loan_female_number) AS loan_female_number, sum(a.loan_female_amount) AS loan_female_amount,
		       sum(a.loan_male_number) AS loan_male_number, sum(a.loan_male_amount) AS loan_male_amount,
		       sum(a.loan_number) AS loan_number, sum(a.loan_amount) AS loan_amount
		FROM {table} a
		WHERE a.reportingdate BETWEEN {start} AND {end}
		GROUP BY a.reportingdate, a.descriptionno, a.particulars
		ORDER BY a.descriptionno`,
		[]string{"REPORTINGDATE", "DESCRIPTIONNO", "PARTICULARS", "LOAN_FEMALE_NUMBER",
			"LOAN_FEMALE_AMOUNT", "LOAN_MALE_NUMBER", "LOAN_MALE_AMOUNT", "LOAN_NUMBER", "LOAN_AMOUNT"})

	add("CONS10", "msp2_10", `
		SELECT a.reportingdate, a.descriptionno, a.particulars,
		       sum(a.branches) AS branches, sum(a.employees) AS employees,
		       sum(a.compulsory_savings) AS compulsory_savings,
		       sum(a.borrowers_to35yrs_m) AS borrowers_to35yrs_m, sum(a.borrowers_to35yrs_f) AS borrowers_to35yrs_f,
		       sum(a.borrowers_above35yrs_m) AS borrowers_above35yrs_m, sum(a.borrowers_above35yrs_f) AS borrowers_above35yrs_f,
		       sum(a.loans_to35yrs_m) AS loans_to35yrs_m, sum(a.loans_to35yrs_f) AS loans_to35yrs_f,
		       sum(a.loans_above35yrs_m) AS loans_above35yrs_m, sum(a.loans_above35yrs_f) AS loans_above35yrs_f,
		       sum(a.amount_to35yrs_m) AS amount_to35yrs_m, sum(a.amount_to35yrs_f) AS amount_to35yrs_f,
		       sum(a.amount_above35yrs_m) AS amount_above35yrs_m, sum(a.amount_above35yrs_f) AS amount_above35yrs_f
		FROM {table} a
		WHERE a.reportingdate BETWEEN {start} AND {end}
		GROUP BY a.reportingdate, a.descriptionno, a.particulars
		ORDER BY a.descriptionno`,
		[]string{"REPORTINGDATE", "DESCRIPTIONNO", "PARTICULARS", "BRANCHES", "EMPLOYEES",
			"COMPULSORY_SAVINGS", "BORROWERS_TO35YRS_M", "BORROWERS_TO35YRS_F",
			"BORROWERS_ABOVE35YRS_M", "BORROWERS_ABOVE35YRS_F", "LOANS_TO35YRS_M", "LOANS_TO35YRS_F",
			"LOANS_ABOVE35YRS_M", "LOANS_ABOVE35YRS_F", "AMOUNT_TO35YRS_M", "AMOUNT_TO35YRS_F",
			"AMOUNT_ABOVE35YRS_M", "AMOUNT_ABOVE35YRS_F"})

	return entries
}
