package catalog

// The submissions catalog answers "which returns did an institution submit
// or delete in a period". Both report codes read consolidated views over the
// BSIS submission-status tables and fail closed on anything else.

func submissionsSchema(source DataSource, _ string) string {
	switch source {
	case SourceBSIS, SourceEDI:
		return "bsis_dev."
	default:
		return ""
	}
}

func newSubmissionsCatalog() *Catalog {
	c := &Catalog{
		group:   GroupSubmissions,
		sources: []DataSource{SourceBSIS, SourceEDI},
		schema:  submissionsSchema,
		entries: make(map[string]Descriptor),
	}

	sql := `
		SELECT institutioncode, upper(submissionname) AS submissionname, reportingdate,
		       authorizeddate, upper(submittedby) AS submittedby, upper(authorizedby) AS authorizedby
		FROM {table}
		WHERE {cond} AND reportingdate::date BETWEEN {start} AND {end}
		ORDER BY reportingdate DESC, institutioncode`
	columns := []string{"INSTITUTIONCODE", "SUBMISSIONNAME", "REPORTINGDATE",
		"AUTHORIZEDDATE", "SUBMITTEDBY", "AUTHORIZEDBY"}

	c.entries["SUBMITTED"] = Descriptor{
		Group: GroupSubmissions, Type: "SUBMITTED",
		Table: "bsis_submission_submitted", SQL: sql, Columns: columns,
	}
	c.entries["DELETED"] = Descriptor{
		Group: GroupSubmissions, Type: "DELETED",
		Table: "bsis_submission_deleted", SQL: sql, Columns: columns,
	}
	return c
}
