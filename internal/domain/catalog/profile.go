package catalog

import (
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"langodata/internal/core/apperror"
)

// SourceDERPTS is accepted for profile reads only.
const SourceDERPTS DataSource = "DERPTS"

// ProfileGroups are the data groups a profile read accepts. Only MSP and
// BANK have a register table wired; the rest are reserved codes that pass
// group validation and fail descriptor lookup.
var ProfileGroups = []DataGroup{
	"MSP", "ITRS", "NPS", "BANK", "FUNDS", "MORGAGE", "LEASING",
	"TMS", "FXCFMIS", "CBR", "DERP-DATA", "TS-BOP",
}

// ProfileSources are the data sources a profile read accepts.
var ProfileSources = []DataSource{SourceBSIS, SourceEDI, SourceDERPTS}

// ProfileDescriptor binds a data group to its institution register.
type ProfileDescriptor struct {
	Group   DataGroup
	Table   string
	Columns []string
}

var profileRegisters = map[DataGroup]ProfileDescriptor{
	GroupMSP: {
		Group: GroupMSP,
		Table: "msp_institution",
		Columns: []string{"INSTITUTIONCODE", "INSTITUTIONNAME", "INSTITUTIONSTATUS",
			"INCORPORATIONCERTIFICATENO", "INCORPORATIONDATE", "TIN", "HQADDRESS", "LICENSENO",
			"LICENSINGDATE", "COMMENCEMENTDATE", "CONTACT_PERSON", "TEL_NO", "E_MAIL", "FAXNO",
			"POSTAL_ADDRESS", "PHYSICAL_ADDRESS", "COMPANY_EMAIL", "CAPITAL_LEVEL", "STATUS_COMMENTS",
			"OWNERSHIP", "CATEGORY", "NO_AUTHORISED_SHARE", "NO_PREFERENCE_SHARE",
			"VALUE_AUTHORISED_SHARE", "AUDITOR_NAME", "REG_DATE", "REG_USER"},
	},
	GroupBank: {
		Group: GroupBank,
		Table: "institution",
		Columns: []string{"INSTITUTIONCODE", "INSTITUTIONNAME", "INSTITUTIONSTATUS",
			"INCORPORATIONCERTIFICATENO", "INCORPORATIONDATE", "HQADDRESS", "LICENSENO",
			"LICENSINGDATE", "COMMENCEMENTDATE", "CONTACT_PERSON", "FINANCIALYEAR_END", "TEL_NO",
			"FAXNO", "CABLE_ADDRESS", "E_MAIL", "CAPITAL_LEVEL", "APPROVAL_DATE", "INSTITUTIONTYPE",
			"AUDITORCODE", "AUTHORISED_SHARES", "USERNAME", "ACCOUNTING_SYSTEM", "PHYSICAL_ADDRESS",
			"SHORT_NAME", "STATUS_COMMENTS", "CATEGORYNO", "NO_AUTHORISED_SHARE",
			"NO_PREFERENCE_SHARE", "VALUE_AUTHORISED_SHARE", "VALUE_PREFERENCE_SHARE", "OWNERSHIP",
			"CBSBANK_CODE", "SMR_ACCOUNT", "CLEARING_ACCOUNT", "BIC_CODE", "TISS_MEMBER",
			"ITRS_URT", "ITRS_ZNZ"},
	},
}

// LookupProfile resolves the institution register for a data group.
func LookupProfile(group DataGroup) (ProfileDescriptor, error) {
	d, ok := profileRegisters[group]
	if !ok {
		return ProfileDescriptor{}, apperror.NewValidation(
			fmt.Sprintf("Invalid data_type '%s'. No column mapping found.", group))
	}
	return d, nil
}

// BuildProfileQuery composes the register read. The select list is authored
// from the registered columns, so the arity invariant holds by construction.
func BuildProfileQuery(d ProfileDescriptor, source DataSource, filterCode string) (Query, error) {
	schema := ""
	if source == SourceBSIS {
		schema = "bsis_dev."
	}

	cols := make([]string, len(d.Columns))
	for i, c := range d.Columns {
		cols[i] = strings.ToLower(c)
	}

	builder := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Select(cols...).
		From(schema + d.Table)
	if filterCode != Wildcard {
		builder = builder.Where(squirrel.Eq{"institutioncode": filterCode})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return Query{}, apperror.NewInternal(fmt.Errorf("build profile query: %w", err))
	}
	return Query{SQL: sql, Args: args}, nil
}
