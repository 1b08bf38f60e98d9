package extract

import (
	"context"
	"fmt"
	"strings"
	"time"

	"langodata/internal/core/apperror"
	"langodata/internal/domain/catalog"
	"langodata/pkg/logger"
)

// ValidGroups is the boundary allow-list for data groups. Groups without a
// registered catalog pass this check and fail routing with a "no handler"
// note, matching the catalog growth plan: codes are reserved before their
// catalogs ship.
var ValidGroups = []catalog.DataGroup{
	"MSP", "MACROECONOMICS", "ITRS", "SUBMISSIONS", "NPS", "BANK", "FUNDS",
	"MORGAGE", "LEASING", "TMS", "FXCFMIS", "CBR", "DERP-DATA", "TS-BOP",
	"IT-MONITORING", "IT-SECURITY", "CURRENCY", "FINANCIAL-MARKETS",
	"PHYSICAL-SECURITY", "TOURISM",
}

// ValidSources is the boundary allow-list for data sources.
var ValidSources = []catalog.DataSource{catalog.SourceBSIS, catalog.SourceEDI, catalog.SourceDWH}

const emptyResultNote = "Output table is empty. Check data source or query parameters."

// Service is the stateless dispatcher. The catalogs are read-only and safely
// shared; each call runs at most one query and shares nothing with other
// calls.
type Service struct {
	registry *catalog.Registry
	exec     Executor
	gate     Gate
	auditor  Auditor
	log      *logger.Logger
}

// NewService creates the dispatcher. The auditor may be nil.
func NewService(registry *catalog.Registry, exec Executor, gate Gate, auditor Auditor, log *logger.Logger) *Service {
	return &Service{
		registry: registry,
		exec:     exec,
		gate:     gate,
		auditor:  auditor,
		log:      log.WithComponent("extract"),
	}
}

// Read handles one data-retrieval call end to end. It always returns an
// envelope; every failure mode lands in the envelope's debug text.
func (s *Service) Read(ctx context.Context, req QueryRequest) ResultEnvelope {
	var out ResultEnvelope
	log := s.log.WithContext(ctx)

	if err := s.gate.Check(ctx, req.Group); err != nil {
		out.AppendDebug(debugMessage(err))
		return out
	}

	if errs := s.validateInputs(req); len(errs) > 0 {
		out.AppendDebug(strings.Join(errs, " | "))
		return out
	}

	cat, ok := s.registry.Lookup(req.Group)
	if !ok {
		out.AppendDebug(fmt.Sprintf("No handler found for data group: %s", req.Group))
		return out
	}

	out = s.dispatch(ctx, cat, req)
	if out.Table.Empty() {
		out.AppendDebug(emptyResultNote)
	}
	log.Infow("read completed",
		"data_group", req.Group, "data_type", req.Type, "rows", len(out.Table.Rows))
	return out
}

// validateInputs checks the boundary allow-lists and the period format.
// All violations are collected so the caller sees every problem at once.
func (s *Service) validateInputs(req QueryRequest) []string {
	var errs []string

	if !containsGroup(ValidGroups, req.Group) {
		errs = append(errs, fmt.Sprintf("Invalid data group: %s", req.Group))
	}
	if !containsSource(ValidSources, req.Source) {
		errs = append(errs, fmt.Sprintf("Invalid data source: %s", req.Source))
	}

	start, err := ParsePeriod(req.StartPeriod)
	if err != nil {
		errs = append(errs, fmt.Sprintf("Invalid start_period: %s. Expected format: DD-MMM-YYYY", req.StartPeriod))
	}
	end, err := ParsePeriod(req.EndPeriod)
	if err != nil {
		errs = append(errs, fmt.Sprintf("Invalid end_period: %s. Expected format: DD-MMM-YYYY", req.EndPeriod))
	}
	if len(errs) == 0 && start.After(end) {
		errs = append(errs, fmt.Sprintf("Invalid period range: start_period %s is after end_period %s", req.StartPeriod, req.EndPeriod))
	}
	return errs
}

// dispatch runs the catalog-specific part of the call: source allow-list,
// descriptor lookup, render, execute, shape.
func (s *Service) dispatch(ctx context.Context, cat *catalog.Catalog, req QueryRequest) ResultEnvelope {
	var out ResultEnvelope
	log := s.log.WithContext(ctx)

	if !cat.AllowsSource(req.Source) {
		out.AppendDebug(fmt.Sprintf("Invalid data source: %s. ", req.Source))
		return out
	}

	// The macroeconomic group reuses the filter slot for the series
	// frequency.
	frequency := ""
	if cat.Group() == catalog.GroupMacro {
		code, ok := catalog.MacroFrequencies[req.FilterCode]
		if !ok {
			out.AppendDebug(fmt.Sprintf("Invalid data frequency: %s. ", req.FilterCode))
			return out
		}
		frequency = code
	}

	desc, err := cat.Lookup(req.Type)
	if err != nil {
		out.AppendDebug(debugMessage(err))
		return out
	}

	start, _ := ParsePeriod(req.StartPeriod)
	end, _ := ParsePeriod(req.EndPeriod)
	query, err := cat.Render(desc, catalog.RenderInput{
		Source:      req.Source,
		FilterCode:  req.FilterCode,
		StartPeriod: start,
		EndPeriod:   end,
		Frequency:   frequency,
	})
	if err != nil {
		out.AppendDebug(fmt.Sprintf("Error fetching %s data: %v", req.Group, err))
		return out
	}

	began := time.Now()
	res, err := s.exec.Query(ctx, req.Source, query.SQL, query.Args...)
	if err != nil {
		log.Errorw("query failed", "data_group", req.Group, "data_type", req.Type, "error", err)
		out.AppendDebug(fmt.Sprintf("Error fetching %s data: %v", req.Group, err))
		return out
	}
	s.audit(ctx, req, query.SQL, len(res.Rows), time.Since(began))

	table, err := shape(desc.Columns, res)
	if err != nil {
		out.AppendDebug(fmt.Sprintf("Error fetching %s data: %v", req.Group, err))
		return out
	}
	out.Table = table
	if table.Empty() {
		out.Info = "No data found for the given parameters."
	} else {
		out.Info = fmt.Sprintf("Query executed successfully for %s.", req.Type)
	}
	return out
}

// ReadProfile handles an institution-register read. Profiles have no period
// bounds; only the group, source and filter are validated.
func (s *Service) ReadProfile(ctx context.Context, req ProfileRequest) ResultEnvelope {
	var out ResultEnvelope
	log := s.log.WithContext(ctx)

	if err := s.gate.Check(ctx, req.Group); err != nil {
		out.AppendDebug(debugMessage(err))
		return out
	}

	if !containsGroup(catalog.ProfileGroups, req.Group) {
		out.AppendDebug(fmt.Sprintf("Invalid data group: %s", req.Group))
		return out
	}
	if !containsSource(catalog.ProfileSources, req.Source) {
		out.AppendDebug(fmt.Sprintf("Invalid data source: %s", req.Source))
		return out
	}

	desc, err := catalog.LookupProfile(req.Group)
	if err != nil {
		out.AppendDebug(debugMessage(err))
		return out
	}
	query, err := catalog.BuildProfileQuery(desc, req.Source, req.FilterCode)
	if err != nil {
		out.AppendDebug(fmt.Sprintf("Error fetching %s profile: %v", req.Group, err))
		return out
	}

	began := time.Now()
	res, err := s.exec.Query(ctx, req.Source, query.SQL, query.Args...)
	if err != nil {
		log.Errorw("profile query failed", "data_group", req.Group, "error", err)
		out.AppendDebug(fmt.Sprintf("Error fetching %s profile: %v", req.Group, err))
		return out
	}
	s.audit(ctx, QueryRequest{Group: req.Group, Source: req.Source, FilterCode: req.FilterCode},
		query.SQL, len(res.Rows), time.Since(began))

	table, err := shape(desc.Columns, res)
	if err != nil {
		out.AppendDebug(fmt.Sprintf("Error fetching %s profile: %v", req.Group, err))
		return out
	}
	out.Table = table
	if table.Empty() {
		out.Info = "No data found for the given parameters."
		out.AppendDebug(emptyResultNote)
	} else {
		out.Info = fmt.Sprintf("Profile retrieved successfully for %s.", req.Group)
	}
	return out
}

func (s *Service) audit(ctx context.Context, req QueryRequest, sql string, rows int, took time.Duration) {
	if s.auditor == nil {
		return
	}
	s.auditor.Record(ctx, AuditEntry{
		Group:      req.Group,
		Source:     req.Source,
		Type:       req.Type,
		FilterCode: req.FilterCode,
		SQL:        sql,
		RowCount:   rows,
		Duration:   took,
	})
}

// shape zips the result rows with the registered column list. Descriptors
// without a registered list (the generic fallback) take the result set's own
// field names. Every row's arity must match the column list.
func shape(columns []string, res Result) (Table, error) {
	if columns == nil {
		columns = res.Columns
	}
	for i, row := range res.Rows {
		if len(row) != len(columns) {
			return Table{}, fmt.Errorf("row %d has %d values for %d columns", i, len(row), len(columns))
		}
	}
	return Table{Columns: columns, Rows: res.Rows}, nil
}

// debugMessage extracts the user-facing message from an error for the
// envelope's debug text.
func debugMessage(err error) string {
	if appErr, ok := apperror.AsAppError(err); ok {
		return appErr.Message
	}
	return err.Error()
}

func containsGroup(list []catalog.DataGroup, g catalog.DataGroup) bool {
	for _, v := range list {
		if v == g {
			return true
		}
	}
	return false
}

func containsSource(list []catalog.DataSource, s catalog.DataSource) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
