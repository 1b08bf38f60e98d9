package dto

// SubmissionsQuery narrows a submission listing. An empty institution code
// means all institutions.
type SubmissionsQuery struct {
	Status          string `form:"status" binding:"required"`
	DataSource      string `form:"data_source" binding:"required"`
	InstitutionCode string `form:"institution_code"`
	StartPeriod     string `form:"start_period" binding:"required"`
	EndPeriod       string `form:"end_period" binding:"required"`
}
