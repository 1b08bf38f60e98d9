package dto

// RatesQuery carries the period bounds for a rate listing.
type RatesQuery struct {
	StartPeriod string `form:"start_period" binding:"required"`
	EndPeriod   string `form:"end_period" binding:"required"`
}
