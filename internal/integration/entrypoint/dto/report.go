package dto

// ReportQuery represents query parameters shared by period reports.
type ReportQuery struct {
	Period   string `form:"period" binding:"required,period"`
	ClientID string `form:"client_id" binding:"omitempty,uuid"`
}

// ExportQuery represents query parameters for exporting orders.
type ExportQuery struct {
	Period   string `form:"period" binding:"required,period"`
	Format   string `form:"format" binding:"omitempty,oneof=csv pdf CSV PDF"`
	ClientID string `form:"client_id" binding:"omitempty,uuid"`
}

// DailySummaryQuery represents query parameters for a day's summary.
type DailySummaryQuery struct {
	Date     string `form:"date" binding:"omitempty,datetime=2006-01-02"`
	ClientID string `form:"client_id" binding:"omitempty,uuid"`
}

// SendDailySummaryRequest represents the request body for emailing a day's summary.
type SendDailySummaryRequest struct {
	Date          string `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Recipient     string `json:"recipient" binding:"required,email"`
	RecipientName string `json:"recipient_name" binding:"max=100"`
	ClientID      string `json:"client_id" binding:"omitempty,uuid"`
}
