package dto

// ProductResponse is one catalog entry.
type ProductResponse struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	Price        string `json:"price"`
	Currency     string `json:"currency"`
	RAMMB        int    `json:"ram_mb"`
	CPUPercent   int    `json:"cpu_percent"`
	DiskMB       int    `json:"disk_mb"`
	DurationDays int    `json:"duration_days"`
}
