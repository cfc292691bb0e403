package model

// Product is a hosting plan offered in the catalog. Resource limits size
// the panel server created for each purchased item.
type Product struct {
	ID           int64
	Name         string
	Description  string
	Price        Money
	RAMMB        int
	CPUPercent   int
	DiskMB       int
	DurationDays int
	Active       bool
}
