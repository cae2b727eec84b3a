package entity

import "time"

type Plan struct {
	ID                uint64
	Name              string
	Description       string
	MonthlyPriceCents int64
	AnnualPriceCents  *int64
	ColorTheme        string
	DisplayOrder      int32
	Active            bool
	CreatedAt         time.Time
}
