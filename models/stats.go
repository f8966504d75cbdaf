package models

import "github.com/shopspring/decimal"

// Result rows for the canned reporting queries. These are scan targets for
// raw SQL, not persisted tables.

type ProductSales struct {
	ProductName string `json:"product_name"`
	Sold        int64  `json:"sold"`
	SalesRank   int64  `json:"sales_rank"`
}

type CategoryProductSales struct {
	Category           string `json:"category"`
	ProductName        string `json:"product_name"`
	Sold               int64  `json:"sold"`
	RankInsideCategory int64  `json:"rank_inside_category"`
}

type ProductRating struct {
	ProductName   string  `json:"product_name"`
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int64   `json:"review_count"`
}

type TopBuyer struct {
	Buyer      string          `json:"buyer"`
	OrderCount int64           `json:"order_count"`
	TotalSpent decimal.Decimal `json:"total_spent"`
}

type OrderAmountComparison struct {
	OrderNumber    string          `json:"order_number"`
	Total          decimal.Decimal `json:"total"`
	AverageTotal   decimal.Decimal `json:"average_total"`
	DeviationTotal decimal.Decimal `json:"deviation_total"`
}

type OrderByStatus struct {
	OrderNumber string          `json:"order_number"`
	Buyer       string          `json:"buyer"`
	Total       decimal.Decimal `json:"total"`
	Status      string          `json:"status"`
	CreatedAt   string          `json:"created_at"`
}
