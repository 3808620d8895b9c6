package model

// StockNews is one headline attached to a screened symbol.
type StockNews struct {
	Title     string
	Link      string
	Publisher string
	Time      string
}
