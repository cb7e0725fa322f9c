package entity

type Cinema struct {
	Base
	Code    string `db:"code"`
	Name    string `db:"name"`
	Address string `db:"address"`
	City    string `db:"city"`
}
