package models

import "github.com/shopspring/decimal"

// MaxAmount is the largest value a numeric(10,2) money column holds.
var MaxAmount = decimal.RequireFromString("99999999.99")
