package service

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/you/agrigo/pkg/apperr"
)

var (
	emailRe     = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	maxPrice    = decimal.RequireFromString("999999.99")
	maxQuantity = decimal.RequireFromString("99999.99")
)

const minPasswordLen = 8

type field struct {
	name    string
	present bool
}

// required reports every absent field in one Validation error.
func required(fs ...field) error {
	var miss []string
	for _, f := range fs {
		if !f.present {
			miss = append(miss, f.name)
		}
	}
	if len(miss) == 0 {
		return nil
	}
	return apperr.Validationf("Missing required fields: %s", strings.Join(miss, ", "))
}

func normalizeEmail(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// checkPrice rounds to cents and validates the stored value.
func checkPrice(p decimal.Decimal) (decimal.Decimal, error) {
	p = p.Round(2)
	if !p.IsPositive() {
		return p, apperr.Validationf("price must be greater than 0")
	}
	if p.GreaterThan(maxPrice) {
		return p, apperr.Validationf("price must not exceed %s", maxPrice)
	}
	return p, nil
}

func checkQuantity(q decimal.Decimal) (decimal.Decimal, error) {
	q = q.Round(2)
	if !q.IsPositive() {
		return q, apperr.Validationf("quantity must be greater than 0")
	}
	if q.GreaterThan(maxQuantity) {
		return q, apperr.Validationf("quantity must not exceed %s", maxQuantity)
	}
	return q, nil
}
