package domain

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	MaxSaleItems   = 3
	DefaultNetRate = 0.80
)

type SaleItem struct {
	Number int
	Name   string
	Gross  float64
	Net    float64
}

// SaleReport is the logout form: one entry per item worked during the shift.
type SaleReport struct {
	Items []SaleItem
}

func NewSaleReport(count int, names []string, amounts []string, netRate float64) (SaleReport, error) {
	if count < 1 || count > MaxSaleItems {
		return SaleReport{}, fmt.Errorf("%w: item count must be 1..%d, got %d", ErrInvalidSaleReport, MaxSaleItems, count)
	}
	if len(names) != count || len(amounts) != count {
		return SaleReport{}, fmt.Errorf("%w: expected %d names and amounts, got %d and %d", ErrInvalidSaleReport, count, len(names), len(amounts))
	}
	if netRate <= 0 || netRate > 1 {
		netRate = DefaultNetRate
	}

	report := SaleReport{Items: make([]SaleItem, 0, count)}
	for i := range count {
		name := strings.TrimSpace(names[i])
		if name == "" {
			return SaleReport{}, fmt.Errorf("%w: name of item %d is required", ErrInvalidSaleReport, i+1)
		}

		gross, err := ParseAmount(amounts[i])
		if err != nil {
			return SaleReport{}, fmt.Errorf("%w: amount of item %d: %v", ErrInvalidSaleReport, i+1, err)
		}

		report.Items = append(report.Items, SaleItem{
			Number: i + 1,
			Name:   name,
			Gross:  gross,
			Net:    gross * netRate,
		})
	}

	return report, nil
}

// ParseAmount accepts "$1,234.50" style input.
func ParseAmount(raw string) (float64, error) {
	cleaned := strings.NewReplacer("$", "", ",", "").Replace(strings.TrimSpace(raw))
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return 0, fmt.Errorf("amount is empty")
	}

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", raw, err)
	}
	if value < 0 {
		return 0, fmt.Errorf("amount %q is negative", raw)
	}

	return value, nil
}

func (r SaleReport) Empty() bool {
	return len(r.Items) == 0
}

func (r SaleReport) TotalGross() float64 {
	var total float64
	for _, item := range r.Items {
		total += item.Gross
	}
	return total
}

func (r SaleReport) TotalNet() float64 {
	var total float64
	for _, item := range r.Items {
		total += item.Net
	}
	return total
}
