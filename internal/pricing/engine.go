// Package pricing converts a customer's fabrication or assembly
// configuration into a quotation. Quotes are pure functions of the request
// and the cost tables: no hidden state, no randomness, no network.
package pricing

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/glonix/backend/internal/model"
)

// ValidationError lists the options that were missing or carried a value
// outside the cost table. It is always rejected locally and never reaches
// the network.
type ValidationError struct {
	MissingOrInvalid []string
}

func (e *ValidationError) Error() string {
	return "pricing: invalid configuration: " + strings.Join(e.MissingOrInvalid, ", ")
}

// Engine prices quote requests against the package cost tables.
type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

// Quote validates the request and computes its price. The returned Quote's
// Breakdown holds each option's total contribution, so the breakdown values
// sum to TotalPrice.
func (e *Engine) Quote(req model.QuoteRequest) (*model.Quote, error) {
	switch req.Line {
	case model.LineFabrication:
		return e.quoteFabrication(req)
	case model.LineAssembly:
		return e.quoteAssembly(req)
	default:
		return nil, &ValidationError{MissingOrInvalid: []string{"line"}}
	}
}

// quoteFabrication: perUnit = Σ option costs, total = perUnit × quantity.
// No batch-level term.
func (e *Engine) quoteFabrication(req model.QuoteRequest) (*model.Quote, error) {
	var bad []string
	if !containsInt(fabricationQuantities, req.Quantity) {
		bad = append(bad, "quantity")
	}

	var perUnit model.Money
	costs := make(map[model.OptionName]model.Money, len(fabricationCosts))
	for _, opt := range sortedOptions(fabricationCosts) {
		val, ok := req.Options[opt]
		if !ok {
			bad = append(bad, string(opt))
			continue
		}
		cost, ok := fabricationCosts[opt][val]
		if !ok {
			bad = append(bad, fmt.Sprintf("%s=%s", opt, val))
			continue
		}
		perUnit += cost
		costs[opt] = cost
	}
	if len(bad) > 0 {
		return nil, &ValidationError{MissingOrInvalid: bad}
	}

	qty := model.Money(req.Quantity)
	breakdown := make(map[model.OptionName]model.Money, len(costs))
	for opt, cost := range costs {
		breakdown[opt] = cost * qty
	}
	return &model.Quote{
		Line:        model.LineFabrication,
		Quantity:    req.Quantity,
		PerUnitCost: perUnit,
		BatchCost:   0,
		TotalPrice:  perUnit * qty,
		Breakdown:   breakdown,
		ComputedAt:  time.Now().UTC(),
	}, nil
}

// quoteAssembly: the weighted point sum and the base-material charge are
// batch-level; only the feature surcharges (conformal coating, stencil side)
// scale with quantity.
func (e *Engine) quoteAssembly(req model.QuoteRequest) (*model.Quote, error) {
	var bad []string
	if req.Quantity < assemblyMinQuantity || req.Quantity > assemblyMaxQuantity {
		bad = append(bad, "quantity")
	}

	var batch model.Money
	breakdown := make(map[model.OptionName]model.Money)
	for _, opt := range sortedRates(assemblyPointRates) {
		val, ok := req.Options[opt]
		if !ok {
			bad = append(bad, string(opt))
			continue
		}
		points, err := strconv.Atoi(val)
		if err != nil || points < 0 {
			bad = append(bad, fmt.Sprintf("%s=%s", opt, val))
			continue
		}
		cost := assemblyPointRates[opt] * model.Money(points)
		batch += cost
		breakdown[opt] = cost
	}

	var perUnit model.Money
	for _, opt := range sortedOptions(assemblyFeatureCosts) {
		val, ok := req.Options[opt]
		if !ok {
			bad = append(bad, string(opt))
			continue
		}
		cost, ok := assemblyFeatureCosts[opt][val]
		if !ok {
			bad = append(bad, fmt.Sprintf("%s=%s", opt, val))
			continue
		}
		perUnit += cost
		breakdown[opt] = cost * model.Money(req.Quantity)
	}

	material, ok := req.Options[model.OptBaseMaterial]
	if !ok {
		bad = append(bad, string(model.OptBaseMaterial))
	} else if cost, found := assemblyMaterialCosts[material]; !found {
		bad = append(bad, fmt.Sprintf("%s=%s", model.OptBaseMaterial, material))
	} else {
		batch += cost
		breakdown[model.OptBaseMaterial] = cost
	}

	if len(bad) > 0 {
		return nil, &ValidationError{MissingOrInvalid: bad}
	}

	return &model.Quote{
		Line:        model.LineAssembly,
		Quantity:    req.Quantity,
		PerUnitCost: perUnit,
		BatchCost:   batch,
		TotalPrice:  perUnit*model.Money(req.Quantity) + batch,
		Breakdown:   breakdown,
		ComputedAt:  time.Now().UTC(),
	}, nil
}

func containsInt(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

// sortedOptions returns map keys in a stable order so validation errors list
// options deterministically.
func sortedOptions(m map[model.OptionName]map[string]model.Money) []model.OptionName {
	keys := make([]model.OptionName, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func sortedRates(m map[model.OptionName]model.Money) []model.OptionName {
	keys := make([]model.OptionName, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
