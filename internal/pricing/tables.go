package pricing

import "github.com/glonix/backend/internal/model"

// Cost tables are immutable configuration: option value → incremental cost,
// or paise-per-point rate for the point-based assembly options. They are
// never mutated at runtime; price changes ship as a config change.

// fabricationCosts: every fabrication option contributes to the per-unit
// cost. Values in paise.
var fabricationCosts = map[model.OptionName]map[string]model.Money{
	model.OptLayers: {
		"2": model.Rupees(1500),
		"4": model.Rupees(2000),
		"6": model.Rupees(2600),
	},
	model.OptThickness: {
		"0.8": model.Rupees(200),
		"1.2": model.Rupees(250),
		"1.6": model.Rupees(300),
		"2.0": model.Rupees(400),
	},
	model.OptSoldermask: {
		"Green":  0,
		"Purple": model.Rupees(300),
		"Red":    model.Rupees(300),
		"Yellow": model.Rupees(300),
		"Blue":   model.Rupees(300),
		"Black":  model.Rupees(300),
	},
	model.OptSurfaceFinish: {
		"HASL":          0,
		"LeadFreeHASL":  model.Rupees(200),
		"ENIG":          model.Rupees(500),
	},
	model.OptViaCovering: {
		"Tented":   0,
		"Untented": model.Rupees(100),
	},
}

// fabricationQuantities is the closed set of batch sizes the fab line runs.
var fabricationQuantities = []int{5, 10, 20, 50, 100}

// assemblyPointRates: paise per solder point. The weighted point sum is a
// batch-level charge — it does not scale with quantity. That asymmetry
// mirrors the production cost model (placement is programmed once per
// batch) and is covered by tests.
var assemblyPointRates = map[model.OptionName]model.Money{
	model.OptSMDPoints: 20, // ₹0.20 per point
	model.OptTHPoints:  50, // ₹0.50 per point
	model.OptBGAPoints: 80, // ₹0.80 per point
}

// assemblyFeatureCosts: per-unit surcharges, multiplied by quantity.
var assemblyFeatureCosts = map[model.OptionName]map[string]model.Money{
	model.OptConformalCoating: {
		"Yes": model.Rupees(500),
		"No":  0,
	},
	model.OptStencilSide: {
		"TOP":    0,
		"BOTTOM": 0,
		"BOTH":   model.Rupees(200),
	},
}

// assemblyMaterialCosts: flat batch-level charge for the base material.
var assemblyMaterialCosts = map[string]model.Money{
	"FR4": model.Rupees(4000),
}

const (
	assemblyMinQuantity = 1
	assemblyMaxQuantity = 1000
)
