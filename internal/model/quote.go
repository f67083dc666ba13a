package model

import "time"

// ProductLine identifies a quoted manufacturing line.
type ProductLine string

const (
	LineFabrication ProductLine = "fabrication"
	LineAssembly    ProductLine = "assembly"
)

// OptionName is a configuration dimension of a product line (layers,
// thickness, surface finish, ...). Option names are closed per line and
// validated before any cost-table lookup, so a typo can never silently price
// as zero.
type OptionName string

const (
	// Fabrication options
	OptLayers        OptionName = "layers"
	OptThickness     OptionName = "thickness"
	OptSoldermask    OptionName = "soldermask"
	OptSurfaceFinish OptionName = "surface_finish"
	OptViaCovering   OptionName = "via_covering"

	// Assembly options
	OptSMDPoints        OptionName = "smd_points"
	OptTHPoints         OptionName = "th_points"
	OptBGAPoints        OptionName = "bga_points"
	OptConformalCoating OptionName = "conformal_coating"
	OptStencilSide      OptionName = "stencil_side"
	OptBaseMaterial     OptionName = "base_material"
)

// QuoteRequest is a customer's configuration for one product line.
// Point-count options carry their value as the decimal string of the count
// ("120"); enumerated options carry the table key ("ENIG", "Green", ...).
type QuoteRequest struct {
	Line     ProductLine           `json:"line"`
	Quantity int                   `json:"quantity"`
	Options  map[OptionName]string `json:"options"`
}

// Quote is the result of pricing a QuoteRequest. TotalPrice is a pure
// function of (line, options, quantity) and the cost table; ComputedAt is an
// audit field only and never feeds back into the price.
type Quote struct {
	Line        ProductLine          `json:"line"`
	Quantity    int                  `json:"quantity"`
	PerUnitCost Money                `json:"per_unit_cost"` // quantity-scaled portion
	BatchCost   Money                `json:"batch_cost"`    // quantity-independent portion
	TotalPrice  Money                `json:"total_price"`
	Breakdown   map[OptionName]Money `json:"breakdown"`
	ComputedAt  time.Time            `json:"computed_at"`
}
