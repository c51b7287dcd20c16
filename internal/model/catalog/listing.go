package catalog

// Listing is a marketplace offer for surplus material.
type Listing struct {
	ID             int            `json:"id" yaml:"id"`
	Title          string         `json:"title" yaml:"title"`
	Category       string         `json:"category" yaml:"category"`
	Quantity       string         `json:"quantity" yaml:"quantity"`
	Location       string         `json:"location" yaml:"location"`
	Distance       string         `json:"distance" yaml:"distance"`
	Price          string         `json:"price" yaml:"price"`
	Company        string         `json:"company" yaml:"company"`
	Description    string         `json:"description" yaml:"description"`
	Sustainability ListingSavings `json:"sustainability" yaml:"sustainability"`
	Urgent         bool           `json:"urgent" yaml:"urgent"`
}

// ListingSavings estimates what reusing a listing saves.
type ListingSavings struct {
	CO2Save   string `json:"co2Save" yaml:"co2Save"`
	WaterSave string `json:"waterSave" yaml:"waterSave"`
}

// Supplier is a vetted sustainable vendor.
type Supplier struct {
	ID             int             `json:"id" yaml:"id"`
	Name           string          `json:"name" yaml:"name"`
	Category       string          `json:"category" yaml:"category"`
	Location       string          `json:"location" yaml:"location"`
	Rating         float64         `json:"rating" yaml:"rating"`
	Certifications []string        `json:"certifications" yaml:"certifications"`
	Specialties    []string        `json:"specialties" yaml:"specialties"`
	Sustainability SupplierMetrics `json:"sustainability" yaml:"sustainability"`
	Description    string          `json:"description" yaml:"description"`
	Verified       bool            `json:"verified" yaml:"verified"`
}

// SupplierMetrics are the supplier's self-reported reductions.
type SupplierMetrics struct {
	CO2Reduction    string `json:"co2Reduction" yaml:"co2Reduction"`
	WasteReduction  string `json:"wasteReduction" yaml:"wasteReduction"`
	RenewableEnergy string `json:"renewableEnergy" yaml:"renewableEnergy"`
}

// Filter narrows listings or suppliers. Zero value matches everything.
type Filter struct {
	Search   string
	Category string
}
