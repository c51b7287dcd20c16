package catalog

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed data/catalog.yaml
var seedYAML []byte

// Data is the full static platform dataset.
type Data struct {
	ListingCategories  []string     `yaml:"listingCategories"`
	Listings           []Listing    `yaml:"listings"`
	SupplierCategories []string     `yaml:"supplierCategories"`
	Suppliers          []Supplier   `yaml:"suppliers"`
	Campaigns          []Campaign   `yaml:"campaigns"`
	ImpactStats        []ImpactStat `yaml:"impactStats"`
	DonationOptions    []int        `yaml:"donationOptions"`
	Dashboard          Dashboard    `yaml:"dashboard"`
	Carbon             Carbon       `yaml:"carbon"`
	Impact             Impact       `yaml:"impact"`
	Analytics          Analytics    `yaml:"analytics"`
	Training           Training     `yaml:"training"`
	Reports            Reports      `yaml:"reports"`
	Profile            Profile      `yaml:"profile"`
	Overview           Overview     `yaml:"overview"`
}

// Parse decodes a catalog document.
func Parse(raw []byte) (Data, error) {
	var data Data
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return Data{}, fmt.Errorf("decode catalog: %w", err)
	}
	return data, nil
}

// Seed returns the dataset bundled with the binary. The embedded document is
// validated by tests, so a decode failure here is a build defect.
func Seed() Data {
	data, err := Parse(seedYAML)
	if err != nil {
		panic(err)
	}
	return data
}
