package catalog

// Agent describes one purchasable analysis capability. The catalog is
// immutable after construction; pricing is fixed for the life of the process.
type Agent struct {
	ID               string   `json:"id" yaml:"id"`
	Name             string   `json:"name" yaml:"name"`
	Description      string   `json:"description" yaml:"description"`
	Icon             string   `json:"icon" yaml:"icon"`
	Category         string   `json:"category" yaml:"category"`
	PriceSTX         float64  `json:"priceSTX" yaml:"priceSTX"`
	PriceMicroSTX    string   `json:"priceMicroSTX" yaml:"-"`
	Token            string   `json:"token" yaml:"token"`
	InputType        string   `json:"inputType" yaml:"inputType"`
	InputLabel       string   `json:"inputLabel" yaml:"inputLabel"`
	InputPlaceholder string   `json:"inputPlaceholder" yaml:"inputPlaceholder"`
	SampleInput      string   `json:"sampleInput" yaml:"sampleInput"`
	Tags             []string `json:"tags" yaml:"tags"`
	EstimatedTime    string   `json:"estimatedTime" yaml:"estimatedTime"`
}
