// Package cost estimates the monetary cost of embedding calls from a YAML
// pricing catalog. A built-in catalog ships with the binary; deployments can
// load their own with NewCostCalculatorFromFile.
package cost

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed pricing.yaml
var pricingYAML []byte

// ModelPricing holds the price of a model in USD per million input tokens.
type ModelPricing struct {
	InputPerMillion float64 `yaml:"input_per_million"`
}

type pricingCatalog struct {
	Models map[string]ModelPricing `yaml:"models"`
}

var (
	builtinOnce   sync.Once
	builtinModels map[string]ModelPricing
)

func builtinCatalog() map[string]ModelPricing {
	builtinOnce.Do(func() {
		var catalog pricingCatalog
		if err := yaml.Unmarshal(pricingYAML, &catalog); err != nil {
			// The catalog ships with the binary; failing to parse it is a
			// build defect, not a runtime condition.
			panic(fmt.Sprintf("cost: invalid embedded pricing catalog: %v", err))
		}
		builtinModels = catalog.Models
	})
	return builtinModels
}

// CostCalculator estimates the cost of embedding calls. Models absent from
// the catalog cost zero, which covers local providers.
type CostCalculator struct {
	models map[string]ModelPricing
}

// NewCostCalculator creates a calculator backed by the built-in catalog.
func NewCostCalculator() *CostCalculator {
	return &CostCalculator{models: builtinCatalog()}
}

// NewCostCalculatorFromFile creates a calculator from a YAML catalog on
// disk, for deployments with negotiated pricing.
func NewCostCalculatorFromFile(path string) (*CostCalculator, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pricing catalog: %w", err)
	}

	var catalog pricingCatalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse pricing catalog: %w", err)
	}

	return &CostCalculator{models: catalog.Models}, nil
}

// CalculateEmbeddingCost returns the estimated USD cost of embedding the
// given number of input tokens with the given model.
func (c *CostCalculator) CalculateEmbeddingCost(model string, tokens int) float64 {
	pricing, ok := c.models[model]
	if !ok || tokens <= 0 {
		return 0
	}
	return float64(tokens) / 1_000_000 * pricing.InputPerMillion
}

// PricePerMillion returns the USD price per million input tokens for a
// model, and whether the model is present in the catalog.
func (c *CostCalculator) PricePerMillion(model string) (float64, bool) {
	pricing, ok := c.models[model]
	return pricing.InputPerMillion, ok
}
