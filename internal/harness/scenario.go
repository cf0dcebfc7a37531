package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/ambercart/internal/order"
)

// Scenario is a cart scenario: an optional page, a flow of operations and
// assertions on the final state.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Page is inline storefront HTML. PageFile is a path to one, relative
	// to the scenario file. At most one may be set.
	Page     string `yaml:"page,omitempty"`
	PageFile string `yaml:"page_file,omitempty"`

	// Config is an optional CUE config path, relative to the scenario file.
	Config string `yaml:"config,omitempty"`

	// Locale and Currency override the config's formatting.
	Locale   *string `yaml:"locale,omitempty"`
	Currency *string `yaml:"currency,omitempty"`

	// Seed is raw data placed under the cart key before the store opens.
	Seed *string `yaml:"seed,omitempty"`

	Flow []FlowStep `yaml:"flow"`

	Assertions []Assertion `yaml:"assertions"`
}

// FlowStep is one cart operation.
type FlowStep struct {
	// Op is one of the Op* constants.
	Op string `yaml:"op"`

	// Trigger selects the page's add control by index (op add).
	Trigger *int `yaml:"trigger,omitempty"`

	// Name, ID and Price describe a product directly (op add).
	Name  string `yaml:"name,omitempty"`
	ID    string `yaml:"id,omitempty"`
	Price string `yaml:"price,omitempty"`

	// Qty is the number of units to add. Defaults to 1.
	Qty *int `yaml:"qty,omitempty"`

	// Item keys inc, dec and remove.
	Item string `yaml:"item,omitempty"`

	// Channel and Customer drive checkout.
	Channel  string         `yaml:"channel,omitempty"`
	Customer order.Customer `yaml:"customer,omitempty"`

	// Data is the raw value written by corrupt.
	Data string `yaml:"data,omitempty"`

	// Expect validates the step outcome. Without it any error fails the
	// scenario.
	Expect *ExpectClause `yaml:"expect,omitempty"`
}

// ExpectClause specifies the expected outcome of a step.
type ExpectClause struct {
	// Outcome is "ok", "noop" or "error".
	Outcome string `yaml:"outcome"`

	// Error is a substring of the expected error message.
	Error string `yaml:"error,omitempty"`

	// Notice is the exact expected notice text.
	Notice string `yaml:"notice,omitempty"`
}

// Assertion validates the final state.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Count is used by item_count and orders.
	Count *int `yaml:"count,omitempty"`

	// Total is a decimal amount (total).
	Total string `yaml:"total,omitempty"`

	// ID, Qty and Name select and check a line (line).
	ID   string `yaml:"id,omitempty"`
	Qty  int    `yaml:"qty,omitempty"`
	Name string `yaml:"name,omitempty"`

	// IDs is the expected line order (line_order).
	IDs []string `yaml:"ids,omitempty"`

	// Text is a substring of the last transcript (transcript_contains).
	Text string `yaml:"text,omitempty"`
}

// Flow step operations.
const (
	OpAdd      = "add"
	OpInc      = "inc"
	OpDec      = "dec"
	OpRemove   = "remove"
	OpClear    = "clear"
	OpCheckout = "checkout"
	OpCorrupt  = "corrupt"
	OpReload   = "reload"
)

// Assertion type constants.
const (
	AssertItemCount          = "item_count"
	AssertTotal              = "total"
	AssertLine               = "line"
	AssertLineOrder          = "line_order"
	AssertEmpty              = "empty"
	AssertOrders             = "orders"
	AssertTranscriptContains = "transcript_contains"
)

// LoadScenario reads and parses a scenario YAML file. Relative page and
// config paths are resolved against the file's directory and the page is
// read inline.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	scenario, err := decodeScenario(data)
	if err != nil {
		return nil, err
	}

	base := filepath.Dir(path)
	if scenario.PageFile != "" {
		pagePath := scenario.PageFile
		if !filepath.IsAbs(pagePath) {
			pagePath = filepath.Join(base, pagePath)
		}
		page, err := os.ReadFile(pagePath)
		if err != nil {
			return nil, fmt.Errorf("invalid scenario: page file: %w", err)
		}
		scenario.Page = string(page)
		scenario.PageFile = ""
	}
	if scenario.Config != "" && !filepath.IsAbs(scenario.Config) {
		scenario.Config = filepath.Join(base, scenario.Config)
	}

	return scenario, nil
}

// ParseScenario parses scenario YAML. A page_file is not resolved.
func ParseScenario(data []byte) (*Scenario, error) {
	return decodeScenario(data)
}

func decodeScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if s.Page != "" && s.PageFile != "" {
		return fmt.Errorf("page and page_file are mutually exclusive")
	}
	if len(s.Flow) == 0 {
		return fmt.Errorf("flow list is required and must be non-empty")
	}
	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	hasPage := s.Page != "" || s.PageFile != ""
	for i, step := range s.Flow {
		if err := validateStep(i, &step, hasPage); err != nil {
			return err
		}
	}
	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}
	return nil
}

func validateStep(index int, step *FlowStep, hasPage bool) error {
	switch step.Op {
	case OpAdd:
		if step.Trigger != nil {
			if !hasPage {
				return fmt.Errorf("flow[%d]: trigger requires a page", index)
			}
			if *step.Trigger < 0 {
				return fmt.Errorf("flow[%d]: trigger must be non-negative", index)
			}
		}
	case OpInc, OpDec, OpRemove:
		if step.Item == "" {
			return fmt.Errorf("flow[%d]: item is required for %s", index, step.Op)
		}
	case OpCheckout:
		if step.Channel == "" {
			return fmt.Errorf("flow[%d]: channel is required for checkout", index)
		}
	case OpClear, OpCorrupt, OpReload:
	case "":
		return fmt.Errorf("flow[%d]: op is required", index)
	default:
		return fmt.Errorf("flow[%d]: unknown op %q", index, step.Op)
	}

	if step.Expect != nil {
		switch step.Expect.Outcome {
		case OutcomeOK, OutcomeNoop, OutcomeError:
		default:
			return fmt.Errorf("flow[%d].expect: outcome must be ok, noop or error", index)
		}
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	switch a.Type {
	case AssertItemCount, AssertOrders:
		if a.Count == nil {
			return fmt.Errorf("assertions[%d]: count is required for %s", index, a.Type)
		}
	case AssertTotal:
		if a.Total == "" {
			return fmt.Errorf("assertions[%d]: total is required for total", index)
		}
	case AssertLine:
		if a.ID == "" && a.Name == "" {
			return fmt.Errorf("assertions[%d]: id or name is required for line", index)
		}
	case AssertLineOrder:
		if len(a.IDs) == 0 {
			return fmt.Errorf("assertions[%d]: ids list is required for line_order", index)
		}
	case AssertTranscriptContains:
		if a.Text == "" {
			return fmt.Errorf("assertions[%d]: text is required for transcript_contains", index)
		}
	case AssertEmpty:
	case "":
		return fmt.Errorf("assertions[%d]: type is required", index)
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
