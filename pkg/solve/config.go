package solve

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/campusforge/timetabler/pkg/model"
)

var validate = validator.New()

// Config is the resolved run configuration: the problem document's own
// config block, with any CLI override layered on top, validated once more
// before a run starts.
type Config struct {
	WeekName   string
	WeeksTotal int    `validate:"gte=1"`
	Strategy   string `validate:"oneof=dfs bfs ucs astar all"`
	UseMRV     bool
}

// ResolveConfig builds a Config from problem, applying strategyOverride
// (from a --strategy flag) when non-empty, and validates it.
func ResolveConfig(problem *model.Problem, strategyOverride string) (Config, error) {
	cfg := Config{
		WeekName:   problem.WeekName,
		WeeksTotal: problem.WeeksTotal,
		Strategy:   problem.Strategy,
		UseMRV:     problem.UseMRV,
	}
	if strategyOverride != "" {
		cfg.Strategy = strategyOverride
	}
	if err := validate.Struct(cfg); err != nil {
		return Config{}, model.InvariantViolatedError{Entity: "config", Rule: err.Error()}
	}
	return cfg, nil
}

// LoadWithDefaults reads a problem document from path. When defaultsPath is
// non-empty, its YAML config block is layered underneath the document's
// own config block before validation — the document's own values always
// win, defaults only fill in what it omits.
func LoadWithDefaults(path, defaultsPath string) (*model.Problem, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, model.InputMalformedError{Detail: err.Error()}
	}

	if defaultsPath == "" {
		return model.Parse(raw)
	}

	merged, err := mergeConfigDefaults(raw, defaultsPath)
	if err != nil {
		return nil, err
	}
	return model.Parse(merged)
}

func mergeConfigDefaults(document []byte, defaultsPath string) ([]byte, error) {
	var doc map[string]any
	if err := json.Unmarshal(document, &doc); err != nil {
		return nil, model.InputMalformedError{Detail: err.Error()}
	}

	defaultsRaw, err := os.ReadFile(defaultsPath)
	if err != nil {
		return nil, model.InputMalformedError{Detail: err.Error()}
	}
	var defaults map[string]any
	if err := yaml.Unmarshal(defaultsRaw, &defaults); err != nil {
		return nil, model.InputMalformedError{Detail: fmt.Sprintf("defaults file: %v", err)}
	}

	config, _ := doc["config"].(map[string]any)
	if config == nil {
		config = map[string]any{}
	}
	for key, value := range defaults {
		if _, present := config[key]; !present {
			config[key] = value
		}
	}
	doc["config"] = config

	return json.Marshal(doc)
}
