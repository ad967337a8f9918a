package config

import (
	// 外部依赖
	"os"

	yaml "gopkg.in/yaml.v2"
)

// DynamicConfig holds tunables that may be edited without rebuilding;
// loaded from a yaml file next to the deployment.
type DynamicConfig struct {
	Import  Import  `yaml:"import"`
	PubChem PubChem `yaml:"pubchem"`
}

type Import struct {
	// MaxRows caps a single CSV commit; 0 means unlimited.
	MaxRows int `yaml:"max_rows"`
}

type PubChem struct {
	RetryCount int `yaml:"retry_count"`
	// CacheTTL in seconds for redis-cached compound lookups.
	CacheTTL int `yaml:"cache_ttl"`
}

func defaultDynamic() *DynamicConfig {
	return &DynamicConfig{
		Import:  Import{MaxRows: 10000},
		PubChem: PubChem{RetryCount: 2, CacheTTL: 86400},
	}
}

// LoadDynamic reads the yaml file at path into the global config.
// An empty path keeps the defaults.
func LoadDynamic(path string) error {
	dyn := defaultDynamic()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if err := yaml.Unmarshal(raw, dyn); err != nil {
			return err
		}
	}
	config.dynamic = dyn
	return nil
}

func (g *GlobalConfig) Dynamic() *DynamicConfig {
	if g.dynamic == nil {
		g.dynamic = defaultDynamic()
	}
	return g.dynamic
}
