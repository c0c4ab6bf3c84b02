package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/openshelf/shelfd/internal/domain"
)

// Genesis is the deploy-time governance seed. Pinning the super admin in a
// file shipped with the deployment (instead of first-caller-wins) means a
// compromised bootstrap window cannot capture the catalog.
type Genesis struct {
	SuperAdmin domain.Principal
	Admins     []domain.Principal
	Curators   []domain.Principal
}

// genesisFile is the raw YAML shape; principals are hex strings on disk.
type genesisFile struct {
	SuperAdmin string   `yaml:"super_admin"`
	Admins     []string `yaml:"admins"`
	Curators   []string `yaml:"curators"`
}

// LoadGenesis reads and validates the genesis file.
func LoadGenesis(path string) (*Genesis, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read genesis file: %w", err)
	}

	var raw genesisFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse genesis file: %w", err)
	}

	g := &Genesis{}
	g.SuperAdmin, err = domain.ParsePrincipal(raw.SuperAdmin)
	if err != nil {
		return nil, fmt.Errorf("genesis super_admin: %w", err)
	}
	if g.SuperAdmin.IsZero() {
		return nil, fmt.Errorf("genesis file %s: super_admin must not be the zero principal", path)
	}

	if len(raw.Admins) > domain.MaxAdmins {
		return nil, fmt.Errorf("genesis file %s: at most %d admins allowed, got %d", path, domain.MaxAdmins, len(raw.Admins))
	}
	for i, s := range raw.Admins {
		p, err := domain.ParsePrincipal(s)
		if err != nil {
			return nil, fmt.Errorf("genesis admins[%d]: %w", i, err)
		}
		if p == g.SuperAdmin {
			return nil, fmt.Errorf("genesis file %s: super_admin must not also be listed as an admin", path)
		}
		g.Admins = append(g.Admins, p)
	}

	if len(raw.Curators) > domain.MaxCurators {
		return nil, fmt.Errorf("genesis file %s: at most %d curators allowed, got %d", path, domain.MaxCurators, len(raw.Curators))
	}
	for i, s := range raw.Curators {
		p, err := domain.ParsePrincipal(s)
		if err != nil {
			return nil, fmt.Errorf("genesis curators[%d]: %w", i, err)
		}
		g.Curators = append(g.Curators, p)
	}

	return g, nil
}
