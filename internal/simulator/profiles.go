// Package simulator contains the telemetry generators that feed the
// dashboard: synthetic system metrics, a threat detector, a federated
// learning coordinator and a system monitor. None of them touch real
// infrastructure; they exist so the dashboard has live data to show.
package simulator

import (
	_ "embed"
	"fmt"
	"math/rand"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed profiles.yaml
var defaultProfilesYAML []byte

// AttackProfile describes one class of simulated attack traffic.
type AttackProfile struct {
	Name          string   `yaml:"name"`
	ThreatType    string   `yaml:"threat_type"`
	Title         string   `yaml:"title"`
	Description   string   `yaml:"description"`
	Weight        int      `yaml:"weight"`
	SourceSubnets []string `yaml:"source_subnets"`
	MinConfidence float64  `yaml:"min_confidence"`
	MaxConfidence float64  `yaml:"max_confidence"`
}

type profileFile struct {
	Profiles []AttackProfile `yaml:"profiles"`
}

// LoadProfiles reads attack profiles from path, falling back to the
// embedded defaults when path is empty.
func LoadProfiles(path string) ([]AttackProfile, error) {
	data := defaultProfilesYAML
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read profiles file: %w", err)
		}
	}

	var pf profileFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("failed to parse profiles: %w", err)
	}
	if len(pf.Profiles) == 0 {
		return nil, fmt.Errorf("no attack profiles defined")
	}

	for i, p := range pf.Profiles {
		if p.Weight <= 0 {
			pf.Profiles[i].Weight = 1
		}
	}
	return pf.Profiles, nil
}

// pickProfile draws one profile, weighted.
func pickProfile(rng *rand.Rand, profiles []AttackProfile) AttackProfile {
	total := 0
	for _, p := range profiles {
		total += p.Weight
	}
	n := rng.Intn(total)
	for _, p := range profiles {
		n -= p.Weight
		if n < 0 {
			return p
		}
	}
	return profiles[len(profiles)-1]
}

// randomIP picks an address inside one of the profile's subnets. The
// subnets are documentation ranges, good enough for simulated traffic.
func randomIP(rng *rand.Rand, subnets []string) string {
	if len(subnets) == 0 {
		return fmt.Sprintf("10.0.%d.%d", rng.Intn(256), 1+rng.Intn(254))
	}
	subnet := subnets[rng.Intn(len(subnets))]
	var a, b, c, bits int
	if _, err := fmt.Sscanf(subnet, "%d.%d.%d.0/%d", &a, &b, &c, &bits); err != nil {
		return fmt.Sprintf("10.0.%d.%d", rng.Intn(256), 1+rng.Intn(254))
	}
	return fmt.Sprintf("%d.%d.%d.%d", a, b, c, 1+rng.Intn(254))
}
