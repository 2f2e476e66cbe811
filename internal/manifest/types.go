package manifest

// RulesFile is the canonical rules.yaml.
type RulesFile struct {
	Version    string      `yaml:"version" json:"version"`
	Project    Project     `yaml:"project,omitempty" json:"project,omitempty"`
	Principles []string    `yaml:"principles,omitempty" json:"principles,omitempty"`
	Rules      []Rule      `yaml:"rules" json:"rules"`
	MemoryBank *MemoryBank `yaml:"memory_bank,omitempty" json:"memory_bank,omitempty"`
}

// Project identifies the project the rules belong to.
type Project struct {
	Name        string `yaml:"name,omitempty" json:"name,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// Rule points at one rules-detail document.
type Rule struct {
	ID          string `yaml:"id" json:"id"`
	Description string `yaml:"description" json:"description"`
	File        string `yaml:"file,omitempty" json:"file,omitempty"`
}

// MemoryBank lists the persistent notes assistants should read.
type MemoryBank struct {
	Path  string   `yaml:"path" json:"path"`
	Files []string `yaml:"files,omitempty" json:"files,omitempty"`
}

// PackageManifest holds the parts of package.json the summary compares.
type PackageManifest struct {
	Name                 string            `json:"name,omitempty"`
	Version              string            `json:"version,omitempty"`
	Scripts              map[string]string `json:"scripts,omitempty"`
	Dependencies         map[string]string `json:"dependencies,omitempty"`
	DevDependencies      map[string]string `json:"devDependencies,omitempty"`
	PeerDependencies     map[string]string `json:"peerDependencies,omitempty"`
	OptionalDependencies map[string]string `json:"optionalDependencies,omitempty"`
}

// dependencySections returns the dependency maps in package.json order.
func (p *PackageManifest) dependencySections() []section {
	return []section{
		{"dependencies", p.Dependencies},
		{"devDependencies", p.DevDependencies},
		{"peerDependencies", p.PeerDependencies},
		{"optionalDependencies", p.OptionalDependencies},
	}
}

type section struct {
	name string
	deps map[string]string
}

// lookup finds a dependency in any section.
func (p *PackageManifest) lookup(name string) (string, bool) {
	for _, s := range p.dependencySections() {
		if v, ok := s.deps[name]; ok {
			return v, true
		}
	}
	return "", false
}
