package catalog

import (
	"fmt"
	"os"
	"regexp"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"github.com/appdeploykit/compat-framework/compat"
)

// catalogFile is the YAML document shape for externally defined catalogs.
// YAML catalogs cover rule sets that need no custom rewrite logic; operations
// requiring Custom or Synthesize steps stay in the built-in Go catalog.
type catalogFile struct {
	Operations []operationSpec `yaml:"operations"`
}

type operationSpec struct {
	Name        string          `yaml:"name"`
	Replacement definitionSpec  `yaml:"replacement"`
	Accepts     []string        `yaml:"accepts"`
	Steps       []stepSpec      `yaml:"steps"`
	ContinueOn  *continueOnSpec `yaml:"continueOnError"`
	PassThru    string          `yaml:"passThru"`
	Pipeline    string          `yaml:"pipeline"`
}

type definitionSpec struct {
	ID          string `yaml:"id"`
	Version     string `yaml:"version"`
	Description string `yaml:"description"`
}

type continueOnSpec struct {
	Param   string `yaml:"param"`
	Default bool   `yaml:"default"`
}

// stepSpec holds exactly one of its step fields.
type stepSpec struct {
	Rename            *fromToSpec         `yaml:"rename"`
	Invert            *fromToSpec         `yaml:"invert"`
	Split             *splitSpec          `yaml:"split"`
	Map               *mapSpec            `yaml:"map"`
	Drop              *dropSpec           `yaml:"drop"`
	RequireFile       *paramSpec          `yaml:"requireFile"`
	RequirePattern    *requirePatternSpec `yaml:"requirePattern"`
	MutuallyExclusive *pairSpec           `yaml:"mutuallyExclusive"`
}

type fromToSpec struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

type splitSpec struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
	Sep  string `yaml:"sep"`
}

type mapSpec struct {
	From   string            `yaml:"from"`
	To     string            `yaml:"to"`
	Values map[string]string `yaml:"values"`
}

type dropSpec struct {
	Param  string `yaml:"param"`
	Reason string `yaml:"reason"`
}

type paramSpec struct {
	Param string `yaml:"param"`
}

type requirePatternSpec struct {
	Param   string `yaml:"param"`
	Pattern string `yaml:"pattern"`
}

type pairSpec struct {
	A string `yaml:"a"`
	B string `yaml:"b"`
}

// Load reads a YAML catalog file and returns its operations.
func Load(path string) ([]*compat.Operation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}

	return Parse(data)
}

// Parse decodes a YAML catalog document into legacy operations.
func Parse(data []byte) ([]*compat.Operation, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}

	ops := make([]*compat.Operation, 0, len(file.Operations))
	for _, spec := range file.Operations {
		op, err := spec.build()
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}

	return ops, nil
}

func (s operationSpec) build() (*compat.Operation, error) {
	if s.Name == "" {
		return nil, fmt.Errorf("catalog operation is missing a name")
	}
	if s.Replacement.ID == "" {
		return nil, fmt.Errorf("%s: replacement id is required", s.Name)
	}

	version, err := semver.NewVersion(s.Replacement.Version)
	if err != nil {
		return nil, fmt.Errorf("%s: replacement version %q: %w", s.Name, s.Replacement.Version, err)
	}

	steps := make([]compat.Step, 0, len(s.Steps))
	for i, ss := range s.Steps {
		step, err := ss.build()
		if err != nil {
			return nil, fmt.Errorf("%s: step %d: %w", s.Name, i, err)
		}
		steps = append(steps, step)
	}

	opts := make([]compat.OperationOption, 0, 3)
	if s.ContinueOn != nil {
		opts = append(opts, compat.WithContinueOnError(s.ContinueOn.Param, s.ContinueOn.Default))
	}
	if s.PassThru != "" {
		opts = append(opts, compat.WithPassThru(s.PassThru))
	}
	if s.Pipeline != "" {
		opts = append(opts, compat.WithPipeline(s.Pipeline))
	}

	def := compat.Definition{
		ID:          s.Replacement.ID,
		Version:     version,
		Description: s.Replacement.Description,
	}

	return compat.NewOperation(s.Name, def, s.Accepts, steps, opts...), nil
}

func (s stepSpec) build() (compat.Step, error) {
	switch {
	case s.Rename != nil:
		return compat.Rename(s.Rename.From, s.Rename.To), nil
	case s.Invert != nil:
		return compat.Invert(s.Invert.From, s.Invert.To), nil
	case s.Split != nil:
		sep := s.Split.Sep
		if sep == "" {
			sep = ","
		}
		return compat.Split(s.Split.From, s.Split.To, sep), nil
	case s.Map != nil:
		return compat.MapValues(s.Map.From, s.Map.To, s.Map.Values), nil
	case s.Drop != nil:
		return compat.Drop(s.Drop.Param, s.Drop.Reason), nil
	case s.RequireFile != nil:
		return compat.RequireFile(s.RequireFile.Param), nil
	case s.RequirePattern != nil:
		re, err := regexp.Compile(s.RequirePattern.Pattern)
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", s.RequirePattern.Pattern, err)
		}
		return compat.RequirePattern(s.RequirePattern.Param, re), nil
	case s.MutuallyExclusive != nil:
		return compat.MutuallyExclusive(s.MutuallyExclusive.A, s.MutuallyExclusive.B), nil
	default:
		return nil, fmt.Errorf("step does not declare a known rule")
	}
}
