package sched

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/permsample/pkg/errors"
)

// Job is one job of a single-machine scheduling instance.
type Job struct {
	P int `toml:"p"` // processing time, at least 1
	W int `toml:"w"` // tardiness weight, non-negative
	D int `toml:"d"` // due date
}

// Instance is a single-machine scheduling instance.
//
// Setups, if present, is an n×n matrix: Setups[i][j] is the setup time of
// job j when it directly follows job i, and Setups[j][j] is the setup time
// of job j when it is scheduled first.
type Instance struct {
	Name   string  `toml:"name,omitempty"`
	Jobs   []Job   `toml:"jobs"`
	Setups [][]int `toml:"setups,omitempty"`
}

// Len returns the number of jobs.
func (inst *Instance) Len() int {
	return len(inst.Jobs)
}

// HasSetups reports whether the instance has sequence-dependent setups.
func (inst *Instance) HasSetups() bool {
	return len(inst.Setups) > 0
}

// Validate checks the instance for structural errors. It returns an
// INVALID_INSTANCE error describing the first problem found.
func (inst *Instance) Validate() error {
	if len(inst.Jobs) == 0 {
		return errors.New(errors.ErrCodeInvalidInstance, "instance has no jobs")
	}
	for i, j := range inst.Jobs {
		if j.P < 1 {
			return errors.New(errors.ErrCodeInvalidInstance, "job %d: processing time must be at least 1, got %d", i, j.P)
		}
		if j.W < 0 {
			return errors.New(errors.ErrCodeInvalidInstance, "job %d: weight must be non-negative, got %d", i, j.W)
		}
	}
	if !inst.HasSetups() {
		return nil
	}
	n := len(inst.Jobs)
	if len(inst.Setups) != n {
		return errors.New(errors.ErrCodeInvalidInstance, "setups must have %d rows, got %d", n, len(inst.Setups))
	}
	for i, row := range inst.Setups {
		if len(row) != n {
			return errors.New(errors.ErrCodeInvalidInstance, "setups row %d must have %d entries, got %d", i, n, len(row))
		}
		for j, s := range row {
			if s < 0 {
				return errors.New(errors.ErrCodeInvalidInstance, "setup [%d][%d] must be non-negative, got %d", i, j, s)
			}
		}
	}
	return nil
}

// Load decodes and validates a TOML instance from r. Unknown keys are
// rejected.
func Load(r io.Reader) (*Instance, error) {
	var inst Instance
	md, err := toml.NewDecoder(r).Decode(&inst)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInstance, err, "decode instance")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidInstance, "unknown keys: %s", strings.Join(keys, ", "))
	}
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return &inst, nil
}

// LoadFile reads an instance from a TOML file.
func LoadFile(path string) (*Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "instance file %s", path)
		}
		return nil, err
	}
	defer f.Close()

	inst, err := Load(f)
	if err != nil {
		return nil, err
	}
	if inst.Name == "" {
		inst.Name = strings.TrimSuffix(filepath.Base(path), ".toml")
	}
	return inst, nil
}

// Encode writes inst as TOML.
func (inst *Instance) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(inst)
}

// Bytes returns the TOML encoding of inst. Equal instances encode to equal
// bytes, which makes the encoding suitable for content hashing.
func (inst *Instance) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := inst.Encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
