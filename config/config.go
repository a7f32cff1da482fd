/*
 * config.go, part of goXtal.
 *
 *
 * Copyright 2024 The goXtal developers
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

// Package config holds the numerical tolerances and search bounds used
// across goXtal. Nothing in the library hard-codes these values: every
// search takes a *Tolerances (or reads the fields it needs from one), and
// Default returns the values we have found to work for most structures.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tolerances collects the thresholds used when comparing points, merging
// orbits and accepting subgroup/supergroup solutions.
type Tolerances struct {
	// EquivTol is the fractional-coordinate distance under which two
	// points are considered the same.
	EquivTol float64 `yaml:"equiv_tol"`
	// MergeTol is the Cartesian distance (A) under which two images of a
	// site are merged into a more special Wyckoff position.
	MergeTol float64 `yaml:"merge_tol"`
	// DTol is the largest atomic displacement (A) accepted between a
	// low-symmetry structure and its high-symmetry parent.
	DTol float64 `yaml:"d_tol"`
	// RMSTol is the RMS displacement (A) under which two structures match.
	RMSTol float64 `yaml:"rms_tol"`
	// LengthTol (A) and AngleTol (degrees) are used in lattice matching.
	LengthTol float64 `yaml:"length_tol"`
	AngleTol  float64 `yaml:"angle_tol"`

	Bounds Bounds `yaml:"bounds"`
}

// Bounds caps the combinatorial searches. A zero field means "use the default".
type Bounds struct {
	MaxSolutions int `yaml:"max_solutions"`
	MaxPerG      int `yaml:"max_per_G"`
	MaxLayer     int `yaml:"max_layer"`
	MaxDet       int `yaml:"max_det"`
}

// Default returns the library defaults.
func Default() *Tolerances {
	return &Tolerances{
		EquivTol:  1e-3,
		MergeTol:  0.1,
		DTol:      1.0,
		RMSTol:    1e-3,
		LengthTol: 0.3,
		AngleTol:  10,
		Bounds: Bounds{
			MaxSolutions: 20,
			MaxPerG:      100,
			MaxLayer:     5,
			MaxDet:       2,
		},
	}
}

// Copy returns an independent copy of T.
func (T *Tolerances) Copy() *Tolerances {
	r := *T
	return &r
}

// Fill replaces every non-positive field in T with its default value.
func (T *Tolerances) Fill() *Tolerances {
	d := Default()
	fl := func(v *float64, def float64) {
		if *v <= 0 {
			*v = def
		}
	}
	in := func(v *int, def int) {
		if *v <= 0 {
			*v = def
		}
	}
	fl(&T.EquivTol, d.EquivTol)
	fl(&T.MergeTol, d.MergeTol)
	fl(&T.DTol, d.DTol)
	fl(&T.RMSTol, d.RMSTol)
	fl(&T.LengthTol, d.LengthTol)
	fl(&T.AngleTol, d.AngleTol)
	in(&T.Bounds.MaxSolutions, d.Bounds.MaxSolutions)
	in(&T.Bounds.MaxPerG, d.Bounds.MaxPerG)
	in(&T.Bounds.MaxLayer, d.Bounds.MaxLayer)
	in(&T.Bounds.MaxDet, d.Bounds.MaxDet)
	return T
}

// Validate returns an error if some value makes no sense.
func (T *Tolerances) Validate() error {
	if T.EquivTol > 0.5 {
		return fmt.Errorf("goXtal/config: equiv_tol %.3f is larger than half a cell", T.EquivTol)
	}
	if T.AngleTol >= 90 {
		return fmt.Errorf("goXtal/config: angle_tol %.1f must be below 90 degrees", T.AngleTol)
	}
	if T.Bounds.MaxDet > 8 {
		return fmt.Errorf("goXtal/config: max_det %d would make the lattice search explode", T.Bounds.MaxDet)
	}
	return nil
}

// Parse reads a YAML document and overlays it on the defaults. Fields
// absent from the document keep their default values.
func Parse(data []byte) (*Tolerances, error) {
	T := Default()
	if err := yaml.Unmarshal(data, T); err != nil {
		return nil, fmt.Errorf("goXtal/config: can't parse configuration: %w", err)
	}
	T.Fill()
	if err := T.Validate(); err != nil {
		return nil, err
	}
	return T, nil
}

// Load reads the YAML configuration file at path.
func Load(path string) (*Tolerances, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("goXtal/config: can't read %s: %w", path, err)
	}
	return Parse(data)
}

// Marshal returns the YAML representation of T.
func (T *Tolerances) Marshal() ([]byte, error) {
	return yaml.Marshal(T)
}
