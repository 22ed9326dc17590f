// Copyright (C) 2018 The ExoCTK developers
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.


// Package pal wraps the compiled exotransmit radiative transfer kernel.
// The kernel itself is an opaque numerical library; this package provides
// parameter validation, the native call, and spectrum post-processing.
package pal

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/interp"
)

// Params describes one transmission spectrum computation.
type Params struct {
	EOSFile  string  `json:"eosFile"`  // equation of state table
	TPFile   string  `json:"tpFile"`   // temperature-pressure profile
	G        float64 `json:"g"`        // surface gravity in m/s^2
	RPlanet  float64 `json:"rPlanet"`  // planet radius in m
	RStar    float64 `json:"rStar"`    // stellar radius in m
	PCloud   float64 `json:"pCloud"`   // gray cloud top pressure in Pa, 0 for clear
	Rayleigh float64 `json:"rayleigh"` // Rayleigh scattering augmentation factor
}

func (p *Params) Validate() error {
	if p.EOSFile=="" { return fmt.Errorf("equation of state file not set") }
	if p.TPFile=="" { return fmt.Errorf("temperature-pressure profile file not set") }
	for _, v:=range []struct{
		name string
		val  float64
	}{
		{"g", p.G}, {"rPlanet", p.RPlanet}, {"rStar", p.RStar},
	} {
		if math.IsNaN(v.val) || math.IsInf(v.val, 0) || v.val<=0 {
			return fmt.Errorf("%s=%g must be positive and finite", v.name, v.val)
		}
	}
	if p.PCloud<0 || math.IsNaN(p.PCloud) {
		return fmt.Errorf("pCloud=%g must be zero or positive", p.PCloud)
	}
	if p.Rayleigh<0 || math.IsNaN(p.Rayleigh) {
		return fmt.Errorf("rayleigh=%g must be zero or positive", p.Rayleigh)
	}
	return nil
}

// A transmission spectrum: transit depth in percent per wavelength in m.
// Wavelength and Depth are parallel arrays with Wavelength ascending.
type Spectrum struct {
	Wavelength []float64 `json:"wavelength"`
	Depth      []float64 `json:"depth"`
}

// Resample interpolates the spectrum onto a caller-supplied wavelength grid
// using piecewise linear interpolation. All requested wavelengths must lie
// within the spectrum's range.
func (s *Spectrum) Resample(wavelengths []float64) (*Spectrum, error) {
	if len(s.Wavelength)<2 || len(s.Wavelength)!=len(s.Depth) {
		return nil, fmt.Errorf("spectrum has %d/%d samples, need at least 2 parallel entries", len(s.Wavelength), len(s.Depth))
	}
	if !sort.Float64sAreSorted(s.Wavelength) {
		return nil, fmt.Errorf("spectrum wavelengths are not ascending")
	}

	var pl interp.PiecewiseLinear
	if err:=pl.Fit(s.Wavelength, s.Depth); err!=nil {
		return nil, fmt.Errorf("fitting spectrum: %s", err.Error())
	}

	lo, hi:=s.Wavelength[0], s.Wavelength[len(s.Wavelength)-1]
	out:=&Spectrum{
		Wavelength: append([]float64(nil), wavelengths...),
		Depth:      make([]float64, len(wavelengths)),
	}
	for i, w:=range wavelengths {
		if w<lo || w>hi {
			return nil, fmt.Errorf("wavelength %g outside spectrum range [%g,%g]", w, lo, hi)
		}
		out.Depth[i]=pl.Predict(w)
	}
	return out, nil
}
