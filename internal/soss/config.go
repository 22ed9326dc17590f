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


// Package soss simulates field star contamination of NIRISS SOSS spectra.
// For every field rotation angle it projects nearby 2MASS sources onto the
// detector, selects those inside the pickoff mirror field of view, and
// composites their spectral traces into a cube of contamination images.
package soss

import (
	"fmt"
	"math"
)

// Detector and field-of-view geometry of the instrument. All pixel
// coordinates refer to the full 2048x2048 detector frame; the simulated
// subarray covers SubW columns by SubH rows of it.
type InstrumentConfig struct {
	PixelScale float64 // arcsec per pixel

	SweetSpotX float64 // target position on the detector in direct images
	SweetSpotY float64

	SubW int // output plane width in pixels
	SubH int // output plane height in pixels

	// Acceptance bounds for projected star positions, extending beyond the
	// imaging array to cover the POM margin where light can still land.
	FOVXMin float64
	FOVXMax float64
	FOVYMin float64
	FOVYMax float64

	PAMin     int // first field rotation angle in degrees, inclusive
	PAMax     int // last field rotation angle in degrees, exclusive
	AngleStep int // degrees per step
}

// Returns the reference NIRISS SOSS geometry
func NIRISSConfig() InstrumentConfig {
	return InstrumentConfig{
		PixelScale: 0.065,
		SweetSpotX: 859,
		SweetSpotY: 107,
		SubW:       256,
		SubH:       2048,
		FOVXMin:    -162,
		FOVXMax:    2047+185,
		FOVYMin:    -154,
		FOVYMax:    2047+174,
		PAMin:      0,
		PAMax:      360,
		AngleStep:  1,
	}
}

// Number of field rotation angles covered, i.e. the half-open
// interval [PAMin, PAMax) sampled every AngleStep degrees
func (c *InstrumentConfig) NumAngles() int {
	return (c.PAMax - c.PAMin + c.AngleStep - 1) / c.AngleStep
}

// Reports whether a projected detector position falls inside the usable
// field of view, POM margin included. Bounds are inclusive on both ends.
func (c *InstrumentConfig) InFOV(x, y float64) bool {
	return x>=c.FOVXMin && x<=c.FOVXMax && y>=c.FOVYMin && y<=c.FOVYMax
}

func (c *InstrumentConfig) Validate() error {
	if c.PixelScale<=0 { return fmt.Errorf("pixel scale %g must be positive", c.PixelScale) }
	if c.SubW<=0 || c.SubH<=0 { return fmt.Errorf("subarray %dx%d must be positive", c.SubW, c.SubH) }
	if c.AngleStep<=0 || c.PAMax<=c.PAMin { return fmt.Errorf("invalid angle range [%d,%d) step %d", c.PAMin, c.PAMax, c.AngleStep) }
	return nil
}

// A field star with catalog position, J/H/K photometry and derived colors
type Star struct {
	Index int     // position in the catalog result, stable across angles
	RA    float64 // degrees
	Dec   float64 // degrees
	J     float64
	H     float64
	K     float64
	JminusH float64
	HminusK float64
	TeffIdx int // model grid bucket from color classification
}

func (s *Star) validate() error {
	for _, v:=range []float64{s.RA, s.Dec, s.J, s.H, s.K} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("star %d: non-finite catalog entry", s.Index)
		}
	}
	return nil
}

// The target's fixed detector pixel position plus its sky position and
// J magnitude: the geometric reference point for all coordinate transforms.
type SweetSpot struct {
	X    float64 // detector pixels
	Y    float64
	RA   float64 // degrees
	Dec  float64
	Jmag float64
}

// A synthetic binary companion injected next to the target:
// offsets in arcsec and J/H/K magnitudes.
type Companion struct {
	DeltaRA  float64 `json:"deltaRA"`
	DeltaDec float64 `json:"deltaDec"`
	J        float64 `json:"j"`
	H        float64 `json:"h"`
	K        float64 `json:"k"`
}
