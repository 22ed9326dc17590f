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


package soss

import (
	"fmt"
)

// ModelGrid maps an effective temperature axis onto pairs of model color
// indices. The three axes are parallel arrays of equal length; entry k also
// identifies trace template k in the model archive.
type ModelGrid struct {
	TeffMod []float64 // effective temperatures in K
	JHMod   []float64 // model J-H color per temperature
	HKMod   []float64 // model H-K color per temperature
}

// NewModelGrid validates the parallel-array invariant
func NewModelGrid(teff, jh, hk []float64) (*ModelGrid, error) {
	if len(teff)==0 || len(teff)!=len(jh) || len(teff)!=len(hk) {
		return nil, fmt.Errorf("model grid axes must be non-empty parallel arrays, got %d/%d/%d", len(teff), len(jh), len(hk))
	}
	return &ModelGrid{TeffMod: teff, JHMod: jh, HKMod: hk}, nil
}

func (g *ModelGrid) Len() int { return len(g.TeffMod) }

// Classify returns the grid index whose model colors are nearest to the
// observed (J-H, H-K) pair, by squared Euclidean distance in color space.
// Ties resolve to the first minimal index in grid order, so repeated calls
// with identical inputs are deterministic. Color does not depend on field
// rotation, so this runs once per star, not once per angle.
func (g *ModelGrid) Classify(jMinusH, hMinusK float64) int {
	best, bestDist:=0, (jMinusH-g.JHMod[0])*(jMinusH-g.JHMod[0]) + (hMinusK-g.HKMod[0])*(hMinusK-g.HKMod[0])
	for k:=1; k<len(g.TeffMod); k++ {
		d:=(jMinusH-g.JHMod[k])*(jMinusH-g.JHMod[k]) + (hMinusK-g.HKMod[k])*(hMinusK-g.HKMod[k])
		if d<bestDist {
			best, bestDist = k, d
		}
	}
	return best
}

// Teff returns the effective temperature at grid index k
func (g *ModelGrid) Teff(k int) float64 { return g.TeffMod[k] }
