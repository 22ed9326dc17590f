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
	"testing"

	"github.com/valyala/fastrand"
)

func TestNewModelGrid(t *testing.T) {
	if _, err:=NewModelGrid(nil, nil, nil); err==nil {
		t.Errorf("empty grid expected error, got none")
	}
	if _, err:=NewModelGrid([]float64{3000, 4000}, []float64{0.1}, []float64{0.2, 0.3}); err==nil {
		t.Errorf("mismatched axes expected error, got none")
	}
	g, err:=NewModelGrid([]float64{3000, 4000}, []float64{0.5, 0.1}, []float64{0.2, 0.0})
	if err!=nil { t.Fatalf("unexpected error: %s", err.Error()) }
	if g.Len()!=2 { t.Errorf("got length %d want 2", g.Len()) }
	if g.Teff(1)!=4000 { t.Errorf("got Teff %g want 4000", g.Teff(1)) }
}

func TestClassifyExact(t *testing.T) {
	g, err:=NewModelGrid([]float64{3000, 4000, 5000}, []float64{0.5, 0.3, 0.1}, []float64{0.2, 0.1, 0.0})
	if err!=nil { t.Fatalf("unexpected error: %s", err.Error()) }
	for k:=0; k<g.Len(); k++ {
		if got:=g.Classify(g.JHMod[k], g.HKMod[k]); got!=k {
			t.Errorf("exact colors of bucket %d classified as %d", k, got)
		}
	}
}

func TestClassifyTieBreak(t *testing.T) {
	// duplicate grid entries must resolve to the first index in grid order
	g, err:=NewModelGrid([]float64{3000, 3000, 4000}, []float64{0.2, 0.2, 0.9}, []float64{0.1, 0.1, 0.9})
	if err!=nil { t.Fatalf("unexpected error: %s", err.Error()) }
	if got:=g.Classify(0.2, 0.1); got!=0 {
		t.Errorf("tie classified as %d want 0", got)
	}
}

func TestClassifyIsNearest(t *testing.T) {
	teff:=make([]float64, 20)
	jh:=make([]float64, 20)
	hk:=make([]float64, 20)
	rng:=fastrand.RNG{}
	for k:=range teff {
		teff[k]=2000+float64(k)*250
		jh[k]=float64(rng.Uint32n(1000))/1000
		hk[k]=float64(rng.Uint32n(1000))/1000
	}
	g, err:=NewModelGrid(teff, jh, hk)
	if err!=nil { t.Fatalf("unexpected error: %s", err.Error()) }

	for i:=0; i<1000; i++ {
		qjh:=float64(rng.Uint32n(2000))/1000 - 0.5
		qhk:=float64(rng.Uint32n(2000))/1000 - 0.5
		got:=g.Classify(qjh, qhk)
		dGot:=(qjh-jh[got])*(qjh-jh[got]) + (qhk-hk[got])*(qhk-hk[got])
		for k:=0; k<g.Len(); k++ {
			d:=(qjh-jh[k])*(qjh-jh[k]) + (qhk-hk[k])*(qhk-hk[k])
			if d<dGot {
				t.Fatalf("query (%g,%g) classified as %d but %d is closer", qjh, qhk, got, k)
			}
		}
	}
}
