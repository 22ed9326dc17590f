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
	"math"
	"testing"
)

func TestToSexagesimal(t *testing.T) {
	tests:=[]struct{
		value        float64
		isRA         bool
		roundSeconds bool
		want         string
	}{
		{217.5,  true,  true, "14:30:0"},
		{-11.9,  false, true, "-11:54:0"},
		{0,      false, true, "0:0:0"},
		{150,    true,  true, "10:0:0"},
	}
	for _, tt:=range tests {
		got:=ToSexagesimal(tt.value, tt.isRA, tt.roundSeconds)
		if got!=tt.want {
			t.Errorf("ToSexagesimal(%g, %v, %v) got %q want %q", tt.value, tt.isRA, tt.roundSeconds, got, tt.want)
		}
	}
}

func TestParseSexagesimal(t *testing.T) {
	got, err:=ParseSexagesimal("+10:21:34.2", true)
	if err!=nil { t.Fatalf("unexpected error: %s", err.Error()) }
	want:=(10.0 + 21.0/60 + 34.2/3600)*15
	if math.Abs(got-want)>1e-9 {
		t.Errorf("got %.12f want %.12f", got, want)
	}

	// sign must apply to the whole value, not just the degrees field
	got, err=ParseSexagesimal("-00:30:00", false)
	if err!=nil { t.Fatalf("unexpected error: %s", err.Error()) }
	if math.Abs(got-(-0.5))>1e-9 {
		t.Errorf("got %.12f want -0.5", got)
	}

	for _, bad:=range []string{"10:21", "ab:00:00", "1:2:3:4", ""} {
		if _, err:=ParseSexagesimal(bad, true); err==nil {
			t.Errorf("ParseSexagesimal(%q) expected error, got none", bad)
		}
	}
}

func TestSexagesimalRoundTrip(t *testing.T) {
	values:=[]struct{
		deg  float64
		isRA bool
	}{
		{150.4625,    true},
		{-11.9008333, false},
		{359.999,     true},
		{89.5,        false},
	}
	for _, v:=range values {
		s:=ToSexagesimal(v.deg, v.isRA, false)
		got, err:=ParseSexagesimal(s, v.isRA)
		if err!=nil {
			t.Errorf("round trip of %g via %q: %s", v.deg, s, err.Error())
			continue
		}
		if math.Abs(got-v.deg)>1e-6 {
			t.Errorf("round trip of %g via %q got %.9f", v.deg, s, got)
		}
	}
}

func TestProjectOffset(t *testing.T) {
	scale:=0.065
	ss:=SweetSpot{X: 859, Y: 107, RA: 150, Dec: 0}

	// star at the sweet spot position projects onto the origin at any rotation
	for _, rot:=range []float64{0, 45, 180, 359} {
		dx, dy:=ProjectOffset(ss.RA, ss.Dec, ss, rot, scale)
		if math.Abs(dx)>1e-9 || math.Abs(dy)>1e-9 {
			t.Errorf("rotation %g: got offset (%g,%g) want origin", rot, dx, dy)
		}
	}

	// one pixel north, no rotation
	dx, dy:=ProjectOffset(ss.RA, ss.Dec+scale/3600, ss, 0, scale)
	if math.Abs(dx)>1e-9 || math.Abs(dy-1)>1e-9 {
		t.Errorf("north offset got (%g,%g) want (0,1)", dx, dy)
	}

	// the same star after a 90 degree counter-clockwise rotation
	dx, dy=ProjectOffset(ss.RA, ss.Dec+scale/3600, ss, 90, scale)
	if math.Abs(dx+1)>1e-9 || math.Abs(dy)>1e-9 {
		t.Errorf("rotated north offset got (%g,%g) want (-1,0)", dx, dy)
	}

	// RA offsets shrink with cos(Dec) and flip sign
	ss60:=SweetSpot{RA: 150, Dec: 60}
	dx, dy=ProjectOffset(ss60.RA+2*scale/3600, ss60.Dec, ss60, 0, scale)
	if math.Abs(dx+1)>1e-9 || math.Abs(dy)>1e-9 {
		t.Errorf("RA offset at Dec 60 got (%g,%g) want (-1,0)", dx, dy)
	}
}

func TestProjectToPixels(t *testing.T) {
	ss:=SweetSpot{X: 859, Y: 107, RA: 150, Dec: 0}
	x, y:=ProjectToPixels(ss.RA, ss.Dec, ss, 123, 0.065)
	if math.Abs(x-ss.X)>1e-9 || math.Abs(y-ss.Y)>1e-9 {
		t.Errorf("got (%g,%g) want sweet spot (%g,%g)", x, y, ss.X, ss.Y)
	}
}
