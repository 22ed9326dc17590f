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


package stats

import (
	"testing"

	"github.com/valyala/fastrand"
)

func TestNewStats(t *testing.T) {
	s:=NewStats([]float32{3, -1, 4, 2})
	if s.Min!=-1 { t.Errorf("got min %g want -1", s.Min) }
	if s.Max!=4 { t.Errorf("got max %g want 4", s.Max) }
	if s.Mean!=2 { t.Errorf("got mean %g want 2", s.Mean) }
	if s.Sum!=8 { t.Errorf("got sum %g want 8", s.Sum) }
}

func TestNewStatsEmpty(t *testing.T) {
	s:=NewStats(nil)
	if s.Min!=0 || s.Max!=0 || s.Mean!=0 || s.Sum!=0 {
		t.Errorf("empty input got %v want zero stats", s)
	}
}

func TestNewStatsBounds(t *testing.T) {
	rng:=fastrand.RNG{}
	data:=make([]float32, 1000)
	for i:=range data {
		data[i]=float32(rng.Uint32n(10000))/100 - 50
	}
	s:=NewStats(data)
	if s.Min>s.Mean || s.Mean>s.Max {
		t.Errorf("inconsistent stats %v", s)
	}
	for _, v:=range data {
		if v<s.Min || v>s.Max {
			t.Fatalf("value %g outside [%g,%g]", v, s.Min, s.Max)
		}
	}
}
