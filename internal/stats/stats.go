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
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Basic statistics of a pixel buffer: minimum, maximum, mean and sum.
type Stats struct {
	Min  float32
	Max  float32
	Mean float32
	Sum  float64
}

// Computes basic statistics for the given data array
func NewStats(data []float32) *Stats {
	if len(data)==0 { return &Stats{} }
	d64:=make([]float64, len(data))
	for i,v:=range data {
		d64[i]=float64(v)
	}
	sum:=floats.Sum(d64)
	return &Stats{
		Min:  float32(floats.Min(d64)),
		Max:  float32(floats.Max(d64)),
		Mean: float32(sum/float64(len(d64))),
		Sum:  sum,
	}
}

func (s *Stats) String() string {
	return fmt.Sprintf("Min %.4g Max %.4g Mean %.4g Sum %.6g", s.Min, s.Max, s.Mean, s.Sum)
}
