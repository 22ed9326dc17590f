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
	"math"
	"strconv"
	"strings"
)

const degPerRad = 180/math.Pi

// ToSexagesimal converts a decimal-degree value into a colon-separated
// sexagesimal string. Right ascension is converted to hours first, so the
// result reads hh:mm:ss; declination keeps degrees and a leading sign for
// negative values. With roundSeconds the seconds field is truncated to an
// integer, otherwise it keeps its fractional part. Input must be finite.
func ToSexagesimal(value float64, isRA, roundSeconds bool) string {
	sign:=""
	if value<0 {
		sign, value = "-", -value
	}
	if isRA {
		value/=15
	}
	whole:=int(value)
	mins:=int((value-float64(whole))*60)
	secs:=((value-float64(whole))*60 - float64(mins))*60
	if roundSeconds {
		return fmt.Sprintf("%s%d:%d:%d", sign, whole, mins, int(secs))
	}
	return fmt.Sprintf("%s%d:%d:%g", sign, whole, mins, secs)
}

// ParseSexagesimal converts a colon-separated sexagesimal string back to
// decimal degrees. Right ascension values are interpreted as hours.
func ParseSexagesimal(s string, isRA bool) (float64, error) {
	parts:=strings.Split(strings.TrimSpace(s), ":")
	if len(parts)!=3 {
		return 0, fmt.Errorf("invalid sexagesimal value %q: want h:m:s or d:m:s", s)
	}
	sign:=1.0
	first:=strings.TrimSpace(parts[0])
	if strings.HasPrefix(first, "-") {
		sign, first = -1, first[1:]
	} else if strings.HasPrefix(first, "+") {
		first=first[1:]
	}
	whole, err:=strconv.ParseFloat(first, 64)
	if err!=nil { return 0, fmt.Errorf("invalid sexagesimal value %q: %s", s, err.Error()) }
	mins, err:=strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err!=nil { return 0, fmt.Errorf("invalid sexagesimal value %q: %s", s, err.Error()) }
	secs, err:=strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
	if err!=nil { return 0, fmt.Errorf("invalid sexagesimal value %q: %s", s, err.Error()) }

	value:=whole + mins/60 + secs/3600
	if isRA {
		value*=15
	}
	return sign*value, nil
}

// ProjectOffset computes a catalog position's pixel offset from the sweet
// spot under a field rotation. The angular offset uses the tangent-plane
// approximation with a cos(Dec) scale on the RA axis; the offset vector is
// rotated counter-clockwise by rotationDeg and converted from arcsec to
// pixels. Pure function.
func ProjectOffset(raDeg, decDeg float64, ss SweetSpot, rotationDeg, pixelScale float64) (dx, dy float64) {
	cosDec:=math.Cos(ss.Dec/degPerRad)
	xo:=-cosDec*(raDeg-ss.RA)*3600/pixelScale
	yo:=(decDeg-ss.Dec)*3600/pixelScale

	sin, cos:=math.Sincos(rotationDeg/degPerRad)
	dx=xo*cos - yo*sin
	dy=xo*sin + yo*cos
	return dx, dy
}

// ProjectToPixels maps a catalog sky position into absolute detector pixel
// coordinates by adding the sweet spot's fixed position to ProjectOffset.
func ProjectToPixels(raDeg, decDeg float64, ss SweetSpot, rotationDeg, pixelScale float64) (x, y float64) {
	dx, dy:=ProjectOffset(raDeg, decDeg, ss, rotationDeg, pixelScale)
	return dx+ss.X, dy+ss.Y
}
