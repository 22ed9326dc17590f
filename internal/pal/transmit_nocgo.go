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

// +build !cgo

package pal

import (
	"fmt"
)

// Transmit requires the compiled exotransmit kernel, which is only
// available in cgo-enabled builds.
func Transmit(p Params) (*Spectrum, error) {
	if err:=p.Validate(); err!=nil { return nil, err }
	return nil, fmt.Errorf("exotransmit kernel unavailable: built without cgo")
}
