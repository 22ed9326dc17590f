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

// +build cgo

package pal

/*
#cgo LDFLAGS: -lexotransmit -lm
#include <stdlib.h>
#include <exotransmit.h>
*/
import "C"
import (
	"fmt"
	"unsafe"
)

// Number of wavelength samples the kernel produces on its native grid
const nativeSamples = 4616

// Transmit computes a transmission spectrum by calling into the compiled
// exotransmit kernel. The kernel reads the equation of state and
// temperature-pressure tables itself; this wrapper only marshals parameters
// and copies the resulting spectrum out of native memory.
func Transmit(p Params) (*Spectrum, error) {
	if err:=p.Validate(); err!=nil { return nil, err }

	cEOS:=C.CString(p.EOSFile)
	defer C.free(unsafe.Pointer(cEOS))
	cTP:=C.CString(p.TPFile)
	defer C.free(unsafe.Pointer(cTP))

	wavelength:=make([]float64, nativeSamples)
	depth:=make([]float64, nativeSamples)

	ret:=C.exotransmit_run(cEOS, cTP,
		C.double(p.G), C.double(p.RPlanet), C.double(p.RStar),
		C.double(p.PCloud), C.double(p.Rayleigh),
		(*C.double)(unsafe.Pointer(&wavelength[0])),
		(*C.double)(unsafe.Pointer(&depth[0])),
		C.int(nativeSamples))
	if ret!=0 {
		return nil, fmt.Errorf("exotransmit kernel failed with code %d", int(ret))
	}

	return &Spectrum{Wavelength: wavelength, Depth: depth}, nil
}
