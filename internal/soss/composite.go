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

// A clipped copy rectangle between a trace template canvas and an output
// plane. Source and destination origins are aligned pixel for pixel; W and H
// are the extents of the overlapping region.
type window struct {
	SrcX0, SrcY0 int // top left corner in the template canvas
	DstX0, DstY0 int // matching corner in the output plane
	W, H         int
}

// traceWindow computes the copy rectangle for a star whose trace is offset
// by (intx, inty) integer pixels from the template's padded center. Returns
// ok=false when the required window misses the template canvas entirely: the
// star contributes nothing at this angle, which is expected and common for
// stars near the FOV margin. Otherwise the window is clipped independently
// on all four edges against both the canvas and the output plane, so the
// resulting indices are always within bounds.
func traceWindow(intx, inty, padX, padY, dimX, dimY, subW, subH int) (win window, ok bool) {
	mx0:=padX-intx
	mx1:=padX-intx+subW
	my0:=padY-inty
	my1:=padY-inty+subH

	if mx0>dimX || my0>dimY { return window{}, false }
	if mx1<0 || my1<0 { return window{}, false }

	x0, y0:=0, 0
	if mx0<0 { x0, mx0 = -mx0, 0 }
	if my0<0 { y0, my0 = -my0, 0 }
	if mx1>dimX { mx1=dimX }
	if my1>dimY { my1=dimY }

	w:=mx1-mx0
	h:=my1-my0
	if x0+w>subW { w=subW-x0 }
	if y0+h>subH { h=subH-y0 }
	if w<=0 || h<=0 { return window{}, false }

	return window{SrcX0: mx0, SrcY0: my0, DstX0: x0, DstY0: y0, W: w, H: h}, true
}

// accumulate additively blends the windowed region of a template canvas,
// scaled by fluxScale, into an output plane. Overlapping stars at the same
// angle sum their contributions; nothing is overwritten.
func accumulate(dst []float32, dstW int, src []float32, srcW int, win window, fluxScale float32) {
	for row:=0; row<win.H; row++ {
		srcOff:=(win.SrcY0+row)*srcW + win.SrcX0
		dstOff:=(win.DstY0+row)*dstW + win.DstX0
		for col:=0; col<win.W; col++ {
			dst[dstOff+col]+=src[srcOff+col]*fluxScale
		}
	}
}

// copyScaled writes the windowed region of a template canvas, scaled by
// fluxScale, into an output plane, overwriting previous contents. Used for
// the one-time target trace write into the first two planes.
func copyScaled(dst []float32, dstW int, src []float32, srcW int, win window, fluxScale float32) {
	for row:=0; row<win.H; row++ {
		srcOff:=(win.SrcY0+row)*srcW + win.SrcX0
		dstOff:=(win.DstY0+row)*dstW + win.DstX0
		for col:=0; col<win.W; col++ {
			dst[dstOff+col]=src[srcOff+col]*fluxScale
		}
	}
}
