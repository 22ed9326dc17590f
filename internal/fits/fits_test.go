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


package fits

import (
	"bytes"
	"io"
	"math"
	"testing"
)

func TestNewImageFromNaxisn(t *testing.T) {
	img:=NewImageFromNaxisn([]int32{4, 3, 2}, nil)
	if img.Pixels!=24 { t.Errorf("got %d pixels want 24", img.Pixels) }
	if len(img.Data)!=24 { t.Errorf("got %d data values want 24", len(img.Data)) }
	if img.Bitpix!=-32 { t.Errorf("got bitpix %d want -32", img.Bitpix) }
	if img.DimensionsToString()!="4x3x2" {
		t.Errorf("got dimensions %q want 4x3x2", img.DimensionsToString())
	}
}

func TestPlane(t *testing.T) {
	img:=NewImageFromNaxisn([]int32{4, 3, 2}, nil)
	if img.PlanePixels()!=12 { t.Fatalf("got %d plane pixels want 12", img.PlanePixels()) }

	plane, err:=img.Plane(1)
	if err!=nil { t.Fatalf("unexpected error: %s", err.Error()) }
	if len(plane)!=12 { t.Fatalf("got plane length %d want 12", len(plane)) }

	// planes are views of the underlying data, not copies
	plane[0]=42
	if img.Data[12]!=42 {
		t.Errorf("plane write did not reach backing data")
	}

	for _, i:=range []int32{-1, 2} {
		if _, err:=img.Plane(i); err==nil {
			t.Errorf("plane %d expected error, got none", i)
		}
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	img:=NewImageFromNaxisn([]int32{4, 3, 2}, nil)
	for i:=range img.Data {
		img.Data[i]=float32(i)*0.5 - 3
	}
	img.Data[5]=float32(math.NaN()) // writer replaces NaNs with zero

	buf:=bytes.Buffer{}
	if err:=img.Write(&buf); err!=nil {
		t.Fatalf("write: %s", err.Error())
	}
	if want:=2880 + int(img.Pixels)*4; buf.Len()!=want {
		t.Errorf("got %d bytes want one header block plus data, %d", buf.Len(), want)
	}

	got:=NewImage()
	if err:=got.Read(&buf, io.Discard); err!=nil {
		t.Fatalf("read: %s", err.Error())
	}
	if !EqualInt32Slice(got.Naxisn, img.Naxisn) {
		t.Fatalf("got dimensions %s want %s", got.DimensionsToString(), img.DimensionsToString())
	}
	if got.Bzero!=0 || got.Bscale!=1 {
		t.Errorf("got bzero %g bscale %g want 0 and 1", got.Bzero, got.Bscale)
	}
	for i:=range img.Data {
		want:=img.Data[i]
		if i==5 { want=0 }
		if got.Data[i]!=want {
			t.Errorf("pixel %d got %g want %g", i, got.Data[i], want)
		}
	}
}

func TestUpdateStats(t *testing.T) {
	img:=NewImageFromNaxisn([]int32{2, 2}, []float32{1, 2, 3, 4})
	img.UpdateStats()
	if img.Stats.Min!=1 || img.Stats.Max!=4 || img.Stats.Mean!=2.5 {
		t.Errorf("got stats %v want min 1 max 4 mean 2.5", img.Stats)
	}
}

func TestEqualInt32Slice(t *testing.T) {
	tests:=[]struct{
		a, b []int32
		want bool
	}{
		{nil, nil, true},
		{[]int32{1, 2}, []int32{1, 2}, true},
		{[]int32{1, 2}, []int32{1, 3}, false},
		{[]int32{1, 2}, []int32{1, 2, 3}, false},
	}
	for _, tt:=range tests {
		if got:=EqualInt32Slice(tt.a, tt.b); got!=tt.want {
			t.Errorf("EqualInt32Slice(%v,%v) got %v want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
