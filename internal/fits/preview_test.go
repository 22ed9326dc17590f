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
	"image/jpeg"
	"math"
	"testing"

	"golang.org/x/image/tiff"
)

// a 4x3x2 test cube with a NaN pixel and a gradient in plane 1
func previewImage() *Image {
	img:=NewImageFromNaxisn([]int32{4, 3, 2}, nil)
	for i:=range img.Data {
		img.Data[i]=float32(i)/float32(len(img.Data))
	}
	img.Data[14]=float32(math.NaN())
	return img
}

func TestWriteMonoJPG(t *testing.T) {
	buf:=bytes.Buffer{}
	if err:=previewImage().WriteMonoJPG(&buf, 1, 0, 1, 1.0, 95); err!=nil {
		t.Fatalf("unexpected error: %s", err.Error())
	}
	cfg, err:=jpeg.DecodeConfig(bytes.NewReader(buf.Bytes()))
	if err!=nil { t.Fatalf("decoding preview: %s", err.Error()) }
	if cfg.Width!=4 || cfg.Height!=3 {
		t.Errorf("got %dx%d want 4x3", cfg.Width, cfg.Height)
	}
}

func TestWriteHeatJPG(t *testing.T) {
	buf:=bytes.Buffer{}
	if err:=previewImage().WriteHeatJPG(&buf, 0, 0, 1, 1.0, 95); err!=nil {
		t.Fatalf("unexpected error: %s", err.Error())
	}
	if _, err:=jpeg.DecodeConfig(bytes.NewReader(buf.Bytes())); err!=nil {
		t.Errorf("decoding preview: %s", err.Error())
	}
}

func TestWriteMonoTIFF16(t *testing.T) {
	buf:=bytes.Buffer{}
	if err:=previewImage().WriteMonoTIFF16(&buf, 1, 0, 1, 1.0); err!=nil {
		t.Fatalf("unexpected error: %s", err.Error())
	}
	cfg, err:=tiff.DecodeConfig(bytes.NewReader(buf.Bytes()))
	if err!=nil { t.Fatalf("decoding preview: %s", err.Error()) }
	if cfg.Width!=4 || cfg.Height!=3 {
		t.Errorf("got %dx%d want 4x3", cfg.Width, cfg.Height)
	}
}

func TestPreviewBadPlane(t *testing.T) {
	buf:=bytes.Buffer{}
	if err:=previewImage().WriteMonoJPG(&buf, 5, 0, 1, 1.0, 95); err==nil {
		t.Errorf("out of range plane expected error, got none")
	}
}

func TestClampUnit(t *testing.T) {
	tests:=[]struct{
		in, want float32
	}{
		{-0.5, 0},
		{0, 0},
		{0.25, 0.25},
		{1, 1},
		{1.5, 1},
		{float32(math.NaN()), 0},
	}
	for _, tt:=range tests {
		if got:=clampUnit(tt.in); got!=tt.want {
			t.Errorf("clampUnit(%g) got %g want %g", tt.in, got, tt.want)
		}
	}
}
