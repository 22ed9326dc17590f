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
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rafia37/ExoCTK/internal/fits"
)

// Model archive incomplete or unreadable. Fatal before any angle processing.
var ErrMissingModelData = errors.New("model archive incomplete or unreadable")

const archiveInfoFile = "modelsinfo.json"

// archiveInfo mirrors the modelsinfo.json file at the root of the archive
// directory: the canvas geometry shared by all templates plus the parallel
// color/temperature axes of the model grid.
type archiveInfo struct {
	ModelPadX int       `json:"modelPadX"`
	ModelPadY int       `json:"modelPadY"`
	DimXMod   int       `json:"dimXmod"`
	DimYMod   int       `json:"dimYmod"`
	TeffMod   []float64 `json:"teffMod"`
	JHMod     []float64 `json:"jhMod"`
	HKMod     []float64 `json:"hkMod"`
}

// Archive is a keyed store of precomputed spectral trace templates, one per
// effective temperature bucket, embedded in padded canvases. Templates load
// lazily on first use and are read-only afterwards.
type Archive struct {
	Dir string

	ModelPadX int
	ModelPadY int
	DimXMod   int
	DimYMod   int
	Grid      *ModelGrid

	templates       map[int]*fits.Image // field star canvases by grid index
	targetTemplates map[int]*fits.Image // two-plane order 1+2 target traces by grid index
	logWriter       io.Writer
}

// OpenArchive reads and validates modelsinfo.json in the given directory.
// Any inconsistency is fatal here, before a simulation starts.
func OpenArchive(dir string, logWriter io.Writer) (*Archive, error) {
	buf, err:=os.ReadFile(filepath.Join(dir, archiveInfoFile))
	if err!=nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingModelData, err.Error())
	}
	var info archiveInfo
	if err:=json.Unmarshal(buf, &info); err!=nil {
		return nil, fmt.Errorf("%w: parsing %s: %s", ErrMissingModelData, archiveInfoFile, err.Error())
	}
	grid, err:=NewModelGrid(info.TeffMod, info.JHMod, info.HKMod)
	if err!=nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingModelData, err.Error())
	}
	if info.DimXMod<=0 || info.DimYMod<=0 || info.ModelPadX<0 || info.ModelPadY<0 {
		return nil, fmt.Errorf("%w: invalid canvas geometry %dx%d pad %d,%d",
			ErrMissingModelData, info.DimXMod, info.DimYMod, info.ModelPadX, info.ModelPadY)
	}
	return &Archive{
		Dir:             dir,
		ModelPadX:       info.ModelPadX,
		ModelPadY:       info.ModelPadY,
		DimXMod:         info.DimXMod,
		DimYMod:         info.DimYMod,
		Grid:            grid,
		templates:       make(map[int]*fits.Image),
		targetTemplates: make(map[int]*fits.Image),
		logWriter:       logWriter,
	}, nil
}

// TemplateFileName returns the archive-relative name of the field star trace
// canvas for grid index k
func (a *Archive) TemplateFileName(k int) string {
	return fmt.Sprintf("trace_t%05d.fits", int(a.Grid.Teff(k)))
}

// TargetTemplateFileName returns the archive-relative name of the two-plane
// order 1/order 2 target trace for grid index k
func (a *Archive) TargetTemplateFileName(k int) string {
	return fmt.Sprintf("traceo12_t%05d.fits", int(a.Grid.Teff(k)))
}

// Template returns the padded trace canvas for temperature bucket k,
// loading it from the archive on first use.
func (a *Archive) Template(k int) (*fits.Image, error) {
	if t, ok:=a.templates[k]; ok { return t, nil }
	t, err:=a.load(a.TemplateFileName(k), []int32{int32(a.DimXMod), int32(a.DimYMod)})
	if err!=nil { return nil, err }
	a.templates[k]=t
	return t, nil
}

// TargetTemplate returns the two-plane order 1/order 2 trace for
// temperature bucket k, loading it from the archive on first use.
func (a *Archive) TargetTemplate(k int) (*fits.Image, error) {
	if t, ok:=a.targetTemplates[k]; ok { return t, nil }
	t, err:=a.load(a.TargetTemplateFileName(k), []int32{int32(a.DimXMod), int32(a.DimYMod), 2})
	if err!=nil { return nil, err }
	a.targetTemplates[k]=t
	return t, nil
}

func (a *Archive) load(name string, wantNaxisn []int32) (*fits.Image, error) {
	img, err:=fits.NewImageFromFile(filepath.Join(a.Dir, name), 0, a.logWriter)
	if err!=nil {
		return nil, fmt.Errorf("%w: %s: %s", ErrMissingModelData, name, err.Error())
	}
	if !fits.EqualInt32Slice(img.Naxisn, wantNaxisn) {
		return nil, fmt.Errorf("%w: %s has dimensions %s, want %v",
			ErrMissingModelData, name, img.DimensionsToString(), wantNaxisn)
	}
	return img, nil
}
