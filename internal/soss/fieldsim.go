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
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/pbnjay/memory"
	"github.com/rafia37/ExoCTK/internal/fits"
	"github.com/rafia37/ExoCTK/internal/irsa"
)

// Catalog query unusable: service unreachable, malformed data, or an empty
// result set that leaves no target row to work with.
var ErrEmptyCatalog = errors.New("catalog query returned no usable sources")

// A source of field star positions and magnitudes around a sky position
type Catalog interface {
	QueryRegion(ctx context.Context, raDeg, decDeg, radiusArcmin float64) ([]irsa.Source, error)
}

// Simulator runs one full field contamination simulation per call: a batch
// sweep over all field rotation angles, single-threaded, with the output
// cube exclusively owned by the running simulation.
type Simulator struct {
	Config  InstrumentConfig
	Archive *Archive
	Catalog Catalog

	SearchRadiusArcmin float64 // catalog cone search radius, default 2.5
}

func NewSimulator(cfg InstrumentConfig, archive *Archive, catalog Catalog) *Simulator {
	return &Simulator{
		Config:             cfg,
		Archive:            archive,
		Catalog:            catalog,
		SearchRadiusArcmin: 2.5,
	}
}

// CubeName returns the deterministic output file name for a target position,
// so re-runs for the same target map onto the same artifact.
func CubeName(outDir string, raDeg, decDeg float64, withCompanion bool) string {
	suffix:=""
	if withCompanion {
		suffix="_custom"
	}
	return filepath.Join(outDir, "cube_RA_"+ToSexagesimal(raDeg, true, true)+
		"_DEC_"+ToSexagesimal(decDeg, false, true)+suffix+".fits")
}

// Simulate queries the star catalog around the given sexagesimal target
// position, simulates the spectral traces of all in-FOV field stars across
// the full rotation sweep, and writes the result cube into outDir. Plane 0
// and 1 hold the target's order 1 and order 2 traces; plane i+2 holds the
// field contamination at rotation angle i.
//
// With a companion, an extra catalog entry offset from the target is
// injected and the file name gains a _custom suffix. If that file already
// exists the run short-circuits and returns an empty path with no error;
// whether the existing cube was built from the same companion parameters is
// not checked.
func (s *Simulator) Simulate(ctx context.Context, ra, dec, outDir string, comp *Companion, logWriter io.Writer) (cubePath string, err error) {
	targetRA, err:=ParseSexagesimal(ra, true)
	if err!=nil { return "", err }
	targetDec, err:=ParseSexagesimal(dec, false)
	if err!=nil { return "", err }

	sources, err:=s.Catalog.QueryRegion(ctx, targetRA, targetDec, s.SearchRadiusArcmin)
	if err!=nil { return "", err }
	if len(sources)==0 { return "", ErrEmptyCatalog }

	// the target is the catalog entry nearest the requested position
	targetIndex:=0
	bestDist:=math.Inf(1)
	for i, src:=range sources {
		d:=(targetRA-src.RA)*(targetRA-src.RA) + (targetDec-src.Dec)*(targetDec-src.Dec)
		if d<bestDist {
			targetIndex, bestDist = i, d
		}
	}
	target:=sources[targetIndex]

	if comp!=nil {
		sources=append(sources, irsa.Source{
			RA:  target.RA + comp.DeltaRA/3600/math.Cos(target.Dec/degPerRad),
			Dec: target.Dec + comp.DeltaDec/3600,
			J:   comp.J,
			H:   comp.H,
			K:   comp.K,
		})
	}

	cubePath=CubeName(outDir, target.RA, target.Dec, comp!=nil)
	fmt.Fprintf(logWriter, "Target %s %s -> cube %s\n",
		ToSexagesimal(target.RA, true, false), ToSexagesimal(target.Dec, false, false), cubePath)

	// Companion runs are parameterized by file name only: an existing cube
	// is reused without checking which companion produced it.
	if comp!=nil {
		if _, err:=os.Stat(cubePath); err==nil {
			fmt.Fprintf(logWriter, "Cube %s exists, skipping recomputation\n", cubePath)
			return "", nil
		}
	}

	stars:=make([]Star, len(sources))
	for i, src:=range sources {
		stars[i]=Star{
			Index:   i,
			RA:      src.RA,
			Dec:     src.Dec,
			J:       src.J,
			H:       src.H,
			K:       src.K,
			JminusH: src.JminusH(),
			HminusK: src.HminusK(),
		}
		if err:=stars[i].validate(); err!=nil {
			return "", fmt.Errorf("%w: %s", ErrEmptyCatalog, err.Error())
		}
	}

	ss:=SweetSpot{
		X:    s.Config.SweetSpotX,
		Y:    s.Config.SweetSpotY,
		RA:   target.RA,
		Dec:  target.Dec,
		Jmag: target.J,
	}

	// temperature classification is rotation invariant: run it once per star
	for i:=range stars {
		stars[i].TeffIdx=s.Archive.Grid.Classify(stars[i].JminusH, stars[i].HminusK)
	}

	cube, err:=s.newCube(logWriter)
	if err!=nil { return "", err }

	if err:=s.sweep(stars, targetIndex, ss, cube, logWriter); err!=nil {
		return "", err
	}

	if err:=cube.WriteFile(cubePath); err!=nil {
		return "", fmt.Errorf("writing cube %s: %s", cubePath, err.Error())
	}
	cube.UpdateStats()
	fmt.Fprintf(logWriter, "Wrote %s planes %s stats %v\n", cubePath, cube.DimensionsToString(), cube.Stats)
	return cubePath, nil
}

// Allocates the output cube after checking the template canvas covers the
// subarray crop and the host has room for the buffer.
func (s *Simulator) newCube(logWriter io.Writer) (*fits.Image, error) {
	if err:=s.Config.Validate(); err!=nil { return nil, err }
	if s.Archive.ModelPadX+s.Config.SubW>s.Archive.DimXMod || s.Archive.ModelPadY+s.Config.SubH>s.Archive.DimYMod {
		return nil, fmt.Errorf("%w: template canvas %dx%d too small for subarray %dx%d at pad %d,%d",
			ErrMissingModelData, s.Archive.DimXMod, s.Archive.DimYMod, s.Config.SubW, s.Config.SubH,
			s.Archive.ModelPadX, s.Archive.ModelPadY)
	}

	numPlanes:=s.Config.NumAngles()+2
	needBytes:=uint64(numPlanes)*uint64(s.Config.SubW)*uint64(s.Config.SubH)*4
	if total:=memory.TotalMemory(); total>0 && needBytes>total {
		return nil, fmt.Errorf("simulation cube needs %d MiB but system has %d MiB",
			needBytes/1024/1024, total/1024/1024)
	}
	fmt.Fprintf(logWriter, "Allocating %d planes of %dx%d (%d MiB)\n",
		numPlanes, s.Config.SubW, s.Config.SubH, needBytes/1024/1024)
	return fits.NewImageFromNaxisn([]int32{int32(s.Config.SubW), int32(s.Config.SubH), int32(numPlanes)}, nil), nil
}

// sweep runs the per-angle loop, compositing every retained star into the
// plane for its angle. The target's own traces go into planes 0 and 1 at the
// first angle only.
func (s *Simulator) sweep(stars []Star, targetIndex int, ss SweetSpot, cube *fits.Image, logWriter io.Writer) error {
	cfg:=&s.Config
	targetWritten:=false

	for angleIdx:=0; angleIdx*cfg.AngleStep+cfg.PAMin<cfg.PAMax; angleIdx++ {
		rotation:=float64(cfg.PAMin + angleIdx*cfg.AngleStep)

		plane, err:=cube.Plane(int32(angleIdx+2))
		if err!=nil { return err }

		for i:=range stars {
			star:=&stars[i]
			dx, dy:=ProjectOffset(star.RA, star.Dec, ss, rotation, cfg.PixelScale)
			if !cfg.InFOV(dx+ss.X, dy+ss.Y) {
				continue
			}

			intx:=int(math.Round(dx))
			inty:=int(math.Round(dy))
			fluxScale:=float32(math.Pow(10, -0.4*(star.J-ss.Jmag)))

			// the target defines the reference frame: write its two
			// spectral orders unshifted, exactly once per run
			if intx==0 && inty==0 && angleIdx==0 && !targetWritten {
				if err:=s.writeTarget(star.TeffIdx, fluxScale, cube); err!=nil {
					return err
				}
				targetWritten=true
			}

			if intx!=0 || inty!=0 {
				win, ok:=traceWindow(intx, inty, s.Archive.ModelPadX, s.Archive.ModelPadY,
					s.Archive.DimXMod, s.Archive.DimYMod, cfg.SubW, cfg.SubH)
				if !ok {
					continue // trace misses the output plane entirely
				}
				tmpl, err:=s.Archive.Template(star.TeffIdx)
				if err!=nil { return err }
				accumulate(plane, cfg.SubW, tmpl.Data, s.Archive.DimXMod, win, fluxScale)
			}
		}

		if (angleIdx+1)%60==0 {
			fmt.Fprintf(logWriter, "Processed %d angles\n", angleIdx+1)
		}
	}
	return nil
}

// writeTarget crops the target's order 1 and order 2 templates at the model
// padding offsets and stores them in planes 0 and 1 of the cube.
func (s *Simulator) writeTarget(teffIdx int, fluxScale float32, cube *fits.Image) error {
	tmpl, err:=s.Archive.TargetTemplate(teffIdx)
	if err!=nil { return err }

	win:=window{
		SrcX0: s.Archive.ModelPadX,
		SrcY0: s.Archive.ModelPadY,
		DstX0: 0,
		DstY0: 0,
		W:     s.Config.SubW,
		H:     s.Config.SubH,
	}
	for order:=int32(0); order<2; order++ {
		src, err:=tmpl.Plane(order)
		if err!=nil { return err }
		dst, err:=cube.Plane(order)
		if err!=nil { return err }
		copyScaled(dst, s.Config.SubW, src, s.Archive.DimXMod, win, fluxScale)
	}
	return nil
}
