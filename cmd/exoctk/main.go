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

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pbnjay/memory"
	ek "github.com/rafia37/ExoCTK/internal"
	"github.com/rafia37/ExoCTK/internal/fits"
	"github.com/rafia37/ExoCTK/internal/irsa"
	"github.com/rafia37/ExoCTK/internal/pal"
	"github.com/rafia37/ExoCTK/internal/rest"
	"github.com/rafia37/ExoCTK/internal/soss"
)

const version = "0.3.0"

var totalMiBs=memory.TotalMemory()/1024/1024

var out     = flag.String("out", ".", "write output cubes into `dir`")
var log     = flag.String("log", "%auto", "save log output to `file`. `%auto` writes exoctk.log into the output directory")
var jpg     = flag.String("jpg", "", "save false-color preview of the first contamination plane as JPEG to `file`")
var archive = flag.String("archive", "modelgrid", "load trace model archive from `dir`")
var catalog = flag.String("catalog", "", "query star catalog at `url` instead of the production IRSA TAP service")
var radius  = flag.Float64("radius", 2.5, "catalog cone search radius in arcminutes")
var binComp = flag.String("binComp", "", "inject synthetic companion `dRA,dDec,J,H,K` (offsets in arcsec)")

var eos      = flag.String("eos", "", "equation of state table `file` for transmit")
var tp       = flag.String("tp", "", "temperature-pressure profile `file` for transmit")
var g        = flag.Float64("g", 9.8, "surface gravity in m/s^2 for transmit")
var rPlanet  = flag.Float64("rPlanet", 6.4e6, "planet radius in m for transmit")
var rStar    = flag.Float64("rStar", 7.0e8, "stellar radius in m for transmit")
var pCloud   = flag.Float64("pCloud", 0, "gray cloud top pressure in Pa for transmit, 0=clear")
var rayleigh = flag.Float64("rayleigh", 1, "Rayleigh scattering augmentation factor for transmit")

var addr = flag.String("addr", ":8080", "serve the REST API on `host:port`")

func main() {
	logWriter:=os.Stdout
	flag.Usage=func(){
		fmt.Fprintf(logWriter, `ExoCTK Copyright (c) 2018 The ExoCTK developers
This program comes with ABSOLUTELY NO WARRANTY.
This is free software, and you are welcome to redistribute it under certain conditions.
Refer to https://www.gnu.org/licenses/gpl-3.0.en.html for details.

Usage: %s [-flag value] (contam|transmit|serve|legal|version) [args]

Commands:
  contam RA DEC  Simulate SOSS field contamination for a target at the given
                 sexagesimal position, e.g. contam 10:21:34.2 -11:54:03
  transmit       Compute a transmission spectrum with the exotransmit kernel
  serve          Serve the web UI and REST API
  legal          Show license and attribution information
  version        Show version information

Flags:
`, os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	// Initialize logging to file in addition to stdout, if selected
	if *log=="%auto" {
		if *out!="" {
			*log=filepath.Join(*out, "exoctk.log")
		} else {
			*log=""
		}
	}
	if *log!="" {
		err:=ek.LogAlsoToFile(*log)
		if err!=nil { ek.LogFatalf("Unable to open logfile '%s'\n", *log) }
	}
	defer ek.LogSync()

	args:=flag.Args()
	if len(args)<1 {
		flag.Usage()
		return
	}

	switch args[0] {
	case "contam":
		if len(args)!=3 {
			ek.LogFatalf("Usage: %s contam RA DEC\n", os.Args[0])
		}
		cmdContam(args[1], args[2])

	case "transmit":
		cmdTransmit()

	case "serve":
		sim:=newSimulator()
		ek.LogPrintf("Serving on %s with %d MiB system memory\n", *addr, totalMiBs)
		srv:=rest.NewServer(sim, *out)
		if err:=srv.Serve(*addr); err!=nil {
			ek.LogFatalf("Server error: %s\n", err.Error())
		}

	case "legal":
		cmdLegal()

	case "version":
		ek.LogPrintf("ExoCTK version %s\n", version)

	case "help", "?":
		flag.Usage()

	default:
		ek.LogFatalf("Unknown command '%s'. Run %s help for usage information\n", args[0], os.Args[0])
	}
}

func newSimulator() *soss.Simulator {
	arch, err:=soss.OpenArchive(*archive, os.Stdout)
	if err!=nil {
		ek.LogFatalf("Error opening model archive '%s': %s\n", *archive, err.Error())
	}
	sim:=soss.NewSimulator(soss.NIRISSConfig(), arch, irsa.NewClient(*catalog))
	sim.SearchRadiusArcmin=*radius
	return sim
}

func cmdContam(ra, dec string) {
	comp, err:=parseCompanion(*binComp)
	if err!=nil {
		ek.LogFatalf("Error parsing -binComp: %s\n", err.Error())
	}

	sim:=newSimulator()
	cubePath, err:=sim.Simulate(context.Background(), ra, dec, *out, comp, os.Stdout)
	if err!=nil {
		ek.LogFatalf("Error simulating contamination: %s\n", err.Error())
	}
	if cubePath=="" {
		ek.LogPrintln("Existing cube reused, nothing written")
		return
	}

	if *jpg!="" {
		img, err:=fits.NewImageFromFile(cubePath, 0, os.Stdout)
		if err!=nil {
			ek.LogFatalf("Error reloading cube for preview: %s\n", err.Error())
		}
		img.UpdateStats()
		if err:=img.WriteHeatJPGToFile(*jpg, 2, img.Stats.Min, img.Stats.Max, 1.0, 95); err!=nil {
			ek.LogFatalf("Error writing preview %s: %s\n", *jpg, err.Error())
		}
		ek.LogPrintf("Wrote preview %s\n", *jpg)
	}
}

// parseCompanion decodes the -binComp flag, five comma separated floats
func parseCompanion(s string) (*soss.Companion, error) {
	if s=="" { return nil, nil }
	parts:=strings.Split(s, ",")
	if len(parts)!=5 {
		return nil, fmt.Errorf("expected dRA,dDec,J,H,K, got %d fields", len(parts))
	}
	vals:=make([]float64, 5)
	for i, p:=range parts {
		v, err:=strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err!=nil { return nil, err }
		vals[i]=v
	}
	return &soss.Companion{DeltaRA: vals[0], DeltaDec: vals[1], J: vals[2], H: vals[3], K: vals[4]}, nil
}

func cmdTransmit() {
	params:=pal.Params{
		EOSFile:  *eos,
		TPFile:   *tp,
		G:        *g,
		RPlanet:  *rPlanet,
		RStar:    *rStar,
		PCloud:   *pCloud,
		Rayleigh: *rayleigh,
	}
	spectrum, err:=pal.Transmit(params)
	if err!=nil {
		ek.LogFatalf("Error computing spectrum: %s\n", err.Error())
	}

	fileName:=filepath.Join(*out, "spectrum.json")
	buf, err:=json.Marshal(spectrum)
	if err!=nil {
		ek.LogFatalf("Error encoding spectrum: %s\n", err.Error())
	}
	if err:=os.WriteFile(fileName, buf, 0644); err!=nil {
		ek.LogFatalf("Error writing %s: %s\n", fileName, err.Error())
	}
	ek.LogPrintf("Wrote %s with %d samples\n", fileName, len(spectrum.Wavelength))
}

func cmdLegal() {
	ek.LogPrint(`ExoCTK is licensed under the GNU General Public License v3.

It queries the NASA/IPAC Infrared Science Archive for 2MASS point source
data. This publication makes use of data products from the Two Micron All
Sky Survey, which is a joint project of the University of Massachusetts and
the Infrared Processing and Analysis Center/California Institute of
Technology, funded by the National Aeronautics and Space Administration and
the National Science Foundation.

Transmission spectra are computed with the Exo-Transmit radiative transfer
code by Kempton, Lupu, Owusu-Asare, Slough and Cale.
`)
}
