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


package irsa

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const sampleCSV = `ra,dec,j_m,h_m,k_m
150.08563,-11.90129,8.651,8.028,7.765
150.08901,-11.89933,12.401,11.85,11.702
150.09122,-11.90412,null,14.22,14.01
150.09244,-11.90671,13.1,12.9,not-a-number
`

func TestParseSources(t *testing.T) {
	sources, err:=ParseSources(strings.NewReader(sampleCSV))
	if err!=nil { t.Fatalf("unexpected error: %s", err.Error()) }

	// the null and unparseable rows are skipped
	if len(sources)!=2 {
		t.Fatalf("got %d sources want 2", len(sources))
	}
	s:=sources[0]
	if s.RA!=150.08563 || s.Dec!=-11.90129 || s.J!=8.651 || s.H!=8.028 || s.K!=7.765 {
		t.Errorf("got source %+v", s)
	}
	if got, want:=s.JminusH(), 8.651-8.028; got!=want {
		t.Errorf("J-H got %g want %g", got, want)
	}
	if got, want:=s.HminusK(), 8.028-7.765; got!=want {
		t.Errorf("H-K got %g want %g", got, want)
	}
}

func TestParseSourcesColumnOrder(t *testing.T) {
	// TAP servers may return columns in any order
	reordered:="k_m,j_m,dec,ra,h_m\n7.7,8.6,-11.9,150.1,8.0\n"
	sources, err:=ParseSources(strings.NewReader(reordered))
	if err!=nil { t.Fatalf("unexpected error: %s", err.Error()) }
	if len(sources)!=1 || sources[0].RA!=150.1 || sources[0].K!=7.7 {
		t.Errorf("got %+v", sources)
	}
}

func TestParseSourcesMissingColumn(t *testing.T) {
	if _, err:=ParseSources(strings.NewReader("ra,dec,j_m\n1,2,3\n")); err==nil {
		t.Errorf("missing magnitude columns expected error, got none")
	}
}

func TestQueryRegion(t *testing.T) {
	srv:=httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q:=r.URL.Query()
		if got:=q.Get("FORMAT"); got!="csv" {
			t.Errorf("got FORMAT %q want csv", got)
		}
		adql:=q.Get("QUERY")
		if !strings.Contains(adql, "fp_psc") || !strings.Contains(adql, "CIRCLE('ICRS',150.08563000,-11.90129000,0.04166667)") {
			t.Errorf("unexpected ADQL %q", adql)
		}
		w.Write([]byte(sampleCSV))
	}))
	defer srv.Close()

	sources, err:=NewClient(srv.URL).QueryRegion(context.Background(), 150.08563, -11.90129, 2.5)
	if err!=nil { t.Fatalf("unexpected error: %s", err.Error()) }
	if len(sources)!=2 {
		t.Errorf("got %d sources want 2", len(sources))
	}
}

func TestQueryRegionServerError(t *testing.T) {
	srv:=httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	if _, err:=NewClient(srv.URL).QueryRegion(context.Background(), 150, -11.9, 2.5); err==nil {
		t.Errorf("server error expected error, got none")
	}
}
