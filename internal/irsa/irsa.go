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


// Package irsa queries the NASA/IPAC Infrared Science Archive for 2MASS
// point sources around a sky position. The simulator treats it as a
// black-box source of star positions and magnitudes.
package irsa

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultBaseURL = "https://irsa.ipac.caltech.edu/TAP/sync"

// A 2MASS point source: sky position in degrees and J/H/K magnitudes.
type Source struct {
	RA  float64
	Dec float64
	J   float64
	H   float64
	K   float64
}

// J-H color index
func (s *Source) JminusH() float64 { return s.J - s.H }

// H-K color index
func (s *Source) HminusK() float64 { return s.H - s.K }

// Client queries the IRSA TAP service for catalog cone searches.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a catalog client for the given TAP endpoint.
// An empty baseURL selects the production IRSA service.
func NewClient(baseURL string) *Client {
	if baseURL=="" {
		baseURL=defaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 60*time.Second,
		},
	}
}

// QueryRegion performs an ADQL cone search on the 2MASS point source catalog
// and returns all sources with valid J/H/K magnitudes within the radius.
func (c *Client) QueryRegion(ctx context.Context, raDeg, decDeg, radiusArcmin float64) ([]Source, error) {
	adql:=fmt.Sprintf("SELECT ra,dec,j_m,h_m,k_m FROM fp_psc "+
		"WHERE CONTAINS(POINT('ICRS',ra,dec),CIRCLE('ICRS',%.8f,%.8f,%.8f))=1",
		raDeg, decDeg, radiusArcmin/60)

	q:=url.Values{}
	q.Set("QUERY", adql)
	q.Set("FORMAT", "csv")

	req, err:=http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err!=nil { return nil, fmt.Errorf("creating catalog request: %w", err) }

	resp, err:=c.httpClient.Do(req)
	if err!=nil { return nil, fmt.Errorf("querying catalog: %w", err) }
	defer resp.Body.Close()

	if resp.StatusCode!=http.StatusOK {
		return nil, fmt.Errorf("unexpected status code %d from %s", resp.StatusCode, c.baseURL)
	}
	return ParseSources(resp.Body)
}

// ParseSources reads a CSV table with ra,dec,j_m,h_m,k_m columns.
// Rows with missing or unparseable magnitudes are skipped; the 2MASS
// catalog contains null entries for sources undetected in a band.
func ParseSources(r io.Reader) ([]Source, error) {
	cr:=csv.NewReader(r)
	cr.TrimLeadingSpace=true

	header, err:=cr.Read()
	if err!=nil { return nil, fmt.Errorf("reading catalog header: %w", err) }

	col:=map[string]int{}
	for i, name:=range header {
		col[strings.ToLower(strings.TrimSpace(name))]=i
	}
	for _, name:=range []string{"ra", "dec", "j_m", "h_m", "k_m"} {
		if _, ok:=col[name]; !ok {
			return nil, fmt.Errorf("catalog response missing column %s", name)
		}
	}

	var sources []Source
	for {
		record, err:=cr.Read()
		if err==io.EOF { break }
		if err!=nil { return nil, fmt.Errorf("reading catalog row: %w", err) }

		s:=Source{}
		fields:=[]struct{
			name string
			dst  *float64
		}{
			{"ra", &s.RA}, {"dec", &s.Dec}, {"j_m", &s.J}, {"h_m", &s.H}, {"k_m", &s.K},
		}
		ok:=true
		for _, fl:=range fields {
			v:=strings.TrimSpace(record[col[fl.name]])
			if v=="" || strings.EqualFold(v, "null") {
				ok=false
				break
			}
			*fl.dst, err=strconv.ParseFloat(v, 64)
			if err!=nil {
				ok=false
				break
			}
		}
		if ok {
			sources=append(sources, s)
		}
	}
	return sources, nil
}
