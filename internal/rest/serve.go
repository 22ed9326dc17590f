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


package rest

import (
	"errors"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/rafia37/ExoCTK/internal/pal"
	"github.com/rafia37/ExoCTK/internal/soss"
	"github.com/rafia37/ExoCTK/web"
)

// Server exposes the simulator and the transmission spectrum kernel over a
// REST API, backing the ExoCTK web tools.
type Server struct {
	Sim    *soss.Simulator
	OutDir string
}

func NewServer(sim *soss.Simulator, outDir string) *Server {
	return &Server{Sim: sim, OutDir: outDir}
}

func (s *Server) Serve(addr string) error {
	r := gin.Default()
	r.GET("/", s.getIndex)
	api := r.Group("/api")
	{
		v1 := api.Group("/v1")
		{
			v1.GET ("/ping",     getPing)
			v1.POST("/contam",   s.postContam)
			v1.POST("/transmit", s.postTransmit)
		}
	}
	return r.Run(addr)
}

func (s *Server) getIndex(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", web.IndexHTML)
}

func getPing(c *gin.Context) {
	c.JSON(200, gin.H{
		"message": "pong",
	})
}

type postContamArgs struct {
	RA      string          `json:"ra"`
	Dec     string          `json:"dec"`
	BinComp *soss.Companion `json:"binComp"`
}

func (s *Server) postContam(c *gin.Context) {
	var args postContamArgs
	if err:=c.ShouldBind(&args); err!=nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error() } )
		return
	}

	// progress goes to the server log; the response stays pure JSON
	cubePath, err:=s.Sim.Simulate(c.Request.Context(), args.RA, args.Dec, s.OutDir, args.BinComp, os.Stdout)
	if err!=nil {
		status:=http.StatusInternalServerError
		if errors.Is(err, soss.ErrEmptyCatalog) {
			status=http.StatusBadGateway
		}
		c.JSON(status, gin.H{"error": err.Error() } )
		return
	}

	// an empty path means an existing companion cube was reused
	c.JSON(http.StatusOK, gin.H{
		"cubePath": cubePath,
		"skipped":  cubePath=="",
	})
}

func (s *Server) postTransmit(c *gin.Context) {
	var args pal.Params
	if err:=c.ShouldBind(&args); err!=nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error() } )
		return
	}

	spectrum, err:=pal.Transmit(args)
	if err!=nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error() } )
		return
	}
	c.JSON(http.StatusOK, spectrum)
}
