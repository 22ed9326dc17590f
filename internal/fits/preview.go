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
	"bufio"
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"math"
	"os"

	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/tiff"
)

// Clamps a normalized pixel value into [0,1], replacing NaNs with zero.
// NaNs break the image encoders downstream.
func clampUnit(v float32) float32 {
	if math.IsNaN(float64(v)) || v<0 { return 0 }
	if v>1 { return 1 }
	return v
}

// Write a grayscale plane of the image to JPG, using the given min, max and gamma.
func (f *Image) WriteMonoJPGToFile(fileName string, plane int32, min, max, gamma float32, quality int) error {
	file, err := os.Create(fileName)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	defer writer.Flush()

	return f.WriteMonoJPG(writer, plane, min, max, gamma, quality)
}

// Write a grayscale plane of the image to JPG, using the given min, max and gamma.
func (f *Image) WriteMonoJPG(writer io.Writer, plane int32, min, max, gamma float32, quality int) error {
	data, err := f.Plane(plane)
	if err != nil {
		return err
	}

	// convert pixels into Golang Image
	width, height := int(f.Naxisn[0]), int(f.PlanePixels()/f.Naxisn[0])
	img := image.NewGray(image.Rectangle{image.Point{0, 0}, image.Point{width, height}})
	scale := 1.0 / (max - min)
	gammaInv := float64(1.0 / gamma)
	for y := 0; y < height; y++ {
		yoffset := y * width
		for x := 0; x < width; x++ {
			gray := clampUnit((data[yoffset+x] - min) * scale)
			if gammaInv != 1.0 {
				gray = float32(math.Pow(float64(gray), gammaInv))
			}
			img.SetGray(x, y, color.Gray{uint8(gray * 255)})
		}
	}

	return jpeg.Encode(writer, img, &jpeg.Options{Quality: quality})
}

// Write a false-color heat map of a plane to JPG, using the given min, max and gamma.
// Intensity maps onto an HSV ramp from blue (cold) to red (hot).
func (f *Image) WriteHeatJPGToFile(fileName string, plane int32, min, max, gamma float32, quality int) error {
	file, err := os.Create(fileName)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	defer writer.Flush()

	return f.WriteHeatJPG(writer, plane, min, max, gamma, quality)
}

// Write a false-color heat map of a plane to JPG, using the given min, max and gamma.
func (f *Image) WriteHeatJPG(writer io.Writer, plane int32, min, max, gamma float32, quality int) error {
	data, err := f.Plane(plane)
	if err != nil {
		return err
	}

	width, height := int(f.Naxisn[0]), int(f.PlanePixels()/f.Naxisn[0])
	img := image.NewRGBA(image.Rectangle{image.Point{0, 0}, image.Point{width, height}})
	scale := 1.0 / (max - min)
	gammaInv := float64(1.0 / gamma)
	for y := 0; y < height; y++ {
		yoffset := y * width
		for x := 0; x < width; x++ {
			v := clampUnit((data[yoffset+x] - min) * scale)
			if gammaInv != 1.0 {
				v = float32(math.Pow(float64(v), gammaInv))
			}
			// hue 240 (blue) down to 0 (red), full saturation, value tracks intensity
			c := colorful.Hsv(240*(1-float64(v)), 1, float64(v))
			r, g, b := c.RGB255()
			img.SetRGBA(x, y, color.RGBA{r, g, b, 255})
		}
	}

	return jpeg.Encode(writer, img, &jpeg.Options{Quality: quality})
}

// Write a grayscale plane of the image to 16-bit TIFF, using the given min, max and gamma.
func (f *Image) WriteMonoTIFF16ToFile(fileName string, plane int32, min, max, gamma float32) error {
	file, err := os.Create(fileName)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	defer writer.Flush()

	return f.WriteMonoTIFF16(writer, plane, min, max, gamma)
}

// Write a grayscale plane of the image to 16-bit TIFF, using the given min, max and gamma.
func (f *Image) WriteMonoTIFF16(writer io.Writer, plane int32, min, max, gamma float32) error {
	data, err := f.Plane(plane)
	if err != nil {
		return err
	}

	width, height := int(f.Naxisn[0]), int(f.PlanePixels()/f.Naxisn[0])
	img := image.NewGray16(image.Rectangle{image.Point{0, 0}, image.Point{width, height}})
	scale := 1 / (max - min)
	gammaInv := float64(1.0 / gamma)
	for y := 0; y < height; y++ {
		yoffset := y * width
		for x := 0; x < width; x++ {
			gray := clampUnit((data[yoffset+x] - min) * scale)
			if gammaInv != 1.0 {
				gray = float32(math.Pow(float64(gray), gammaInv))
			}
			img.SetGray16(x, y, color.Gray16{uint16(gray * 65535)})
		}
	}

	return tiff.Encode(writer, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
}
