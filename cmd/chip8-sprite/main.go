package main

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/pkg/errors"

	"github.com/hexaflex/chip8/devices/cpu"
)

// These define pixel dimensions for a single sprite. A DRW instruction
// draws at most 15 rows.
const (
	SpriteWidth     = 8
	SpriteMaxHeight = 15
)

func main() {
	config := parseArgs()
	img := loadImage(config)

	out, close := makeWriter(config)
	defer close()

	sprites := translate(img)

	var err error
	if config.Source {
		err = writeSource(out, sprites)
	} else {
		err = writeRaw(out, sprites)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// translate cuts the image into columns SpriteWidth pixels wide and each
// column into sprites of at most SpriteMaxHeight rows. Sprites are ordered
// left to right, then top to bottom. A pixel is set when it is opaque and
// not black.
func translate(img image.Image) [][]byte {
	r := img.Bounds()
	columns := r.Dx() / SpriteWidth

	var sprites [][]byte
	for sy := r.Min.Y; sy < r.Max.Y; sy += SpriteMaxHeight {
		rows := r.Max.Y - sy
		if rows > SpriteMaxHeight {
			rows = SpriteMaxHeight
		}

		for x := 0; x < columns; x++ {
			sx := r.Min.X + x*SpriteWidth
			sprite := make([]byte, rows)

			for py := 0; py < rows; py++ {
				for px := 0; px < SpriteWidth; px++ {
					if lit(img, sx+px, sy+py) {
						sprite[py] |= 0x80 >> px
					}
				}
			}

			sprites = append(sprites, sprite)
		}
	}

	return sprites
}

func lit(img image.Image, x, y int) bool {
	r, g, b, a := img.At(x, y).RGBA()
	return a != 0 && r|g|b != 0
}

// writeRaw writes the sprites back to back, ready to be appended to a ROM.
func writeRaw(out io.Writer, sprites [][]byte) error {
	for _, s := range sprites {
		if _, err := out.Write(s); err != nil {
			return errors.Wrapf(err, "failed to write sprite data")
		}
	}
	return nil
}

// writeSource writes the sprites as assembler source. Each sprite gets a
// label and one db line per row, commented with a '#'/'.' picture.
func writeSource(out io.Writer, sprites [][]byte) error {
	for i, s := range sprites {
		if _, err := fmt.Fprintf(out, ":sprite%d ; %d rows\n", i, len(s)); err != nil {
			return errors.Wrapf(err, "failed to write sprite listing")
		}

		for _, row := range s {
			if _, err := fmt.Fprintf(out, "\tdb 16#%02x ; %s\n", row, picture(row)); err != nil {
				return errors.Wrapf(err, "failed to write sprite listing")
			}
		}
	}

	return nil
}

// picture renders one sprite row, most significant bit first.
func picture(row byte) string {
	var p [SpriteWidth]byte
	for i := range p {
		p[i] = '.'
		if row&(0x80>>i) != 0 {
			p[i] = '#'
		}
	}
	return string(p[:])
}

// loadImage loads an image from the input file.
func loadImage(c *Config) image.Image {
	fd, err := os.Open(c.Input)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	defer fd.Close()

	img, _, err := image.Decode(fd)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	r := img.Bounds()
	if r.Dx() < SpriteWidth || r.Dy() < 1 {
		fmt.Fprintf(os.Stderr, "source image is too small; expected at least %d x 1 pixels\n", SpriteWidth)
		os.Exit(1)
	}

	if r.Dx() > cpu.Width || r.Dy() > cpu.Height {
		fmt.Fprintf(os.Stderr, "warning: image is larger than the %d x %d display\n", cpu.Width, cpu.Height)
	}

	return img
}

// makeWriter creates an output writer and a cleanup function for it.
func makeWriter(c *Config) (io.Writer, func()) {
	if c.Output == "" {
		return os.Stdout, func() {}
	}

	dir, _ := filepath.Split(c.Output)
	if dir != "" {
		err := os.MkdirAll(dir, 0744)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	fd, err := os.Create(c.Output)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	return fd, func() { fd.Close() }
}
