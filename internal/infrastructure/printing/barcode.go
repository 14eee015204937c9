package printing

import (
	"fmt"
	"image/color"

	"github.com/boombuler/barcode/code128"
)

// Bar is a run of dark modules in a linear barcode
type Bar struct {
	Start int // first module, counted from the left edge of the symbol
	Width int // number of modules
}

// Symbol is a linear barcode reduced to its dark bars
type Symbol struct {
	Content string
	Modules int // total width in modules, quiet zones excluded
	Bars    []Bar
}

// Code128Bars encodes content as Code128 and returns its bar runs
func Code128Bars(content string) (*Symbol, error) {
	if content == "" {
		return nil, fmt.Errorf("barcode content is empty")
	}

	code, err := code128.Encode(content)
	if err != nil {
		return nil, err
	}

	bounds := code.Bounds()
	sym := &Symbol{
		Content: content,
		Modules: bounds.Dx(),
	}

	start := -1
	for x := bounds.Min.X; x < bounds.Max.X; x++ {
		dark := isDark(code.At(x, bounds.Min.Y))
		switch {
		case dark && start < 0:
			start = x
		case !dark && start >= 0:
			sym.Bars = append(sym.Bars, Bar{Start: start - bounds.Min.X, Width: x - start})
			start = -1
		}
	}
	if start >= 0 {
		sym.Bars = append(sym.Bars, Bar{Start: start - bounds.Min.X, Width: bounds.Max.X - start})
	}

	return sym, nil
}

func isDark(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	return r+g+b < 3*0x8000
}
