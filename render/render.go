package render

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
)

// Terminal rendering of view output, for eyeballing a run. The layout is a
// structurized 3 priority system: a per-column override, if set, takes
// highest priority; then the cell's type style (number vs string); then
// the base style.

type Style struct {
	Header  *color.Color
	Border  *color.Color
	Number  *color.Color
	String  *color.Color
	Base    *color.Color
	Column  map[int]*color.Color // per column index override
	MaxCell int                  // clip width per cell, 0 means no clip
}

func DefaultStyle() *Style {
	return &Style{
		Header:  color.New(color.Bold),
		Border:  color.New(color.Faint),
		Number:  color.New(color.FgCyan),
		String:  nil,
		Base:    nil,
		Column:  make(map[int]*color.Color),
		MaxCell: 32,
	}
}

type tableRender struct {
	style  *Style
	width  []int
	header []string
}

// Table writes header + records as an aligned, colored table.
func Table(
	w io.Writer,
	header []string,
	records [][]string,
	style *Style,
) error {
	if style == nil {
		style = DefaultStyle()
	}
	self := &tableRender{
		style:  style,
		header: header,
	}
	self.measure(records)

	if err := self.line(w, header, true); err != nil {
		return err
	}
	if err := self.border(w); err != nil {
		return err
	}
	for _, rec := range records {
		if err := self.line(w, rec, false); err != nil {
			return err
		}
	}
	return nil
}

func (self *tableRender) clip(s string) string {
	max := self.style.MaxCell
	if max > 0 && len(s) > max {
		return s[:max-3] + "..."
	}
	return s
}

func (self *tableRender) measure(records [][]string) {
	self.width = make([]int, len(self.header))
	for i, h := range self.header {
		self.width[i] = len(self.clip(h))
	}
	for _, rec := range records {
		for i, cell := range rec {
			if i >= len(self.width) {
				break
			}
			if n := len(self.clip(cell)); n > self.width[i] {
				self.width[i] = n
			}
		}
	}
}

func isNumber(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

func (self *tableRender) cellStyle(idx int, cell string, header bool) *color.Color {
	if header {
		return self.style.Header
	}
	if c, ok := self.style.Column[idx]; ok && c != nil {
		return c
	}
	if isNumber(cell) {
		if self.style.Number != nil {
			return self.style.Number
		}
	} else if self.style.String != nil {
		return self.style.String
	}
	return self.style.Base
}

func (self *tableRender) line(
	w io.Writer,
	cells []string,
	header bool,
) error {
	parts := make([]string, len(self.width))
	for i := range self.width {
		cell := ""
		if i < len(cells) {
			cell = self.clip(cells[i])
		}
		padded := cell + strings.Repeat(" ", self.width[i]-len(cell))
		if c := self.cellStyle(i, cell, header); c != nil {
			padded = c.Sprint(padded)
		}
		parts[i] = padded
	}
	_, err := fmt.Fprintf(w, "%s\n", strings.Join(parts, "  "))
	return err
}

func (self *tableRender) border(w io.Writer) error {
	parts := make([]string, len(self.width))
	for i, n := range self.width {
		dash := strings.Repeat("-", n)
		if self.style.Border != nil {
			dash = self.style.Border.Sprint(dash)
		}
		parts[i] = dash
	}
	_, err := fmt.Fprintf(w, "%s\n", strings.Join(parts, "  "))
	return err
}

// CSV writes header + records as plain CSV, the machine-facing twin of
// Table.
func CSV(
	w io.Writer,
	header []string,
	records [][]string,
) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, rec := range records {
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
