package draw

import (
	"bytes"
	"strings"
	"testing"
)

func TestFillRectScalesToPixels(t *testing.T) {
	// 10 columns x 5 rows -> 10 x 10 pixels over a 100 x 100 playfield.
	c := NewScaledCanvas(10, 5, 100, 100)
	c.FillRect(20, 30, 20, 20, ColorRed)

	for y := range 10 {
		for x := range 10 {
			want := ColorNone
			if x >= 2 && x <= 3 && y >= 3 && y <= 4 {
				want = ColorRed
			}
			if got := c.At(x, y); got != want {
				t.Fatalf("pixel (%d,%d) = %d, want %d", x, y, got, want)
			}
		}
	}
}

func TestFillRectNeverVanishes(t *testing.T) {
	c := NewScaledCanvas(10, 5, 1000, 1000)
	c.FillRect(500, 500, 1, 1, ColorWhite)
	if c.At(5, 5) != ColorWhite {
		t.Fatal("sub-pixel rectangle was not drawn")
	}
}

func TestRenderHalfBlocks(t *testing.T) {
	c := NewScaledCanvas(3, 1, 3, 2)
	c.SetFloat(0, 0, ColorRed)   // top of cell 1
	c.SetFloat(1, 1, ColorBlue)  // bottom of cell 2
	c.SetFloat(2, 0, ColorGreen) // cell 3: both halves, two colours
	c.SetFloat(2, 1, ColorBlue)
	c.SetOffset(4, 2)

	var out bytes.Buffer
	if err := c.Render(&out); err != nil {
		t.Fatal(err)
	}
	s := out.String()

	for _, want := range []string{
		"\033[3;5H\033[38;5;196m▀",
		"\033[3;6H\033[38;5;33m▄",
		"\033[3;7H\033[38;5;46m\033[48;5;33m▀",
	} {
		if !strings.Contains(s, want) {
			t.Errorf("render output missing %q in %q", want, s)
		}
	}
}

func TestRenderSkipsEmptyCanvas(t *testing.T) {
	c := NewScaledCanvas(20, 10, 100, 100)
	var out bytes.Buffer
	if err := c.Render(&out); err != nil {
		t.Fatal(err)
	}
	if out.Len() != 0 {
		t.Fatalf("empty canvas rendered %d bytes", out.Len())
	}
}

func TestChunkWriterFlush(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out)
	cw.WriteAt(3, 2, strings.Repeat("x", 3000))
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out.String(), "\033[2;3H") || out.Len() != len("\033[2;3H")+3000 {
		t.Fatalf("unexpected output length %d", out.Len())
	}
	if cw.Len() != 0 {
		t.Fatal("buffer not reset after Flush")
	}
}

func TestRenderOnlyRepaintsChanges(t *testing.T) {
	c := NewScaledCanvas(4, 2, 4, 4)
	c.FillRect(0, 0, 1, 2, ColorRed)

	var out bytes.Buffer
	if err := c.Render(&out); err != nil {
		t.Fatal(err)
	}
	if out.Len() == 0 {
		t.Fatal("first render wrote nothing")
	}

	out.Reset()
	if err := c.Render(&out); err != nil {
		t.Fatal(err)
	}
	if out.Len() != 0 {
		t.Fatalf("unchanged frame wrote %q", out.String())
	}

	c.Clear()
	out.Reset()
	if err := c.Render(&out); err != nil {
		t.Fatal(err)
	}
	if out.String() != "\033[1;1H " {
		t.Fatalf("erase wrote %q, want a single blank", out.String())
	}

	c.MarkTextDirty(2, 2, 2)
	out.Reset()
	if err := c.Render(&out); err != nil {
		t.Fatal(err)
	}
	if out.String() != "\033[2;2H \033[2;3H " {
		t.Fatalf("dirty cells wrote %q", out.String())
	}
}
