package viz

import (
	"strings"
	"testing"
)

func TestCanvasSetAndString(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)
	c.Set(-1, 0)
	c.Set(4, 0)

	if !c.IsSet(0, 0) || !c.IsSet(3, 3) {
		t.Error("expected dots to be lit")
	}
	if c.IsSet(1, 0) {
		t.Error("unexpected dot")
	}
	if got := c.String(); got != "⠁⢀\n" {
		t.Errorf("unexpected render %q", got)
	}

	c.Clear()
	if strings.ContainsFunc(c.String(), func(r rune) bool { return r != brailleBlank && r != '\n' }) {
		t.Error("clear left dots behind")
	}
}

func TestDrawLineEndpoints(t *testing.T) {
	c := NewCanvas(10, 5)
	c.DrawLine(1, 1, 15, 9)
	if !c.IsSet(1, 1) || !c.IsSet(15, 9) {
		t.Error("line endpoints not drawn")
	}
}

func TestDrawCircleSymmetry(t *testing.T) {
	c := NewCanvas(20, 10)
	c.DrawCircle(20, 20, 8)

	for _, pt := range [][2]int{{28, 20}, {12, 20}, {20, 28}, {20, 12}} {
		if !c.IsSet(pt[0], pt[1]) {
			t.Errorf("expected %v on the circle", pt)
		}
	}
	if c.IsSet(20, 20) {
		t.Error("circle outline should not fill the centre")
	}

	c.Clear()
	c.DrawCircle(5, 5, 0)
	if !c.IsSet(5, 5) {
		t.Error("zero radius should mark the centre")
	}
}
