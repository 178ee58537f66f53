package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/orbitsim/internal/dynamo"
)

const (
	canvasCols   = 60
	canvasRows   = 24
	frameRate    = time.Second / 30
	chartSamples = 60
	maxSpeed     = 64
)

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(frameRate, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Player replays a recorded timeline in the terminal.
type Player struct {
	title    string
	timeline []dynamo.Snapshot
	frame    int
	speed    int
	playing  bool
	showHelp bool
	theme    Theme
	canvas   *Canvas
	extent   float64
}

// NewPlayer starts playback of timeline from its first frame.
func NewPlayer(title string, timeline []dynamo.Snapshot) Player {
	p := Player{
		title:    title,
		timeline: timeline,
		speed:    1,
		playing:  len(timeline) > 1,
		theme:    Themes[0],
		canvas:   NewCanvas(canvasCols, canvasRows),
	}
	p.extent = sceneExtent(timeline)
	return p
}

// WithTheme returns a copy of the player drawn in theme t.
func (p Player) WithTheme(t Theme) Player {
	p.theme = t
	return p
}

// Frame is the index of the snapshot on screen.
func (p Player) Frame() int { return p.frame }

func (p Player) Playing() bool { return p.playing }

func (p Player) Theme() Theme { return p.theme }

func (p Player) Init() tea.Cmd {
	return tick()
}

func (p Player) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return p, tea.Quit
		case " ":
			if !p.playing && p.frame >= len(p.timeline)-1 {
				p.frame = 0
			}
			p.playing = !p.playing && len(p.timeline) > 1
		case "[":
			p.playing = false
			p.seek(-p.speed)
		case "]":
			p.playing = false
			p.seek(p.speed)
		case "r":
			p.frame = 0
		case "+", "=":
			p.speed = min(p.speed*2, maxSpeed)
		case "-", "_":
			p.speed = max(p.speed/2, 1)
		case "t":
			p.theme = nextTheme(p.theme)
		case "?":
			p.showHelp = !p.showHelp
		}
	case tickMsg:
		if p.playing {
			p.seek(p.speed)
			if p.frame >= len(p.timeline)-1 {
				p.playing = false
			}
		}
		return p, tick()
	}
	return p, nil
}

func (p *Player) seek(delta int) {
	if len(p.timeline) == 0 {
		return
	}
	p.frame = max(0, min(p.frame+delta, len(p.timeline)-1))
}

func (p Player) View() string {
	if len(p.timeline) == 0 {
		return "no frames to play\n"
	}

	p.draw()
	primary := lipgloss.NewStyle().Foreground(p.theme.Primary)
	header := lipgloss.NewStyle().Bold(true).Foreground(p.theme.Accent)
	label := lipgloss.NewStyle().Foreground(p.theme.Muted).Width(12)
	value := lipgloss.NewStyle().Foreground(p.theme.Text)

	snap := p.timeline[p.frame]
	var s strings.Builder
	s.WriteString(header.Render(strings.ToUpper(p.title)) + "\n")
	if p.playing {
		s.WriteString(StatusRunning.Render(fmt.Sprintf("PLAYING x%d", p.speed)) + "\n\n")
	} else {
		s.WriteString(StatusPaused.Render("PAUSED") + "\n\n")
	}

	s.WriteString(label.Render("Time") + value.Render(fmt.Sprintf("%.3f", snap.T)) + "\n")
	s.WriteString(label.Render("Frame") + value.Render(fmt.Sprintf("%d/%d", p.frame+1, len(p.timeline))) + "\n")
	s.WriteString(label.Render("Star") + value.Render(snap.Star.TypeName) + "\n")
	if len(snap.Particles) > 0 {
		r := snap.Particles[0].Radius()
		zone := "outside HZ"
		if snap.HabitableZone.Contains(r) {
			zone = "in HZ"
		}
		s.WriteString(label.Render("Radius") + value.Render(fmt.Sprintf("%.3f (%s)", r, zone)) + "\n")
	}
	s.WriteString(Subtle.Render(ProgressBar(float64(p.frame)/float64(max(len(p.timeline)-1, 1)), 30)) + "\n")

	if radii := p.radiusHistory(); len(radii) > 1 {
		chart := asciigraph.Plot(radii, asciigraph.Height(6), asciigraph.Width(30), asciigraph.Caption("radius"))
		s.WriteString("\n" + primary.Render(chart) + "\n")
	}

	s.WriteString(KeyHint.Render("\nspace:play/pause [ ]:scrub +/-:speed\nr:rewind t:theme ?:help q:quit"))

	canvasView := lipgloss.NewStyle().Foreground(p.theme.Secondary).Padding(1, 2).Render(p.canvas.String())
	main := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, GlassPanel.Render(s.String()))
	if p.showHelp {
		return helpText + "\n" + main
	}
	return main
}

const helpText = `  space  pause or resume playback
  [ ]    step back or forward, pausing playback
  + -    double or halve the playback speed
  r      rewind to the first frame
  t      cycle colour themes
  q      quit`

func (p Player) project(x, y float64) (int, int) {
	w, h := p.canvas.PixelWidth(), p.canvas.PixelHeight()
	scale := math.Min(float64(w), float64(h)) / (2 * p.extent)
	return w/2 + int(math.Round(x*scale)), h/2 - int(math.Round(y*scale))
}

func (p Player) draw() {
	c := p.canvas
	c.Clear()

	cx, cy := p.project(0, 0)
	c.FillDisc(cx, cy, 1)

	hz := p.timeline[0].HabitableZone
	if hz.Outer > 0 {
		ix, _ := p.project(hz.Inner, 0)
		ox, _ := p.project(hz.Outer, 0)
		c.DrawCircle(cx, cy, ix-cx)
		c.DrawCircle(cx, cy, ox-cx)
	}

	current := p.timeline[p.frame]
	for i := range current.Particles {
		px, py := p.project(p.timeline[0].Particles[i].X, p.timeline[0].Particles[i].Y)
		for _, snap := range p.timeline[1 : p.frame+1] {
			if i >= len(snap.Particles) {
				break
			}
			nx, ny := p.project(snap.Particles[i].X, snap.Particles[i].Y)
			c.DrawLine(px, py, nx, ny)
			px, py = nx, ny
		}
		c.FillDisc(px, py, 1)
	}
}

// radiusHistory samples the first particle's radius up to the current
// frame, downsampled for the chart.
func (p Player) radiusHistory() []float64 {
	if len(p.timeline[0].Particles) == 0 {
		return nil
	}
	n := p.frame + 1
	stride := max(n/chartSamples, 1)
	out := make([]float64, 0, chartSamples+1)
	for i := 0; i < n; i += stride {
		out = append(out, p.timeline[i].Particles[0].Radius())
	}
	return out
}

func sceneExtent(timeline []dynamo.Snapshot) float64 {
	extent := 0.0
	for _, snap := range timeline {
		extent = math.Max(extent, snap.HabitableZone.Outer)
		for _, pt := range snap.Particles {
			extent = math.Max(extent, math.Max(math.Abs(pt.X), math.Abs(pt.Y)))
		}
	}
	if extent == 0 {
		return 1
	}
	return extent * 1.1
}
