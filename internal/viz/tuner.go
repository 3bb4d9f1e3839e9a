package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/catasim/internal/catapult"
	"github.com/san-kum/catasim/internal/optim"
)

const (
	paramPull = iota
	paramAngle
)

var paramSteps = [...]float64{
	paramPull:  0.005,
	paramAngle: 1.0,
}

// Tuner adjusts pull and angle of a loaded catapult and shows the launch
// that results.
type Tuner struct {
	cat         *catapult.Catapult
	angle       float64
	startPull   float64
	startAngle  float64
	cursor      int
	err         error
	width       int
	height      int
	sweepPoints []optim.SweepPoint
}

func NewTuner(c *catapult.Catapult, angle float64) Tuner {
	t := Tuner{
		cat:        c,
		angle:      angle,
		startPull:  c.Pull(),
		startAngle: angle,
		width:      80,
		height:     24,
	}
	t.refresh()
	return t
}

func RunTuner(c *catapult.Catapult, angle float64) error {
	_, err := tea.NewProgram(NewTuner(c, angle), tea.WithAltScreen()).Run()
	return err
}

func (t Tuner) Init() tea.Cmd { return nil }

func (t Tuner) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return t.handleKey(msg)
	case tea.WindowSizeMsg:
		t.width, t.height = msg.Width, msg.Height
	}
	return t, nil
}

func (t Tuner) handleKey(msg tea.KeyMsg) (Tuner, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return t, tea.Quit
	case "up", "k":
		if t.cursor > 0 {
			t.cursor--
		}
	case "down", "j":
		if t.cursor < paramAngle {
			t.cursor++
		}
	case "left", "h":
		t.adjust(-paramSteps[t.cursor])
	case "right", "l":
		t.adjust(paramSteps[t.cursor])
	case "r":
		t.angle = t.startAngle
		t.err = t.cat.SetPull(t.startPull)
		t.refresh()
	}
	return t, nil
}

func (t *Tuner) adjust(delta float64) {
	switch t.cursor {
	case paramPull:
		t.err = t.cat.SetPull(t.cat.Pull() + delta)
		t.refresh()
	case paramAngle:
		t.angle += delta
		t.err = nil
	}
}

func (t *Tuner) refresh() {
	pts, err := optim.Sweep(t.cat, 0, 90, 5)
	if err != nil {
		t.err = err
		t.sweepPoints = nil
		return
	}
	t.sweepPoints = pts
}

func (t Tuner) Pull() float64  { return t.cat.Pull() }
func (t Tuner) Angle() float64 { return t.angle }
func (t Tuner) Err() error     { return t.err }

func (t Tuner) View() string {
	var b strings.Builder
	b.WriteString(Title.Render("catasim tuner"))
	b.WriteString("\n\n")

	names := []string{"pull (m)", "angle (deg)"}
	values := []float64{t.cat.Pull(), t.angle}
	for i, name := range names {
		line := fmt.Sprintf("%-12s %8.3f", name, values[i])
		if i == t.cursor {
			b.WriteString(Selected.Render("> " + line))
		} else {
			b.WriteString(MetricLabel.Render("  " + line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	report, err := t.cat.SimulateLaunch(t.angle)
	if err != nil {
		b.WriteString(ErrorText.Render(err.Error()))
		b.WriteString("\n")
	} else {
		b.WriteString(RenderReport(report))
		b.WriteString("\n")
		if best := t.maxRange(); best > 0 {
			b.WriteString(MetricLabel.Render("of best  "))
			b.WriteString(ProgressBar(report.RangeM/best, 30))
			b.WriteString("\n")
		}
	}

	if t.err != nil {
		b.WriteString(ErrorText.Render(t.err.Error()))
		b.WriteString("\n")
	}

	if len(t.sweepPoints) > 0 && t.height > 30 {
		b.WriteString("\n")
		b.WriteString(RangeCurve(t.sweepPoints, t.width-12, 8))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(KeyHint.Render("↑/↓ select  ←/→ adjust  r reset  q quit"))
	return b.String()
}

func (t Tuner) maxRange() float64 {
	best := 0.0
	for _, p := range t.sweepPoints {
		if p.RangeM > best {
			best = p.RangeM
		}
	}
	return best
}
