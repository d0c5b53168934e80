package blades

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/vovakirdan/twisty-blades/internal/knife"
)

// Panel is the overlay shown above the arena.
type Panel int

const (
	PanelNone Panel = iota
	PanelIntro
	PanelVictory
	PanelLose
)

func (p Panel) String() string {
	switch p {
	case PanelIntro:
		return "intro"
	case PanelVictory:
		return "victory"
	case PanelLose:
		return "lose"
	default:
		return "none"
	}
}

const (
	panelFadeSeconds  = 0.5
	introPanelSeconds = 1.5
)

// HUD holds what the level panel shows. It implements knife.Presenter.
type HUD struct {
	remaining int
	timeLeft  float64

	panel   Panel
	fade    *gween.Tween
	alpha   float64
	visible float64 // Seconds the current panel has been up
}

var _ knife.Presenter = (*HUD)(nil)

// NewHUD creates an empty HUD.
func NewHUD() *HUD {
	return &HUD{}
}

func (h *HUD) UpdateScore(remaining int) {
	h.remaining = remaining
}

func (h *HUD) UpdateTimer(seconds float64) {
	h.timeLeft = max(0, seconds)
}

func (h *HUD) ShowVictory() {
	h.show(PanelVictory)
}

func (h *HUD) ShowLose() {
	h.show(PanelLose)
}

// ShowIntro shows the level title briefly.
func (h *HUD) ShowIntro() {
	h.show(PanelIntro)
}

// Hide removes the current panel.
func (h *HUD) Hide() {
	h.panel = PanelNone
	h.fade = nil
	h.alpha = 0
}

// show fades a panel in, replacing the current one at once.
func (h *HUD) show(p Panel) {
	h.panel = p
	h.fade = gween.New(0, 1, panelFadeSeconds, ease.Linear)
	h.alpha = 0
	h.visible = 0
}

// Update advances the fade by dt seconds.
func (h *HUD) Update(dt float64) {
	if h.panel == PanelNone {
		return
	}
	h.visible += dt
	if h.fade != nil {
		alpha, done := h.fade.Update(float32(dt))
		h.alpha = float64(alpha)
		if done {
			h.alpha = 1
			h.fade = nil
		}
	}
	if h.panel == PanelIntro && h.visible >= introPanelSeconds {
		h.Hide()
	}
}

// Panel returns the panel being shown.
func (h *HUD) Panel() Panel {
	return h.panel
}

// Alpha returns the panel opacity in [0, 1].
func (h *HUD) Alpha() float64 {
	return h.alpha
}

// Remaining returns the knives still required.
func (h *HUD) Remaining() int {
	return h.remaining
}

// TimeLeft returns the seconds left on the level clock.
func (h *HUD) TimeLeft() float64 {
	return h.timeLeft
}
