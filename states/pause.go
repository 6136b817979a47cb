package states

import (
	"github.com/charmbracelet/log"
	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/requiem/controls"
	"github.com/milk9111/requiem/input"
	"github.com/milk9111/requiem/keys"
	"github.com/milk9111/requiem/state"
)

// MenuItem is an entry of the pause menu.
type MenuItem int

const (
	ItemResume MenuItem = iota
	ItemSave
	ItemQuit
)

var menuItems = []MenuItem{ItemResume, ItemSave, ItemQuit}

func (m MenuItem) String() string {
	switch m {
	case ItemResume:
		return "Resume"
	case ItemSave:
		return "Save controls"
	case ItemQuit:
		return "Quit"
	default:
		return "?"
	}
}

type PauseConfig struct {
	Tracker *input.Tracker
	Store   *controls.Store
	Quit    func()
	Logger  *log.Logger
}

// Pause is the menu shown over a suspended state. It keeps that state and
// hands control back to it on resume.
type Pause struct {
	state.Base

	under   state.State
	tracker *input.Tracker
	store   *controls.Store
	quit    func()
	logger  *log.Logger

	selected int
	status   string
	confirm  keys.Code

	ui      *ebitenui.UI
	widgets *pauseWidgets
}

func NewPause(under state.State, cfg PauseConfig) *Pause {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	confirm, _ := keys.Lookup("K_RETURN")
	return &Pause{
		under:   under,
		tracker: cfg.Tracker,
		store:   cfg.Store,
		quit:    cfg.Quit,
		logger:  logger,
		confirm: confirm,
	}
}

// Selected returns the highlighted item.
func (p *Pause) Selected() MenuItem {
	return menuItems[p.selected]
}

// Status returns the message shown under the menu, e.g. the save result.
func (p *Pause) Status() string {
	return p.status
}

func (p *Pause) OnEnter() {
	p.selected = 0
	p.status = ""
	p.logger.Debug("paused")
}

func (p *Pause) HandleEvent(e input.Event) {
	if e.Kind == input.EventKeyDown && e.Key == p.confirm {
		p.Activate(p.Selected())
	}
}

func (p *Pause) Update(dt float64) {
	switch {
	case p.tracker.WasPressed(controls.Pause):
		p.Activate(ItemResume)
		return
	case p.tracker.WasPressed(controls.MoveUp):
		p.move(-1)
	case p.tracker.WasPressed(controls.MoveDown):
		p.move(1)
	}
	if p.ui != nil {
		p.ui.Update()
	}
}

func (p *Pause) move(step int) {
	n := len(menuItems)
	p.selected = ((p.selected+step)%n + n) % n
	p.refresh()
}

// Activate runs item as if it had been chosen from the menu.
func (p *Pause) Activate(item MenuItem) {
	for i, m := range menuItems {
		if m == item {
			p.selected = i
		}
	}
	switch item {
	case ItemResume:
		p.RequestTransition(p.under)
	case ItemSave:
		if err := p.store.Save(); err != nil {
			p.logger.Error("could not save controls", "error", err)
			p.status = "Save failed: " + err.Error()
		} else {
			p.logger.Info("saved controls", "path", p.store.Path())
			p.status = "Saved to " + p.store.Path()
		}
	case ItemQuit:
		if p.quit != nil {
			p.quit()
		}
	}
	p.refresh()
}

func (p *Pause) Render(screen *ebiten.Image) {
	if p.under != nil {
		p.under.Render(screen)
	}
	if screen == nil {
		return
	}
	if p.ui == nil {
		p.ui, p.widgets = newPauseUI(p)
		p.refresh()
	}
	p.ui.Draw(screen)
}

func (p *Pause) refresh() {
	if p.widgets != nil {
		p.widgets.show(p.selected, p.status)
	}
}
