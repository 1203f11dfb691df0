// Package cycle implements the auto-advancing presentation state machine.
package cycle

import (
	"github.com/GregLauar/Progress-Dashboard/internal/config"
	"github.com/GregLauar/Progress-Dashboard/internal/model"
)

// State is the cycler lifecycle state.
type State int

const (
	Off State = iota
	Running
)

// Cycler steps through a fixed playlist of views in strict round-robin
// order. It owns only the ordering; the host (TUI tick or daemon poll)
// decides when a tick happens and renders the view the cycler hands out.
// Stopping is cooperative: it takes effect at the next tick boundary.
type Cycler struct {
	views []model.ViewSpec
	state State
	index int
}

// New builds a cycler over an immutable playlist.
func New(views []model.ViewSpec) *Cycler {
	return &Cycler{views: views}
}

// Start transitions off→running. The index is kept across stop/start so a
// resumed presentation continues where it left off.
func (c *Cycler) Start() { c.state = Running }

// Stop transitions running→off.
func (c *Cycler) Stop() { c.state = Off }

// State returns the current lifecycle state.
func (c *Cycler) State() State { return c.state }

// Len returns the playlist length.
func (c *Cycler) Len() int { return len(c.views) }

// Index returns the zero-based position of the view Tick would return next.
func (c *Cycler) Index() int { return c.index }

// Current returns the view at the current index without advancing.
func (c *Cycler) Current() (model.ViewSpec, bool) {
	if c.state != Running || len(c.views) == 0 {
		return model.ViewSpec{}, false
	}
	return c.views[c.index], true
}

// Tick returns the view to render now and advances the index modulo the
// playlist length. It returns false when the cycler is off or empty; there
// is no terminal state other than an external Stop.
func (c *Cycler) Tick() (model.ViewSpec, bool) {
	view, ok := c.Current()
	if !ok {
		return model.ViewSpec{}, false
	}
	c.index = (c.index + 1) % len(c.views)
	return view, true
}

// Playlist builds the configured view list, falling back to the stock
// rotation (AuM, Revenues, Profit, then the OKR overview slide).
func Playlist(cfg config.Config) []model.ViewSpec {
	var views []model.ViewSpec

	if len(cfg.Presentation.Views) > 0 {
		for _, v := range cfg.Presentation.Views {
			views = append(views, model.ViewSpec{
				Kind:       model.ViewChart,
				Title:      v.Title,
				Table:      model.TableRef(v.Table),
				Category:   v.Category,
				Cumulative: v.Cumulative,
			})
		}
	} else {
		views = []model.ViewSpec{
			{Kind: model.ViewChart, Title: "AuM (BRL)", Table: model.TableAuM, Category: model.CategoryAuM},
			{Kind: model.ViewChart, Title: "Revenues (BRL)", Table: model.TableBudget, Category: model.CategoryRevenues},
			{Kind: model.ViewChart, Title: "Profit (BRL)", Table: model.TableBudget, Category: model.CategoryProfit},
		}
	}

	if cfg.Presentation.IncludeOKR {
		views = append(views, model.ViewSpec{Kind: model.ViewOKR, Title: "OKR Progress"})
	}

	return views
}
