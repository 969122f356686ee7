package pick

import (
	"log/slog"

	"github.com/gogpu/pick/render"
)

// ParallelSelector runs a Selector as one participant of a distributed
// render where several processes draw the same scene and only the root
// process owns the composited pixels.
//
// On the root, CaptureBuffers behaves exactly like Selector.CaptureBuffers.
// On every other participant it never renders or reads back anything.
// Instead it follows the externally driven render loop: each post-render
// notification advances the current pass, skipping passes that are not
// required, so drawables emit the same per-pass encoding as on the root.
// The external driver must render once per pass on all participants in
// lock-step; the selector does not detect a loop that drifts or stalls.
type ParallelSelector struct {
	*Selector

	events render.EventSource
	root   bool

	preSub, postSub render.Subscription
	subscribed      bool

	onStart []func()
	onEnd   []func()
}

// NewParallelSelector wraps s. events delivers the render notifications a
// non-root participant follows; root selects the capturing role.
func NewParallelSelector(s *Selector, events render.EventSource, root bool) *ParallelSelector {
	return &ParallelSelector{Selector: s, events: events, root: root}
}

// IsRoot reports whether this participant captures pixels.
func (p *ParallelSelector) IsRoot() bool { return p.root }

// OnSelectionStart registers fn to run when a non-root capture starts.
func (p *ParallelSelector) OnSelectionStart(fn func()) {
	p.onStart = append(p.onStart, fn)
}

// OnSelectionEnd registers fn to run when a non-root capture has followed
// its last pass.
func (p *ParallelSelector) OnSelectionEnd(fn func()) {
	p.onEnd = append(p.onEnd, fn)
}

// CaptureBuffers starts a capture. On the root it captures every pass
// before returning. Elsewhere it subscribes to the render notifications
// and returns at once; the capture ends after the post-render notification
// of the last required pass.
func (p *ParallelSelector) CaptureBuffers() error {
	if p.root {
		return p.Selector.CaptureBuffers()
	}
	if p.events == nil {
		return ErrNoEventSource
	}

	for _, fn := range p.onStart {
		fn()
	}
	p.BeginSelection()
	p.unsubscribe()
	p.preSub = p.events.Subscribe(render.EventPreRender, p.preRender)
	p.postSub = p.events.Subscribe(render.EventPostRender, p.postRender)
	p.subscribed = true

	p.currentPass = p.nextRequired(MinKnownPass)
	return nil
}

func (p *ParallelSelector) preRender() {
	if !p.inProgress {
		return
	}
	p.props.beginPass()
	p.hooks.PreCapturePass(p.Selector, p.currentPass)
}

func (p *ParallelSelector) postRender() {
	if !p.inProgress {
		return
	}
	p.hooks.PostCapturePass(p.Selector, p.currentPass)
	Logger().Debug("pick: pass followed", slog.String("pass", p.currentPass.String()))

	p.currentPass = p.nextRequired(p.currentPass + 1)
	if p.currentPass <= MaxKnownPass {
		return
	}
	p.unsubscribe()
	p.EndSelection()
	for _, fn := range p.onEnd {
		fn()
	}
}

// nextRequired returns the first required pass at or after from, or a
// value past MaxKnownPass.
func (p *ParallelSelector) nextRequired(from Pass) Pass {
	for from <= MaxKnownPass && !p.IsPassRequired(from) {
		from++
	}
	return from
}

func (p *ParallelSelector) unsubscribe() {
	if !p.subscribed {
		return
	}
	p.events.Unsubscribe(p.preSub)
	p.events.Unsubscribe(p.postSub)
	p.subscribed = false
}
