package pick

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/pick/internal/pixbuf"
	"github.com/gogpu/pick/render"
)

// BeginSelection starts a capture: it releases the buffers of the previous
// capture, forgets its drawables and rewinds to the ACTOR pass.
// CaptureBuffers calls it; manual drivers call it before the first pass.
func (s *Selector) BeginSelection() {
	s.ReleasePixBuffers()
	s.currentPass = MinKnownPass
	s.inProgress = true
	Logger().Info("pick: selection started",
		slog.String("area", s.area.String()),
		slog.String("association", s.fieldAssociation.String()))
}

// EndSelection marks the capture complete and forgets the recorded id
// maxima. Buffers stay valid for the Generate* queries until
// ReleasePixBuffers.
func (s *Selector) EndSelection() {
	s.inProgress = false
	s.maxPointID = 0
	s.maxCellID = 0
	s.maxCellGridTupleID = 0
	Logger().Info("pick: selection finished", slog.Int("hits", len(s.props.hitIDs())))
}

// IsPassRequired reports whether pass runs in the current configuration.
// HIGH24 passes depend on the maxima recorded so far, so the answer for
// them may change while earlier passes render.
func (s *Selector) IsPassRequired(pass Pass) bool {
	if pass == PassActor {
		return true
	}
	if s.actorOnly {
		return false
	}
	switch pass {
	case PassCompositeIndex:
		return true
	case PassPointIDLow24:
		return s.fieldAssociation == FieldAssociationPoints
	case PassPointIDHigh24:
		return s.fieldAssociation == FieldAssociationPoints && s.HasHighPointIDs()
	case PassProcess:
		return s.processID >= 0 || s.processFromData
	case PassCellIDLow24:
		return s.fieldAssociation == FieldAssociationCells
	case PassCellIDHigh24:
		return s.fieldAssociation == FieldAssociationCells && s.HasHighCellIDs()
	case PassCellGridTypeIndex, PassCellGridSourceIndex, PassCellGridTupleLow24:
		return s.cellGrid
	case PassCellGridTupleHigh24:
		return s.cellGrid && s.HasHighCellGridTupleIDs()
	default:
		return false
	}
}

// RequiredPasses returns the passes a capture would run if it started now.
func (s *Selector) RequiredPasses() []Pass {
	var passes []Pass
	for p := MinKnownPass; p <= MaxKnownPass; p++ {
		if s.IsPassRequired(p) {
			passes = append(passes, p)
		}
	}
	return passes
}

// CaptureBuffers renders and captures every required pass.
//
// It fails with ErrNoRenderTarget, ErrNoRenderer or ErrEmptyArea before
// touching any state. The area is clipped to the target first. A render or
// readback error stops the capture; the selection is still ended and the
// passes captured so far stay available.
func (s *Selector) CaptureBuffers() error {
	if s.target == nil {
		return ErrNoRenderTarget
	}
	if s.renderer == nil {
		return ErrNoRenderer
	}
	bounds := Area{XMax: s.target.Width() - 1, YMax: s.target.Height() - 1}
	area := s.area.Intersect(bounds)
	if area.Empty() {
		return fmt.Errorf("%w: %v inside %v", ErrEmptyArea, s.area, bounds)
	}
	s.area = area

	s.BeginSelection()
	defer s.EndSelection()

	for ; s.currentPass <= MaxKnownPass; s.currentPass++ {
		if !s.IsPassRequired(s.currentPass) {
			continue
		}
		if err := s.capturePass(s.currentPass); err != nil {
			return err
		}
	}
	return nil
}

func (s *Selector) capturePass(pass Pass) error {
	s.props.beginPass()
	s.hooks.PreCapturePass(s, pass)
	if err := s.renderer.RenderPass(s, pass); err != nil {
		return fmt.Errorf("pick: render %v pass: %w", pass, err)
	}
	if err := s.SavePixelBuffer(pass); err != nil {
		return err
	}
	s.hooks.PostCapturePass(s, pass)
	return nil
}

// SavePixelBuffer reads the capture area back from the target into the
// buffer of pass. Saving the ACTOR pass also captures depth when enabled
// and builds the hit list. Every hit drawable implementing PixelProcessor
// is then given the chance to rewrite the processed buffer.
func (s *Selector) SavePixelBuffer(pass Pass) error {
	rgb, err := render.ReadRGB(s.target, s.area.Rect())
	if err != nil {
		Logger().Warn("pick: readback failed", slog.String("pass", pass.String()), slog.Any("err", err))
		return fmt.Errorf("pick: read %v pass: %w", pass, err)
	}

	w, h := s.area.Width(), s.area.Height()
	switch {
	case s.store == nil:
		s.store = pixbuf.New(w, h)
	case s.store.Width() != w || s.store.Height() != h:
		s.store.Reset(w, h)
	}
	if !s.store.Save(int(pass), rgb) {
		return fmt.Errorf("pick: read %v pass: got %d bytes for %dx%d", pass, len(rgb), w, h)
	}

	if pass == PassActor {
		if s.captureZ {
			s.saveDepth()
		}
		s.props.build(s.store)
	}
	s.processPixelBuffers(pass)

	Logger().Debug("pick: pass captured",
		slog.String("pass", pass.String()),
		slog.Int("width", w),
		slog.Int("height", h),
		slog.Int("hits", len(s.props.hitIDs())))
	return nil
}

func (s *Selector) saveDepth() {
	depth, err := render.ReadDepth(s.target, s.area.Rect())
	if err != nil {
		Logger().Warn("pick: depth capture failed", slog.Any("err", err))
		return
	}
	s.store.SaveDepth(depth)
}

func (s *Selector) processPixelBuffers(pass Pass) {
	for _, id := range s.props.hitIDs() {
		if pp, ok := s.props.prop(id).(PixelProcessor); ok {
			pp.ProcessSelectorPixelBuffers(s, pass, s.props.pixelsOf(id))
		}
	}
}

// ReleasePixBuffers frees every captured buffer and the drawable registry.
// It is idempotent.
func (s *Selector) ReleasePixBuffers() {
	if s.store != nil {
		s.store.Release()
	}
	s.props.reset()
}

// ClearBuffers is ReleasePixBuffers.
func (s *Selector) ClearBuffers() {
	s.ReleasePixBuffers()
}
