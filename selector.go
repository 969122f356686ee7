package pick

import (
	"github.com/gogpu/pick/idcodec"
	"github.com/gogpu/pick/internal/pixbuf"
	"github.com/gogpu/pick/render"
)

// Selector drives hardware selection: it sequences the selection passes,
// captures their pixel buffers and decodes them into selections.
//
// A Selector runs one capture at a time and is NOT thread-safe. Everything
// happens synchronously on the goroutine that calls CaptureBuffers, inside
// the renderer callbacks.
//
// Typical use:
//
//	s := pick.NewSelector(pick.WithRenderer(r), pick.WithRenderTarget(t),
//	    pick.WithArea(0, 0, 99, 99))
//	sel, err := s.Select()
type Selector struct {
	renderer Renderer
	target   render.RenderTarget
	hooks    DeviceHooks

	area             Area
	fieldAssociation FieldAssociation
	actorOnly        bool
	captureZ         bool
	cellGrid         bool
	processID        int
	processFromData  bool

	currentPass Pass
	inProgress  bool

	maxPointID         int64
	maxCellID          int64
	maxCellGridTupleID int64

	store *pixbuf.Store
	props registry

	propID    int
	propColor [3]byte
}

// NewSelector creates a Selector. Without options it selects cells, has no
// process id, and needs a renderer, a target and an area before capturing.
func NewSelector(opts ...Option) *Selector {
	s := &Selector{
		hooks:            NopDeviceHooks{},
		fieldAssociation: FieldAssociationCells,
		processID:        -1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetRenderer replaces the renderer.
func (s *Selector) SetRenderer(r Renderer) { s.renderer = r }

// SetRenderTarget replaces the target passes are read back from.
func (s *Selector) SetRenderTarget(t render.RenderTarget) { s.target = t }

// RenderTarget returns the configured target.
func (s *Selector) RenderTarget() render.RenderTarget { return s.target }

// SetArea sets the capture area from two corners in display pixels.
func (s *Selector) SetArea(x1, y1, x2, y2 int) { s.area = NewArea(x1, y1, x2, y2) }

// Area returns the capture area.
func (s *Selector) Area() Area { return s.area }

// SetFieldAssociation selects whether attribute ids are points or cells.
func (s *Selector) SetFieldAssociation(f FieldAssociation) { s.fieldAssociation = f }

// FieldAssociation returns the configured association.
func (s *Selector) FieldAssociation() FieldAssociation { return s.fieldAssociation }

// SetActorOnly restricts captures to the ACTOR pass.
func (s *Selector) SetActorOnly(on bool) { s.actorOnly = on }

// ActorOnly reports whether captures stop after the ACTOR pass.
func (s *Selector) ActorOnly() bool { return s.actorOnly }

// SetCaptureZValues enables depth capture with the ACTOR pass.
func (s *Selector) SetCaptureZValues(on bool) { s.captureZ = on }

// CaptureZValues reports whether depth is captured.
func (s *Selector) CaptureZValues() bool { return s.captureZ }

// SetProcessID sets the id rendered in the PROCESS pass; negative disables.
func (s *Selector) SetProcessID(pid int) { s.processID = pid }

// ProcessID returns the configured process id, -1 when unset.
func (s *Selector) ProcessID() int { return s.processID }

// SetUseProcessIDFromData makes renderers take process ids from data.
func (s *Selector) SetUseProcessIDFromData(on bool) { s.processFromData = on }

// UseProcessIDFromData reports whether process ids come from data.
func (s *Selector) UseProcessIDFromData() bool { return s.processFromData }

// SetCellGridTracking enables the CELLGRID passes.
func (s *Selector) SetCellGridTracking(on bool) { s.cellGrid = on }

// CellGridTracking reports whether the CELLGRID passes are enabled.
func (s *Selector) CellGridTracking() bool { return s.cellGrid }

// CurrentPass returns the pass being rendered. Past the end of a capture it
// may exceed MaxKnownPass.
func (s *Selector) CurrentPass() Pass { return s.currentPass }

// InProgress reports whether a capture has begun and not yet ended.
func (s *Selector) InProgress() bool { return s.inProgress }

// BeginRenderProp announces the next drawable of the current pass and
// returns its prop id. During the ACTOR pass the id is recorded for
// PropFromID and PropColor returns its encoding; in other passes PropColor
// starts out as the background value until RenderCompositeIndex or
// RenderProcessID sets it.
func (s *Selector) BeginRenderProp(d Drawable) int {
	s.propID = s.props.assign(s.currentPass, d)
	if s.currentPass == PassActor {
		s.propColor = idcodec.Color(uint64(s.propID))
	} else {
		s.propColor = [3]byte{}
	}
	s.hooks.BeginRenderProp(s)
	return s.propID
}

// EndRenderProp closes the drawable opened by BeginRenderProp.
func (s *Selector) EndRenderProp() {
	s.hooks.EndRenderProp(s)
}

// PropID returns the id of the drawable being rendered.
func (s *Selector) PropID() int { return s.propID }

// PropColor returns the flat colour the current drawable renders with in
// the ACTOR, COMPOSITE_INDEX and PROCESS passes.
func (s *Selector) PropColor() [3]byte { return s.propColor }

// RenderCompositeIndex reports the composite block being drawn. During the
// COMPOSITE_INDEX pass it sets PropColor to the index encoding.
func (s *Selector) RenderCompositeIndex(index uint32) {
	if s.currentPass == PassCompositeIndex {
		s.propColor = idcodec.Color(uint64(index))
	}
}

// RenderProcessID reports the process owning the drawable. During the
// PROCESS pass it sets PropColor to pid+1; negative ids are ignored.
func (s *Selector) RenderProcessID(pid int) {
	if s.currentPass == PassProcess && pid >= 0 {
		s.propColor = ProcessIDColor(pid)
	}
}

// ProcessIDColor returns the PROCESS pass encoding of pid. Renderers use it
// for per-primitive process ids taken from data.
func ProcessIDColor(pid int) [3]byte {
	if pid < 0 {
		return [3]byte{}
	}
	return idcodec.Color(uint64(pid) + 1)
}

// AttributeColor returns the encoding of attribute id for the current pass:
// its low 24 bits in *_LOW24 passes, bits 24..47 in *_HIGH24 passes and the
// id itself otherwise. Negative ids encode as background.
func (s *Selector) AttributeColor(id int64) [3]byte {
	if id < 0 {
		return [3]byte{}
	}
	low, high := idcodec.Split(uint64(id))
	switch {
	case s.currentPass.IsHigh24():
		return idcodec.Color(uint64(high))
	case s.currentPass.IsLow24():
		return idcodec.Color(uint64(low))
	default:
		return idcodec.Color(uint64(id))
	}
}

// UpdateMaximumPointID records the largest point id a renderer will draw.
func (s *Selector) UpdateMaximumPointID(id int64) {
	s.maxPointID = max(s.maxPointID, id)
}

// UpdateMaximumCellID records the largest cell id a renderer will draw.
func (s *Selector) UpdateMaximumCellID(id int64) {
	s.maxCellID = max(s.maxCellID, id)
}

// UpdateMaximumCellGridTupleID records the largest cell-grid tuple id.
func (s *Selector) UpdateMaximumCellGridTupleID(id int64) {
	s.maxCellGridTupleID = max(s.maxCellGridTupleID, id)
}

// HasHighPointIDs reports whether point ids need the POINT_ID_HIGH24 pass.
func (s *Selector) HasHighPointIDs() bool { return s.maxPointID >= idcodec.Max24 }

// HasHighCellIDs reports whether cell ids need the CELL_ID_HIGH24 pass.
func (s *Selector) HasHighCellIDs() bool { return s.maxCellID >= idcodec.Max24 }

// HasHighCellGridTupleIDs reports whether tuple ids need the
// CELLGRID_TUPLE_HIGH24 pass.
func (s *Selector) HasHighCellGridTupleIDs() bool {
	return s.maxCellGridTupleID >= idcodec.Max24
}

// IsPropHit reports whether prop id was visible in the ACTOR pass.
// Renderers skip drawables that were not. Before the ACTOR pass is saved,
// and on instances that never capture, every id counts as hit.
func (s *Selector) IsPropHit(id int) bool { return s.props.isHit(id) }

// PropFromID returns the drawable behind a prop id, or nil. Valid until
// ReleasePixBuffers.
func (s *Selector) PropFromID(id int) Drawable { return s.props.prop(id) }

// PropPixels returns the pixel indices (relative to the area, y*width+x)
// prop id covered in the ACTOR pass.
func (s *Selector) PropPixels(id int) []int { return s.props.pixelsOf(id) }

// HitProps returns the ids visible in the ACTOR pass, ascending.
func (s *Selector) HitProps() []int { return s.props.hitIDs() }

// CaptureSize returns the size of the captured buffers, or zero before the
// first pass is saved.
func (s *Selector) CaptureSize() (width, height int) {
	if s.store == nil {
		return 0, 0
	}
	return s.store.Width(), s.store.Height()
}

// PixelValue decodes the processed buffer of pass at (x, y) relative to the
// area origin. Outside the capture, or for passes not captured, it returns
// 0 (background).
func (s *Selector) PixelValue(x, y int, pass Pass) uint32 {
	if s.store == nil {
		return 0
	}
	return s.store.Decode(x, y, int(pass))
}

// RawPixel decodes pixel index i of the raw buffer of pass.
func (s *Selector) RawPixel(pass Pass, i int) uint32 {
	if s.store == nil {
		return 0
	}
	return s.store.RawAt(int(pass), i)
}

// SetProcessedPixel overwrites pixel index i of the processed buffer of
// pass with the low 24 bits of value.
func (s *Selector) SetProcessedPixel(pass Pass, i int, value uint64) bool {
	if s.store == nil {
		return false
	}
	return s.store.SetProcessed(int(pass), i, value)
}

// HasPass reports whether pass was captured and not yet released.
func (s *Selector) HasPass(pass Pass) bool {
	return s.store != nil && s.store.Has(int(pass))
}

// RawPixelBuffer returns the RGB buffer of pass as read back, or nil.
func (s *Selector) RawPixelBuffer(pass Pass) []byte {
	if s.store == nil {
		return nil
	}
	return s.store.Raw(int(pass))
}

// PixelBuffer returns the processed RGB buffer of pass, or nil.
func (s *Selector) PixelBuffer(pass Pass) []byte {
	if s.store == nil {
		return nil
	}
	return s.store.Processed(int(pass))
}
