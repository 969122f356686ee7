package pick

import (
	"image/color"

	"github.com/gogpu/pick/idcodec"
	"github.com/gogpu/pick/render"
)

// testProp is an axis-aligned rectangle drawn by testRenderer. Cell and
// point ids are y*10+x plus offset, in display pixels.
type testProp struct {
	xmin, ymin, xmax, ymax int
	composite              uint32
	process                int
	depth                  float32
	offset                 int64

	// mapping, when set, makes the renderer emit local indices
	// (y*10+x) that ProcessSelectorPixelBuffers translates through it.
	mapping []int64
}

func (p *testProp) attribute(x, y int) int64 {
	return int64(y*10+x) + p.offset
}

// ProcessSelectorPixelBuffers translates local indices through mapping.
func (p *testProp) ProcessSelectorPixelBuffers(s *Selector, pass Pass, pixels []int) {
	if p.mapping == nil || (pass != PassCellIDLow24 && pass != PassCellIDHigh24) {
		return
	}
	for _, i := range pixels {
		local := idcodec.Compose(s.RawPixel(PassCellIDLow24, i), s.RawPixel(PassCellIDHigh24, i), 0)
		if local >= uint64(len(p.mapping)) {
			continue
		}
		low, high := idcodec.Split(uint64(p.mapping[local]))
		if pass == PassCellIDHigh24 {
			s.SetProcessedPixel(pass, i, uint64(high))
		} else {
			s.SetProcessedPixel(pass, i, uint64(low))
		}
	}
}

// testRenderer draws testProps into a PixmapTarget, one flat colour per
// pass, and records the passes it was asked for.
type testRenderer struct {
	target *render.PixmapTarget
	props  []*testProp
	passes []Pass

	// maxID is reported to the selector at the start of the ACTOR pass.
	maxID int64
}

func (r *testRenderer) RenderPass(s *Selector, pass Pass) error {
	r.passes = append(r.passes, pass)
	r.target.Clear(color.Black)
	if pass == PassActor && r.maxID > 0 {
		s.UpdateMaximumPointID(r.maxID)
		s.UpdateMaximumCellID(r.maxID)
		s.UpdateMaximumCellGridTupleID(r.maxID)
	}

	for _, p := range r.props {
		id := s.BeginRenderProp(p)
		if !s.IsPropHit(id) {
			s.EndRenderProp()
			continue
		}
		s.RenderCompositeIndex(p.composite)
		s.RenderProcessID(p.process)

		for y := p.ymin; y <= p.ymax; y++ {
			for x := p.xmin; x <= p.xmax; x++ {
				if !r.target.DepthTest(x, y, p.depth) {
					continue
				}
				c := r.fragment(s, p, pass, x, y)
				r.target.SetPixel(x, y, color.RGBA{c[0], c[1], c[2], 0xff})
			}
		}
		s.EndRenderProp()
	}
	return nil
}

func (r *testRenderer) fragment(s *Selector, p *testProp, pass Pass, x, y int) [3]byte {
	switch pass {
	case PassPointIDLow24, PassPointIDHigh24, PassCellIDLow24, PassCellIDHigh24,
		PassCellGridTupleLow24, PassCellGridTupleHigh24:
		if p.mapping != nil {
			return s.AttributeColor(int64(y*10 + x))
		}
		return s.AttributeColor(p.attribute(x, y))
	case PassCellGridTypeIndex:
		return idcodec.Color(3)
	case PassCellGridSourceIndex:
		return idcodec.Color(uint64(p.composite))
	default:
		return s.PropColor()
	}
}

// newTestSelector returns a selector over a w x h target covering the whole
// target, rendering props with testRenderer.
func newTestSelector(w, h int, fa FieldAssociation, props []testProp, opts ...Option) (*Selector, *testRenderer) {
	r := &testRenderer{target: render.NewPixmapTarget(w, h)}
	for i := range props {
		r.props = append(r.props, &props[i])
	}
	opts = append([]Option{
		WithRenderer(r),
		WithRenderTarget(r.target),
		WithArea(0, 0, w-1, h-1),
		WithFieldAssociation(fa),
	}, opts...)
	return NewSelector(opts...), r
}
