package pick

import (
	"slices"

	"github.com/gogpu/pick/idcodec"
	"github.com/gogpu/pick/internal/pixbuf"
)

// registry maps the small prop ids handed out during a capture back to
// drawables. It lives for one capture and is rebuilt by the next.
//
// Ids are positional: the n-th BeginRenderProp of a pass gets id n, starting
// at 1 so that 0 stays the background. The ACTOR pass records the drawable
// behind every id; later passes reuse the same numbering.
type registry struct {
	props []Drawable
	next  int

	built  bool
	hits   []int
	pixels map[int][]int
}

func (r *registry) reset() {
	clear(r.props)
	r.props = r.props[:0]
	r.next = 0
	r.built = false
	r.hits = nil
	r.pixels = nil
}

// beginPass restarts the positional numbering.
func (r *registry) beginPass() {
	r.next = 0
}

// assign returns the id of the next drawable of the current pass.
func (r *registry) assign(pass Pass, d Drawable) int {
	r.next++
	if pass == PassActor && r.next > len(r.props) {
		r.props = append(r.props, d)
	}
	return r.next
}

// build scans the ACTOR buffer and records which ids were hit and where.
func (r *registry) build(store *pixbuf.Store) {
	r.built = true
	r.pixels = make(map[int][]int)
	r.hits = r.hits[:0]

	buf := store.Processed(int(PassActor))
	for i := 0; i < store.Len(); i++ {
		id := int(idcodec.DecodeAt(buf, i*3))
		if id == 0 {
			continue
		}
		if _, ok := r.pixels[id]; !ok {
			r.hits = append(r.hits, id)
		}
		r.pixels[id] = append(r.pixels[id], i)
	}
	slices.Sort(r.hits)
}

// isHit reports whether id appeared in the ACTOR pass. Before the hit list
// exists every id counts as hit, so nothing is skipped.
func (r *registry) isHit(id int) bool {
	if !r.built {
		return true
	}
	_, ok := r.pixels[id]
	return ok
}

func (r *registry) prop(id int) Drawable {
	if id < 1 || id > len(r.props) {
		return nil
	}
	return r.props[id-1]
}

func (r *registry) pixelsOf(id int) []int {
	return r.pixels[id]
}

func (r *registry) hitIDs() []int {
	return r.hits
}
