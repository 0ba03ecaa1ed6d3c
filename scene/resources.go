package scene

// Disposable is a resource that is released exactly once.
type Disposable interface {
	Dispose()
	Disposed() bool
}

// Resources collects the geometries, materials and textures created for one
// render context so teardown can release each of them exactly once.
type Resources struct {
	items    []Disposable
	seen     map[Disposable]struct{}
	released int
}

// Track registers resources. Duplicates and nil values are ignored.
func (r *Resources) Track(ds ...Disposable) {
	if r.seen == nil {
		r.seen = make(map[Disposable]struct{})
	}
	for _, d := range ds {
		if d == nil {
			continue
		}
		if _, ok := r.seen[d]; ok {
			continue
		}
		r.seen[d] = struct{}{}
		r.items = append(r.items, d)
	}
}

// TrackGraph registers the geometry, material and sampled textures of every
// renderable under root.
func (r *Resources) TrackGraph(root Object) {
	root.Base().Traverse(func(o Object) {
		switch v := o.(type) {
		case *Mesh:
			if v.Geometry != nil {
				r.Track(v.Geometry)
			}
		case *Points:
			if v.Geometry != nil {
				r.Track(v.Geometry)
			}
		}
		m := materialOf(o)
		if m == nil {
			return
		}
		r.Track(m)
		for _, t := range m.Textures() {
			r.Track(t)
		}
	})
}

// Len returns the number of tracked resources.
func (r *Resources) Len() int { return len(r.items) }

// Release disposes every tracked resource that is not yet disposed and
// returns how many it released on this call.
func (r *Resources) Release() int {
	n := 0
	for _, d := range r.items {
		if d.Disposed() {
			continue
		}
		d.Dispose()
		n++
	}
	r.released += n
	return n
}

// Released returns the total number of resources released so far.
func (r *Resources) Released() int { return r.released }
