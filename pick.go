package rowan

// ContainsPoint reports whether p lies inside the object's clip volume.
// Objects with ClipNone are never hit.
func (o *GameObject) ContainsPoint(p Vector) bool {
	switch o.ClipType {
	case ClipSphere:
		r := o.ClipSize.X()
		return lenSqr(p.Sub(o.Pos)) <= r*r
	case ClipAxisBox:
		lo, hi := o.bounds()
		for i := range 3 {
			if p[i] < lo[i] || p[i] > hi[i] {
				return false
			}
		}
		return true
	}
	return false
}

// IntersectsSegment reports whether the segment from a to b touches the
// object's clip volume.
func (o *GameObject) IntersectsSegment(a, b Vector) bool {
	switch o.ClipType {
	case ClipSphere:
		return segmentHitsSphere(a, b, o.Pos, o.ClipSize.X())
	case ClipAxisBox:
		lo, hi := o.bounds()
		return segmentHitsBox(a, b, lo, hi)
	}
	return false
}

func (o *GameObject) bounds() (lo, hi Vector) {
	half := o.ClipSize.Mul(0.5)
	return o.Pos.Sub(half), o.Pos.Add(half)
}

func lenSqr(v Vector) float32 {
	return v.Dot(v)
}

func segmentHitsSphere(a, b, centre Vector, r float32) bool {
	d := b.Sub(a)
	t := float32(0)
	if l := lenSqr(d); l > 0 {
		t = centre.Sub(a).Dot(d) / l
		t = min(max(t, 0), 1)
	}
	closest := a.Add(d.Mul(t))
	return lenSqr(closest.Sub(centre)) <= r*r
}

// segmentHitsBox clips the segment against each slab of the box.
func segmentHitsBox(a, b, lo, hi Vector) bool {
	d := b.Sub(a)
	t0, t1 := float32(0), float32(1)
	for i := range 3 {
		if d[i] == 0 {
			if a[i] < lo[i] || a[i] > hi[i] {
				return false
			}
			continue
		}
		near := (lo[i] - a[i]) / d[i]
		far := (hi[i] - a[i]) / d[i]
		if near > far {
			near, far = far, near
		}
		t0 = max(t0, near)
		t1 = min(t1, far)
		if t0 > t1 {
			return false
		}
	}
	return true
}

// PickPoint returns the first object whose clip volume contains p, or nil.
//
// "First" is walk order: roots most recently added first, each tree in
// preorder. Hits are not sorted by distance.
func (s *Scene) PickPoint(p Vector) *GameObject {
	var hit *GameObject
	s.Walk(func(o *GameObject) bool {
		if o.ContainsPoint(p) {
			hit = o
			return false
		}
		return true
	})
	return hit
}

// PickLine returns the first object, in the same order as PickPoint, whose
// clip volume the segment from start to end touches, or nil.
func (s *Scene) PickLine(start, end Vector) *GameObject {
	var hit *GameObject
	s.Walk(func(o *GameObject) bool {
		if o.IntersectsSegment(start, end) {
			hit = o
			return false
		}
		return true
	})
	return hit
}
