package particles

// Viewport is the world-space rectangle the renderer shows.
type Viewport struct {
	X, Y          float32
	Width, Height float32
}

// Contains reports whether a circle at (x, y) with radius r overlaps the
// viewport grown by r on every side. Points exactly on the grown edge are
// outside.
func (v Viewport) Contains(x, y, r float32) bool {
	lx := x - v.X
	ly := y - v.Y
	return lx > -r && lx < v.Width+r && ly > -r && ly < v.Height+r
}

// Staging is the renderer-owned buffer the store compacts visible particles
// into. The store only writes to it; the renderer only reads the prefix
// reported by Update.
type Staging interface {
	// Cap returns the capacity in scalars.
	Cap() int
	// Resize reallocates to at least n scalars. Old content is not kept.
	Resize(n int)
	// Words returns the write surface. Its length is Cap().
	Words() []uint32
}

// ensureStaging grows dst when a frame in which every slot is visible could
// overflow it. The new size leaves 2x headroom over that worst case.
func (s *Store) ensureStaging(dst Staging, perRecord int) bool {
	if s.capacity*perRecord <= dst.Cap() {
		return false
	}
	dst.Resize(s.capacity * perRecord * 2)
	return true
}

// Update advances every live particle by dt, then writes the projection of
// each particle inside vp to dst, packed from offset 0 in slot order.
//
// It returns the number of particles written, so the valid prefix of dst is
// visible*ProjectionWords scalars, and whether dst had to be resized this
// frame. A nil dst makes Update a no-op. A zero-area viewport still
// integrates and culls against its edges grown by each radius.
func (s *Store) Update(dt float32, vp Viewport, dst Staging) (visible int, grew bool) {
	if dst == nil {
		return 0, false
	}
	grew = s.ensureStaging(dst, ProjectionWords)
	out := dst.Words()

	words := s.words[:s.count*Stride]
	cursor := 0
	for off := 0; off < len(words); off += Stride {
		r := words[off : off+Stride : off+Stride]
		mask := dynamicMask(r[fieldFlags])

		x := maskedAdd(f32(r[fieldX]), f32(r[fieldVX])*dt, mask)
		y := maskedAdd(f32(r[fieldY]), f32(r[fieldVY])*dt, mask)
		r[fieldX] = bits(x)
		r[fieldY] = bits(y)

		if !vp.Contains(x, y, f32(r[fieldRadius])) {
			continue
		}
		copy(out[cursor:cursor+ProjectionWords], r[:ProjectionWords])
		cursor += ProjectionWords
	}
	return cursor / ProjectionWords, grew
}
