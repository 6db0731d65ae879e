package particles

// Links writes one line record per live particle whose link node names
// another live slot, skipping lines with both ends outside vp. Each record is
// [ax, ay, bx, by, stroke color bits, stroke width] with the particle as A.
//
// Link nodes are raw slot indices, so any Remove other than of the last
// slot may retarget them. Call Links after Update so both ends are at their
// integrated positions.
func (s *Store) Links(vp Viewport, dst Staging) (lines int, grew bool) {
	if dst == nil {
		return 0, false
	}
	grew = s.ensureStaging(dst, LineWords)
	out := dst.Words()

	count := s.count
	cursor := 0
	for slot := 0; slot < count; slot++ {
		r := s.words[slot*Stride : slot*Stride+Stride : slot*Stride+Stride]
		link := int32(r[fieldLink])
		if link < 0 || int(link) >= count || int(link) == slot {
			continue
		}
		o := s.words[int(link)*Stride : int(link)*Stride+Stride : int(link)*Stride+Stride]

		ax, ay, ar := f32(r[fieldX]), f32(r[fieldY]), f32(r[fieldRadius])
		bx, by, br := f32(o[fieldX]), f32(o[fieldY]), f32(o[fieldRadius])
		if !vp.Contains(ax, ay, ar) && !vp.Contains(bx, by, br) {
			continue
		}

		line := out[cursor : cursor+LineWords : cursor+LineWords]
		line[0] = r[fieldX]
		line[1] = r[fieldY]
		line[2] = o[fieldX]
		line[3] = o[fieldY]
		line[4] = r[fieldStroke]
		line[5] = r[fieldStrokeWidth]
		cursor += LineWords
	}
	return cursor / LineWords, grew
}
