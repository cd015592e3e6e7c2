package buffer

import "unicode"

// FindAll returns the rune offsets of every case-insensitive, non-overlapping
// occurrence of query.
func (b *Buffer) FindAll(query string) []int {
	if query == "" {
		return nil
	}
	text := lowerRunes(b.Text())
	q := lowerRunes(query)
	var hits []int
	for i := 0; i+len(q) <= len(text); {
		if runesEqual(text[i:i+len(q)], q) {
			hits = append(hits, i)
			i += len(q)
			continue
		}
		i++
	}
	return hits
}

// FindNext moves the cursor to the next occurrence of query after the cursor,
// wrapping to the top. It reports whether a match was found.
func (b *Buffer) FindNext(query string) bool {
	hits := b.FindAll(query)
	if len(hits) == 0 {
		return false
	}
	cur := b.Offset(b.Cursor)
	target := hits[0]
	for _, h := range hits {
		if h > cur {
			target = h
			break
		}
	}
	b.SetCursor(b.CursorAt(target))
	return true
}

// FindPrev moves the cursor to the previous occurrence before the cursor,
// wrapping to the bottom.
func (b *Buffer) FindPrev(query string) bool {
	hits := b.FindAll(query)
	if len(hits) == 0 {
		return false
	}
	cur := b.Offset(b.Cursor)
	target := hits[len(hits)-1]
	for i := len(hits) - 1; i >= 0; i-- {
		if hits[i] < cur {
			target = hits[i]
			break
		}
	}
	b.SetCursor(b.CursorAt(target))
	return true
}

// lowerRunes folds case rune by rune so offsets stay aligned with the text.
func lowerRunes(s string) []rune {
	r := []rune(s)
	for i := range r {
		r[i] = unicode.ToLower(r[i])
	}
	return r
}

func runesEqual(a, b []rune) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
