package homotopy

// Sign is the rotational sense of a ray crossing. A segment sweeping
// counter-clockwise around a puncture crosses its reference ray with
// positive sign.
type Sign int8

const (
	CCW Sign = 1
	CW  Sign = -1
)

// Inverse returns the opposite sense.
func (s Sign) Inverse() Sign { return -s }

func (s Sign) String() string {
	if s == CCW {
		return "ccw"
	}
	return "cw"
}

// Letter is one generator occurrence in a word: which puncture's ray was
// crossed, and in which sense.
type Letter struct {
	PunctureID int
	Sign       Sign
}

// Inverse returns the cancelling letter.
func (l Letter) Inverse() Letter {
	return Letter{PunctureID: l.PunctureID, Sign: l.Sign.Inverse()}
}

// Word is a freely reduced letter sequence: no two adjacent letters name
// the same puncture with opposite signs. The zero value is the identity.
// Words returned by this package are freshly allocated copies.
type Word []Letter

// IsIdentity reports whether the word is empty.
func (w Word) IsIdentity() bool { return len(w) == 0 }

// Equal reports letter-for-letter equality. Reduced words are a normal
// form, so Equal decides equality in the free group.
func (w Word) Equal(v Word) bool {
	if len(w) != len(v) {
		return false
	}
	for i := range w {
		if w[i] != v[i] {
			return false
		}
	}
	return true
}

// Inverse returns the reversed word with every letter inverted.
func (w Word) Inverse() Word {
	out := make(Word, len(w))
	for i, l := range w {
		out[len(w)-1-i] = l.Inverse()
	}
	return out
}

// Concat returns the reduced product of w followed by v.
func (w Word) Concat(v Word) Word {
	var r Reducer
	r.AppendAll(w)
	r.AppendAll(v)
	return r.Word()
}

// Clone returns a copy of w.
func (w Word) Clone() Word {
	out := make(Word, len(w))
	copy(out, w)
	return out
}

// Reducer maintains the freely reduced word for a stream of letters. The
// word is a stack: an incoming letter either cancels the top or becomes
// the new top, so appending is O(1) and each cancellation can expose the
// previous letter to the next arrival. That is what collapses a
// back-and-forth wiggle across a ray to nothing.
type Reducer struct {
	stack []Letter
}

// Append feeds one letter in temporal order.
func (r *Reducer) Append(l Letter) {
	if n := len(r.stack); n > 0 && r.stack[n-1] == l.Inverse() {
		r.stack = r.stack[:n-1]
		return
	}
	r.stack = append(r.stack, l)
}

// AppendAll feeds letters in order.
func (r *Reducer) AppendAll(ls Word) {
	for _, l := range ls {
		r.Append(l)
	}
}

// Word returns a copy of the current reduced word.
func (r *Reducer) Word() Word {
	out := make(Word, len(r.stack))
	copy(out, r.stack)
	return out
}

// Len returns the current word length.
func (r *Reducer) Len() int { return len(r.stack) }

// Reset clears the reducer to the identity word.
func (r *Reducer) Reset() { r.stack = r.stack[:0] }
