package videoframe

type Dimensions struct {
	W, H, C int
}

type Frame interface {
	DataRef() interface{}
	Dimensions() Dimensions
	Close()
}

// Sequence is an ordered run of frames where the index is temporal order.
type Sequence []Frame

// Close releases every frame in the sequence. Frames shared with a
// subsequence must only be closed through the owning sequence.
func (s Sequence) Close() {
	for _, f := range s {
		if f != nil {
			f.Close()
		}
	}
}

func (s Sequence) Len() int { return len(s) }
