package domain

// Queue is the ordered track list the playback controller walks through.
// It uses an index-based model: tracks are never consumed, only the
// currentIndex moves, wrapping at both ends.
type Queue struct {
	tracks       []Track
	currentIndex int
}

// NewQueue creates a new Queue holding a copy of tracks.
func NewQueue(tracks ...Track) Queue {
	q := Queue{}
	q.Replace(tracks)
	return q
}

// IsEmpty returns true if the queue has no tracks.
func (q *Queue) IsEmpty() bool {
	return q.Len() == 0
}

func (q *Queue) isValidIndex(index int) bool {
	return 0 <= index && index < q.Len()
}

// Len returns the total number of tracks in the queue.
func (q *Queue) Len() int {
	return len(q.tracks)
}

// CurrentIndex returns the current track index.
func (q *Queue) CurrentIndex() int {
	return q.currentIndex
}

// Current returns the track at currentIndex, or nil if the queue is empty.
func (q *Queue) Current() *Track {
	if q.IsEmpty() {
		return nil
	}
	return &q.tracks[q.currentIndex]
}

// List returns a copy of all tracks in the queue.
func (q *Queue) List() []Track {
	result := make([]Track, q.Len())
	copy(result, q.tracks)
	return result
}

// Seek sets the currentIndex to the specified index.
// Returns the track at that index, or nil if index is out of bounds.
// Does not change currentIndex if index is invalid.
func (q *Queue) Seek(index int) *Track {
	if !q.isValidIndex(index) {
		return nil
	}

	q.currentIndex = index
	return &q.tracks[index]
}

// Next moves to the following track, wrapping to 0 after the last one.
// Returns nil if the queue is empty.
func (q *Queue) Next() *Track {
	if q.IsEmpty() {
		return nil
	}

	q.currentIndex = (q.currentIndex + 1) % q.Len()
	return &q.tracks[q.currentIndex]
}

// Prev moves to the preceding track, wrapping to the last one before 0.
// Returns nil if the queue is empty.
func (q *Queue) Prev() *Track {
	if q.IsEmpty() {
		return nil
	}

	q.currentIndex = (q.currentIndex - 1 + q.Len()) % q.Len()
	return &q.tracks[q.currentIndex]
}

// Replace swaps the track list. If the current track is still present in
// the new list the index follows it; otherwise the index resets to 0.
func (q *Queue) Replace(tracks []Track) {
	var currentID *TrackID
	if cur := q.Current(); cur != nil {
		id := cur.ID
		currentID = &id
	}

	q.tracks = make([]Track, len(tracks))
	copy(q.tracks, tracks)
	q.currentIndex = 0

	if currentID == nil {
		return
	}
	for i, t := range q.tracks {
		if t.ID == *currentID {
			q.currentIndex = i
			return
		}
	}
}
