package unclip

import "fmt"

// Stats counts the records handled while processing one aligned file.
// Per-file Stats are summed into a run total after all files finish.
type Stats struct {
	// Processed is the number of records read from the aligned input.
	Processed int64
	// Modified is the number of records whose CIGAR had hard clips
	// rewritten to soft clips.
	Modified int64
	// Missing is the number of records whose name was absent from the
	// unaligned index and were therefore passed through unchanged.
	Missing int64
}

// Add accumulates other into s.
func (s *Stats) Add(other Stats) {
	s.Processed += other.Processed
	s.Modified += other.Modified
	s.Missing += other.Missing
}

func (s Stats) String() string {
	return fmt.Sprintf("processed=%d modified=%d missing=%d", s.Processed, s.Modified, s.Missing)
}
