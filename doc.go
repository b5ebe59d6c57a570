// Package unclip reconciles aligned BAM records with their unaligned
// originals. An aligner may hard-clip bases (discarding them from the
// stored sequence) and drop auxiliary tags; this package rebuilds each
// aligned record so it regains the full sequence, qualities and tags of
// the unaligned read, converting hard clips to soft clips so the CIGAR
// stays consistent with the restored sequence.
//
// The unaligned BAM is read once into an immutable ReadIndex; aligned
// files are then processed as independent tasks that share the index
// read-only and each own their writer and counters.
package unclip
