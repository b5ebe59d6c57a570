package unclip

import "github.com/grailbio/hts/sam"

// ConvertCigar returns a copy of cigar with every hard clip
// reclassified as a soft clip of the same length. All other operations
// pass through unchanged, in their original order, so the operation
// count and the per-operation lengths are preserved. The input is never
// modified.
func ConvertCigar(cigar sam.Cigar) sam.Cigar {
	out := make(sam.Cigar, len(cigar))
	for i, op := range cigar {
		if op.Type() == sam.CigarHardClipped {
			op = sam.NewCigarOp(sam.CigarSoftClipped, op.Len())
		}
		out[i] = op
	}
	return out
}

// HasHardClip reports whether any operation in cigar is a hard clip.
func HasHardClip(cigar sam.Cigar) bool {
	for _, op := range cigar {
		if op.Type() == sam.CigarHardClipped {
			return true
		}
	}
	return false
}

// queryLength returns the number of query bases cigar consumes, i.e.
// the sequence length a record carrying it must have.
func queryLength(cigar sam.Cigar) int {
	n := 0
	for _, op := range cigar {
		switch op.Type() {
		case sam.CigarMatch, sam.CigarInsertion, sam.CigarSoftClipped, sam.CigarEqual, sam.CigarMismatch:
			n += op.Len()
		}
	}
	return n
}
