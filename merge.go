package unclip

import "github.com/grailbio/hts/sam"

// A Merger reconciles aligned records against an unaligned read index
// and accumulates per-file counters. It is not safe for concurrent use;
// each file task owns its own Merger.
type Merger struct {
	index    *ReadIndex
	transfer []sam.Tag
	stats    Stats
}

// NewMerger returns a Merger over index. transfer restricts which
// unaligned tags may be added to a record; an empty list transfers
// every unaligned tag.
func NewMerger(index *ReadIndex, transfer []sam.Tag) *Merger {
	return &Merger{index: index, transfer: transfer}
}

// Merge returns the record to write for rec, preserving input order at
// the caller.
//
// If rec's name is absent from the index, rec itself is returned
// untouched and counted missing. Otherwise a new record is built: the
// positional fields are copied, the CIGAR has hard clips converted to
// soft clips (counting the record modified when any were present), the
// sequence and qualities are replaced by the unaligned read's, and
// unaligned tags are appended after the record's own tags. A tag id
// already present on the aligned side is never overwritten.
func (m *Merger) Merge(rec *sam.Record) *sam.Record {
	m.stats.Processed++
	unaligned := m.index.Lookup(rec.Name)
	if unaligned == nil {
		m.stats.Missing++
		return rec
	}
	cigar := rec.Cigar
	if HasHardClip(cigar) {
		cigar = ConvertCigar(cigar)
		m.stats.Modified++
	}
	out := &sam.Record{
		Name:    rec.Name,
		Ref:     rec.Ref,
		Pos:     rec.Pos,
		MapQ:    rec.MapQ,
		Cigar:   cigar,
		Flags:   rec.Flags,
		MateRef: rec.MateRef,
		MatePos: rec.MatePos,
		TempLen: rec.TempLen,
		Seq:     sam.NewSeq(unaligned.Seq),
		Qual:    unaligned.Qual,
	}
	aux := make(sam.AuxFields, len(rec.AuxFields), len(rec.AuxFields)+len(unaligned.Tags))
	copy(aux, rec.AuxFields)
	out.AuxFields = aux
	for _, pair := range unaligned.Tags {
		if !m.wantTag(pair.Tag) || out.AuxFields.Get(pair.Tag) != nil {
			continue
		}
		out.AuxFields = append(out.AuxFields, encodeAux(pair.Tag, pair.Value))
	}
	return out
}

func (m *Merger) wantTag(tag sam.Tag) bool {
	if len(m.transfer) == 0 {
		return true
	}
	for _, t := range m.transfer {
		if t == tag {
			return true
		}
	}
	return false
}

// Stats returns the counters accumulated so far.
func (m *Merger) Stats() Stats {
	return m.stats
}

// ParseTransferTags converts tag names to sam.Tags for Opts.
// TransferTags. Names that are not exactly two bytes long are ignored
// rather than rejected.
func ParseTransferTags(names []string) []sam.Tag {
	tags := make([]sam.Tag, 0, len(names))
	for _, name := range names {
		if len(name) != 2 {
			continue
		}
		tags = append(tags, sam.NewTag(name))
	}
	return tags
}
