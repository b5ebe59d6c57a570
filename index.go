package unclip

import (
	"io"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/hts/bam"
	"github.com/grailbio/hts/sam"
	"github.com/pkg/errors"
	"v.io/x/lib/vlog"
)

// A TagPair is one auxiliary field of an unaligned read.
type TagPair struct {
	Tag   sam.Tag
	Value TagValue
}

// An UnalignedRead is a snapshot of one read from the unaligned BAM:
// the full, untrimmed sequence, its qualities, and every auxiliary tag
// in source order. The ReadIndex owns the data; lookups borrow it and
// must not mutate it.
type UnalignedRead struct {
	Seq  []byte
	Qual []byte
	Tags []TagPair
}

// A ReadIndex maps read names to their unaligned originals. It is
// built once by CreateReadIndex and never mutated afterwards, so any
// number of file-processing tasks may share it without locking.
//
// Names are compared byte-exact. If the unaligned source carries the
// same name twice, the last record wins.
type ReadIndex struct {
	reads       map[string]*UnalignedRead
	tagsSkipped int64
}

// Lookup returns the unaligned read for name, or nil if the source did
// not contain it.
func (x *ReadIndex) Lookup(name string) *UnalignedRead {
	return x.reads[name]
}

// Len returns the number of indexed reads.
func (x *ReadIndex) Len() int {
	return len(x.reads)
}

// TagsSkipped returns the number of auxiliary fields dropped during the
// index build because their encoding was not a supported BAM type.
func (x *ReadIndex) TagsSkipped() int64 {
	return x.tagsSkipped
}

// add snapshots one unaligned record into the index. Aux fields that
// fail to decode are skipped and counted, not fatal.
func (x *ReadIndex) add(rec *sam.Record) {
	read := &UnalignedRead{
		Seq:  rec.Seq.Expand(),
		Qual: rec.Qual,
		Tags: make([]TagPair, 0, len(rec.AuxFields)),
	}
	for _, aux := range rec.AuxFields {
		value, err := decodeAux(aux)
		if err != nil {
			x.tagsSkipped++
			vlog.Errorf("read %s: skipping aux field: %v", rec.Name, err)
			continue
		}
		read.Tags = append(read.Tags, TagPair{Tag: aux.Tag(), Value: value})
	}
	x.reads[rec.Name] = read
}

// CreateReadIndex reads every record of the unaligned BAM at path into
// a new ReadIndex. A record that cannot be read is fatal: a partial
// index would silently under-restore reads later, so there is no
// recovery short of failing the whole run.
func CreateReadIndex(path string) (*ReadIndex, error) {
	ctx := vcontext.Background()
	in, err := file.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer in.Close(ctx) // nolint: errcheck
	r, err := bam.NewReader(in.Reader(ctx), 1)
	if err != nil {
		return nil, errors.Wrapf(err, "%v: open unaligned BAM", path)
	}
	index := &ReadIndex{reads: map[string]*UnalignedRead{}}
	for {
		rec, err := r.Read()
		if rec == nil {
			if err != io.EOF {
				return nil, errors.Wrapf(err, "%v: read unaligned record", path)
			}
			break
		}
		index.add(rec)
	}
	if index.tagsSkipped > 0 {
		vlog.Errorf("%v: skipped %d aux fields with unsupported encodings", path, index.tagsSkipped)
	}
	vlog.Infof("%v: indexed %d unaligned reads", path, index.Len())
	return index, nil
}
