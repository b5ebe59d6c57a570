package unclip

import (
	"fmt"
	"io"
	"strings"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/traverse"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/hts/bam"
	"github.com/grailbio/hts/sam"
	"github.com/klauspost/compress/gzip"
	"v.io/x/lib/vlog"
)

// Opts configures a run.
type Opts struct {
	// UnalignedPath is the BAM holding the original, untrimmed reads.
	UnalignedPath string
	// OutputDir receives one output BAM per aligned input.
	OutputDir string
	// TransferTags restricts which unaligned tags are transferred onto
	// matched records. Empty means every unaligned tag.
	TransferTags []sam.Tag
}

// OutputPath returns the output file for alignedPath: its base name
// with the .bam extension replaced by _converted.bam, under outputDir.
func OutputPath(alignedPath, outputDir string) string {
	base := strings.TrimSuffix(file.Base(alignedPath), ".bam")
	return file.Join(outputDir, base+"_converted.bam")
}

// ProcessFile streams the aligned BAM at alignedPath through a Merger,
// writing the reconciled records in input order to
// OutputPath(alignedPath, opts.OutputDir) with the input's own header.
// On error the file is abandoned as a whole; a partial output may be
// left behind and the caller must treat the file as failed.
func ProcessFile(alignedPath string, index *ReadIndex, opts Opts) (Stats, error) {
	ctx := vcontext.Background()
	in, err := file.Open(ctx, alignedPath)
	if err != nil {
		return Stats{}, err
	}
	defer in.Close(ctx) // nolint: errcheck
	r, err := bam.NewReader(in.Reader(ctx), 1)
	if err != nil {
		return Stats{}, fmt.Errorf("%v: open aligned BAM: %v", alignedPath, err)
	}
	outPath := OutputPath(alignedPath, opts.OutputDir)
	out, err := file.Create(ctx, outPath)
	if err != nil {
		return Stats{}, err
	}
	w, err := bam.NewWriterLevel(out.Writer(ctx), r.Header(), gzip.DefaultCompression, 1)
	if err != nil {
		out.Close(ctx) // nolint: errcheck
		return Stats{}, fmt.Errorf("%v: open BAM writer: %v", outPath, err)
	}

	merger := NewMerger(index, opts.TransferTags)
	retErr := errors.Once{}
	for {
		rec, err := r.Read()
		if rec == nil {
			if err != io.EOF {
				retErr.Set(fmt.Errorf("%v: read record %d: %v", alignedPath, merger.Stats().Processed, err))
			}
			break
		}
		if err := w.Write(merger.Merge(rec)); err != nil {
			retErr.Set(fmt.Errorf("%v: write record: %v", outPath, err))
			break
		}
		if n := merger.Stats().Processed; n%100000 == 0 {
			vlog.Infof("%v: processed %d records", alignedPath, n)
		}
	}
	retErr.Set(w.Close())
	retErr.Set(out.Close(ctx))
	stats := merger.Stats()
	vlog.Infof("%v: finished: %v, error %v", outPath, stats, retErr.Err())
	return stats, retErr.Err()
}

// Run builds the read index from opts.UnalignedPath, then processes
// every aligned file as an independent task sharing the index
// read-only. Each task owns its writer and counters; the per-file
// counters are summed after the join. The run fails if any file fails,
// but files that completed earlier are not rolled back.
func Run(alignedPaths []string, opts Opts) (Stats, error) {
	index, err := CreateReadIndex(opts.UnalignedPath)
	if err != nil {
		return Stats{}, err
	}
	fileStats := make([]Stats, len(alignedPaths))
	err = traverse.Each(len(alignedPaths), func(i int) error {
		stats, err := ProcessFile(alignedPaths[i], index, opts)
		fileStats[i] = stats
		return err
	})
	var total Stats
	for _, stats := range fileStats {
		total.Add(stats)
	}
	return total, err
}
