package unclip

import (
	"fmt"
	"io"
	"os"
	"testing"

	"github.com/grailbio/hts/bam"
	"github.com/grailbio/hts/sam"
	"github.com/stretchr/testify/require"
)

func newTestRecord(name string, ref *sam.Reference, pos int, flags sam.Flags,
	cigar sam.Cigar, seq, qual string, aux ...sam.Aux) *sam.Record {
	r := &sam.Record{
		Name:    name,
		Ref:     ref,
		Pos:     pos,
		MapQ:    30,
		Cigar:   cigar,
		Flags:   flags,
		MateRef: nil,
		MatePos: -1,
		Seq:     sam.NewSeq([]byte(seq)),
		Qual:    []byte(qual),
	}
	r.AuxFields = append(r.AuxFields, aux...)
	return r
}

func newAux(name string, val interface{}) sam.Aux {
	aux, err := sam.NewAux(sam.NewTag(name), val)
	if err != nil {
		panic(fmt.Sprintf("error creating %s %v tag: %v", name, val, err))
	}
	return aux
}

func writeTestBAM(t *testing.T, path string, header *sam.Header, recs []*sam.Record) {
	out, err := os.Create(path)
	require.NoError(t, err)
	w, err := bam.NewWriter(out, header, 1)
	require.NoError(t, err)
	for _, r := range recs {
		require.NoError(t, w.Write(r))
	}
	require.NoError(t, w.Close())
	require.NoError(t, out.Close())
}

func readTestBAM(t *testing.T, path string) []*sam.Record {
	in, err := os.Open(path)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, in.Close())
	}()
	r, err := bam.NewReader(in, 1)
	require.NoError(t, err)
	records := make([]*sam.Record, 0)
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		records = append(records, rec)
	}
	return records
}
