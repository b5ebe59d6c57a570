package unclip

import (
	"testing"

	"github.com/grailbio/hts/sam"
	"github.com/stretchr/testify/assert"
)

func TestConvertCigar(t *testing.T) {
	tests := []struct {
		name string
		in   sam.Cigar
		want sam.Cigar
	}{
		{"empty", sam.Cigar{}, sam.Cigar{}},
		{
			"no clips",
			sam.Cigar{sam.NewCigarOp(sam.CigarMatch, 10)},
			sam.Cigar{sam.NewCigarOp(sam.CigarMatch, 10)},
		},
		{
			"leading hard clip",
			sam.Cigar{sam.NewCigarOp(sam.CigarHardClipped, 2), sam.NewCigarOp(sam.CigarMatch, 6)},
			sam.Cigar{sam.NewCigarOp(sam.CigarSoftClipped, 2), sam.NewCigarOp(sam.CigarMatch, 6)},
		},
		{
			"hard clips both ends",
			sam.Cigar{
				sam.NewCigarOp(sam.CigarHardClipped, 2),
				sam.NewCigarOp(sam.CigarMatch, 6),
				sam.NewCigarOp(sam.CigarHardClipped, 3),
			},
			sam.Cigar{
				sam.NewCigarOp(sam.CigarSoftClipped, 2),
				sam.NewCigarOp(sam.CigarMatch, 6),
				sam.NewCigarOp(sam.CigarSoftClipped, 3),
			},
		},
		{
			"soft clips untouched",
			sam.Cigar{sam.NewCigarOp(sam.CigarSoftClipped, 4), sam.NewCigarOp(sam.CigarMatch, 6)},
			sam.Cigar{sam.NewCigarOp(sam.CigarSoftClipped, 4), sam.NewCigarOp(sam.CigarMatch, 6)},
		},
		{
			"other ops untouched",
			sam.Cigar{
				sam.NewCigarOp(sam.CigarHardClipped, 1),
				sam.NewCigarOp(sam.CigarMatch, 2),
				sam.NewCigarOp(sam.CigarInsertion, 1),
				sam.NewCigarOp(sam.CigarDeletion, 2),
				sam.NewCigarOp(sam.CigarSkipped, 3),
				sam.NewCigarOp(sam.CigarPadded, 1),
				sam.NewCigarOp(sam.CigarEqual, 2),
				sam.NewCigarOp(sam.CigarMismatch, 1),
			},
			sam.Cigar{
				sam.NewCigarOp(sam.CigarSoftClipped, 1),
				sam.NewCigarOp(sam.CigarMatch, 2),
				sam.NewCigarOp(sam.CigarInsertion, 1),
				sam.NewCigarOp(sam.CigarDeletion, 2),
				sam.NewCigarOp(sam.CigarSkipped, 3),
				sam.NewCigarOp(sam.CigarPadded, 1),
				sam.NewCigarOp(sam.CigarEqual, 2),
				sam.NewCigarOp(sam.CigarMismatch, 1),
			},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := ConvertCigar(test.in)
			assert.Equal(t, test.want, got)
			assert.Equal(t, len(test.in), len(got))
			// Idempotent.
			assert.Equal(t, test.want, ConvertCigar(got))
		})
	}
}

func TestConvertCigarDoesNotMutateInput(t *testing.T) {
	in := sam.Cigar{sam.NewCigarOp(sam.CigarHardClipped, 2), sam.NewCigarOp(sam.CigarMatch, 6)}
	_ = ConvertCigar(in)
	assert.Equal(t, sam.CigarHardClipped, in[0].Type())
}

func TestHasHardClip(t *testing.T) {
	assert.False(t, HasHardClip(nil))
	assert.False(t, HasHardClip(sam.Cigar{sam.NewCigarOp(sam.CigarSoftClipped, 2)}))
	assert.True(t, HasHardClip(sam.Cigar{
		sam.NewCigarOp(sam.CigarMatch, 6),
		sam.NewCigarOp(sam.CigarHardClipped, 2),
	}))
}

func TestQueryLength(t *testing.T) {
	cigar := sam.Cigar{
		sam.NewCigarOp(sam.CigarSoftClipped, 2),
		sam.NewCigarOp(sam.CigarMatch, 6),
		sam.NewCigarOp(sam.CigarInsertion, 1),
		sam.NewCigarOp(sam.CigarDeletion, 4),
		sam.NewCigarOp(sam.CigarSkipped, 10),
	}
	assert.Equal(t, 9, queryLength(cigar))
	// Hard to soft conversion adds the clipped bases to the consumed
	// query length.
	hard := sam.Cigar{sam.NewCigarOp(sam.CigarHardClipped, 2), sam.NewCigarOp(sam.CigarMatch, 6)}
	assert.Equal(t, 6, queryLength(hard))
	assert.Equal(t, 8, queryLength(ConvertCigar(hard)))
}
