/*Command bio-unclip rewrites aligned BAM files so each record regains
  the full sequence, qualities and auxiliary tags recorded in an
  unaligned BAM of the same reads. Hard clips are converted to soft
  clips with their lengths unchanged, keeping the CIGAR consistent with
  the restored sequence. Records absent from the unaligned BAM pass
  through unmodified.

  Each input foo.bam produces <output-dir>/foo_converted.bam, with
  records in input order under the input's own header. Aligned files
  are processed in parallel once the unaligned index is built.

  Usage: bio-unclip -unaligned-bam reads.bam -output-dir out [-tags MM,ML] aligned1.bam aligned2.bam
*/
package main
