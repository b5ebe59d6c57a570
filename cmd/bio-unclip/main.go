package main

// See doc.go for documentation

import (
	"flag"
	"os"
	"strings"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/unclip"
)

var (
	unalignedFlag = flag.String("unaligned-bam", "", "Unaligned BAM file holding the original reads")
	outputDirFlag = flag.String("output-dir", ".", "Directory receiving one output BAM per aligned input")
	tagsFlag      = flag.String("tags", "",
		"Comma-separated two-letter tag names to transfer from the unaligned reads. Empty transfers every tag.")
)

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds | log.Lshortfile)
	flag.Usage = func() {
		os.Stderr.WriteString(`Usage: bio-unclip -unaligned-bam reads.bam [flags] <aligned.bam...>

bio-unclip restores hard-clipped bases and dropped tags in aligned BAM
files from the unaligned BAM that holds the original reads. Each input
foo.bam produces <output-dir>/foo_converted.bam.
`)
		flag.PrintDefaults()
	}
	shutdown := grail.Init()
	defer shutdown()

	if *unalignedFlag == "" {
		log.Error.Printf("missing required flag -unaligned-bam")
		flag.Usage()
		os.Exit(2)
	}
	if flag.NArg() == 0 {
		log.Error.Printf("no aligned BAM files given")
		flag.Usage()
		os.Exit(2)
	}
	// file.Create handles remote paths without a mkdir.
	if !strings.Contains(*outputDirFlag, "://") {
		if err := os.MkdirAll(*outputDirFlag, 0775); err != nil {
			log.Fatalf("create %v: %v", *outputDirFlag, err)
		}
	}
	opts := unclip.Opts{
		UnalignedPath: *unalignedFlag,
		OutputDir:     *outputDirFlag,
	}
	if *tagsFlag != "" {
		opts.TransferTags = unclip.ParseTransferTags(strings.Split(*tagsFlag, ","))
	}
	stats, err := unclip.Run(flag.Args(), opts)
	if err != nil {
		log.Fatalf("bio-unclip: %v", err)
	}
	log.Printf("all files done: %v", stats)
}
