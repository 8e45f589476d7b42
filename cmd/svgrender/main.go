// Command svgrender ingests an SVG document from stdin, applies its
// stylesheets and presentation attributes, and writes a rasterized PNG to
// stdout.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/mistlace/svgdoc"
)

func main() {
	scale := flag.Float64("scale", 1, "output scale factor")
	strict := flag.Bool("strict-attrs", false, "reject unrecognized attributes instead of storing them as custom attributes")
	flag.Parse()

	doc, warnings, err := svg.Ingest(os.Stdin, svg.IngestOptions{DisableUserAttributes: *strict})
	if err != nil {
		log.Fatal(err)
	}
	for _, w := range warnings {
		log.Printf("warning: %s", w.Reason)
	}

	for _, w := range svg.ApplyDocument(doc) {
		log.Printf("warning: %s", w.Reason)
	}

	ctx := svg.NewScaledContext(doc, *scale)
	if err := svg.Render(ctx, doc); err != nil {
		log.Fatal(err)
	}

	if err := ctx.EncodePNG(os.Stdout); err != nil {
		log.Fatal(err)
	}
}
