// Command gen-dataset generates a synthetic CSV dataset of gaussian blobs,
// one blob per category, for exercising the star coordinates view.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
)

func main() {
	output := flag.String("o", "data/synthetic.csv", "output path")
	points := flag.Int("n", 150, "number of points")
	dims := flag.Int("d", 4, "number of numeric dimensions")
	blobs := flag.Int("k", 3, "number of categories")
	spread := flag.Float64("spread", 0.15, "within-category standard deviation")
	seed := flag.Int64("seed", 42, "random seed")
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))

	// One centre per category, drawn uniformly in the unit hypercube.
	centres := make([][]float64, *blobs)
	for b := range centres {
		centres[b] = make([]float64, *dims)
		for d := range centres[b] {
			centres[b][d] = rng.Float64()
		}
	}

	f, err := os.Create(*output)
	if err != nil {
		log.Fatalf("failed to create output: %v", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{"name"}
	for d := 0; d < *dims; d++ {
		header = append(header, fmt.Sprintf("dim_%d", d))
	}
	header = append(header, "category")
	if err := w.Write(header); err != nil {
		log.Fatalf("failed to write header: %v", err)
	}

	for i := 0; i < *points; i++ {
		b := i % *blobs
		row := []string{fmt.Sprintf("point-%03d", i)}
		for d := 0; d < *dims; d++ {
			row = append(row, fmt.Sprintf("%.4f", centres[b][d]+rng.NormFloat64()*(*spread)))
		}
		row = append(row, fmt.Sprintf("blob-%d", b))
		if err := w.Write(row); err != nil {
			log.Fatalf("failed to write row: %v", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		log.Fatalf("failed to flush csv: %v", err)
	}

	log.Printf("✓ Created: %s (%d points, %d dims, %d categories)", *output, *points, *dims, *blobs)
}
