package star

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Clustering strategy identifiers.
const (
	ClusterKMeansID = "k_means"
	ClusterNoneID   = "none"
)

const (
	// DefaultClusterCount is the k used until the user picks another.
	DefaultClusterCount = 3
	kmeansMaxIterations = 100
)

// Clusterer assigns a category label to every point from its normalized
// dimension values. Output order matches row order.
type Clusterer interface {
	Name() string
	Cluster(values *mat.Dense, k int) ([]string, error)
}

// NewClustererRegistry registers the built-in clustering strategies with
// k-means active by default.
func NewClustererRegistry() *Registry[Clusterer] {
	ids := []string{ClusterKMeansID, ClusterNoneID}
	return NewRegistry(ids, map[string]Clusterer{
		ClusterKMeansID: KMeansClusterer{},
		ClusterNoneID:   NoClusterer{},
	})
}

// NoClusterer is the null strategy: every point lands in one category.
type NoClusterer struct{}

func (NoClusterer) Name() string { return ClusterNoneID }

func (NoClusterer) Cluster(values *mat.Dense, k int) ([]string, error) {
	rows, _ := values.Dims()
	out := make([]string, rows)
	for i := range out {
		out[i] = "cluster-0"
	}
	return out, nil
}

// KMeansClusterer is a plain Lloyd's-iterations k-means over the normalized
// dimension values. Initial centroids are chosen deterministically by
// spreading over the rows sorted by vector norm, and final cluster numbering
// is sorted by centroid so repeated runs on the same data label identically.
type KMeansClusterer struct{}

func (KMeansClusterer) Name() string { return ClusterKMeansID }

func (KMeansClusterer) Cluster(values *mat.Dense, k int) ([]string, error) {
	rows, cols := values.Dims()
	if rows == 0 {
		return nil, fmt.Errorf("cannot cluster an empty dataset")
	}
	if k < 1 {
		return nil, fmt.Errorf("cluster count must be >= 1, got %d", k)
	}
	if k > rows {
		k = rows
	}

	centroids := initialCentroids(values, k)
	assign := make([]int, rows)
	row := make([]float64, cols)

	for iter := 0; iter < kmeansMaxIterations; iter++ {
		changed := false
		for i := 0; i < rows; i++ {
			mat.Row(row, i, values)
			best, bestDist := 0, floats.Distance(row, centroids[0], 2)
			for c := 1; c < k; c++ {
				if d := floats.Distance(row, centroids[c], 2); d < bestDist {
					best, bestDist = c, d
				}
			}
			if assign[i] != best {
				assign[i] = best
				changed = true
			}
		}
		if !changed && iter > 0 {
			break
		}
		recomputeCentroids(values, assign, centroids)
	}

	// Renumber clusters by centroid order so labels are stable across runs.
	rank := centroidRanks(centroids)
	out := make([]string, rows)
	for i, c := range assign {
		out[i] = fmt.Sprintf("cluster-%d", rank[c])
	}
	return out, nil
}

// initialCentroids spreads the k seeds over the rows ordered by norm, which
// is deterministic and tends to straddle the data extent.
func initialCentroids(values *mat.Dense, k int) [][]float64 {
	rows, cols := values.Dims()
	type normRow struct {
		idx  int
		norm float64
	}
	ordered := make([]normRow, rows)
	row := make([]float64, cols)
	for i := 0; i < rows; i++ {
		mat.Row(row, i, values)
		ordered[i] = normRow{idx: i, norm: floats.Norm(row, 2)}
	}
	sort.Slice(ordered, func(a, b int) bool {
		if ordered[a].norm != ordered[b].norm {
			return ordered[a].norm < ordered[b].norm
		}
		return ordered[a].idx < ordered[b].idx
	})

	centroids := make([][]float64, k)
	for c := 0; c < k; c++ {
		pick := ordered[c*(rows-1)/max(k-1, 1)].idx
		centroids[c] = make([]float64, cols)
		mat.Row(centroids[c], pick, values)
	}
	return centroids
}

func recomputeCentroids(values *mat.Dense, assign []int, centroids [][]float64) {
	rows, cols := values.Dims()
	counts := make([]int, len(centroids))
	sums := make([][]float64, len(centroids))
	for c := range sums {
		sums[c] = make([]float64, cols)
	}
	row := make([]float64, cols)
	for i := 0; i < rows; i++ {
		c := assign[i]
		mat.Row(row, i, values)
		floats.Add(sums[c], row)
		counts[c]++
	}
	for c := range centroids {
		if counts[c] == 0 {
			// Empty cluster keeps its previous centroid.
			continue
		}
		floats.Scale(1/float64(counts[c]), sums[c])
		copy(centroids[c], sums[c])
	}
}

// centroidRanks maps internal cluster indexes to a numbering sorted by
// centroid coordinates, first coordinate outermost.
func centroidRanks(centroids [][]float64) []int {
	idx := make([]int, len(centroids))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool {
		ca, cb := centroids[idx[a]], centroids[idx[b]]
		for d := range ca {
			if ca[d] != cb[d] {
				return ca[d] < cb[d]
			}
		}
		return idx[a] < idx[b]
	})
	rank := make([]int, len(centroids))
	for r, i := range idx {
		rank[i] = r
	}
	return rank
}
