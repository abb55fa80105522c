// Package score measures how well separated the clusters of a dataset are.
package score

import (
	"context"
	"runtime"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"

	"github.com/teranos/clustergen/dataset"
	"github.com/teranos/clustergen/errors"
	"github.com/teranos/clustergen/logger"
)

// rowsPerTask bounds the work of one errgroup task
const rowsPerTask = 256

// Method selects how b(i), the separation from other clusters, is measured
type Method int

const (
	// MeanDistance uses the smallest mean distance to another cluster
	MeanDistance Method = iota
	// NearestPoint uses the distance to the closest point of any other
	// cluster. Singleton points then score 1 instead of 0.
	NearestPoint
)

func (m Method) String() string {
	switch m {
	case MeanDistance:
		return "mean"
	case NearestPoint:
		return "nearest"
	default:
		return "unknown"
	}
}

// Report is the result of a silhouette computation
type Report struct {
	Method     string            `json:"method"`
	Score      float64           `json:"silhouette"`
	Rows       int               `json:"rows"`
	Clusters   int               `json:"clusters"`
	PerCluster map[int64]float64 `json:"per_cluster"`
}

// Scorer computes silhouette coefficients
type Scorer struct {
	workers int
	method  Method
	logger  *zap.SugaredLogger
}

// Option configures a Scorer
type Option func(*Scorer)

// WithMethod picks the b(i) definition; the default is MeanDistance
func WithMethod(m Method) Option {
	return func(s *Scorer) {
		s.method = m
	}
}

// NewScorer creates a Scorer running at most workers tasks at once.
// workers <= 0 means GOMAXPROCS.
func NewScorer(workers int, log *zap.SugaredLogger, opts ...Option) *Scorer {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	s := &Scorer{workers: workers, method: MeanDistance, logger: log}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Silhouette returns the mean silhouette coefficient of ds using Euclidean
// distance. For point i with a(i) the mean distance to the rest of its own
// cluster and b(i) the smallest mean distance to another cluster,
// s(i) = (b - a) / max(a, b). Points in singleton clusters score 0.
// WithMethod(NearestPoint) switches b(i) to the nearest foreign point.
//
// The cost is O(rows² · dims); each point is scored independently and the
// final reduction runs in row order, so the result does not depend on the
// worker count.
func (s *Scorer) Silhouette(ctx context.Context, ds *dataset.Dataset) (*Report, error) {
	labels, ordinal, members := groupClusters(ds.Cluster)
	if len(labels) < 2 {
		return nil, errors.NewInvalidRequestError("silhouette needs at least 2 clusters, dataset has %d", len(labels))
	}
	if s.method != MeanDistance && s.method != NearestPoint {
		return nil, errors.NewInvalidRequestError("unknown silhouette method %d", int(s.method))
	}

	points := make([][]float64, ds.Rows())
	for i := range points {
		points[i] = ds.Point(i, nil)
	}

	scores := make([]float64, ds.Rows())
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for start := 0; start < len(points); start += rowsPerTask {
		end := min(start+rowsPerTask, len(points))
		g.Go(func() error {
			sums := make([]float64, len(labels))
			for i := start; i < end; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				if s.method == NearestPoint {
					scores[i] = nearestPointScore(points, ordinal, i, members)
				} else {
					scores[i] = pointScore(points, ordinal, i, members, sums)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "silhouette computation aborted")
	}

	report := &Report{
		Method:     s.method.String(),
		Rows:       ds.Rows(),
		Clusters:   len(labels),
		PerCluster: make(map[int64]float64, len(labels)),
	}
	perSum := make([]float64, len(labels))
	var total float64
	for i, v := range scores {
		total += v
		perSum[ordinal[i]] += v
	}
	report.Score = total / float64(len(scores))
	for c, label := range labels {
		report.PerCluster[label] = perSum[c] / float64(members[c])
	}

	s.logger.Debugw("Silhouette computed",
		logger.FieldRows, report.Rows,
		logger.FieldCount, report.Clusters,
		"method", report.Method,
		"score", report.Score)
	return report, nil
}

// groupClusters maps every row to the ordinal of its label. labels are
// sorted ascending; members[c] counts rows of labels[c].
func groupClusters(cluster []int64) (labels []int64, ordinal []int, members []int) {
	seen := make(map[int64]struct{})
	for _, c := range cluster {
		if _, ok := seen[c]; !ok {
			seen[c] = struct{}{}
			labels = append(labels, c)
		}
	}
	sort.Slice(labels, func(i, j int) bool { return labels[i] < labels[j] })

	index := make(map[int64]int, len(labels))
	for c, label := range labels {
		index[label] = c
	}

	ordinal = make([]int, len(cluster))
	members = make([]int, len(labels))
	for i, c := range cluster {
		ordinal[i] = index[c]
		members[ordinal[i]]++
	}
	return labels, ordinal, members
}

// pointScore computes s(i). sums is scratch space of len(members).
func pointScore(points [][]float64, ordinal []int, i int, members []int, sums []float64) float64 {
	own := ordinal[i]
	if members[own] < 2 {
		return 0
	}
	for c := range sums {
		sums[c] = 0
	}

	p := points[i]
	for j, q := range points {
		if j == i {
			continue
		}
		sums[ordinal[j]] += floats.Distance(p, q, 2)
	}

	a := sums[own] / float64(members[own]-1)
	b := -1.0
	for c, sum := range sums {
		if c == own {
			continue
		}
		if mean := sum / float64(members[c]); b < 0 || mean < b {
			b = mean
		}
	}

	denom := max(a, b)
	if denom == 0 {
		return 0
	}
	return (b - a) / denom
}

// nearestPointScore computes s(i) with b(i) the distance to the closest
// point outside i's cluster. a(i) is 0 for singletons.
func nearestPointScore(points [][]float64, ordinal []int, i int, members []int) float64 {
	own := ordinal[i]
	p := points[i]

	var sum float64
	b := -1.0
	for j, q := range points {
		if j == i {
			continue
		}
		d := floats.Distance(p, q, 2)
		if ordinal[j] == own {
			sum += d
			continue
		}
		if b < 0 || d < b {
			b = d
		}
	}

	a := 0.0
	if members[own] > 1 {
		a = sum / float64(members[own]-1)
	}
	denom := max(a, b)
	if denom == 0 {
		return 0
	}
	return (b - a) / denom
}
