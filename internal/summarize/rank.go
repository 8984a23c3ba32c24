package summarize

import "math"

const (
	dampingFactor    = 0.85
	powerIterations  = 60
	powerEpsilon     = 1e-6
	similarityCutoff = 0.1
)

// rankCentrality implements LexRank: sentences become nodes of a symmetric
// graph weighted by idf-modified cosine similarity, pruned below a fixed
// threshold, and are scored by eigenvector centrality via power iteration.
func rankCentrality(docs [][]string) []float64 {
	n := len(docs)
	idf := inverseDocumentFrequencies(docs)
	vectors := make([]map[string]float64, n)
	for i, doc := range docs {
		vectors[i] = tfidfVector(doc, idf)
	}

	adj := make([][]float64, n)
	for i := range adj {
		adj[i] = make([]float64, n)
		for j := range adj[i] {
			if i == j {
				continue
			}
			if sim := cosine(vectors[i], vectors[j]); sim >= similarityCutoff {
				adj[i][j] = sim
			}
		}
	}
	return powerIterate(adj)
}

// rankCooccurrence implements TextRank: edges are weighted by word overlap
// normalized by sentence length, scored with a damped PageRank.
func rankCooccurrence(docs [][]string) []float64 {
	n := len(docs)
	sets := make([]map[string]struct{}, n)
	for i, doc := range docs {
		set := make(map[string]struct{}, len(doc))
		for _, t := range doc {
			set[t] = struct{}{}
		}
		sets[i] = set
	}

	adj := make([][]float64, n)
	for i := range adj {
		adj[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			w := overlapWeight(sets[i], sets[j])
			adj[i][j] = w
			adj[j][i] = w
		}
	}
	return powerIterate(adj)
}

// overlapWeight is |Si ∩ Sj| / (log|Si| + log|Sj|), the TextRank sentence
// similarity. Sentences too short for the log normalization score zero.
func overlapWeight(a, b map[string]struct{}) float64 {
	if len(a) < 2 || len(b) < 2 {
		return 0
	}
	overlap := 0
	for t := range a {
		if _, ok := b[t]; ok {
			overlap++
		}
	}
	if overlap == 0 {
		return 0
	}
	return float64(overlap) / (math.Log(float64(len(a))) + math.Log(float64(len(b))))
}

// powerIterate runs a damped random-walk iteration over a weighted
// adjacency matrix and returns the stationary scores. Rows without
// outgoing weight distribute uniformly, so disconnected graphs converge
// to uniform scores instead of diverging.
func powerIterate(adj [][]float64) []float64 {
	n := len(adj)
	scores := make([]float64, n)
	for i := range scores {
		scores[i] = 1.0 / float64(n)
	}

	rowSums := make([]float64, n)
	for i, row := range adj {
		for _, w := range row {
			rowSums[i] += w
		}
	}

	next := make([]float64, n)
	for iter := 0; iter < powerIterations; iter++ {
		for j := 0; j < n; j++ {
			sum := 0.0
			for i := 0; i < n; i++ {
				if rowSums[i] > 0 {
					sum += scores[i] * adj[i][j] / rowSums[i]
				} else {
					sum += scores[i] / float64(n)
				}
			}
			next[j] = (1-dampingFactor)/float64(n) + dampingFactor*sum
		}

		delta := 0.0
		for i := range scores {
			delta += math.Abs(next[i] - scores[i])
		}
		copy(scores, next)
		if delta < powerEpsilon {
			break
		}
	}
	return scores
}

func inverseDocumentFrequencies(docs [][]string) map[string]float64 {
	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]struct{}, len(doc))
		for _, t := range doc {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			df[t]++
		}
	}
	idf := make(map[string]float64, len(df))
	n := float64(len(docs))
	for t, count := range df {
		idf[t] = math.Log(n/float64(count)) + 1
	}
	return idf
}

func tfidfVector(doc []string, idf map[string]float64) map[string]float64 {
	vec := make(map[string]float64)
	for _, t := range doc {
		vec[t] += idf[t]
	}
	return vec
}

func cosine(a, b map[string]float64) float64 {
	var dot, normA, normB float64
	for t, wa := range a {
		normA += wa * wa
		if wb, ok := b[t]; ok {
			dot += wa * wb
		}
	}
	for _, wb := range b {
		normB += wb * wb
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
