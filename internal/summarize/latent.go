package summarize

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
)

// rankLatent implements LSA ranking: factorize the term×sentence frequency
// matrix with a thin SVD and score each sentence by the singular-value
// weighted norm of its projection onto the top latent topics.
func rankLatent(docs [][]string, topics int) ([]float64, error) {
	vocab := make(map[string]int)
	for _, doc := range docs {
		for _, t := range doc {
			if _, ok := vocab[t]; !ok {
				vocab[t] = len(vocab)
			}
		}
	}

	n := len(docs)
	if len(vocab) == 0 {
		// No terms at all; every sentence is equally representative.
		scores := make([]float64, n)
		for i := range scores {
			scores[i] = 1.0 / float64(n)
		}
		return scores, nil
	}

	a := mat.NewDense(len(vocab), n, nil)
	for j, doc := range docs {
		for _, t := range doc {
			i := vocab[t]
			a.Set(i, j, a.At(i, j)+1)
		}
	}

	var svd mat.SVD
	if ok := svd.Factorize(a, mat.SVDThin); !ok {
		return nil, errors.New("svd factorization did not converge")
	}

	sigma := svd.Values(nil)
	var v mat.Dense
	svd.VTo(&v)

	if topics < 1 {
		topics = 1
	}
	if topics > len(sigma) {
		topics = len(sigma)
	}

	scores := make([]float64, n)
	for j := 0; j < n; j++ {
		sum := 0.0
		for k := 0; k < topics; k++ {
			p := sigma[k] * v.At(j, k)
			sum += p * p
		}
		scores[j] = math.Sqrt(sum)
	}
	return scores, nil
}
