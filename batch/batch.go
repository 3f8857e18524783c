package batch

import (
	"errors"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/oarkflow/jsonvalue/parser"
	"github.com/oarkflow/jsonvalue/value"
)

// Parse decodes each document on a bounded worker pool and returns the
// trees in input order. A zero or negative size uses one worker per
// document. Failed slots hold a zero Value; the joined error reports
// every failure.
func Parse(docs [][]byte, size int) ([]value.Value, error) {
	if len(docs) == 0 {
		return nil, nil
	}
	if size <= 0 || size > len(docs) {
		size = len(docs)
	}
	pool, err := ants.NewPool(size)
	if err != nil {
		return nil, err
	}
	defer pool.Release()

	results := make([]value.Value, len(docs))
	errs := make([]error, len(docs))
	var wg sync.WaitGroup
	for i, doc := range docs {
		i, doc := i, doc
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			results[i], errs[i] = parser.Parse(doc)
		})
		if submitErr != nil {
			errs[i] = submitErr
			wg.Done()
		}
	}
	wg.Wait()
	return results, errors.Join(errs...)
}

// Check validates each document concurrently, returning one error per
// input slot. A nil slice means every document passed.
func Check(docs [][]byte, size int) []error {
	if len(docs) == 0 {
		return nil
	}
	if size <= 0 || size > len(docs) {
		size = len(docs)
	}
	pool, err := ants.NewPool(size)
	if err != nil {
		errs := make([]error, len(docs))
		for i := range errs {
			errs[i] = err
		}
		return errs
	}
	defer pool.Release()

	errs := make([]error, len(docs))
	failed := false
	var mu sync.Mutex
	var wg sync.WaitGroup
	for i, doc := range docs {
		i, doc := i, doc
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			if err := parser.Check(doc); err != nil {
				errs[i] = err
				mu.Lock()
				failed = true
				mu.Unlock()
			}
		})
		if submitErr != nil {
			errs[i] = submitErr
			failed = true
			wg.Done()
		}
	}
	wg.Wait()
	if !failed {
		return nil
	}
	return errs
}
