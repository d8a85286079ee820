//go:build go1.23

package xiter

import (
	"iter"
)

// Fold folds every element into an accumulator by applying an operation f, returning the final result.
func Fold[T, B any](x iter.Seq[T], init B, f func(B, T) B) B {
	acc := init

	for v := range x {
		acc = f(acc, v)
	}

	return acc
}
