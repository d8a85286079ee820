//go:build go1.23

package xiter_test

import (
	"fmt"
	"slices"

	. "github.com/xuyanwen2012/fmm2d/pkg/xiter"
)

func ExampleFold() {
	s := slices.Values([]int{1, 2, 3})
	f := Fold(s, 0, func(acc int, n int) int { return acc + n })

	fmt.Println(f)
	// Output: 6
}
