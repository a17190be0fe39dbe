package perm_test

import (
	"fmt"

	"github.com/matzehuels/permsample/pkg/perm"
)

func ExampleGenerate() {
	// Generate all permutations of 3 elements
	perms := perm.Generate(3, -1)
	fmt.Println("All permutations of [0,1,2]:")
	for _, p := range perms {
		fmt.Println(p)
	}
	// Output:
	// All permutations of [0,1,2]:
	// [0 1 2]
	// [1 0 2]
	// [2 0 1]
	// [0 2 1]
	// [1 2 0]
	// [2 1 0]
}

func ExampleGenerate_limited() {
	// Generate only the first 5 permutations of 10 elements
	perms := perm.Generate(10, 5)
	fmt.Println("Count:", len(perms))
	// Output:
	// Count: 5
}

func ExampleFactorial() {
	fmt.Println("4! =", perm.Factorial(4))
	fmt.Println("5! =", perm.Factorial(5))
	// Output:
	// 4! = 24
	// 5! = 120
}

func ExamplePartial() {
	p, _ := perm.NewPartial(5)

	// Extending at index 0 takes the first remaining label; the last
	// remaining label is swapped into its slot.
	p.Extend(0)
	fmt.Println("placed:", p.Placed(), "remaining:", p.Remaining())

	p.Extend(1)
	fmt.Println("placed:", p.Placed(), "remaining:", p.Remaining())

	for !p.IsComplete() {
		p.Extend(0)
	}
	fmt.Println("complete:", p.Complete())
	// Output:
	// placed: [0] remaining: [4 1 2 3]
	// placed: [0 1] remaining: [4 3 2]
	// complete: [0 1 4 2 3]
}
