package search_test

import (
	"fmt"

	"github.com/mhr3/skipscan/search"
	"github.com/mhr3/skipscan/seq"
)

func ExampleBind() {
	e, err := search.Bind[byte](seq.FromString("cad"), search.BoyerMoore)
	if err != nil {
		panic(err)
	}
	fmt.Println(e.Find(seq.FromString("abracadabra"), 0))
	fmt.Println(e.Find(seq.FromString("hello"), 0))
	// Output:
	// Found(4)
	// NotFound
}

func ExampleEngine_FindAll() {
	e, _ := search.Bind[byte](seq.FromString("abra"), search.Horspool)
	for i := range e.FindAll(seq.FromString("abracadabra")) {
		fmt.Println(i)
	}
	// Output:
	// 0
	// 7
}

func ExampleIndex() {
	dna := []rune("CTGATGTTAAGTCAACGCTGC")
	r, _ := search.Index(dna, []rune("GCTGC"), search.Horspool)
	fmt.Println(r.Index())
	// Output: 16
}
