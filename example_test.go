package edn_test

import (
	"fmt"
	"testing"

	"github.com/mcvoid/edn"
)

func TestUsage(t *testing.T) {
	// use one of the ParseXXX functions to get an EDN value from text.
	// You can pass in strings, []byte, or io.Reader.
	val, err := edn.ParseString(`
	{:name "The Beatles"
	 :type :band
	 :founded 1960
	 :active false
	 :members ["John" "Paul" "George" "Ringo"]
	 :tags #{:rock :pop}}
	`)
	if err != nil {
		t.Error("Can't parse edn... somehow.")
	}

	// to inspect the kind, use the Kind method.
	if val.Kind() != edn.KindMap {
		t.Error("top-level value is the wrong kind!")
	}

	// Maps give you entries in source order; look one up by hand or walk
	// them, same as you would any other ordered pair list.
	entries, _ := val.AsMap()
	var members *edn.Value
	for _, e := range entries {
		_, name, err := e.Key.AsKeyword()
		if err == nil && name == "members" {
			members = e.Val
		}
	}

	// Vectors are represented as slices of *Value.
	names, _ := members.AsVector()
	first, _ := names[0].AsString()
	fmt.Println(first) // "John"

	// Sets reject duplicates at parse time; a duplicate element anywhere
	// in the literal fails the whole parse with ErrDuplicateElement.
	_, err = edn.ParseString(`#{1 2 2}`)
	if err == nil {
		t.Error("duplicate set element should have failed")
	}

	// Unknown tagged literals pass through as Tagged values by default,
	// so a reader that doesn't know about #inst still gets the data.
	tagged, _ := edn.ParseString(`#inst "2024-01-01"`)
	tag, wrapped, _ := tagged.AsTagged()
	raw, _, _ := wrapped.RawString()
	fmt.Printf("#%s %s\n", tag, raw) // "#inst 2024-01-01"

	// And that's all there is to it.
}
