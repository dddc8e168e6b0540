// Copyright (c) 2025 Nishisan. All rights reserved.
// Use of this source code is governed by a license that can be found in
// the LICENSE file.

package value

import "testing"

func TestFromGoWidening(t *testing.T) {
	cases := []struct {
		in   any
		kind Kind
	}{
		{int32(7), KindInt},
		{int64(-7), KindInt},
		{uint32(7), KindUint},
		{uint64(7), KindUint},
		{float32(1.5), KindFloat},
		{float64(1.5), KindFloat},
		{"hi", KindString},
		{true, KindBool},
	}
	for _, c := range cases {
		v, err := FromGo(c.in)
		if err != nil {
			t.Fatalf("FromGo(%v): %v", c.in, err)
		}
		if v.Kind() != c.kind {
			t.Errorf("FromGo(%v) kind = %v, want %v", c.in, v.Kind(), c.kind)
		}
	}
}

func TestFromGoRejectsUnsupported(t *testing.T) {
	if _, err := FromGo(struct{ X int }{1}); err == nil {
		t.Fatal("expected error for unsupported struct type")
	}
}

func TestFromGoMapNested(t *testing.T) {
	m, err := FromGoMap(map[string]any{
		"age":    10,
		"name":   "bob",
		"active": true,
		"tags":   []any{"a", "b"},
		"nested": map[string]any{"x": int64(1)},
	})
	if err != nil {
		t.Fatalf("FromGoMap: %v", err)
	}
	age, ok := m.Get("age")
	if !ok {
		t.Fatal("missing key age")
	}
	i, ok := age.AsInt()
	if !ok || i != 10 {
		t.Errorf("age = %v, %v; want 10, true", i, ok)
	}
	nested, ok := m.Get("nested")
	if !ok || nested.Kind() != KindObject {
		t.Fatalf("nested not an object: %v", nested)
	}
	nestedMap, _ := nested.AsObject()
	x, _ := nestedMap.Get("x")
	if xv, _ := x.AsInt(); xv != 1 {
		t.Errorf("nested.x = %v, want 1", xv)
	}
}

func TestEquality(t *testing.T) {
	a := Int(5)
	b := Int(5)
	c := Uint(5)
	if !a.Equal(b) {
		t.Error("Int(5) should equal Int(5)")
	}
	if a.Equal(c) {
		t.Error("Int(5) should not equal UInt(5): signedness matters")
	}

	m1 := NewMap()
	m1.Set("k", Str("v"))
	m2 := NewMap()
	m2.Set("k", Str("v"))
	if !m1.Equal(m2) {
		t.Error("separately built maps with identical entries should be equal")
	}
}

func TestMapIterationDeterministic(t *testing.T) {
	m := NewMap()
	m.Set("b", Int(2))
	m.Set("a", Int(1))
	m.Set("c", Int(3))
	var seen []string
	m.Each(func(k string, v Value) bool {
		seen = append(seen, k)
		return true
	})
	want := []string{"a", "b", "c"}
	for i, k := range want {
		if seen[i] != k {
			t.Fatalf("iteration order = %v, want %v", seen, want)
		}
	}
}

func TestDebugStringCanonical(t *testing.T) {
	v := Int(42)
	if got, want := v.String(), "Int(42)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
