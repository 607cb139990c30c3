package prng

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeterministic(t *testing.T) {
	a := New(42)
	b := New(42)

	for i := 0; i < 1000; i++ {
		require.Equal(t, a.Next(), b.Next())
	}
}

func TestNextInUnitRange(t *testing.T) {
	s := New(7)
	for i := 0; i < 10000; i++ {
		v := s.Next()
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}
}

func TestRangeBounds(t *testing.T) {
	s := New(1)
	for i := 0; i < 1000; i++ {
		v := s.Range(-5, 5)
		assert.GreaterOrEqual(t, v, -5.0)
		assert.Less(t, v, 5.0)
	}
}

func TestIntInclusive(t *testing.T) {
	s := New(99)
	seen := map[int]bool{}
	for i := 0; i < 5000; i++ {
		v := s.Int(3, 5)
		assert.GreaterOrEqual(t, v, 3)
		assert.LessOrEqual(t, v, 5)
		seen[v] = true
	}
	assert.Len(t, seen, 3, "expected all three values in [3,5] to appear")
}

func TestIntDegenerateRange(t *testing.T) {
	s := New(1)
	assert.Equal(t, 5, s.Int(5, 5))
	assert.Equal(t, 5, s.Int(5, 2))
}

func TestBoolProbability(t *testing.T) {
	s := New(3)
	trues := 0
	const n = 20000
	for i := 0; i < n; i++ {
		if s.Bool(0.3) {
			trues++
		}
	}
	ratio := float64(trues) / float64(n)
	assert.InDelta(t, 0.3, ratio, 0.02)
}

func TestChoiceAndShuffleDeterministic(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e"}

	s1 := New(123)
	c1 := Choice(s1, items)

	s2 := New(123)
	c2 := Choice(s2, items)

	assert.Equal(t, c1, c2)

	cp1 := append([]string(nil), items...)
	cp2 := append([]string(nil), items...)

	Shuffle(New(5), cp1)
	Shuffle(New(5), cp2)
	assert.Equal(t, cp1, cp2)
	assert.ElementsMatch(t, items, cp1)
}

func TestForkIsIndependentButDeterministic(t *testing.T) {
	master1 := New(77)
	master2 := New(77)

	forkA1 := master1.Fork("elevation")
	forkA2 := master2.Fork("elevation")
	forkB := master1.Fork("temperature")

	for i := 0; i < 100; i++ {
		require.Equal(t, forkA1.Next(), forkA2.Next())
	}

	same := true
	fa := master1.Fork("elevation")
	for i := 0; i < 50; i++ {
		if fa.Next() != forkB.Next() {
			same = false
			break
		}
	}
	assert.False(t, same, "different fork labels should diverge")
}
