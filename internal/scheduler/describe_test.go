package scheduler

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/kiwigraph/internal/datatype"
)

func TestDescribeTree(t *testing.T) {
	f := newFixture(t)
	a, b, c := f.node("A", 0), f.node("B", 2), f.node("C", 1)
	require.NoError(t, datatype.Put(a.Output(0).Data(), 2.5))
	require.NoError(t, datatype.Put(b.Input(1).Local(), 7.0))
	f.link(a, b, 0)
	f.link(b, c, 0)

	got := DescribeTree(c)
	assert.Contains(t, got, "C\n")
	assert.Contains(t, got, "[a]  B.out")
	assert.Contains(t, got, "[a]  A.out = 2.5")
	assert.Contains(t, got, "[b]  = 7")
}

func TestDescribeTreeMarksCycles(t *testing.T) {
	f := newFixture(t)
	a, b := f.node("A", 1), f.node("B", 1)
	f.link(a, b, 0)
	f.link(b, a, 0)

	got := DescribeTree(b)
	assert.Contains(t, got, "[a]  A.out\n")
	assert.Contains(t, got, "[a]  B.out (cycle)")
}

func TestDescribeTreeExpandsSharedProducersOnce(t *testing.T) {
	f := newFixture(t)
	d := f.diamond()

	got := DescribeTree(d)
	assert.Equal(t, 2, strings.Count(got, "A.out = 0"), "leaf producers always show their value")
	assert.Contains(t, got, "[a]  B.out\n")
	assert.Contains(t, got, "[b]  C.out\n")

	// Stack diamonds: every layer doubles the paths through the graph.
	prev := d
	for i := 0; i < 20; i++ {
		l, r, join := f.node(fmt.Sprintf("L%d", i), 1), f.node(fmt.Sprintf("R%d", i), 1), f.node(fmt.Sprintf("J%d", i), 2)
		f.link(prev, l, 0)
		f.link(prev, r, 0)
		f.link(l, join, 0)
		f.link(r, join, 1)
		prev = join
	}

	got = DescribeTree(prev)
	assert.Equal(t, 1, strings.Count(got, "J10.out\n"), "a shared producer is expanded once")
	assert.Equal(t, 1, strings.Count(got, "J10.out (see above)"))
	assert.Less(t, strings.Count(got, "\n"), 200)
}
