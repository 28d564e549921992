package navigator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartsOnFirstSection(t *testing.T) {
	n := New([]string{"cover", "overview"}, 0)
	active, ok := n.Active()
	require.True(t, ok)
	assert.Equal(t, "cover", active)
	assert.Equal(t, float64(DefaultReferenceLine), n.ReferenceLine())

	empty := New(nil, 50)
	_, ok = empty.Active()
	assert.False(t, ok)
}

func TestOnScrollPicksIntersectingSection(t *testing.T) {
	n := New([]string{"A", "B", "C"}, 100)

	n.OnScroll(map[string]Box{
		"A": {Top: -900, Bottom: -10},
		"B": {Top: -10, Bottom: 700},
		"C": {Top: 700, Bottom: 1500},
	})

	active, _ := n.Active()
	assert.Equal(t, "B", active)
}

func TestOnScrollKeepsPreviousWhenNothingIntersects(t *testing.T) {
	n := New([]string{"A", "B", "C"}, 100)
	n.OnScroll(map[string]Box{"B": {Top: 0, Bottom: 200}})

	n.OnScroll(map[string]Box{
		"A": {Top: -500, Bottom: -300},
		"B": {Top: -300, Bottom: 50},
		"C": {Top: 150, Bottom: 900},
	})

	active, ok := n.Active()
	require.True(t, ok)
	assert.Equal(t, "B", active)
}

func TestOnScrollFirstInDocumentOrderWins(t *testing.T) {
	n := New([]string{"A", "B", "C"}, 100)
	n.OnScroll(map[string]Box{
		"C": {Top: 0, Bottom: 400},
		"B": {Top: 90, Bottom: 100},
	})
	active, _ := n.Active()
	assert.Equal(t, "B", active)
}

func TestOnScrollIgnoresUnknownSections(t *testing.T) {
	n := New([]string{"A", "B"}, 100)
	n.OnScroll(map[string]Box{"Z": {Top: 0, Bottom: 200}})
	active, _ := n.Active()
	assert.Equal(t, "A", active)
}

func TestSubscribeFiresOnChangeOnly(t *testing.T) {
	n := New([]string{"A", "B", "C"}, 100)

	var seen []string
	unsubscribe := n.Subscribe(func(active string) { seen = append(seen, active) })

	n.OnScroll(map[string]Box{"B": {Top: 0, Bottom: 200}})
	n.OnScroll(map[string]Box{"B": {Top: -50, Bottom: 150}})
	n.OnScroll(map[string]Box{"C": {Top: 50, Bottom: 800}})
	assert.Equal(t, []string{"B", "C"}, seen)

	unsubscribe()
	unsubscribe()
	n.OnScroll(map[string]Box{"A": {Top: 0, Bottom: 200}})
	assert.Equal(t, []string{"B", "C"}, seen)
}

func TestSetActiveSectionRejectsUnknown(t *testing.T) {
	n := New([]string{"A", "B"}, 100)
	assert.False(t, n.SetActiveSection("missing"))
	assert.True(t, n.SetActiveSection("B"))
	active, _ := n.Active()
	assert.Equal(t, "B", active)
}

func TestNavigateTo(t *testing.T) {
	n := New([]string{"cover", "boq"}, 100)

	assert.True(t, n.NavigateTo("boq"), "no sink installed is still accepted")

	var cmds []ScrollCommand
	remove := n.AddScrollSink(func(c ScrollCommand) { cmds = append(cmds, c) })
	defer remove()

	assert.True(t, n.NavigateTo("boq"))
	assert.False(t, n.NavigateTo("nowhere"))
	assert.Equal(t, []ScrollCommand{{Section: "boq", Behavior: "smooth"}}, cmds)

	active, _ := n.Active()
	assert.Equal(t, "cover", active, "navigation does not move the pointer by itself")
}

func TestScrollSinksAreIndependent(t *testing.T) {
	n := New([]string{"cover", "boq"}, 100)

	var first, second []string
	removeFirst := n.AddScrollSink(func(c ScrollCommand) { first = append(first, c.Section) })
	removeSecond := n.AddScrollSink(func(c ScrollCommand) { second = append(second, c.Section) })

	require.True(t, n.NavigateTo("boq"))
	assert.Equal(t, []string{"boq"}, first)
	assert.Equal(t, []string{"boq"}, second)

	removeSecond()
	removeSecond()
	require.True(t, n.NavigateTo("cover"))
	assert.Equal(t, []string{"boq", "cover"}, first, "removing one sink keeps the others")
	assert.Equal(t, []string{"boq"}, second)

	removeFirst()
	assert.True(t, n.NavigateTo("boq"))
	assert.Equal(t, []string{"boq", "cover"}, first)
}
