package format

import "testing"

func TestAlreadyInFormat(t *testing.T) {
	c := NewContext()
	if c.AlreadyInFormat(StreamOfElements) {
		t.Fatal("empty context should not already be in any format")
	}
	c.Exit(2, StreamOfElements)
	if !c.AlreadyInFormat(StreamOfElements) {
		t.Fatal("want already in StreamOfElements after Exit")
	}
	if c.AlreadyInFormat(StreamOfValues) {
		t.Fatal("want not already in StreamOfValues")
	}
}

func TestEnterExitSymmetricallyBalancesStacks(t *testing.T) {
	c := NewContext()
	c.Exit(2, StreamOfElements) // simulate a producer leaving a value behind

	inBefore, outBefore := c.Depths()
	c.Enter(2, StreamOfElements)
	c.Exit(2, StreamOfElements)
	inAfter, outAfter := c.Depths()

	if inBefore != inAfter || outBefore != outAfter {
		t.Fatalf("stacks did not balance: before (%d,%d) after (%d,%d)", inBefore, outBefore, inAfter, outAfter)
	}
}

func TestOutClassTracksTopOfStack(t *testing.T) {
	c := NewContext()
	if _, ok := c.OutClass(); ok {
		t.Fatal("empty out-stack should report not-ok")
	}
	c.Exit(5, StreamOfValues)
	id, ok := c.OutClass()
	if !ok || id != 5 {
		t.Fatalf("want out-class 5, got %d, %v", id, ok)
	}
}
