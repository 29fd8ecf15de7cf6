package board

import (
	"math"
	"testing"
)

func TestTrajectory_AtAndApex(t *testing.T) {
	tr := Trajectory{Initial: 3, Decay: 2}
	if got := tr.At(0); got != 3 {
		t.Fatalf("At(0) = %g, want 3", got)
	}
	if got := tr.At(40); got != 1 {
		t.Fatalf("At(40) = %g, want 1", got)
	}
	if got := tr.Apex(); got != 60 {
		t.Fatalf("Apex() = %d, want 60", got)
	}
	if got := (Trajectory{Initial: -5}).Apex(); got != -1 {
		t.Fatalf("flat curve apex = %d, want -1", got)
	}
}

func TestMotion_Velocity(t *testing.T) {
	if v := Constant(8).Velocity(100); v != 8 {
		t.Fatalf("constant velocity = %g, want 8", v)
	}
	m := Along(Trajectory{Initial: 4, Decay: 2})
	if v := m.Velocity(0); v != -4 {
		t.Fatalf("launch starts upward: got %g, want -4", v)
	}
	if v := m.Velocity(120); v <= 0 {
		t.Fatalf("past the apex the launch falls back: got %g", v)
	}
	if _, ok := Constant(1).Trajectory(); ok {
		t.Fatal("constant motion has no trajectory")
	}
	if tr, ok := m.Trajectory(); !ok || tr.Initial != 4 {
		t.Fatalf("Trajectory() = %+v, %v", tr, ok)
	}
}

func TestLaunchGroup_AddBlockIsIdempotent(t *testing.T) {
	ts := NewTestSim(WithGrid(1, 12), WithStack(0, 1, 2))
	b := ts.Board
	g := b.newGroup(Along(Trajectory{Initial: 1}))
	low := ts.Block(0, 0)
	g.AddBlock(low)
	g.AddBlock(low)
	g.AddBlock(ts.Block(0, 1))
	if g.Len() != 2 {
		t.Fatalf("expected 2 distinct members, got %d", g.Len())
	}
	checkGroupConsistency(t, b)
}

func TestLaunchGroup_MergeDrainsOldGroup(t *testing.T) {
	ts := NewTestSim(WithGrid(2, 12), WithStack(0, 1, 2), WithStack(1, 3))
	b := ts.Board
	old := b.newGroup(Along(Trajectory{Initial: 1}))
	old.AddBlock(ts.Block(0, 0))
	if old.Len() != 2 {
		t.Fatalf("setup: expected propagation to sweep the stack, got %d", old.Len())
	}
	g := b.newGroup(Along(Trajectory{Initial: 2}))
	g.AddBlock(ts.Block(1, 0))
	g.AddBlock(ts.Block(0, 1))

	if old.Len() != 0 {
		t.Fatalf("old group should be empty after merge, has %d", old.Len())
	}
	if g.Len() != 3 {
		t.Fatalf("expected 3 members after merge, got %d", g.Len())
	}
	if old.Tick() {
		t.Fatal("an empty group reports finished")
	}
	checkGroupConsistency(t, b)
}

func TestLaunchGroup_PropagationStopsAtFallingBlock(t *testing.T) {
	ts := NewTestSim(WithGrid(1, 12), WithStack(0, 1, 2))
	falling, err := ts.Board.SpawnBlock(0, 3)
	if err != nil {
		t.Fatal(err)
	}
	g := ts.Board.newGroup(Along(Trajectory{Initial: 1}))
	g.AddBlock(ts.Block(0, 0))
	if g.Has(falling) {
		t.Fatal("propagation must not sweep a falling block")
	}
	if g.Len() != 2 {
		t.Fatalf("expected the 2 resting blocks, got %d", g.Len())
	}
}

func TestLaunchGroup_RemoveBlock(t *testing.T) {
	ts := NewTestSim(WithGrid(1, 12), WithStack(0, 1, 2, 3))
	g := ts.Board.newGroup(Along(Trajectory{Initial: 1}))
	g.AddBlock(ts.Block(0, 0))
	mid := ts.Block(0, 1)
	g.RemoveBlock(mid)
	if g.Len() != 2 || mid.Group() != nil || g.Has(mid) {
		t.Fatalf("RemoveBlock left len=%d group=%v", g.Len(), mid.Group())
	}
	g.RemoveBlock(mid)
	if g.Len() != 2 {
		t.Fatal("removing a non-member must be a no-op")
	}
}

func TestLaunchGroup_TickAgesOnlyWhileResting(t *testing.T) {
	ts := NewTestSim(WithGrid(1, 12), WithStack(0, 4))
	b := ts.Board
	blk := ts.Block(0, 0)
	g := b.newGroup(Along(Trajectory{Initial: 1}))
	g.AddBlock(blk)
	b.changed = false

	for i := 0; i < 5; i++ {
		if !g.Tick() {
			t.Fatal("launching group finished early")
		}
	}
	if g.Time() != 5 || g.TimeToLive() != 0 {
		t.Fatalf("in flight: time=%d ttl=%d, want 5/0", g.Time(), g.TimeToLive())
	}

	blk.state = StateResting
	for i := 0; i < b.launchTTL; i++ {
		if !g.Tick() {
			t.Fatalf("dissolved after %d resting ticks, TTL is %d", i+1, b.launchTTL)
		}
	}
	if g.Time() != 5 {
		t.Fatalf("resting must not advance flight time, got %d", g.Time())
	}
	if g.Tick() {
		t.Fatal("group should dissolve once the TTL is exceeded")
	}
	if blk.Group() != nil || g.Len() != 0 {
		t.Fatal("dissolve must release every member")
	}
	if !b.Dirty() {
		t.Fatal("dissolve should request a rescan")
	}
}

func TestLaunchGroup_DissolveDropsAirborneMembers(t *testing.T) {
	ts := NewTestSim(WithGrid(2, 12), WithStack(0, 1), WithStack(1, 2, 3))
	b := ts.Board
	lo, air := ts.Block(0, 0), ts.Block(1, 1)
	g := b.newGroup(Along(Trajectory{Initial: 1}))
	g.AddBlock(lo)
	g.AddBlock(ts.Block(1, 0))
	lo.state = StateResting
	air.SetType(TypeDead)

	g.timeToLive = b.launchTTL
	if g.Tick() {
		t.Fatal("expected dissolution")
	}
	if air.State() != StateFalling || air.speed != b.fallSpeed {
		t.Fatalf("airborne member should fall freely, got %s at %g", air.State(), air.speed)
	}
	if air.Type() == TypeDead {
		t.Fatal("dead members are revived on dissolve")
	}
	if lo.State() != StateResting || lo.Type() != 1 {
		t.Fatalf("resting coloured member keeps its state and type, got %s/%d", lo.State(), lo.Type())
	}
	if !ts.Events.HasEntry("group", "dissolve", g.label()) {
		t.Fatalf("expected a dissolve event\n%s", ts.Events.Format())
	}
}

func TestLaunchGroup_MembersShareVelocity(t *testing.T) {
	ts := NewTestSim(WithGrid(3, 12), WithStack(0, 2), WithStack(1, 2), WithStack(2, 2, 4))
	ts.RunTicks(10)
	ys := []float64{ts.Block(0, 0).Y(), ts.Block(1, 0).Y(), ts.Block(2, 0).Y()}
	if math.Abs(ys[0]-ys[1]) > 1e-9 || math.Abs(ys[1]-ys[2]) > 1e-9 {
		t.Fatalf("members drifted apart: %v", ys)
	}
	if top := ts.Block(2, 1); math.Abs(top.Y()-(ys[2]-ts.Board.BlockSize())) > 1e-9 {
		t.Fatalf("swept block should ride one block above, got %.3f vs %.3f", top.Y(), ys[2])
	}
}
