package board

import (
	"strings"
	"testing"
)

func TestEventLog_LimitKeepsNewest(t *testing.T) {
	el := NewEventLog(3)
	for i := 1; i <= 5; i++ {
		el.Add(i, 0, i, "spawn", "queue", "", float64(i))
	}
	if el.Len() != 3 {
		t.Fatalf("expected 3 retained entries, got %d", el.Len())
	}
	if first := el.Entries()[0]; first.Tick != 3 || first.Seq != 3 {
		t.Fatalf("oldest retained should be T=3 seq=3, got %+v", first)
	}
	if el.LastSeq() != 5 {
		t.Fatalf("LastSeq = %d, want 5", el.LastSeq())
	}
}

func TestEventLog_After(t *testing.T) {
	el := NewEventLog(0)
	el.Add(1, -1, -1, "group", "merge", "G1 → G2", 3)
	el.Add(2, 0, 0, "match", "along", "red ×3", 3)
	el.Add(2, 1, 0, "match", "across", "blue ×4", 4)
	got := el.After(1)
	if len(got) != 2 || got[0].Key != "along" {
		t.Fatalf("After(1) = %+v", got)
	}
	if el.After(3) != nil {
		t.Fatal("nothing should follow the newest entry")
	}
}

func TestEventLog_AfterSurvivesTrimming(t *testing.T) {
	el := NewEventLog(4)
	for i := 1; i <= 4; i++ {
		el.Add(i, 0, 0, "spawn", "queue", "", 0)
	}
	got := el.After(1)
	if len(got) != 3 || got[0].Seq != 2 {
		t.Fatalf("After(1) = %+v", got)
	}
	for i := 5; i <= 20; i++ {
		el.Add(i, 0, 0, "land", "floor", "", 0)
	}
	for i, e := range got {
		if e.Seq != i+2 || e.Category != "spawn" {
			t.Fatalf("earlier result changed under later adds: %+v", got)
		}
	}
	if el.Len() != 4 || el.Entries()[0].Seq != 17 {
		t.Fatalf("expected seq 17..20 retained, got %+v", el.Entries())
	}
	if _, ok := el.LastOf("spawn", ""); ok {
		t.Fatal("trimmed entries should not be queryable")
	}
}

func TestEventLog_Queries(t *testing.T) {
	el := NewEventLog(0)
	el.Add(4, 2, 1, "match", "across", "green ×3 → G1 (3 blocks)", 3)
	el.Add(9, -1, -1, "group", "dissolve", "G1", 3)
	el.Add(12, 2, 1, "revive", "type", "red #4", 4)

	if n := el.CountCategory("match", ""); n != 1 {
		t.Fatalf("CountCategory(match) = %d", n)
	}
	if !el.HasEntry("match", "", "green") || el.HasEntry("match", "", "purple") {
		t.Fatal("HasEntry substring matching is wrong")
	}
	if e, ok := el.LastOf("", ""); !ok || e.Category != "revive" {
		t.Fatalf("LastOf(any) = %+v", e)
	}
	if _, ok := el.LastOf("swap", ""); ok {
		t.Fatal("LastOf(swap) should be empty")
	}
	out := el.FormatRange(5, 10)
	if !strings.Contains(out, "dissolve") || strings.Contains(out, "across") {
		t.Fatalf("FormatRange(5,10):\n%s", out)
	}
	if line := el.Entries()[0].String(); !strings.HasPrefix(line, "[T=004] c2:01 match") {
		t.Fatalf("unexpected line format %q", line)
	}
	if line := el.Entries()[1].String(); !strings.HasPrefix(line, "[T=009] --    group") {
		t.Fatalf("unexpected board-wide line format %q", line)
	}
}
