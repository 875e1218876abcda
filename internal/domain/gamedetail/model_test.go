package gamedetail

import "testing"

func TestRecentPlays_NewestFirstAndBounded(t *testing.T) {
	t.Parallel()

	plays := []Play{{ID: "1"}, {ID: "2"}, {ID: "3"}}

	got := RecentPlays(plays, 2)
	if len(got) != 2 {
		t.Fatalf("unexpected play count: got=%d want=2", len(got))
	}
	if got[0].ID != "3" || got[1].ID != "2" {
		t.Fatalf("unexpected order: got=%s,%s want=3,2", got[0].ID, got[1].ID)
	}

	if all := RecentPlays(plays, 0); len(all) != 3 {
		t.Fatalf("unexpected default bound: got=%d want=3", len(all))
	}
}
