package hybrid

import "testing"

func TestPieceIDLetters(t *testing.T) {
	tests := []struct {
		id   PieceID
		want string
	}{
		{0, "a"},
		{25, "z"},
		{26, "aa"},
		{27, "ab"},
		{701, "zz"},
		{702, "aaa"},
	}
	for _, tc := range tests {
		if got := tc.id.String(); got != tc.want {
			t.Fatalf("PieceID(%d).String(): got=%q want=%q", tc.id, got, tc.want)
		}
		back, err := ParsePieceID(tc.want)
		if err != nil {
			t.Fatalf("parse %q: %v", tc.want, err)
		}
		if back != tc.id {
			t.Fatalf("parse %q: got=%d want=%d", tc.want, back, tc.id)
		}
	}
	if _, err := ParsePieceID("A1"); err == nil {
		t.Fatalf("expected error for malformed id")
	}
}

func TestKindNamesRoundTrip(t *testing.T) {
	for k := ShogiKing; int(k) < NumKinds; k++ {
		got, err := ParseKind(k.String())
		if err != nil || got != k {
			t.Fatalf("ParseKind(%q): got=%v err=%v", k.String(), got, err)
		}
	}
}

func TestCanPromoteStatic(t *testing.T) {
	tests := []struct {
		team       Team
		fromY, toY int
		want       bool
	}{
		{Black, 5, 6, true},  // entering the zone
		{Black, 6, 5, true},  // leaving the zone
		{Black, 4, 5, false}, // outside
		{White, 3, 2, true},
		{White, 4, 3, false},
	}
	for _, tc := range tests {
		if got := CanPromote(tc.team, tc.fromY, tc.toY, 9, 3); got != tc.want {
			t.Fatalf("CanPromote(%v,%d,%d): got=%v want=%v", tc.team, tc.fromY, tc.toY, got, tc.want)
		}
	}
}
