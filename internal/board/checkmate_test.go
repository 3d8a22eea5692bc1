package board

import "testing"

func TestCheckmateDetection(t *testing.T) {
	cases := []struct {
		name string
		fen  string
		mate bool
	}{
		{
			name: "back rank mate, black to move",
			fen:  "R6k/6pp/8/8/8/8/8/K7 b - - 0 1",
			mate: true,
		},
		{
			name: "king can capture the checking rook",
			fen:  "6Rk/8/8/8/8/8/8/K7 b - - 0 1",
			mate: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pos, err := ParseFEN(tc.fen)
			if err != nil {
				t.Fatalf("ParseFEN(%q): %v", tc.fen, err)
			}
			pos.UpdateCheckers()

			if got := pos.IsCheckmate(); got != tc.mate {
				t.Errorf("IsCheckmate() = %v, want %v (checkers=%v, legal moves=%d)",
					got, tc.mate, pos.Checkers, pos.GenerateLegalMoves().Len())
			}
		})
	}
}
