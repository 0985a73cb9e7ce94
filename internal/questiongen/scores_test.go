package questiongen

import "testing"

func TestParseScores(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    Scores
		wantErr bool
	}{
		{"json", `{"technical_depth":8,"communication":6,"problem_solving":7,"confidence":5}`, Scores{8, 6, 7, 5}, false},
		{"comma list", "7, 8, 6, 9", Scores{7, 8, 6, 9}, false},
		{"three values", "7,8,6", Scores{}, true},
		{"five values", "7,8,6,9,1", Scores{}, true},
		{"out of range", "0,8,6,9", Scores{}, true},
		{"prose", "The candidate did well overall.", Scores{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseScores([]byte(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}
