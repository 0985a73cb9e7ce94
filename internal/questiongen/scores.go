package questiongen

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
)

// Dimensions are the skill axes rated at the end of a session, in order.
var Dimensions = [4]string{"Technical Depth", "Communication", "Problem Solving", "Confidence"}

// Scores holds one 1-10 rating per entry in Dimensions.
type Scores [4]int

// NeutralScores is used when the model's rating cannot be parsed.
var NeutralScores = Scores{5, 5, 5, 5}

type scoresOutput struct {
	TechnicalDepth int `json:"technical_depth"`
	Communication  int `json:"communication"`
	ProblemSolving int `json:"problem_solving"`
	Confidence     int `json:"confidence"`
}

var intToken = regexp.MustCompile(`-?\d+`)

// ParseScores reads the four ratings from either the structured JSON reply
// or a plain comma-separated list. Anything else, or a value outside 1-10,
// is an error.
func ParseScores(raw []byte) (Scores, error) {
	var out scoresOutput
	if err := json.Unmarshal(raw, &out); err == nil {
		return checkScores(Scores{out.TechnicalDepth, out.Communication, out.ProblemSolving, out.Confidence})
	}

	toks := intToken.FindAllString(string(raw), -1)
	if len(toks) != len(Dimensions) {
		return Scores{}, fmt.Errorf("expected %d scores, found %d in %q", len(Dimensions), len(toks), raw)
	}
	var s Scores
	for i, tok := range toks {
		n, err := strconv.Atoi(tok)
		if err != nil {
			return Scores{}, fmt.Errorf("parse score %q: %w", tok, err)
		}
		s[i] = n
	}
	return checkScores(s)
}

func checkScores(s Scores) (Scores, error) {
	for i, v := range s {
		if v < 1 || v > 10 {
			return Scores{}, fmt.Errorf("%s score %d out of range 1-10", Dimensions[i], v)
		}
	}
	return s, nil
}
