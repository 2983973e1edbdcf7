package acexr

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// LeaderboardRecord is the platform's leaderboard object for one stage.
// ScoreIDs is nil when the field is absent and empty when the list is empty.
type LeaderboardRecord struct {
	ID        string   `json:"_id"`
	StageName string   `json:"stagename_text"`
	Threshold *float64 `json:"threshold_number"`
	ScoreIDs  []string `json:"scores_list_custom_score"`
}

// ScoreRecord is the platform's score object. HitFactor is nil when the
// platform omits it.
type ScoreRecord struct {
	ID            string   `json:"_id"`
	DisplayName   string   `json:"displayname_text"`
	HitFactor     *float64 `json:"hitfactor_number"`
	Rank          FlexInt  `json:"acerank_option_rank"`
	TimeInSeconds float64  `json:"timeinseconds_number"`
}

// FlexInt decodes an integer sent as a JSON number or a numeric string.
// Option-set fields arrive as strings on some platform versions. Fractions
// and values outside the int range are rejected.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = 0
		return nil
	}

	s := string(b)
	if b[0] == '"' {
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*f = 0
			return nil
		}
	}

	if !strings.ContainsAny(s, ".eE") {
		n, err := strconv.ParseInt(s, 10, strconv.IntSize)
		if err != nil {
			return fmt.Errorf("acexr: rank %s is not an integer: %w", string(b), err)
		}
		*f = FlexInt(n)
		return nil
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("acexr: rank %s is not a number", string(b))
	}
	if v != math.Trunc(v) {
		return fmt.Errorf("acexr: rank %s is not an integer", string(b))
	}
	// 3.0 and 1e2 are accepted; the decimal form must still fit an int.
	n, err := strconv.ParseInt(strconv.FormatFloat(v, 'f', -1, 64), 10, strconv.IntSize)
	if err != nil {
		return fmt.Errorf("acexr: rank %s is out of range: %w", string(b), err)
	}
	*f = FlexInt(n)
	return nil
}

type leaderboardEnvelope struct {
	Response *LeaderboardRecord `json:"response"`
}

type scoresEnvelope struct {
	Response *scoresPage `json:"response"`
}

// scoresPage is one page of a search. Remaining counts results after this page.
type scoresPage struct {
	Cursor    int            `json:"cursor"`
	Results   *[]ScoreRecord `json:"results"`
	Count     int            `json:"count"`
	Remaining int            `json:"remaining"`
}

type constraint struct {
	Key            string   `json:"key"`
	ConstraintType string   `json:"constraint_type"`
	Value          []string `json:"value"`
}
