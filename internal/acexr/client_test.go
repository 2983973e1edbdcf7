package acexr

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	mu    sync.Mutex
	calls []string
}

func (o *recordingObserver) ObserveUpstream(endpoint string, status int, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.calls = append(o.calls, endpoint+":"+strconv.Itoa(status))
}

func TestFetchLeaderboard(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/1.1/obj/leaderboard/stage%201", r.URL.EscapedPath())
		w.Write([]byte(`{"response":{"_id":"stage 1","scores_list_custom_score":["score1","score2"],"stagename_text":"Test Stage","threshold_number":100}}`))
	}))
	defer srv.Close()

	obs := &recordingObserver{}
	c := New(srv.URL+"/api/1.1/", time.Second, WithObserver(obs))

	rec, err := c.FetchLeaderboard(context.Background(), "stage 1")
	require.NoError(t, err)
	assert.Equal(t, "Test Stage", rec.StageName)
	assert.Equal(t, []string{"score1", "score2"}, rec.ScoreIDs)
	require.NotNil(t, rec.Threshold)
	assert.Equal(t, 100.0, *rec.Threshold)
	assert.Equal(t, []string{"leaderboard:200"}, obs.calls)
}

func TestFetchLeaderboard_AbsentVersusEmptyScoreList(t *testing.T) {
	body := `{"response":{"stagename_text":"S"}}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	defer srv.Close()
	c := New(srv.URL, time.Second)

	rec, err := c.FetchLeaderboard(context.Background(), "s")
	require.NoError(t, err)
	assert.Nil(t, rec.ScoreIDs)
	assert.Nil(t, rec.Threshold)

	body = `{"response":{"stagename_text":"S","scores_list_custom_score":[]}}`
	rec, err = c.FetchLeaderboard(context.Background(), "s")
	require.NoError(t, err)
	assert.NotNil(t, rec.ScoreIDs)
	assert.Empty(t, rec.ScoreIDs)
}

func TestFetchLeaderboard_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		checkFn func(t *testing.T, err error)
	}{
		{
			name:   "not found",
			status: http.StatusNotFound,
			body:   `{"statusCode":404}`,
			checkFn: func(t *testing.T, err error) {
				var se *StatusError
				require.ErrorAs(t, err, &se)
				assert.Equal(t, http.StatusNotFound, se.Status)
			},
		},
		{
			name:   "missing envelope",
			status: http.StatusOK,
			body:   `{}`,
			checkFn: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrMalformedResponse)
			},
		},
		{
			name:   "not json",
			status: http.StatusOK,
			body:   `<html>`,
			checkFn: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrMalformedResponse)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := New(srv.URL, time.Second).FetchLeaderboard(context.Background(), "s")
			require.Error(t, err)
			tt.checkFn(t, err)
		})
	}
}

func TestFetchScores_SendsConstraint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/obj/score", r.URL.Path)
		var cs []constraint
		require.NoError(t, json.Unmarshal([]byte(r.URL.Query().Get("constraints")), &cs))
		require.Len(t, cs, 1)
		assert.Equal(t, "_id", cs[0].Key)
		assert.Equal(t, "in", cs[0].ConstraintType)
		assert.Equal(t, []string{"score1"}, cs[0].Value)
		assert.Empty(t, r.URL.Query().Get("cursor"))

		w.Write([]byte(`{"response":{"cursor":0,"results":[{"_id":"score1","displayname_text":"Player 1","hitfactor_number":5.5,"acerank_option_rank":1,"timeinseconds_number":10}],"count":1,"remaining":0}}`))
	}))
	defer srv.Close()

	scores, err := New(srv.URL, time.Second).FetchScores(context.Background(), []string{"score1"})
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.Equal(t, ScoreRecord{ID: "score1", DisplayName: "Player 1", HitFactor: float(5.5), Rank: 1, TimeInSeconds: 10}, scores[0])
}

func TestFetchScores_FollowsCursor(t *testing.T) {
	var (
		mu      sync.Mutex
		cursors []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cursor := r.URL.Query().Get("cursor")
		mu.Lock()
		cursors = append(cursors, cursor)
		mu.Unlock()
		switch cursor {
		case "":
			w.Write([]byte(`{"response":{"cursor":0,"results":[{"_id":"a"},{"_id":"b"}],"count":2,"remaining":1}}`))
		case "2":
			w.Write([]byte(`{"response":{"cursor":2,"results":[{"_id":"c"}],"count":1,"remaining":0}}`))
		default:
			t.Errorf("unexpected cursor %q", cursor)
		}
	}))
	defer srv.Close()

	scores, err := New(srv.URL, time.Second).FetchScores(context.Background(), []string{"a", "b", "c"})
	require.NoError(t, err)
	assert.Len(t, scores, 3)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"", "2"}, cursors)
}

func TestFetchScores_MissingResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response":{"count":0,"remaining":0}}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL, time.Second).FetchScores(context.Background(), []string{"a"})
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestFetchScores_EmptyPageWithRemainingStops(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response":{"results":[],"count":0,"remaining":5}}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL, time.Second).FetchScores(context.Background(), []string{"a"})
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestFetch_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	obs := &recordingObserver{}
	_, err := New(url, time.Second, WithObserver(obs)).FetchLeaderboard(context.Background(), "s")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrMalformedResponse))
	assert.Equal(t, []string{"leaderboard:0"}, obs.calls)
}

func TestFlexInt(t *testing.T) {
	tests := []struct {
		in      string
		want    FlexInt
		wantErr bool
	}{
		{`1`, 1, false},
		{`3.0`, 3, false},
		{`"7"`, 7, false},
		{`" 12 "`, 12, false},
		{`""`, 0, false},
		{`null`, 0, false},
		{`"first"`, 0, true},
		{`1.5`, 0, true},
		{`"1.5"`, 0, true},
		{`1e2`, 100, false},
		{`9223372036854775808`, 0, true},
		{`"99999999999999999999"`, 0, true},
		{`1e300`, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var f FlexInt
			err := json.Unmarshal([]byte(tt.in), &f)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, f)
		})
	}
}

func float(v float64) *float64 { return &v }

func TestFetchScores_FractionalRankIsMalformed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response":{"results":[{"_id":"a","acerank_option_rank":"1.5"}],"count":1,"remaining":0}}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL, time.Second).FetchScores(context.Background(), []string{"a"})
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestScoreRecord_MissingHitFactor(t *testing.T) {
	var rec ScoreRecord
	require.NoError(t, json.Unmarshal([]byte(`{"_id":"a","hitfactor_number":null}`), &rec))
	assert.Nil(t, rec.HitFactor)
	assert.Equal(t, 0.0, rec.ToScore("s").HitFactor)

	var absent ScoreRecord
	require.NoError(t, json.Unmarshal([]byte(`{"_id":"b"}`), &absent))
	assert.Nil(t, absent.HitFactor)
}

func TestToScore(t *testing.T) {
	rec := ScoreRecord{ID: "score1", DisplayName: "Player 1", HitFactor: float(5.5), Rank: 1, TimeInSeconds: 10}
	sc := rec.ToScore("stage1")

	assert.Equal(t, "score1", sc.ID)
	assert.Equal(t, "stage1", sc.StageID)
	assert.Equal(t, "Player 1", sc.DisplayName)
	assert.Equal(t, 5.5, sc.HitFactor)
	assert.Equal(t, 1, sc.Rank)
	assert.Equal(t, 10.0, sc.TimeInSeconds)
}
