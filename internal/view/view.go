// Package view holds the client-side presentation rules for a leaderboard:
// free-text search on player name and fixed-size pages.
package view

import (
	"strings"

	"github.com/vytor/stageboard/internal/models"
)

// DefaultPageSize is the number of rows shown per page.
const DefaultPageSize = 20

// Row is one displayed line. Position counts from 1 across the filtered list.
type Row struct {
	Position      int
	DisplayName   string
	HitFactor     float64
	Rank          int
	TimeInSeconds float64
}

// Page is one slice of the filtered list.
type Page struct {
	Rows       []Row
	Number     int
	PageCount  int
	TotalMatch int
}

// Filter keeps scores whose display name contains term, ignoring case.
// An empty term keeps everything.
func Filter(scores []models.Score, term string) []models.Score {
	term = strings.ToLower(term)
	out := make([]models.Score, 0, len(scores))
	for _, s := range scores {
		if term == "" || strings.Contains(strings.ToLower(s.DisplayName), term) {
			out = append(out, s)
		}
	}
	return out
}

// PageCount returns how many pages of size n hold total rows. It is never below 1.
func PageCount(total, size int) int {
	if size <= 0 {
		size = DefaultPageSize
	}
	if total <= 0 {
		return 1
	}
	return (total + size - 1) / size
}

// Paginate returns page number (1-based, clamped into range) of scores.
func Paginate(scores []models.Score, number, size int) Page {
	if size <= 0 {
		size = DefaultPageSize
	}
	pages := PageCount(len(scores), size)
	number = min(max(number, 1), pages)

	start := min((number-1)*size, len(scores))
	end := min(start+size, len(scores))

	rows := make([]Row, 0, end-start)
	for i, s := range scores[start:end] {
		name := s.DisplayName
		if name == "" {
			name = "N/A"
		}
		rows = append(rows, Row{
			Position:      start + i + 1,
			DisplayName:   name,
			HitFactor:     s.HitFactor,
			Rank:          s.Rank,
			TimeInSeconds: s.TimeInSeconds,
		})
	}

	return Page{Rows: rows, Number: number, PageCount: pages, TotalMatch: len(scores)}
}

// State tracks what a reader is looking at. Loading new data or changing
// the search term returns to page 1.
type State struct {
	scores []models.Score
	search string
	page   int
	size   int
}

// NewState returns an empty State with the given page size.
func NewState(size int) *State {
	if size <= 0 {
		size = DefaultPageSize
	}
	return &State{page: 1, size: size}
}

// Load replaces the score list.
func (s *State) Load(scores []models.Score) {
	s.scores = scores
	s.page = 1
}

// Search sets the filter term.
func (s *State) Search(term string) {
	if term == s.search {
		return
	}
	s.search = term
	s.page = 1
}

// GoTo moves to page n, clamped into range.
func (s *State) GoTo(n int) {
	pages := PageCount(len(Filter(s.scores, s.search)), s.size)
	s.page = min(max(n, 1), pages)
}

// Current renders the visible page.
func (s *State) Current() Page {
	return Paginate(Filter(s.scores, s.search), s.page, s.size)
}
