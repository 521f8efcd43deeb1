package store

import (
	"encoding/json"
	"fmt"
	"strings"
)

// goalRecord is the wire form of a Goal in the goals document. Description
// and StartDate are pointers so records written by older versions, which
// lacked those fields, still decode.
type goalRecord struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	StartDate   *string `json:"startDate,omitempty"`
	EndDate     string  `json:"endDate"`
}

// EncodeGoals renders the goal list as a JSON array document.
func EncodeGoals(goals []Goal) (string, error) {
	records := make([]goalRecord, len(goals))
	for i, g := range goals {
		g := g
		records[i] = goalRecord{
			ID:          g.ID,
			Title:       g.Title,
			Description: &g.Description,
			StartDate:   &g.StartDate,
			EndDate:     g.EndDate,
		}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("encoding goals: %w", err)
	}
	return string(data), nil
}

// DecodeGoals parses a goals document. An empty or absent document yields an
// empty list. Legacy records missing a description decode to the empty
// string; records missing a start date reuse the end date so the value stays
// comparable.
func DecodeGoals(doc string) ([]Goal, error) {
	if strings.TrimSpace(doc) == "" {
		return nil, nil
	}
	var records []goalRecord
	if err := json.Unmarshal([]byte(doc), &records); err != nil {
		return nil, fmt.Errorf("decoding goals: %w", err)
	}
	goals := make([]Goal, len(records))
	for i, r := range records {
		g := Goal{
			ID:      r.ID,
			Title:   r.Title,
			EndDate: r.EndDate,
		}
		if r.Description != nil {
			g.Description = *r.Description
		}
		if r.StartDate != nil {
			g.StartDate = *r.StartDate
		} else {
			g.StartDate = r.EndDate
		}
		goals[i] = g
	}
	return goals, nil
}
