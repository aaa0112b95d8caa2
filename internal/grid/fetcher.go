package grid

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bits-and-blooms/bloom/v3"
)

// ErrNotFound reports that GRID had no team or series for the requested name.
// Callers treat it as an empty result rather than an upstream failure.
var ErrNotFound = errors.New("not found")

const (
	teamLookupLimit = 5
	seriesPageSize  = 50
	maxSeriesPages  = 10

	// Sized for a scouting window; far beyond what one report ever pulls.
	dedupeCapacity = 10_000
	dedupeFPRate   = 0.01
)

const teamQuery = `
query Teams($name: String!) {
  teams(filter: { name: { contains: $name } }, first: 5) {
    edges {
      node {
        id
        name
      }
    }
  }
}`

const seriesQuery = `
query SeriesByTeam($teamId: ID!, $first: Int!, $after: Cursor) {
  allSeries(
    filter: { teamIds: { in: [$teamId] } }
    first: $first
    after: $after
    orderBy: StartTimeScheduled
    orderDirection: DESC
  ) {
    pageInfo {
      hasNextPage
      endCursor
    }
    edges {
      node {
        id
        startTimeScheduled
        teams {
          baseInfo {
            id
            name
          }
        }
      }
    }
  }
}`

// Team identifies a GRID team.
type Team struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// LookupTeam resolves a team name to a GRID team id. Among the first matches
// it prefers an exact or containing name over whatever GRID ranked first.
func (c *Client) LookupTeam(ctx context.Context, name string) (Team, error) {
	resp, err := c.graphql(ctx, teamQuery, map[string]any{"name": name})
	if err != nil {
		return Team{}, err
	}
	candidates := teamEdges(resp)
	if len(candidates) == 0 {
		return Team{}, fmt.Errorf("no GRID team matches %q: %w", name, ErrNotFound)
	}

	want := strings.ToLower(name)
	for _, t := range candidates {
		got := strings.ToLower(t.Name)
		if got == "" {
			continue
		}
		if strings.Contains(got, want) || strings.Contains(want, got) {
			return t, nil
		}
	}
	return candidates[0], nil
}

// FetchTeamSeries pulls up to limit recent series nodes for a team name,
// paginating by cursor. When the full name matches no team, or the resolved
// team has zero series, it retries with the last word of the name (org tags
// like "T1 Academy" vs "T1").
//
// A bloom filter drops duplicate series ids across pages and the retry path.
func (c *Client) FetchTeamSeries(ctx context.Context, teamName string, limit int) (Team, []map[string]any, error) {
	alt, hasAlt := altName(teamName)

	team, err := c.LookupTeam(ctx, teamName)
	if err != nil {
		if !hasAlt {
			return Team{}, nil, err
		}
		team, err = c.LookupTeam(ctx, alt)
		if err != nil {
			return Team{}, nil, err
		}
		hasAlt = false
	}

	seen := bloom.NewWithEstimates(dedupeCapacity, dedupeFPRate)
	series, err := c.teamSeriesPages(ctx, team.ID, limit, seen)
	if err != nil {
		return team, nil, err
	}

	if len(series) == 0 && hasAlt {
		if altTeam, altErr := c.LookupTeam(ctx, alt); altErr == nil && altTeam.ID != team.ID {
			if altSeries, altErr := c.teamSeriesPages(ctx, altTeam.ID, limit, seen); altErr == nil && len(altSeries) > 0 {
				return altTeam, altSeries, nil
			}
		}
	}

	if len(series) == 0 {
		return team, nil, fmt.Errorf("no series found for team %q: %w", team.Name, ErrNotFound)
	}
	return team, series, nil
}

// teamSeriesPages walks the allSeries cursor for one team id, deduplicating
// series ids through seen. A page error after some series were collected
// yields the partial result.
func (c *Client) teamSeriesPages(ctx context.Context, teamID string, limit int, seen *bloom.BloomFilter) ([]map[string]any, error) {
	var series []map[string]any
	var cursor string

	for page := 0; page < maxSeriesPages && len(series) < limit; page++ {
		vars := map[string]any{
			"teamId": teamID,
			"first":  seriesPageSize,
		}
		if cursor != "" {
			vars["after"] = cursor
		}
		resp, err := c.graphql(ctx, seriesQuery, vars)
		if err != nil {
			if len(series) > 0 {
				break
			}
			return nil, err
		}

		conn, _ := dig(resp, "data", "allSeries").(map[string]any)
		if conn == nil {
			break
		}
		edges, _ := conn["edges"].([]any)
		for _, e := range edges {
			edge, _ := e.(map[string]any)
			node, _ := edge["node"].(map[string]any)
			if node == nil {
				continue
			}
			id, _ := node["id"].(string)
			if id != "" && !seen.TestAndAddString(id) {
				series = append(series, node)
				if len(series) >= limit {
					break
				}
			}
		}

		pageInfo, _ := conn["pageInfo"].(map[string]any)
		hasNext, _ := pageInfo["hasNextPage"].(bool)
		next, _ := pageInfo["endCursor"].(string)
		if !hasNext || next == "" {
			break
		}
		cursor = next
	}
	return series, nil
}

// altName returns the last word of a multi-word team name, the fallback query
// used when the full name resolves nothing usable.
func altName(teamName string) (string, bool) {
	words := strings.Fields(teamName)
	if len(words) < 2 {
		return "", false
	}
	return words[len(words)-1], true
}

func teamEdges(resp map[string]any) []Team {
	edges, _ := dig(resp, "data", "teams", "edges").([]any)
	var out []Team
	for _, e := range edges {
		edge, _ := e.(map[string]any)
		node, _ := edge["node"].(map[string]any)
		if node == nil {
			continue
		}
		id, _ := node["id"].(string)
		name, _ := node["name"].(string)
		if id != "" {
			out = append(out, Team{ID: id, Name: name})
		}
	}
	return out
}

func dig(m map[string]any, keys ...string) any {
	var cur any = m
	for _, k := range keys {
		mm, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur = mm[k]
	}
	return cur
}
