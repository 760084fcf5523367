package risk

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Querier is satisfied by *pgxpool.Pool and *pgx.Conn.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

const catalogQuery = `
SELECT condition, tier, cue
FROM risk_cues
ORDER BY condition_rank, condition, tier, cue`

// LoadCatalogDB builds a catalog from the risk_cues table. Conditions keep the
// order in which they first appear in the result set.
func LoadCatalogDB(ctx context.Context, q Querier) (*Catalog, error) {
	rows, err := q.Query(ctx, catalogQuery)
	if err != nil {
		return nil, fmt.Errorf("query risk cues: %w", err)
	}
	defer rows.Close()

	cat := &Catalog{}
	index := map[string]int{}
	for rows.Next() {
		var condition, tier, cue string
		if err := rows.Scan(&condition, &tier, &cue); err != nil {
			return nil, fmt.Errorf("scan risk cue: %w", err)
		}

		i, ok := index[condition]
		if !ok {
			i = len(cat.Conditions)
			index[condition] = i
			cat.Conditions = append(cat.Conditions, Condition{Name: condition, Cues: map[Tier][]string{}})
		}
		t := Tier(tier)
		cat.Conditions[i].Cues[t] = append(cat.Conditions[i].Cues[t], cue)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read risk cues: %w", err)
	}

	if err := cat.Validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	return cat, nil
}
