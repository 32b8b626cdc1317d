package repositories

import (
	"gorm.io/gorm"
)

// TagStat counts, for one (assignee, tag) pair, how many linked issues were
// resolved (status closed) out of how many total.
type TagStat struct {
	Resolved int64
	Total    int64
}

// StatsRepository aggregates historical assignee performance for the
// suggestion engine. Both queries read the current committed state; nothing
// is cached.
type StatsRepository struct {
	db *gorm.DB
}

// NewStatsRepository creates a new stats repository instance
func NewStatsRepository(db *gorm.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// TagStats returns per-assignee, per-tag resolved/total issue counts,
// restricted to the candidate tag names. Unassigned issues are excluded.
func (r *StatsRepository) TagStats(tagNames []string) (map[string]map[string]TagStat, error) {
	stats := make(map[string]map[string]TagStat)
	if len(tagNames) == 0 {
		return stats, nil
	}

	var rows []struct {
		Assignee string
		TagName  string
		Resolved int64
		Total    int64
	}
	err := r.db.Raw(`
		SELECT i.assignee AS assignee, t.name AS tag_name,
		       SUM(CASE WHEN i.status = 'closed' THEN 1 ELSE 0 END) AS resolved,
		       COUNT(*) AS total
		FROM issues i
		JOIN issue_tags it ON it.issue_id = i.id
		JOIN tags t ON t.id = it.tag_id
		WHERE t.name IN ? AND i.assignee <> ''
		GROUP BY i.assignee, t.name`, tagNames).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		if stats[row.Assignee] == nil {
			stats[row.Assignee] = make(map[string]TagStat)
		}
		stats[row.Assignee][row.TagName] = TagStat{Resolved: row.Resolved, Total: row.Total}
	}
	return stats, nil
}

// Workloads returns, per assignee, the count of currently non-closed issues.
func (r *StatsRepository) Workloads() (map[string]int64, error) {
	var rows []struct {
		Assignee  string
		OpenCount int64
	}
	err := r.db.Raw(`
		SELECT assignee, COUNT(*) AS open_count
		FROM issues
		WHERE assignee <> '' AND status <> 'closed'
		GROUP BY assignee`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	workloads := make(map[string]int64, len(rows))
	for _, row := range rows {
		workloads[row.Assignee] = row.OpenCount
	}
	return workloads, nil
}
