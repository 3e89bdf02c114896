package report

import (
	"sort"
	"strings"

	"github.com/token-topup/topup-server/internal/models"
)

// Group partitions enriched users by company and imposes the report
// order: groups ascend by company id; within a group, users sort by
// lowercased last name, ties keeping their input order. Companies with
// no eligible users produce no group.
//
// Duplicate user records are not deduplicated: each appears in its
// group and counts toward the company total.
func Group(users []models.EnrichedUser) []models.CompanyGroup {
	byCompany := make(map[int64]*models.CompanyGroup)

	for _, u := range users {
		g, ok := byCompany[u.CompanyID]
		if !ok {
			g = &models.CompanyGroup{
				CompanyID:   u.CompanyID,
				CompanyName: u.CompanyName,
			}
			byCompany[u.CompanyID] = g
		}
		g.Users = append(g.Users, u)
		// Totals accumulate per member, not count*top_up.
		g.TotalTopUps += u.TopUpAmount
	}

	ids := make([]int64, 0, len(byCompany))
	for id := range byCompany {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	groups := make([]models.CompanyGroup, 0, len(ids))
	for _, id := range ids {
		g := byCompany[id]
		sort.SliceStable(g.Users, func(i, j int) bool {
			return strings.ToLower(g.Users[i].LastName) < strings.ToLower(g.Users[j].LastName)
		})
		groups = append(groups, *g)
	}

	return groups
}
