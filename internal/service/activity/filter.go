package activity

import (
	"sort"
	"time"

	"github.com/aquarian247/aquamind-planning/internal/domain/models"
)

// Filter keeps the activities satisfying every populated filter dimension.
// Empty dimensions impose no constraint; date bounds are inclusive.
func Filter(activities []models.PlannedActivity, filters models.ActivityFilters, today time.Time) []models.PlannedActivity {
	result := make([]models.PlannedActivity, 0, len(activities))

	for _, a := range activities {
		if len(filters.ActivityTypes) > 0 && !containsType(filters.ActivityTypes, a.ActivityType) {
			continue
		}
		if len(filters.Statuses) > 0 && !containsStatus(filters.Statuses, a.EffectiveStatus()) {
			continue
		}
		if len(filters.BatchIDs) > 0 && !containsString(filters.BatchIDs, a.BatchID) {
			continue
		}

		due := models.DateOnly(a.DueDate)
		if filters.DateFrom != nil && due.Before(models.DateOnly(*filters.DateFrom)) {
			continue
		}
		if filters.DateTo != nil && due.After(models.DateOnly(*filters.DateTo)) {
			continue
		}

		if filters.OverdueOnly && !a.IsOverdue(today) {
			continue
		}

		result = append(result, a)
	}

	return result
}

// GroupByBatch partitions activities per batch, ordered by the human-readable
// batch number ascending. Activities inside a group keep their input order;
// callers sort with SortByDueDate when they need due-date order.
func GroupByBatch(activities []models.PlannedActivity) []models.BatchActivityGroup {
	index := make(map[string]int)
	var groups []models.BatchActivityGroup

	for _, a := range activities {
		i, ok := index[a.BatchID]
		if !ok {
			i = len(groups)
			index[a.BatchID] = i
			groups = append(groups, models.BatchActivityGroup{
				BatchID:     a.BatchID,
				BatchNumber: a.BatchNumber,
			})
		}
		groups[i].Activities = append(groups[i].Activities, a)
	}

	sort.Slice(groups, func(i, j int) bool {
		return groups[i].BatchNumber < groups[j].BatchNumber
	})

	return groups
}

// SortByDueDate returns a copy ordered by due date ascending. The sort is
// stable so creation order breaks ties deterministically.
func SortByDueDate(activities []models.PlannedActivity) []models.PlannedActivity {
	sorted := make([]models.PlannedActivity, len(activities))
	copy(sorted, activities)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DueDate.Before(sorted[j].DueDate)
	})

	return sorted
}

// KPIs computes the dashboard counters over the full, unfiltered activity set
// relative to the supplied reference day. Pure: same input, same counts.
func KPIs(activities []models.PlannedActivity, today time.Time) models.ActivityKPIs {
	day := models.DateOnly(today)
	horizon := day.AddDate(0, 0, 7)

	var k models.ActivityKPIs
	for _, a := range activities {
		status := a.EffectiveStatus()
		due := models.DateOnly(a.DueDate)

		if status == models.StatusPending && !due.Before(day) && !due.After(horizon) {
			k.Upcoming++
		}
		if a.IsOverdue(today) {
			k.Overdue++
		}
		if (status == models.StatusPending || status == models.StatusInProgress) && models.SameMonth(due, day) {
			k.ThisMonth++
		}
		if status == models.StatusCompleted {
			k.Completed++
		}
	}

	return k
}

func containsType(haystack []models.ActivityType, needle models.ActivityType) bool {
	for _, v := range haystack {
		if v == needle {
			return true
		}
	}
	return false
}

func containsStatus(haystack []models.ActivityStatus, needle models.ActivityStatus) bool {
	for _, v := range haystack {
		if v == needle {
			return true
		}
	}
	return false
}

func containsString(haystack []string, needle string) bool {
	for _, v := range haystack {
		if v == needle {
			return true
		}
	}
	return false
}
