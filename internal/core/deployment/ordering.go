package deployment

import "sort"

// =============================================================================
// App Ordering Functions
// =============================================================================

// TopologicalSort sorts app plans by their dependencies using Kahn's algorithm.
// Apps with no dependencies come first; ties keep their input order.
//
// If a cycle exists, remaining apps are appended in input order.
//
// Example:
//
//	// Apps: tt → db, tt → redis
//	sorted := TopologicalSort([]AppPlan{tt, redis, db})
//	// Result: [redis, db, tt]
func TopologicalSort(apps []AppPlan) []AppPlan {
	if len(apps) == 0 {
		return apps
	}

	index := make(map[string]int, len(apps))
	inDegree := make(map[string]int, len(apps))
	dependents := make(map[string][]string)

	for i, a := range apps {
		index[a.Name] = i
	}
	for _, a := range apps {
		for _, dep := range a.DependsOn {
			if _, ok := index[dep]; !ok {
				continue // external dependency
			}
			inDegree[a.Name]++
			dependents[dep] = append(dependents[dep], a.Name)
		}
	}

	var queue []string
	for _, a := range apps {
		if inDegree[a.Name] == 0 {
			queue = append(queue, a.Name)
		}
	}

	result := make([]AppPlan, 0, len(apps))
	placed := make(map[string]bool, len(apps))
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]

		result = append(result, apps[index[name]])
		placed[name] = true

		next := dependents[name]
		sort.SliceStable(next, func(i, j int) bool { return index[next[i]] < index[next[j]] })
		for _, dep := range next {
			inDegree[dep]--
			if inDegree[dep] == 0 {
				queue = append(queue, dep)
			}
		}
	}

	for _, a := range apps {
		if !placed[a.Name] {
			result = append(result, a)
		}
	}
	return result
}
