package main

import (
	"sort"

	"github.com/maruel/natural"
)

// SortStrategy defines the interface for browser project ordering.
type SortStrategy interface {
	// Sort returns a new sorted slice without modifying the original
	Sort(projects []Project) []Project
	// Name returns the human-readable name of the strategy
	Name() string
	// ID returns the numeric identifier for config storage
	ID() int
}

// NaturalSortStrategy orders by title using natural sort, so "Unit 2" comes
// before "Unit 10". Featured projects sort first.
type NaturalSortStrategy struct{}

func (s *NaturalSortStrategy) Sort(projects []Project) []Project {
	result := make([]Project, len(projects))
	copy(result, projects)

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Featured != result[j].Featured {
			return result[i].Featured
		}
		return natural.Less(result[i].Title, result[j].Title)
	})
	return result
}

func (s *NaturalSortStrategy) Name() string { return "Natural" }

func (s *NaturalSortStrategy) ID() int { return SortNatural }

// YearSortStrategy orders newest first, ties broken by title. Featured
// projects sort first.
type YearSortStrategy struct{}

func (s *YearSortStrategy) Sort(projects []Project) []Project {
	result := make([]Project, len(projects))
	copy(result, projects)

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Featured != result[j].Featured {
			return result[i].Featured
		}
		if result[i].Year != result[j].Year {
			return result[i].Year > result[j].Year
		}
		return natural.Less(result[i].Title, result[j].Title)
	})
	return result
}

func (s *YearSortStrategy) Name() string { return "Year" }

func (s *YearSortStrategy) ID() int { return SortYear }

// EntryOrderSortStrategy preserves manifest order.
type EntryOrderSortStrategy struct{}

func (s *EntryOrderSortStrategy) Sort(projects []Project) []Project {
	result := make([]Project, len(projects))
	copy(result, projects)
	return result
}

func (s *EntryOrderSortStrategy) Name() string { return "Entry Order" }

func (s *EntryOrderSortStrategy) ID() int { return SortEntryOrder }

// GetSortStrategy returns the strategy for the given sort method ID.
func GetSortStrategy(sortMethod int) SortStrategy {
	switch sortMethod {
	case SortNatural:
		return &NaturalSortStrategy{}
	case SortYear:
		return &YearSortStrategy{}
	case SortEntryOrder:
		return &EntryOrderSortStrategy{}
	default:
		return &NaturalSortStrategy{} // Default fallback
	}
}

// GetAllSortStrategies returns all available sort strategies.
func GetAllSortStrategies() []SortStrategy {
	return []SortStrategy{
		&NaturalSortStrategy{},
		&YearSortStrategy{},
		&EntryOrderSortStrategy{},
	}
}
