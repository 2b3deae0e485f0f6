package utils

import "time"

// Stats for performance monitoring
type Stats struct {
	GenerationsPerSecond float64
	AveragePopulation    float64
	TotalGenerations     int
	StartTime            time.Time
	PopulationA          int
	PopulationB          int
}

func NewStats() *Stats {
	return &Stats{StartTime: time.Now()}
}

// Update records the populations of a generation
func (s *Stats) Update(generation int, populationA, populationB int) {
	s.TotalGenerations = generation
	s.PopulationA = populationA
	s.PopulationB = populationB

	// Simple moving average for population
	population := float64(populationA + populationB)
	if generation == 0 {
		s.AveragePopulation = population
	} else {
		s.AveragePopulation = (s.AveragePopulation * 0.9) + (population * 0.1)
	}
}

// Observe records how long the last generation took to compute
func (s *Stats) Observe(duration time.Duration) {
	if duration > 0 {
		s.GenerationsPerSecond = 1.0 / duration.Seconds()
	}
}
