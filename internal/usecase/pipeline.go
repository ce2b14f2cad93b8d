package usecase

import "prospectdash/internal/domain"

// GroupPipeline buckets prospects into the given stages, preserving stage order
// and the input order inside each bucket. Matching is exact and case sensitive;
// prospects whose status is not a listed stage go into no bucket and are only
// counted in Unassigned.
func GroupPipeline(prospects []domain.Prospect, stages []domain.ProspectStatus) domain.Pipeline {
	pipeline := domain.Pipeline{Stages: make([]domain.StageBucket, len(stages))}
	index := make(map[domain.ProspectStatus]int, len(stages))

	for i, stage := range stages {
		pipeline.Stages[i] = domain.StageBucket{
			Stage:     stage,
			Label:     stage.Label(),
			Prospects: []domain.Prospect{},
		}
		if _, dup := index[stage]; !dup {
			index[stage] = i
		}
	}

	for _, p := range prospects {
		i, ok := index[p.Status]
		if !ok {
			pipeline.Unassigned++
			continue
		}
		pipeline.Stages[i].Prospects = append(pipeline.Stages[i].Prospects, p)
	}

	return pipeline
}
