package generator

import "github.com/jmehdipour/custgen/internal/model"

// Summary aggregates categorical fields of a batch.
type Summary struct {
	Total       int64
	Status      map[model.Status]int64
	Gender      map[model.Gender]int64
	MiddleNames int64
	FirstID     int64
	LastID      int64
}

func Summarize(records []model.Customer) Summary {
	s := Summary{
		Total:  int64(len(records)),
		Status: make(map[model.Status]int64, len(model.Statuses)),
		Gender: make(map[model.Gender]int64, len(model.Genders)),
	}
	for _, r := range records {
		s.Status[r.Status]++
		s.Gender[r.Gender]++
		if r.MiddleName != "" {
			s.MiddleNames++
		}
	}
	if len(records) > 0 {
		s.FirstID = records[0].CustomerID
		s.LastID = records[len(records)-1].CustomerID
	}
	return s
}
