package record

import (
	"math/rand/v2"
)

var studentCategories = map[string][]string{
	ParentalInvolvement:       {"Low", "Medium", "High"},
	AccessToResources:         {"Low", "Medium", "High"},
	ExtracurricularActivities: {"Yes", "No"},
	MotivationLevel:           {"Low", "Medium", "High"},
	InternetAccess:            {"Yes", "No"},
	FamilyIncome:              {"Low", "Medium", "High"},
	TeacherQuality:            {"Low", "Medium", "High"},
	SchoolType:                {"Public", "Private"},
	PeerInfluence:             {"Negative", "Neutral", "Positive"},
	LearningDisabilities:      {"Yes", "No"},
	ParentalEducationLevel:    {"High School", "College", "Postgraduate"},
	DistanceFromHome:          {"Near", "Moderate", "Far"},
	Gender:                    {"Male", "Female"},
}

// studentRanges holds the closed [min, max] range of each integer attribute.
var studentRanges = map[string][2]int64{
	HoursStudied:     {1, 44},
	Attendance:       {60, 100},
	SleepHours:       {4, 10},
	PreviousScores:   {50, 100},
	TutoringSessions: {0, 8},
	PhysicalActivity: {0, 6},
	ExamScore:        {55, 100},
}

// RandomStudents generates n synthetic student records with every attribute
// drawn uniformly from its observed value set. The same rng state yields the
// same population.
func RandomStudents(n int, rng *rand.Rand) []Record {
	out := make([]Record, n)
	for i := range out {
		rec := New(studentSchema)
		for k, f := range studentSchema.fields {
			switch f.Kind {
			case KindCategory:
				choices := studentCategories[f.Name]
				rec.values[k] = CategoryValue(choices[rng.IntN(len(choices))])
			case KindInt:
				r := studentRanges[f.Name]
				rec.values[k] = IntValue(r[0] + rng.Int64N(r[1]-r[0]+1))
			}
		}
		out[i] = rec
	}
	return out
}
