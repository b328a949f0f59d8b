package record

// Attribute names of the student performance population.
const (
	HoursStudied              = "hours_studied"
	Attendance                = "attendance"
	ParentalInvolvement       = "parental_involvement"
	AccessToResources         = "access_to_resources"
	ExtracurricularActivities = "extracurricular_activities"
	SleepHours                = "sleep_hours"
	PreviousScores            = "previous_scores"
	MotivationLevel           = "motivation_level"
	InternetAccess            = "internet_access"
	TutoringSessions          = "tutoring_sessions"
	FamilyIncome              = "family_income"
	TeacherQuality            = "teacher_quality"
	SchoolType                = "school_type"
	PeerInfluence             = "peer_influence"
	PhysicalActivity          = "physical_activity"
	LearningDisabilities      = "learning_disabilities"
	ParentalEducationLevel    = "parental_education_level"
	DistanceFromHome          = "distance_from_home"
	Gender                    = "gender"
	ExamScore                 = "exam_score"
)

var studentSchema = MustSchema(
	Field{HoursStudied, KindInt},
	Field{Attendance, KindInt},
	Field{ParentalInvolvement, KindCategory},
	Field{AccessToResources, KindCategory},
	Field{ExtracurricularActivities, KindCategory},
	Field{SleepHours, KindInt},
	Field{PreviousScores, KindInt},
	Field{MotivationLevel, KindCategory},
	Field{InternetAccess, KindCategory},
	Field{TutoringSessions, KindInt},
	Field{FamilyIncome, KindCategory},
	Field{TeacherQuality, KindCategory},
	Field{SchoolType, KindCategory},
	Field{PeerInfluence, KindCategory},
	Field{PhysicalActivity, KindInt},
	Field{LearningDisabilities, KindCategory},
	Field{ParentalEducationLevel, KindCategory},
	Field{DistanceFromHome, KindCategory},
	Field{Gender, KindCategory},
	Field{ExamScore, KindInt},
)

// StudentSchema returns the shared schema of the student performance dataset.
func StudentSchema() *Schema {
	return studentSchema
}

// StudentNeutrals maps each student attribute (except the exam score) to a
// middle-ground value used when overriding it for sensitivity analysis.
func StudentNeutrals() map[string]Value {
	return map[string]Value{
		SchoolType:                CategoryValue("Unknown"),
		FamilyIncome:              CategoryValue("Medium"),
		PeerInfluence:             CategoryValue("Neutral"),
		MotivationLevel:           CategoryValue("Low"),
		LearningDisabilities:      CategoryValue("No"),
		HoursStudied:              IntValue(0),
		Attendance:                IntValue(50),
		PreviousScores:            IntValue(50),
		TutoringSessions:          IntValue(0),
		SleepHours:                IntValue(8),
		InternetAccess:            CategoryValue("Yes"),
		ExtracurricularActivities: CategoryValue("No"),
		AccessToResources:         CategoryValue("Medium"),
		ParentalInvolvement:       CategoryValue("Medium"),
		TeacherQuality:            CategoryValue("Medium"),
		PhysicalActivity:          IntValue(0),
		ParentalEducationLevel:    CategoryValue("High School"),
		DistanceFromHome:          CategoryValue("Near"),
		Gender:                    CategoryValue("Male"),
	}
}
