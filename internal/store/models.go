package store

import "time"

// Resume is the parsed resume document for a user. Ingestion supplies the
// facets; this module never extracts text itself.
type Resume struct {
	UserID    string        `json:"userId"`
	RawText   string        `json:"rawText,omitempty"`
	Parsed    ResumeFacets  `json:"parsed"`
	ATS       ATSAssessment `json:"atsAnalysis"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// ResumeFacets are the structured fields extracted from a resume.
type ResumeFacets struct {
	TechnicalSkills []string     `json:"technicalSkills"`
	SoftSkills      []string     `json:"softSkills"`
	Tools           []string     `json:"tools"`
	Experience      []Experience `json:"experience"`
	Projects        []Project    `json:"projects"`
	Education       []Education  `json:"education"`
	Certifications  []string     `json:"certifications"`
}

type Experience struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

type Project struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
}

type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        string `json:"year"`
}

// ATSAssessment is the heuristic applicant-tracking score of a resume.
type ATSAssessment struct {
	Score           int      `json:"score"`
	Strengths       []string `json:"strengths"`
	Weaknesses      []string `json:"weaknesses"`
	MissingKeywords []string `json:"missingKeywords"`
	Suggestions     []string `json:"suggestions"`
}

// Importance tiers for a missing skill.
const (
	ImportanceHigh   = "High"
	ImportanceMedium = "Medium"
)

// SkillProfile is a user's gap analysis against a target role.
type SkillProfile struct {
	UserID          string            `json:"userId"`
	TargetRole      string            `json:"targetRole"`
	ReadinessScore  int               `json:"readinessScore"`
	StrongSkills    []string          `json:"strongSkills"`
	WeakSkills      []string          `json:"weakSkills"`
	MissingSkills   []MissingSkill    `json:"missingSkills"`
	CurrentSkills   []SkillLevel      `json:"currentSkills"`
	DependencyGraph []SkillDependency `json:"dependencyGraph"`
	AIInsight       string            `json:"aiInsight"`
	Fallback        bool              `json:"fallback"`
	UpdatedAt       time.Time         `json:"updatedAt"`
}

// Clone returns a deep copy of the profile's mutable skill levels.
// Structural fields are shared.
func (p *SkillProfile) Clone() *SkillProfile {
	cp := *p
	cp.CurrentSkills = append([]SkillLevel(nil), p.CurrentSkills...)
	return &cp
}

type MissingSkill struct {
	Name         string       `json:"name"`
	Importance   string       `json:"importance"`
	TimeToLearn  string       `json:"timeToLearn"`
	Reason       string       `json:"reason"`
	Category     string       `json:"category"`
	LearningPlan LearningStub `json:"learningPlan"`
}

// LearningStub is the short plan attached to a missing skill.
type LearningStub struct {
	Description string   `json:"description"`
	Steps       []string `json:"steps"`
}

// SkillLevel is a 0-100 proficiency estimate for one skill.
type SkillLevel struct {
	Name  string `json:"name"`
	Level int    `json:"level"`
}

type SkillDependency struct {
	Skill         string     `json:"skill"`
	Prerequisites []string   `json:"prerequisites"`
	Unlocks       []string   `json:"unlocks"`
	Reason        string     `json:"reason"`
	Topics        []string   `json:"topics"`
	Resources     []Resource `json:"resources"`
}

type Resource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// LearningPath is a user's weekly curriculum. It is replaced wholesale on
// every generation.
type LearningPath struct {
	UserID              string         `json:"userId"`
	Weeks               []WeeklyUnit   `json:"weeks"`
	SkillLevels         map[string]int `json:"skillLevels"`
	EstimatedCompletion string         `json:"estimatedCompletion"`
	Confidence          string         `json:"confidence"`
	Fallback            bool           `json:"fallback"`
	LastRecalculatedAt  time.Time      `json:"lastRecalculatedAt"`
}

type WeeklyUnit struct {
	Week     string   `json:"week"`
	Theme    string   `json:"theme"`
	Topics   []string `json:"topics"`
	Reason   string   `json:"reason"`
	Projects []string `json:"projects"`
	Practice []string `json:"practice"`
	Quizzes  []string `json:"quizzes"`
	Outcome  string   `json:"outcome"`
}

// CareerRoadmap is a month-by-month plan toward one target role.
type CareerRoadmap struct {
	UserID                    string      `json:"userId"`
	TargetRole                string      `json:"targetRole"`
	CurrentLevel              string      `json:"currentLevel"`
	Timeline                  string      `json:"timeline"`
	Milestones                []Milestone `json:"milestones"`
	SkillGaps                 []string    `json:"skillGaps"`
	RecommendedCourses        []string    `json:"recommendedCourses"`
	InternshipRecommendations []string    `json:"internshipRecommendations"`
	ReadinessScore            int         `json:"readinessScore"`
	NextSteps                 []string    `json:"nextSteps"`
	Fallback                  bool        `json:"fallback"`
	UpdatedAt                 time.Time   `json:"updatedAt"`
}

type Milestone struct {
	Month       int      `json:"month"`
	Title       string   `json:"title"`
	Skills      []string `json:"skills"`
	Projects    []string `json:"projects"`
	Resources   []string `json:"resources"`
	Checkpoints []string `json:"checkpoints"`
}

// QuizResult is an immutable quiz outcome.
type QuizResult struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	Course     string    `json:"course"`
	Score      int       `json:"score"`
	Difficulty string    `json:"difficulty"`
	TakenAt    time.Time `json:"takenAt"`
}

// Learning speed labels.
const (
	SpeedSlow    = "slow"
	SpeedAverage = "average"
	SpeedFast    = "fast"
)

// ProgressSignal tracks recent study activity for a user.
type ProgressSignal struct {
	UserID               string    `json:"userId"`
	StudyMinutesLastWeek int       `json:"studyMinutesLastWeek"`
	LastActiveAt         time.Time `json:"lastActiveAt"`
	SpeedLabel           string    `json:"speedLabel"`
}

// Conversation roles.
const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

type ConversationEntry struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// ConversationLog is a user's chat history, oldest first.
type ConversationLog struct {
	UserID  string              `json:"userId"`
	Entries []ConversationEntry `json:"entries"`
}

// ClampScore bounds v to [0, 100].
func ClampScore(v int) int {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}
