package career

// Comparison winners.
const (
	WinnerA   = "A"
	WinnerB   = "B"
	WinnerTie = "Tie"
)

// Risk levels.
const (
	RiskLow    = "Low"
	RiskMedium = "Medium"
	RiskHigh   = "High"
)

// Recruiter verdicts.
const (
	VerdictShortlisted = "Shortlisted"
	VerdictBorderline  = "Borderline"
	VerdictRejected    = "Rejected"
)

// RoleComparison is a trade-off analysis between two target roles.
type RoleComparison struct {
	RoleA    string      `json:"roleA"`
	RoleB    string      `json:"roleB"`
	Criteria []Criterion `json:"criteria"`
	Verdict  Verdict     `json:"verdict"`
	Fallback bool        `json:"fallback"`
}

// Criterion compares both roles on one axis such as salary growth.
type Criterion struct {
	Name    string `json:"name"`
	RoleA   string `json:"roleA"`
	RoleB   string `json:"roleB"`
	Winner  string `json:"winner"`
	Insight string `json:"insight"`
}

// Verdict names the recommended role.
type Verdict struct {
	Role     string `json:"role"`
	Reason   string `json:"reason"`
	TradeOff string `json:"tradeOff,omitempty"`
}

// RoleMatch scores how well the candidate fits one role.
type RoleMatch struct {
	TargetRole           string     `json:"targetRole"`
	Confidence           int        `json:"confidence"`
	Reason               string     `json:"reason"`
	SkillGaps            []SkillGap `json:"skillGaps"`
	PrioritySkills       []string   `json:"prioritySkills"`
	ReadinessScore       int        `json:"readinessScore"`
	ReadinessExplanation string     `json:"readinessExplanation"`
	Fallback             bool       `json:"fallback"`
}

// SkillGap is one skill the candidate lacks for a role.
type SkillGap struct {
	Skill      string `json:"skill"`
	Importance string `json:"importance"`
}

// RiskReport rates the long-term stability of a role.
type RiskReport struct {
	TargetRole        string   `json:"targetRole"`
	StabilityScore    int      `json:"stabilityScore"`
	RiskLevel         string   `json:"riskLevel"`
	LayoffRisk        string   `json:"layoffRisk"`
	AutomationRisk    string   `json:"automationRisk"`
	CompetitionLevel  string   `json:"competitionLevel"`
	Insight           string   `json:"insight"`
	Mitigation        []string `json:"mitigation"`
	FutureProofingTip string   `json:"futureProofingTip"`
	Fallback          bool     `json:"fallback"`
}

// HiringSignal simulates a recruiter's read of the candidate for a role.
type HiringSignal struct {
	TargetRole            string   `json:"targetRole"`
	ResumeSignalStrength  int      `json:"resumeSignalStrength"`
	SkillMatchScore       int      `json:"skillMatchScore"`
	ProjectRelevanceScore int      `json:"projectRelevanceScore"`
	InterviewProbability  int      `json:"interviewProbability"`
	Summary               string   `json:"summary"`
	RecruiterInsight      string   `json:"recruiterInsight"`
	Strengths             []string `json:"strengths"`
	Weaknesses            []string `json:"weaknesses"`
	ImprovementActions    []string `json:"improvementActions"`
	Verdict               string   `json:"verdict"`
	Fallback              bool     `json:"fallback"`
}
