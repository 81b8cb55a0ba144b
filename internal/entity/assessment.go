package entity

type Pillar string

const (
	PillarProtection Pillar = "protection"
	PillarAlignment  Pillar = "alignment"
	PillarOversight  Pillar = "oversight"
)

var Pillars = []Pillar{PillarProtection, PillarAlignment, PillarOversight}

type Strength string

const (
	StrengthStrong   Strength = "strong"
	StrengthModerate Strength = "moderate"
	StrengthWeak     Strength = "weak"
)

type ProtectionState string

const (
	StateWellAligned    ProtectionState = "Well Aligned"
	StateNeedsReview    ProtectionState = "In Place, Needs Review"
	StatePartiallyBuilt ProtectionState = "Partially Built"
	StateNotProtected   ProtectionState = "Not Yet Protected"
)

var ProtectionStates = []ProtectionState{StateWellAligned, StateNeedsReview, StatePartiallyBuilt, StateNotProtected}

var stateDescriptions = map[ProtectionState]string{
	StateWellAligned:    "Your protection system is mostly coordinated. Continue with regular oversight to maintain alignment as life changes.",
	StateNeedsReview:    "Some protection exists, but alignment and responsibility gaps are present. A comprehensive review would help identify what needs attention.",
	StatePartiallyBuilt: "Core pieces exist, but the system is fragmented or outdated. Coordination between your protection elements would strengthen your overall plan.",
	StateNotProtected:   "There are significant gaps in your protection structure. Building a coordinated system should be a priority.",
}

type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Score int    `json:"score"`
}

type Question struct {
	ID      string   `json:"id"`
	Pillar  Pillar   `json:"pillar"`
	Prompt  string   `json:"question"`
	Options []Option `json:"options"`
}

type AssessmentResult struct {
	State       ProtectionState     `json:"state"`
	Description string              `json:"description"`
	Scores      map[Pillar]int      `json:"scores"`
	Strengths   map[Pillar]Strength `json:"strengths"`
}

// PillarScores returns the scores keyed the way leads store them.
func (r AssessmentResult) PillarScores() map[string]int {
	out := make(map[string]int, len(r.Scores))
	for p, s := range r.Scores {
		out[string(p)] = s
	}
	return out
}

func PillarStrength(score int) Strength {
	switch {
	case score >= 9:
		return StrengthStrong
	case score >= 5:
		return StrengthModerate
	default:
		return StrengthWeak
	}
}

// Classify maps pillar totals to a protection state. Rules are checked in order.
func Classify(scores map[Pillar]int) (ProtectionState, map[Pillar]Strength) {
	strengths := make(map[Pillar]Strength, len(Pillars))
	weak, strong := 0, 0
	for _, p := range Pillars {
		s := PillarStrength(scores[p])
		strengths[p] = s
		switch s {
		case StrengthWeak:
			weak++
		case StrengthStrong:
			strong++
		}
	}

	switch {
	case strong >= 2 && strengths[PillarOversight] != StrengthWeak:
		return StateWellAligned, strengths
	case weak == 0:
		return StateNeedsReview, strengths
	case weak == 1:
		return StatePartiallyBuilt, strengths
	default:
		return StateNotProtected, strengths
	}
}

// ScoreAssessment scores answers (question id -> option value) against ProtectionAssessment.
// Unanswered questions and unknown options add nothing.
func ScoreAssessment(answers map[string]string) AssessmentResult {
	scores := map[Pillar]int{PillarProtection: 0, PillarAlignment: 0, PillarOversight: 0}

	for _, q := range ProtectionAssessment {
		answer, ok := answers[q.ID]
		if !ok {
			continue
		}
		for _, o := range q.Options {
			if o.Value == answer {
				scores[q.Pillar] += o.Score
				break
			}
		}
	}

	state, strengths := Classify(scores)
	return AssessmentResult{
		State:       state,
		Description: stateDescriptions[state],
		Scores:      scores,
		Strengths:   strengths,
	}
}

// ProtectionAssessment is the twelve-question Protection & Alignment rubric.
var ProtectionAssessment = []Question{
	{
		ID: "p1", Pillar: PillarProtection,
		Prompt: "Which best describes your current life insurance coverage?",
		Options: []Option{
			{"intentional", "I have coverage that was intentionally designed around my responsibilities", 3},
			{"rough", "I have coverage, but it was set up a while ago or based on a rough estimate", 2},
			{"work", "I have some coverage through work or older policies", 1},
			{"none", "I don't currently have life insurance", 0},
		},
	},
	{
		ID: "p2", Pillar: PillarProtection,
		Prompt: "If something happened to you, how confident are you that your coverage would support your dependents long-term?",
		Options: []Option{
			{"very", "Very confident, it was sized with dependents and obligations in mind", 3},
			{"somewhat", "Somewhat confident, but I haven't revisited it recently", 2},
			{"not_very", "Not very confident, I'm not sure how it was calculated", 1},
			{"unsure", "I'm unsure or it wouldn't be sufficient", 0},
		},
	},
	{
		ID: "p3", Pillar: PillarProtection,
		Prompt: "Which best reflects how your responsibilities were considered when coverage was set up?",
		Options: []Option{
			{"all", "Dependents, housing, and major obligations were clearly accounted for", 3},
			{"some", "Some responsibilities were considered, but not all", 2},
			{"minimal", "Coverage was chosen without fully mapping responsibilities", 1},
			{"none", "Responsibilities were not factored in", 0},
		},
	},
	{
		ID: "p4", Pillar: PillarProtection,
		Prompt: "How intentional are your beneficiary designations on life insurance and key accounts?",
		Options: []Option{
			{"reviewed", "Fully intentional and recently reviewed", 3},
			{"old", "Intentional at the time, but not reviewed since", 2},
			{"unsure", "Set up, but I'm unsure if they still reflect my wishes", 1},
			{"unknown", "I'm not sure who is listed", 0},
		},
	},
	{
		ID: "a1", Pillar: PillarAlignment,
		Prompt: "Which best describes your estate planning documents?",
		Options: []Option{
			{"current", "I have completed documents that reflect my current situation", 3},
			{"outdated", "I have documents, but they may be outdated", 2},
			{"started", "I started the process but didn't complete it", 1},
			{"none", "I don't have estate planning documents", 0},
		},
	},
	{
		ID: "a2", Pillar: PillarAlignment,
		Prompt: "If decisions had to be made on your behalf, how clear is it who would make them?",
		Options: []Option{
			{"clear", "Very clear, roles are defined and documented", 3},
			{"somewhat", "Somewhat clear, but not fully documented", 2},
			{"informal", "Informally discussed, but not documented", 1},
			{"unclear", "Not clear", 0},
		},
	},
	{
		ID: "a3", Pillar: PillarAlignment,
		Prompt: "If you have dependents, how confident are you that guardianship and control decisions reflect your intent?",
		Options: []Option{
			{"confident", "Very confident, decisions are documented", 3},
			{"somewhat", "Somewhat confident, but haven't reviewed recently", 2},
			{"unsure", "Unsure or not fully addressed", 1},
			{"na", "Not applicable or not considered", 0},
		},
	},
	{
		ID: "a4", Pillar: PillarAlignment,
		Prompt: "Are the priorities, rules, and delegations consistent across all of your estate documents?",
		Options: []Option{
			{"aligned", "Fully aligned and coordinated", 3},
			{"mostly", "Mostly aligned, but not reviewed as a system", 2},
			{"misaligned", "Likely misaligned or handled separately", 1},
			{"unsure", "I'm not sure", 0},
		},
	},
	{
		ID: "o1", Pillar: PillarOversight,
		Prompt: "When was the last time your protection plan was fully reviewed?",
		Options: []Option{
			{"year", "Within the last year", 3},
			{"2-3years", "Within the last 2-3 years", 2},
			{"3plus", "More than 3 years ago", 1},
			{"never", "I don't recall a full review", 0},
		},
	},
	{
		ID: "o2", Pillar: PillarOversight,
		Prompt: "Have major life changes occurred since your plan was last reviewed?",
		Options: []Option{
			{"no", "No, changes have been addressed", 3},
			{"pending", "Yes, but some updates are pending", 2},
			{"not_made", "Yes, and updates haven't been made", 1},
			{"unsure", "I'm not sure", 0},
		},
	},
	{
		ID: "o3", Pillar: PillarOversight,
		Prompt: "Who is responsible for making sure your plan stays current?",
		Options: []Option{
			{"advisor", "I work with someone who proactively helps manage updates", 3},
			{"self", "I try to stay on top of it myself", 2},
			{"reactive", "I update things only when something major happens", 1},
			{"none", "No one is clearly responsible", 0},
		},
	},
	{
		ID: "o4", Pillar: PillarOversight,
		Prompt: "Which best describes how your plan is maintained over time?",
		Options: []Option{
			{"regular", "There is a regular review process", 3},
			{"occasional", "Reviews happen occasionally", 2},
			{"reactive", "Reviews are reactive or crisis-driven", 1},
			{"none", "There is no review process", 0},
		},
	},
}
